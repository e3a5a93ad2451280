package main

import (
	"sync"

	"github.com/jxo-me/namesilo-ddns/config"
	"github.com/jxo-me/namesilo-ddns/config/parsing"
	"github.com/jxo-me/namesilo-ddns/core/logger"
	"github.com/jxo-me/namesilo-ddns/pkg/overwatch"
	"github.com/rs/zerolog"
)

// AppService is the main service that runs when no command lines flags are passed to ddns
// it manages all the running services such as the DDNS scheduler.
type AppService struct {
	configManager  config.Manager
	serviceManager overwatch.Manager
	apiKey         string
	shutdownC      chan struct{}
	once           sync.Once
	log            *zerolog.Logger
}

// NewAppService creates a new AppService with needed supporting services
func NewAppService(configManager config.Manager, serviceManager overwatch.Manager, apiKey string, log *zerolog.Logger) *AppService {
	return &AppService{
		configManager:  configManager,
		serviceManager: serviceManager,
		apiKey:         apiKey,
		shutdownC:      make(chan struct{}),
		log:            log,
	}
}

// Run starts the run loop to handle config updates and run forever
// until Shutdown is called.
func (s *AppService) Run() error {
	errC := make(chan error, 1)
	go func() {
		errC <- s.configManager.Start(s)
	}()

	select {
	case err := <-errC:
		if err != nil {
			s.stopServices()
			return err
		}
		<-s.shutdownC
	case <-s.shutdownC:
	}
	s.stopServices()
	return nil
}

// Shutdown kills all the running services
func (s *AppService) Shutdown() error {
	s.once.Do(func() {
		close(s.shutdownC)
	})
	return nil
}

// ConfigDidUpdate is a delegate notification from the config manager
// it is trigger when the config file has been updated and now the service needs
// to update its services accordingly
func (s *AppService) ConfigDidUpdate(c config.Root) {
	logger.SetDefault(logFromConfig(&c))

	svc, err := parsing.ParseService(&c, s.apiKey, logger.Default())
	if err != nil {
		s.log.Err(err).Msg("Failed to build DDNS service from config")
		return
	}
	s.serviceManager.Add(svc)
}

func (s *AppService) stopServices() {
	s.configManager.Shutdown()
	s.serviceManager.Shutdown()
}
