package main

import (
	"github.com/judwhite/go-svc"
	"github.com/jxo-me/namesilo-ddns/cmd/ddns/cliutil"
	"github.com/jxo-me/namesilo-ddns/config"
	"github.com/jxo-me/namesilo-ddns/pkg/overwatch"
	"github.com/jxo-me/namesilo-ddns/pkg/watcher"
	"github.com/jxo-me/namesilo-ddns/sdk/app"
)

type program struct {
	settings   *cliutil.Settings
	appService *AppService
	done       chan struct{}
}

func newProgram(settings *cliutil.Settings) *program {
	return &program{settings: settings, done: make(chan struct{})}
}

func (p *program) Init(env svc.Environment) error {
	log := p.settings.Log
	if env.IsWindowsService() {
		log.Info().Msg("running as windows service")
	}

	// start the main run loop that reads from the config file
	f, err := watcher.NewFile()
	if err != nil {
		log.Err(err).Msg("Cannot load config file")
		return err
	}

	configManager, err := config.NewFileManager(f, p.settings.ConfigPath, log)
	if err != nil {
		log.Err(err).Msg("Cannot setup config file for monitoring")
		return err
	}
	log.Info().Msgf("monitoring config file at: %s", p.settings.ConfigPath)

	serviceCallback := func(name string, hash string, err error) {
		if err != nil {
			log.Err(err).Msgf("%s service encountered an error", name)
			return
		}
		log.Debug().Str("hash", hash).Msgf("%s service finished", name)
	}
	serviceManager := overwatch.NewAppManager(app.Runtime.DDNSRegistry(), serviceCallback)

	p.appService = NewAppService(configManager, serviceManager, p.settings.APIKey, log)
	return nil
}

func (p *program) Start() error {
	go func() {
		defer close(p.done)
		if err := p.appService.Run(); err != nil {
			p.settings.Log.Err(err).Msg("Failed to start app service")
		}
	}()
	return nil
}

func (p *program) Stop() error {
	running := app.Runtime.DDNSRegistry().GetAll()
	_ = p.appService.Shutdown()
	<-p.done
	for name := range running {
		p.settings.Log.Info().Msgf("service %s shutdown", name)
	}
	return nil
}
