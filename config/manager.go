package config

import (
	"github.com/jxo-me/namesilo-ddns/pkg/watcher"
	"github.com/rs/zerolog"
)

// Notifier sends out config updates
type Notifier interface {
	ConfigDidUpdate(Root)
}

// Manager is the base functions of the config manager
type Manager interface {
	Start(Notifier) error
	Shutdown()
}

// FileManager watches the yaml config for changes
// sends updates to the service to reconfigure to match the updated config
type FileManager struct {
	watcher    watcher.Notifier
	notifier   Notifier
	configPath string
	log        *zerolog.Logger
	ReadConfig func(string, *zerolog.Logger) (Root, error)
}

// NewFileManager creates a config manager
func NewFileManager(watcher watcher.Notifier, configPath string, log *zerolog.Logger) (*FileManager, error) {
	m := &FileManager{
		watcher:    watcher,
		configPath: configPath,
		log:        log,
		ReadConfig: ReadConfig,
	}
	err := watcher.Add(configPath)
	return m, err
}

// Start starts the runloop to watch for config changes
func (m *FileManager) Start(notifier Notifier) error {
	m.notifier = notifier

	// update the notifier with a fresh config on start
	config, err := m.ReadConfig(m.configPath, m.log)
	if err != nil {
		return err
	}
	notifier.ConfigDidUpdate(config)

	m.watcher.Start(m)
	return nil
}

// Shutdown stops the watcher
func (m *FileManager) Shutdown() {
	m.watcher.Shutdown()
}

// WatcherItemDidChange triggers when the yaml config is updated
// sends the updated config to the service to reload its current state
func (m *FileManager) WatcherItemDidChange(filepath string) {
	if m.notifier == nil {
		return
	}
	config, err := m.ReadConfig(m.configPath, m.log)
	if err != nil {
		m.log.Err(err).Str("path", filepath).Msg("Failed to read new config, keeping current one")
		return
	}
	m.notifier.ConfigDidUpdate(config)
	m.log.Info().Str("path", filepath).Msg("config file has been updated")
}

// WatcherDidError notifies of errors with the file watcher
func (m *FileManager) WatcherDidError(err error) {
	m.log.Err(err).Msg("config file watcher error")
}
