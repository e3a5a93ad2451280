package cliutil

import (
	"os"
	"strings"
	"time"

	"github.com/jxo-me/namesilo-ddns/config"
	"github.com/jxo-me/namesilo-ddns/consts"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

const (
	errorExitCode = 1

	ConfigFlag   = "config"
	APIKeyFlag   = "api-key"
	LogLevelFlag = "log-level"
	OutputFlag   = "output"
)

var ErrMissingAPIKey = errors.Errorf("the NameSilo API key is required, set %s or --%s", consts.APIKeyENV, APIKeyFlag)

// Settings is what every configured action needs before it can start.
type Settings struct {
	ConfigPath string
	APIKey     string
	Config     config.Root
	Log        *zerolog.Logger
}

func Action(actionFunc cli.ActionFunc) cli.ActionFunc {
	return WithErrorHandler(actionFunc)
}

// ConfiguredAction loads and validates the config file and the API key, then
// hands them to actionFunc. Any failure exits with a non-zero code.
func ConfiguredAction(actionFunc func(*cli.Context, *Settings) error) cli.ActionFunc {
	return WithErrorHandler(func(c *cli.Context) error {
		settings, err := LoadSettings(c)
		if err != nil {
			return cli.Exit(err.Error(), errorExitCode)
		}
		return actionFunc(c, settings)
	})
}

// WithErrorHandler turns plain errors into exit errors so the process status reflects them.
func WithErrorHandler(actionFunc cli.ActionFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		err := actionFunc(c)
		if err == nil {
			return nil
		}
		if _, ok := err.(cli.ExitCoder); ok {
			return err
		}
		return cli.Exit(err.Error(), errorExitCode)
	}
}

func LoadSettings(c *cli.Context) (*Settings, error) {
	log := CreateLoggerFromContext(c)

	configPath := c.String(ConfigFlag)
	if configPath == "" {
		configPath = config.GetConfigFilePath()
	}
	if err := config.CheckConfigFile(configPath); err != nil {
		return nil, err
	}
	cfg, err := config.ReadConfig(configPath, log)
	if err != nil {
		return nil, err
	}
	// 命令行优先于配置文件
	if lvl := c.String(LogLevelFlag); lvl != "" {
		cfg.LogLevel = lvl
	}

	// --output 只打印配置, 不需要 API key
	apiKey := strings.TrimSpace(c.String(APIKeyFlag))
	if apiKey == "" && c.String(OutputFlag) == "" {
		return nil, ErrMissingAPIKey
	}

	return &Settings{
		ConfigPath: configPath,
		APIKey:     apiKey,
		Config:     cfg,
		Log:        log,
	}, nil
}

// CreateLoggerFromContext builds the console logger used before the config is loaded.
func CreateLoggerFromContext(c *cli.Context) *zerolog.Logger {
	level, err := zerolog.ParseLevel(c.String(LogLevelFlag))
	if err != nil || c.String(LogLevelFlag) == "" {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return &log
}
