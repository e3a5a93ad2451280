package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/jxo-me/namesilo-ddns/config"
	"github.com/jxo-me/namesilo-ddns/core/logger"
	xlogger "github.com/jxo-me/namesilo-ddns/sdk/logger"
	"gopkg.in/natefinch/lumberjack.v2"
)

func logFromConfig(cfg *config.Root) logger.ILogger {
	logCfg := cfg.Log
	if logCfg == nil {
		logCfg = &config.LogConfig{}
	}
	opts := []xlogger.LoggerOption{
		xlogger.FormatLoggerOption(logger.LogFormat(logCfg.Format)),
		xlogger.LevelLoggerOption(logger.LogLevel(cfg.LogLevel)),
	}

	var out io.Writer = os.Stderr
	switch logCfg.Output {
	case "none", "null":
		return xlogger.Nop()
	case "stdout":
		out = os.Stdout
	case "stderr", "":
		out = os.Stderr
	default:
		if logCfg.Rotation != nil {
			out = &lumberjack.Logger{
				Filename:   logCfg.Output,
				MaxSize:    logCfg.Rotation.MaxSize,
				MaxAge:     logCfg.Rotation.MaxAge,
				MaxBackups: logCfg.Rotation.MaxBackups,
				LocalTime:  logCfg.Rotation.LocalTime,
				Compress:   logCfg.Rotation.Compress,
			}
		} else {
			_ = os.MkdirAll(filepath.Dir(logCfg.Output), 0755)
			f, err := os.OpenFile(logCfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				logger.Default().Warn(err)
			} else {
				out = f
			}
		}
	}
	opts = append(opts, xlogger.OutputLoggerOption(out))

	return xlogger.NewLogger(opts...)
}
