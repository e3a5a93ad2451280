package logger

import (
	"io"
	"os"

	"github.com/jxo-me/namesilo-ddns/core/logger"
	"github.com/sirupsen/logrus"
)

type LoggerOptions struct {
	Output io.Writer
	Format logger.LogFormat
	Level  logger.LogLevel
}

type LoggerOption func(opts *LoggerOptions)

func OutputLoggerOption(out io.Writer) LoggerOption {
	return func(opts *LoggerOptions) {
		opts.Output = out
	}
}

func FormatLoggerOption(format logger.LogFormat) LoggerOption {
	return func(opts *LoggerOptions) {
		opts.Format = format
	}
}

func LevelLoggerOption(level logger.LogLevel) LoggerOption {
	return func(opts *LoggerOptions) {
		opts.Level = level
	}
}

type logrusLogger struct {
	logger *logrus.Entry
}

func NewLogger(opts ...LoggerOption) logger.ILogger {
	var options LoggerOptions
	for _, opt := range opts {
		opt(&options)
	}

	log := logrus.New()
	if options.Output != nil {
		log.SetOutput(options.Output)
	} else {
		log.SetOutput(os.Stderr)
	}

	switch options.Format {
	case logger.JSONFormat:
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	switch options.Level {
	case logger.TraceLevel,
		logger.DebugLevel,
		logger.InfoLevel,
		logger.WarnLevel,
		logger.ErrorLevel,
		logger.FatalLevel:
		lvl, _ := logrus.ParseLevel(string(options.Level))
		log.SetLevel(lvl)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return &logrusLogger{
		logger: logrus.NewEntry(log),
	}
}

// Nop discards every entry.
func Nop() logger.ILogger {
	return NewLogger(OutputLoggerOption(io.Discard))
}

// WithFields adds new fields to log.
func (l *logrusLogger) WithFields(fields map[string]any) logger.ILogger {
	return &logrusLogger{
		logger: l.logger.WithFields(logrus.Fields(fields)),
	}
}

func (l *logrusLogger) Trace(args ...any) {
	l.logger.Trace(args...)
}

func (l *logrusLogger) Tracef(format string, args ...any) {
	l.logger.Tracef(format, args...)
}

func (l *logrusLogger) Debug(args ...any) {
	l.logger.Debug(args...)
}

func (l *logrusLogger) Debugf(format string, args ...any) {
	l.logger.Debugf(format, args...)
}

func (l *logrusLogger) Info(args ...any) {
	l.logger.Info(args...)
}

func (l *logrusLogger) Infof(format string, args ...any) {
	l.logger.Infof(format, args...)
}

func (l *logrusLogger) Warn(args ...any) {
	l.logger.Warn(args...)
}

func (l *logrusLogger) Warnf(format string, args ...any) {
	l.logger.Warnf(format, args...)
}

func (l *logrusLogger) Error(args ...any) {
	l.logger.Error(args...)
}

func (l *logrusLogger) Errorf(format string, args ...any) {
	l.logger.Errorf(format, args...)
}

func (l *logrusLogger) Fatal(args ...any) {
	l.logger.Fatal(args...)
}

func (l *logrusLogger) Fatalf(format string, args ...any) {
	l.logger.Fatalf(format, args...)
}

func (l *logrusLogger) GetLevel() logger.LogLevel {
	switch l.logger.Logger.GetLevel() {
	case logrus.TraceLevel:
		return logger.TraceLevel
	case logrus.DebugLevel:
		return logger.DebugLevel
	case logrus.WarnLevel:
		return logger.WarnLevel
	case logrus.ErrorLevel:
		return logger.ErrorLevel
	case logrus.FatalLevel, logrus.PanicLevel:
		return logger.FatalLevel
	default:
		return logger.InfoLevel
	}
}

func (l *logrusLogger) IsLevelEnabled(level logger.LogLevel) bool {
	lvl, err := logrus.ParseLevel(string(level))
	if err != nil {
		return false
	}
	return l.logger.Logger.IsLevelEnabled(lvl)
}
