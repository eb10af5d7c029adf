package common

import (
	"fmt"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/rs/zerolog"
	"io"
	"os"
	"strings"
	"time"
)

// LoggerNames are the packages whose loggers InitLoggers configures
var LoggerNames = []string{"codec", "bench", "cmd"}

// --------------------------------------------------------------------------
// Custom Logger (implements dragonboats logger.ILogger)
// --------------------------------------------------------------------------

// mediaserLogger implements the ILogger interface on top of zerolog
type mediaserLogger struct {
	name   string
	level  logger.LogLevel
	logger zerolog.Logger
}

func (l *mediaserLogger) SetLevel(level logger.LogLevel) {
	l.level = level
}

func (l *mediaserLogger) Debugf(format string, args ...interface{}) {
	if l.level >= logger.DEBUG {
		l.logger.Debug().Msgf(format, args...)
	}
}

func (l *mediaserLogger) Infof(format string, args ...interface{}) {
	if l.level >= logger.INFO {
		l.logger.Info().Msgf(format, args...)
	}
}

func (l *mediaserLogger) Warningf(format string, args ...interface{}) {
	if l.level >= logger.WARNING {
		l.logger.Warn().Msgf(format, args...)
	}
}

func (l *mediaserLogger) Errorf(format string, args ...interface{}) {
	if l.level >= logger.ERROR {
		l.logger.Error().Msgf(format, args...)
	}
}

func (l *mediaserLogger) Panicf(format string, args ...interface{}) {
	if l.level >= logger.CRITICAL {
		l.logger.Error().Msgf(format, args...)
		panic(fmt.Sprintf(format, args...))
	}
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

// NewLoggerFactory returns a factory for loggers that write human readable lines to w.
// Colors are only used if color is set.
func NewLoggerFactory(w io.Writer, color bool) logger.Factory {
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !color,
		TimeFormat: time.DateTime,
	}
	return func(pkgName string) logger.ILogger {
		return &mediaserLogger{
			name:  pkgName,
			level: logger.INFO,
			logger: zerolog.New(out).
				With().
				Timestamp().
				Str("pkg", pkgName).
				Logger(),
		}
	}
}

// CreateLogger implements the Factory interface, logs go to stderr so that
// command output on stdout stays clean
func CreateLogger(pkgName string) logger.ILogger {
	return NewLoggerFactory(os.Stderr, true)(pkgName)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// parseLogLevel converts a string level to logger.LogLevel
func parseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logger.DEBUG, nil
	case "info":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error":
		return logger.ERROR, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// InitLoggers installs the zerolog backed factory and sets the level of all loggers
func InitLoggers(level string) error {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return err
	}

	// Set as the global logger factory for Dragonboat
	logger.SetLoggerFactory(CreateLogger)

	for _, name := range LoggerNames {
		logger.GetLogger(name).SetLevel(lvl)
	}
	return nil
}
