// Package logging configures zerolog for the application and hands out
// component-scoped loggers.
package logging

import (
	"io"
	stdLog "log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLevel is used when no level, or an invalid one, is configured
const DefaultLevel = zerolog.InfoLevel

var logWriter io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

// ConfigureGlobal sets the global level and installs the console writer as
// the destination of both zerolog and the standard library logger.
func ConfigureGlobal(levelStr string) zerolog.Level {
	level := ParseLevel(levelStr)
	zerolog.SetGlobalLevel(level)

	logContext := zerolog.New(logWriter).With().Timestamp()
	if level <= zerolog.DebugLevel {
		logContext = logContext.Caller()
	}
	log.Logger = logContext.Logger().Level(level)
	zerolog.DefaultContextLogger = &log.Logger

	stdLog.SetFlags(0)
	stdLog.SetOutput(log.Logger)

	return level
}

// ParseLevel converts a level name to zerolog.Level, falling back to DefaultLevel
func ParseLevel(levelStr string) zerolog.Level {
	if strings.TrimSpace(levelStr) == "" {
		return DefaultLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(levelStr)))
	if err != nil {
		log.Warn().Err(err).Str("logLevel", levelStr).Msg("Invalid log level, using default")
		return DefaultLevel
	}
	return level
}

// SetLogWriter replaces the writer used by the next ConfigureGlobal call
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Component returns the global logger tagged with a component field
func Component(name string) zerolog.Logger {
	return log.Logger.With().Str("component", name).Logger()
}

// NewLoggerWithWriter builds a JSON logger for a component writing to w
func NewLoggerWithWriter(component string, level zerolog.Level, w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Str("component", component).Logger()
}
