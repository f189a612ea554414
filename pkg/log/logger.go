// Package log configures zerolog for the analysis pipeline and defines the
// standard attribute keys used across packages, so pipeline stages emit
// consistent structured fields (component, operation, sample counts,
// metrics) that can be filtered downstream.
package log

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Setup configures the global zerolog logger. When console is true the
// output is human-readable; otherwise newline-delimited JSON is written,
// one event per line.
func Setup(level string, console bool) {
	zerolog.SetGlobalLevel(ToLevel(level))

	var w io.Writer = os.Stderr
	if console {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	zerolog.DefaultContextLogger = nil
	logger := zerolog.New(w).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
}

// ToLevel maps a level name to a zerolog level. Unknown names fall back to
// info rather than panicking; a bad LOG_LEVEL should not kill a batch run.
func ToLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger returns a logger writing to w tagged with the given component.
func NewLogger(w io.Writer, component string) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Str(ComponentKey, component).Logger()
}

// Component returns a child of the default context logger tagged with the
// given component name.
func Component(name string) zerolog.Logger {
	base := zerolog.DefaultContextLogger
	if base == nil {
		logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		base = &logger
	}
	return base.With().Str(ComponentKey, name).Logger()
}
