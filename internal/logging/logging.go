// ABOUTME: Structured logger construction for lift.
// ABOUTME: Wraps charmbracelet/log with level selection from flags and environment.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// EnvDebug enables debug logging when set to a truthy value.
const EnvDebug = "LIFT_DEBUG"

// New returns a logger writing to w. Debug forces debug level; otherwise
// the level comes from LIFT_DEBUG and defaults to warn.
func New(w io.Writer, debug bool) *log.Logger {
	level := log.WarnLevel
	if debug || DebugFromEnv() {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "lift",
		ReportTimestamp: level == log.DebugLevel,
	})
}

// WithLevel returns a logger at the named level ("debug", "info", "warn",
// "error"). Unknown names keep the warn default.
func WithLevel(w io.Writer, name string) *log.Logger {
	logger := New(w, false)
	if name == "" {
		return logger
	}
	if lvl, err := log.ParseLevel(name); err == nil && !DebugFromEnv() {
		logger.SetLevel(lvl)
	}
	return logger
}

// DebugFromEnv reports whether LIFT_DEBUG asks for debug output.
func DebugFromEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvDebug))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
