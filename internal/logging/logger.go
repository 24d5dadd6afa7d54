// Package logging builds the charmbracelet/log loggers used across ctxport.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// DefaultLevel is the level used when none is requested.
const DefaultLevel = "warn"

//nolint:gochecknoglobals // process-wide fallback for callers without a logger
var fallback atomic.Pointer[log.Logger]

// ParseLevel maps a level name to a log.Level. Unknown names map to warn.
func ParseLevel(name string) log.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// New returns a stderr logger at the named level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger at the named level writing to w.
// Timestamps and caller info are off; output goes to a terminal.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: ParseLevel(level)})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return NewWithWriter(io.Discard, "error")
}

// Default returns the process-wide logger, creating it on first use.
func Default() *log.Logger {
	if logger := fallback.Load(); logger != nil {
		return logger
	}
	fallback.CompareAndSwap(nil, New(DefaultLevel))
	return fallback.Load()
}

// SetDefault replaces the process-wide logger. A nil logger is ignored.
func SetDefault(logger *log.Logger) {
	if logger != nil {
		fallback.Store(logger)
	}
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}

// OrDefault returns logger, or Default when it is nil.
func OrDefault(logger *log.Logger) *log.Logger {
	if logger == nil {
		return Default()
	}
	return logger
}
