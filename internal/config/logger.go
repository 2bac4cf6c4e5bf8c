package config

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// LogLevelEnv sets the minimum log level (debug, info, warn, error).
const LogLevelEnv = "LOG_LEVEL"

// NewLogger creates a timestamped logger writing to stderr.
func NewLogger(prefix string) *log.Logger {
	return NewLoggerTo(os.Stderr, prefix)
}

// NewLoggerTo creates a timestamped logger writing to w. The level comes
// from LOG_LEVEL and defaults to info.
func NewLoggerTo(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(GetEnv(LogLevelEnv, "info"))
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
