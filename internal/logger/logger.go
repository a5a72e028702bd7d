// Package logger builds the charmbracelet/log loggers used across typeahead.
//
// The TUI owns the terminal, so logs go to a file or are discarded. Setting
// TYPEAHEAD_DEBUG forces debug level regardless of configuration.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

const debugEnv = "TYPEAHEAD_DEBUG"

// DebugEnabled reports whether the TYPEAHEAD_DEBUG env var asks for debug logging.
func DebugEnabled() bool {
	return parseDebugEnv(os.Getenv(debugEnv))
}

func parseDebugEnv(value string) bool {
	if value == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

// New creates a text logger writing to w.
func New(w io.Writer, prefix string, level log.Level) *log.Logger {
	if DebugEnabled() {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// ParseLevel converts a config string such as "info" into a log level.
func ParseLevel(level string) (log.Level, error) {
	if strings.TrimSpace(level) == "" {
		return log.InfoLevel, nil
	}
	parsed, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return parsed, nil
}

// Open creates a logger appending to the file at path. An empty path yields a
// discarding logger. The returned closer releases the file.
func Open(path, prefix string, level log.Level) (*log.Logger, io.Closer, error) {
	if path == "" {
		return Discard(), nopCloser{}, nil
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return New(file, prefix, level), file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
