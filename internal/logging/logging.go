// Package logging configures the structured logger. Logs are JSON
// entries written to a file so they never interleave with the
// terminal UI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// New creates a logger writing JSON entries to the given file,
// creating it if needed. An empty path yields a logger that discards
// everything. The returned close function flushes and closes the
// file.
func New(path, level string) (*slog.Logger, func() error, error) {
	if path == "" {
		return Nop(), func() error { return nil }, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: ParseLevel(level)})
	closeFn := func() error {
		if err := file.Sync(); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	}
	return slog.New(handler), closeFn, nil
}

// Nop returns a logger that discards all output.
func Nop() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// ParseLevel converts a level name to a slog.Level, defaulting to
// info for unknown names.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
