// Package logging builds the slog.Logger used for diagnostics.
//
// User-facing messages are printed by the session; this logger only
// records what happened for troubleshooting.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// New creates and configures a new slog.Logger instance. It does not set the
// global logger, allowing for isolated logger instances.
func New(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}

// Open returns a logger writing to the destination picked by the flags and
// config, plus a close function for any file it opened.
//
// verbose sends debug output to stderr. Otherwise logs go to logFile, or are
// discarded when logFile is empty.
func Open(levelStr, formatStr, logFile string, verbose bool, stderr io.Writer) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }

	if verbose {
		return New("debug", formatStr, stderr), noop, nil
	}
	if logFile == "" {
		return New(levelStr, formatStr, io.Discard), noop, nil
	}

	if dir := filepath.Dir(logFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return New(levelStr, formatStr, f), f.Close, nil
}
