package internal

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the service logger. When path is non-empty the log is
// written as JSON to a size-rotated file; otherwise it goes to stderr as
// text. Rotation keeps the long-running ticker mode from filling the disk.
func NewLogger(path string, level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: lvl}

	if path == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}

	var w io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    32, // MB
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	}

	return slog.New(slog.NewJSONHandler(w, opts))
}

// NewDiscardLogger returns a logger that drops everything, for tests and
// for the TUI mode where log lines would corrupt the terminal.
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
