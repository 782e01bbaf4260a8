package app

import (
	"io"
	"log/slog"
)

// newLogger builds the isolated logger of one App. The global logger is left
// alone so that several apps, or tests, can log to separate writers. format is
// "json" or "text"; NewConfig has already validated both arguments.
func newLogger(level slog.Level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
