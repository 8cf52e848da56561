// Package logger builds the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
)

// New returns a JSON logger, or a colored console logger when format is "pretty".
func New(out io.Writer, format string, level slog.Level) *slog.Logger {
	if format == "pretty" {
		return slog.New(NewPrettyHandler(out, level))
	}
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
}
