package app

import (
	"io"
	"log/slog"
)

// NewLogger returns a debug-level text logger in development and an
// info-level JSON logger elsewhere.
func NewLogger(environment string, w io.Writer) *slog.Logger {
	if environment == "development" {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
