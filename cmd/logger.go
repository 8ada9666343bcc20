package cmd

import (
	"log/slog"
	"os"
)

// NewLogger returns a JSON slog logger at the given level. An unknown level
// falls back to info.
func NewLogger(level string) *slog.Logger {
	l, err := parseLogLevel(level)
	if err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}
