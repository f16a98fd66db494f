package config

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger and installs it as the slog default.
func NewLogger(level slog.Level, service string) *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	l := slog.New(h).With("service", service)
	slog.SetDefault(l)
	return l
}
