package core

import (
	"context"
	"fmt"
	"log/slog"
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// SlogLogger adapts a *slog.Logger to Logger, emitting each line at a fixed level
type SlogLogger struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogLogger creates a Logger that writes formatted lines to l at the given level.
// A nil l falls back to slog.Default().
func NewSlogLogger(l *slog.Logger, level slog.Level) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{logger: l, level: level}
}

func (sl *SlogLogger) Printf(format string, args ...interface{}) {
	ctx := context.Background()
	if !sl.logger.Enabled(ctx, sl.level) {
		return
	}
	sl.logger.Log(ctx, sl.level, fmt.Sprintf(format, args...))
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// NopLogger returns a Logger that discards everything
func NopLogger() Logger { return nopLogger{} }
