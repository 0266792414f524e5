// Package logging provides structured logging for modelgraph on top of
// log/slog, with per-component child loggers and a text or JSON format
// switch.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger is the structured logging interface used throughout modelgraph.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...any)
	Info(ctx context.Context, msg string, fields ...any)
	Warn(ctx context.Context, err error, msg string, fields ...any)
	Error(ctx context.Context, err error, msg string, fields ...any)

	With(fields ...any) Logger
	WithComponent(component string) Logger
}

// Config holds logger configuration.
type Config struct {
	Level  slog.Level
	Format string // "text" or "json"
	Output io.Writer
}

// DefaultConfig returns text logging at info level on stderr.
func DefaultConfig() Config {
	return Config{Level: slog.LevelInfo, Format: "text", Output: os.Stderr}
}

type appLogger struct {
	logger *slog.Logger
}

// NewLogger creates a logger from config.
func NewLogger(cfg Config) Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}
	return &appLogger{logger: slog.New(handler)}
}

// Default returns a logger with the default configuration.
func Default() Logger {
	return NewLogger(DefaultConfig())
}

func (l *appLogger) Debug(ctx context.Context, msg string, fields ...any) {
	l.logger.DebugContext(ctx, msg, fields...)
}

func (l *appLogger) Info(ctx context.Context, msg string, fields ...any) {
	l.logger.InfoContext(ctx, msg, fields...)
}

func (l *appLogger) Warn(ctx context.Context, err error, msg string, fields ...any) {
	l.logger.WarnContext(ctx, msg, withErr(err, fields)...)
}

func (l *appLogger) Error(ctx context.Context, err error, msg string, fields ...any) {
	l.logger.ErrorContext(ctx, msg, withErr(err, fields)...)
}

func (l *appLogger) With(fields ...any) Logger {
	return &appLogger{logger: l.logger.With(fields...)}
}

func (l *appLogger) WithComponent(component string) Logger {
	return l.With("component", component)
}

func withErr(err error, fields []any) []any {
	if err == nil {
		return fields
	}
	return append(append([]any{}, fields...), "error", err.Error())
}
