// Package logging builds the slog loggers used across the API server and the
// audit worker, plus helpers for carrying loggers and request IDs through
// context.
package logging

import (
	"context"
	"log/slog"
	"os"

	"readability-audit/internal/handler/http/requestid"
)

func levelFromEnv() slog.Level {
	if os.Getenv("LOG_LEVEL") == "debug" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// NewLogger returns a JSON logger on stdout. LOG_LEVEL=debug enables debug
// logging; the default level is info.
func NewLogger() *slog.Logger {
	level := levelFromEnv()
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelWarn,
	}))
}

// NewTextLogger is the human-readable variant for local development.
func NewTextLogger() *slog.Logger {
	level := levelFromEnv()
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelWarn,
	}))
}

// WithRequestID attaches the request ID from ctx, if any, so every entry for
// one request can be correlated.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}

// WithFields attaches a map of structured fields.
func WithFields(logger *slog.Logger, fields map[string]interface{}) *slog.Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return logger.With(args...)
}

// FromContext returns the logger stored in ctx, falling back to the default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

type contextKey string

const loggerContextKey contextKey = "logger"
