package logger

import (
	"context"
	"log/slog"
	"os"

	"assurgest/internal/pkg/actor"
)

// Init installs the default slog logger. Production logs are JSON.
func Init(mode string) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if mode == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// WithContext returns a logger carrying the request id and actor
func WithContext(ctx context.Context) *slog.Logger {
	l := slog.Default()

	if requestID := actor.RequestID(ctx); requestID != "" {
		l = l.With("request_id", requestID)
	}
	if id := actor.ID(ctx); id != nil {
		l = l.With("actor_id", id.String())
	}

	return l
}

// Info logs at info level with context
func Info(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Info(msg, args...)
}

// Debug logs at debug level with context
func Debug(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Debug(msg, args...)
}

// Warn logs at warn level with context
func Warn(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Warn(msg, args...)
}

// Error logs at error level with context
func Error(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Error(msg, args...)
}
