// Package logger provides the structured, levelled logger used across
// voucherhub, built on log/slog.
//
// WithCtx returns the request-scoped logger injected by the Logger middleware,
// so every line written from a handler carries the request_id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("role created", "role_id", role.ID.Hex())
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/voucherhub/config"
)

var L *slog.Logger

func init() {
	L = slog.New(baseHandler())
	slog.SetDefault(L)
}

// baseHandler picks JSON output for production and text output otherwise.
func baseHandler() slog.Handler {
	if config.IsProduction() {
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
}

// Attach fans every subsequent log record out to extra as well as stdout.
// Used to mirror logs into MongoDB when LOG_MONGO is enabled.
func Attach(extra slog.Handler) {
	L = slog.New(NewMultiHandler(baseHandler(), extra))
	slog.SetDefault(L)
}

// Use replaces the base logger. Tests use it to silence or capture output.
func Use(l *slog.Logger) {
	L = l
	slog.SetDefault(L)
}

type ctxKey struct{}

// WithCtx returns the logger stored in ctx by InjectLogger, or the base
// logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a pre-tagged logger in ctx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
