// Package logger provides the structured, levelled logger for the SmartShop
// web console, built on log/slog.
//
// Every handler logs through a per-request logger pre-tagged with the
// request_id injected by the Logger middleware:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("payment recorded", "order_id", orderID, "amount", amount)
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/smartshop/webapp/config"
)

// L is the process-wide base logger. Setup replaces it; the zero value logs
// to stdout as text so early init code can log safely.
var L = slog.New(slog.NewTextHandler(os.Stdout, nil))

// mongoSink is set when LOG_DRIVER=mongo so Close can flush it.
var mongoSink *MongoHandler

// Setup builds the base logger from config: JSON to stdout in production,
// human-readable text otherwise, optionally fanned out to MongoDB when
// LOG_DRIVER=mongo. A Mongo connection failure falls back to stdout-only
// with a warning rather than aborting startup.
func Setup() {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	var stdout slog.Handler
	switch config.AppEnv() {
	case "production", "prod":
		opts.Level = slog.LevelInfo
		stdout = slog.NewJSONHandler(os.Stdout, opts)
	default:
		stdout = slog.NewTextHandler(os.Stdout, opts)
	}

	handler := stdout
	if config.LogDriver() == "mongo" {
		mh, err := NewMongoHandler(config.MongoURI(), "smartshop", "web_logs")
		if err != nil {
			slog.New(stdout).Warn("logger: mongo sink unavailable, logging to stdout only", "error", err)
		} else {
			mongoSink = mh
			handler = NewMultiHandler(stdout, mh)
		}
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// Close flushes the Mongo sink, if one is active.
func Close() {
	if mongoSink != nil {
		mongoSink.Close()
		mongoSink = nil
	}
}

type ctxKey struct{}

// WithCtx returns the per-request logger stored in ctx by the Logger
// middleware, or the base logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a pre-tagged *slog.Logger into ctx. Called by the
// Logger middleware; application code reads it back via WithCtx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
