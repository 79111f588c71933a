// Package logger is a process-wide zap logger with context-aware helpers.
package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	mu     sync.RWMutex
	global = zap.NewNop().Sugar()
)

// Init replaces the global logger. encoding is "json" or "console".
func Init(level, encoding string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	if encoding == "console" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	Set(l)
	return nil
}

func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = l.Sugar()
}

// L returns the unsugared global logger for libraries that take *zap.Logger.
func L() *zap.Logger {
	return get().Desugar()
}

func Sync() {
	_ = get().Sync()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// WithBatchID tags every line logged with ctx with the ETL/aggregation batch.
func WithBatchID(ctx context.Context, batchID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, batchID)
}

func BatchID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func fromCtx(ctx context.Context) *zap.SugaredLogger {
	l := get()
	if ctx == nil {
		return l
	}
	if id := BatchID(ctx); id != "" {
		return l.With("batch_id", id)
	}
	return l
}

func Debugf(ctx context.Context, format string, args ...any) { fromCtx(ctx).Debugf(format, args...) }

func Infof(ctx context.Context, format string, args ...any) { fromCtx(ctx).Infof(format, args...) }

func Info(ctx context.Context, msg string, kv ...any) { fromCtx(ctx).Infow(msg, kv...) }

func Warnf(ctx context.Context, format string, args ...any) { fromCtx(ctx).Warnf(format, args...) }

func Errorf(ctx context.Context, format string, args ...any) { fromCtx(ctx).Errorf(format, args...) }

func Error(ctx context.Context, msg string, kv ...any) { fromCtx(ctx).Errorw(msg, kv...) }

func Fatal(ctx context.Context, err error) {
	if err == nil {
		return
	}
	fromCtx(ctx).Fatal(err)
}
