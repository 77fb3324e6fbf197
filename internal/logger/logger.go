package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu      sync.RWMutex
	current = zap.NewNop()
)

// Init builds the process logger. Production mode emits JSON at info level,
// anything else uses the human readable development encoder.
func Init(appEnv string) (*zap.Logger, error) {
	var (
		built *zap.Logger
		err   error
	)
	if appEnv == "production" {
		built, err = zap.NewProduction()
	} else {
		built, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	Set(built)
	return built, nil
}

func Set(next *zap.Logger) {
	if next == nil {
		next = zap.NewNop()
	}
	mu.Lock()
	current = next
	mu.Unlock()
}

func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Sync flushes buffered entries. Errors from syncing stdout/stderr are ignored.
func Sync() {
	_ = L().Sync()
}

func Debug(msg string, fields ...zap.Field) {
	L().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	L().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	L().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	L().Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	L().Fatal(msg, fields...)
}
