package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New собирает логгер уровня level ("debug", "info", "warn", "error").
// Неизвестный уровень считается info.
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if lvl == zapcore.DebugLevel {
		cfg.Development = true
		cfg.Encoding = "console"
	}

	return cfg.Build()
}
