package logger

import (
	"github.com/lintang-b-s/travcost/pkg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New. production zap logger with ISO8601 timestamps. set DEBUG in pkg to get debug level logs.
func New() (*zap.Logger, error) {
	if pkg.DEBUG {
		return NewWithLevel(zapcore.DebugLevel)
	}
	return NewWithLevel(zapcore.InfoLevel)
}

func NewWithLevel(level zapcore.Level) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true

	log, err := config.Build()
	if err != nil {
		return nil, err
	}
	return log.Named("travcost"), nil
}
