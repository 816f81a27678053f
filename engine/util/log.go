package util

import (
	"os"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogCategory string

const (
	LogFold    LogCategory = "fold"
	LogPhysics LogCategory = "physics"
	LogLevel   LogCategory = "level"
	LogSystem  LogCategory = "system"
)

var globalLogger atomic.Pointer[zap.Logger]

func init() {
	globalLogger.Store(zap.NewNop())
}

// SetLogger replaces the process logger. Passing nil restores the no-op logger.
func SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	globalLogger.Store(logger)
}

// Logger returns the named logger for a category.
func Logger(cat LogCategory) *zap.Logger {
	return globalLogger.Load().Named(string(cat))
}

// NewLogger builds a stderr logger. format is "console" or "json".
func NewLogger(level, format string, color bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch format {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "console", "":
		if color {
			encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, errors.Errorf("unknown log format %q", format)
	}
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(lvl))
	return zap.New(core), nil
}

func LogFoldDebug(msg string, fields ...zap.Field) {
	Logger(LogFold).Debug(msg, fields...)
}

func LogFoldInfo(msg string, fields ...zap.Field) {
	Logger(LogFold).Info(msg, fields...)
}

func LogPhysicsDebug(msg string, fields ...zap.Field) {
	Logger(LogPhysics).Debug(msg, fields...)
}

func LogLevelInfo(msg string, fields ...zap.Field) {
	Logger(LogLevel).Info(msg, fields...)
}

func LogLevelWarning(msg string, fields ...zap.Field) {
	Logger(LogLevel).Warn(msg, fields...)
}

func LogSystemInfo(msg string, fields ...zap.Field) {
	Logger(LogSystem).Info(msg, fields...)
}

func LogSystemError(msg string, fields ...zap.Field) {
	Logger(LogSystem).Error(msg, fields...)
}
