package logging

import (
	"context"
	"maps"
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a *zap.Logger to the Logger interface. Levels are
// filtered through a shared zap.AtomicLevel so SetLevel affects every
// logger derived with WithFields.
type ZapLogger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

// NewZapLogger wraps an existing zap logger. Its own core still applies
// whatever level it was built with.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{
		logger: logger,
		level:  zap.NewAtomicLevelAt(zapcore.DebugLevel),
	}
}

// NewZapProductionLogger builds a JSON zap logger from zap's production config
func NewZapProductionLogger(level Level) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(toZapLevel(level))

	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	return &ZapLogger{logger: logger, level: cfg.Level}, nil
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZapFields(fields []Fields) []zap.Field {
	merged := make(Fields)
	for _, f := range fields {
		maps.Copy(merged, f)
	}

	zapFields := make([]zap.Field, 0, len(merged))
	for _, key := range slices.Sorted(maps.Keys(merged)) {
		zapFields = append(zapFields, zap.Any(key, merged[key]))
	}
	return zapFields
}

func (z *ZapLogger) enabled(level zapcore.Level) bool {
	return z.level.Enabled(level)
}

func (z *ZapLogger) Debug(msg string, fields ...Fields) {
	if z.enabled(zapcore.DebugLevel) {
		z.logger.Debug(msg, toZapFields(fields)...)
	}
}

func (z *ZapLogger) Info(msg string, fields ...Fields) {
	if z.enabled(zapcore.InfoLevel) {
		z.logger.Info(msg, toZapFields(fields)...)
	}
}

func (z *ZapLogger) Warn(msg string, fields ...Fields) {
	if z.enabled(zapcore.WarnLevel) {
		z.logger.Warn(msg, toZapFields(fields)...)
	}
}

func (z *ZapLogger) Error(err error, msg string, fields ...Fields) {
	if z.enabled(zapcore.ErrorLevel) {
		z.logger.Error(msg, append(toZapFields(fields), zap.Error(err))...)
	}
}

func (z *ZapLogger) Fatal(err error, msg string, fields ...Fields) {
	z.logger.Fatal(msg, append(toZapFields(fields), zap.Error(err))...)
}

func (z *ZapLogger) WithFields(fields Fields) Logger {
	return &ZapLogger{
		logger: z.logger.With(toZapFields([]Fields{fields})...),
		level:  z.level,
	}
}

func (z *ZapLogger) WithContext(ctx context.Context) Logger {
	if fields, ok := FieldsFromContext(ctx); ok {
		return z.WithFields(fields)
	}
	return z
}

func (z *ZapLogger) SetLevel(level Level) {
	z.level.SetLevel(toZapLevel(level))
}

// Sync flushes buffered log entries
func (z *ZapLogger) Sync() error {
	return z.logger.Sync()
}
