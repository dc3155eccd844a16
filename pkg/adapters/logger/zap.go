package logger

import (
	"github.com/ideamans/go-l10n"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/user/vidcompare/pkg/ports"
)

// ZapLogger writes structured JSON logs through zap. Messages are translated
// like the console logger; the component becomes a "component" field.
type ZapLogger struct {
	z *zap.Logger
}

// NewZap creates a production JSON logger at the given level.
func NewZap(level ports.LogLevel) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel(level))
	cfg.DisableStacktrace = true
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{z: z}, nil
}

// NewZapFrom wraps an existing zap logger.
func NewZapFrom(z *zap.Logger) *ZapLogger {
	return &ZapLogger{z: z}
}

func zapLevel(level ports.LogLevel) zapcore.Level {
	switch level {
	case ports.LevelDebug:
		return zapcore.DebugLevel
	case ports.LevelWarn:
		return zapcore.WarnLevel
	case ports.LevelError:
		return zapcore.ErrorLevel
	case ports.LevelQuiet:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *ZapLogger) Debug(msg string, args ...interface{}) { l.z.Debug(l10n.F(msg, args...)) }

func (l *ZapLogger) Info(msg string, args ...interface{}) { l.z.Info(l10n.F(msg, args...)) }

func (l *ZapLogger) Warn(msg string, args ...interface{}) { l.z.Warn(l10n.F(msg, args...)) }

func (l *ZapLogger) Error(msg string, args ...interface{}) { l.z.Error(l10n.F(msg, args...)) }

// WithComponent returns a logger carrying a component field.
func (l *ZapLogger) WithComponent(component string) ports.Logger {
	return &ZapLogger{z: l.z.With(zap.String("component", component))}
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.z.Sync()
}

var _ ports.Logger = (*ZapLogger)(nil)
