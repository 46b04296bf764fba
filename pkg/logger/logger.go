package logger

import (
	"context"
	"os"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface shared by services and handlers.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Fatal(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
	Zap() *zap.Logger
}

type loggerImpl struct {
	logger *zap.Logger
}

func (l *loggerImpl) Debug(msg string, fields ...zap.Field) {
	l.logger.Debug(msg, fields...)
}

func (l *loggerImpl) Info(msg string, fields ...zap.Field) {
	l.logger.Info(msg, fields...)
}

func (l *loggerImpl) Warn(msg string, fields ...zap.Field) {
	l.logger.Warn(msg, fields...)
}

func (l *loggerImpl) Error(msg string, fields ...zap.Field) {
	l.logger.Error(msg, fields...)
}

func (l *loggerImpl) Fatal(msg string, fields ...zap.Field) {
	l.logger.Fatal(msg, fields...)
}

func (l *loggerImpl) With(fields ...zap.Field) Logger {
	return &loggerImpl{logger: l.logger.With(fields...)}
}

// Zap exposes the underlying zap logger for components that take *zap.Logger.
func (l *loggerImpl) Zap() *zap.Logger {
	return l.logger
}

// Options controls the encoder and level of a new logger.
type Options struct {
	Level   string
	Console bool
}

// NewLogger builds a JSON logger writing to stdout.
func NewLogger(opts Options) (Logger, error) {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(opts.Level))); err != nil {
			return nil, err
		}
	}

	var encoder zapcore.Encoder
	if opts.Console {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zap.NewAtomicLevelAt(level))
	return &loggerImpl{logger: zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))}, nil
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() Logger {
	return &loggerImpl{logger: zap.NewNop()}
}

// FromZap wraps an existing zap logger.
func FromZap(l *zap.Logger) Logger {
	if l == nil {
		return NewNop()
	}
	return &loggerImpl{logger: l}
}

// ProvideLogger provides the Logger for fx and flushes it on stop.
func ProvideLogger(lc fx.Lifecycle) (Logger, error) {
	l, err := NewLogger(Options{
		Level:   os.Getenv("LOG_LEVEL"),
		Console: os.Getenv("LOG_FORMAT") == "console",
	})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			l.Info("logger initialized")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// stdout sync returns EINVAL on some platforms
			_ = l.Zap().Sync()
			return nil
		},
	})

	return l, nil
}

// ProvideZap exposes *zap.Logger to packages that depend on zap directly.
func ProvideZap(l Logger) *zap.Logger {
	return l.Zap()
}

var Module = fx.Module("logger",
	fx.Provide(
		ProvideLogger,
		ProvideZap,
	),
)
