package log

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents the severity level of a log message.
type Level int

// Log levels
const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name (case-insensitive) into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("log: unknown level %q", s)
	}
}

func (l Level) zap() zapcore.Level {
	switch l {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func fromZap(l zapcore.Level) Level {
	switch {
	case l <= zapcore.DebugLevel:
		return DebugLevel
	case l == zapcore.InfoLevel:
		return InfoLevel
	case l == zapcore.WarnLevel:
		return WarnLevel
	default:
		return ErrorLevel
	}
}

// Context keys for propagating logging context
const (
	RequestIDKey = "request_id"
	ComponentKey = "component"
	OperationKey = "operation"
)

// Logger defines the core logging interface.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	Debugf(msg string, args ...interface{})
	Infof(msg string, args ...interface{})
	Warnf(msg string, args ...interface{})
	Errorf(msg string, args ...interface{})

	// With adds multiple fields to the logger.
	With(fields ...Field) Logger
	WithError(err error) Logger
	// WithContext copies well-known request values (request id, operation) into fields.
	WithContext(ctx context.Context) Logger
	WithComponent(component string) Logger

	SetLevel(level Level)
	GetLevel() Level
}

// Format selects the encoder used for log lines.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// LoggerOption is a function that configures a logger.
type LoggerOption func(*options)

type options struct {
	level  Level
	format Format
	sink   zapcore.WriteSyncer
}

// WithLevel sets the minimum log level.
func WithLevel(level Level) LoggerOption {
	return func(o *options) { o.level = level }
}

// WithFormat sets the output format (text or json).
func WithFormat(f Format) LoggerOption {
	return func(o *options) { o.format = f }
}

// WithOutput sets the destination for log lines.
func WithOutput(ws zapcore.WriteSyncer) LoggerOption {
	return func(o *options) { o.sink = ws }
}

// BaseLogger implements Logger on top of a zap.Logger.
type BaseLogger struct {
	z     *zap.Logger
	level zap.AtomicLevel
}

// NewLogger creates a new logger with the given options.
func NewLogger(opts ...LoggerOption) Logger {
	o := options{level: InfoLevel, format: FormatText}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sink == nil {
		o.sink = zapcore.Lock(zapcore.AddSync(stderr()))
	}
	lvl := zap.NewAtomicLevelAt(o.level.zap())
	core := zapcore.NewCore(newEncoder(o.format), o.sink, lvl)
	return &BaseLogger{z: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)), level: lvl}
}

// NewNop returns a logger that discards everything. Handy in tests.
func NewNop() Logger {
	return &BaseLogger{z: zap.NewNop(), level: zap.NewAtomicLevelAt(zapcore.ErrorLevel)}
}

func newEncoder(f Format) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if f == FormatJSON {
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func (l *BaseLogger) Debug(msg string, fields ...Field) { l.z.Debug(msg, toZap(fields)...) }
func (l *BaseLogger) Info(msg string, fields ...Field)  { l.z.Info(msg, toZap(fields)...) }
func (l *BaseLogger) Warn(msg string, fields ...Field)  { l.z.Warn(msg, toZap(fields)...) }
func (l *BaseLogger) Error(msg string, fields ...Field) { l.z.Error(msg, toZap(fields)...) }

func (l *BaseLogger) Debugf(msg string, args ...interface{}) { l.z.Sugar().Debugf(msg, args...) }
func (l *BaseLogger) Infof(msg string, args ...interface{})  { l.z.Sugar().Infof(msg, args...) }
func (l *BaseLogger) Warnf(msg string, args ...interface{})  { l.z.Sugar().Warnf(msg, args...) }
func (l *BaseLogger) Errorf(msg string, args ...interface{}) { l.z.Sugar().Errorf(msg, args...) }

// With returns a child logger carrying the given fields.
func (l *BaseLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}
	return &BaseLogger{z: l.z.With(toZap(fields)...), level: l.level}
}

func (l *BaseLogger) WithError(err error) Logger { return l.With(Err(err)) }

func (l *BaseLogger) WithComponent(component string) Logger { return l.With(Component(component)) }

func (l *BaseLogger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return l
	}
	var fields []Field
	if v, ok := ctx.Value(RequestIDKey).(string); ok && v != "" {
		fields = append(fields, Str(RequestIDKey, v))
	}
	if v, ok := ctx.Value(OperationKey).(string); ok && v != "" {
		fields = append(fields, Str(OperationKey, v))
	}
	return l.With(fields...)
}

// SetLevel changes the minimum level for this logger and every logger derived from it.
func (l *BaseLogger) SetLevel(level Level) { l.level.SetLevel(level.zap()) }

func (l *BaseLogger) GetLevel() Level { return fromZap(l.level.Level()) }

// Sync flushes buffered entries.
func (l *BaseLogger) Sync() error { return l.z.Sync() }

// Zap exposes the underlying zap logger for interop.
func (l *BaseLogger) Zap() *zap.Logger { return l.z }
