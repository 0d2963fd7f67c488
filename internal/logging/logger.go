package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Field is a structured logging key/value pair.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64 field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Err creates an error field under the conventional "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is the logging interface used throughout the application.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// ZerologAdapter implements Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog logger.
func NewZerologAdapter(l zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: l}
}

// NewLogger creates a Logger writing to w, tagged with a component name.
func NewLogger(w io.Writer, component string) Logger {
	l := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &ZerologAdapter{logger: l}
}

// NewDefaultLogger creates a Logger writing human-readable output to stderr.
func NewDefaultLogger() Logger {
	console := zerolog.ConsoleWriter{Out: os.Stderr}
	return &ZerologAdapter{logger: zerolog.New(console).With().Timestamp().Logger()}
}

// NewNopLogger creates a Logger that discards everything.
func NewNopLogger() Logger {
	return &ZerologAdapter{logger: zerolog.Nop()}
}

func (a *ZerologAdapter) emit(e *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case uint64:
			e = e.Uint64(f.Key, v)
		case float64:
			e = e.Float64(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	e.Msg(msg)
}

// Debug logs at debug level.
func (a *ZerologAdapter) Debug(msg string, fields ...Field) {
	a.emit(a.logger.Debug(), msg, fields)
}

// Info logs at info level.
func (a *ZerologAdapter) Info(msg string, fields ...Field) {
	a.emit(a.logger.Info(), msg, fields)
}

// Warn logs at warn level.
func (a *ZerologAdapter) Warn(msg string, fields ...Field) {
	a.emit(a.logger.Warn(), msg, fields)
}

// Error logs at error level.
func (a *ZerologAdapter) Error(msg string, fields ...Field) {
	a.emit(a.logger.Error(), msg, fields)
}
