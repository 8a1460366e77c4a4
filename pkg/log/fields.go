package log

import (
	"time"

	"go.uber.org/zap"
)

// Field is a single key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

func Str(key, v string) Field               { return Field{Key: key, Value: v} }
func Int(key string, v int) Field           { return Field{Key: key, Value: v} }
func Int64(key string, v int64) Field       { return Field{Key: key, Value: v} }
func Bool(key string, v bool) Field         { return Field{Key: key, Value: v} }
func Dur(key string, v time.Duration) Field { return Field{Key: key, Value: v} }
func Any(key string, v interface{}) Field   { return Field{Key: key, Value: v} }

// Err attaches an error under the "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Component tags the entry with the emitting component.
func Component(name string) Field { return Field{Key: ComponentKey, Value: name} }

func toZap(fields []Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			out = append(out, zap.NamedError(f.Key, v))
		case time.Duration:
			out = append(out, zap.Duration(f.Key, v))
		default:
			out = append(out, zap.Any(f.Key, v))
		}
	}
	return out
}
