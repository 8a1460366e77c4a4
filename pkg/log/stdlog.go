package log

import (
	"io"
	stdlog "log"

	"go.uber.org/zap"
)

// RedirectStdLog routes the standard library's global logger into l at info
// level. The returned func restores the previous behaviour.
func RedirectStdLog(l Logger) func() {
	if bl, ok := l.(*BaseLogger); ok {
		return zap.RedirectStdLog(bl.z.WithOptions(zap.AddCallerSkip(-1)))
	}
	return func() {}
}

// ToStdLogger returns a *log.Logger that writes into l, for libraries that
// want one.
func ToStdLogger(l Logger) *stdlog.Logger {
	if bl, ok := l.(*BaseLogger); ok {
		return zap.NewStdLog(bl.z.WithOptions(zap.AddCallerSkip(-1)))
	}
	return stdlog.New(io.Discard, "", 0)
}
