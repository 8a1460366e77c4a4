package eventlog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
)

// ErrInvalidFilter is returned for filter expressions that do not compile to
// a boolean CEL program.
var ErrInvalidFilter = errors.New("eventlog: invalid filter")

// Filter is a compiled CEL predicate over events. The zero Filter matches
// everything.
//
// Variables:
//
//	event   map(string, string)  keys source, type, instance, timestamp
//	ts_ms   int                  event time in unix milliseconds (0 if unparsable)
//	now_ms  int                  evaluation time in unix milliseconds
type Filter struct {
	prog cel.Program
}

// CompileFilter compiles expr. An empty expression yields the match-all filter.
func CompileFilter(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Filter{}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("event", cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable("ts_ms", cel.IntType),
		cel.Variable("now_ms", cel.IntType),
	)
	if err != nil {
		return Filter{}, err
	}
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return Filter{}, fmt.Errorf("%w: %w", ErrInvalidFilter, iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return Filter{}, fmt.Errorf("%w: expression must be boolean, got %s", ErrInvalidFilter, ast.OutputType())
	}
	prog, err := env.Program(ast)
	if err != nil {
		return Filter{}, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	return Filter{prog: prog}, nil
}

// Match evaluates the filter for ev. Evaluation errors count as no match.
func (f Filter) Match(ev Event, now time.Time) bool {
	if f.prog == nil {
		return true
	}
	var ts int64
	if t, ok := ev.Time(); ok {
		ts = t.UnixMilli()
	}
	out, _, err := f.prog.Eval(map[string]any{
		"event": map[string]string{
			"source":    ev.Source,
			"type":      ev.Type,
			"instance":  ev.Instance,
			"timestamp": ev.Timestamp,
		},
		"ts_ms":  ts,
		"now_ms": now.UnixMilli(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}

// Apply returns the events that match, preserving order.
func (f Filter) Apply(events []Event, now time.Time) []Event {
	if f.prog == nil {
		return events
	}
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		if f.Match(ev, now) {
			out = append(out, ev)
		}
	}
	return out
}

// ReadFiltered reads the log and keeps only events matching expr.
func (l *Log) ReadFiltered(ctx context.Context, expr string) ([]Event, error) {
	f, err := CompileFilter(expr)
	if err != nil {
		return nil, err
	}
	events, err := l.Read(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(events, l.now()), nil
}
