package eventlog

import (
	"context"
	"time"

	"github.com/doublemarked/unload-test/internal/kv"
)

// DefaultWatchInterval is the poll period used when Watch gets a non-positive interval.
const DefaultWatchInterval = time.Second

// Watch polls the log and calls fn with the full event array each time the
// stored versionstamp changes. The first call carries the state at the time
// Watch starts. It returns ctx.Err() once ctx is done, or the first error
// from the store or from fn.
func (l *Log) Watch(ctx context.Context, interval time.Duration, fn func([]Event) error) error {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last kv.Versionstamp
	first := true
	for {
		events, vs, err := l.read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if first || vs != last {
			if err := fn(events); err != nil {
				return err
			}
			first, last = false, vs
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
