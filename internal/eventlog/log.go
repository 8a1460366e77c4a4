package eventlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doublemarked/unload-test/internal/kv"
	"github.com/doublemarked/unload-test/pkg/log"
)

// Capacity is the maximum number of events kept. Older events are evicted
// from the tail.
const Capacity = 50

// maxAttempts bounds Append: the first try plus one retry.
const maxAttempts = 2

// DefaultKey is where the log lives in the store.
var DefaultKey = kv.Key{"events"}

var (
	// ErrConflictExhausted is returned when both append attempts lost the
	// compare-and-swap to concurrent writers. The event was not stored.
	ErrConflictExhausted = errors.New("eventlog: append conflicted on every attempt")
	// ErrStoreUnavailable wraps any failure to read or write the store.
	ErrStoreUnavailable = errors.New("eventlog: store unavailable")
)

// Options configures a Log. Zero values select defaults.
type Options struct {
	Key      kv.Key
	Now      func() time.Time
	Logger   log.Logger
	Observer Observer
}

// Log is the bounded event log over a kv.Store. It holds no state of its own
// between calls and is safe for concurrent use.
type Log struct {
	store    kv.Store
	key      kv.Key
	now      func() time.Time
	logger   log.Logger
	observer Observer
}

// New returns a Log over store.
func New(store kv.Store, opts Options) *Log {
	l := &Log{store: store, key: opts.Key, now: opts.Now, logger: opts.Logger, observer: opts.Observer}
	if len(l.key) == 0 {
		l.key = DefaultKey
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.logger == nil {
		l.logger = log.NewNop()
	}
	l.logger = l.logger.WithComponent("eventlog")
	if l.observer == nil {
		l.observer = noopObserver{}
	}
	return l
}

// Key returns the store key holding the log.
func (l *Log) Key() kv.Key { return l.key }

// Read returns the current events, newest first. An absent key reads as the
// empty log.
func (l *Log) Read(ctx context.Context) ([]Event, error) {
	events, _, err := l.read(ctx)
	return events, err
}

func (l *Log) read(ctx context.Context) ([]Event, kv.Versionstamp, error) {
	entry, err := l.store.Get(ctx, l.key)
	if err != nil {
		return nil, "", unavailable("read", err)
	}
	events, err := decodeEvents(entry.Value)
	if err != nil {
		return nil, "", unavailable("decode", err)
	}
	return events, entry.Versionstamp, nil
}

type outcome int

const (
	committed outcome = iota
	conflicted
)

// Append stamps ev with the current time and prepends it, evicting the
// oldest events beyond Capacity. The caller's Timestamp is ignored. It
// returns the array that was committed, which may include events written
// concurrently by other appenders.
func (l *Log) Append(ctx context.Context, ev Event) ([]Event, error) {
	ev.Timestamp = formatTimestamp(l.now())
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		events, res, err := l.tryAppend(ctx, ev)
		if err != nil {
			l.logger.Error("append failed", log.Int("attempt", attempt), log.Err(err))
			return nil, err
		}
		if res == committed {
			l.observer.AppendCommitted(attempt)
			return events, nil
		}
		l.observer.AppendConflict(attempt)
		l.logger.Debug("append conflict", log.Int("attempt", attempt), log.Str("instance", ev.Instance))
	}
	l.observer.AppendExhausted()
	l.logger.Warn("event dropped after conflicts",
		log.Int("attempts", maxAttempts),
		log.Str("source", ev.Source),
		log.Str("type", ev.Type),
		log.Str("instance", ev.Instance),
	)
	return nil, ErrConflictExhausted
}

// tryAppend performs one read-modify-CAS round from a fresh read.
func (l *Log) tryAppend(ctx context.Context, ev Event) ([]Event, outcome, error) {
	current, vs, err := l.read(ctx)
	if err != nil {
		return nil, 0, err
	}
	next := make([]Event, 0, min(len(current)+1, Capacity))
	next = append(next, ev)
	next = append(next, current...)
	evicted := 0
	if len(next) > Capacity {
		evicted = len(next) - Capacity
		next = next[:Capacity]
	}
	b, err := encodeEvents(next)
	if err != nil {
		return nil, 0, fmt.Errorf("eventlog: encode: %w", err)
	}
	_, ok, err := l.store.CompareAndSwap(ctx, l.key, vs, b)
	if err != nil {
		return nil, 0, unavailable("write", err)
	}
	if !ok {
		return nil, conflicted, nil
	}
	if evicted > 0 {
		l.observer.Evicted(evicted)
	}
	return next, committed, nil
}

// Clear unconditionally replaces the log with the empty array. It is not
// coordinated with in-flight appends; one that commits after Clear
// reappears on top of the empty log.
func (l *Log) Clear(ctx context.Context) ([]Event, error) {
	b, _ := encodeEvents(nil)
	if _, err := l.store.Set(ctx, l.key, b); err != nil {
		return nil, unavailable("clear", err)
	}
	l.logger.Info("event log cleared")
	return []Event{}, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
