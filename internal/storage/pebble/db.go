package pebblestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/pebble"
)

// FsyncMode selects when a committed write is synced to the WAL.
type FsyncMode int

const (
	FsyncModeUnspecified FsyncMode = iota
	// FsyncModeAlways syncs every Put before it returns.
	FsyncModeAlways
	// FsyncModeInterval lets Pebble group WAL syncs within FsyncInterval.
	FsyncModeInterval
	// FsyncModeNever leaves syncing to Pebble.
	FsyncModeNever
)

func (m FsyncMode) String() string {
	switch m {
	case FsyncModeAlways:
		return "always"
	case FsyncModeInterval:
		return "interval"
	case FsyncModeNever:
		return "never"
	default:
		return "unspecified"
	}
}

// ParseFsyncMode maps the store.fsync setting to a FsyncMode. Empty means
// always.
func ParseFsyncMode(s string) (FsyncMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "always":
		return FsyncModeAlways, nil
	case "interval":
		return FsyncModeInterval, nil
	case "never":
		return FsyncModeNever, nil
	}
	return FsyncModeUnspecified, fmt.Errorf("invalid fsync mode %q; use always|interval|never", s)
}

const defaultFsyncInterval = 5 * time.Millisecond

// Options configures Open.
type Options struct {
	DataDir string
	Fsync   FsyncMode
	// FsyncInterval applies to FsyncModeInterval. Zero means 5ms.
	FsyncInterval time.Duration
	// PebbleOptions is passed through to pebble.Open when set.
	PebbleOptions *pebble.Options
	Metrics       MetricsHook
}

func (o Options) pebbleOptions() *pebble.Options {
	po := o.PebbleOptions
	if po == nil {
		po = &pebble.Options{}
	}
	if o.Fsync == FsyncModeInterval {
		interval := o.FsyncInterval
		if interval <= 0 {
			interval = defaultFsyncInterval
		}
		po.WALMinSyncInterval = func() time.Duration { return interval }
	}
	return po
}

// MetricsHook receives storage observations.
type MetricsHook interface {
	ObserveRead(elapsed time.Duration, bytes int)
	ObserveCommit(elapsed time.Duration, bytes int)
}

// NoopMetrics discards observations.
type NoopMetrics struct{}

func (NoopMetrics) ObserveRead(time.Duration, int)   {}
func (NoopMetrics) ObserveCommit(time.Duration, int) {}

// DB is an open Pebble database.
type DB struct {
	inner   *pebble.DB
	sync    *pebble.WriteOptions
	metrics MetricsHook
}

// Open creates or opens the database in opts.DataDir.
func Open(opts Options) (*DB, error) {
	if opts.DataDir == "" {
		return nil, errors.New("pebble: Options.DataDir is required")
	}
	inner, err := pebble.Open(opts.DataDir, opts.pebbleOptions())
	if err != nil {
		return nil, err
	}
	db := &DB{inner: inner, sync: pebble.NoSync, metrics: opts.Metrics}
	if opts.Fsync == FsyncModeAlways || opts.Fsync == FsyncModeUnspecified {
		db.sync = pebble.Sync
	}
	if db.metrics == nil {
		db.metrics = NoopMetrics{}
	}
	return db, nil
}

// Close closes the database.
func (db *DB) Close() error {
	if db == nil || db.inner == nil {
		return nil
	}
	return db.inner.Close()
}

// Get returns a copy of the value stored at key. found is false when the key
// is absent.
func (db *DB) Get(key []byte) (value []byte, found bool, err error) {
	start := time.Now()
	raw, closer, err := db.inner.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	value = append([]byte(nil), raw...)
	_ = closer.Close()
	db.metrics.ObserveRead(time.Since(start), len(value))
	return value, true, nil
}

// Put writes value at key under the configured sync policy. A cancelled ctx
// aborts before anything is written.
func (db *DB) Put(ctx context.Context, key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	if err := db.inner.Set(key, value, db.sync); err != nil {
		return err
	}
	db.metrics.ObserveCommit(time.Since(start), len(key)+len(value))
	return nil
}
