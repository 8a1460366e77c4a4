package runtime

import (
	"context"
	"errors"
	"fmt"

	cfgpkg "github.com/doublemarked/unload-test/internal/config"
	"github.com/doublemarked/unload-test/internal/eventlog"
	"github.com/doublemarked/unload-test/internal/kv"
	"github.com/doublemarked/unload-test/internal/kv/memory"
	"github.com/doublemarked/unload-test/internal/kv/pebblekv"
	"github.com/doublemarked/unload-test/internal/kv/rediskv"
	"github.com/doublemarked/unload-test/internal/kv/sqlkv"
	pebblestore "github.com/doublemarked/unload-test/internal/storage/pebble"
	"github.com/doublemarked/unload-test/internal/telemetry"
	"github.com/doublemarked/unload-test/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	Config cfgpkg.Config
	Logger log.Logger
	// Store overrides the configured backend. The Runtime does not close it.
	Store kv.Store
}

// Runtime wires config, telemetry, the kv backend and the event log for a
// single server process.
type Runtime struct {
	config    cfgpkg.Config
	logger    log.Logger
	store     kv.Store
	ownsStore bool
	telemetry *telemetry.Provider
	events    *eventlog.Log
}

// Open initializes telemetry and the configured store and returns a Runtime.
func Open(ctx context.Context, opts Options) (*Runtime, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	cfg := opts.Config
	if opts.Store == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	tp, err := telemetry.New(ctx, cfg.Telemetry, logger)
	if err != nil {
		return nil, err
	}
	rt := &Runtime{config: cfg, logger: logger.WithComponent("runtime"), telemetry: tp}

	if opts.Store != nil {
		rt.store = opts.Store
	} else {
		store, err := openStore(ctx, cfg.Store, tp)
		if err != nil {
			_ = tp.Shutdown(ctx)
			return nil, err
		}
		rt.store, rt.ownsStore = store, true
		rt.logger.Info("store opened", log.Str("driver", cfg.Store.Driver))
	}

	rt.events = eventlog.New(rt.store, eventlog.Options{Logger: logger, Observer: tp})
	return rt, nil
}

func openStore(ctx context.Context, sc cfgpkg.Store, metrics pebblestore.MetricsHook) (kv.Store, error) {
	switch sc.Driver {
	case cfgpkg.DriverMemory:
		return memory.New(), nil
	case cfgpkg.DriverPebble:
		fsync, err := pebblestore.ParseFsyncMode(sc.Fsync)
		if err != nil {
			return nil, fmt.Errorf("runtime: %w", err)
		}
		return pebblekv.Open(pebblestore.Options{DataDir: sc.DataDir, Fsync: fsync, Metrics: metrics})
	case cfgpkg.DriverRedis:
		return rediskv.New(ctx, rediskv.Options{
			Addr:     sc.Redis.Addr,
			Password: sc.Redis.Password,
			DB:       sc.Redis.DB,
			Prefix:   sc.Redis.Prefix,
		})
	case cfgpkg.DriverSQLite:
		return sqlkv.OpenSQLite(ctx, sc.SQLitePath)
	case cfgpkg.DriverPostgres:
		return sqlkv.OpenPostgres(ctx, sc.PostgresDSN)
	default:
		return nil, fmt.Errorf("runtime: unknown store driver %q", sc.Driver)
	}
}

// Close releases the store (when owned) and flushes telemetry.
func (r *Runtime) Close() error {
	var errs []error
	if r.ownsStore && r.store != nil {
		errs = append(errs, r.store.Close())
	}
	if r.telemetry != nil {
		errs = append(errs, r.telemetry.Shutdown(context.Background()))
	}
	return errors.Join(errs...)
}

// CheckHealth reads the log key to confirm the store answers.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.store == nil {
		return errors.New("store not open")
	}
	_, err := r.store.Get(ctx, r.events.Key())
	return err
}

// Events returns the event log.
func (r *Runtime) Events() *eventlog.Log { return r.events }

// Telemetry returns the metrics provider.
func (r *Runtime) Telemetry() *telemetry.Provider { return r.telemetry }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
