// Package kv defines the versioned key-value capability the event log is
// built on: a point read that returns the key's current versionstamp, an
// atomic compare-and-swap write conditioned on that versionstamp, and an
// unconditional set.
//
// Backends live in sub-packages:
//   - memory:   in-process map, used by tests and ephemeral runs
//   - pebblekv: Pebble on local disk
//   - rediskv:  Redis, CAS performed by a Lua script
//   - sqlkv:    SQLite or Postgres through database/sql
//
// Example:
//
//	e, _ := store.Get(ctx, kv.Key{"events"})
//	vs, ok, err := store.CompareAndSwap(ctx, e.Key, e.Versionstamp, next)
//	if err == nil && !ok {
//	    // someone else committed between Get and CompareAndSwap
//	}
//	_ = vs
package kv
