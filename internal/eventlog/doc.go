// Package eventlog implements the bounded, shared, newest-first event log.
//
// # Overview
//
// The whole log lives under a single key of a versioned kv.Store as a JSON
// array of Event, capped at Capacity entries. There is no in-process lock:
// concurrent appenders, possibly in different processes, coordinate only
// through the store's compare-and-swap.
//
// Append stamps the event once, then makes at most two attempts of
//
//	read (versionstamp, events) -> prepend -> truncate to Capacity -> CompareAndSwap
//
// Every attempt rebuilds the array from its own read. Losing both attempts
// yields ErrConflictExhausted and the event is dropped; a store failure at any
// step yields ErrStoreUnavailable without retry.
//
// API surface
//
//	l := eventlog.New(store, eventlog.Options{Logger: logger})
//	events, err := l.Append(ctx, eventlog.Event{Source: "manual", Type: "beacon", Instance: "abc12"})
//	events, err = l.Read(ctx)
//	events, err = l.ReadFiltered(ctx, `event.source == "unload"`)
//	events, err = l.Clear(ctx)
//	err = l.Watch(ctx, time.Second, func(events []eventlog.Event) error { return nil })
package eventlog
