// Package pebblestore opens a Pebble database for single-record reads and
// writes under a configurable WAL sync policy, reporting read sizes and commit
// latencies to an optional MetricsHook.
//
//	db, err := pebblestore.Open(pebblestore.Options{DataDir: dir})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//	if err := db.Put(ctx, []byte("kv/events"), record); err != nil {
//	    return err
//	}
//	record, found, err := db.Get([]byte("kv/events"))
package pebblestore
