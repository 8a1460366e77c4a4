// Package runtime wires configuration, telemetry, the selected kv backend and
// the event log into a single server process. It exposes Open/Close, a
// store-level health check and accessors used by the HTTP and gRPC servers.
//
// Example:
//
//	rt, err := runtime.Open(ctx, runtime.Options{Config: config.Default(), Logger: logger})
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//	_ = rt.CheckHealth(ctx)
//	events, _ := rt.Events().Append(ctx, eventlog.Event{Source: "manual", Type: "fetch", Instance: "abc12"})
package runtime
