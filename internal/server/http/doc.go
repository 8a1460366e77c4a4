// Package httpserver serves the event log over HTTP: GET, POST and DELETE on
// /events, a Server-Sent Events feed on /events/stream and /healthz.
//
// Example:
//
//	rt, _ := runtime.Open(ctx, runtime.Options{Config: config.Default()})
//	s := httpserver.New(rt, logger)
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = s.ListenAndServe(ctx, ":8080")
package httpserver
