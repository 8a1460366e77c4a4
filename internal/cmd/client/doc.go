// Package client provides the `unload events` command-line client.
//
// The CLI talks to the unload HTTP or gRPC endpoints to read, append to,
// clear and follow the shared event log from a terminal.
//
// # Address configuration
//
// The HTTP base URL is discovered by the application that embeds the
// commands via a BaseURLFunc. The standalone binary reads UNLOAD_HTTP
// (default http://127.0.0.1:8080). The gRPC address is read from the
// UNLOAD_GRPC environment variable (default 127.0.0.1:50051).
//
// Usage
//
//	unload events list
//	unload events list --filter 'event.source == "unload"' --json
//	unload events send --source manual --type beacon
//	unload events send --transport grpc --instance abc12
//	unload events watch --limit 3
//	unload events clear --confirm
package client
