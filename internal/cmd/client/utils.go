package client

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	transports "github.com/doublemarked/unload-test/internal/cmd/client/transports"
)

// grpcAddrFromEnv returns the gRPC server address from UNLOAD_GRPC or a default.
func grpcAddrFromEnv() string {
	if addr := os.Getenv("UNLOAD_GRPC"); addr != "" {
		return addr
	}
	return "127.0.0.1:50051"
}

// HTTPBaseURLFromEnv returns the HTTP base URL from UNLOAD_HTTP or a default.
func HTTPBaseURLFromEnv() string {
	if u := os.Getenv("UNLOAD_HTTP"); u != "" {
		return u
	}
	return "http://127.0.0.1:8080"
}

// dialGRPCContext dials the gRPC endpoint with insecure transport for local/dev.
func dialGRPCContext(_ context.Context) (*grpc.ClientConn, error) {
	return grpc.NewClient(grpcAddrFromEnv(), grpc.WithTransportCredentials(insecure.NewCredentials()))
}

// getTransport selects the transport named by --transport.
func getTransport(name string, baseURL BaseURLFunc) (transports.EventsTransport, error) {
	switch strings.ToLower(name) {
	case "", "http":
		return transports.NewHTTPTransport(baseURL(), nil), nil
	case "grpc":
		return transports.NewGrpcTransport(dialGRPCContext), nil
	default:
		return nil, fmt.Errorf("unknown transport %q; use http|grpc", name)
	}
}

// newInstanceID returns a short random id, five characters like the ones the
// browser page generates.
func newInstanceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:5]
}
