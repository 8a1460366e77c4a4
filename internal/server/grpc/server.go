package grpcserver

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	eventlogv1 "github.com/doublemarked/unload-test/api/eventlog/v1"
	"github.com/doublemarked/unload-test/internal/runtime"
	logpkg "github.com/doublemarked/unload-test/pkg/log"
)

// DefaultStopTimeout bounds how long shutdown waits for in-flight RPCs before
// closing connections.
const DefaultStopTimeout = 5 * time.Second

// Server owns the gRPC server instance and runtime.
type Server struct {
	rt     *runtime.Runtime
	grpc   *grpc.Server
	logger logpkg.Logger

	// done is cancelled when shutdown starts; Watch streams end with it.
	done        context.Context
	stopStreams context.CancelFunc
	stopTimeout time.Duration
	stopOnce    sync.Once
}

// New constructs a gRPC server and registers services.
func New(rt *runtime.Runtime, logger logpkg.Logger, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = logpkg.NewNop()
	}
	logger = logger.WithComponent("grpc")
	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(recoverUnary(logger), logUnary(logger)),
		grpc.ChainStreamInterceptor(recoverStream(logger)),
	}, opts...)
	done, cancel := context.WithCancel(context.Background())
	s := &Server{
		rt:          rt,
		grpc:        grpc.NewServer(opts...),
		logger:      logger,
		done:        done,
		stopStreams: cancel,
		stopTimeout: DefaultStopTimeout,
	}
	healthpb.RegisterHealthServer(s.grpc, &healthSvc{rt: rt})
	eventlogv1.RegisterEventLogServer(s.grpc, &eventLogSvc{rt: rt, logger: logger, done: done})
	return s
}

// ListenAndServe binds to addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.logger.Info("listening", logpkg.Str("addr", l.Addr().String()))
	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(l) }()
	select {
	case <-ctx.Done():
		s.Close()
		return nil
	case err := <-errCh:
		return err
	}
}

// Serve accepts connections on l until Close.
func (s *Server) Serve(l net.Listener) error {
	return s.grpc.Serve(l)
}

// Close ends open Watch streams, then stops gracefully. RPCs still running
// after the stop timeout are cut off.
func (s *Server) Close() {
	s.stopOnce.Do(func() {
		s.stopStreams()
		stopped := make(chan struct{})
		go func() {
			s.grpc.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(s.stopTimeout):
			s.logger.Warn("graceful stop timed out; closing connections", logpkg.Dur("timeout", s.stopTimeout))
			s.grpc.Stop()
			<-stopped
		}
	})
}

func logUnary(logger logpkg.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			logger.Debug("rpc failed", logpkg.Str("method", info.FullMethod), logpkg.Err(err))
		}
		return resp, err
	}
}

func recoverUnary(logger logpkg.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if p := recover(); p != nil {
				err = panicStatus(logger, info.FullMethod, p)
			}
		}()
		return handler(ctx, req)
	}
}

func recoverStream(logger logpkg.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = panicStatus(logger, info.FullMethod, p)
			}
		}()
		return handler(srv, ss)
	}
}

func panicStatus(logger logpkg.Logger, method string, p any) error {
	logger.Error("rpc panicked", logpkg.Str("method", method), logpkg.Str("panic", fmt.Sprint(p)))
	return status.Error(codes.Internal, "internal error")
}
