package serverrun

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	cfgpkg "github.com/doublemarked/unload-test/internal/config"
	"github.com/doublemarked/unload-test/internal/runtime"
	grpcserver "github.com/doublemarked/unload-test/internal/server/grpc"
	httpserver "github.com/doublemarked/unload-test/internal/server/http"
	logpkg "github.com/doublemarked/unload-test/pkg/log"
)

type Options struct {
	Config cfgpkg.Config
	// Logger overrides the logger built from Config.Log.
	Logger logpkg.Logger
}

// Run starts the gRPC and HTTP servers and blocks until ctx is cancelled,
// SIGINT/SIGTERM arrives, or a server fails. An empty address disables that
// server.
func Run(ctx context.Context, opts Options) error {
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := opts.Config
	procLogger := opts.Logger
	if procLogger == nil {
		l, err := logpkg.ApplyConfig(&cfg.Log)
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		procLogger = l
	}
	restore := logpkg.RedirectStdLog(procLogger)
	defer restore()
	if bl, ok := procLogger.(*logpkg.BaseLogger); ok {
		defer func() { _ = bl.Sync() }()
	}

	rt, err := runtime.Open(sctx, runtime.Options{Config: cfg, Logger: procLogger})
	if err != nil {
		return err
	}
	defer rt.Close()

	procLogger.Info("Starting unload server",
		logpkg.Str("grpc", cfg.GRPCAddr),
		logpkg.Str("http", cfg.HTTPAddr),
		logpkg.Str("store", cfg.Store.Driver),
		logpkg.Str("level", cfg.Log.Level),
		logpkg.Str("format", cfg.Log.Format),
	)

	g, gctx := errgroup.WithContext(sctx)
	if cfg.GRPCAddr != "" {
		gsrv := grpcserver.New(rt, procLogger)
		g.Go(func() error {
			if err := gsrv.ListenAndServe(gctx, cfg.GRPCAddr); err != nil {
				return fmt.Errorf("grpc: %w", err)
			}
			return nil
		})
	}
	if cfg.HTTPAddr != "" {
		hsrv := httpserver.New(rt, procLogger)
		g.Go(func() error {
			if err := hsrv.ListenAndServe(gctx, cfg.HTTPAddr); err != nil {
				return fmt.Errorf("http: %w", err)
			}
			return nil
		})
	}
	err = g.Wait()
	if err != nil {
		procLogger.Error("server stopped", logpkg.Err(err))
	} else {
		procLogger.Info("server stopped")
	}
	return err
}
