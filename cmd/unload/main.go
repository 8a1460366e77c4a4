package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	clientcmd "github.com/doublemarked/unload-test/internal/cmd/client"
	serverrun "github.com/doublemarked/unload-test/internal/cmd/server"
	cfgpkg "github.com/doublemarked/unload-test/internal/config"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "unload",
		Short: "unload event log server and CLI",
		Long:  "unload records page lifecycle events in a bounded, shared log. This CLI runs the server and talks to it.",
	}

	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start the unload server (gRPC and HTTP)",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := serverrun.Run(cmd.Context(), serverrun.Options{Config: cfg}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
	f := serverStartCmd.Flags()
	f.String("config", os.Getenv("UNLOAD_CONFIG"), "Config file (JSON or YAML)")
	f.String("env-file", ".env", "dotenv file loaded before UNLOAD_* variables are read")
	f.String("http", "", "HTTP listen address (default :8080)")
	f.String("grpc", "", "gRPC listen address (default :50051)")
	f.String("store", "", "Store driver: memory|pebble|redis|sqlite|postgres")
	f.String("data-dir", "", "Pebble data directory (if not specified, uses OS-specific application data directory)")
	f.String("fsync", "", "Pebble fsync mode: always|interval|never")
	f.String("dsn", "", "SQLite path or Postgres DSN, depending on --store")
	f.String("redis-addr", "", "Redis address for --store redis")
	f.String("log-level", "", "Log level: debug|info|warn|error")
	f.String("log-format", "", "Log format: text|json")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	rootCmd.AddCommand(clientcmd.NewEventsCommand(clientcmd.HTTPBaseURLFromEnv))
	return rootCmd
}

// loadConfig layers defaults, the config file, .env and UNLOAD_* variables,
// then explicitly set flags.
func loadConfig(cmd *cobra.Command) (cfgpkg.Config, error) {
	fl := cmd.Flags()
	envFile, _ := fl.GetString("env-file")
	if err := cfgpkg.LoadDotEnv(envFile); err != nil {
		return cfgpkg.Config{}, err
	}
	path, _ := fl.GetString("config")
	cfg, err := cfgpkg.Load(path)
	if err != nil {
		return cfgpkg.Config{}, err
	}
	if err := cfgpkg.FromEnv(&cfg); err != nil {
		return cfgpkg.Config{}, err
	}

	set := func(name string, dst *string) {
		if fl.Changed(name) {
			*dst, _ = fl.GetString(name)
		}
	}
	set("http", &cfg.HTTPAddr)
	set("grpc", &cfg.GRPCAddr)
	set("store", &cfg.Store.Driver)
	set("data-dir", &cfg.Store.DataDir)
	set("fsync", &cfg.Store.Fsync)
	set("redis-addr", &cfg.Store.Redis.Addr)
	set("log-level", &cfg.Log.Level)
	set("log-format", &cfg.Log.Format)
	if fl.Changed("dsn") {
		dsn, _ := fl.GetString("dsn")
		switch cfg.Store.Driver {
		case cfgpkg.DriverPostgres:
			cfg.Store.PostgresDSN = dsn
		case cfgpkg.DriverSQLite:
			cfg.Store.SQLitePath = dsn
		default:
			return cfgpkg.Config{}, fmt.Errorf("--dsn only applies to --store sqlite|postgres")
		}
	}
	return cfg, cfg.Validate()
}
