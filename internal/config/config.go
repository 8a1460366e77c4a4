package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doublemarked/unload-test/internal/telemetry"
	"github.com/doublemarked/unload-test/pkg/log"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverPebble   = "pebble"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	HTTPAddr      string           `json:"httpAddr" yaml:"httpAddr" env:"HTTP_ADDR"`
	GRPCAddr      string           `json:"grpcAddr" yaml:"grpcAddr" env:"GRPC_ADDR"`
	CORSOrigins   []string         `json:"corsOrigins" yaml:"corsOrigins" env:"CORS_ORIGINS" envSeparator:","`
	WatchInterval time.Duration    `json:"watchInterval" yaml:"watchInterval" env:"WATCH_INTERVAL"`
	Store         Store            `json:"store" yaml:"store" envPrefix:"STORE_"`
	Log           log.Config       `json:"log" yaml:"log" envPrefix:"LOG_"`
	Telemetry     telemetry.Config `json:"telemetry" yaml:"telemetry" envPrefix:"OTEL_"`
}

// Store selects and parameterizes the kv backend holding the log.
type Store struct {
	Driver string `json:"driver" yaml:"driver" env:"DRIVER"`
	// DataDir is the Pebble directory.
	DataDir string `json:"dataDir" yaml:"dataDir" env:"DATA_DIR"`
	// Fsync is the Pebble WAL policy: always, interval or never.
	Fsync string `json:"fsync" yaml:"fsync" env:"FSYNC"`
	// SQLitePath is the SQLite database file.
	SQLitePath string `json:"sqlitePath" yaml:"sqlitePath" env:"SQLITE_PATH"`
	// PostgresDSN is a lib/pq connection string.
	PostgresDSN string `json:"postgresDSN" yaml:"postgresDSN" env:"POSTGRES_DSN"`
	Redis       Redis  `json:"redis" yaml:"redis" envPrefix:"REDIS_"`
}

// Redis holds the go-redis connection settings.
type Redis struct {
	Addr     string `json:"addr" yaml:"addr" env:"ADDR"`
	Password string `json:"password" yaml:"password" env:"PASSWORD"`
	DB       int    `json:"db" yaml:"db" env:"DB"`
	Prefix   string `json:"prefix" yaml:"prefix" env:"PREFIX"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		HTTPAddr:      ":8080",
		GRPCAddr:      ":50051",
		CORSOrigins:   []string{"*"},
		WatchInterval: time.Second,
		Store: Store{
			Driver:     DriverPebble,
			DataDir:    DefaultDataDir(),
			Fsync:      "always",
			SQLitePath: filepath.Join(DefaultDataDir(), "unload.db"),
			Redis:      Redis{Addr: "localhost:6379"},
		},
		Log: log.Config{Level: "info", Format: "text", Output: "stderr"},
	}
}

// Load reads configuration from a JSON or YAML file (by extension) over the
// defaults. If path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

// UnmarshalJSON accepts watchInterval as a duration string ("1s", "250ms")
// or as integer nanoseconds, matching what the YAML and env loaders take.
func (c *Config) UnmarshalJSON(b []byte) error {
	type plain Config
	aux := struct {
		*plain
		WatchInterval json.RawMessage `json:"watchInterval"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if len(aux.WatchInterval) == 0 || string(aux.WatchInterval) == "null" {
		return nil
	}
	d, err := parseJSONDuration(aux.WatchInterval)
	if err != nil {
		return fmt.Errorf("watchInterval: %w", err)
	}
	c.WatchInterval = d
	return nil
}

func parseJSONDuration(raw json.RawMessage) (time.Duration, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return time.ParseDuration(s)
	}
	var ns int64
	if err := json.Unmarshal(raw, &ns); err != nil {
		return 0, fmt.Errorf("want a duration string or nanoseconds, got %s", raw)
	}
	return time.Duration(ns), nil
}

// Validate checks the fields the runtime depends on.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverRedis:
	case DriverPebble:
		if c.Store.DataDir == "" {
			return fmt.Errorf("config: store.dataDir is required for the pebble driver")
		}
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("config: store.sqlitePath is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("config: store.postgresDSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	if c.HTTPAddr == "" && c.GRPCAddr == "" {
		return fmt.Errorf("config: at least one of httpAddr or grpcAddr must be set")
	}
	return nil
}
