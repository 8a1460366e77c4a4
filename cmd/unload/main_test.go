package main

import (
	"os"
	"path/filepath"
	"testing"

	cfgpkg "github.com/doublemarked/unload-test/internal/config"
)

func startCmdWith(t *testing.T, args ...string) (cfgpkg.Config, error) {
	t.Helper()
	root := newRootCmd()
	start, _, err := root.Find([]string{"server", "start"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if err := start.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return loadConfig(start)
}

func TestLoadConfigLayers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "unload.yaml")
	if err := os.WriteFile(file, []byte("httpAddr: \":9000\"\nstore:\n  driver: memory\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("UNLOAD_GRPC_ADDR", ":6000")

	cfg, err := startCmdWith(t, "--config", file, "--env-file", filepath.Join(dir, "none.env"), "--log-level", "debug")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":9000" || cfg.GRPCAddr != ":6000" {
		t.Fatalf("addrs: %s %s", cfg.HTTPAddr, cfg.GRPCAddr)
	}
	if cfg.Store.Driver != cfgpkg.DriverMemory || cfg.Log.Level != "debug" {
		t.Fatalf("cfg: %+v", cfg)
	}

	cfg, err = startCmdWith(t, "--config", file, "--env-file", filepath.Join(dir, "none.env"), "--http", ":7000")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":7000" {
		t.Fatalf("flag must win over file: %s", cfg.HTTPAddr)
	}
}

func TestLoadConfigDSN(t *testing.T) {
	none := filepath.Join(t.TempDir(), "none.env")
	cfg, err := startCmdWith(t, "--env-file", none, "--store", "postgres", "--dsn", "postgres://u@db/unload")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.PostgresDSN != "postgres://u@db/unload" {
		t.Fatalf("dsn: %+v", cfg.Store)
	}
	if _, err := startCmdWith(t, "--env-file", none, "--store", "memory", "--dsn", "x"); err == nil {
		t.Fatalf("expected --dsn error for memory store")
	}
	if _, err := startCmdWith(t, "--env-file", none, "--store", "etcd"); err == nil {
		t.Fatalf("expected validation error")
	}
}
