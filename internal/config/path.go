package config

import (
	"os"
	"path/filepath"
	goruntime "runtime"
)

const appDir = "unload"

// DefaultDataDir returns where the Pebble store and the SQLite file live when
// no directory is configured: $XDG_DATA_HOME/unload, then the per-user
// application data directory of the host OS, then ./data.
func DefaultDataDir() string {
	return dataDir(goruntime.GOOS, os.Getenv, os.UserHomeDir)
}

func dataDir(goos string, getenv func(string) string, home func() (string, error)) string {
	if xdg := getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir)
	}
	if goos == "windows" {
		if local := getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, appDir)
		}
	}
	h, err := home()
	if err != nil || h == "" {
		return filepath.Join(".", "data")
	}
	switch goos {
	case "darwin":
		return filepath.Join(h, "Library", "Application Support", appDir)
	case "windows":
		return filepath.Join(h, "AppData", "Local", appDir)
	default:
		return filepath.Join(h, ".local", "share", appDir)
	}
}
