// Package config provides loading and environment overlay for the unload
// server configuration. It exposes a Default() baseline, file loading (JSON
// or YAML), .env files and UNLOAD_* environment variables.
//
// Example:
//
//	_ = config.LoadDotEnv()
//	cfg, err := config.Load("/etc/unload.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := config.FromEnv(&cfg); err != nil {
//	    return err
//	}
//	rt, _ := runtime.Open(ctx, runtime.Options{Config: cfg})
//	defer rt.Close()
package config
