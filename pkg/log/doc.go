// Package log provides the structured logging facade used across the service.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// simple Field type for structured context. It is backed by zap: the text
// format maps to zap's console encoder and the json format to its JSON
// encoder, so output stays consistent across the codebase while callers only
// depend on this facade.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormat(log.FormatText),
//	)
//	l = l.With(log.Component("server"), log.Str("store", "pebble"))
//	l.Info("server started", log.Int("port", 8080))
//
// # Configuration
//
// Use ApplyConfig to build a logger from a declarative Config, supporting JSON
// or text formatting and an output destination (stderr, stdout, null or a
// file path).
//
// # Interop
//
// Libraries that write through the standard library logger (Pebble does) can
// be routed into a Logger with RedirectStdLog.
package log
