package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config declares a logger: level name, format (text|json) and output
// (stderr, stdout, null, or a file path).
type Config struct {
	Level  string `json:"level" yaml:"level" env:"LEVEL"`
	Format string `json:"format" yaml:"format" env:"FORMAT"`
	Output string `json:"output" yaml:"output" env:"OUTPUT"`
}

// ApplyConfig builds a Logger from cfg.
func ApplyConfig(cfg *Config) (Logger, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	var format Format
	switch strings.ToLower(cfg.Format) {
	case "", "text", "console":
		format = FormatText
	case "json":
		format = FormatJSON
	default:
		return nil, fmt.Errorf("log: unknown format %q", cfg.Format)
	}
	sink, err := openOutput(cfg.Output)
	if err != nil {
		return nil, err
	}
	return NewLogger(WithLevel(lvl), WithFormat(format), WithOutput(sink)), nil
}

func openOutput(out string) (zapcore.WriteSyncer, error) {
	switch strings.ToLower(out) {
	case "", "stderr", "console":
		return zapcore.Lock(zapcore.AddSync(stderr())), nil
	case "stdout":
		return zapcore.Lock(zapcore.AddSync(os.Stdout)), nil
	case "null", "none":
		return zapcore.AddSync(io.Discard), nil
	}
	ws, _, err := zap.Open(out)
	if err != nil {
		return nil, fmt.Errorf("log: open output %q: %w", out, err)
	}
	return ws, nil
}

func stderr() io.Writer { return os.Stderr }
