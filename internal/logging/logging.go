// Package logging builds the zap logger shared by the CLI, the TUI and the web server.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects level, encoding and sinks.
type Config struct {
	Level       string   `yaml:"level"`
	Development bool     `yaml:"development"`
	Outputs     []string `yaml:"outputs"`
}

// ParseLevel maps "debug", "info", "warn", "error" onto zap levels.
// An empty string means info.
func ParseLevel(s string) (zapcore.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// New builds a logger from cfg. Outputs default to stderr.
func New(cfg Config) (*zap.Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	if len(cfg.Outputs) > 0 {
		zc.OutputPaths = cfg.Outputs
		zc.ErrorOutputPaths = cfg.Outputs
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// ForTerminalUI returns a logger that never writes to the terminal.
// Without a file sink it is a no-op.
func ForTerminalUI(cfg Config) (*zap.Logger, error) {
	var files []string
	for _, o := range cfg.Outputs {
		if o != "stdout" && o != "stderr" {
			files = append(files, o)
		}
	}
	if len(files) == 0 {
		return zap.NewNop(), nil
	}
	cfg.Outputs = files
	return New(cfg)
}
