// Package logging builds the zap loggers used by the programs.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the logger flavor and destination
type Config struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
	File        string `yaml:"file"` // empty logs to stderr
}

// DefaultConfig returns the stock logging settings
func DefaultConfig() Config {
	return Config{Level: "info"}
}

// ParseLevel converts a level name to a zap level
func ParseLevel(name string) (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return l, fmt.Errorf("unknown log level %q: %w", name, err)
	}
	return l, nil
}

// Validate checks the level name
func (c Config) Validate() error {
	_, err := ParseLevel(c.Level)
	return err
}

// New builds a logger from cfg. Terminal programs pass a file so log lines
// do not land on the screen they draw to.
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zc.OutputPaths = []string{cfg.File}
		zc.ErrorOutputPaths = []string{cfg.File}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
