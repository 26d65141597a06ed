// Package config loads the voidgeometry settings file shared by the window,
// terminal and simulation programs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"voidgeometry/engine"
	"voidgeometry/host"
	"voidgeometry/logging"
)

// DefaultPath is the settings file looked up when no path is given
const DefaultPath = "voidgeometry.yaml"

// Environment overrides
const (
	EnvReducedMotion = "VOIDGEOMETRY_REDUCED_MOTION"
	EnvLogLevel      = "VOIDGEOMETRY_LOG_LEVEL"
	EnvObjects       = "VOIDGEOMETRY_OBJECTS"
	EnvSeed          = "VOIDGEOMETRY_SEED"
)

// Config holds all settings
type Config struct {
	// ReducedMotion selects the near-static background for the whole session
	ReducedMotion bool `yaml:"reduced_motion"`

	Engine    engine.Config   `yaml:"engine"`
	Window    WindowConfig    `yaml:"window"`
	Terminal  TerminalConfig  `yaml:"terminal"`
	Host      host.Config     `yaml:"host"`
	Logging   logging.Config  `yaml:"logging"`
	Profiling ProfilingConfig `yaml:"profiling"`
}

// WindowConfig configures the desktop window program
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	HUD    bool   `yaml:"hud"`
}

// TerminalConfig configures the terminal program
type TerminalConfig struct {
	FPS int  `yaml:"fps"`
	HUD bool `yaml:"hud"`
}

// ProfilingConfig controls automatic CPU profile capture on frame rate drops
type ProfilingConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Dir          string        `yaml:"dir"`
	FPSThreshold float64       `yaml:"fps_threshold"`
	Cooldown     time.Duration `yaml:"cooldown"`
	Duration     time.Duration `yaml:"duration"`
}

// DefaultConfig returns the stock settings
func DefaultConfig() *Config {
	return &Config{
		Engine: engine.DefaultConfig(),
		Window: WindowConfig{
			Width:  1024,
			Height: 768,
			Title:  "void geometry",
			HUD:    true,
		},
		Terminal: TerminalConfig{
			FPS: 30,
			HUD: true,
		},
		Host:    host.DefaultConfig(),
		Logging: logging.DefaultConfig(),
		Profiling: ProfilingConfig{
			Dir:          "profiles",
			FPSThreshold: 30,
			Cooldown:     10 * time.Second,
			Duration:     5 * time.Second,
		},
	}
}

// Load reads the settings file at path on top of the defaults and applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the settings to path, creating its directory
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides
func (c *Config) applyEnvOverrides() error {
	var errs []error
	if v := os.Getenv(EnvReducedMotion); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvReducedMotion, err))
		} else {
			c.ReducedMotion = b
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvObjects); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvObjects, err))
		} else {
			c.Engine.ObjectCount = n
		}
	}
	if v := os.Getenv(EnvSeed); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeed, err))
		} else {
			c.Engine.Seed = n
		}
	}
	return errors.Join(errs...)
}

// Validate checks every section
func (c *Config) Validate() error {
	var errs []error
	if err := c.Engine.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("engine: %w", err))
	}
	if err := c.Host.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("host: %w", err))
	}
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Terminal.FPS <= 0 {
		errs = append(errs, fmt.Errorf("terminal: fps must be positive, got %d", c.Terminal.FPS))
	}
	if c.Profiling.Enabled && c.Profiling.Dir == "" {
		errs = append(errs, fmt.Errorf("profiling: dir is required when enabled"))
	}
	return errors.Join(errs...)
}

// Capabilities returns the engine capabilities the settings ask for
func (c *Config) Capabilities() engine.Capabilities {
	return engine.Capabilities{ReducedMotion: c.ReducedMotion}
}
