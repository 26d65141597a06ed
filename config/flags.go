package config

import (
	"github.com/spf13/pflag"
)

// Flags are the command line overrides shared by all programs
type Flags struct {
	Path          string
	ReducedMotion bool
	Objects       int
	Seed          uint64
	Verbose       bool
	NoHUD         bool
	Watch         bool
}

// Bind registers the shared flags on fs
func (f *Flags) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.Path, "config", "c", DefaultPath, "settings file")
	fs.BoolVar(&f.ReducedMotion, "reduced-motion", false, "near-static background")
	fs.IntVar(&f.Objects, "objects", 0, "number of wireframe primitives")
	fs.Uint64Var(&f.Seed, "seed", 0, "placement seed (0 picks one per run)")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "debug logging")
	fs.BoolVar(&f.NoHUD, "no-hud", false, "hide the scene and velocity overlay")
	fs.BoolVarP(&f.Watch, "watch", "w", false, "reload tuning when the settings file changes")
}

// Apply copies the flags the user actually set onto cfg
func (f *Flags) Apply(cfg *Config, fs *pflag.FlagSet) {
	if fs.Changed("reduced-motion") {
		cfg.ReducedMotion = f.ReducedMotion
	}
	if fs.Changed("objects") {
		cfg.Engine.ObjectCount = f.Objects
	}
	if fs.Changed("seed") {
		cfg.Engine.Seed = f.Seed
	}
	if f.Verbose {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}
	if f.NoHUD {
		cfg.Window.HUD = false
		cfg.Terminal.HUD = false
	}
}

// LoadWithFlags loads the settings file named by the flags and applies them
func (f *Flags) LoadWithFlags(fs *pflag.FlagSet) (*Config, error) {
	cfg, err := Load(f.Path)
	if err != nil {
		return nil, err
	}
	f.Apply(cfg, fs)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
