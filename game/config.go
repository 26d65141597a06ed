package game

import "time"

// Config holds the window program settings
type Config struct {
	// ScreenWidth is the initial window width in pixels
	ScreenWidth int

	// ScreenHeight is the initial window height in pixels
	ScreenHeight int

	// Title is the window title
	Title string

	// ShowHUD starts with the scene and velocity overlay visible
	ShowHUD bool

	// Profiling configures capture on frame rate drops
	Profiling ProfilerConfig
}

// ProfilerConfig controls the FPS-drop profiler
type ProfilerConfig struct {
	// Enabled turns on FPS-drop detection
	Enabled bool

	// Dir receives the captured profiles
	Dir string

	// FPSThreshold is the frame rate below which a capture is started
	FPSThreshold float64

	// Cooldown is the minimum time between two captures
	Cooldown time.Duration

	// Duration is how long each capture runs
	Duration time.Duration

	// Warmup ignores drops right after launch while assets load
	Warmup time.Duration
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  1024,
		ScreenHeight: 768,
		Title:        "void geometry",
		ShowHUD:      true,
		Profiling: ProfilerConfig{
			Dir:          "profiles",
			FPSThreshold: 30,
			Cooldown:     10 * time.Second, // Don't capture more than once every 10 seconds
			Duration:     5 * time.Second,
			Warmup:       3 * time.Second,
		},
	}
}
