package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Config holds the construction-time settings of the background engine
type Config struct {
	// ObjectCount is the number of wireframe primitives in the pool
	ObjectCount int `yaml:"object_count"`

	// Seed drives object placement. Zero means a fresh seed per run.
	Seed uint64 `yaml:"seed"`

	// Tuning can also be replaced while running, see Engine.ApplyTuning
	Tuning Tuning `yaml:"tuning"`
}

// Tuning holds the per-frame constants of the simulation.
// Damping values are the fraction of the remaining distance covered per 60 Hz frame.
type Tuning struct {
	PointerDamping float64 `yaml:"pointer_damping"`
	ScrollDamping  float64 `yaml:"scroll_damping"`
	MoodDamping    float64 `yaml:"mood_damping"`
	FogDamping     float64 `yaml:"fog_damping"`
	CameraDamping  float64 `yaml:"camera_damping"`

	// ColorStep is the per-frame interpolation step toward the preset color
	ColorStep float64 `yaml:"color_step"`

	// WorkThreshold and ContactThreshold select the color preset from raw mood
	WorkThreshold    float64 `yaml:"work_threshold"`
	ContactThreshold float64 `yaml:"contact_threshold"`

	// BaseSpeed is the group rotation in radians per frame at multiplier 1
	BaseSpeed float64 `yaml:"base_speed"`

	// ScrollDrift converts smoothed scroll velocity into depth units per frame
	ScrollDrift float64 `yaml:"scroll_drift"`

	// BreathRate scales elapsed seconds into the breathing phase
	BreathRate float64 `yaml:"breath_rate"`

	// PointerSensitivity converts pixels from the viewport center into pointer units
	PointerSensitivity float64 `yaml:"pointer_sensitivity"`

	// ScrollClamp bounds the scroll velocity target to [-ScrollClamp, ScrollClamp]
	ScrollClamp float64 `yaml:"scroll_clamp"`

	Palette Palette `yaml:"palette"`
}

// Palette holds hex colors for the mood presets and the fog
type Palette struct {
	Home    string `yaml:"home"`
	Work    string `yaml:"work"`
	Contact string `yaml:"contact"`
	Fog     string `yaml:"fog"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ObjectCount: defaultObjectCount,
		Tuning:      DefaultTuning(),
	}
}

// DefaultTuning returns the stock tuning
func DefaultTuning() Tuning {
	return Tuning{
		PointerDamping:     defaultPointerDamping,
		ScrollDamping:      defaultScrollDamping,
		MoodDamping:        defaultMoodDamping,
		FogDamping:         defaultFogDamping,
		CameraDamping:      defaultCameraDamping,
		ColorStep:          defaultColorStep,
		WorkThreshold:      defaultWorkThreshold,
		ContactThreshold:   defaultContactThreshold,
		BaseSpeed:          defaultBaseSpeed,
		ScrollDrift:        defaultScrollDrift,
		BreathRate:         defaultBreathRate,
		PointerSensitivity: defaultPointerSensitivity,
		ScrollClamp:        defaultScrollClamp,
		Palette: Palette{
			Home:    defaultHomeColor,
			Work:    defaultWorkColor,
			Contact: defaultContactColor,
			Fog:     defaultFogColor,
		},
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.ObjectCount < 0 {
		return fmt.Errorf("object_count must not be negative, got %d", c.ObjectCount)
	}
	return c.Tuning.Validate()
}

// Validate checks that every damping factor is a usable fraction, the thresholds
// are ordered and the palette parses.
func (t Tuning) Validate() error {
	var errs []error
	fractions := []struct {
		name  string
		value float64
	}{
		{"pointer_damping", t.PointerDamping},
		{"scroll_damping", t.ScrollDamping},
		{"mood_damping", t.MoodDamping},
		{"fog_damping", t.FogDamping},
		{"camera_damping", t.CameraDamping},
		{"color_step", t.ColorStep},
	}
	for _, f := range fractions {
		if !(f.value > 0 && f.value <= 1) {
			errs = append(errs, fmt.Errorf("%s must be in (0, 1], got %v", f.name, f.value))
		}
	}
	if !(t.WorkThreshold > t.ContactThreshold) {
		errs = append(errs, fmt.Errorf("work_threshold (%v) must be above contact_threshold (%v)", t.WorkThreshold, t.ContactThreshold))
	}
	if !(t.ScrollClamp > 0) || math.IsInf(t.ScrollClamp, 0) {
		errs = append(errs, fmt.Errorf("scroll_clamp must be positive and finite, got %v", t.ScrollClamp))
	}
	for _, v := range []float64{t.BaseSpeed, t.ScrollDrift, t.BreathRate, t.PointerSensitivity} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("tuning contains a non-finite value: %v", v))
			break
		}
	}
	if _, err := t.Presets(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Presets parses the palette into mood presets
func (t Tuning) Presets() (Presets, error) {
	p := Presets{
		WorkAbove:    t.WorkThreshold,
		ContactBelow: t.ContactThreshold,
	}
	var err error
	for _, c := range []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"home", t.Palette.Home, &p.Home},
		{"work", t.Palette.Work, &p.Work},
		{"contact", t.Palette.Contact, &p.Contact},
		{"fog", t.Palette.Fog, &p.Fog},
	} {
		*c.dst, err = colorful.Hex(c.hex)
		if err != nil {
			return Presets{}, fmt.Errorf("palette %s color %q: %w", c.name, c.hex, err)
		}
	}
	return p, nil
}
