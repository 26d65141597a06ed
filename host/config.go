package host

import (
	"errors"
	"fmt"
	"time"
)

// Config controls the simulated page around the background
type Config struct {
	// SectionHeight is the height of each section in viewport heights
	SectionHeight float64 `yaml:"section_height"`

	// TriggerLine is where sections fire, as a fraction of the viewport from the top
	TriggerLine float64 `yaml:"trigger_line"`

	// RampDuration is the mood tween length. Zero switches moods instantly.
	RampDuration time.Duration `yaml:"ramp_duration"`

	// ScrollFrequency and ScrollDamping shape the scroll spring
	ScrollFrequency float64 `yaml:"scroll_frequency"`
	ScrollDamping   float64 `yaml:"scroll_damping"`

	// WheelStep is the scroll distance in pixels of one wheel notch
	WheelStep float64 `yaml:"wheel_step"`

	// Sections is the scene table, top to bottom
	Sections []Section `yaml:"sections"`
}

// DefaultConfig returns the stock page settings
func DefaultConfig() Config {
	return Config{
		SectionHeight:   1.0,
		TriggerLine:     0.6,
		RampDuration:    700 * time.Millisecond,
		ScrollFrequency: 6.0,
		ScrollDamping:   1.0,
		WheelStep:       120,
		Sections:        DefaultSections(),
	}
}

// Validate checks the page settings
func (c Config) Validate() error {
	var errs []error
	if !(c.SectionHeight > 0) {
		errs = append(errs, fmt.Errorf("section_height must be positive, got %v", c.SectionHeight))
	}
	if !(c.TriggerLine >= 0 && c.TriggerLine <= 1) {
		errs = append(errs, fmt.Errorf("trigger_line must be in [0, 1], got %v", c.TriggerLine))
	}
	if c.RampDuration < 0 {
		errs = append(errs, fmt.Errorf("ramp_duration must not be negative, got %v", c.RampDuration))
	}
	if !(c.ScrollFrequency > 0) {
		errs = append(errs, fmt.Errorf("scroll_frequency must be positive, got %v", c.ScrollFrequency))
	}
	if !(c.ScrollDamping > 0) {
		errs = append(errs, fmt.Errorf("scroll_damping must be positive, got %v", c.ScrollDamping))
	}
	if !(c.WheelStep > 0) {
		errs = append(errs, fmt.Errorf("wheel_step must be positive, got %v", c.WheelStep))
	}
	if _, err := ParseSections(c.Sections); err != nil {
		errs = append(errs, fmt.Errorf("sections: %w", err))
	}
	return errors.Join(errs...)
}
