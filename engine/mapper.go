package engine

import "github.com/lucasb-eyer/go-colorful"

// Presets selects one of three colors from the raw mood value
type Presets struct {
	WorkAbove    float64
	ContactBelow float64

	Home    colorful.Color
	Work    colorful.Color
	Contact colorful.Color
	Fog     colorful.Color
}

// Select returns the preset for a raw (not normalized) mood value
func (p Presets) Select(mood float64) Mood {
	switch {
	case mood > p.WorkAbove:
		return MoodWork
	case mood < p.ContactBelow:
		return MoodContact
	default:
		return MoodHome
	}
}

// Color returns the color of a preset
func (p Presets) Color(m Mood) colorful.Color {
	switch m {
	case MoodWork:
		return p.Work
	case MoodContact:
		return p.Contact
	default:
		return p.Home
	}
}

// RenderParameters are the visual parameters derived from mood each frame
type RenderParameters struct {
	RotationMultiplier float64 `yaml:"rotation_multiplier"`
	Opacity            float64 `yaml:"opacity"`
	FogDensity         float64 `yaml:"fog_density"` // target; the store smooths toward it
	BreathingAmplitude float64 `yaml:"breathing_amplitude"`
	Preset             Mood    `yaml:"preset"`

	Color colorful.Color `yaml:"-"` // target color of Preset
}

// NormalizeMood maps the mood axis [-0.5, 1.0] onto [0, 1]
func NormalizeMood(mood float64) float64 {
	return clamp((mood-moodMin)/(moodMax-moodMin), 0, 1)
}

// MapMood derives render parameters from the current mood
func MapMood(mood float64, p Presets) RenderParameters {
	n := NormalizeMood(mood)
	preset := p.Select(mood)
	return RenderParameters{
		RotationMultiplier: 0.5 + n*1.5,
		Opacity:            0.15 + n*0.3,
		FogDensity:         0.06 - n*0.03,
		BreathingAmplitude: 0.1 + n*0.2,
		Preset:             preset,
		Color:              p.Color(preset),
	}
}
