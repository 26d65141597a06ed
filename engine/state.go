package engine

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Damped is a scalar that follows its target by exponential smoothing
type Damped struct {
	Current float64
	Target  float64
}

// advance moves Current toward Target by the fraction f of the remaining distance
func (d *Damped) advance(f float64) {
	d.Current += (d.Target - d.Current) * f
}

// SimState is the smoothed state behind every visual parameter
type SimState struct {
	PointerX       Damped
	PointerY       Damped
	ScrollVelocity Damped
	Mood           Damped

	// FogDensity follows the mapped fog target, a second filter on top of mood
	FogDensity Damped

	// Color is the material color; it approaches the selected preset in RGB
	Color       colorful.Color
	ColorTarget colorful.Color
}

// Store holds the current and target values of the simulation.
// It is not safe for concurrent use; the engine serializes access.
type Store struct {
	state  SimState
	tuning Tuning
}

// NewStore creates a store at rest on the home mood
func NewStore(t Tuning, p Presets) *Store {
	initial := MapMood(0, p)
	s := &Store{tuning: t}
	s.state.FogDensity = Damped{Current: initial.FogDensity, Target: initial.FogDensity}
	s.state.Color = initial.Color
	s.state.ColorTarget = initial.Color
	return s
}

// SetScrollVelocitySample records a scroll velocity target, clamped to the scroll limit
func (s *Store) SetScrollVelocitySample(v float64) {
	if !finite(v) {
		return
	}
	limit := s.tuning.ScrollClamp
	s.state.ScrollVelocity.Target = clamp(v, -limit, limit)
}

// SetMoodTarget records a named mood. Unknown names are ignored.
func (s *Store) SetMoodTarget(m Mood) {
	if v, ok := m.Value(); ok {
		s.state.Mood.Target = v
	}
}

// SetMoodValue records a continuous mood target, clamped to the mood axis
func (s *Store) SetMoodValue(v float64) {
	if !finite(v) {
		return
	}
	s.state.Mood.Target = clampMood(v)
}

// SetPointerTarget records the pointer offset target in pointer units
func (s *Store) SetPointerTarget(x, y float64) {
	if !finite(x) || !finite(y) {
		return
	}
	s.state.PointerX.Target = x
	s.state.PointerY.Target = y
}

// Advance smooths pointer, scroll velocity and mood by the given number of frames
func (s *Store) Advance(steps float64) {
	t := s.tuning
	pf := dampFactor(t.PointerDamping, steps)
	s.state.PointerX.advance(pf)
	s.state.PointerY.advance(pf)
	s.state.ScrollVelocity.advance(dampFactor(t.ScrollDamping, steps))
	s.state.Mood.advance(dampFactor(t.MoodDamping, steps))
}

// SmoothFog moves the fog density toward target
func (s *Store) SmoothFog(target, steps float64) {
	s.state.FogDensity.Target = target
	s.state.FogDensity.advance(dampFactor(s.tuning.FogDamping, steps))
}

// BlendColor moves the material color toward target by linear RGB interpolation
func (s *Store) BlendColor(target colorful.Color, steps float64) {
	s.state.ColorTarget = target
	s.state.Color = s.state.Color.BlendRgb(target, dampFactor(s.tuning.ColorStep, steps))
}

// State returns a copy of the current state
func (s *Store) State() SimState {
	return s.state
}

func (s *Store) setTuning(t Tuning) {
	s.tuning = t
	limit := t.ScrollClamp
	s.state.ScrollVelocity.Target = clamp(s.state.ScrollVelocity.Target, -limit, limit)
	s.state.ScrollVelocity.Current = clamp(s.state.ScrollVelocity.Current, -limit, limit)
}

// dampFactor converts a per-frame smoothing constant into the factor for
// a span of steps frames, so the result does not depend on frame rate.
func dampFactor(k, steps float64) float64 {
	switch {
	case steps <= 0:
		return 0
	case steps == 1:
		return k
	}
	return 1 - math.Pow(1-k, steps)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
