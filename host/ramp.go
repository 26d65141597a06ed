package host

import (
	"math"
	"time"
)

// Ramp tweens a single value with a sine in-out curve. Starting a new ramp
// replaces the running one and continues from wherever it had reached.
type Ramp struct {
	duration time.Duration

	value    float64
	from, to float64
	elapsed  time.Duration
	running  bool
}

// NewRamp creates an idle ramp resting at value
func NewRamp(duration time.Duration, value float64) *Ramp {
	return &Ramp{duration: duration, value: value, from: value, to: value}
}

// Start begins a tween from the current value to target
func (r *Ramp) Start(target float64) {
	r.from = r.value
	r.to = target
	r.elapsed = 0
	r.running = true
}

// Update advances the tween by dt. It reports whether the value changed,
// which includes the final step that lands on the target.
func (r *Ramp) Update(dt time.Duration) bool {
	if !r.running {
		return false
	}
	r.elapsed += dt
	t := 1.0
	if r.duration > 0 {
		t = min(float64(r.elapsed)/float64(r.duration), 1)
	}
	r.value = r.from + (r.to-r.from)*sineInOut(t)
	if t >= 1 {
		r.value = r.to
		r.running = false
	}
	return true
}

// Value returns the current tween value
func (r *Ramp) Value() float64 { return r.value }

// Running reports whether a tween is in progress
func (r *Ramp) Running() bool { return r.running }

func sineInOut(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}
