package host

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	// settle thresholds in pixels and pixels per second
	settlePosition = 0.5
	settleVelocity = 1.0

	referenceFrame = 1.0 / 60.0
)

// Scroll is a spring-smoothed scroll position. Wheel input moves the target;
// the position follows it every frame.
type Scroll struct {
	frequency float64
	damping   float64

	spring harmonica.Spring
	dt     float64 // delta the spring was built for

	pos, vel float64
	target   float64
	max      float64
	moving   bool
}

// NewScroll creates a scroll resting at the top of the page
func NewScroll(frequency, damping float64) *Scroll {
	return &Scroll{frequency: frequency, damping: damping}
}

// SetLimit sets the largest scroll offset and pulls the position inside it
func (s *Scroll) SetLimit(max float64) {
	s.max = math.Max(0, max)
	s.target = s.clampTarget(s.target)
	if s.pos > s.max {
		s.pos = s.max
	}
}

// By moves the target by dy pixels
func (s *Scroll) By(dy float64) {
	s.To(s.target + dy)
}

// To moves the target to an absolute offset
func (s *Scroll) To(y float64) {
	s.target = s.clampTarget(y)
	if s.target != s.pos {
		s.moving = true
	}
}

// Jump places the position on y without easing
func (s *Scroll) Jump(y float64) {
	s.target = s.clampTarget(y)
	s.pos = s.target
	s.vel = 0
	s.moving = true
}

// Update advances the spring by dt seconds. It returns the velocity sample,
// the position change expressed per 60 Hz frame, and whether this was a
// scroll frame at all. Once settled the scroll reports a final zero sample
// and then stays quiet.
func (s *Scroll) Update(dt float64) (velocity float64, ok bool) {
	if !s.moving || dt <= 0 {
		return 0, false
	}
	if dt != s.dt {
		s.spring = harmonica.NewSpring(dt, s.frequency, s.damping)
		s.dt = dt
	}
	prev := s.pos
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if math.Abs(s.pos-s.target) < settlePosition && math.Abs(s.vel) < settleVelocity {
		s.pos = s.target
		s.vel = 0
		s.moving = false
		return 0, true
	}
	return (s.pos - prev) * referenceFrame / dt, true
}

// Position returns the current scroll offset
func (s *Scroll) Position() float64 { return s.pos }

// Target returns the offset the scroll is heading to
func (s *Scroll) Target() float64 { return s.target }

// Moving reports whether the scroll has yet to settle
func (s *Scroll) Moving() bool { return s.moving }

func (s *Scroll) clampTarget(y float64) float64 {
	if math.IsNaN(y) {
		return s.target
	}
	return math.Min(math.Max(y, 0), s.max)
}
