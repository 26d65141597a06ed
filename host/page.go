// Package host simulates the page that sits in front of the background: a
// stack of sections, a smoothed scroll and the mood ramp that runs whenever
// a section comes into view.
package host

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"voidgeometry/engine"
)

// Control is the part of the background engine the page drives
type Control interface {
	SetScrollVelocity(v float64)
	SetMood(m engine.Mood)
	SetMoodValue(v float64)
}

// Status is what the page shows in its corner overlay
type Status struct {
	Section  string
	Mood     engine.Mood
	Velocity float64 // last scroll velocity sample
	Position float64
	Ramping  bool
	Clock    time.Time // wall clock shown next to the readouts
}

// Lines formats the overlay: the scene indicator, the velocity readout and
// the clock when one is set
func (s Status) Lines() []string {
	scene := "--"
	if s.Section != "" {
		scene = s.Section
	}
	lines := []string{
		fmt.Sprintf("scene %s %s", scene, s.Mood),
		fmt.Sprintf("velocity %.2f", math.Abs(s.Velocity)),
	}
	if !s.Clock.IsZero() {
		lines = append(lines, "time "+s.Clock.Format(time.TimeOnly))
	}
	return lines
}

// Page owns the scroll, the section observer and the mood ramp. It is not
// safe for concurrent use; the hosting loop calls it once per frame.
type Page struct {
	cfg      Config
	control  Control
	logger   *zap.Logger
	sections []Section

	scroll   *Scroll
	observer *Observer
	ramp     *Ramp

	width, height float64
	velocity      float64

	now func() time.Time
}

// NewPage creates a page over sections. The page starts at the top and the
// first Update enters the first section.
func NewPage(cfg Config, sections []Section, control Control, logger *zap.Logger) (*Page, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid page config: %w", err)
	}
	sections, err := ParseSections(sections)
	if err != nil {
		return nil, fmt.Errorf("invalid page sections: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Page{
		cfg:      cfg,
		control:  control,
		logger:   logger,
		sections: sections,
		scroll:   NewScroll(cfg.ScrollFrequency, cfg.ScrollDamping),
		observer: NewObserver(len(sections), cfg.TriggerLine),
		ramp:     NewRamp(cfg.RampDuration, 0),
		now:      time.Now,
	}
	p.Resize(1, 1)
	return p, nil
}

// Resize lays the sections out for a new viewport
func (p *Page) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.width, p.height = float64(width), float64(height)
	sectionHeight := p.cfg.SectionHeight * p.height
	p.observer.Layout(sectionHeight)
	p.scroll.SetLimit(sectionHeight*float64(len(p.sections)) - p.height)
}

// ScrollBy moves the scroll target by dy pixels
func (p *Page) ScrollBy(dy float64) {
	p.scroll.By(dy)
}

// Wheel scrolls by a number of wheel notches
func (p *Page) Wheel(notches float64) {
	p.scroll.By(notches * p.cfg.WheelStep)
}

// PageBy scrolls by a number of viewport heights
func (p *Page) PageBy(pages float64) {
	p.scroll.By(pages * p.height)
}

// JumpTo scrolls smoothly to the top of the section with the given id
func (p *Page) JumpTo(id string) bool {
	i := indexOf(p.sections, id)
	if i < 0 {
		return false
	}
	p.scroll.To(p.observer.Top(i))
	return true
}

// Sections returns the page's section table
func (p *Page) Sections() []Section { return p.sections }

// Update advances the page by dt seconds: the scroll spring, the section
// observer and the running mood ramp, in that order.
func (p *Page) Update(dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	if v, ok := p.scroll.Update(dt); ok {
		p.velocity = v
		p.control.SetScrollVelocity(v)
	}

	if i, entered := p.observer.Update(p.scroll.Position(), p.height); entered {
		p.enter(p.sections[i])
	}

	if p.ramp.Update(time.Duration(dt * float64(time.Second))) {
		p.control.SetMoodValue(p.ramp.Value())
	}
}

func (p *Page) enter(s Section) {
	target, ok := s.Mood.Value()
	if !ok {
		return
	}
	p.logger.Debug("section entered", zap.String("section", s.ID), zap.String("mood", string(s.Mood)))
	if p.cfg.RampDuration == 0 {
		p.ramp = NewRamp(0, target)
		p.control.SetMood(s.Mood)
		return
	}
	p.ramp.Start(target)
}

// Status returns the overlay state
func (p *Page) Status() Status {
	st := Status{
		Velocity: p.velocity,
		Position: p.scroll.Position(),
		Ramping:  p.ramp.Running(),
		Clock:    p.now(),
	}
	if i, ok := p.observer.Active(); ok {
		st.Section = p.sections[i].ID
		st.Mood = p.sections[i].Mood
	}
	return st
}
