package engine

import "fmt"

// inbox collects target writes from other goroutines until the next tick.
// Only the latest write per channel survives, which matches how targets
// behave: a newer target simply replaces an older one.
type inbox struct {
	scroll    float64
	scrollSet bool

	mood    float64
	moodSet bool

	pointerX, pointerY float64
	pointerSet         bool

	width, height int
	resized       bool

	tuning  *Tuning
	presets Presets
}

// SetScrollVelocity forwards a raw scroll velocity sample (roughly pixels
// per frame). It is clamped when it reaches the store.
func (e *Engine) SetScrollVelocity(v float64) {
	e.mu.Lock()
	e.inbox.scroll = v
	e.inbox.scrollSet = true
	e.mu.Unlock()
}

// SetMood sets the mood target by name. Unknown names are ignored.
func (e *Engine) SetMood(m Mood) {
	v, ok := m.Value()
	if !ok {
		return
	}
	e.SetMoodValue(v)
}

// SetMoodValue sets a continuous mood target, typically one step of a ramp
// driven by the host page.
func (e *Engine) SetMoodValue(v float64) {
	e.mu.Lock()
	e.inbox.mood = v
	e.inbox.moodSet = true
	e.mu.Unlock()
}

// SetPointer records the pointer position in viewport pixels
func (e *Engine) SetPointer(px, py float64) {
	e.mu.Lock()
	e.inbox.pointerX = px
	e.inbox.pointerY = py
	e.inbox.pointerSet = true
	e.mu.Unlock()
}

// Resize updates the viewport size in pixels
func (e *Engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.mu.Lock()
	e.inbox.width = width
	e.inbox.height = height
	e.inbox.resized = true
	e.mu.Unlock()
}

// ApplyTuning validates t and queues it for the next tick
func (e *Engine) ApplyTuning(t Tuning) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("rejecting tuning: %w", err)
	}
	p, err := t.Presets()
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.inbox.tuning = &t
	e.inbox.presets = p
	e.mu.Unlock()
	return nil
}

// drainInbox moves queued writes into the store. Called only from Tick.
func (e *Engine) drainInbox() {
	e.mu.Lock()
	in := e.inbox
	e.inbox.scrollSet = false
	e.inbox.moodSet = false
	e.inbox.pointerSet = false
	e.inbox.resized = false
	e.inbox.tuning = nil
	e.mu.Unlock()

	if in.tuning != nil {
		e.applyTuning(*in.tuning, in.presets)
	}
	if in.resized {
		e.camera.Width = float64(in.width)
		e.camera.Height = float64(in.height)
	}
	if in.scrollSet {
		e.store.SetScrollVelocitySample(in.scroll)
	}
	if in.moodSet {
		e.store.SetMoodValue(in.mood)
	}
	if in.pointerSet {
		s := e.tuning.PointerSensitivity
		e.store.SetPointerTarget(
			(in.pointerX-e.camera.Width/2)*s,
			(in.pointerY-e.camera.Height/2)*s,
		)
	}
}

// Stats is a read-only view of the engine after the latest tick
type Stats struct {
	Mode           string           `yaml:"mode"`
	Frame          uint64           `yaml:"frame"`
	Elapsed        float64          `yaml:"elapsed"`
	PointerX       float64          `yaml:"pointer_x"`
	PointerY       float64          `yaml:"pointer_y"`
	ScrollVelocity float64          `yaml:"scroll_velocity"`
	ScrollTarget   float64          `yaml:"scroll_target"`
	Mood           float64          `yaml:"mood"`
	MoodTarget     float64          `yaml:"mood_target"`
	FogDensity     float64          `yaml:"fog_density"`
	Color          string           `yaml:"color"`
	GroupRotationY float64          `yaml:"group_rotation_y"`
	Segments       int              `yaml:"segments"`
	Params         RenderParameters `yaml:"params"`
}

// Snapshot returns the stats of the latest tick. Safe from any goroutine.
func (e *Engine) Snapshot() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

func (e *Engine) publish() {
	st := e.store.State()
	s := Stats{
		Mode:           e.mode.mode().String(),
		Frame:          e.frames,
		Elapsed:        e.elapsed,
		PointerX:       st.PointerX.Current,
		PointerY:       st.PointerY.Current,
		ScrollVelocity: st.ScrollVelocity.Current,
		ScrollTarget:   st.ScrollVelocity.Target,
		Mood:           st.Mood.Current,
		MoodTarget:     st.Mood.Target,
		FogDensity:     st.FogDensity.Current,
		Color:          st.Color.Clamped().Hex(),
		GroupRotationY: e.group.Y,
		Segments:       len(e.frame.Segments),
		Params:         e.params,
	}
	e.mu.Lock()
	e.stats = s
	e.mu.Unlock()
}
