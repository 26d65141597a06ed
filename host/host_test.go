package host

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"voidgeometry/engine"
)

const frameDT = 1.0 / 60.0

type recorder struct {
	velocities []float64
	moodValues []float64
	moods      []engine.Mood
}

func (r *recorder) SetScrollVelocity(v float64) { r.velocities = append(r.velocities, v) }
func (r *recorder) SetMood(m engine.Mood)       { r.moods = append(r.moods, m) }
func (r *recorder) SetMoodValue(v float64)      { r.moodValues = append(r.moodValues, v) }

func newTestPage(t *testing.T, cfg Config) (*Page, *recorder) {
	t.Helper()
	rec := &recorder{}
	p, err := NewPage(cfg, DefaultSections(), rec, zaptest.NewLogger(t))
	require.NoError(t, err)
	p.Resize(800, 600)
	return p, rec
}

func run(p *Page, frames int) {
	for i := 0; i < frames; i++ {
		p.Update(frameDT)
	}
}

func TestDefaultSections(t *testing.T) {
	want := []Section{
		{"01", engine.MoodHome},
		{"02", engine.MoodHome},
		{"03", engine.MoodWork},
		{"04", engine.MoodWork},
		{"05", engine.MoodWork},
		{"06", engine.MoodContact},
		{"07", engine.MoodContact},
	}
	assert.Equal(t, want, DefaultSections())
	assert.Equal(t, want, DefaultConfig().Sections)
}

func TestParseSections(t *testing.T) {
	got, err := ParseSections([]Section{{ID: "intro", Mood: " Home"}, {ID: "cases", Mood: "WORK"}})
	require.NoError(t, err)
	assert.Equal(t, []Section{{"intro", engine.MoodHome}, {"cases", engine.MoodWork}}, got)

	_, err = ParseSections(nil)
	assert.Error(t, err)

	_, err = ParseSections([]Section{
		{ID: "a", Mood: "party"},
		{ID: "", Mood: "home"},
		{ID: "b", Mood: "work"},
		{ID: "b", Mood: "work"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown mood "party"`)
	assert.Contains(t, err.Error(), "section 2 has no id")
	assert.Contains(t, err.Error(), `"b" is listed twice`)
}

func TestNewPage_CanonicalMoods(t *testing.T) {
	rec := &recorder{}
	cfg := DefaultConfig()
	cfg.RampDuration = 0
	p, err := NewPage(cfg, []Section{{ID: "x", Mood: "Contact"}}, rec, nil)
	require.NoError(t, err)

	p.Update(frameDT)
	assert.Equal(t, []engine.Mood{engine.MoodContact}, rec.moods)
	assert.Equal(t, engine.MoodContact, p.Sections()[0].Mood)
}

func TestObserver_EnterAndEnterBack(t *testing.T) {
	o := NewObserver(7, 0.6)
	o.Layout(100)

	steps := []struct {
		pos     float64
		index   int
		entered bool
	}{
		{0, 0, true},     // line at 60
		{10, 0, false},   // still inside the first section
		{50, 1, true},    // line at 110
		{30, 0, true},    // back up into the first section
		{600, 6, true},   // line at 660
		{700, -1, false}, // line below the last section
		{630, 6, true},   // re-entered from below
	}
	for _, s := range steps {
		i, ok := o.Update(s.pos, 100)
		assert.Equal(t, s.entered, ok, "pos %v", s.pos)
		assert.Equal(t, s.index, i, "pos %v", s.pos)
	}
}

func TestRamp_SineInOut(t *testing.T) {
	r := NewRamp(700*time.Millisecond, 0)
	assert.False(t, r.Update(time.Millisecond))

	r.Start(1)
	require.True(t, r.Update(350*time.Millisecond))
	assert.InDelta(t, 0.5, r.Value(), 1e-12)
	assert.True(t, r.Running())

	require.True(t, r.Update(350*time.Millisecond))
	assert.Equal(t, 1.0, r.Value())
	assert.False(t, r.Running())
}

func TestRamp_RestartContinuesFromCurrentValue(t *testing.T) {
	r := NewRamp(700*time.Millisecond, 0)
	r.Start(1)
	r.Update(350 * time.Millisecond)

	r.Start(-0.5)
	prev := r.Value()
	for r.Running() {
		r.Update(10 * time.Millisecond)
		require.LessOrEqual(t, r.Value(), prev)
		prev = r.Value()
	}
	assert.Equal(t, -0.5, r.Value())
}

func TestScroll_SettlesOnTarget(t *testing.T) {
	s := NewScroll(6, 1)
	s.SetLimit(1000)
	s.To(500)

	var sum float64
	var last float64
	frames := 0
	for s.Moving() && frames < 1200 {
		v, ok := s.Update(frameDT)
		require.True(t, ok)
		assert.GreaterOrEqual(t, v, 0.0)
		sum += v
		last = v
		frames++
	}
	assert.False(t, s.Moving())
	assert.Equal(t, 500.0, s.Position())
	assert.Equal(t, 0.0, last)
	assert.InDelta(t, 500, sum, 1.0)

	_, ok := s.Update(frameDT)
	assert.False(t, ok, "a settled scroll reports no samples")
}

func TestScroll_TargetClamped(t *testing.T) {
	s := NewScroll(6, 1)
	s.SetLimit(300)
	s.By(1000)
	assert.Equal(t, 300.0, s.Target())
	s.By(-5000)
	assert.Equal(t, 0.0, s.Target())
	s.To(math.NaN())
	assert.Equal(t, 0.0, s.Target())
}

func TestPage_FirstUpdateEntersFirstSection(t *testing.T) {
	p, rec := newTestPage(t, DefaultConfig())
	p.Update(frameDT)

	st := p.Status()
	assert.Equal(t, "01", st.Section)
	assert.Equal(t, engine.MoodHome, st.Mood)
	require.NotEmpty(t, rec.moodValues)
	assert.Equal(t, 0.0, rec.moodValues[0])
	assert.Empty(t, rec.velocities)
}

func TestPage_JumpRampsMood(t *testing.T) {
	p, rec := newTestPage(t, DefaultConfig())
	p.Update(frameDT)

	require.True(t, p.JumpTo("03"))
	assert.False(t, p.JumpTo("99"))
	run(p, 600)

	st := p.Status()
	assert.Equal(t, "03", st.Section)
	assert.Equal(t, engine.MoodWork, st.Mood)
	assert.False(t, st.Ramping)
	assert.InDelta(t, 1200, st.Position, 1e-9)

	require.NotEmpty(t, rec.velocities)
	assert.Greater(t, maxOf(rec.velocities), 0.0)
	assert.Equal(t, 0.0, rec.velocities[len(rec.velocities)-1])
	assert.Equal(t, 1.0, rec.moodValues[len(rec.moodValues)-1])
	for _, v := range rec.moodValues {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}

	require.True(t, p.JumpTo("06"))
	run(p, 600)
	assert.Equal(t, "06", p.Status().Section)
	assert.Equal(t, -0.5, rec.moodValues[len(rec.moodValues)-1])

	require.True(t, p.JumpTo("01"))
	run(p, 600)
	assert.Equal(t, "01", p.Status().Section)
	assert.Equal(t, 0.0, rec.moodValues[len(rec.moodValues)-1])
	assert.Less(t, minOf(rec.velocities), 0.0)
}

func TestPage_InstantMoodWithoutRamp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RampDuration = 0
	p, rec := newTestPage(t, cfg)

	p.Update(frameDT)
	p.PageBy(2)
	run(p, 600)

	assert.Equal(t, []engine.Mood{engine.MoodHome, engine.MoodHome, engine.MoodWork}, rec.moods)
	assert.Empty(t, rec.moodValues)
}

func TestPage_Wheel(t *testing.T) {
	p, _ := newTestPage(t, DefaultConfig())
	p.Wheel(1)
	run(p, 600)
	assert.InDelta(t, 120, p.Status().Position, 1e-9)
	assert.Equal(t, "01", p.Status().Section)
}

func TestStatus_Lines(t *testing.T) {
	st := Status{Section: "04", Mood: engine.MoodWork, Velocity: -1.236}
	assert.Equal(t, []string{"scene 04 work", "velocity 1.24"}, st.Lines())
	assert.Equal(t, []string{"scene -- ", "velocity 0.00"}, Status{}.Lines())

	st.Clock = time.Date(2026, 3, 1, 9, 5, 3, 0, time.Local)
	assert.Equal(t, []string{"scene 04 work", "velocity 1.24", "time 09:05:03"}, st.Lines())
}

func TestPage_StatusClock(t *testing.T) {
	p, _ := newTestPage(t, DefaultConfig())
	at := time.Date(2026, 3, 1, 23, 59, 58, 0, time.Local)
	p.now = func() time.Time { return at }

	p.Update(frameDT)
	st := p.Status()
	assert.Equal(t, at, st.Clock)
	assert.Equal(t, "time 23:59:58", st.Lines()[2])
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.TriggerLine = 1.5
	cfg.WheelStep = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trigger_line")
	assert.Contains(t, err.Error(), "wheel_step")

	_, err = NewPage(DefaultConfig(), nil, &recorder{}, nil)
	assert.Error(t, err)
}

func maxOf(vs []float64) float64 {
	m := math.Inf(-1)
	for _, v := range vs {
		m = math.Max(m, v)
	}
	return m
}

func minOf(vs []float64) float64 {
	m := math.Inf(1)
	for _, v := range vs {
		m = math.Min(m, v)
	}
	return m
}
