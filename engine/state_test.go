package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	tuning := DefaultTuning()
	presets, err := tuning.Presets()
	require.NoError(t, err)
	return NewStore(tuning, presets)
}

func TestStore_ScrollTargetClamped(t *testing.T) {
	tests := []struct {
		name   string
		sample float64
		want   float64
	}{
		{"inside range", 4.2, 4.2},
		{"fast flick down", 120, 5},
		{"fast flick up", -80, -5},
		{"exact limit", 5, 5},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			s.SetScrollVelocitySample(tt.sample)
			assert.Equal(t, tt.want, s.State().ScrollVelocity.Target)
		})
	}
}

func TestStore_ScrollCurrentNeverLeavesRange(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 2000; i++ {
		v := 1e6
		if i%300 < 150 {
			v = -1e6
		}
		s.SetScrollVelocitySample(v)
		s.Advance(1)
		cur := s.State().ScrollVelocity.Current
		require.LessOrEqual(t, cur, 5.0)
		require.GreaterOrEqual(t, cur, -5.0)
	}
}

func TestStore_LowerClampAppliesToCurrent(t *testing.T) {
	s := newTestStore(t)
	s.SetScrollVelocitySample(5)
	for i := 0; i < 600; i++ {
		s.Advance(1)
	}
	require.Greater(t, s.State().ScrollVelocity.Current, 4.9)

	tuning := DefaultTuning()
	tuning.ScrollClamp = 2
	s.setTuning(tuning)

	assert.Equal(t, 2.0, s.State().ScrollVelocity.Target)
	assert.Equal(t, 2.0, s.State().ScrollVelocity.Current)
}

func TestStore_NonFiniteSamplesDropped(t *testing.T) {
	s := newTestStore(t)
	s.SetScrollVelocitySample(3)
	s.SetScrollVelocitySample(math.NaN())
	s.SetScrollVelocitySample(math.Inf(1))
	s.SetMoodValue(math.NaN())
	s.SetPointerTarget(math.Inf(-1), 0)

	st := s.State()
	assert.Equal(t, 3.0, st.ScrollVelocity.Target)
	assert.Equal(t, 0.0, st.Mood.Target)
	assert.Equal(t, 0.0, st.PointerX.Target)
}

func TestStore_AdvanceFollowsRecurrence(t *testing.T) {
	s := newTestStore(t)
	s.SetPointerTarget(0.4, -0.3)
	s.SetScrollVelocitySample(2.5)
	s.SetMoodValue(1)

	prev := s.State()
	for i := 0; i < 50; i++ {
		s.Advance(1)
		cur := s.State()
		assert.InDelta(t, prev.PointerX.Current+(prev.PointerX.Target-prev.PointerX.Current)*0.02, cur.PointerX.Current, 1e-15)
		assert.InDelta(t, prev.PointerY.Current+(prev.PointerY.Target-prev.PointerY.Current)*0.02, cur.PointerY.Current, 1e-15)
		assert.InDelta(t, prev.ScrollVelocity.Current+(prev.ScrollVelocity.Target-prev.ScrollVelocity.Current)*0.02, cur.ScrollVelocity.Current, 1e-15)
		assert.InDelta(t, prev.Mood.Current+(prev.Mood.Target-prev.Mood.Current)*0.01, cur.Mood.Current, 1e-15)
		prev = cur
	}
}

func TestStore_ConvergesWithoutOvershoot(t *testing.T) {
	channels := []struct {
		name string
		set  func(s *Store)
		get  func(st SimState) Damped
	}{
		{"pointer", func(s *Store) { s.SetPointerTarget(0.7, 0) }, func(st SimState) Damped { return st.PointerX }},
		{"scroll", func(s *Store) { s.SetScrollVelocitySample(-4) }, func(st SimState) Damped { return st.ScrollVelocity }},
		{"mood up", func(s *Store) { s.SetMoodTarget(MoodWork) }, func(st SimState) Damped { return st.Mood }},
		{"mood down", func(s *Store) { s.SetMoodTarget(MoodContact) }, func(st SimState) Damped { return st.Mood }},
	}
	for _, ch := range channels {
		t.Run(ch.name, func(t *testing.T) {
			s := newTestStore(t)
			ch.set(s)
			target := ch.get(s.State()).Target
			prevDist := math.Abs(target - ch.get(s.State()).Current)
			for i := 0; i < 3000; i++ {
				s.Advance(1)
				d := ch.get(s.State())
				dist := math.Abs(target - d.Current)
				require.LessOrEqual(t, dist, prevDist, "frame %d moved away from target", i)
				// Same side of the target as the start: no overshoot.
				if target > 0 {
					require.LessOrEqual(t, d.Current, target)
				} else {
					require.GreaterOrEqual(t, d.Current, target)
				}
				prevDist = dist
			}
			assert.InDelta(t, target, ch.get(s.State()).Current, 1e-9)
		})
	}
}

func TestStore_SetMoodIdempotent(t *testing.T) {
	once := newTestStore(t)
	once.SetMoodTarget(MoodHome)

	twice := newTestStore(t)
	twice.SetMoodTarget(MoodHome)
	twice.SetMoodTarget(MoodHome)

	assert.Equal(t, once.State().Mood.Target, twice.State().Mood.Target)
}

func TestStore_MoodValueClamped(t *testing.T) {
	s := newTestStore(t)
	s.SetMoodValue(3)
	assert.Equal(t, 1.0, s.State().Mood.Target)
	s.SetMoodValue(-3)
	assert.Equal(t, -0.5, s.State().Mood.Target)
	s.SetMoodTarget(Mood("unknown"))
	assert.Equal(t, -0.5, s.State().Mood.Target)
}

func TestDampFactor_FrameRateIndependent(t *testing.T) {
	a := newTestStore(t)
	b := newTestStore(t)
	a.SetMoodValue(1)
	b.SetMoodValue(1)

	for i := 0; i < 120; i++ {
		a.Advance(1)
	}
	for i := 0; i < 60; i++ {
		b.Advance(2)
	}
	assert.InDelta(t, a.State().Mood.Current, b.State().Mood.Current, 1e-12)
	assert.Equal(t, 0.0, dampFactor(0.5, 0))
	assert.Equal(t, 0.02, dampFactor(0.02, 1))
}

func TestStore_FogAndColorSmoothing(t *testing.T) {
	s := newTestStore(t)
	tuning := DefaultTuning()
	presets, err := tuning.Presets()
	require.NoError(t, err)

	start := s.State()
	s.SmoothFog(0.03, 1)
	s.BlendColor(presets.Work, 1)
	st := s.State()

	assert.InDelta(t, start.FogDensity.Current+(0.03-start.FogDensity.Current)*0.01, st.FogDensity.Current, 1e-15)
	assert.InDelta(t, start.Color.R+(presets.Work.R-start.Color.R)*0.005, st.Color.R, 1e-12)
	assert.InDelta(t, start.Color.B+(presets.Work.B-start.Color.B)*0.005, st.Color.B, 1e-12)
	assert.Equal(t, presets.Work, st.ColorTarget)
}
