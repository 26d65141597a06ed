package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"voidgeometry/engine"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voidgeometry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
reduced_motion: true
engine:
  object_count: 40
  tuning:
    mood_damping: 0.05
host:
  ramp_duration: 1.5s
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.ReducedMotion)
	assert.True(t, cfg.Capabilities().ReducedMotion)
	assert.Equal(t, 40, cfg.Engine.ObjectCount)
	assert.Equal(t, 0.05, cfg.Engine.Tuning.MoodDamping)
	assert.Equal(t, 1500*time.Millisecond, cfg.Host.RampDuration)

	def := DefaultConfig()
	assert.Equal(t, def.Engine.Tuning.PointerDamping, cfg.Engine.Tuning.PointerDamping)
	assert.Equal(t, def.Engine.Tuning.Palette, cfg.Engine.Tuning.Palette)
	assert.Equal(t, def.Window, cfg.Window)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("engine: [not, a, map"), 0644))
	_, err := Load(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("engine:\n  tuning:\n    scroll_damping: 3\n"), 0644))
	_, err = Load(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scroll_damping")
}

func TestLoad_SectionTable(t *testing.T) {
	dir := t.TempDir()

	custom := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(custom, []byte(`
host:
  sections:
    - id: intro
      mood: Home
    - id: work
      mood: WORK
`), 0644))
	cfg, err := Load(custom)
	require.NoError(t, err)
	require.Len(t, cfg.Host.Sections, 2)
	assert.Equal(t, "work", cfg.Host.Sections[1].ID)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("host:\n  sections:\n    - id: a\n      mood: party\n"), 0644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "party")
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "voidgeometry.yaml")
	cfg := DefaultConfig()
	cfg.Engine.Seed = 99
	cfg.Engine.Tuning.Palette.Work = "#112233"
	cfg.Profiling.Enabled = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("valid values", func(t *testing.T) {
		t.Setenv(EnvReducedMotion, "true")
		t.Setenv(EnvLogLevel, "debug")
		t.Setenv(EnvObjects, "12")
		t.Setenv(EnvSeed, "7")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.True(t, cfg.ReducedMotion)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, 12, cfg.Engine.ObjectCount)
		assert.Equal(t, uint64(7), cfg.Engine.Seed)
	})

	t.Run("malformed values are reported", func(t *testing.T) {
		t.Setenv(EnvReducedMotion, "sometimes")
		t.Setenv(EnvObjects, "many")

		cfg := DefaultConfig()
		err := cfg.applyEnvOverrides()
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvReducedMotion)
		assert.Contains(t, err.Error(), EnvObjects)
		assert.False(t, cfg.ReducedMotion)
	})

	t.Run("override applies through Load", func(t *testing.T) {
		t.Setenv(EnvObjects, "3")
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Engine.ObjectCount)
	})
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Window.Width = 0
	cfg.Terminal.FPS = 0
	cfg.Logging.Level = "loud"
	cfg.Profiling = ProfilingConfig{Enabled: true}
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"window", "terminal", "logging", "profiling"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestWatcher_DeliversReloadedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voidgeometry.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	w, err := NewWatcher(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	var g errgroup.Group
	g.Go(func() error { return w.Run(ctx) })

	changed := DefaultConfig()
	changed.Engine.Tuning.BaseSpeed = 0.002
	require.NoError(t, changed.Save(path))

	select {
	case cfg := <-w.Updates():
		assert.Equal(t, 0.002, cfg.Engine.Tuning.BaseSpeed)
	case <-time.After(5 * time.Second):
		t.Fatal("no config update delivered")
	}

	cancel()
	require.NoError(t, g.Wait())
}

func TestWatcher_IgnoresOtherFilesAndBadEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "voidgeometry.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	w, err := NewWatcher(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	var g errgroup.Group
	g.Go(func() error { return w.Run(ctx) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("engine: [broken"), 0644))

	select {
	case cfg := <-w.Updates():
		t.Fatalf("unexpected update: %+v", cfg)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	require.NoError(t, g.Wait())
}

type tunerFunc func(engine.Tuning) error

func (f tunerFunc) ApplyTuning(t engine.Tuning) error { return f(t) }

func TestWatcher_ForwardAppliesTuning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voidgeometry.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	w, err := NewWatcher(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond

	applied := make(chan engine.Tuning, 4)
	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.Run(gctx) })
	g.Go(func() error {
		return w.Forward(gctx, tunerFunc(func(t engine.Tuning) error {
			applied <- t
			return nil
		}))
	})

	changed := DefaultConfig()
	changed.Engine.Tuning.MoodDamping = 0.04
	require.NoError(t, changed.Save(path))

	select {
	case tuning := <-applied:
		assert.Equal(t, 0.04, tuning.MoodDamping)
	case <-time.After(5 * time.Second):
		t.Fatal("tuning was not forwarded")
	}

	cancel()
	require.NoError(t, g.Wait())
}
