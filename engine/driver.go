package engine

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Capabilities describes the environment, detected once by the host program
type Capabilities struct {
	// ReducedMotion asks for a near-static background for the whole session
	ReducedMotion bool
}

// Mode is the frame strategy selected at construction
type Mode int

const (
	ModeAnimated Mode = iota
	ModeReducedMotion
)

func (m Mode) String() string {
	switch m {
	case ModeAnimated:
		return "animated"
	case ModeReducedMotion:
		return "reduced-motion"
	default:
		return "unknown"
	}
}

// frameMode advances the simulation by one tick
type frameMode interface {
	mode() Mode
	step(e *Engine, steps float64)
}

// animatedMode runs the full pipeline: store, mapper, camera, group, pool.
type animatedMode struct{}

func (animatedMode) mode() Mode { return ModeAnimated }

func (animatedMode) step(e *Engine, steps float64) {
	e.store.Advance(steps)
	st := e.store.State()

	e.params = MapMood(st.Mood.Current, e.presets)
	e.store.SmoothFog(e.params.FogDensity, steps)
	e.store.BlendColor(e.params.Color, steps)

	e.camera.Follow(st.PointerX.Current, st.PointerY.Current, e.tuning.CameraDamping, steps)

	spin := e.tuning.BaseSpeed * e.params.RotationMultiplier * steps
	e.group.Y += spin
	e.group.X += spin * groupPitchRatio

	e.pool.Update(e.params, st.ScrollVelocity.Current, e.elapsed, steps, e.tuning)
}

// reducedMotionMode keeps the camera centered and turns the group at a fixed
// crawl. Targets are still recorded but never smoothed into view.
type reducedMotionMode struct{}

func (reducedMotionMode) mode() Mode { return ModeReducedMotion }

func (reducedMotionMode) step(e *Engine, steps float64) {
	e.camera.Reset()
	e.group.Y += reducedMotionSpin * steps
}

// groupRotation is the rotation shared by every object
type groupRotation struct {
	X, Y float64
}

func (g groupRotation) matrix() mgl64.Mat4 {
	return eulerXYZ(mgl64.Vec3{g.X, g.Y, 0})
}

// Engine is the ambient background simulation. Tick and Step must be called
// from a single goroutine; the control surface methods may be called from any.
type Engine struct {
	logger *zap.Logger

	// mu guards inbox and stats, the only state shared with other goroutines
	mu    sync.Mutex
	inbox inbox
	stats Stats

	mode    frameMode
	tuning  Tuning
	presets Presets
	store   *Store
	pool    *Pool
	camera  Camera
	group   groupRotation
	params  RenderParameters
	elapsed float64
	frames  uint64

	projector projector
	frame     Frame
}

// New creates an engine. The frame mode is fixed for the engine's lifetime.
func New(cfg Config, caps Capabilities, logger *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	presets, err := cfg.Tuning.Presets()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	var mode frameMode = animatedMode{}
	if caps.ReducedMotion {
		mode = reducedMotionMode{}
	}

	e := &Engine{
		logger:  logger,
		mode:    mode,
		tuning:  cfg.Tuning,
		presets: presets,
		store:   NewStore(cfg.Tuning, presets),
		pool:    NewPool(cfg.ObjectCount, rng),
		camera:  NewCamera(1, 1),
		params:  MapMood(0, presets),
	}
	e.frame.Color = e.store.State().Color
	e.frame.Background = presets.Fog
	e.publish()

	logger.Debug("background engine created",
		zap.Stringer("mode", mode.mode()),
		zap.Int("objects", e.pool.Len()),
		zap.Uint64("seed", seed))
	return e, nil
}

// Mode returns the frame strategy in use
func (e *Engine) Mode() Mode { return e.mode.mode() }

// Tick advances the simulation by dt seconds and projects the scene.
// The returned frame is valid until the next Tick.
func (e *Engine) Tick(dt float64) *Frame {
	if !finite(dt) || dt < 0 {
		dt = 0
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	steps := dt / referenceFrame

	e.drainInbox()
	e.elapsed += dt
	e.mode.step(e, steps)
	e.frames++

	st := e.store.State()
	e.frame.Number = e.frames
	e.frame.Width = int(e.camera.Width)
	e.frame.Height = int(e.camera.Height)
	e.frame.Color = st.Color
	e.frame.Background = e.presets.Fog
	e.projector.project(&e.frame, e.pool.Objects(), e.group.matrix(), &e.camera, e.params.Opacity, st.FogDensity.Current)

	e.publish()
	return &e.frame
}

// Step runs one tick and issues its single draw call to t
func (e *Engine) Step(dt float64, t Target) {
	f := e.Tick(dt)
	if t != nil {
		t.Draw(f)
	}
}

// applyTuning swaps tuning between ticks
func (e *Engine) applyTuning(t Tuning, p Presets) {
	e.tuning = t
	e.presets = p
	e.store.setTuning(t)
	e.logger.Debug("tuning applied",
		zap.Float64("mood_damping", t.MoodDamping),
		zap.Float64("base_speed", t.BaseSpeed))
}
