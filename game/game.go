package game

import (
	"fmt"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"voidgeometry/engine"
	"voidgeometry/host"
)

// fpsWindow is how often the frame rate estimate is refreshed, in seconds
const fpsWindow = 0.5

// fpsMeter estimates frames per second over short windows
type fpsMeter struct {
	fps     float64
	counter int
	timer   float64
}

// tick records one frame of length dt and reports whether the estimate was refreshed
func (m *fpsMeter) tick(dt float64) bool {
	m.timer += dt
	m.counter++
	if m.timer < fpsWindow {
		return false
	}
	m.fps = float64(m.counter) / m.timer
	m.counter = 0
	m.timer = 0
	return true
}

// Game hosts the background engine and the page in an ebiten window.
// The page and input advance in Update; the engine steps once per Draw so
// the simulation runs at the display rate.
type Game struct {
	config   Config
	logger   *zap.Logger
	engine   *engine.Engine
	page     *host.Page
	renderer *Renderer
	input    *Input
	debug    DebugState

	// FPS tracking
	fps fpsMeter

	// Performance profiling, nil when disabled
	profiler        *Profiler
	lastFPSDropTime time.Time
	gameStartTime   time.Time

	// Wall clock of the previous Update and Draw for delta time
	lastUpdateTime time.Time
	lastDrawTime   time.Time

	width, height int
}

// NewGame creates a new game instance around a running engine and page
func NewGame(config Config, eng *engine.Engine, page *host.Page, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	now := time.Now()
	g := &Game{
		config:         config,
		logger:         logger,
		engine:         eng,
		page:           page,
		renderer:       NewRenderer(),
		debug:          DebugState{ShowHUD: config.ShowHUD},
		fps:            fpsMeter{fps: 60},
		gameStartTime:  now,
		lastUpdateTime: now,
		lastDrawTime:   now,
	}
	g.input = NewInput(eng, page, &g.debug)

	if config.Profiling.Enabled {
		p, err := NewProfiler(config.Profiling, logger)
		if err != nil {
			return nil, err
		}
		g.profiler = p
	}

	g.resize(config.ScreenWidth, config.ScreenHeight)
	return g, nil
}

// Update advances input and the page
func (g *Game) Update() error {
	now := time.Now()
	deltaTime := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now

	// Clamp delta time to prevent large jumps
	if deltaTime > 0.1 {
		deltaTime = 0.1
	}

	if err := g.input.Update(); err != nil {
		return err
	}
	g.page.Update(deltaTime)
	g.checkFPSDrop(now)
	return nil
}

// checkFPSDrop starts a profile capture when the frame rate falls below the threshold
func (g *Game) checkFPSDrop(now time.Time) {
	if g.profiler == nil {
		return
	}
	cfg := g.config.Profiling
	if g.fps.fps >= cfg.FPSThreshold || now.Sub(g.gameStartTime) < cfg.Warmup {
		return
	}
	if !g.lastFPSDropTime.IsZero() && now.Sub(g.lastFPSDropTime) < cfg.Cooldown {
		return
	}
	g.lastFPSDropTime = now

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	g.logger.Warn("fps drop detected",
		zap.Float64("fps", g.fps.fps),
		zap.Uint32("num_gc", m.NumGC),
		zap.Uint64("heap_alloc_kb", m.HeapAlloc/1024))

	stats := g.engine.Snapshot()
	reason := fmt.Sprintf("fps%.0f-segments%d", g.fps.fps, stats.Segments)
	if err := g.profiler.CaptureProfile(reason, stats); err != nil {
		g.logger.Warn("failed to capture profile", zap.Error(err))
	}
}

// Draw steps the engine once and renders its frame
func (g *Game) Draw(screen *ebiten.Image) {
	now := time.Now()
	dt := now.Sub(g.lastDrawTime).Seconds()
	g.lastDrawTime = now
	g.fps.tick(dt)

	g.engine.Step(dt, g.renderer.On(screen))
	drawHUD(screen, hudLines(g.page.Status(), g.engine.Snapshot(), g.fps.fps, g.debug))
}

// Layout tracks the window size so the projection always fills it
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *Game) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.width, g.height = width, height
	g.engine.Resize(width, height)
	g.page.Resize(width, height)
	g.logger.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
}

// Close waits for a profile capture in progress to be written
func (g *Game) Close() {
	if g.profiler != nil {
		g.profiler.Wait()
	}
}
