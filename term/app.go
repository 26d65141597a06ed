package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"voidgeometry/engine"
	"voidgeometry/host"
)

// Options configures the terminal loop
type Options struct {
	FPS int
	HUD bool
}

// App runs the engine and the page in a terminal
type App struct {
	screen   tcell.Screen
	engine   *engine.Engine
	page     *host.Page
	renderer *Renderer
	logger   *zap.Logger
	opts     Options

	hudStyle tcell.Style
}

// NewApp creates a terminal app on an initialized screen
func NewApp(screen tcell.Screen, eng *engine.Engine, page *host.Page, opts Options, logger *zap.Logger) *App {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		screen:   screen,
		engine:   eng,
		page:     page,
		renderer: NewRenderer(screen),
		logger:   logger,
		opts:     opts,
		hudStyle: tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	}
}

// Run draws frames at the configured rate until the user quits or ctx is done
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 32)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.screen.ChannelEvents(events, gctx.Done())
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return a.loop(gctx, events)
	})
	return g.Wait()
}

func (a *App) loop(ctx context.Context, events <-chan tcell.Event) error {
	a.resize()

	ticker := time.NewTicker(time.Second / time.Duration(a.opts.FPS))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if a.handle(ev) {
				a.logger.Debug("quit requested")
				return nil
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			a.frame(dt)
		}
	}
}

// frame advances the page and steps the engine once
func (a *App) frame(dt float64) {
	a.page.Update(dt)
	a.engine.Step(dt, a.renderer)
	if a.opts.HUD {
		for i, line := range a.page.Status().Lines() {
			a.renderer.DrawText(1, i, line, a.hudStyle)
		}
	}
	a.screen.Show()
}

func (a *App) resize() {
	w, h := a.renderer.Viewport()
	a.engine.Resize(w, h)
	a.page.Resize(w, h)
	a.logger.Debug("terminal resized", zap.Int("width", w), zap.Int("height", h))
}

// handle reacts to one event and reports whether the app should quit
func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.resize()
		a.screen.Sync()

	case *tcell.EventMouse:
		x, y := ev.Position()
		a.engine.SetPointer(float64(x), float64(y*PixelsPerRow))
		switch {
		case ev.Buttons()&tcell.WheelDown != 0:
			a.page.Wheel(1)
		case ev.Buttons()&tcell.WheelUp != 0:
			a.page.Wheel(-1)
		}

	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return false
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	sections := a.page.Sections()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyDown:
		a.page.Wheel(1)
	case tcell.KeyUp:
		a.page.Wheel(-1)
	case tcell.KeyPgDn:
		a.page.PageBy(1)
	case tcell.KeyPgUp:
		a.page.PageBy(-1)
	case tcell.KeyHome:
		a.page.JumpTo(sections[0].ID)
	case tcell.KeyEnd:
		a.page.JumpTo(sections[len(sections)-1].ID)
	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r == 'q':
			return true
		case r == 'j':
			a.page.Wheel(1)
		case r == 'k':
			a.page.Wheel(-1)
		case r == ' ':
			a.page.PageBy(1)
		case r == 'g':
			a.page.JumpTo(sections[0].ID)
		case r == 'G':
			a.page.JumpTo(sections[len(sections)-1].ID)
		case r == 'h':
			a.opts.HUD = !a.opts.HUD
		case r >= '1' && r <= '9':
			if i := int(r - '1'); i < len(sections) {
				a.page.JumpTo(sections[i].ID)
			}
		}
	}
	return false
}
