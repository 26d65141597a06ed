package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"voidgeometry/config"
	"voidgeometry/engine"
	"voidgeometry/game"
	"voidgeometry/host"
	"voidgeometry/logging"
)

var flags config.Flags

var rootCmd = &cobra.Command{
	Use:   "voidgeometry",
	Short: "Ambient wireframe background in a desktop window",
	Long: `Draws a field of drifting wireframe shapes behind a simulated page.

Scroll with the wheel, arrows, j/k or PgUp/PgDn; the page's sections set the
mood of the scene. Number keys jump to a section, F1 cycles the overlay and
Esc quits.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags.Bind(rootCmd.Flags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := flags.LoadWithFlags(cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	eng, err := engine.New(cfg.Engine, cfg.Capabilities(), logger)
	if err != nil {
		logger.Error("background unavailable", zap.Error(err))
		return err
	}
	page, err := host.NewPage(cfg.Host, cfg.Host.Sections, eng, logger)
	if err != nil {
		return err
	}

	g, err := game.NewGame(windowConfig(cfg), eng, page, logger)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		return err
	}
	defer g.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	var bg errgroup.Group
	if flags.Watch {
		w, err := config.NewWatcher(flags.Path, logger)
		if err != nil {
			return err
		}
		bg.Go(func() error { return w.Run(ctx) })
		bg.Go(func() error { return w.Forward(ctx, eng) })
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizable(true)

	logger.Info("starting window",
		zap.String("mode", eng.Mode().String()),
		zap.Int("objects", cfg.Engine.ObjectCount),
		zap.Bool("watch", flags.Watch))

	runErr := ebiten.RunGame(g)
	cancel()
	if err := bg.Wait(); err != nil {
		logger.Warn("config watcher stopped", zap.Error(err))
	}
	if runErr != nil {
		logger.Error("window closed with error", zap.Error(runErr))
		return fmt.Errorf("run window: %w", runErr)
	}
	return nil
}

// windowConfig maps the shared settings onto the window program's own
func windowConfig(cfg *config.Config) game.Config {
	gc := game.DefaultConfig()
	gc.ScreenWidth = cfg.Window.Width
	gc.ScreenHeight = cfg.Window.Height
	gc.Title = cfg.Window.Title
	gc.ShowHUD = cfg.Window.HUD
	gc.Profiling.Enabled = cfg.Profiling.Enabled
	gc.Profiling.Dir = cfg.Profiling.Dir
	gc.Profiling.FPSThreshold = cfg.Profiling.FPSThreshold
	gc.Profiling.Cooldown = cfg.Profiling.Cooldown
	gc.Profiling.Duration = cfg.Profiling.Duration
	return gc
}
