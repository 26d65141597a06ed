// Command voidterm draws the ambient background in a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"voidgeometry/config"
	"voidgeometry/engine"
	"voidgeometry/host"
	"voidgeometry/logging"
	"voidgeometry/term"
)

const defaultLogFile = "voidterm.log"

var (
	flags   config.Flags
	logFile string
	fps     int
)

var rootCmd = &cobra.Command{
	Use:   "voidterm",
	Short: "Ambient wireframe background in the terminal",
	Long: `Renders the drifting wireframe field with shaded characters.

j/k and the arrows scroll, PgUp/PgDn and space page, g/G jump to the ends,
1-9 jump to a section, h toggles the overlay and q quits. The mouse moves
the parallax and the wheel scrolls.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags.Bind(rootCmd.Flags())
	rootCmd.Flags().StringVar(&logFile, "log-file", defaultLogFile, "log destination (the screen is taken)")
	rootCmd.Flags().IntVar(&fps, "fps", 0, "frames per second (0 uses the settings file)")
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
	if cfg.Logging.File == "" {
		cfg.Logging.File = logFile
	}
	if fps > 0 {
		cfg.Terminal.FPS = fps
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	eng, err := engine.New(cfg.Engine, cfg.Capabilities(), logger)
	if err != nil {
		return err
	}
	page, err := host.NewPage(cfg.Host, cfg.Host.Sections, eng, logger)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := term.NewApp(screen, eng, page, term.Options{FPS: cfg.Terminal.FPS, HUD: cfg.Terminal.HUD}, logger)
	logger.Info("starting terminal",
		zap.String("mode", eng.Mode().String()),
		zap.Int("fps", cfg.Terminal.FPS))

	g, gctx := errgroup.WithContext(ctx)
	appCtx, cancel := context.WithCancel(gctx)
	defer cancel()
	if flags.Watch {
		w, err := config.NewWatcher(flags.Path, logger)
		if err != nil {
			return err
		}
		g.Go(func() error { return w.Run(appCtx) })
		g.Go(func() error { return w.Forward(appCtx, eng) })
	}
	g.Go(func() error {
		defer cancel()
		return app.Run(appCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Error("terminal stopped", zap.Error(err))
		return err
	}
	return nil
}
