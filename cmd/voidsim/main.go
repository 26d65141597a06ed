// Command voidsim runs the background headless and prints a YAML trace of
// mood, scroll velocity and render parameters while touring the sections.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"voidgeometry/config"
	"voidgeometry/logging"
)

var (
	flags config.Flags
	opts  = DefaultOptions()
)

var rootCmd = &cobra.Command{
	Use:   "voidsim",
	Short: "Run the background without a display and print a trace",
	Long: `Steps the engine and the page at a fixed rate, jumping to the next section
every --tour frames, and writes a YAML sample every --sample frames to stdout.
Useful for checking tuning changes without opening a window.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags.Bind(rootCmd.Flags())
	fs := rootCmd.Flags()
	fs.IntVarP(&opts.Frames, "frames", "n", opts.Frames, "ticks to run")
	fs.Float64Var(&opts.DT, "dt", opts.DT, "seconds per tick")
	fs.IntVar(&opts.TourEvery, "tour", opts.TourEvery, "frames between section jumps (0 disables)")
	fs.IntVar(&opts.SampleEvery, "sample", opts.SampleEvery, "frames between samples")
	fs.IntVar(&opts.Width, "width", opts.Width, "viewport width")
	fs.IntVar(&opts.Height, "height", opts.Height, "viewport height")
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
	// stdout carries the trace
	if cfg.Logging.File == "" {
		cfg.Logging.File = "stderr"
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	trace, err := Simulate(cfg, opts, logger)
	if err != nil {
		logger.Error("simulation failed", zap.Error(err))
		return err
	}
	logger.Debug("simulation finished", zap.Int("samples", len(trace.Samples)))
	return WriteTrace(cmd.OutOrStdout(), trace)
}
