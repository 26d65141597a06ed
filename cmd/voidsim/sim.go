package main

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"voidgeometry/config"
	"voidgeometry/engine"
	"voidgeometry/host"
)

// fallbackSeed keeps runs reproducible when the settings leave the seed at zero
const fallbackSeed = 1

// Options controls one headless run
type Options struct {
	Frames      int
	DT          float64
	TourEvery   int // frames between section jumps, 0 stays on the first section
	SampleEvery int
	Width       int
	Height      int
}

// DefaultOptions returns ten seconds at 60 Hz touring every two seconds
func DefaultOptions() Options {
	return Options{
		Frames:      600,
		DT:          1.0 / 60,
		TourEvery:   120,
		SampleEvery: 30,
		Width:       1280,
		Height:      720,
	}
}

// Validate checks the run options
func (o Options) Validate() error {
	var errs []error
	if o.Frames <= 0 {
		errs = append(errs, fmt.Errorf("frames must be positive, got %d", o.Frames))
	}
	if o.DT <= 0 {
		errs = append(errs, fmt.Errorf("dt must be positive, got %v", o.DT))
	}
	if o.TourEvery < 0 {
		errs = append(errs, fmt.Errorf("tour interval must not be negative, got %d", o.TourEvery))
	}
	if o.SampleEvery <= 0 {
		errs = append(errs, fmt.Errorf("sample interval must be positive, got %d", o.SampleEvery))
	}
	if o.Width <= 0 || o.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport must be positive, got %dx%d", o.Width, o.Height))
	}
	return errors.Join(errs...)
}

// Sample is one trace row
type Sample struct {
	Section  string  `yaml:"section"`
	Position float64 `yaml:"position"`
	Ramping  bool    `yaml:"ramping"`

	engine.Stats `yaml:",inline"`
}

// Trace is the document printed by a run
type Trace struct {
	Mode    string   `yaml:"mode"`
	Seed    uint64   `yaml:"seed"`
	DT      float64  `yaml:"dt"`
	Frames  int      `yaml:"frames"`
	Tour    []string `yaml:"tour"`
	Samples []Sample `yaml:"samples"`
}

// Simulate runs the engine and the page for opts.Frames ticks without
// drawing, jumping through the sections in order.
func Simulate(cfg *config.Config, opts Options, logger *zap.Logger) (*Trace, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	ecfg := cfg.Engine
	if ecfg.Seed == 0 {
		ecfg.Seed = fallbackSeed
	}

	eng, err := engine.New(ecfg, cfg.Capabilities(), logger)
	if err != nil {
		return nil, err
	}
	page, err := host.NewPage(cfg.Host, cfg.Host.Sections, eng, logger)
	if err != nil {
		return nil, err
	}
	eng.Resize(opts.Width, opts.Height)
	page.Resize(opts.Width, opts.Height)

	sections := page.Sections()
	trace := &Trace{
		Mode:   eng.Mode().String(),
		Seed:   ecfg.Seed,
		DT:     opts.DT,
		Frames: opts.Frames,
	}

	for f := 0; f < opts.Frames; f++ {
		if opts.TourEvery > 0 && f%opts.TourEvery == 0 {
			s := sections[(f/opts.TourEvery)%len(sections)]
			page.JumpTo(s.ID)
			trace.Tour = append(trace.Tour, s.ID)
		}

		page.Update(opts.DT)
		eng.Tick(opts.DT)

		if (f+1)%opts.SampleEvery == 0 || f == opts.Frames-1 {
			st := page.Status()
			trace.Samples = append(trace.Samples, Sample{
				Section:  st.Section,
				Position: st.Position,
				Ramping:  st.Ramping,
				Stats:    eng.Snapshot(),
			})
		}
	}
	return trace, nil
}

// WriteTrace encodes the trace as YAML
func WriteTrace(w io.Writer, t *Trace) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	return enc.Close()
}
