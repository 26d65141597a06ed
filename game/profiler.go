package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"voidgeometry/engine"
)

// ErrCaptureCooldown is returned when a capture was requested too soon after the last one
var ErrCaptureCooldown = errors.New("capture on cooldown")

// Profiler captures a CPU profile and an execution trace when the frame rate drops
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string
	logger          *zap.Logger

	wg sync.WaitGroup
}

// NewProfiler creates a profiler writing into cfg.Dir
func NewProfiler(cfg ProfilerConfig, logger *zap.Logger) (*Profiler, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create profiles directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profiler{
		captureCooldown: cfg.Cooldown,
		captureDuration: cfg.Duration,
		profilesDir:     cfg.Dir,
		logger:          logger,
	}, nil
}

// CaptureProfile starts a capture in the background and returns immediately.
// The engine stats at the moment of the drop are written next to the profile.
func (p *Profiler) CaptureProfile(reason string, stats engine.Stats) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.lastCaptureTime.IsZero() && time.Since(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("%w (last capture was %v ago)", ErrCaptureCooldown, time.Since(p.lastCaptureTime).Round(time.Millisecond))
	}
	if p.isProfiling {
		return fmt.Errorf("already profiling")
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()

	baseName := fmt.Sprintf("fps-drop-%s-%s", time.Now().Format("20060102-150405"), reason)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		if err := p.writeStats(baseName, stats); err != nil {
			p.logger.Warn("stats snapshot failed", zap.Error(err))
		}

		// CPU profile and trace run side by side over the same window
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				p.logger.Warn("cpu profile failed", zap.Error(err))
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				p.logger.Warn("trace failed", zap.Error(err))
			}
		}()
		wg.Wait()

		p.logSummary(baseName, stats)
	}()

	return nil
}

// Wait blocks until the capture in progress, if any, has been written
func (p *Profiler) Wait() {
	p.wg.Wait()
}

// IsProfiling returns whether a capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) writeStats(baseName string, stats engine.Stats) error {
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	path := filepath.Join(p.profilesDir, baseName+".stats.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats: %w", err)
	}
	return nil
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()

	p.logger.Info("cpu profile saved", zap.String("path", profilePath))
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")
	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()

	p.logger.Info("trace saved", zap.String("path", tracePath))
	return nil
}

// logSummary records the profile size, the scene load and memory stats
func (p *Profiler) logSummary(baseName string, stats engine.Stats) {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	info, err := os.Stat(profilePath)
	if err != nil {
		p.logger.Warn("could not inspect profile", zap.Error(err))
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Info("performance capture complete",
		zap.String("profile", profilePath),
		zap.Int64("size_bytes", info.Size()),
		zap.String("mode", stats.Mode),
		zap.Int("segments", stats.Segments),
		zap.Float64("mood", stats.Mood),
		zap.Uint64("alloc_kb", m.Alloc/1024),
		zap.Uint64("sys_kb", m.Sys/1024),
		zap.Uint32("num_gc", m.NumGC),
		zap.Uint64("heap_objects", m.HeapObjects),
		zap.String("view", "go tool pprof -http=:8080 "+profilePath))
}
