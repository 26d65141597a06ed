package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"voidgeometry/engine"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher reloads the settings file when it changes on disk. The directory
// is watched rather than the file so editors that replace the file on save
// are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	updates  chan *Config
}

// NewWatcher starts watching the directory holding path
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:     abs,
		debounce: defaultDebounce,
		logger:   logger,
		watcher:  fw,
		updates:  make(chan *Config, 1),
	}, nil
}

// Updates delivers reloaded settings. Only the newest unread value is kept.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Run processes file events until ctx is done, then releases the watcher
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn("config reload rejected", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.logger.Info("config reloaded", zap.String("path", w.path))
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
}

// Tuner accepts live tuning changes
type Tuner interface {
	ApplyTuning(t engine.Tuning) error
}

// Forward pushes the tuning of every reloaded config into t until ctx is done
func (w *Watcher) Forward(ctx context.Context, t Tuner) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case cfg := <-w.updates:
			if err := t.ApplyTuning(cfg.Engine.Tuning); err != nil {
				w.logger.Warn("tuning rejected", zap.Error(err))
				continue
			}
			w.logger.Info("tuning applied")
		}
	}
}
