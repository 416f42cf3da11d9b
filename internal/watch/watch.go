// Package watch reloads the build configuration record when its file changes
// on disk. Changes are debounced so editor write bursts produce a single
// reload, and an invalid record never displaces the last good one.
package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/SluberskiHomeLab/panelcss/internal/buildcfg"
	"github.com/SluberskiHomeLab/panelcss/internal/store"
)

// Watcher observes a build configuration file and swaps reloaded records
// into the store.
type Watcher struct {
	path     string
	debounce time.Duration
	store    store.Store
	logger   *zap.Logger
	fsw      *fsnotify.Watcher

	onReload func(error)

	stopCh chan struct{}
	doneCh chan struct{}
}

// Option configures Watcher behaviour.
type Option func(*Watcher)

// WithOnReload registers a callback invoked after every reload attempt with
// its outcome (primarily for tests).
func WithOnReload(fn func(error)) Option {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// New creates a Watcher for the given build configuration file. The parent
// directory is watched rather than the file itself so atomic rename-replace
// writes keep being observed.
func New(path string, debounce time.Duration, st store.Store, logger *zap.Logger, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		path:     path,
		debounce: debounce,
		store:    st,
		logger:   logger,
		fsw:      fsw,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start launches the watch loop in a goroutine.
func (w *Watcher) Start() {
	go w.run()
}

// Close stops the watch loop and releases the underlying watcher.
func (w *Watcher) Close() error {
	close(w.stopCh)
	err := w.fsw.Close()
	<-w.doneCh
	return err
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
			timerC = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(w.debounce)
		timerC = timer.C
	}

	for {
		select {
		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-timerC:
			timerC = nil
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		case evt, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.shouldTrigger(evt) {
				resetTimer()
			}
		}
	}
}

func (w *Watcher) shouldTrigger(evt fsnotify.Event) bool {
	if filepath.Base(evt.Name) != filepath.Base(w.path) {
		return false
	}
	return evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) reload() {
	cfg, err := buildcfg.Load(w.path)
	if err == nil {
		err = w.store.Replace(cfg)
	}

	if err != nil {
		w.logger.Warn("build config reload failed, keeping last good record",
			zap.String("path", w.path),
			zap.Error(err),
		)
	} else {
		w.logger.Info("build config reloaded",
			zap.String("path", w.path),
			zap.Int("content_globs", len(cfg.Content)),
			zap.Int("palettes", len(cfg.Theme.Extend.Colors)),
		)
	}

	if w.onReload != nil {
		w.onReload(err)
	}
}
