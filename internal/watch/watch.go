// Package watch regenerates companions when the Go sources of watched
// packages change.
package watch

import (
	"context"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// RegenerateFunc regenerates the packages in dirs.
type RegenerateFunc func(ctx context.Context, dirs []string) error

// Watcher watches package directories and calls a RegenerateFunc once the
// changes settle.
type Watcher struct {
	dirs       []string
	output     string
	debounce   time.Duration
	logger     *zap.Logger
	regenerate RegenerateFunc
}

// New creates a Watcher over dirs. Changes to the generated file output
// and its debug sidecar are ignored.
func New(dirs []string, output string, debounce time.Duration, regenerate RegenerateFunc) *Watcher {
	return &Watcher{
		dirs:       dirs,
		output:     output,
		debounce:   debounce,
		logger:     zap.NewNop(),
		regenerate: regenerate,
	}
}

// WithLogger sets the logger used for watcher events.
func (w *Watcher) WithLogger(logger *zap.Logger) *Watcher {
	w.logger = logger
	return w
}

// Relevant reports whether a change to name should trigger regeneration.
func (w *Watcher) Relevant(name string) bool {
	base := filepath.Base(name)

	switch {
	case !strings.HasSuffix(base, ".go"):
		return false
	case base == w.output:
		return false
	case base == strings.TrimSuffix(w.output, ".go")+".unformatted.go":
		return false
	case strings.HasPrefix(base, ".") || strings.HasPrefix(base, "#"):
		return false
	}

	return true
}

// Run processes file change events until ctx is cancelled. Regeneration
// errors are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return err
		}
	}

	w.logger.Info("watcher: started", zap.Strings("dirs", w.dirs))

	pending := make(map[string]bool)

	var timer *time.Timer
	var fire <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		} else {
			timer.Reset(w.debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}

			w.logger.Info("watcher: stopped")

			return nil

		case <-fire:
			dirs := slices.Sorted(maps.Keys(pending))
			clear(pending)

			w.logger.Debug("watcher: regenerating", zap.Strings("dirs", dirs))

			if err := w.regenerate(ctx, dirs); err != nil {
				w.logger.Warn("watcher: regeneration failed", zap.Error(err))
			}

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 || !w.Relevant(ev.Name) {
				continue
			}

			w.logger.Debug("watcher: change", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))

			pending[filepath.Dir(ev.Name)] = true
			schedule()

		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}

			w.logger.Error("watcher: error", zap.Error(watchErr))
		}
	}
}
