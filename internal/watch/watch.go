// Package watch rebuilds when sources, templates or the configuration change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Watcher runs Rebuild after file changes below Roots.
type Watcher struct {
	// Roots are directories watched recursively, or single files whose
	// directory is watched.
	Roots []string
	// Exclude are directories never watched, such as the output directory.
	Exclude  []string
	Debounce time.Duration
	// Rebuild is called once per burst of changes; calls never overlap.
	Rebuild func(ctx context.Context) error
	Logger  *slog.Logger
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fw.Close() }()

	exclude := make([]string, 0, len(w.Exclude))
	for _, e := range w.Exclude {
		if abs, err := filepath.Abs(e); err == nil {
			exclude = append(exclude, abs)
		}
	}
	for _, root := range w.Roots {
		if err := w.add(fw, root, exclude, logger); err != nil {
			return err
		}
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	rebuildReq := make(chan struct{}, 1)
	trigger, stop := newDebouncer(debounce, func() {
		select {
		case rebuildReq <- struct{}{}:
		default:
		}
	})
	defer stop()

	logger.Info("Watching for changes", slog.Int("roots", len(w.Roots)))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-rebuildReq:
			logger.Info("Change detected; rebuilding")
			if err := w.Rebuild(ctx); err != nil {
				logger.Warn("Rebuild failed", slog.String("error", err.Error()))
			}
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ShouldIgnore(ev.Name) || excluded(ev.Name, exclude) {
				continue
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = w.add(fw, ev.Name, exclude, logger)
				}
			}
			logger.Debug("File change detected", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
			trigger()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) add(fw *fsnotify.Watcher, root string, exclude []string, logger *slog.Logger) error {
	fi, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	if !fi.IsDir() {
		return fw.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if excluded(p, exclude) || (p != root && ShouldIgnore(p)) {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			logger.Warn("Watch add failed", slog.String("dir", p), slog.String("error", err.Error()))
		}
		return nil
	})
}

// newDebouncer returns a trigger that calls fire once no trigger happened
// for d, and a stop function cancelling a pending call.
func newDebouncer(d time.Duration, fire func()) (trigger func(), stop func()) {
	var mu sync.Mutex
	var timer *time.Timer
	trigger = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, fire)
	}
	stop = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return trigger, stop
}

func excluded(p string, exclude []string) bool {
	abs, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	for _, e := range exclude {
		if abs == e || strings.HasPrefix(abs, e+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// ShouldIgnore reports paths whose changes never trigger a rebuild: hidden
// files and editor temporaries.
func ShouldIgnore(p string) bool {
	base := filepath.Base(p)
	switch {
	case strings.HasPrefix(base, "."),
		strings.HasSuffix(base, "~"),
		strings.HasSuffix(base, ".swp"),
		strings.HasSuffix(base, ".swx"),
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	}
	return false
}
