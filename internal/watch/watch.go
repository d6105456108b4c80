// Package watch reports changes to source files, debounced per file.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config configures a Watcher.
type Config struct {
	// Paths are files or directories to watch. Directories are watched
	// recursively.
	Paths []string
	// Match selects which changed files are reported (all when nil).
	Match func(path string) bool
	// Debounce is how long a file must stay quiet before it is reported.
	Debounce time.Duration
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Watcher calls a handler for every file that changed.
type Watcher struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a watcher.
func New(cfg Config) *Watcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 100 * time.Millisecond
	}
	return &Watcher{cfg: cfg, logger: logger}
}

// Run watches until ctx is cancelled, calling onChange with the path of each
// changed file. Calls are serialized, and calls for the same file are
// debounced. Run returns only after any call in progress has finished.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, p := range w.cfg.Paths {
		if err := watchRecursive(watcher, p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}
	w.logger.Debug("watching", "paths", w.cfg.Paths, "debounce", w.cfg.Debounce)

	var (
		mu      sync.Mutex
		timers  = make(map[string]*time.Timer)
		pending sync.WaitGroup // one per scheduled timer until it is stopped or its call returns
		calls   sync.Mutex
	)
	defer func() {
		mu.Lock()
		for _, t := range timers {
			if t.Stop() {
				pending.Done()
			}
		}
		mu.Unlock()
		pending.Wait()
	}()

	schedule := func(name string) {
		mu.Lock()
		defer mu.Unlock()
		if t, ok := timers[name]; ok && t.Stop() {
			pending.Done()
		}
		pending.Add(1)
		var t *time.Timer
		t = time.AfterFunc(w.cfg.Debounce, func() {
			defer pending.Done()
			mu.Lock()
			if timers[name] == t {
				delete(timers, name)
			}
			mu.Unlock()

			calls.Lock()
			defer calls.Unlock()
			if ctx.Err() != nil {
				return
			}
			w.logger.Debug("file changed", "file", name)
			onChange(name)
		})
		timers[name] = t
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchRecursive(watcher, event.Name); err != nil {
						w.logger.Error("failed to watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if w.cfg.Match != nil && !w.cfg.Match(event.Name) {
				continue
			}

			schedule(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// watchRecursive adds path, and every directory below it when it is a
// directory, to the watcher.
func watchRecursive(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(path)
	}
	return filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
}
