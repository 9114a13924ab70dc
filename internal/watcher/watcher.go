// Package watcher feeds overlay filesystem changes to the review loop.
// It wraps fsnotify with recursive directory registration and a
// deduplicated pending queue the UI drains without blocking.
package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a directory tree and accumulates the paths touched by
// create/modify/remove events. Chmod-only events are ignored. Producers
// run on fsnotify's goroutine; Drain is called from the UI loop.
type Watcher struct {
	fsw *fsnotify.Watcher

	mu      sync.Mutex
	pending []string
	queued  map[string]bool
}

// New starts watching root and all of its current subdirectories.
// Directories created later are registered as their create events
// arrive.
func New(root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting filesystem watcher: %w", err)
	}
	w := &Watcher{fsw: fsw, queued: make(map[string]bool)}

	if err := fsw.Add(root); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", root, err)
	}
	w.addSubdirs(root)

	go w.run()
	return w, nil
}

// addSubdirs registers every subdirectory under root, best-effort.
func (w *Watcher) addSubdirs(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && path != root {
			_ = w.fsw.Add(path)
		}
		return nil
	})
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.fsw.Add(ev.Name)
					w.addSubdirs(ev.Name)
				}
			}
			w.enqueue(ev.Name)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Absorbed; a manual refresh recovers from missed events.
		}
	}
}

func (w *Watcher) enqueue(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.queued[path] {
		return
	}
	w.queued[path] = true
	w.pending = append(w.pending, path)
}

// Drain returns the deduplicated pending paths in arrival order and
// clears the queue. It never blocks; an empty queue returns nil.
func (w *Watcher) Drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	out := w.pending
	w.pending = nil
	w.queued = make(map[string]bool)
	return out
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
