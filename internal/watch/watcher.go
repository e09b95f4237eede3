// Package watch signals when a commit source changes on disk.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/giterra/giterra/internal/log"
)

// Watcher monitors a commit file or a repository's .git directory and emits
// one debounced signal per burst of changes.
type Watcher struct {
	dir      string // directory handed to fsnotify
	file     string // when non-empty, only events for this path count
	debounce time.Duration

	events  chan struct{}
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// New creates a Watcher for path. A regular file is watched through its
// parent directory so editors that replace the file are seen. A directory
// holding a .git directory is treated as a repository and its .git directory
// is watched instead.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat watch path: %w", err)
	}

	w := &Watcher{
		debounce: debounce,
		events:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	switch {
	case !info.IsDir():
		w.dir, w.file = filepath.Dir(abs), abs
	case isDir(filepath.Join(abs, ".git")):
		w.dir = filepath.Join(abs, ".git")
	default:
		w.dir = abs
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w.watcher = fw
	return w, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Events returns the channel of change signals. Signals coalesce: a slow
// reader sees at most one pending signal.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Start begins watching. On error the watcher is released and Stop returns
// immediately.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.dir); err != nil {
		_ = w.watcher.Close()
		close(w.done)
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	log.Debug(log.CatWatch, "Watching for changes", "dir", w.dir, "file", w.file, "debounce", w.debounce)

	log.SafeGo(log.CatWatch, "watch.loop", w.loop)
	return nil
}

// Stop closes the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	_ = w.watcher.Close()
	<-w.done
}

func (w *Watcher) loop() {
	defer close(w.done)

	tick := w.debounce
	if tick <= 0 {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var pending time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			pending = time.Now()

		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < w.debounce {
				continue
			}
			pending = time.Time{}
			w.emit()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatWatch, "Watch error", "error", err.Error())
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if w.file != "" {
		return filepath.Clean(event.Name) == w.file
	}
	return true
}

func (w *Watcher) emit() {
	select {
	case w.events <- struct{}{}:
	default:
	}
}
