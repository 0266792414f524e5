// Package watcher monitors model files on disk and reports debounced change
// batches, feeding the watch and serve commands.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeEvent is one observed file change.
type ChangeEvent struct {
	Path    string
	Op      string
	ModTime time.Time
}

// ChangeHandler receives a debounced batch of change events.
type ChangeHandler func(events []ChangeEvent)

// ModelFileFilter accepts the YAML model files the storage package writes.
func ModelFileFilter(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// ModelWatcher watches model files and coalesces rapid editor save bursts
// into single change batches.
type ModelWatcher struct {
	fsw      *fsnotify.Watcher
	delay    time.Duration
	filter   func(string) bool
	handlers []ChangeHandler

	mu      sync.Mutex
	pending []ChangeEvent
	timer   *time.Timer
}

// New creates a watcher with the given debounce delay.
func New(delay time.Duration) (*ModelWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &ModelWatcher{
		fsw:    fsw,
		delay:  delay,
		filter: ModelFileFilter,
	}, nil
}

// OnChange registers a handler for debounced change batches.
func (w *ModelWatcher) OnChange(h ChangeHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, h)
}

// Add watches a file or directory (non-recursive).
func (w *ModelWatcher) Add(path string) error {
	return w.fsw.Add(filepath.Clean(path))
}

// AddRecursive watches root and every directory below it.
func (w *ModelWatcher) AddRecursive(root string) error {
	return filepath.Walk(filepath.Clean(root), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
}

// Start runs the watch loop until ctx is cancelled.
func (w *ModelWatcher) Start(ctx context.Context) {
	go w.loop(ctx)
}

// Stop releases the underlying fsnotify watcher.
func (w *ModelWatcher) Stop() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

func (w *ModelWatcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; keep watching.
		}
	}
}

func (w *ModelWatcher) handleEvent(event fsnotify.Event) {
	if !w.filter(event.Name) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	ce := ChangeEvent{Path: event.Name, Op: event.Op.String(), ModTime: time.Now()}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = append(w.pending, ce)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.flush)
}

func (w *ModelWatcher) flush() {
	w.mu.Lock()
	batch := w.pending
	w.pending = nil
	handlers := append([]ChangeHandler(nil), w.handlers...)
	w.mu.Unlock()

	if len(batch) == 0 {
		return
	}
	for _, h := range handlers {
		h(batch)
	}
}
