package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of writes from editors and sync tools.
const DefaultDebounce = 1500 * time.Millisecond

// Watcher watches a file and hands a freshly loaded value to its handlers
// whenever the content changes.
//
// The parent directory is watched, not the file, so saves that rename a
// temporary file over the target are seen and the file may be created after
// Start. A change whose content hashes the same as the last successful load
// is dropped.
type Watcher[T any] struct {
	path     string
	debounce time.Duration
	loader   func(path string) (T, error)
	onError  func(error)
	logger   *slog.Logger

	mu       sync.RWMutex
	handlers []func(T)

	watcher *fsnotify.Watcher
	digest  uint64 // xxhash of the last loaded content, 0 when none
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption[T any] func(*Watcher[T])

// WithDebounce sets how long the file must be quiet before it is loaded.
func WithDebounce[T any](d time.Duration) WatcherOption[T] {
	return func(w *Watcher[T]) {
		w.debounce = d
	}
}

// WithErrorHandler sets a callback for load errors. Errors are always logged.
func WithErrorHandler[T any](handler func(error)) WatcherOption[T] {
	return func(w *Watcher[T]) {
		w.onError = handler
	}
}

// NewConfigWatcher creates a watcher for path. Nothing is watched until Start.
func NewConfigWatcher[T any](
	path string,
	loader func(path string) (T, error),
	logger *slog.Logger,
	opts ...WatcherOption[T],
) *Watcher[T] {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher[T]{
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
		loader:   loader,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// OnReload registers a handler and returns a function that removes it.
func (w *Watcher[T]) OnReload(handler func(T)) func() {
	w.mu.Lock()
	w.handlers = append(w.handlers, handler)
	idx := len(w.handlers) - 1
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.handlers[idx] = nil
	}
}

// Start begins watching. The current content, if any, counts as loaded.
func (w *Watcher[T]) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if addErr := watcher.Add(filepath.Dir(w.path)); addErr != nil {
		watcher.Close()
		return addErr
	}
	w.watcher = watcher
	w.digest, _ = w.contentDigest()

	w.logger.Info("File watcher started", "path", w.path, "debounce", w.debounce)
	go w.watch()
	return nil
}

// Stop stops watching and waits for the loop to exit.
func (w *Watcher[T]) Stop() error {
	w.cancel()
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher[T]) watch() {
	defer close(w.done)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Debug("File watcher stopped")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			// Write for in-place saves, Create for rename-over saves
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debug("File change detected", "op", event.Op.String())
			timer.Reset(w.debounce)

		case <-timer.C:
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("File watcher error", "error", err)
		}
	}
}

// reload loads the file if its content changed and notifies handlers.
func (w *Watcher[T]) reload() {
	digest, err := w.contentDigest()
	if err != nil {
		w.logger.Debug("Changed file not readable", "path", w.path, "error", err)
		return
	}
	if digest == w.digest {
		w.logger.Debug("File content unchanged, skipping reload", "path", w.path)
		return
	}

	value, err := w.loader(w.path)
	if err != nil {
		w.logger.Warn("Failed to load changed file", "path", w.path, "error", err)
		if w.onError != nil {
			w.onError(err)
		}
		return
	}
	w.digest = digest
	w.logger.Info("File changed, notifying handlers", "path", w.path)

	w.mu.RLock()
	handlers := make([]func(T), 0, len(w.handlers))
	for _, h := range w.handlers {
		if h != nil {
			handlers = append(handlers, h)
		}
	}
	w.mu.RUnlock()

	for _, handler := range handlers {
		handler(value)
	}
}

func (w *Watcher[T]) contentDigest() (uint64, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(data), nil
}
