package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherStarted is returned when Start is called on a running Watcher.
var ErrWatcherStarted = errors.New("watcher already started")

const reloadOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// Watcher caches a file like Fetcher and reloads it whenever the file changes on disk.
// The parent directory is watched so that atomic replacements (rename over the
// target) are picked up as well as in-place writes.
type Watcher struct {
	filepath string
	onChange func([]byte)

	mu   sync.RWMutex
	data []byte

	notify *fsnotify.Watcher
	done   chan struct{}
}

// NewWatcher reads fpath and returns a Watcher for it. The watch itself begins with Start.
// onChange, if non-nil, receives a copy of the new contents after every reload that
// changed the cached data.
func NewWatcher(fpath string, onChange func([]byte)) (*Watcher, error) {
	cleanPath := filepath.Clean(fpath)

	data, err := readFile(cleanPath)
	if err != nil {
		return nil, err
	}

	return &Watcher{
		filepath: cleanPath,
		onChange: onChange,
		data:     data,
		notify:   nil,
		done:     nil,
	}, nil
}

// Path returns the cleaned path being watched.
func (w *Watcher) Path() string {
	return w.filepath
}

// Fetch returns a copy of the most recently loaded file contents.
func (w *Watcher) Fetch() ([]byte, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return clone(w.data), nil
}

// Start begins watching the file in a background goroutine.
func (w *Watcher) Start(_ context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.notify != nil {
		return ErrWatcherStarted
	}

	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	dir := filepath.Dir(w.filepath)

	err = notify.Add(dir)
	if err != nil {
		_ = notify.Close()

		return fmt.Errorf("watching %q: %w", dir, err)
	}

	w.notify = notify
	w.done = make(chan struct{})

	slog.Info("watching file", "path", w.filepath)

	go w.loop(notify, w.done)

	return nil
}

// Stop ends the watch and waits for the background goroutine to exit or ctx to expire.
// Stopping a Watcher that was never started is a no-op.
func (w *Watcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	notify, done := w.notify, w.done
	w.notify, w.done = nil, nil
	w.mu.Unlock()

	if notify == nil {
		return nil
	}

	err := notify.Close()
	if err != nil {
		return fmt.Errorf("closing watcher: %w", err)
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stopping watcher: %w", ctx.Err())
	}
}

func (w *Watcher) loop(notify *fsnotify.Watcher, done chan struct{}) {
	defer close(done)

	for {
		select {
		case event, ok := <-notify.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.filepath {
				continue
			}

			if event.Has(fsnotify.Remove) {
				slog.Warn("watched file removed, keeping last contents", "path", w.filepath)

				continue
			}

			if event.Op&reloadOps != 0 {
				w.reload()
			}
		case err, ok := <-notify.Errors:
			if !ok {
				return
			}

			slog.Error("file watcher error", "path", w.filepath, "error", err)
		}
	}
}

func (w *Watcher) reload() {
	data, err := readFile(w.filepath)
	if err != nil {
		slog.Warn("reloading watched file failed, keeping last contents", "path", w.filepath, "error", err)

		return
	}

	w.mu.Lock()

	if bytes.Equal(w.data, data) {
		w.mu.Unlock()

		return
	}

	w.data = data
	w.mu.Unlock()

	slog.Debug("watched file reloaded", "path", w.filepath, "bytes", len(data))

	if w.onChange != nil {
		w.onChange(clone(data))
	}
}
