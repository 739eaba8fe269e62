package dev

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeType represents the type of file change.
type ChangeType int

const (
	ChangeWrite ChangeType = iota
	ChangeCreate
	ChangeRemove
)

// String returns the name of the change type.
func (t ChangeType) String() string {
	switch t {
	case ChangeWrite:
		return "write"
	case ChangeCreate:
		return "create"
	case ChangeRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Change represents a detected file change.
type Change struct {
	Path string
	Type ChangeType
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Paths are the files to watch. Their directories are watched so
	// editors that replace files on save are still observed.
	Paths []string

	// Debounce is the quiet period before a change is reported.
	// Default: 100ms.
	Debounce time.Duration
}

// Watcher monitors files for changes.
type Watcher struct {
	config   WatcherConfig
	watcher  *fsnotify.Watcher
	files    map[string]bool
	mu       sync.Mutex
	onChange func(Change)
	running  bool
	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewWatcher creates a new file watcher.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	if config.Debounce == 0 {
		config.Debounce = 100 * time.Millisecond
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		config:  config,
		watcher: fw,
		files:   make(map[string]bool, len(config.Paths)),
		stopCh:  make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range config.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start reports changes until ctx is done or Stop is called. Bursts of
// events for the same file are reported once, after the debounce period.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	pending := make(map[string]ChangeType)
	timer := time.NewTimer(w.config.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-w.stopCh:
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.files[abs] {
				continue
			}
			change, ok := convertOp(event.Op)
			if !ok {
				continue
			}
			pending[abs] = change
			timer.Reset(w.config.Debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return err

		case <-timer.C:
			w.mu.Lock()
			callback := w.onChange
			w.mu.Unlock()
			for path, change := range pending {
				if callback != nil {
					callback(Change{Path: path, Type: change})
				}
			}
			clear(pending)
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()

		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	})
}

func convertOp(op fsnotify.Op) (ChangeType, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return ChangeCreate, true
	case op.Has(fsnotify.Write):
		return ChangeWrite, true
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return ChangeRemove, true
	default:
		return 0, false
	}
}
