package file

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sanumbers/internal/core/ports/driven"
	"github.com/custodia-labs/sanumbers/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.DataWatcher = (*Watcher)(nil)

// DefaultDebounce is how long a file must be quiet before its key is reported.
// Editors often write a file several times per save.
const DefaultDebounce = 300 * time.Millisecond

// ErrWatcherStarted is returned when Watch is called more than once.
var ErrWatcherStarted = errors.New("watcher already started")

// Watcher reports keys of province files created, written, renamed or
// removed under a data root.
type Watcher struct {
	root     string
	debounce time.Duration

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	done    chan struct{}
	closeFS sync.Once
}

// MinDebounce is the smallest window NewWatcher accepts.
const MinDebounce = 3 * time.Millisecond

// NewWatcher creates a watcher for root. A debounce of zero uses DefaultDebounce;
// positive values below MinDebounce are raised to it.
func NewWatcher(root string, debounce time.Duration) *Watcher {
	switch {
	case debounce <= 0:
		debounce = DefaultDebounce
	case debounce < MinDebounce:
		debounce = MinDebounce
	}
	return &Watcher{root: root, debounce: debounce}
}

// Watch starts watching root. The returned channel is closed when ctx is
// cancelled or Close is called.
func (w *Watcher) Watch(ctx context.Context) (<-chan string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsw != nil {
		return nil, ErrWatcherStarted
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(w.root); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.root, err)
	}

	w.fsw = fsw
	w.done = make(chan struct{})
	out := make(chan string, 16)

	logger.Debug("Watching %s for province changes", w.root)
	go w.loop(ctx, fsw, out)
	return out, nil
}

// Close stops watching and waits for the watch loop to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	fsw, done := w.fsw, w.done
	w.mu.Unlock()

	if fsw == nil {
		return nil
	}
	err := w.stop(fsw)
	<-done
	return err
}

func (w *Watcher) stop(fsw *fsnotify.Watcher) error {
	var err error
	w.closeFS.Do(func() { err = fsw.Close() })
	return err
}

// loop collects events per key and emits each key once its file has been
// quiet for the debounce window.
func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- string) {
	defer close(w.done)
	defer close(out)
	defer func() { _ = w.stop(fsw) }()

	pending := make(map[string]time.Time)
	tick := time.NewTicker(w.debounce / 3)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			key, ok := KeyFor(event.Name)
			if !ok {
				continue
			}
			logger.Debug("Data file event: %s %s", event.Op, event.Name)
			pending[key] = time.Now()

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Data watcher error: %v", err)

		case now := <-tick.C:
			for _, key := range settled(pending, now, w.debounce) {
				select {
				case out <- key:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

func relevant(event fsnotify.Event) bool {
	return event.Op&fsnotify.Create != 0 ||
		event.Op&fsnotify.Write != 0 ||
		event.Op&fsnotify.Rename != 0 ||
		event.Op&fsnotify.Remove != 0
}

// settled removes and returns, in sorted order, keys quiet for at least window.
func settled(pending map[string]time.Time, now time.Time, window time.Duration) []string {
	var keys []string
	for key, at := range pending {
		if now.Sub(at) >= window {
			keys = append(keys, key)
			delete(pending, key)
		}
	}
	sort.Strings(keys)
	return keys
}
