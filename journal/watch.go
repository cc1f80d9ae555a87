package journal

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// Watcher reports writes to a SQLite journal file made by other processes.
// The -wal and -journal companion files count as the journal.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	limiter *rate.Limiter
}

// NewWatcher starts watching the directory of path. onChange passed to Run
// fires at most once per interval.
func NewWatcher(path string, interval time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:    abs,
		fsw:     fsw,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}, nil
}

// Run calls onChange after each burst of writes until ctx is done, then
// closes the watcher.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.matches(ev) {
				continue
			}
			if err := w.limiter.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			w.drain()
			onChange()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", w.path, err)
		}
	}
}

// Close stops a watcher that was never Run.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) matches(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	switch ev.Name {
	case w.path, w.path + "-wal", w.path + "-journal":
		return true
	}
	return false
}

// drain drops events queued while waiting on the limiter.
func (w *Watcher) drain() {
	for {
		select {
		case _, ok := <-w.fsw.Events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
