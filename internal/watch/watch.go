// Package watch reports changes to a single config file.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/wethinkt/go-tonekit/internal/tonelog"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher watches one file by watching its directory, so saves that replace
// the file (write to temp, rename over) are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// New starts watching the directory holding path. The file itself does not
// need to exist yet.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(abs)
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	tonelog.Log.Debug("Watching config directory", "dir", dir, "file", filepath.Base(abs))

	return &Watcher{
		path:     filepath.Join(dir, filepath.Base(abs)),
		debounce: debounce,
		watcher:  fw,
	}, nil
}

// Path returns the resolved file being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run calls onChange once per burst of changes to the file until ctx is
// canceled. onChange runs on Run's goroutine, so calls never overlap.
// The underlying watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
				continue
			}
			tonelog.Log.Debug("Config file event", "path", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			tonelog.Log.Error("Watcher error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}
