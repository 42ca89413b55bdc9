package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mchmarny/navmenu/pkg/logger"
)

// DefaultDebounce is the quiet period after the last file event before the
// menu is reloaded. Editors often write a file in several steps.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reloads a Holder when its definition file changes.
type Watcher struct {
	path     string
	holder   *Holder
	debounce time.Duration
}

// NewWatcher creates a watcher for the definition file at path.
// A non-positive debounce uses DefaultDebounce.
func NewWatcher(path string, holder *Holder, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     filepath.Clean(path),
		holder:   holder,
		debounce: debounce,
	}
}

// Run watches the file until ctx is canceled. The parent directory is
// watched rather than the file itself so that editors replacing the file
// through a rename are still noticed. Failed reloads are logged and the
// previous menu keeps being served.
func (w *Watcher) Run(ctx context.Context) error {
	log := logger.Component("watch")

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	log.Info("watching menu definition", "path", w.path)

	var (
		mu    sync.Mutex
		timer *time.Timer
	)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()

		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(w.debounce, func() {
			if ctx.Err() != nil {
				return
			}
			if err := w.holder.Reload(); err != nil {
				log.Error("menu reload failed, keeping previous menu", "path", w.path, "error", err)
			}
		})
	}

	defer func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("stopped watching menu definition", "path", w.path)
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			log.Debug("menu definition changed", "path", event.Name, "op", event.Op.String())
			trigger()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
