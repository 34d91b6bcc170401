// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/snmpcollect/snmpcollect/logger"
)

// watcher reports changes of the loaded config files. It watches their
// directories, since editors often replace a file instead of writing it.
type watcher struct {
	*logger.Logger

	fsw *fsnotify.Watcher

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool
}

func newWatcher(files []string) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &watcher{
		Logger: logger.New().With(slog.String("component", "config watcher")),
		fsw:    fsw,
		dirs:   make(map[string]bool),
	}
	w.update(files)
	return w, nil
}

// update replaces the set of watched files.
func (w *watcher) update(files []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.files = make(map[string]bool, len(files))
	for _, name := range files {
		name = filepath.Clean(name)
		w.files[name] = true

		dir := filepath.Dir(name)
		if w.dirs[dir] {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			w.Warningf("watch '%s': %v", dir, err)
			continue
		}
		w.dirs[dir] = true
	}
}

func (w *watcher) isWatched(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[filepath.Clean(name)]
}

// run sends on changed whenever a watched file is written, created, renamed or removed.
// Bursts of events collapse into one pending notification.
func (w *watcher) run(ctx context.Context, changed chan<- struct{}) {
	defer func() { _ = w.fsw.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if !w.isWatched(event.Name) {
				continue
			}
			w.Debugf("%s: %s", event.Op, event.Name)
			select {
			case changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.Warningf("watch: %v", err)
		}
	}
}
