// Package watcher implements the per-widget hot-reload file watcher: a
// recursive fsnotify watch per widget directory, a 200ms debounce that
// resets on every matching event, and a thread-safe queue of reload
// intents drained by the main loop rather than calling into the browser
// runtime from the watcher's own goroutine.
//
// Grounded on fsnotify usage in internal/infrastructure/config/watcher.go
// and the debounce/coalesce shape of internal/ui/mainloop/coalescer.go.
package watcher

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Maximilian-Winter/pytonium-shell/internal/logging"
)

var reloadableExt = map[string]bool{
	".html": true,
	".css":  true,
	".js":   true,
	".py":   true,
}

// Watcher owns one fsnotify.Watcher per widget directory and a single
// reload-intent queue drained by PollReloads.
type Watcher struct {
	debounce time.Duration

	mu      sync.Mutex
	widgets map[string]*widgetWatch

	queueMu sync.Mutex
	queue   []string
}

type widgetWatch struct {
	fsWatcher *fsnotify.Watcher
	timer     *time.Timer
	stopped   chan struct{}
}

// New creates an empty Watcher; call Watch per widget directory.
func New(debounce time.Duration) *Watcher {
	return &Watcher{
		debounce: debounce,
		widgets:  make(map[string]*widgetWatch),
	}
}

// Watch starts a recursive watch over dir for widget name. Returns an error
// if the watch cannot be established (e.g. the platform lacks the file-watch
// capability); the caller is expected to log and continue without hot
// reload for that widget, not fail startup.
func (w *Watcher) Watch(ctx context.Context, name, dir string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := addRecursive(fsw, dir); err != nil {
		fsw.Close()
		return err
	}

	ww := &widgetWatch{fsWatcher: fsw, stopped: make(chan struct{})}
	w.mu.Lock()
	w.widgets[name] = ww
	w.mu.Unlock()

	go w.run(ctx, name, ww)
	return nil
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
}

func (w *Watcher) run(ctx context.Context, name string, ww *widgetWatch) {
	defer close(ww.stopped)
	defer logging.Recover(ctx, "watcher:"+name)

	for {
		select {
		case event, ok := <-ww.fsWatcher.Events:
			if !ok {
				return
			}
			if !isReloadTrigger(event) {
				continue
			}
			w.scheduleReload(name, ww)
		case _, ok := <-ww.fsWatcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func isReloadTrigger(event fsnotify.Event) bool {
	if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
		return false
	}
	return reloadableExt[strings.ToLower(filepath.Ext(event.Name))]
}

// scheduleReload resets the widget's debounce timer; repeated changes within
// the debounce window coalesce into a single reload.
func (w *Watcher) scheduleReload(name string, ww *widgetWatch) {
	w.mu.Lock()
	if ww.timer != nil {
		ww.timer.Stop()
	}
	ww.timer = time.AfterFunc(w.debounce, func() {
		w.queueMu.Lock()
		w.queue = append(w.queue, name)
		w.queueMu.Unlock()
	})
	w.mu.Unlock()
}

// PollReloads drains and returns the names of widgets due for reload.
func (w *Watcher) PollReloads() []string {
	w.queueMu.Lock()
	defer w.queueMu.Unlock()
	if len(w.queue) == 0 {
		return nil
	}
	out := w.queue
	w.queue = nil
	return out
}

// StopWidget stops watching a single widget's directory, used when a widget
// is torn down individually.
func (w *Watcher) StopWidget(name string) {
	w.mu.Lock()
	ww, ok := w.widgets[name]
	delete(w.widgets, name)
	w.mu.Unlock()
	if !ok {
		return
	}
	ww.fsWatcher.Close()
	select {
	case <-ww.stopped:
	case <-time.After(2 * time.Second):
	}
}

// Stop closes every widget watch, bounded by a 2s timeout per widget so a
// single stuck watcher cannot hang shutdown.
func (w *Watcher) Stop() {
	w.mu.Lock()
	names := make([]string, 0, len(w.widgets))
	for name := range w.widgets {
		names = append(names, name)
	}
	w.mu.Unlock()

	for _, name := range names {
		w.StopWidget(name)
	}
}
