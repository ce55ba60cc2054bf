// Package tray implements the optional OS tray icon and menu: one checkable
// item per widget, a dashboard toggle if any dashboards exist, reload-all,
// and quit — every click posts an action string onto a queue the main loop
// drains, since fyne.io/systray owns its own UI loop on a separate thread.
package tray

import (
	"context"
	"fmt"
	"sync"

	"fyne.io/systray"

	"github.com/Maximilian-Winter/pytonium-shell/internal/logging"
)

// WidgetEntry is one checkable tray menu item's source data.
type WidgetEntry struct {
	Name    string
	Mode    string
	Visible func() bool
}

// Tray owns the systray menu and the thread-safe action queue the main
// loop polls.
type Tray struct {
	mu      sync.Mutex
	actions []string

	widgets       []WidgetEntry
	hasDashboards bool

	ready chan struct{}
}

// New builds an idle Tray over the given widget entries.
func New(widgets []WidgetEntry, hasDashboards bool) *Tray {
	return &Tray{widgets: widgets, hasDashboards: hasDashboards, ready: make(chan struct{})}
}

// Start launches the systray UI loop. It blocks internally on systray's own
// goroutine; Start returns once menu construction has completed. If the
// host has no tray (headless CI, remote desktop without a notification
// area), systray.Run still succeeds but the icon simply never renders —
// the tray is optional and the shell continues regardless, the same local
// failure isolation applied to the hot-reload watcher: a tray failure must
// never block shell startup.
func (t *Tray) Start(ctx context.Context) {
	go systray.Run(func() { t.onReady(ctx) }, func() {})
	<-t.ready
}

func (t *Tray) onReady(ctx context.Context) {
	defer close(t.ready)

	systray.SetTitle("PytoniumShell")
	systray.SetTooltip("PytoniumShell")

	for _, w := range t.widgets {
		item := systray.AddMenuItemCheckbox(fmt.Sprintf("%s [%s]", w.Name, w.Mode), "", w.Visible())
		name := w.Name
		go func(item *systray.MenuItem, name string) {
			for range item.ClickedCh {
				t.push("widget_toggle:" + name)
			}
		}(item, name)
	}

	if t.hasDashboards {
		systray.AddSeparator()
		dashItem := systray.AddMenuItem("Toggle Dashboard", "")
		go func() {
			for range dashItem.ClickedCh {
				t.push("toggle_dashboard")
			}
		}()
	}

	systray.AddSeparator()
	reloadItem := systray.AddMenuItem("Reload All", "")
	go func() {
		for range reloadItem.ClickedCh {
			t.push("reload_all")
		}
	}()

	quitItem := systray.AddMenuItem("Quit", "")
	go func() {
		<-quitItem.ClickedCh
		t.push("quit")
	}()

	logging.FromContext(ctx).Debug().Int("widgets", len(t.widgets)).Msg("tray ready")
}

func (t *Tray) push(action string) {
	t.mu.Lock()
	t.actions = append(t.actions, action)
	t.mu.Unlock()
}

// PollActions drains and returns every action posted since the last call.
func (t *Tray) PollActions() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.actions) == 0 {
		return nil
	}
	out := t.actions
	t.actions = nil
	return out
}

// Stop tears down the tray icon.
func (t *Tray) Stop() {
	systray.Quit()
}
