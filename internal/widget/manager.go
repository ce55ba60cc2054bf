package widget

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Maximilian-Winter/pytonium-shell/internal/browser"
	"github.com/Maximilian-Winter/pytonium-shell/internal/logging"
	"github.com/Maximilian-Winter/pytonium-shell/internal/manifest"
	"github.com/Maximilian-Winter/pytonium-shell/internal/position"
	"github.com/Maximilian-Winter/pytonium-shell/internal/sysservices"
	"github.com/Maximilian-Winter/pytonium-shell/internal/theme"
	"github.com/Maximilian-Winter/pytonium-shell/internal/watcher"
	"github.com/Maximilian-Winter/pytonium-shell/internal/winapi"
)

// Manager discovers widgets under a directory, owns every live Instance,
// and drives the per-tick bookkeeping the shell's main loop calls into:
// dashboard hide deadlines, wallpaper health checks, and widget toggles.
type Manager struct {
	runtime  browser.Runtime
	watcher  *watcher.Watcher
	store    *position.Store
	theme    theme.Theme

	healthCheckTicks int
	hideDelay        time.Duration

	mu               sync.Mutex
	instances        map[string]*Instance
	order            []string // discovery order, for stable tray/iteration listing
	dashboardWidgets []*Instance
	dashboardVisible bool
	hideDeadline     time.Time
	hidePending      bool
	tickCounter      int
}

// NewManager builds an empty Manager over the given collaborators.
func NewManager(runtime browser.Runtime, watch *watcher.Watcher, store *position.Store, th theme.Theme, healthCheckTicks int, hideDelay time.Duration) *Manager {
	if healthCheckTicks <= 0 {
		healthCheckTicks = 300
	}
	if hideDelay <= 0 {
		hideDelay = 300 * time.Millisecond
	}
	return &Manager{
		runtime:          runtime,
		watcher:          watch,
		store:            store,
		theme:            th,
		healthCheckTicks: healthCheckTicks,
		hideDelay:        hideDelay,
		instances:        make(map[string]*Instance),
	}
}

// Discover scans widgetsDir for immediate subdirectories containing a
// widget.json, in lexical order, and constructs each as an Instance.
// Manifest validation failures and browser-initialization failures are
// logged and skip that widget rather than aborting the scan; if zero
// widgets load, the caller is expected to treat that as fatal.
func (mgr *Manager) Discover(ctx context.Context, widgetsDir string) error {
	entries, err := os.ReadDir(widgetsDir)
	if err != nil {
		return fmt.Errorf("widgets: read directory %s: %w", widgetsDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	monitors, err := winapi.EnumMonitors()
	if err != nil {
		return fmt.Errorf("widgets: enumerate monitors: %w", err)
	}

	for _, name := range names {
		dir := filepath.Join(widgetsDir, name)
		if _, err := os.Stat(filepath.Join(dir, "widget.json")); err != nil {
			continue
		}

		m, err := manifest.Load(dir, name)
		if err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("widget", name).Msg("skipping widget: invalid manifest")
			continue
		}

		if err := mgr.add(ctx, m, monitors); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("widget", name).Msg("skipping widget: setup failed")
		}
	}

	return nil
}

func (mgr *Manager) add(ctx context.Context, m *manifest.Manifest, monitors []winapi.Monitor) error {
	mgr.mu.Lock()
	if _, exists := mgr.instances[m.Name]; exists {
		mgr.mu.Unlock()
		return fmt.Errorf("duplicate widget name %q", m.Name)
	}
	mgr.mu.Unlock()

	view, err := mgr.runtime.NewView(browser.ViewOptions{
		ParentHandle: 0,
		Bounds:       browser.Bounds{Width: m.Window.Width, Height: m.Window.Height},
	})
	if err != nil {
		return fmt.Errorf("create browser view: %w", err)
	}

	var savedRect position.Rect
	var savedOK bool
	if m.Window.Mode == manifest.ModeWidget {
		savedRect, savedOK = mgr.store.Get(m.Name)
	}

	inst, err := Setup(ctx, m, view, mgr.theme, monitors, savedRect, savedOK, mgr.watcher)
	if err != nil {
		_ = view.Close()
		return err
	}

	mgr.mu.Lock()
	mgr.instances[m.Name] = inst
	mgr.order = append(mgr.order, m.Name)
	if m.Window.Mode == manifest.ModeDashboard {
		mgr.dashboardWidgets = append(mgr.dashboardWidgets, inst)
	}
	mgr.mu.Unlock()
	return nil
}

// Count returns the number of live widget instances.
func (mgr *Manager) Count() int {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	return len(mgr.instances)
}

// Names returns widget names in discovery order, a stable snapshot safe to
// range over even if the manager is concurrently shutting down — callers
// must tolerate a shrinking list.
func (mgr *Manager) Names() []string {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	return append([]string(nil), mgr.order...)
}

// Get returns the instance for name, if it still exists.
func (mgr *Manager) Get(name string) (*Instance, bool) {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	inst, ok := mgr.instances[name]
	return inst, ok
}

// Toggle flips visibility for the named widget instance.
func (mgr *Manager) Toggle(name string) {
	if inst, ok := mgr.Get(name); ok {
		inst.Toggle()
	}
}

// HasDashboards reports whether any discovered widget is dashboard-mode.
func (mgr *Manager) HasDashboards() bool {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	return len(mgr.dashboardWidgets) > 0
}

// ToggleDashboard flips the dashboard overlay's visibility. Show makes
// every dashboard widget visible
// immediately with a fade-in script; Hide fades out via script and defers
// the actual OS-level hide by mgr.hideDelay, checked each tick by
// CheckDashboardDeadline.
func (mgr *Manager) ToggleDashboard() {
	mgr.mu.Lock()
	showing := !mgr.dashboardVisible
	mgr.dashboardVisible = showing
	widgets := append([]*Instance(nil), mgr.dashboardWidgets...)
	mgr.mu.Unlock()

	if showing {
		mgr.hidePending = false
		for _, inst := range widgets {
			inst.mu.Lock()
			inst.visible = true
			inst.mu.Unlock()
			winapi.SetVisible(inst.hwnd, true)
			_ = inst.view.ExecuteScript(`document.body.classList.remove('fade-out'); document.body.classList.add('fade-in')`)
		}
		return
	}

	for _, inst := range widgets {
		_ = inst.view.ExecuteScript(`document.body.classList.remove('fade-in'); document.body.classList.add('fade-out')`)
	}
	mgr.mu.Lock()
	mgr.hideDeadline = time.Now().Add(mgr.hideDelay)
	mgr.hidePending = true
	mgr.mu.Unlock()
}

// CheckDashboardDeadline hides every dashboard widget once a pending
// fade-out's deadline has passed. Call once per tick.
func (mgr *Manager) CheckDashboardDeadline() {
	mgr.mu.Lock()
	if !mgr.hidePending || time.Now().Before(mgr.hideDeadline) {
		mgr.mu.Unlock()
		return
	}
	mgr.hidePending = false
	widgets := append([]*Instance(nil), mgr.dashboardWidgets...)
	mgr.mu.Unlock()

	for _, inst := range widgets {
		winapi.SetVisible(inst.hwnd, false)
		inst.mu.Lock()
		inst.visible = false
		inst.mu.Unlock()
	}
}

// CheckWallpaperHealth runs the ~5s wallpaper-parent liveness check across
// every wallpaper-mode instance, gated by mgr.healthCheckTicks. Call once
// per tick.
func (mgr *Manager) CheckWallpaperHealth(ctx context.Context) {
	mgr.mu.Lock()
	mgr.tickCounter++
	if mgr.tickCounter < mgr.healthCheckTicks {
		mgr.mu.Unlock()
		return
	}
	mgr.tickCounter = 0
	instances := make([]*Instance, 0, len(mgr.instances))
	for _, inst := range mgr.instances {
		instances = append(instances, inst)
	}
	mgr.mu.Unlock()

	for _, inst := range instances {
		inst.CheckWallpaperHealth(ctx)
	}
}

// ApplyPendingReloads drains the hot-reload watcher's queue and
// re-navigates each named widget still live.
func (mgr *Manager) ApplyPendingReloads(ctx context.Context) {
	if mgr.watcher == nil {
		return
	}
	for _, name := range mgr.watcher.PollReloads() {
		inst, ok := mgr.Get(name)
		if !ok {
			continue
		}
		if err := inst.ApplyReload(); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("widget", name).Msg("hot reload navigate failed")
		}
	}
}

// ReloadAll re-navigates every live widget, used by the "reload_all" action
// (tray menu item / reload hotkey).
func (mgr *Manager) ReloadAll(ctx context.Context) {
	for _, inst := range mgr.snapshot() {
		if err := inst.ApplyReload(); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("widget", inst.Name()).Msg("reload failed")
		}
	}
}

// PushSystemServices fans a sysservices.Snapshot out to every widget
// subscribed to the "datetime" or "system" namespace.
func (mgr *Manager) PushSystemServices(snap sysservices.Snapshot) {
	for _, inst := range mgr.snapshot() {
		for _, ns := range inst.Manifest.StateNamespaces {
			switch ns {
			case "datetime":
				pushStruct(inst.bridge, "datetime", snap.Datetime)
			case "system":
				pushStruct(inst.bridge, "system", snap.System)
			}
		}
	}
}

// Positionables returns every live instance as a position.Positionable, for
// the position store's per-tick collection pass.
func (mgr *Manager) Positionables() []position.Positionable {
	instances := mgr.snapshot()
	out := make([]position.Positionable, 0, len(instances))
	for _, inst := range instances {
		out = append(out, inst)
	}
	return out
}

func (mgr *Manager) snapshot() []*Instance {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	out := make([]*Instance, 0, len(mgr.instances))
	for _, name := range mgr.order {
		if inst, ok := mgr.instances[name]; ok {
			out = append(out, inst)
		}
	}
	return out
}

// Shutdown tears down every widget instance in reverse discovery order:
// stop its watcher, release any AppBar, close its browser view.
func (mgr *Manager) Shutdown() {
	mgr.mu.Lock()
	order := append([]string(nil), mgr.order...)
	mgr.mu.Unlock()

	for i := len(order) - 1; i >= 0; i-- {
		if inst, ok := mgr.Get(order[i]); ok {
			inst.Shutdown(mgr.watcher)
		}
	}
}
