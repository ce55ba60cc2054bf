// Package widget implements the widget instance record and manager:
// per-mode window setup over the Win32 helper, the state/IPC bridge,
// optional hot reload, and the runtime bookkeeping the shell's main loop
// drives each tick.
package widget

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/Maximilian-Winter/pytonium-shell/internal/backend"
	"github.com/Maximilian-Winter/pytonium-shell/internal/bridge"
	"github.com/Maximilian-Winter/pytonium-shell/internal/browser"
	"github.com/Maximilian-Winter/pytonium-shell/internal/logging"
	"github.com/Maximilian-Winter/pytonium-shell/internal/manifest"
	"github.com/Maximilian-Winter/pytonium-shell/internal/position"
	"github.com/Maximilian-Winter/pytonium-shell/internal/theme"
	"github.com/Maximilian-Winter/pytonium-shell/internal/watcher"
	"github.com/Maximilian-Winter/pytonium-shell/internal/winapi"
)

// Instance is the runtime record for one widget, binding its manifest to
// its window, browser view, bridge, and optional backend and watcher.
type Instance struct {
	mu sync.Mutex

	Manifest *manifest.Manifest
	view     browser.View
	bridge   *bridge.Bridge
	backend  *backend.Backend

	hwnd        winapi.HWND
	mode        manifest.Mode
	visible     bool
	isWallpaper bool
	appBar      *winapi.AppBarToken
	monitor     winapi.Monitor
	hasAppBar   bool

	watching bool
}

// Name is the widget's unique key (its directory name).
func (inst *Instance) Name() string { return inst.Manifest.Name }

// Mode satisfies position.Positionable; persistence is restricted to
// "widget" mode widgets.
func (inst *Instance) Mode() string { return string(inst.mode) }

// Visible reports whether the widget's native window is currently shown.
func (inst *Instance) Visible() bool {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.visible
}

// IsWallpaper reports whether this instance was successfully reparented
// into the desktop wallpaper worker.
func (inst *Instance) IsWallpaper() bool {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.isWallpaper
}

// CurrentRect satisfies position.Positionable by reading the instance's
// live native window rectangle.
func (inst *Instance) CurrentRect() (position.Rect, error) {
	r, err := winapi.GetRect(inst.hwnd)
	if err != nil {
		return position.Rect{}, err
	}
	return position.Rect{X: int(r.Left), Y: int(r.Top), Width: r.Width(), Height: r.Height()}, nil
}

// Setup wires a freshly created browser.View through to a chrome-applied
// native window for m, applying the mode-specific composition for m's
// window mode. savedRect, when ok, overrides the manifest's initial
// position for "widget" mode only.
func Setup(ctx context.Context, m *manifest.Manifest, view browser.View, th theme.Theme, monitors []winapi.Monitor, savedRect position.Rect, savedOK bool, watch *watcher.Watcher) (*Instance, error) {
	inst := &Instance{
		Manifest: m,
		view:     view,
		mode:     m.Window.Mode,
		hwnd:     winapi.HWND(view.NativeHandle()),
	}

	mon, err := resolveMonitor(m.Window.Monitor, monitors)
	if err != nil {
		return nil, err
	}
	inst.monitor = mon

	if err := inst.applyChrome(ctx, m, mon, savedRect, savedOK); err != nil {
		return nil, err
	}

	inst.bridge = bridge.New(view)
	if m.Backend != "" {
		backendPath := filepath.Join(m.Dir, m.Backend)
		b, err := backend.Load(backendPath, inst.bridge)
		if err != nil {
			// Backend load/import failures never block a widget's web
			// front-end from running.
			logging.FromContext(ctx).Warn().Err(err).Str("widget", m.Name).Msg("backend failed to load, continuing without it")
		} else {
			inst.backend = b
		}
	}

	entryURL := "file:///" + filepath.ToSlash(filepath.Join(m.Dir, m.Entry))
	view.OnNavigationComplete(func() {
		_ = view.ExecuteScript(th.InjectScript())
	})
	if err := view.Navigate(entryURL); err != nil {
		return nil, fmt.Errorf("widget %q: navigate: %w", m.Name, err)
	}

	if m.HotReload && watch != nil {
		if err := watch.Watch(ctx, m.Name, m.Dir); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("widget", m.Name).Msg("hot reload watcher unavailable")
		} else {
			inst.watching = true
		}
	}

	return inst, nil
}

func (inst *Instance) applyChrome(ctx context.Context, m *manifest.Manifest, mon winapi.Monitor, savedRect position.Rect, savedOK bool) error {
	switch m.Window.Mode {
	case manifest.ModeWidget:
		return inst.setupWidget(m, savedRect, savedOK)
	case manifest.ModeDashboard:
		return inst.setupDashboard(m, mon)
	case manifest.ModeBar:
		return inst.setupBar(ctx, m, mon)
	case manifest.ModeWallpaper:
		return inst.setupWallpaper(ctx, m, mon)
	default:
		return fmt.Errorf("widget %q: unknown mode %q", m.Name, m.Window.Mode)
	}
}

func (inst *Instance) setupWidget(m *manifest.Manifest, savedRect position.Rect, savedOK bool) error {
	x, y, w, h := m.Window.Position.X, m.Window.Position.Y, m.Window.Width, m.Window.Height
	if savedOK {
		x, y, w, h = savedRect.X, savedRect.Y, savedRect.Width, savedRect.Height
	}
	if err := winapi.SetPos(inst.hwnd, x, y, w, h); err != nil {
		return fmt.Errorf("widget %q: set position: %w", m.Name, err)
	}
	if m.Window.AlwaysOnTop {
		if err := winapi.SetTopmost(inst.hwnd, true); err != nil {
			return fmt.Errorf("widget %q: set topmost: %w", m.Name, err)
		}
	}
	if !m.Window.ShowInTaskbar {
		if err := winapi.SetToolWindow(inst.hwnd, true); err != nil {
			return fmt.Errorf("widget %q: set tool window: %w", m.Name, err)
		}
	}
	if m.Window.ClickThrough {
		if err := winapi.SetClickThrough(inst.hwnd, true); err != nil {
			return fmt.Errorf("widget %q: set click-through: %w", m.Name, err)
		}
	}
	if m.Window.TransparentBackground {
		if err := winapi.SetTransparentBackground(inst.hwnd); err != nil {
			return fmt.Errorf("widget %q: set transparent background: %w", m.Name, err)
		}
	}
	winapi.SetVisible(inst.hwnd, true)
	inst.visible = true
	return nil
}

// setupDashboard positions a dashboard widget over its target monitor,
// forces topmost + tool-window, and leaves it hidden.
func (inst *Instance) setupDashboard(m *manifest.Manifest, mon winapi.Monitor) error {
	r := mon.Rect
	if err := winapi.SetPos(inst.hwnd, int(r.Left), int(r.Top), r.Width(), r.Height()); err != nil {
		return fmt.Errorf("widget %q: set position: %w", m.Name, err)
	}
	if err := winapi.SetTopmost(inst.hwnd, true); err != nil {
		return fmt.Errorf("widget %q: set topmost: %w", m.Name, err)
	}
	if err := winapi.SetToolWindow(inst.hwnd, true); err != nil {
		return fmt.Errorf("widget %q: set tool window: %w", m.Name, err)
	}
	winapi.SetVisible(inst.hwnd, false)
	inst.visible = false
	return nil
}

// setupBar resolves the anchor-band rect for the widget's target monitor,
// forces topmost + tool-window, and registers an AppBar reservation if
// requested, falling back to direct positioning on failure.
func (inst *Instance) setupBar(ctx context.Context, m *manifest.Manifest, mon winapi.Monitor) error {
	depth := m.Window.Height
	if m.Window.Anchor == manifest.AnchorLeft || m.Window.Anchor == manifest.AnchorRight {
		depth = m.Window.Width
	}
	if depth <= 0 {
		depth = 32
	}

	edge := anchorToEdge(m.Window.Anchor)

	if err := winapi.SetTopmost(inst.hwnd, true); err != nil {
		return fmt.Errorf("bar %q: set topmost: %w", m.Name, err)
	}
	if err := winapi.SetToolWindow(inst.hwnd, true); err != nil {
		return fmt.Errorf("bar %q: set tool window: %w", m.Name, err)
	}

	if m.Window.ReserveSpace {
		token, err := winapi.RegisterAppBar(inst.hwnd, edge, depth, mon)
		if err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("widget", m.Name).Msg("AppBar registration failed, falling back to direct positioning")
		} else {
			inst.appBar = &token
			inst.hasAppBar = true
			winapi.SetVisible(inst.hwnd, true)
			inst.visible = true
			return nil
		}
	}

	r := barRect(edge, depth, mon)
	if err := winapi.SetPos(inst.hwnd, int(r.Left), int(r.Top), r.Width(), r.Height()); err != nil {
		return fmt.Errorf("bar %q: set position: %w", m.Name, err)
	}
	winapi.SetVisible(inst.hwnd, true)
	inst.visible = true
	return nil
}

// setupWallpaper hides the widget from the taskbar, attempts a reparent
// into the live wallpaper worker window, and on success applies
// click-through by default; on failure it is left a plain visible window
// with no click-through.
func (inst *Instance) setupWallpaper(ctx context.Context, m *manifest.Manifest, mon winapi.Monitor) error {
	if err := winapi.SetToolWindow(inst.hwnd, true); err != nil {
		return fmt.Errorf("wallpaper %q: set tool window: %w", m.Name, err)
	}

	r := mon.Rect
	if err := winapi.ReparentToWallpaper(inst.hwnd, r); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("widget", m.Name).Msg("wallpaper reparent failed, leaving as a plain window")
		if err := winapi.SetPos(inst.hwnd, int(r.Left), int(r.Top), r.Width(), r.Height()); err != nil {
			return fmt.Errorf("wallpaper %q: set position: %w", m.Name, err)
		}
		winapi.SetVisible(inst.hwnd, true)
		inst.visible = true
		return nil
	}

	inst.isWallpaper = true
	if err := winapi.SetPos(inst.hwnd, int(r.Left), int(r.Top), r.Width(), r.Height()); err != nil {
		return fmt.Errorf("wallpaper %q: set position: %w", m.Name, err)
	}
	if m.Window.ClickThrough {
		if err := winapi.SetClickThrough(inst.hwnd, true); err != nil {
			return fmt.Errorf("wallpaper %q: set click-through: %w", m.Name, err)
		}
	}
	winapi.SetVisible(inst.hwnd, true)
	inst.visible = true
	return nil
}

// CheckWallpaperHealth reparents a wallpaper instance if its parent window
// has died. Intended to be called roughly every ~5s.
func (inst *Instance) CheckWallpaperHealth(ctx context.Context) {
	inst.mu.Lock()
	isWallpaper := inst.isWallpaper
	inst.mu.Unlock()
	if !isWallpaper {
		return
	}

	if winapi.IsParentLive(winapi.GetParent(inst.hwnd)) {
		return
	}

	mon, err := winapi.MonitorForWindow(inst.hwnd)
	if err != nil {
		mon = inst.monitor
	}
	if err := winapi.ReparentToWallpaper(inst.hwnd, mon.Rect); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("widget", inst.Manifest.Name).Msg("wallpaper health check: reparent failed")
		return
	}
	winapi.SetPos(inst.hwnd, int(mon.Rect.Left), int(mon.Rect.Top), mon.Rect.Width(), mon.Rect.Height())
}

// Toggle flips native visibility for a "widget"-mode instance.
func (inst *Instance) Toggle() {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	inst.visible = !inst.visible
	winapi.SetVisible(inst.hwnd, inst.visible)
}

// ApplyReload re-navigates the widget's view to its entry file, used by the
// hot-reload watcher's debounced reload intent.
func (inst *Instance) ApplyReload() error {
	entryURL := "file:///" + filepath.ToSlash(filepath.Join(inst.Manifest.Dir, inst.Manifest.Entry))
	return inst.view.Navigate(entryURL)
}

// Shutdown reverses widget setup: stops the hot-reload watcher, releases
// any AppBar reservation, unparents a reparented wallpaper widget, and
// closes the browser view.
func (inst *Instance) Shutdown(watch *watcher.Watcher) {
	if inst.watching && watch != nil {
		watch.StopWidget(inst.Manifest.Name)
	}
	if inst.hasAppBar && inst.appBar != nil {
		winapi.UnregisterAppBar(*inst.appBar)
	}
	if inst.isWallpaper {
		_ = winapi.RestoreWallpaperParent(inst.hwnd)
	}
	_ = inst.view.Close()
}

func resolveMonitor(spec string, monitors []winapi.Monitor) (winapi.Monitor, error) {
	if len(monitors) == 0 {
		return winapi.Monitor{}, fmt.Errorf("no monitors enumerated")
	}
	if spec == "" || spec == "primary" {
		for _, m := range monitors {
			if m.Primary {
				return m, nil
			}
		}
		return monitors[0], nil
	}
	idx := 0
	if _, err := fmt.Sscanf(spec, "%d", &idx); err != nil {
		return monitors[0], nil
	}
	if idx < 0 || idx >= len(monitors) {
		return monitors[0], nil
	}
	return monitors[idx], nil
}

func anchorToEdge(a manifest.Anchor) winapi.Edge {
	switch a {
	case manifest.AnchorTop:
		return winapi.EdgeTop
	case manifest.AnchorBottom:
		return winapi.EdgeBottom
	case manifest.AnchorLeft:
		return winapi.EdgeLeft
	case manifest.AnchorRight:
		return winapi.EdgeRight
	default:
		return winapi.EdgeTop
	}
}

func barRect(edge winapi.Edge, depth int, mon winapi.Monitor) winapi.Rect {
	r := mon.Rect
	switch edge {
	case winapi.EdgeTop:
		r.Bottom = r.Top + int32(depth)
	case winapi.EdgeBottom:
		r.Top = r.Bottom - int32(depth)
	case winapi.EdgeLeft:
		r.Right = r.Left + int32(depth)
	case winapi.EdgeRight:
		r.Left = r.Right - int32(depth)
	}
	return r
}
