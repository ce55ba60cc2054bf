// Package shell implements the shell manager: owns configuration, composes
// every other component, runs the single ~60Hz main loop, and dispatches
// hotkey/tray actions.
package shell

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Maximilian-Winter/pytonium-shell/internal/browser"
	"github.com/Maximilian-Winter/pytonium-shell/internal/config"
	"github.com/Maximilian-Winter/pytonium-shell/internal/hotkey"
	"github.com/Maximilian-Winter/pytonium-shell/internal/logging"
	"github.com/Maximilian-Winter/pytonium-shell/internal/position"
	"github.com/Maximilian-Winter/pytonium-shell/internal/sysservices"
	"github.com/Maximilian-Winter/pytonium-shell/internal/theme"
	"github.com/Maximilian-Winter/pytonium-shell/internal/tray"
	"github.com/Maximilian-Winter/pytonium-shell/internal/watcher"
	"github.com/Maximilian-Winter/pytonium-shell/internal/widget"
)

// Options configures a Manager's collaborators and directories.
type Options struct {
	WidgetsDir string
	ConfigPath string
	ThemeName  string
}

// Manager composes every shell collaborator and drives the main loop.
type Manager struct {
	cfg *config.Manager

	runtime  browser.Runtime
	watcher  *watcher.Watcher
	store    *position.Store
	hotkeys  *hotkey.Listener
	tray     *tray.Tray
	widgets  *widget.Manager
	sampler  *sysservices.Sampler

	tickInterval time.Duration
	quit         bool
}

// New loads configuration and theme, and constructs every collaborator,
// but does not yet discover widgets or start background threads — call
// Run for that.
func New(ctx context.Context, opts Options) (*Manager, error) {
	cfgMgr, err := config.NewManager(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("shell: config manager: %w", err)
	}
	if err := cfgMgr.Load(); err != nil {
		return nil, fmt.Errorf("shell: load config: %w", err)
	}
	cfg := cfgMgr.Get()

	configDir, err := config.ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("shell: resolve config directory: %w", err)
	}

	th, err := theme.Load(opts.ThemeName, filepath.Join(configDir, "themes"))
	if err != nil {
		return nil, fmt.Errorf("shell: load theme: %w", err)
	}

	watch := watcher.New(time.Duration(cfg.HotReloadDebounceMillis) * time.Millisecond)
	store := position.New(filepath.Join(opts.WidgetsDir, "widget_positions.json"), time.Duration(cfg.SaveIntervalSeconds)*time.Second)
	sampler := sysservices.New(time.Duration(cfg.SysServicesIntervalSeconds) * time.Second)

	runtime := browser.NewWebView2Runtime(filepath.Join(configDir, "webview2"))
	if err := runtime.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("shell: initialize browser runtime: %w", err)
	}

	widgets := widget.NewManager(
		runtime, watch, store, th,
		cfg.WallpaperHealthCheckTicks,
		time.Duration(cfg.DashboardHideDelayMillis)*time.Millisecond,
	)

	hotkeys := hotkey.New()
	if cfg.DashboardHotkey != "" {
		if err := hotkeys.Register("toggle_dashboard", cfg.DashboardHotkey); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("dashboard hotkey registration failed")
		}
	}
	if cfg.QuitHotkey != "" {
		if err := hotkeys.Register("quit", cfg.QuitHotkey); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("quit hotkey registration failed")
		}
	}
	if cfg.ReloadHotkey != "" {
		if err := hotkeys.Register("reload_all", cfg.ReloadHotkey); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("reload hotkey registration failed")
		}
	}

	return &Manager{
		cfg:          cfgMgr,
		runtime:      runtime,
		watcher:      watch,
		store:        store,
		hotkeys:      hotkeys,
		widgets:      widgets,
		sampler:      sampler,
		tickInterval: time.Duration(cfg.TickMillis) * time.Millisecond,
	}, nil
}

// Run discovers widgets, starts every helper thread, and blocks running the
// main loop until Quit is requested or ctx is cancelled. Returns an error
// (mapped to a non-zero exit code by the caller) if zero widgets could be
// loaded.
func (mgr *Manager) Run(ctx context.Context, widgetsDir string) error {
	if err := mgr.widgets.Discover(ctx, widgetsDir); err != nil {
		return fmt.Errorf("shell: discover widgets: %w", err)
	}
	if mgr.widgets.Count() == 0 {
		return fmt.Errorf("shell: no widgets loaded from %s", widgetsDir)
	}

	for _, name := range mgr.widgets.Names() {
		inst, ok := mgr.widgets.Get(name)
		if !ok || inst.Manifest.Hotkey == "" {
			continue
		}
		if err := mgr.hotkeys.Register(widgetTogglePrefix+name, inst.Manifest.Hotkey); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("widget", name).Msg("widget hotkey registration failed")
		}
	}

	if err := mgr.hotkeys.Start(ctx); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("hotkey listener failed to start")
	}

	entries := make([]tray.WidgetEntry, 0, len(mgr.widgets.Names()))
	for _, name := range mgr.widgets.Names() {
		name := name
		inst, ok := mgr.widgets.Get(name)
		if !ok {
			continue
		}
		entries = append(entries, tray.WidgetEntry{
			Name: name,
			Mode: inst.Mode(),
			Visible: func() bool {
				if cur, ok := mgr.widgets.Get(name); ok {
					return cur.Visible()
				}
				return false
			},
		})
	}
	mgr.tray = tray.New(entries, mgr.widgets.HasDashboards())
	mgr.tray.Start(ctx)

	ticker := time.NewTicker(mgr.tickInterval)
	defer ticker.Stop()

	for !mgr.quit {
		select {
		case <-ctx.Done():
			mgr.quit = true
		case <-ticker.C:
			mgr.tick(ctx)
		}
	}

	mgr.shutdown(ctx)
	return nil
}

// tick runs one pass of the main loop in a fixed order: hotkey drain ->
// tray drain -> widget update (dashboard deadline, wallpaper health,
// browser pump) -> system-services sample -> position-store save.
func (mgr *Manager) tick(ctx context.Context) {
	defer logging.Recover(ctx, "shell-tick")

	for _, name := range mgr.hotkeys.PollTriggered() {
		mgr.dispatch(ctx, name)
	}
	for _, action := range mgr.tray.PollActions() {
		mgr.dispatch(ctx, action)
	}

	mgr.widgets.CheckDashboardDeadline()
	mgr.widgets.CheckWallpaperHealth(ctx)
	mgr.widgets.ApplyPendingReloads(ctx)
	mgr.runtime.PumpOnce()

	if snap, ok := mgr.sampler.Poll(ctx); ok {
		mgr.widgets.PushSystemServices(snap)
	}

	mgr.store.CollectPositions(mgr.widgets.Positionables())
	if err := mgr.store.PollSave(); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("position store save failed")
	}
}

// dispatch maps a hotkey/tray action name to its effect. Unknown actions
// and widget_toggle:<name> for an already-removed widget are silently
// ignored rather than logged as errors, since both are expected transients
// when a widget is toggled around the same tick it is removed.
func (mgr *Manager) dispatch(ctx context.Context, action string) {
	switch {
	case action == "toggle_dashboard":
		mgr.widgets.ToggleDashboard()
	case action == "reload_all":
		mgr.widgets.ReloadAll(ctx)
	case action == "quit":
		mgr.quit = true
	default:
		if name, ok := parseWidgetToggle(action); ok {
			mgr.widgets.Toggle(name)
		}
	}
}

const widgetTogglePrefix = "widget_toggle:"

// parseWidgetToggle extracts the widget name from a "widget_toggle:<name>"
// action string.
func parseWidgetToggle(action string) (string, bool) {
	if len(action) <= len(widgetTogglePrefix) || action[:len(widgetTogglePrefix)] != widgetTogglePrefix {
		return "", false
	}
	return action[len(widgetTogglePrefix):], true
}

// shutdown reverses setup order: widgets (watchers, AppBars, wallpaper
// unparent, browser views) tear down first, then the
// hotkey listener, tray, and browser runtime, each bounded so a single
// stuck collaborator cannot hang process exit.
func (mgr *Manager) shutdown(ctx context.Context) {
	mgr.widgets.Shutdown()

	if err := mgr.hotkeys.Stop(); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("hotkey listener stop timed out")
	}
	if mgr.tray != nil {
		mgr.tray.Stop()
	}
	if err := mgr.store.Save(); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("final position store save failed")
	}
	if err := mgr.runtime.Shutdown(); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("browser runtime shutdown error")
	}
}
