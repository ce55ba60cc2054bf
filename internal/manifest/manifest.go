// Package manifest loads and validates the per-widget widget.json manifest:
// window chrome, hotkey binding, and state namespace subscriptions.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Mode is the window-composition role of a widget.
type Mode string

const (
	ModeWidget    Mode = "widget"
	ModeDashboard Mode = "dashboard"
	ModeBar       Mode = "bar"
	ModeWallpaper Mode = "wallpaper"
)

// Anchor is the docked edge for a bar-mode widget.
type Anchor string

const (
	AnchorTop    Anchor = "top"
	AnchorBottom Anchor = "bottom"
	AnchorLeft   Anchor = "left"
	AnchorRight  Anchor = "right"
)

// Position is an initial {x,y} window position.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Window holds the window.* manifest keys.
type Window struct {
	Mode                  Mode     `json:"mode"`
	Width                 int      `json:"width"`
	Height                int      `json:"height"`
	Position              Position `json:"position"`
	AlwaysOnTop           bool     `json:"always_on_top"`
	ShowInTaskbar         bool     `json:"show_in_taskbar"`
	ClickThrough          bool     `json:"click_through"`
	TransparentBackground bool     `json:"transparent_background"`
	Anchor                Anchor   `json:"anchor"`
	ReserveSpace          bool     `json:"reserve_space"`
	Monitor               string   `json:"monitor"`
}

// Manifest is the parsed contents of widget.json plus its directory name.
type Manifest struct {
	Name            string   `json:"-"`
	Dir             string   `json:"-"`
	Entry           string   `json:"entry"`
	Backend         string   `json:"backend"`
	Window          Window   `json:"window"`
	Hotkey          string   `json:"hotkey"`
	StateNamespaces []string `json:"state_namespaces"`
	HotReload       bool     `json:"hot_reload"`
}

// rawManifest mirrors Manifest's JSON shape before defaults are applied, so
// we can tell an absent window.monitor apart from an explicit empty string.
type rawManifest struct {
	Entry           string          `json:"entry"`
	Backend         string          `json:"backend"`
	Window          json.RawMessage `json:"window"`
	Hotkey          string          `json:"hotkey"`
	StateNamespaces []string        `json:"state_namespaces"`
	HotReload       bool            `json:"hot_reload"`
}

// Load reads and validates <dir>/widget.json, applying mode-dependent
// defaults. name is the widget's directory name, used as its unique key.
func Load(dir, name string) (*Manifest, error) {
	path := filepath.Join(dir, "widget.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var raw rawManifest
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	m := &Manifest{
		Name:            name,
		Dir:             dir,
		Entry:           raw.Entry,
		Backend:         raw.Backend,
		Hotkey:          strings.TrimSpace(raw.Hotkey),
		StateNamespaces: raw.StateNamespaces,
		HotReload:       raw.HotReload,
	}
	if m.Entry == "" {
		m.Entry = "index.html"
	}

	m.Window = defaultWindow()
	if len(raw.Window) > 0 {
		var w partialWindow
		if err := json.Unmarshal(raw.Window, &w); err != nil {
			return nil, fmt.Errorf("parse manifest %s window: %w", path, err)
		}
		w.applyTo(&m.Window)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// partialWindow carries pointer fields so JSON-absent keys don't overwrite
// the defaults already set in m.Window (click_through's per-mode default in
// particular depends on mode, so it must survive a manifest that omits it).
type partialWindow struct {
	Mode                  *Mode     `json:"mode"`
	Width                 *int      `json:"width"`
	Height                *int      `json:"height"`
	Position              *Position `json:"position"`
	AlwaysOnTop           *bool     `json:"always_on_top"`
	ShowInTaskbar         *bool     `json:"show_in_taskbar"`
	ClickThrough          *bool     `json:"click_through"`
	TransparentBackground *bool     `json:"transparent_background"`
	Anchor                *Anchor   `json:"anchor"`
	ReserveSpace          *bool     `json:"reserve_space"`
	Monitor               *string   `json:"monitor"`
}

func (p partialWindow) applyTo(w *Window) {
	if p.Mode != nil {
		w.Mode = *p.Mode
	}
	if p.Width != nil {
		w.Width = *p.Width
	}
	if p.Height != nil {
		w.Height = *p.Height
	}
	if p.Position != nil {
		w.Position = *p.Position
	}
	if p.AlwaysOnTop != nil {
		w.AlwaysOnTop = *p.AlwaysOnTop
	}
	if p.ShowInTaskbar != nil {
		w.ShowInTaskbar = *p.ShowInTaskbar
	}
	if p.ClickThrough != nil {
		w.ClickThrough = *p.ClickThrough
	}
	if p.TransparentBackground != nil {
		w.TransparentBackground = *p.TransparentBackground
	}
	if p.Anchor != nil {
		w.Anchor = *p.Anchor
	}
	if p.ReserveSpace != nil {
		w.ReserveSpace = *p.ReserveSpace
	}
	if p.Monitor != nil {
		w.Monitor = *p.Monitor
	}
	// click_through defaults to true only in wallpaper mode, and that
	// depends on the mode resolved above, so it is re-applied last.
	if p.ClickThrough == nil && w.Mode == ModeWallpaper {
		w.ClickThrough = true
	}
}

func defaultWindow() Window {
	return Window{
		Mode:          ModeWidget,
		Width:         300,
		Height:        200,
		ShowInTaskbar: true,
		ReserveSpace:  true,
		Monitor:       "primary",
	}
}

func (m *Manifest) validate() error {
	var errs []string

	switch m.Window.Mode {
	case ModeWidget, ModeDashboard, ModeBar, ModeWallpaper:
	default:
		errs = append(errs, fmt.Sprintf("window.mode must be one of widget|dashboard|bar|wallpaper (got %q)", m.Window.Mode))
	}

	if m.Window.Mode == ModeBar {
		switch m.Window.Anchor {
		case AnchorTop, AnchorBottom, AnchorLeft, AnchorRight:
		default:
			errs = append(errs, fmt.Sprintf("window.anchor must be one of top|bottom|left|right for bar widgets (got %q)", m.Window.Anchor))
		}
	}

	if m.Window.Monitor != "primary" {
		if _, err := strconv.Atoi(m.Window.Monitor); err != nil {
			errs = append(errs, fmt.Sprintf("window.monitor must be \"primary\" or an integer index (got %q)", m.Window.Monitor))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid manifest for %q: %s", m.Name, strings.Join(errs, "; "))
	}
	return nil
}
