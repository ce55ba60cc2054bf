// Package theme implements the shell's named-theme CSS variable injection:
// a built-in default, overlaid by a `<name>.json` file's keys rather than
// replaced by it.
//
// The CSS custom-property emission style follows
// internal/ui/theme/palette.go's ToCSSVars/ToWebCSSVars string-builder
// idiom, generalized to the shell's `--shell-<key>` naming.
package theme

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Theme is the fully resolved set of CSS custom properties a widget's web
// view receives.
type Theme struct {
	Name         string
	Colors       map[string]string
	FontFamily   string
	FontSize     string
	BorderRadius string
}

// DefaultTheme returns the shell's built-in default (a dark, Tokyo-Night
// styled palette), matching the defaults in
// original_source/src/pytonium_shell/theme.py.
func DefaultTheme() Theme {
	return Theme{
		Name: "default",
		Colors: map[string]string{
			"background": "rgba(26, 27, 38, 0.85)",
			"foreground": "#a9b1d6",
			"accent":     "#7aa2f7",
			"accent2":    "#bb9af7",
			"success":    "#9ece6a",
			"warning":    "#e0af68",
			"error":      "#f7768e",
			"muted":      "#565f89",
			"border":     "rgba(255, 255, 255, 0.08)",
		},
		FontFamily:   "'Segoe UI', 'JetBrains Mono', 'Consolas', monospace",
		FontSize:     "13px",
		BorderRadius: "12px",
	}
}

// rawTheme is the overlay file shape; pointer/omitted fields mean "inherit
// the default", matching the manifest package's partial-override pattern.
type rawTheme struct {
	Name   string            `json:"name"`
	Colors map[string]string `json:"colors"`
	Font   *struct {
		Family string `json:"family"`
		Size   string `json:"size"`
	} `json:"font"`
	BorderRadius string `json:"border_radius"`
}

// Load resolves name against themesDir, starting from DefaultTheme and
// merging in the named file's keys on top (colors merge per-key; a theme
// file need only override what it wants to change). A missing or "default"
// name returns DefaultTheme unchanged.
func Load(name, themesDir string) (Theme, error) {
	base := DefaultTheme()
	if name == "" || name == "default" || themesDir == "" {
		return base, nil
	}

	path := filepath.Join(themesDir, name+".json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return base, nil
	}
	if err != nil {
		return Theme{}, err
	}

	var raw rawTheme
	if err := json.Unmarshal(data, &raw); err != nil {
		return Theme{}, err
	}

	if raw.Name != "" {
		base.Name = raw.Name
	}
	for k, v := range raw.Colors {
		base.Colors[k] = v
	}
	if raw.Font != nil {
		if raw.Font.Family != "" {
			base.FontFamily = raw.Font.Family
		}
		if raw.Font.Size != "" {
			base.FontSize = raw.Font.Size
		}
	}
	if raw.BorderRadius != "" {
		base.BorderRadius = raw.BorderRadius
	}
	return base, nil
}

// StyleElement renders the theme as a single <style> tag defining
// :root { --shell-<key>: <value>; ... } for every color, font attribute,
// and border radius.
func (t Theme) StyleElement() string {
	var sb strings.Builder
	sb.WriteString(":root {")
	for key, val := range t.Colors {
		sb.WriteString(" --shell-" + key + ": " + val + ";")
	}
	sb.WriteString(" --shell-font: " + t.FontFamily + ";")
	sb.WriteString(" --shell-font-size: " + t.FontSize + ";")
	sb.WriteString(" --shell-radius: " + t.BorderRadius + ";")
	sb.WriteString(" }")
	return "<style>" + sb.String() + "</style>"
}

// InjectScript returns the JS snippet that appends StyleElement to <head>,
// run once a view's document becomes ready.
func (t Theme) InjectScript() string {
	escaped := strings.ReplaceAll(t.StyleElement(), "'", "\\'")
	return "document.head.insertAdjacentHTML('beforeend', '" + escaped + "')"
}
