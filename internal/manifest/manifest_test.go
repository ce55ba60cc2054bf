package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "widget.json"), []byte(body), 0o644))
	return dir
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := writeManifest(t, `{}`)

	m, err := Load(dir, "clock")
	require.NoError(t, err)

	assert.Equal(t, "index.html", m.Entry)
	assert.Equal(t, ModeWidget, m.Window.Mode)
	assert.Equal(t, 300, m.Window.Width)
	assert.Equal(t, 200, m.Window.Height)
	assert.True(t, m.Window.ShowInTaskbar)
	assert.True(t, m.Window.ReserveSpace)
	assert.Equal(t, "primary", m.Window.Monitor)
	assert.False(t, m.Window.ClickThrough)
}

func TestLoadWallpaperDefaultsClickThroughTrue(t *testing.T) {
	dir := writeManifest(t, `{"window":{"mode":"wallpaper"}}`)

	m, err := Load(dir, "wp")
	require.NoError(t, err)
	assert.True(t, m.Window.ClickThrough)
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	dir := writeManifest(t, `{"window":{"mode":"floating"}}`)

	_, err := Load(dir, "bad")
	assert.Error(t, err)
}

func TestLoadRequiresAnchorForBar(t *testing.T) {
	dir := writeManifest(t, `{"window":{"mode":"bar"}}`)

	_, err := Load(dir, "bar")
	assert.ErrorContains(t, err, "window.anchor")
}

func TestLoadParsesFullManifest(t *testing.T) {
	dir := writeManifest(t, `{
		"window": {"mode":"widget","width":200,"height":80,"position":{"x":100,"y":200},"always_on_top":true,"show_in_taskbar":false},
		"state_namespaces": ["datetime"],
		"hotkey": "ctrl+alt+c"
	}`)

	m, err := Load(dir, "clock")
	require.NoError(t, err)
	assert.Equal(t, 100, m.Window.Position.X)
	assert.Equal(t, 200, m.Window.Position.Y)
	assert.True(t, m.Window.AlwaysOnTop)
	assert.False(t, m.Window.ShowInTaskbar)
	assert.Equal(t, []string{"datetime"}, m.StateNamespaces)
	assert.Equal(t, "ctrl+alt+c", m.Hotkey)
}

func TestResolveMonitorIndex(t *testing.T) {
	m := &Manifest{Window: Window{Monitor: "primary"}}
	idx, explicit := m.ResolveMonitorIndex()
	assert.Equal(t, 0, idx)
	assert.False(t, explicit)

	m.Window.Monitor = "2"
	idx, explicit = m.ResolveMonitorIndex()
	assert.Equal(t, 2, idx)
	assert.True(t, explicit)
}
