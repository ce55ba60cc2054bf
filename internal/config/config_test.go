package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "missing-shell.json"))
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, defaultDashboardHotkey, cfg.DashboardHotkey)
	assert.Equal(t, defaultSaveIntervalSeconds, cfg.SaveIntervalSeconds)
	assert.Equal(t, defaultTickMillis, cfg.TickMillis)
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shell.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dashboard_hotkey":"ctrl+alt+d","quit_hotkey":"ctrl+alt+q"}`), 0o644))

	m, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, "ctrl+alt+q", cfg.QuitHotkey)
}

func TestLoadRejectsInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shell.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"logging":{"format":"xml"}}`), 0o644))

	m, err := NewManager(path)
	require.NoError(t, err)
	assert.Error(t, m.Load())
}

func TestSchemaProducesValidJSON(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
	assert.Contains(t, string(data), "PytoniumShell Configuration")
}
