package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultWhenNameEmpty(t *testing.T) {
	th, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "default", th.Name)
	assert.Equal(t, "#7aa2f7", th.Colors["accent"])
}

func TestLoadOverlaysOnlyGivenKeys(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "solarized.json"), []byte(`{
		"name": "Solarized",
		"colors": {"accent": "#268bd2"}
	}`), 0o644))

	th, err := Load("solarized", dir)
	require.NoError(t, err)
	assert.Equal(t, "Solarized", th.Name)
	assert.Equal(t, "#268bd2", th.Colors["accent"])
	// Untouched keys still come from the default.
	assert.Equal(t, "#9ece6a", th.Colors["success"])
	assert.Equal(t, "12px", th.BorderRadius)
}

func TestLoadMissingFileFallsBackToDefault(t *testing.T) {
	th, err := Load("nonexistent", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme(), th)
}

func TestStyleElementContainsShellPrefix(t *testing.T) {
	th := DefaultTheme()
	el := th.StyleElement()
	assert.Contains(t, el, "--shell-accent: #7aa2f7")
	assert.Contains(t, el, "--shell-radius: 12px")
}

func TestInjectScriptEscapesQuotes(t *testing.T) {
	script := DefaultTheme().InjectScript()
	assert.Contains(t, script, "insertAdjacentHTML")
	assert.NotContains(t, script, "''")
}
