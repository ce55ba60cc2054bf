// Package config provides path resolution for where the shell keeps its
// config, theme, and default widgets.
package config

import (
	"os"
	"path/filepath"
)

const appDirName = "PytoniumShell"

// ConfigDir returns %APPDATA%\PytoniumShell (or os.UserConfigDir()'s
// equivalent on other platforms, kept for test portability even though the
// shell itself targets Windows only).
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDirName), nil
}

// DataDir returns the directory the shell uses for bundled example widgets
// and the default theme, next to the executable in a packaged install.
func DataDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// EnsureDir creates dir (and parents) with standard permissions if absent.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
