// Package config loads the optional shell configuration JSON with Viper,
// applying defaults and live-reloading on file change.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config is the complete shell configuration.
type Config struct {
	// DashboardHotkey toggles the dashboard overlay. Default "ctrl+alt+d".
	DashboardHotkey string `mapstructure:"dashboard_hotkey" yaml:"dashboard_hotkey"`
	// QuitHotkey, if set, terminates the shell.
	QuitHotkey string `mapstructure:"quit_hotkey" yaml:"quit_hotkey"`
	// ReloadHotkey, if set, reloads every running widget's web view.
	ReloadHotkey string `mapstructure:"reload_hotkey" yaml:"reload_hotkey"`

	// SaveIntervalSeconds bounds how often the position store flushes to disk.
	SaveIntervalSeconds int `mapstructure:"save_interval_seconds" yaml:"save_interval_seconds"`
	// TickMillis is the main-loop period (~16ms targets 60Hz).
	TickMillis int `mapstructure:"tick_millis" yaml:"tick_millis"`
	// SysServicesIntervalSeconds is the system-telemetry sample period.
	SysServicesIntervalSeconds int `mapstructure:"sys_services_interval_seconds" yaml:"sys_services_interval_seconds"`
	// WallpaperHealthCheckTicks is how many ticks elapse between wallpaper
	// parent-liveness checks (default 300 ticks ≈ 5s at 60Hz).
	WallpaperHealthCheckTicks int `mapstructure:"wallpaper_health_check_ticks" yaml:"wallpaper_health_check_ticks"`
	// DashboardHideDelayMillis is the dashboard's fade-then-hide delay.
	DashboardHideDelayMillis int `mapstructure:"dashboard_hide_delay_millis" yaml:"dashboard_hide_delay_millis"`
	// HotReloadDebounceMillis debounces file-watch events before reloading.
	HotReloadDebounceMillis int `mapstructure:"hot_reload_debounce_millis" yaml:"hot_reload_debounce_millis"`

	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LoggingConfig controls the root logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Manager owns a Viper instance, the parsed Config, and live-reload
// callbacks.
type Manager struct {
	viper     *viper.Viper
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
	watching  bool
}

// NewManager builds a Manager that reads configPath if non-empty, otherwise
// searches the default shell config locations (see paths.go).
func NewManager(configPath string) (*Manager, error) {
	v := viper.New()
	v.SetConfigType("json")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("shell")
		dir, err := ConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config directory: %w", err)
		}
		v.AddConfigPath(dir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("PYTONIUM_SHELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Manager{viper: v}, nil
}

// Load reads the config file if present (a missing file is not an error —
// the configuration is optional and defaults apply), then validates the
// result.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	setDefaults(m.viper)

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read shell config: %w", err)
		}
	}

	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal shell config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return err
	}

	m.config = cfg
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg := *m.config
	return &cfg
}

// Watch enables live-reload: on file change, re-reads and validates the
// config and invokes every registered callback with the new value.
func (m *Manager) Watch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watching {
		return
	}
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		m.mu.Lock()
		cfg := &Config{}
		err := m.viper.Unmarshal(cfg)
		if err == nil {
			err = validate(cfg)
		}
		if err != nil {
			m.mu.Unlock()
			return
		}
		m.config = cfg
		callbacks := append([]func(*Config){}, m.callbacks...)
		m.mu.Unlock()

		for _, cb := range callbacks {
			cb(cfg)
		}
	})
	m.viper.WatchConfig()
	m.watching = true
}

// OnConfigChange registers a callback fired after a successful live reload.
func (m *Manager) OnConfigChange(cb func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, cb)
}
