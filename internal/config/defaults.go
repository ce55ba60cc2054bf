// Package config provides default configuration values for the shell.
package config

import "github.com/spf13/viper"

const (
	defaultDashboardHotkey          = "ctrl+alt+d"
	defaultSaveIntervalSeconds      = 30
	defaultTickMillis               = 16
	defaultSysServicesIntervalSecs  = 1
	defaultWallpaperHealthCheckTick = 300
	defaultDashboardHideDelayMillis = 300
	defaultHotReloadDebounceMillis  = 200
	defaultLoggingLevel             = "info"
	defaultLoggingFormat            = "console"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("dashboard_hotkey", defaultDashboardHotkey)
	v.SetDefault("quit_hotkey", "")
	v.SetDefault("reload_hotkey", "")
	v.SetDefault("save_interval_seconds", defaultSaveIntervalSeconds)
	v.SetDefault("tick_millis", defaultTickMillis)
	v.SetDefault("sys_services_interval_seconds", defaultSysServicesIntervalSecs)
	v.SetDefault("wallpaper_health_check_ticks", defaultWallpaperHealthCheckTick)
	v.SetDefault("dashboard_hide_delay_millis", defaultDashboardHideDelayMillis)
	v.SetDefault("hot_reload_debounce_millis", defaultHotReloadDebounceMillis)
	v.SetDefault("logging.level", defaultLoggingLevel)
	v.SetDefault("logging.format", defaultLoggingFormat)
}
