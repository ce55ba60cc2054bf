// Package config provides validation utilities for configuration values.
package config

import (
	"fmt"
	"strings"
)

// validate performs comprehensive validation of configuration values.
func validate(cfg *Config) error {
	var validationErrors []string

	if cfg.SaveIntervalSeconds < 1 {
		validationErrors = append(validationErrors, "save_interval_seconds must be at least 1")
	}
	if cfg.TickMillis < 1 {
		validationErrors = append(validationErrors, "tick_millis must be at least 1")
	}
	if cfg.SysServicesIntervalSeconds < 1 {
		validationErrors = append(validationErrors, "sys_services_interval_seconds must be at least 1")
	}
	if cfg.WallpaperHealthCheckTicks < 1 {
		validationErrors = append(validationErrors, "wallpaper_health_check_ticks must be at least 1")
	}
	if cfg.DashboardHideDelayMillis < 0 {
		validationErrors = append(validationErrors, "dashboard_hide_delay_millis must be non-negative")
	}
	if cfg.HotReloadDebounceMillis < 0 {
		validationErrors = append(validationErrors, "hot_reload_debounce_millis must be non-negative")
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "console", "json":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format must be console or json (got %q)", cfg.Logging.Format))
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}
