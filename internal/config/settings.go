package config

import (
	"fmt"
	"time"
)

// DefaultMonitorInterval is how often the resource monitor logs.
const DefaultMonitorInterval = 5 * time.Second

// SettingsConfig holds general application settings.
type SettingsConfig struct {
	// InternalMetrics adds promhttp handler metrics to the scrape.
	InternalMetrics bool
	Monitor         MonitorConfig
	// Watch reloads the configuration file when it changes.
	Watch           bool
}

// MonitorConfig controls the process resource monitor.
type MonitorConfig struct {
	Enabled  bool
	Interval time.Duration
}

// Validate applies defaults and validates settings configuration.
func (s *SettingsConfig) Validate() error {
	if s.Monitor.Interval == 0 {
		s.Monitor.Interval = DefaultMonitorInterval
	}
	if s.Monitor.Interval < 0 {
		return fmt.Errorf("invalid monitor interval: %s", s.Monitor.Interval)
	}
	return nil
}

// resolveSettings converts raw settings and applies defaults.
func resolveSettings(raw *RawSettingsConfig) (SettingsConfig, error) {
	settings := SettingsConfig{
		InternalMetrics: raw.InternalMetrics.Enabled,
		Monitor: MonitorConfig{
			Enabled:  true,
			Interval: raw.Monitor.Interval,
		},
		Watch: true,
	}
	if raw.Monitor.Enabled != nil {
		settings.Monitor.Enabled = *raw.Monitor.Enabled
	}
	if raw.Watch != nil {
		settings.Watch = *raw.Watch
	}

	if err := settings.Validate(); err != nil {
		return SettingsConfig{}, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}
