package config

import "time"

// RawSettingsConfig holds general application settings
type RawSettingsConfig struct {
	InternalMetrics RawInternalMetricsConfig `yaml:"internal_metrics"`
	Monitor         RawMonitorConfig         `yaml:"monitor"`
	Watch           *bool                    `yaml:"watch,omitempty"`
}

// RawInternalMetricsConfig controls the exporter's self-monitoring metrics
type RawInternalMetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// RawMonitorConfig controls the process resource monitor
type RawMonitorConfig struct {
	Enabled  *bool         `yaml:"enabled,omitempty"`
	Interval time.Duration `yaml:"interval,omitempty"`
}
