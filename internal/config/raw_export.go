package config

import "time"

// RawExportConfig defines how registry metrics are exposed
type RawExportConfig struct {
	Prometheus *RawPrometheusExportConfig `yaml:"prometheus,omitempty"`
	OTEL       *RawOTELExportConfig       `yaml:"otel,omitempty"`
}

// RawPrometheusExportConfig defines the scrape endpoint
type RawPrometheusExportConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// RawOTELExportConfig defines OTLP push settings
type RawOTELExportConfig struct {
	Enabled   bool              `yaml:"enabled"`
	Transport string            `yaml:"transport,omitempty"`
	Host      string            `yaml:"host,omitempty"`
	Port      int               `yaml:"port,omitempty"`
	Insecure  *bool             `yaml:"insecure,omitempty"`
	Interval  time.Duration     `yaml:"interval,omitempty"`
	Timeout   time.Duration     `yaml:"timeout,omitempty"`
	Resource  map[string]string `yaml:"resource,omitempty"`
	Headers   map[string]string `yaml:"headers,omitempty"`
}
