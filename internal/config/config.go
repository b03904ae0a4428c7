package config

import "github.com/neox5/jetdqm/internal/jetdqm"

// Config holds the resolved application configuration.
type Config struct {
	Registry *jetdqm.Registry
	Export   ExportConfig
	Settings SettingsConfig
}

// Default returns the configuration used when no file is given:
// the built-in registry and default export settings.
func Default() (*Config, error) {
	return Resolve(&RawConfig{})
}
