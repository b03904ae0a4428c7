package config

import "github.com/neox5/jetdqm/internal/jetdqm"

// RawConfig represents unparsed YAML structure
type RawConfig struct {
	Builtin   *bool             `yaml:"builtin,omitempty"`
	Analyzers []RawAnalyzer     `yaml:"analyzers,omitempty"`
	Sequences []RawSequence     `yaml:"sequences,omitempty"`
	Export    RawExportConfig   `yaml:"export"`
	Settings  RawSettingsConfig `yaml:"settings"`
}

// RawAnalyzer defines an analyzer by cloning another one.
// An empty Clone derives from the base analyzer template.
type RawAnalyzer struct {
	Name      string          `yaml:"name"`
	Clone     string          `yaml:"clone,omitempty"`
	Overrides jetdqm.Override `yaml:"overrides,omitempty"`
}

// RawSequence groups analyzers by name
type RawSequence struct {
	Name      string   `yaml:"name"`
	Analyzers []string `yaml:"analyzers"`
}
