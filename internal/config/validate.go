package config

import (
	"fmt"
)

// Validate performs syntactic validation on raw config
func Validate(raw *RawConfig) error {
	return validateRawSyntax(raw)
}

// validateRawSyntax performs basic syntactic validation on raw config
func validateRawSyntax(raw *RawConfig) error {
	for i, a := range raw.Analyzers {
		if a.Name == "" {
			return fmt.Errorf("analyzer at index %d: name cannot be empty", i)
		}
		if a.Clone == a.Name {
			return fmt.Errorf("analyzer %q: cannot clone itself", a.Name)
		}
	}

	for i, s := range raw.Sequences {
		if s.Name == "" {
			return fmt.Errorf("sequence at index %d: name cannot be empty", i)
		}
		if len(s.Analyzers) == 0 {
			return fmt.Errorf("sequence %q: at least one analyzer must be listed", s.Name)
		}
	}

	return nil
}
