package jetdqm

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"
)

// InputTag references a product of an external module by
// label, optional instance and optional process name.
type InputTag struct {
	Label    string
	Instance string
	Process  string
}

// Tag builds an InputTag from up to three components.
func Tag(parts ...string) InputTag {
	var t InputTag
	if len(parts) > 0 {
		t.Label = parts[0]
	}
	if len(parts) > 1 {
		t.Instance = parts[1]
	}
	if len(parts) > 2 {
		t.Process = parts[2]
	}
	return t
}

// ParseInputTag parses the "label[:instance[:process]]" text form.
func ParseInputTag(s string) (InputTag, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return InputTag{}, fmt.Errorf("invalid input tag %q: too many components", s)
	}
	t := Tag(parts...)
	if t.Label == "" && (t.Instance != "" || t.Process != "") {
		return InputTag{}, fmt.Errorf("invalid input tag %q: empty label", s)
	}
	return t, nil
}

// IsEmpty reports whether the tag references nothing.
func (t InputTag) IsEmpty() bool {
	return t.Label == ""
}

// String returns the text form, dropping trailing empty components.
func (t InputTag) String() string {
	switch {
	case t.Process != "":
		return t.Label + ":" + t.Instance + ":" + t.Process
	case t.Instance != "":
		return t.Label + ":" + t.Instance
	default:
		return t.Label
	}
}

// MarshalYAML encodes the tag as a scalar.
func (t InputTag) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML accepts the scalar text form.
func (t *InputTag) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("input tag must be a string: %w", err)
	}
	parsed, err := ParseInputTag(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
