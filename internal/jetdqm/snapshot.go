package jetdqm

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"go.yaml.in/yaml/v4"
)

// Snapshot is the serialized form of a registry. Each analyzer carries both
// its recorded derivation and the full configuration it resolved to.
type Snapshot struct {
	Analyzers []AnalyzerSnapshot `yaml:"analyzers"`
	Sequences []SequenceSnapshot `yaml:"sequences,omitempty"`
}

// AnalyzerSnapshot is one serialized definition.
type AnalyzerSnapshot struct {
	Name      string         `yaml:"name"`
	Clone     string         `yaml:"clone,omitempty"`
	Overrides *Override      `yaml:"overrides,omitempty"`
	Config    AnalyzerConfig `yaml:"config"`
}

// SequenceSnapshot is one serialized sequence.
type SequenceSnapshot struct {
	Name      string   `yaml:"name"`
	Analyzers []string `yaml:"analyzers"`
}

// Snapshot captures every definition and sequence in definition order.
func (r *Registry) Snapshot() Snapshot {
	var s Snapshot
	for _, def := range r.Definitions() {
		a := AnalyzerSnapshot{
			Name:   def.Name,
			Clone:  def.Base,
			Config: def.Config,
		}
		if def.Base != "" {
			o := def.Override
			a.Overrides = &o
		}
		s.Analyzers = append(s.Analyzers, a)
	}
	for _, seq := range r.Sequences() {
		s.Sequences = append(s.Sequences, SequenceSnapshot{Name: seq.Name, Analyzers: seq.Analyzers})
	}
	return s
}

// Select keeps the named analyzers and the sequences made up only of
// them. The result is for display; it restores only when every kept
// analyzer's lineage is kept too.
func (s Snapshot) Select(names ...string) Snapshot {
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}

	var out Snapshot
	for _, a := range s.Analyzers {
		if keep[a.Name] {
			out.Analyzers = append(out.Analyzers, a)
		}
	}
	for _, seq := range s.Sequences {
		if !slices.ContainsFunc(seq.Analyzers, func(n string) bool { return !keep[n] }) {
			out.Sequences = append(out.Sequences, seq)
		}
	}
	return out
}

// Restore rebuilds a registry by replaying each recorded derivation and
// checks every result against the recorded configuration.
func Restore(s Snapshot) (*Registry, error) {
	r := NewRegistry()

	for _, a := range s.Analyzers {
		if a.Clone == "" {
			if a.Overrides != nil && !a.Overrides.IsZero() {
				return nil, fmt.Errorf("analyzer %q: overrides require clone", a.Name)
			}
			if err := r.DefineBase(a.Name, a.Config); err != nil {
				return nil, err
			}
			continue
		}

		var o Override
		if a.Overrides != nil {
			o = *a.Overrides
		}
		if err := r.Define(a.Name, a.Clone, o); err != nil {
			return nil, err
		}

		replayed, _ := r.Analyzer(a.Name)
		if !replayed.Equal(a.Config) {
			return nil, fmt.Errorf("analyzer %q: %w", a.Name, ErrReplayMismatch)
		}
	}

	for _, seq := range s.Sequences {
		if err := r.Compose(seq.Name, seq.Analyzers...); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// MarshalSnapshot encodes a snapshot as YAML.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalSnapshot decodes a YAML snapshot. Unknown fields are rejected.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Snapshot{}, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return s, nil
}
