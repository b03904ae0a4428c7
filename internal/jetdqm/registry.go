package jetdqm

import (
	"fmt"
	"log/slog"
	"slices"
)

// Definition records how an analyzer was built: the base it was cloned
// from, the override applied, and the resulting configuration.
// Base is empty for a root definition.
type Definition struct {
	Name     string
	Base     string
	Override Override
	Config   AnalyzerConfig
}

// Sequence is an ordered group of analyzers scheduled together.
// The order is recorded for the framework that runs them; it is not
// interpreted here.
type Sequence struct {
	Name      string
	Analyzers []string
}

// Registry holds named analyzer definitions and sequences.
// Definitions are immutable once added; accessors return copies.
type Registry struct {
	defs      map[string]Definition
	order     []string
	sequences map[string]Sequence
	seqOrder  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:      make(map[string]Definition),
		sequences: make(map[string]Sequence),
	}
}

// registerName enforces one namespace for analyzers and sequences.
func (r *Registry) registerName(name, kind string) error {
	if name == "" {
		return fmt.Errorf("%s name cannot be empty", kind)
	}
	if _, exists := r.defs[name]; exists {
		return fmt.Errorf("%w: %q already used by analyzer, cannot reuse for %s", ErrDuplicateName, name, kind)
	}
	if _, exists := r.sequences[name]; exists {
		return fmt.Errorf("%w: %q already used by sequence, cannot reuse for %s", ErrDuplicateName, name, kind)
	}
	return nil
}

// DefineBase adds a root analyzer with a complete configuration.
func (r *Registry) DefineBase(name string, cfg AnalyzerConfig) error {
	if err := r.registerName(name, "analyzer"); err != nil {
		return err
	}
	r.defs[name] = Definition{Name: name, Config: cfg.Clone()}
	r.order = append(r.order, name)

	slog.Debug("defined base analyzer", "name", name, "jet_type", cfg.JetType)
	return nil
}

// Define adds an analyzer derived from an existing one.
func (r *Registry) Define(name, base string, o Override) error {
	if err := r.registerName(name, "analyzer"); err != nil {
		return err
	}
	parent, exists := r.defs[base]
	if !exists {
		return fmt.Errorf("analyzer %q: clone of %q: %w", name, base, ErrUnknownAnalyzer)
	}

	r.defs[name] = Definition{
		Name:     name,
		Base:     base,
		Override: o.Clone(),
		Config:   Derive(parent.Config, o),
	}
	r.order = append(r.order, name)

	slog.Debug("defined analyzer", "name", name, "base", base)
	return nil
}

// Compose adds a sequence of existing analyzers.
func (r *Registry) Compose(name string, analyzers ...string) error {
	if err := r.registerName(name, "sequence"); err != nil {
		return err
	}

	seen := make(map[string]bool, len(analyzers))
	for _, a := range analyzers {
		if _, exists := r.defs[a]; !exists {
			return fmt.Errorf("sequence %q: member %q: %w", name, a, ErrUnknownAnalyzer)
		}
		if seen[a] {
			return fmt.Errorf("sequence %q: member %q: %w", name, a, ErrDuplicateMember)
		}
		seen[a] = true
	}

	r.sequences[name] = Sequence{Name: name, Analyzers: slices.Clone(analyzers)}
	r.seqOrder = append(r.seqOrder, name)

	slog.Debug("composed sequence", "name", name, "analyzers", len(analyzers))
	return nil
}

// Analyzer returns the configuration of the named analyzer.
func (r *Registry) Analyzer(name string) (AnalyzerConfig, bool) {
	def, exists := r.defs[name]
	if !exists {
		return AnalyzerConfig{}, false
	}
	return def.Config.Clone(), true
}

// Definition returns how the named analyzer was built.
func (r *Registry) Definition(name string) (Definition, bool) {
	def, exists := r.defs[name]
	if !exists {
		return Definition{}, false
	}
	return def.clone(), true
}

// Sequence returns the named sequence.
func (r *Registry) Sequence(name string) (Sequence, bool) {
	seq, exists := r.sequences[name]
	if !exists {
		return Sequence{}, false
	}
	return Sequence{Name: seq.Name, Analyzers: slices.Clone(seq.Analyzers)}, true
}

// Names returns analyzer names in definition order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// SequenceNames returns sequence names in definition order.
func (r *Registry) SequenceNames() []string {
	return slices.Clone(r.seqOrder)
}

// Definitions returns all definitions in definition order.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.defs[name].clone())
	}
	return defs
}

// Sequences returns all sequences in definition order.
func (r *Registry) Sequences() []Sequence {
	seqs := make([]Sequence, 0, len(r.seqOrder))
	for _, name := range r.seqOrder {
		seq, _ := r.Sequence(name)
		seqs = append(seqs, seq)
	}
	return seqs
}

// Lineage returns the derivation chain from the root to name.
func (r *Registry) Lineage(name string) ([]string, error) {
	var chain []string
	for current := name; current != ""; {
		def, exists := r.defs[current]
		if !exists {
			return nil, fmt.Errorf("%q: %w", current, ErrUnknownAnalyzer)
		}
		chain = append(chain, current)
		current = def.Base
	}
	slices.Reverse(chain)
	return chain, nil
}

// Replay rebuilds the named analyzer from its root by re-applying every
// recorded override along its lineage.
func (r *Registry) Replay(name string) (AnalyzerConfig, error) {
	chain, err := r.Lineage(name)
	if err != nil {
		return AnalyzerConfig{}, err
	}

	cfg := r.defs[chain[0]].Config.Clone()
	for _, step := range chain[1:] {
		cfg = Derive(cfg, r.defs[step].Override)
	}

	if !cfg.Equal(r.defs[name].Config) {
		return cfg, fmt.Errorf("analyzer %q: %w", name, ErrReplayMismatch)
	}
	return cfg, nil
}

// Unscheduled returns analyzers that no sequence references.
func (r *Registry) Unscheduled() []string {
	used := make(map[string]bool)
	for _, seq := range r.sequences {
		for _, a := range seq.Analyzers {
			used[a] = true
		}
	}

	var names []string
	for _, name := range r.order {
		if !used[name] {
			names = append(names, name)
		}
	}
	return names
}

// Validate checks every stored configuration.
func (r *Registry) Validate() error {
	for _, name := range r.order {
		if err := r.defs[name].Config.Validate(); err != nil {
			return fmt.Errorf("analyzer %q: %w", name, err)
		}
	}
	for _, name := range r.seqOrder {
		if len(r.sequences[name].Analyzers) == 0 {
			return fmt.Errorf("sequence %q: no analyzers", name)
		}
	}
	return nil
}

// Clone returns an independent copy that can be extended without
// affecting r.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	for _, name := range r.order {
		c.defs[name] = r.defs[name].clone()
	}
	c.order = slices.Clone(r.order)
	for _, name := range r.seqOrder {
		seq := r.sequences[name]
		c.sequences[name] = Sequence{Name: seq.Name, Analyzers: slices.Clone(seq.Analyzers)}
	}
	c.seqOrder = slices.Clone(r.seqOrder)
	return c
}

// Len returns the number of analyzers.
func (r *Registry) Len() int {
	return len(r.order)
}

func (d Definition) clone() Definition {
	d.Override = d.Override.Clone()
	d.Config = d.Config.Clone()
	return d
}
