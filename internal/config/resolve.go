package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/neox5/jetdqm/internal/jetdqm"
)

// resolveContext tracks resolution path for error messages
type resolveContext []string

func (ctx resolveContext) push(component, name string) resolveContext {
	return append(ctx[:len(ctx):len(ctx)], fmt.Sprintf("%s %q", component, name))
}

func (ctx resolveContext) error(msg string) error {
	return ctx.wrap(errors.New(msg))
}

// wrap appends the resolution path to err, keeping it matchable with errors.Is.
func (ctx resolveContext) wrap(err error) error {
	if len(ctx) == 0 {
		return err
	}

	var b strings.Builder
	// Print stack top-down (innermost definition first)
	for i := len(ctx) - 1; i >= 0; i-- {
		b.WriteString("\n  in ")
		b.WriteString(ctx[i])
	}
	return fmt.Errorf("%w%s", err, b.String())
}

// Resolver turns raw analyzer and sequence definitions into a registry
type Resolver struct {
	raw      *RawConfig
	registry *jetdqm.Registry

	// Analyzers waiting for their clone to be resolved
	pending   map[string]RawAnalyzer
	resolving map[string]bool
}

// newResolver creates a resolver seeded with the built-in registry unless
// the raw config opts out
func newResolver(raw *RawConfig) *Resolver {
	registry := jetdqm.NewRegistry()
	if raw.Builtin == nil || *raw.Builtin {
		registry = jetdqm.Builtin()
	}

	return &Resolver{
		raw:       raw,
		registry:  registry,
		pending:   make(map[string]RawAnalyzer),
		resolving: make(map[string]bool),
	}
}

// Resolve performs clone resolution and builds final config
func Resolve(raw *RawConfig) (*Config, error) {
	r := newResolver(raw)

	// Phase 1: Analyzers (dependency order, file order otherwise)
	if err := r.resolveAnalyzers(); err != nil {
		return nil, err
	}

	// Phase 2: Sequences
	if err := r.resolveSequences(); err != nil {
		return nil, err
	}

	if err := r.registry.Validate(); err != nil {
		return nil, err
	}

	// Phase 3: Export config
	resolvedExport, err := resolveExport(&r.raw.Export)
	if err != nil {
		return nil, err
	}

	// Phase 4: Settings
	resolvedSettings, err := resolveSettings(&r.raw.Settings)
	if err != nil {
		return nil, err
	}

	return &Config{
		Registry: r.registry,
		Export:   resolvedExport,
		Settings: resolvedSettings,
	}, nil
}

// resolveAnalyzers defines every raw analyzer after the analyzer it clones
func (r *Resolver) resolveAnalyzers() error {
	slog.Debug("resolving analyzers", "count", len(r.raw.Analyzers))

	for _, raw := range r.raw.Analyzers {
		if _, exists := r.pending[raw.Name]; exists {
			return fmt.Errorf("analyzer %q: %w", raw.Name, jetdqm.ErrDuplicateName)
		}
		r.pending[raw.Name] = raw
	}

	for _, raw := range r.raw.Analyzers {
		if err := r.resolveAnalyzer(raw.Name, resolveContext{}); err != nil {
			return err
		}
	}
	return nil
}

// resolveAnalyzer resolves one analyzer, resolving its clone first
func (r *Resolver) resolveAnalyzer(name string, ctx resolveContext) error {
	raw, isPending := r.pending[name]
	if !isPending {
		// Already defined (built-in or resolved earlier)
		return nil
	}

	ctx = ctx.push("analyzer", name)

	if r.resolving[name] {
		return ctx.error("clone cycle detected")
	}
	r.resolving[name] = true
	defer delete(r.resolving, name)

	if raw.Clone == "" {
		cfg := jetdqm.Derive(jetdqm.BaseAnalyzer(), raw.Overrides)
		if err := r.registry.DefineBase(name, cfg); err != nil {
			return ctx.wrap(err)
		}
		delete(r.pending, name)
		slog.Debug("resolved analyzer", "name", name, "clone", "<base template>")
		return nil
	}

	if _, isPending := r.pending[raw.Clone]; isPending {
		if err := r.resolveAnalyzer(raw.Clone, ctx); err != nil {
			return err
		}
	} else if _, exists := r.registry.Analyzer(raw.Clone); !exists {
		return ctx.wrap(fmt.Errorf("clone %q: %w", raw.Clone, jetdqm.ErrUnknownAnalyzer))
	}

	if err := r.registry.Define(name, raw.Clone, raw.Overrides); err != nil {
		return ctx.wrap(err)
	}
	delete(r.pending, name)

	slog.Debug("resolved analyzer", "name", name, "clone", raw.Clone)
	return nil
}

// resolveSequences composes raw sequences in file order
func (r *Resolver) resolveSequences() error {
	slog.Debug("resolving sequences", "count", len(r.raw.Sequences))

	for _, raw := range r.raw.Sequences {
		ctx := resolveContext{}.push("sequence", raw.Name)
		if err := r.registry.Compose(raw.Name, raw.Analyzers...); err != nil {
			return ctx.wrap(err)
		}
		slog.Debug("resolved sequence", "name", raw.Name, "analyzers", raw.Analyzers)
	}
	return nil
}
