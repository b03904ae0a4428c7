package jetdqm

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Trigger filter names as they appear in an analyzer configuration.
const (
	FilterHighPtJet = "highPtJetTrigger"
	FilterLowPtJet  = "lowPtJetTrigger"
)

// TriggerMatch reports that an analyzer's filter selects an HLT path.
type TriggerMatch struct {
	Analyzer string
	Filter   string
	Pattern  string
}

// MatchPattern reports whether an HLT path name is selected by pattern.
// A pattern ending in "_v" accepts any version suffix, a pattern with
// glob metacharacters is matched as a glob, anything else must match exactly.
func MatchPattern(pattern, path string) bool {
	if strings.HasSuffix(pattern, "_v") {
		rest, ok := strings.CutPrefix(path, pattern)
		return ok && isDigits(rest)
	}
	if strings.ContainsAny(pattern, "*?[{") {
		ok, err := doublestar.Match(pattern, path)
		return err == nil && ok
	}
	return pattern == path
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Match returns the first pattern of the filter selecting path.
func (t TriggerFilterConfig) Match(path string) (string, bool) {
	for _, p := range t.HLTPaths {
		if MatchPattern(p, path) {
			return p, true
		}
	}
	return "", false
}

// MatchTrigger lists the analyzer filters that select path, in
// definition order.
func (r *Registry) MatchTrigger(path string) []TriggerMatch {
	var matches []TriggerMatch
	for _, name := range r.order {
		cfg := r.defs[name].Config
		if p, ok := cfg.HighPtJetTrigger.Match(path); ok {
			matches = append(matches, TriggerMatch{Analyzer: name, Filter: FilterHighPtJet, Pattern: p})
		}
		if p, ok := cfg.LowPtJetTrigger.Match(path); ok {
			matches = append(matches, TriggerMatch{Analyzer: name, Filter: FilterLowPtJet, Pattern: p})
		}
	}
	return matches
}
