package metric

import (
	"strconv"

	"github.com/neox5/jetdqm/internal/jetdqm"
)

// Registry holds protocol-agnostic metric series for one analyzer registry.
type Registry struct {
	metrics []Descriptor
}

// New creates series describing every analyzer and sequence in reg.
func New(reg *jetdqm.Registry) *Registry {
	var metrics []Descriptor

	for _, def := range reg.Definitions() {
		cfg := def.Config

		metrics = append(metrics,
			Descriptor{
				Family: AnalyzerInfo,
				Attributes: map[string]string{
					"analyzer":    def.Name,
					"base":        def.Base,
					"cleaning":    strconv.FormatBool(cfg.JetCleaningFlag),
					"corrections": cfg.JetCorrections.String(),
					"cosmics":     strconv.FormatBool(cfg.RunCosmics),
					"jet_type":    string(cfg.JetType),
					"jetsrc":      cfg.JetSource.String(),
				},
				Value: 1,
			},
			Descriptor{
				Family:     AnalyzerPtThreshold,
				Attributes: map[string]string{"analyzer": def.Name},
				Value:      cfg.JetAnalysis.PtThreshold,
			},
			Descriptor{
				Family:     AnalyzerTriggerPaths,
				Attributes: map[string]string{"analyzer": def.Name, "trigger": jetdqm.FilterHighPtJet},
				Value:      float64(len(cfg.HighPtJetTrigger.HLTPaths)),
			},
			Descriptor{
				Family:     AnalyzerTriggerPaths,
				Attributes: map[string]string{"analyzer": def.Name, "trigger": jetdqm.FilterLowPtJet},
				Value:      float64(len(cfg.LowPtJetTrigger.HLTPaths)),
			},
		)
	}

	for _, seq := range reg.Sequences() {
		metrics = append(metrics, Descriptor{
			Family:     SequenceAnalyzers,
			Attributes: map[string]string{"sequence": seq.Name},
			Value:      float64(len(seq.Analyzers)),
		})
	}

	return &Registry{metrics: metrics}
}

// Metrics returns all registered metric descriptors.
func (r *Registry) Metrics() []Descriptor {
	return r.metrics
}
