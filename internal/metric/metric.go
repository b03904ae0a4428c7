package metric

// MetricType defines the semantic type of a metric.
type MetricType string

const (
	MetricTypeCounter MetricType = "counter"
	MetricTypeGauge   MetricType = "gauge"
)

// Family describes one metric name and the attribute keys its series carry.
type Family struct {
	PrometheusName string
	OTELName       string
	Type           MetricType
	Description    string
	Labels         []string
}

// Descriptor is one series: a family, its attribute values and the current value.
type Descriptor struct {
	Family     Family
	Attributes map[string]string
	Value      float64
}

var (
	AnalyzerInfo = Family{
		PrometheusName: "jetdqm_analyzer_info",
		OTELName:       "jetdqm.analyzer.info",
		Type:           MetricTypeGauge,
		Description:    "Configured jet analyzers; always 1",
		Labels:         []string{"analyzer", "base", "cleaning", "corrections", "cosmics", "jet_type", "jetsrc"},
	}
	AnalyzerPtThreshold = Family{
		PrometheusName: "jetdqm_analyzer_pt_threshold_gev",
		OTELName:       "jetdqm.analyzer.pt_threshold",
		Type:           MetricTypeGauge,
		Description:    "Corrected jet pt threshold of the analyzer",
		Labels:         []string{"analyzer"},
	}
	AnalyzerTriggerPaths = Family{
		PrometheusName: "jetdqm_analyzer_trigger_paths",
		OTELName:       "jetdqm.analyzer.trigger_paths",
		Type:           MetricTypeGauge,
		Description:    "Number of HLT path patterns per trigger filter",
		Labels:         []string{"analyzer", "trigger"},
	}
	SequenceAnalyzers = Family{
		PrometheusName: "jetdqm_sequence_analyzers",
		OTELName:       "jetdqm.sequence.analyzers",
		Type:           MetricTypeGauge,
		Description:    "Number of analyzers scheduled by the sequence",
		Labels:         []string{"sequence"},
	}
	ConfigReloads = Family{
		PrometheusName: "jetdqm_config_reloads_total",
		OTELName:       "jetdqm.config.reloads",
		Type:           MetricTypeCounter,
		Description:    "Configuration reloads by result",
		Labels:         []string{"result"},
	}
)

// Families returns every family this package can emit.
func Families() []Family {
	return []Family{
		AnalyzerInfo,
		AnalyzerPtThreshold,
		AnalyzerTriggerPaths,
		SequenceAnalyzers,
		ConfigReloads,
	}
}

// LabelValues returns the attribute values in the family's label order.
func (d Descriptor) LabelValues() []string {
	values := make([]string, len(d.Family.Labels))
	for i, name := range d.Family.Labels {
		values[i] = d.Attributes[name]
	}
	return values
}
