package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/neox5/jetdqm/internal/jetdqm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jetdqm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, jetdqm.Builtin().Names(), cfg.Registry.Names())
	require.NotNil(t, cfg.Export.Prometheus)
	assert.True(t, cfg.Export.Prometheus.Enabled)
	assert.Equal(t, DefaultPrometheusPort, cfg.Export.Prometheus.Port)
	assert.Equal(t, DefaultPrometheusPath, cfg.Export.Prometheus.Path)
	assert.True(t, cfg.Settings.Monitor.Enabled)
	assert.Equal(t, DefaultMonitorInterval, cfg.Settings.Monitor.Interval)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Registry.Len())
}

func TestLoadOverlay(t *testing.T) {
	path := writeConfig(t, `
analyzers:
  - name: jetDQMAnalyzerAk4PFCHSCleanedTight
    clone: jetDQMAnalyzerAk4PFCHSCleanedLoose
    overrides:
      jetAnalysis:
        ptThreshold: 30
  - name: jetDQMAnalyzerAk4PFCHSCleanedLoose
    clone: jetDQMAnalyzerAk4PFCHSCleaned
    overrides:
      JetIDQuality: TIGHT
      CleaningParameters:
        vertexCollection: offlinePrimaryVertices
sequences:
  - name: jetDQMAnalyzerSequenceTight
    analyzers: [jetDQMAnalyzerAk4PFCHSCleanedLoose, jetDQMAnalyzerAk4PFCHSCleanedTight]
export:
  prometheus:
    enabled: true
    port: 9191
settings:
  internal_metrics:
    enabled: true
  monitor:
    enabled: false
  watch: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	reg := cfg.Registry
	assert.Equal(t, 10, reg.Len())

	tight, ok := reg.Analyzer("jetDQMAnalyzerAk4PFCHSCleanedTight")
	require.True(t, ok)
	assert.Equal(t, 30.0, tight.JetAnalysis.PtThreshold)
	// jetAnalysis overrides start from the shared defaults
	assert.Equal(t, jetdqm.DefaultJetAnalysisParameters().AsymmetryThirdJetCut, tight.JetAnalysis.AsymmetryThirdJetCut)
	assert.Equal(t, "TIGHT", tight.JetIDQuality)
	assert.Equal(t, jetdqm.Tag("ak4PFJetsCHS"), tight.JetSource)
	assert.Equal(t, jetdqm.Tag("offlinePrimaryVertices"), tight.Cleaning.VertexCollection)

	chain, err := reg.Lineage("jetDQMAnalyzerAk4PFCHSCleanedTight")
	require.NoError(t, err)
	assert.Equal(t, []string{
		jetdqm.AnalyzerAk4CaloUncleaned,
		jetdqm.AnalyzerAk4PFUncleaned,
		jetdqm.AnalyzerAk4PFCleaned,
		jetdqm.AnalyzerAk4PFCHSCleaned,
		"jetDQMAnalyzerAk4PFCHSCleanedLoose",
		"jetDQMAnalyzerAk4PFCHSCleanedTight",
	}, chain)

	seq, ok := reg.Sequence("jetDQMAnalyzerSequenceTight")
	require.True(t, ok)
	assert.Len(t, seq.Analyzers, 2)

	assert.Equal(t, 9191, cfg.Export.Prometheus.Port)
	assert.Equal(t, DefaultPrometheusPath, cfg.Export.Prometheus.Path)
	assert.True(t, cfg.Settings.InternalMetrics)
	assert.False(t, cfg.Settings.Monitor.Enabled)
	assert.False(t, cfg.Settings.Watch)
}

func TestLoadWithoutBuiltin(t *testing.T) {
	path := writeConfig(t, `
builtin: false
analyzers:
  - name: root
    overrides:
      jetsrc: ak4PFJets
      JetType: pf
  - name: child
    clone: root
    overrides:
      runcosmics: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "child"}, cfg.Registry.Names())

	root, _ := cfg.Registry.Analyzer("root")
	want := jetdqm.BaseAnalyzer()
	want.JetSource = jetdqm.Tag("ak4PFJets")
	want.JetType = jetdqm.JetTypePF
	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("root mismatch (-want +got):\n%s", diff)
	}

	child, _ := cfg.Registry.Analyzer("child")
	assert.True(t, child.RunCosmics)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "unknown override field",
			content: `
analyzers:
  - name: x
    clone: jetDQMAnalyzerAk4PFCleaned
    overrides:
      jetSource: ak4PFJetsCHS
`,
			wantErr: "jetSource",
		},
		{
			name: "unknown clone",
			content: `
analyzers:
  - name: x
    clone: missing
`,
			wantErr: `clone "missing"`,
		},
		{
			name: "clone cycle",
			content: `
analyzers:
  - name: a
    clone: b
  - name: b
    clone: a
`,
			wantErr: "clone cycle detected",
		},
		{
			name: "self clone",
			content: `
analyzers:
  - name: a
    clone: a
`,
			wantErr: "cannot clone itself",
		},
		{
			name: "duplicate of builtin",
			content: `
analyzers:
  - name: jetDQMAnalyzerAk4PFCleaned
    clone: jetDQMAnalyzerAk4PFUncleaned
`,
			wantErr: "duplicate name",
		},
		{
			name: "duplicate in overlay",
			content: `
analyzers:
  - name: a
    clone: jetDQMAnalyzerAk4PFCleaned
  - name: a
    clone: jetDQMAnalyzerAk4PFCleaned
`,
			wantErr: "duplicate name",
		},
		{
			name: "sequence with unknown analyzer",
			content: `
sequences:
  - name: s
    analyzers: [missing]
`,
			wantErr: "unknown analyzer",
		},
		{
			name: "sequence with duplicate analyzer",
			content: `
sequences:
  - name: s
    analyzers: [jetDQMAnalyzerAk4PFCleaned, jetDQMAnalyzerAk4PFCleaned]
`,
			wantErr: "duplicate sequence member",
		},
		{
			name: "empty sequence",
			content: `
sequences:
  - name: s
    analyzers: []
`,
			wantErr: "at least one analyzer",
		},
		{
			name: "invalid jet type",
			content: `
analyzers:
  - name: x
    clone: jetDQMAnalyzerAk4PFCleaned
    overrides:
      JetType: jpt
`,
			wantErr: "invalid jet type",
		},
		{
			name: "malformed input tag",
			content: `
analyzers:
  - name: x
    clone: jetDQMAnalyzerAk4PFCleaned
    overrides:
      jetsrc: a:b:c:d
`,
			wantErr: "too many components",
		},
		{
			name: "two exporters",
			content: `
export:
  prometheus: {enabled: true}
  otel: {enabled: true}
`,
			wantErr: "only one exporter",
		},
		{
			name: "bad transport",
			content: `
export:
  otel: {enabled: true, transport: udp}
`,
			wantErr: "invalid transport",
		},
		{
			name: "relative metrics path",
			content: `
export:
  prometheus: {enabled: true, path: metrics}
`,
			wantErr: "must start with /",
		},
		{
			name: "no exporter enabled",
			content: `
export:
  prometheus: {enabled: false}
`,
			wantErr: "at least one exporter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolveErrorCarriesPath(t *testing.T) {
	raw, err := ParseBytes([]byte(`
analyzers:
  - name: outer
    clone: inner
  - name: inner
    clone: missing
`))
	require.NoError(t, err)

	_, err = Resolve(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, jetdqm.ErrUnknownAnalyzer)
	assert.Contains(t, err.Error(), "in analyzer \"inner\"\n  in analyzer \"outer\"")
}

func TestLoadOTELDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
export:
  otel:
    enabled: true
    transport: http
    interval: 30s
    resource:
      deployment.environment: test
`))
	require.NoError(t, err)

	otel := cfg.Export.OTEL
	require.NotNil(t, otel)
	assert.Equal(t, DefaultOTELHost, otel.Host)
	assert.Equal(t, TransportHTTP, otel.Transport)
	assert.Equal(t, 4318, otel.Port)
	assert.Equal(t, "localhost:4318", otel.GetEndpoint())
	assert.Equal(t, 30*time.Second, otel.Interval)
	assert.Equal(t, DefaultOTELTimeout, otel.Timeout)
	assert.True(t, otel.Insecure)
	assert.Equal(t, DefaultServiceName, otel.Resource["service.name"])
	assert.Equal(t, "test", otel.Resource["deployment.environment"])
	assert.Nil(t, cfg.Export.Prometheus)
}

func TestLoadOTELOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
export:
  otel:
    enabled: true
    host: collector
    insecure: false
    timeout: 2s
    resource:
      service.name: jetdqm-test
`))
	require.NoError(t, err)

	otel := cfg.Export.OTEL
	assert.Equal(t, TransportGRPC, otel.Transport)
	assert.Equal(t, "collector:4317", otel.GetEndpoint())
	assert.False(t, otel.Insecure)
	assert.Equal(t, 2*time.Second, otel.Timeout)
	assert.Equal(t, DefaultOTELInterval, otel.Interval)
	assert.Equal(t, "jetdqm-test", otel.Resource["service.name"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
