package jetdqm

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setFields returns the names of the non-nil fields of a struct of pointers.
func setFields(v any) map[string]bool {
	fields := make(map[string]bool)
	rv := reflect.ValueOf(v)
	for i := 0; i < rv.NumField(); i++ {
		if !rv.Field(i).IsNil() {
			fields[rv.Type().Field(i).Name] = true
		}
	}
	return fields
}

func TestBuiltinUnsetFieldsInheritBase(t *testing.T) {
	r := Builtin()

	for _, def := range r.Definitions() {
		if def.Base == "" {
			continue
		}
		t.Run(def.Name, func(t *testing.T) {
			parent, ok := r.Analyzer(def.Base)
			require.True(t, ok)

			changed := setFields(Diff(parent, def.Config))
			recorded := setFields(def.Override)
			for name := range changed {
				assert.Truef(t, recorded[name], "field %s differs from %s but is not overridden", name, def.Base)
			}
		})
	}
}

func TestBuiltinCaloCleanedThresholds(t *testing.T) {
	cfg, ok := Builtin().Analyzer(AnalyzerAk4CaloCleaned)
	require.True(t, ok)

	assert.Equal(t, 20.0, cfg.JetAnalysis.PtThreshold)
	assert.Equal(t, 30.0, cfg.JetAnalysis.AsymmetryThirdJetCut)
	assert.Equal(t, 0.2, cfg.JetAnalysis.BalanceThirdJetCut)
	assert.True(t, cfg.JetCleaningFlag)
	assert.False(t, cfg.Cleaning.BypassAllPVChecks)
}

func TestBuiltinPFCleanedSharesCaloCleanedThresholds(t *testing.T) {
	r := Builtin()
	calo, _ := r.Analyzer(AnalyzerAk4CaloCleaned)
	pf, _ := r.Analyzer(AnalyzerAk4PFCleaned)

	assert.Equal(t, calo.JetAnalysis, pf.JetAnalysis)
}

func TestBuiltinPFCHSJetSource(t *testing.T) {
	r := Builtin()
	chs, _ := r.Analyzer(AnalyzerAk4PFCHSCleaned)
	pf, _ := r.Analyzer(AnalyzerAk4PFCleaned)

	assert.Equal(t, Tag("ak4PFJetsCHS"), chs.JetSource)
	assert.NotEqual(t, pf.JetSource, chs.JetSource)
	assert.Equal(t, Tag("pileupJetIdProducerChs", "fullDiscriminant"), chs.PileupID.MVADiscriminant)
	assert.Equal(t, Tag("pileupJetIdProducerChs", "cutbasedId"), chs.PileupID.CutValue)
	assert.True(t, chs.FillJetHighLevel)
}

func TestBuiltinHeavyIonRunsCosmicsWithoutCleaning(t *testing.T) {
	cfg, ok := Builtin().Analyzer(AnalyzerIC5CaloHIUncleaned)
	require.True(t, ok)

	assert.True(t, cfg.RunCosmics)
	assert.False(t, cfg.JetCleaningFlag)
	assert.True(t, cfg.JetCorrections.IsEmpty())
	assert.Equal(t, Tag("hiSelectedVertex"), cfg.Cleaning.VertexCollection)
	assert.Equal(t, JetTypeCalo, cfg.JetType)
}

func TestBuiltinJetTypes(t *testing.T) {
	tests := []struct {
		name string
		want JetType
	}{
		{AnalyzerAk4CaloUncleaned, JetTypeCalo},
		{AnalyzerAk4CaloCleaned, JetTypeCalo},
		{AnalyzerAk4PFUncleaned, JetTypePF},
		{AnalyzerAk4PFCleaned, JetTypePF},
		{AnalyzerAk4PFCHSCleaned, JetTypePF},
		{AnalyzerAk4PFCHSUncleanedMiniAOD, JetTypeMiniAOD},
		{AnalyzerAk4PFCHSCleanedMiniAOD, JetTypeMiniAOD},
		{AnalyzerIC5CaloHIUncleaned, JetTypeCalo},
	}

	r := Builtin()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, ok := r.Analyzer(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, cfg.JetType)
		})
	}
}

func TestBuiltinCleaningStartsFromDefaults(t *testing.T) {
	r := Builtin()

	base, _ := r.Analyzer(AnalyzerAk4CaloUncleaned)
	assert.True(t, base.Cleaning.BypassAllPVChecks)

	// The MiniAOD overrides only name the vertex collection; the PV check
	// flag comes from the cleaning defaults, not from the parent analyzer.
	for _, name := range []string{AnalyzerAk4PFCHSUncleanedMiniAOD, AnalyzerAk4PFCHSCleanedMiniAOD} {
		cfg, _ := r.Analyzer(name)
		want := DefaultCleaningParameters()
		want.VertexCollection = Tag("goodOfflinePrimaryVerticesDQMforMiniAOD")
		if diff := cmp.Diff(want, cfg.Cleaning); diff != "" {
			t.Errorf("%s cleaning mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestBuiltinSequences(t *testing.T) {
	r := Builtin()

	want := map[string][]string{
		SequenceCollisions: {AnalyzerAk4CaloCleaned, AnalyzerAk4PFUncleaned, AnalyzerAk4PFCleaned, AnalyzerAk4PFCHSCleaned},
		SequenceCosmics:    {AnalyzerAk4CaloUncleaned},
		SequenceHI:         {AnalyzerIC5CaloHIUncleaned},
		SequenceMiniAOD:    {AnalyzerAk4PFCHSUncleanedMiniAOD, AnalyzerAk4PFCHSCleanedMiniAOD},
	}
	require.Len(t, r.Sequences(), len(want))

	referenced := make(map[string]bool)
	for _, seq := range r.Sequences() {
		assert.Equal(t, want[seq.Name], seq.Analyzers, seq.Name)

		seen := make(map[string]bool)
		for _, a := range seq.Analyzers {
			assert.Falsef(t, seen[a], "%s listed twice in %s", a, seq.Name)
			seen[a] = true

			_, ok := r.Analyzer(a)
			assert.Truef(t, ok, "%s references undefined analyzer %s", seq.Name, a)
			referenced[a] = true
		}
	}

	assert.Len(t, referenced, r.Len())
	assert.Empty(t, r.Unscheduled())
}

func TestBuiltinReplay(t *testing.T) {
	r := Builtin()
	for _, name := range r.Names() {
		t.Run(name, func(t *testing.T) {
			got, err := r.Replay(name)
			require.NoError(t, err)

			want, _ := r.Analyzer(name)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("replay mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuiltinValidates(t *testing.T) {
	require.NoError(t, Builtin().Validate())
}

func TestBuiltinReturnsIndependentCopies(t *testing.T) {
	r := Builtin()

	cfg, _ := r.Analyzer(AnalyzerAk4CaloUncleaned)
	cfg.HighPtJetTrigger.HLTPaths[0] = "HLT_Mutated"
	cfg.JetSource = Tag("mutated")

	again, _ := r.Analyzer(AnalyzerAk4CaloUncleaned)
	assert.Equal(t, "HLT_Jet300_v", again.HighPtJetTrigger.HLTPaths[0])
	assert.Equal(t, Tag("ak4CaloJets"), again.JetSource)

	other, _ := Builtin().Analyzer(AnalyzerAk4CaloUncleaned)
	assert.True(t, other.Equal(again))
}
