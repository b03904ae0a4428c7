package jetdqm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDefineErrors(t *testing.T) {
	tests := []struct {
		name    string
		build   func(r *Registry) error
		wantErr error
	}{
		{
			name: "duplicate analyzer",
			build: func(r *Registry) error {
				return r.DefineBase("base", BaseAnalyzer())
			},
			wantErr: ErrDuplicateName,
		},
		{
			name: "analyzer reuses sequence name",
			build: func(r *Registry) error {
				if err := r.Compose("seq", "base"); err != nil {
					return err
				}
				return r.Define("seq", "base", Override{})
			},
			wantErr: ErrDuplicateName,
		},
		{
			name: "unknown clone",
			build: func(r *Registry) error {
				return r.Define("child", "missing", Override{})
			},
			wantErr: ErrUnknownAnalyzer,
		},
		{
			name: "sequence with unknown member",
			build: func(r *Registry) error {
				return r.Compose("seq", "base", "missing")
			},
			wantErr: ErrUnknownAnalyzer,
		},
		{
			name: "sequence with duplicate member",
			build: func(r *Registry) error {
				return r.Compose("seq", "base", "base")
			},
			wantErr: ErrDuplicateMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			require.NoError(t, r.DefineBase("base", BaseAnalyzer()))

			err := tt.build(r)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegistryEmptyName(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.DefineBase("", BaseAnalyzer()))
}

func TestRegistryLineage(t *testing.T) {
	r := Builtin()

	chain, err := r.Lineage(AnalyzerAk4PFCHSCleanedMiniAOD)
	require.NoError(t, err)
	assert.Equal(t, []string{
		AnalyzerAk4CaloUncleaned,
		AnalyzerAk4PFUncleaned,
		AnalyzerAk4PFCleaned,
		AnalyzerAk4PFCHSCleanedMiniAOD,
	}, chain)

	_, err = r.Lineage("missing")
	assert.ErrorIs(t, err, ErrUnknownAnalyzer)
}

func TestRegistryCloneIsIndependent(t *testing.T) {
	r := Builtin()
	c := r.Clone()

	require.NoError(t, c.Define("extra", AnalyzerAk4PFCHSCleaned, Override{
		JetAnalysis: &JetAnalysisOverride{PtThreshold: Ptr(30.0)},
	}))
	require.NoError(t, c.Compose("extraSequence", "extra"))

	assert.Equal(t, r.Len()+1, c.Len())
	_, ok := r.Analyzer("extra")
	assert.False(t, ok)
	_, ok = r.Sequence("extraSequence")
	assert.False(t, ok)
}

func TestRegistryValidate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.DefineBase("base", BaseAnalyzer()))
	require.NoError(t, r.Define("broken", "base", Override{JetType: Ptr(JetType("jpt"))}))

	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `analyzer "broken"`)
}

func TestRegistryValidateEmptySequence(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.DefineBase("base", BaseAnalyzer()))
	require.NoError(t, r.Compose("empty"))

	assert.Error(t, r.Validate())
}

func TestRegistryUnscheduled(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.DefineBase("base", BaseAnalyzer()))
	require.NoError(t, r.Define("child", "base", Override{}))
	require.NoError(t, r.Compose("seq", "child"))

	assert.Equal(t, []string{"base"}, r.Unscheduled())
}
