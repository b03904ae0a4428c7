package jetdqm

import (
	"fmt"
	"slices"
	"strings"
)

// AnalyzerConfig is the full parameter set of one jet analyzer instance.
// Values are never shared: every copy handed out by this package owns its slices.
type AnalyzerConfig struct {
	JetType             JetType  `yaml:"JetType"`
	JetCorrections      InputTag `yaml:"JetCorrections"`
	JetSource           InputTag `yaml:"jetsrc"`
	L1AlgoName          string   `yaml:"l1algoname"`
	FillJetHighLevel    bool     `yaml:"filljetHighLevel"`
	TriggerResultsLabel InputTag `yaml:"TriggerResultsLabel"`
	ProcessName         string   `yaml:"processname"`

	HighPtJetTrigger TriggerFilterConfig `yaml:"highPtJetTrigger"`
	LowPtJetTrigger  TriggerFilterConfig `yaml:"lowPtJetTrigger"`

	JetCleaningFlag bool           `yaml:"JetCleaningFlag"`
	RunCosmics      bool           `yaml:"runcosmics"`
	Cleaning        CleaningConfig `yaml:"CleaningParameters"`

	InputJetIDValueMap InputTag `yaml:"InputJetIDValueMap"`
	JetIDQuality       string   `yaml:"JetIDQuality"`
	JetIDVersion       string   `yaml:"JetIDVersion"`

	PileupID PileupIDSources `yaml:",inline"`

	JetAnalysis JetAnalysisConfig `yaml:"jetAnalysis"`
	DCSFilter   DCSFilterConfig   `yaml:"DCSFilterForJetMonitoring"`
}

// CleaningConfig controls event cleaning ahead of the jet analysis.
type CleaningConfig struct {
	BypassAllPVChecks  bool     `yaml:"bypassAllPVChecks"`
	BypassAllDCSChecks bool     `yaml:"bypassAllDCSChecks"`
	VertexCollection   InputTag `yaml:"vertexCollection"`
	GTLabel            InputTag `yaml:"gtLabel"`
}

// TriggerFilterConfig selects events by HLT path.
type TriggerFilterConfig struct {
	AndOr         bool     `yaml:"andOr"`
	DBLabel       string   `yaml:"dbLabel"`
	HLTInputTag   InputTag `yaml:"hltInputTag"`
	HLTDBKey      string   `yaml:"hltDBKey"`
	HLTPaths      []string `yaml:"hltPaths"`
	AndOrHLT      bool     `yaml:"andOrHlt"`
	ErrorReplyHLT bool     `yaml:"errorReplyHlt"`
}

// PileupIDSources names the pileup jet ID products read by the analyzer.
type PileupIDSources struct {
	MVADiscriminant InputTag `yaml:"InputMVAPUIDDiscriminant"`
	CutDiscriminant InputTag `yaml:"InputCutPUIDDiscriminant"`
	MVAValue        InputTag `yaml:"InputMVAPUIDValue"`
	CutValue        InputTag `yaml:"InputCutPUIDValue"`
}

// JetAnalysisConfig holds histogram binning and selection thresholds.
type JetAnalysisConfig struct {
	Verbose int `yaml:"verbose"`

	EtaBin int     `yaml:"etaBin"`
	EtaMin float64 `yaml:"etaMin"`
	EtaMax float64 `yaml:"etaMax"`
	PhiBin int     `yaml:"phiBin"`
	PhiMin float64 `yaml:"phiMin"`
	PhiMax float64 `yaml:"phiMax"`
	PtBin  int     `yaml:"ptBin"`
	PtMin  float64 `yaml:"ptMin"`
	PtMax  float64 `yaml:"ptMax"`
	PVBin  int     `yaml:"pVBin"`
	PVMin  float64 `yaml:"pVMin"`
	PVMax  float64 `yaml:"pVMax"`

	PtThreshold          float64 `yaml:"ptThreshold"`
	PtThresholdUnCor     float64 `yaml:"ptThresholdUnCor"`
	AsymmetryThirdJetCut float64 `yaml:"asymmetryThirdJetCut"`
	BalanceThirdJetCut   float64 `yaml:"balanceThirdJetCut"`

	FillJIDPassFrac    int     `yaml:"fillJIDPassFrac"`
	N90HitsMin         int     `yaml:"n90HitsMin"`
	FHPDMax            float64 `yaml:"fHPDMax"`
	ResEMFMin          float64 `yaml:"resEMFMin"`
	MakeDijetSelection int     `yaml:"makedijetselection"`
}

// DCSFilterConfig gates the analysis on detector status.
type DCSFilterConfig struct {
	DetectorTypes string `yaml:"DetectorTypes"`
	AlwaysPass    bool   `yaml:"alwaysPass"`
}

// Detectors returns the subsystems in the colon-separated mask.
func (d DCSFilterConfig) Detectors() []string {
	if d.DetectorTypes == "" {
		return nil
	}
	return strings.Split(d.DetectorTypes, ":")
}

// Clone returns a copy that shares no memory with t.
func (t TriggerFilterConfig) Clone() TriggerFilterConfig {
	t.HLTPaths = slices.Clone(t.HLTPaths)
	return t
}

// Equal reports whether both filters select the same paths the same way.
func (t TriggerFilterConfig) Equal(o TriggerFilterConfig) bool {
	return t.AndOr == o.AndOr &&
		t.DBLabel == o.DBLabel &&
		t.HLTInputTag == o.HLTInputTag &&
		t.HLTDBKey == o.HLTDBKey &&
		slices.Equal(t.HLTPaths, o.HLTPaths) &&
		t.AndOrHLT == o.AndOrHLT &&
		t.ErrorReplyHLT == o.ErrorReplyHLT
}

// Clone returns a deep copy of c.
func (c AnalyzerConfig) Clone() AnalyzerConfig {
	c.HighPtJetTrigger = c.HighPtJetTrigger.Clone()
	c.LowPtJetTrigger = c.LowPtJetTrigger.Clone()
	return c
}

// Equal reports field-for-field equality.
func (c AnalyzerConfig) Equal(o AnalyzerConfig) bool {
	return Diff(c, o).IsZero()
}

// Validate checks the parameters this layer owns. References to external
// modules are resolved by the framework that runs the analyzer.
func (c AnalyzerConfig) Validate() error {
	if err := c.JetType.Validate(); err != nil {
		return err
	}
	if c.JetSource.IsEmpty() {
		return fmt.Errorf("jetsrc cannot be empty")
	}
	if c.HighPtJetTrigger.HLTDBKey == "" {
		return fmt.Errorf("highPtJetTrigger: hltDBKey cannot be empty")
	}
	if c.LowPtJetTrigger.HLTDBKey == "" {
		return fmt.Errorf("lowPtJetTrigger: hltDBKey cannot be empty")
	}
	return nil
}
