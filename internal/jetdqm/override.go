package jetdqm

// Override lists the fields a derived analyzer changes relative to its base.
// A nil field keeps the base value.
//
// Cleaning and JetAnalysis are not applied on top of the base's records:
// they build a fresh record from DefaultCleaningParameters and
// DefaultJetAnalysisParameters, so fields they leave unset fall back to
// those defaults. The trigger and DCS records are replaced whole.
type Override struct {
	JetType             *JetType  `yaml:"JetType,omitempty"`
	JetCorrections      *InputTag `yaml:"JetCorrections,omitempty"`
	JetSource           *InputTag `yaml:"jetsrc,omitempty"`
	L1AlgoName          *string   `yaml:"l1algoname,omitempty"`
	FillJetHighLevel    *bool     `yaml:"filljetHighLevel,omitempty"`
	TriggerResultsLabel *InputTag `yaml:"TriggerResultsLabel,omitempty"`
	ProcessName         *string   `yaml:"processname,omitempty"`

	HighPtJetTrigger *TriggerFilterConfig `yaml:"highPtJetTrigger,omitempty"`
	LowPtJetTrigger  *TriggerFilterConfig `yaml:"lowPtJetTrigger,omitempty"`

	JetCleaningFlag *bool             `yaml:"JetCleaningFlag,omitempty"`
	RunCosmics      *bool             `yaml:"runcosmics,omitempty"`
	Cleaning        *CleaningOverride `yaml:"CleaningParameters,omitempty"`

	InputJetIDValueMap *InputTag `yaml:"InputJetIDValueMap,omitempty"`
	JetIDQuality       *string   `yaml:"JetIDQuality,omitempty"`
	JetIDVersion       *string   `yaml:"JetIDVersion,omitempty"`

	MVAPUIDDiscriminant *InputTag `yaml:"InputMVAPUIDDiscriminant,omitempty"`
	CutPUIDDiscriminant *InputTag `yaml:"InputCutPUIDDiscriminant,omitempty"`
	MVAPUIDValue        *InputTag `yaml:"InputMVAPUIDValue,omitempty"`
	CutPUIDValue        *InputTag `yaml:"InputCutPUIDValue,omitempty"`

	JetAnalysis *JetAnalysisOverride `yaml:"jetAnalysis,omitempty"`
	DCSFilter   *DCSFilterConfig     `yaml:"DCSFilterForJetMonitoring,omitempty"`
}

// CleaningOverride derives a cleaning record from DefaultCleaningParameters.
type CleaningOverride struct {
	BypassAllPVChecks  *bool     `yaml:"bypassAllPVChecks,omitempty"`
	BypassAllDCSChecks *bool     `yaml:"bypassAllDCSChecks,omitempty"`
	VertexCollection   *InputTag `yaml:"vertexCollection,omitempty"`
	GTLabel            *InputTag `yaml:"gtLabel,omitempty"`
}

// JetAnalysisOverride derives a jet analysis record from DefaultJetAnalysisParameters.
type JetAnalysisOverride struct {
	Verbose *int `yaml:"verbose,omitempty"`

	EtaBin *int     `yaml:"etaBin,omitempty"`
	EtaMin *float64 `yaml:"etaMin,omitempty"`
	EtaMax *float64 `yaml:"etaMax,omitempty"`
	PhiBin *int     `yaml:"phiBin,omitempty"`
	PhiMin *float64 `yaml:"phiMin,omitempty"`
	PhiMax *float64 `yaml:"phiMax,omitempty"`
	PtBin  *int     `yaml:"ptBin,omitempty"`
	PtMin  *float64 `yaml:"ptMin,omitempty"`
	PtMax  *float64 `yaml:"ptMax,omitempty"`
	PVBin  *int     `yaml:"pVBin,omitempty"`
	PVMin  *float64 `yaml:"pVMin,omitempty"`
	PVMax  *float64 `yaml:"pVMax,omitempty"`

	PtThreshold          *float64 `yaml:"ptThreshold,omitempty"`
	PtThresholdUnCor     *float64 `yaml:"ptThresholdUnCor,omitempty"`
	AsymmetryThirdJetCut *float64 `yaml:"asymmetryThirdJetCut,omitempty"`
	BalanceThirdJetCut   *float64 `yaml:"balanceThirdJetCut,omitempty"`

	FillJIDPassFrac    *int     `yaml:"fillJIDPassFrac,omitempty"`
	N90HitsMin         *int     `yaml:"n90HitsMin,omitempty"`
	FHPDMax            *float64 `yaml:"fHPDMax,omitempty"`
	ResEMFMin          *float64 `yaml:"resEMFMin,omitempty"`
	MakeDijetSelection *int     `yaml:"makedijetselection,omitempty"`
}

// Ptr returns a pointer to v. Handy for building overrides in Go.
func Ptr[T any](v T) *T {
	return &v
}

// set copies *v into *dst when v is non-nil.
func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Derive copies base and applies o. base is left untouched.
func Derive(base AnalyzerConfig, o Override) AnalyzerConfig {
	result := base.Clone()

	set(&result.JetType, o.JetType)
	set(&result.JetCorrections, o.JetCorrections)
	set(&result.JetSource, o.JetSource)
	set(&result.L1AlgoName, o.L1AlgoName)
	set(&result.FillJetHighLevel, o.FillJetHighLevel)
	set(&result.TriggerResultsLabel, o.TriggerResultsLabel)
	set(&result.ProcessName, o.ProcessName)

	if o.HighPtJetTrigger != nil {
		result.HighPtJetTrigger = o.HighPtJetTrigger.Clone()
	}
	if o.LowPtJetTrigger != nil {
		result.LowPtJetTrigger = o.LowPtJetTrigger.Clone()
	}

	set(&result.JetCleaningFlag, o.JetCleaningFlag)
	set(&result.RunCosmics, o.RunCosmics)
	if o.Cleaning != nil {
		result.Cleaning = o.Cleaning.Apply(DefaultCleaningParameters())
	}

	set(&result.InputJetIDValueMap, o.InputJetIDValueMap)
	set(&result.JetIDQuality, o.JetIDQuality)
	set(&result.JetIDVersion, o.JetIDVersion)

	set(&result.PileupID.MVADiscriminant, o.MVAPUIDDiscriminant)
	set(&result.PileupID.CutDiscriminant, o.CutPUIDDiscriminant)
	set(&result.PileupID.MVAValue, o.MVAPUIDValue)
	set(&result.PileupID.CutValue, o.CutPUIDValue)

	if o.JetAnalysis != nil {
		result.JetAnalysis = o.JetAnalysis.Apply(DefaultJetAnalysisParameters())
	}
	set(&result.DCSFilter, o.DCSFilter)

	return result
}

// Apply returns base with the override's fields set.
func (o CleaningOverride) Apply(base CleaningConfig) CleaningConfig {
	set(&base.BypassAllPVChecks, o.BypassAllPVChecks)
	set(&base.BypassAllDCSChecks, o.BypassAllDCSChecks)
	set(&base.VertexCollection, o.VertexCollection)
	set(&base.GTLabel, o.GTLabel)
	return base
}

// Apply returns base with the override's fields set.
func (o JetAnalysisOverride) Apply(base JetAnalysisConfig) JetAnalysisConfig {
	set(&base.Verbose, o.Verbose)
	set(&base.EtaBin, o.EtaBin)
	set(&base.EtaMin, o.EtaMin)
	set(&base.EtaMax, o.EtaMax)
	set(&base.PhiBin, o.PhiBin)
	set(&base.PhiMin, o.PhiMin)
	set(&base.PhiMax, o.PhiMax)
	set(&base.PtBin, o.PtBin)
	set(&base.PtMin, o.PtMin)
	set(&base.PtMax, o.PtMax)
	set(&base.PVBin, o.PVBin)
	set(&base.PVMin, o.PVMin)
	set(&base.PVMax, o.PVMax)
	set(&base.PtThreshold, o.PtThreshold)
	set(&base.PtThresholdUnCor, o.PtThresholdUnCor)
	set(&base.AsymmetryThirdJetCut, o.AsymmetryThirdJetCut)
	set(&base.BalanceThirdJetCut, o.BalanceThirdJetCut)
	set(&base.FillJIDPassFrac, o.FillJIDPassFrac)
	set(&base.N90HitsMin, o.N90HitsMin)
	set(&base.FHPDMax, o.FHPDMax)
	set(&base.ResEMFMin, o.ResEMFMin)
	set(&base.MakeDijetSelection, o.MakeDijetSelection)
	return base
}

// IsZero reports whether the override changes nothing.
func (o Override) IsZero() bool {
	return o == Override{}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTrigger(p *TriggerFilterConfig) *TriggerFilterConfig {
	if p == nil {
		return nil
	}
	t := p.Clone()
	return &t
}

// Clone returns a copy that shares no pointers with o.
func (o Override) Clone() Override {
	return Override{
		JetType:             clonePtr(o.JetType),
		JetCorrections:      clonePtr(o.JetCorrections),
		JetSource:           clonePtr(o.JetSource),
		L1AlgoName:          clonePtr(o.L1AlgoName),
		FillJetHighLevel:    clonePtr(o.FillJetHighLevel),
		TriggerResultsLabel: clonePtr(o.TriggerResultsLabel),
		ProcessName:         clonePtr(o.ProcessName),
		HighPtJetTrigger:    cloneTrigger(o.HighPtJetTrigger),
		LowPtJetTrigger:     cloneTrigger(o.LowPtJetTrigger),
		JetCleaningFlag:     clonePtr(o.JetCleaningFlag),
		RunCosmics:          clonePtr(o.RunCosmics),
		Cleaning:            o.Cleaning.clone(),
		InputJetIDValueMap:  clonePtr(o.InputJetIDValueMap),
		JetIDQuality:        clonePtr(o.JetIDQuality),
		JetIDVersion:        clonePtr(o.JetIDVersion),
		MVAPUIDDiscriminant: clonePtr(o.MVAPUIDDiscriminant),
		CutPUIDDiscriminant: clonePtr(o.CutPUIDDiscriminant),
		MVAPUIDValue:        clonePtr(o.MVAPUIDValue),
		CutPUIDValue:        clonePtr(o.CutPUIDValue),
		JetAnalysis:         o.JetAnalysis.clone(),
		DCSFilter:           clonePtr(o.DCSFilter),
	}
}

func (o *CleaningOverride) clone() *CleaningOverride {
	if o == nil {
		return nil
	}
	return &CleaningOverride{
		BypassAllPVChecks:  clonePtr(o.BypassAllPVChecks),
		BypassAllDCSChecks: clonePtr(o.BypassAllDCSChecks),
		VertexCollection:   clonePtr(o.VertexCollection),
		GTLabel:            clonePtr(o.GTLabel),
	}
}

func (o *JetAnalysisOverride) clone() *JetAnalysisOverride {
	if o == nil {
		return nil
	}
	return &JetAnalysisOverride{
		Verbose:              clonePtr(o.Verbose),
		EtaBin:               clonePtr(o.EtaBin),
		EtaMin:               clonePtr(o.EtaMin),
		EtaMax:               clonePtr(o.EtaMax),
		PhiBin:               clonePtr(o.PhiBin),
		PhiMin:               clonePtr(o.PhiMin),
		PhiMax:               clonePtr(o.PhiMax),
		PtBin:                clonePtr(o.PtBin),
		PtMin:                clonePtr(o.PtMin),
		PtMax:                clonePtr(o.PtMax),
		PVBin:                clonePtr(o.PVBin),
		PVMin:                clonePtr(o.PVMin),
		PVMax:                clonePtr(o.PVMax),
		PtThreshold:          clonePtr(o.PtThreshold),
		PtThresholdUnCor:     clonePtr(o.PtThresholdUnCor),
		AsymmetryThirdJetCut: clonePtr(o.AsymmetryThirdJetCut),
		BalanceThirdJetCut:   clonePtr(o.BalanceThirdJetCut),
		FillJIDPassFrac:      clonePtr(o.FillJIDPassFrac),
		N90HitsMin:           clonePtr(o.N90HitsMin),
		FHPDMax:              clonePtr(o.FHPDMax),
		ResEMFMin:            clonePtr(o.ResEMFMin),
		MakeDijetSelection:   clonePtr(o.MakeDijetSelection),
	}
}
