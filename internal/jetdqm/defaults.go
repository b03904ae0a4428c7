package jetdqm

// Shared trigger filter defaults.
const (
	DefaultTriggerDBLabel   = "JetMETDQMTrigger"
	DefaultTriggerProcess   = "HLT"
	DefaultHighPtJetDBKey   = "jetmet_highptjet"
	DefaultLowPtJetDBKey    = "jetmet_lowptjet"
	DefaultL1AlgoName       = "L1Tech_BPTX_plus_AND_minus.v0"
	DefaultJetIDQuality     = "LOOSE"
	DefaultCaloJetIDVersion = "PURE09"
	DefaultPFJetIDVersion   = "FIRSTDATA"
)

// DCS subsystem masks.
const (
	DCSCaloDetectors = "ecal:hbhe:hf"
	DCSAllDetectors  = "ecal:hbhe:hf:pixel:sistrip:es:muon"
)

// Cleaning defaults.
const (
	DefaultVertexCollection = "goodOfflinePrimaryVerticesDQM"
	DefaultGTLabel          = "gtStage2Digis"
)

// DefaultCleaningParameters returns the cleaning base every cleaning
// override starts from.
func DefaultCleaningParameters() CleaningConfig {
	return CleaningConfig{
		BypassAllPVChecks:  false,
		BypassAllDCSChecks: false,
		VertexCollection:   Tag(DefaultVertexCollection),
		GTLabel:            Tag(DefaultGTLabel),
	}
}

// DefaultJetAnalysisParameters returns the jet analysis base every
// jetAnalysis override starts from.
func DefaultJetAnalysisParameters() JetAnalysisConfig {
	return JetAnalysisConfig{
		Verbose: 0,

		EtaBin: 100,
		EtaMin: -5.0,
		EtaMax: 5.0,
		PhiBin: 70,
		PhiMin: -3.2,
		PhiMax: 3.2,
		PtBin:  100,
		PtMin:  0.0,
		PtMax:  5000.0,
		PVBin:  60,
		PVMin:  0.0,
		PVMax:  60.0,

		PtThreshold:          15.0,
		PtThresholdUnCor:     15.0,
		AsymmetryThirdJetCut: 5.0,
		BalanceThirdJetCut:   0.2,

		FillJIDPassFrac:    1,
		N90HitsMin:         -1,
		FHPDMax:            1.0,
		ResEMFMin:          0.0,
		MakeDijetSelection: 0,
	}
}

// DefaultHighPtJetTrigger returns the high-pt single jet trigger filter.
func DefaultHighPtJetTrigger() TriggerFilterConfig {
	return TriggerFilterConfig{
		AndOr:         false,
		DBLabel:       DefaultTriggerDBLabel,
		HLTInputTag:   Tag("TriggerResults", "", DefaultTriggerProcess),
		HLTDBKey:      DefaultHighPtJetDBKey,
		HLTPaths:      []string{"HLT_Jet300_v", "HLT_Jet300_v6", "HLT_Jet300_v7", "HLT_Jet300_v8"},
		AndOrHLT:      true,
		ErrorReplyHLT: false,
	}
}

// DefaultLowPtJetTrigger returns the low-pt single jet trigger filter.
func DefaultLowPtJetTrigger() TriggerFilterConfig {
	return TriggerFilterConfig{
		AndOr:         false,
		DBLabel:       DefaultTriggerDBLabel,
		HLTInputTag:   Tag("TriggerResults", "", DefaultTriggerProcess),
		HLTDBKey:      DefaultLowPtJetDBKey,
		HLTPaths:      []string{"HLT_Jet60_v", "HLT_Jet60_v6", "HLT_Jet60_v7", "HLT_Jet60_v8"},
		AndOrHLT:      true,
		ErrorReplyHLT: false,
	}
}

// pileupIDSources returns the four pileup jet ID products of one producer.
func pileupIDSources(producer string) PileupIDSources {
	return PileupIDSources{
		MVADiscriminant: Tag(producer, "fullDiscriminant"),
		CutDiscriminant: Tag(producer, "cutbasedDiscriminant"),
		MVAValue:        Tag(producer, "fullId"),
		CutValue:        Tag(producer, "cutbasedId"),
	}
}
