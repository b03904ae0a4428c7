package jetdqm

// Built-in analyzer names.
const (
	AnalyzerAk4CaloUncleaned         = "jetDQMAnalyzerAk4CaloUncleaned"
	AnalyzerAk4CaloCleaned           = "jetDQMAnalyzerAk4CaloCleaned"
	AnalyzerAk4PFUncleaned           = "jetDQMAnalyzerAk4PFUncleaned"
	AnalyzerAk4PFCleaned             = "jetDQMAnalyzerAk4PFCleaned"
	AnalyzerAk4PFCHSCleaned          = "jetDQMAnalyzerAk4PFCHSCleaned"
	AnalyzerAk4PFCHSUncleanedMiniAOD = "jetDQMAnalyzerAk4PFCHSUncleanedMiniAOD"
	AnalyzerAk4PFCHSCleanedMiniAOD   = "jetDQMAnalyzerAk4PFCHSCleanedMiniAOD"
	AnalyzerIC5CaloHIUncleaned       = "jetDQMAnalyzerIC5CaloHIUncleaned"
)

// Built-in sequence names, one per run mode.
const (
	SequenceCollisions = "jetDQMAnalyzerSequence"
	SequenceCosmics    = "jetDQMAnalyzerSequenceCosmics"
	SequenceHI         = "jetDQMAnalyzerSequenceHI"
	SequenceMiniAOD    = "jetDQMAnalyzerSequenceMiniAOD"
)

const miniAODVertexCollection = "goodOfflinePrimaryVerticesDQMforMiniAOD"

// BaseAnalyzer returns the uncleaned ak4 calo jet configuration every
// built-in analyzer derives from.
func BaseAnalyzer() AnalyzerConfig {
	cleaning := DefaultCleaningParameters()
	cleaning.BypassAllPVChecks = true

	return AnalyzerConfig{
		JetType:             JetTypeCalo,
		JetCorrections:      Tag("dqmAk4CaloL2L3ResidualCorrector"),
		JetSource:           Tag("ak4CaloJets"),
		L1AlgoName:          DefaultL1AlgoName,
		FillJetHighLevel:    false,
		TriggerResultsLabel: Tag("TriggerResults", "", DefaultTriggerProcess),
		ProcessName:         DefaultTriggerProcess,

		HighPtJetTrigger: DefaultHighPtJetTrigger(),
		LowPtJetTrigger:  DefaultLowPtJetTrigger(),

		JetCleaningFlag: false,
		RunCosmics:      false,
		Cleaning:        cleaning,

		InputJetIDValueMap: Tag("ak4JetID"),
		JetIDQuality:       DefaultJetIDQuality,
		JetIDVersion:       DefaultCaloJetIDVersion,

		PileupID: pileupIDSources("pileupJetIdProducer"),

		JetAnalysis: DefaultJetAnalysisParameters(),
		DCSFilter: DCSFilterConfig{
			DetectorTypes: DCSCaloDetectors,
			AlwaysPass:    false,
		},
	}
}

// cleanedThresholds tightens the dijet selection for cleaned analyzers.
func cleanedThresholds() *JetAnalysisOverride {
	return &JetAnalysisOverride{
		PtThreshold:          Ptr(20.0),
		AsymmetryThirdJetCut: Ptr(30.0),
		BalanceThirdJetCut:   Ptr(0.2),
	}
}

func allDetectorsDCS() *DCSFilterConfig {
	return &DCSFilterConfig{DetectorTypes: DCSAllDetectors, AlwaysPass: false}
}

// Builtin returns a fresh registry with the standard jet analyzers and
// their run-mode sequences. It panics if the definitions are inconsistent.
func Builtin() *Registry {
	r := NewRegistry()

	must(r.DefineBase(AnalyzerAk4CaloUncleaned, BaseAnalyzer()))

	must(r.Define(AnalyzerAk4CaloCleaned, AnalyzerAk4CaloUncleaned, Override{
		JetCleaningFlag:  Ptr(true),
		FillJetHighLevel: Ptr(false),
		Cleaning:         &CleaningOverride{BypassAllPVChecks: Ptr(false)},
		JetAnalysis:      cleanedThresholds(),
	}))

	must(r.Define(AnalyzerAk4PFUncleaned, AnalyzerAk4CaloUncleaned, Override{
		Cleaning:         &CleaningOverride{BypassAllPVChecks: Ptr(false)},
		JetIDQuality:     Ptr(DefaultJetIDQuality),
		JetIDVersion:     Ptr(DefaultPFJetIDVersion),
		JetType:          Ptr(JetTypePF),
		JetCorrections:   Ptr(Tag("dqmAk4PFL1FastL2L3ResidualCorrector")),
		JetSource:        Ptr(Tag("ak4PFJets")),
		FillJetHighLevel: Ptr(false),
		DCSFilter:        allDetectorsDCS(),
	}))

	must(r.Define(AnalyzerAk4PFCleaned, AnalyzerAk4PFUncleaned, Override{
		JetCleaningFlag:  Ptr(true),
		FillJetHighLevel: Ptr(false),
		JetAnalysis:      cleanedThresholds(),
	}))

	chs := pileupIDSources("pileupJetIdProducerChs")
	must(r.Define(AnalyzerAk4PFCHSCleaned, AnalyzerAk4PFCleaned, Override{
		FillJetHighLevel:    Ptr(true),
		JetCorrections:      Ptr(Tag("dqmAk4PFCHSL1FastL2L3ResidualCorrector")),
		JetSource:           Ptr(Tag("ak4PFJetsCHS")),
		MVAPUIDDiscriminant: Ptr(chs.MVADiscriminant),
		CutPUIDDiscriminant: Ptr(chs.CutDiscriminant),
		MVAPUIDValue:        Ptr(chs.MVAValue),
		CutPUIDValue:        Ptr(chs.CutValue),
	}))

	must(r.Define(AnalyzerAk4PFCHSUncleanedMiniAOD, AnalyzerAk4PFUncleaned, Override{
		FillJetHighLevel: Ptr(true),
		Cleaning:         &CleaningOverride{VertexCollection: Ptr(Tag(miniAODVertexCollection))},
		JetType:          Ptr(JetTypeMiniAOD),
		JetSource:        Ptr(Tag("slimmedJets")),
	}))

	must(r.Define(AnalyzerAk4PFCHSCleanedMiniAOD, AnalyzerAk4PFCleaned, Override{
		Cleaning:  &CleaningOverride{VertexCollection: Ptr(Tag(miniAODVertexCollection))},
		JetType:   Ptr(JetTypeMiniAOD),
		JetSource: Ptr(Tag("slimmedJets")),
	}))

	// Heavy-ion jets have no energy correction yet.
	must(r.Define(AnalyzerIC5CaloHIUncleaned, AnalyzerAk4CaloUncleaned, Override{
		FillJetHighLevel: Ptr(true),
		Cleaning: &CleaningOverride{
			BypassAllPVChecks: Ptr(false),
			VertexCollection:  Ptr(Tag("hiSelectedVertex")),
		},
		JetType:         Ptr(JetTypeCalo),
		JetCorrections:  Ptr(InputTag{}),
		JetSource:       Ptr(Tag("iterativeConePu5CaloJets")),
		JetCleaningFlag: Ptr(false),
		RunCosmics:      Ptr(true),
		DCSFilter:       allDetectorsDCS(),
	}))

	must(r.Compose(SequenceCollisions,
		AnalyzerAk4CaloCleaned,
		AnalyzerAk4PFUncleaned,
		AnalyzerAk4PFCleaned,
		AnalyzerAk4PFCHSCleaned,
	))
	must(r.Compose(SequenceCosmics, AnalyzerAk4CaloUncleaned))
	must(r.Compose(SequenceHI, AnalyzerIC5CaloHIUncleaned))
	must(r.Compose(SequenceMiniAOD,
		AnalyzerAk4PFCHSUncleanedMiniAOD,
		AnalyzerAk4PFCHSCleanedMiniAOD,
	))

	return r
}

func must(err error) {
	if err != nil {
		panic("jetdqm: invalid built-in definition: " + err.Error())
	}
}
