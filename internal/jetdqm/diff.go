package jetdqm

// changed returns &v when v differs from base.
func changed[T comparable](base, v T) *T {
	if base == v {
		return nil
	}
	return &v
}

// Diff returns the smallest override that derives variant from base,
// so that Derive(base, Diff(base, variant)) equals variant.
func Diff(base, variant AnalyzerConfig) Override {
	o := Override{
		JetType:             changed(base.JetType, variant.JetType),
		JetCorrections:      changed(base.JetCorrections, variant.JetCorrections),
		JetSource:           changed(base.JetSource, variant.JetSource),
		L1AlgoName:          changed(base.L1AlgoName, variant.L1AlgoName),
		FillJetHighLevel:    changed(base.FillJetHighLevel, variant.FillJetHighLevel),
		TriggerResultsLabel: changed(base.TriggerResultsLabel, variant.TriggerResultsLabel),
		ProcessName:         changed(base.ProcessName, variant.ProcessName),

		JetCleaningFlag: changed(base.JetCleaningFlag, variant.JetCleaningFlag),
		RunCosmics:      changed(base.RunCosmics, variant.RunCosmics),

		InputJetIDValueMap: changed(base.InputJetIDValueMap, variant.InputJetIDValueMap),
		JetIDQuality:       changed(base.JetIDQuality, variant.JetIDQuality),
		JetIDVersion:       changed(base.JetIDVersion, variant.JetIDVersion),

		MVAPUIDDiscriminant: changed(base.PileupID.MVADiscriminant, variant.PileupID.MVADiscriminant),
		CutPUIDDiscriminant: changed(base.PileupID.CutDiscriminant, variant.PileupID.CutDiscriminant),
		MVAPUIDValue:        changed(base.PileupID.MVAValue, variant.PileupID.MVAValue),
		CutPUIDValue:        changed(base.PileupID.CutValue, variant.PileupID.CutValue),

		DCSFilter: changed(base.DCSFilter, variant.DCSFilter),
	}

	if !base.HighPtJetTrigger.Equal(variant.HighPtJetTrigger) {
		t := variant.HighPtJetTrigger.Clone()
		o.HighPtJetTrigger = &t
	}
	if !base.LowPtJetTrigger.Equal(variant.LowPtJetTrigger) {
		t := variant.LowPtJetTrigger.Clone()
		o.LowPtJetTrigger = &t
	}

	// Nested records are expressed against the shared defaults, not the base.
	if base.Cleaning != variant.Cleaning {
		c := diffCleaning(DefaultCleaningParameters(), variant.Cleaning)
		o.Cleaning = &c
	}
	if base.JetAnalysis != variant.JetAnalysis {
		j := diffJetAnalysis(DefaultJetAnalysisParameters(), variant.JetAnalysis)
		o.JetAnalysis = &j
	}

	return o
}

func diffCleaning(base, v CleaningConfig) CleaningOverride {
	return CleaningOverride{
		BypassAllPVChecks:  changed(base.BypassAllPVChecks, v.BypassAllPVChecks),
		BypassAllDCSChecks: changed(base.BypassAllDCSChecks, v.BypassAllDCSChecks),
		VertexCollection:   changed(base.VertexCollection, v.VertexCollection),
		GTLabel:            changed(base.GTLabel, v.GTLabel),
	}
}

func diffJetAnalysis(base, v JetAnalysisConfig) JetAnalysisOverride {
	return JetAnalysisOverride{
		Verbose:              changed(base.Verbose, v.Verbose),
		EtaBin:               changed(base.EtaBin, v.EtaBin),
		EtaMin:               changed(base.EtaMin, v.EtaMin),
		EtaMax:               changed(base.EtaMax, v.EtaMax),
		PhiBin:               changed(base.PhiBin, v.PhiBin),
		PhiMin:               changed(base.PhiMin, v.PhiMin),
		PhiMax:               changed(base.PhiMax, v.PhiMax),
		PtBin:                changed(base.PtBin, v.PtBin),
		PtMin:                changed(base.PtMin, v.PtMin),
		PtMax:                changed(base.PtMax, v.PtMax),
		PVBin:                changed(base.PVBin, v.PVBin),
		PVMin:                changed(base.PVMin, v.PVMin),
		PVMax:                changed(base.PVMax, v.PVMax),
		PtThreshold:          changed(base.PtThreshold, v.PtThreshold),
		PtThresholdUnCor:     changed(base.PtThresholdUnCor, v.PtThresholdUnCor),
		AsymmetryThirdJetCut: changed(base.AsymmetryThirdJetCut, v.AsymmetryThirdJetCut),
		BalanceThirdJetCut:   changed(base.BalanceThirdJetCut, v.BalanceThirdJetCut),
		FillJIDPassFrac:      changed(base.FillJIDPassFrac, v.FillJIDPassFrac),
		N90HitsMin:           changed(base.N90HitsMin, v.N90HitsMin),
		FHPDMax:              changed(base.FHPDMax, v.FHPDMax),
		ResEMFMin:            changed(base.ResEMFMin, v.ResEMFMin),
		MakeDijetSelection:   changed(base.MakeDijetSelection, v.MakeDijetSelection),
	}
}
