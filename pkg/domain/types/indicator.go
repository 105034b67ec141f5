package types

// IndicatorCode identifies one observable behavior or context factor
type IndicatorCode string

// Disposal behavior codes. The prefix names the semantic class:
// PO = proper, NT = neutral, NG = negative.
const (
	BehaviorProperDisposal     IndicatorCode = "PO-PD"
	BehaviorRecyclingCorrectly IndicatorCode = "PO-RC"
	BehaviorPickingUpLitter    IndicatorCode = "PO-PULPD"
	BehaviorNonRecyclablesOnly IndicatorCode = "NT-DNRO"
	BehaviorPackingOutTrash    IndicatorCode = "NT-POT"
	BehaviorIncorrectBinUse    IndicatorCode = "NG-IRBU"
	BehaviorTrashInRestrooms   IndicatorCode = "NG-DTPR"
	BehaviorLitteringOnGround  IndicatorCode = "NG-LOG"
)

// Context factor codes. PF = people factor, EF = environment factor.
const (
	ContextLackOfAwareness     IndicatorCode = "PF-LPA"
	ContextConfusingGuidelines IndicatorCode = "PF-CRG"
	ContextOverflowingBin      IndicatorCode = "EF-OTB"
	ContextSeasonalSpike       IndicatorCode = "EF-SWS"
	ContextHardToFindBin       IndicatorCode = "EF-DFTC"
	ContextInsufficientBins    IndicatorCode = "EF-INOB"
	ContextStrategicBins       IndicatorCode = "EF-SPB"
)

var indicatorDescriptions = map[IndicatorCode]string{
	BehaviorProperDisposal:     "Proper Disposal",
	BehaviorRecyclingCorrectly: "Recycling Correctly",
	BehaviorPickingUpLitter:    "Picking Up Litter for Proper Disposal",
	BehaviorNonRecyclablesOnly: "Disposing Non-recyclables Only",
	BehaviorPackingOutTrash:    "Packing Out Trash",
	BehaviorIncorrectBinUse:    "Incorrect Recycling Bin Use",
	BehaviorTrashInRestrooms:   "Disposing Trash in Public Restrooms",
	BehaviorLitteringOnGround:  "Littering on the Ground",

	ContextLackOfAwareness:     "Lack of Public Awareness",
	ContextConfusingGuidelines: "Confusing Recycling Guidelines",
	ContextOverflowingBin:      "Overflowing Trash Bin",
	ContextSeasonalSpike:       "Seasonal Waste Spike",
	ContextHardToFindBin:       "Difficulty Finding Trash Can",
	ContextInsufficientBins:    "Insufficient Number of Bins",
	ContextStrategicBins:       "Strategically Placed Bins",
}

// AllBehaviorCodes returns the disposal behavior codes in display order
func AllBehaviorCodes() []IndicatorCode {
	return []IndicatorCode{
		BehaviorProperDisposal,
		BehaviorRecyclingCorrectly,
		BehaviorPickingUpLitter,
		BehaviorNonRecyclablesOnly,
		BehaviorPackingOutTrash,
		BehaviorIncorrectBinUse,
		BehaviorTrashInRestrooms,
		BehaviorLitteringOnGround,
	}
}

// AllContextCodes returns the context factor codes in display order
func AllContextCodes() []IndicatorCode {
	return []IndicatorCode{
		ContextLackOfAwareness,
		ContextConfusingGuidelines,
		ContextOverflowingBin,
		ContextSeasonalSpike,
		ContextHardToFindBin,
		ContextInsufficientBins,
		ContextStrategicBins,
	}
}

// Description returns a human readable name, or empty for unknown codes
func (c IndicatorCode) Description() string {
	return indicatorDescriptions[c]
}

// String returns the string representation of the code
func (c IndicatorCode) String() string {
	return string(c)
}
