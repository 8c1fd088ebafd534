package bank

import (
	"path/filepath"
	"strings"
)

// ItemKind is the category of a file stored in a bank. The numeric order of
// the kinds is the order their groups appear on disk.
type ItemKind uint8

const (
	KindBackground ItemKind = iota
	KindMetadata
	KindSample
	KindMultipassPreset
	KindPhasePlantPreset
	KindSnapHeapPreset
	KindThreeBandEq
	KindBitcrush
	KindCarveEq
	KindChorus
	KindCombFilter
	KindCompressor
	KindConvolver
	KindDelay
	KindDisperser
	KindDistortion
	KindDynamics
	KindEnsemble
	KindFaturator
	KindFilter
	KindFlanger
	KindFormantFilter
	KindFrequencyShifter
	KindGain
	KindGate
	KindHaas
	KindLadderFilter
	KindLimiter
	KindNonlinearFilter
	KindPhaseDistortion
	KindPhaser
	KindPitchShifter
	KindResonator
	KindReverb
	KindReverser
	KindRingMod
	KindSliceEq
	KindStereo
	KindTapeStop
	KindTranceGate
	KindTransientShaper

	kindCount
)

// kindExtensions lists the file name extensions accepted for each kind,
// lowercase and without the leading dot. Every kind has at least one.
var kindExtensions = [kindCount][]string{
	KindBackground:       {"jpg", "png"},
	KindMetadata:         {"json"},
	KindSample:           {"flac", "mp3", "wav"},
	KindMultipassPreset:  {"multipass"},
	KindPhasePlantPreset: {"phaseplant"},
	KindSnapHeapPreset:   {"snapheap"},
	KindThreeBandEq:      {"ksqe"},
	KindBitcrush:         {"ksbc"},
	KindCarveEq:          {"ksge"},
	KindChorus:           {"ksch"},
	KindCombFilter:       {"kscf"},
	KindCompressor:       {"kscp"},
	KindConvolver:        {"ksco"},
	KindDelay:            {"ksdl"},
	KindDisperser:        {"kdsp"},
	KindDistortion:       {"ksdt"},
	KindDynamics:         {"ksot"},
	KindEnsemble:         {"ksun"},
	KindFaturator:        {"kfat"},
	KindFilter:           {"ksfi"},
	KindFlanger:          {"ksfl"},
	KindFormantFilter:    {"ksvf"},
	KindFrequencyShifter: {"ksfs"},
	KindGain:             {"ksgn"},
	KindGate:             {"ksgt"},
	KindHaas:             {"ksha"},
	KindLadderFilter:     {"ksla"},
	KindLimiter:          {"kslt"},
	KindNonlinearFilter:  {"ksdf"},
	KindPhaseDistortion:  {"kspd"},
	KindPhaser:           {"ksph"},
	KindPitchShifter:     {"ksps"},
	KindResonator:        {"ksre"},
	KindReverb:           {"ksrv"},
	KindReverser:         {"ksrr"},
	KindRingMod:          {"ksrm"},
	KindSliceEq:          {"kpeq"},
	KindStereo:           {"ksst"},
	KindTapeStop:         {"ksts"},
	KindTranceGate:       {"kstg"},
	KindTransientShaper:  {"kstr"},
}

var kindNames = [kindCount]string{
	KindBackground:       "background",
	KindMetadata:         "metadata",
	KindSample:           "sample",
	KindMultipassPreset:  "multipass preset",
	KindPhasePlantPreset: "phase plant preset",
	KindSnapHeapPreset:   "snap heap preset",
	KindThreeBandEq:      "3-band eq",
	KindBitcrush:         "bitcrush",
	KindCarveEq:          "carve eq",
	KindChorus:           "chorus",
	KindCombFilter:       "comb filter",
	KindCompressor:       "compressor",
	KindConvolver:        "convolver",
	KindDelay:            "delay",
	KindDisperser:        "disperser",
	KindDistortion:       "distortion",
	KindDynamics:         "dynamics",
	KindEnsemble:         "ensemble",
	KindFaturator:        "faturator",
	KindFilter:           "filter",
	KindFlanger:          "flanger",
	KindFormantFilter:    "formant filter",
	KindFrequencyShifter: "frequency shifter",
	KindGain:             "gain",
	KindGate:             "gate",
	KindHaas:             "haas",
	KindLadderFilter:     "ladder filter",
	KindLimiter:          "limiter",
	KindNonlinearFilter:  "nonlinear filter",
	KindPhaseDistortion:  "phase distortion",
	KindPhaser:           "phaser",
	KindPitchShifter:     "pitch shifter",
	KindResonator:        "resonator",
	KindReverb:           "reverb",
	KindReverser:         "reverser",
	KindRingMod:          "ring mod",
	KindSliceEq:          "slice eq",
	KindStereo:           "stereo",
	KindTapeStop:         "tape stop",
	KindTranceGate:       "trance gate",
	KindTransientShaper:  "transient shaper",
}

// classifyOrder is the order extension matching is attempted in. The host
// application presets come before samples and effect presets.
var classifyOrder = buildClassifyOrder()

func buildClassifyOrder() []ItemKind {
	kinds := []ItemKind{
		KindBackground,
		KindMetadata,
		KindMultipassPreset,
		KindPhasePlantPreset,
		KindSnapHeapPreset,
		KindSample,
	}
	for k := KindThreeBandEq; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Kinds returns every supported item kind in classification order.
func Kinds() []ItemKind {
	kinds := make([]ItemKind, len(classifyOrder))
	copy(kinds, classifyOrder)
	return kinds
}

func (k ItemKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Extensions returns the file name extensions used by this kind of item,
// without the leading dot.
func (k ItemKind) Extensions() []string {
	return kindExtensions[k]
}

// HasExtension reports whether the extension, without a leading dot, is used
// by this kind of item. The comparison is case-insensitive.
func (k ItemKind) HasExtension(ext string) bool {
	for _, e := range kindExtensions[k] {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// Directory returns the name of the directory that holds files of this kind
// inside a bank, or "" for kinds stored at the bank root.
func (k ItemKind) Directory() string {
	switch k {
	case KindBackground, KindMetadata:
		return ""
	case KindSample:
		return "samples"
	default:
		return kindExtensions[k][0]
	}
}

// Classify finds the kind of a file from its name. The metadata and
// background kinds are matched on the file name itself; everything else is
// matched on the extension. Comparisons are case-insensitive. The second
// return value is false when the file is not a type that belongs in a bank.
func Classify(path string) (ItemKind, bool) {
	base := filepath.Base(path)
	if strings.EqualFold(base, MetadataFileName) {
		return KindMetadata, true
	}

	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if strings.EqualFold(stem, BackgroundFileStem) {
		return KindBackground, true
	}

	if ext == "" {
		return 0, false
	}
	for _, kind := range classifyOrder {
		if kind.HasExtension(ext) {
			return kind, true
		}
	}
	return 0, false
}
