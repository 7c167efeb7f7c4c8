package core

import "math"

// Bounds for the continuous and integer decision variables.
const (
	RelevanceWeightMin = 0.30
	RelevanceWeightMax = 1.00
	CoherenceWeightMin = 0.10
	CoherenceWeightMax = 1.00

	TemperatureMin = 0.0
	TemperatureMax = 2.0

	ReasoningDepthMin = 1
	ReasoningDepthMax = 10
)

// NumVariables is the length of the flat encoded decision vector.
const NumVariables = 14

// Strictness controls how aggressively the pipeline rejects low-confidence
// outputs.
type Strictness int

const (
	StrictnessLenient Strictness = iota
	StrictnessStandard
	StrictnessStrict
)

func (s Strictness) String() string {
	switch s {
	case StrictnessLenient:
		return "lenient"
	case StrictnessStandard:
		return "standard"
	case StrictnessStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// StrictnessValues returns all strictness levels in encoding order.
func StrictnessValues() []Strictness {
	return []Strictness{StrictnessLenient, StrictnessStandard, StrictnessStrict}
}

// CompressionLevel controls how much input context is compressed before
// processing.
type CompressionLevel int

const (
	CompressionLight CompressionLevel = iota
	CompressionModerate
	CompressionAggressive
)

func (c CompressionLevel) String() string {
	switch c {
	case CompressionLight:
		return "light"
	case CompressionModerate:
		return "moderate"
	case CompressionAggressive:
		return "aggressive"
	default:
		return "unknown"
	}
}

// CompressionValues returns all compression levels in encoding order.
func CompressionValues() []CompressionLevel {
	return []CompressionLevel{CompressionLight, CompressionModerate, CompressionAggressive}
}

// ContextStrategy selects how the pipeline fits long inputs into its context
// window.
type ContextStrategy int

const (
	ContextTruncate ContextStrategy = iota
	ContextSlidingWindow
	ContextSummarize
)

func (c ContextStrategy) String() string {
	switch c {
	case ContextTruncate:
		return "truncate"
	case ContextSlidingWindow:
		return "sliding_window"
	case ContextSummarize:
		return "summarize"
	default:
		return "unknown"
	}
}

// ContextStrategyValues returns all context strategies in encoding order.
func ContextStrategyValues() []ContextStrategy {
	return []ContextStrategy{ContextTruncate, ContextSlidingWindow, ContextSummarize}
}

// BaseVariables is the 5D decision space swept exhaustively by the coarse
// exploration stage.
type BaseVariables struct {
	RelevanceWeight float64          `json:"relevance_weight"` // [0.30, 1.00]
	CoherenceWeight float64          `json:"coherence_weight"` // [0.10, 1.00]
	Strictness      Strictness       `json:"strictness"`
	Compression     CompressionLevel `json:"compression"`
	SelfCheck       bool             `json:"self_check"`
}

// ExtensionVariables extends the base space to the full 14D space refined by
// the generational stage.
type ExtensionVariables struct {
	FactualityWeight float64         `json:"factuality_weight"` // [0, 1]
	StyleWeight      float64         `json:"style_weight"`      // [0, 1]
	BrevityWeight    float64         `json:"brevity_weight"`    // [0, 1]
	ContextWeight    float64         `json:"context_weight"`    // [0, 1]
	CitationWeight   float64         `json:"citation_weight"`   // [0, 1]
	ConfidenceFloor  float64         `json:"confidence_floor"`  // [0, 1]
	Temperature      float64         `json:"temperature"`       // [0, 2]
	ReasoningDepth   int             `json:"reasoning_depth"`   // [1, 10]
	ContextStrategy  ContextStrategy `json:"context_strategy"`
}

// DecisionVariables is the full tunable configuration of the text-processing
// pipeline: the 5D base record composed with the 9-field extension.
type DecisionVariables struct {
	Base BaseVariables      `json:"base"`
	Ext  ExtensionVariables `json:"ext"`
}

// DefaultBase returns the midpoint base configuration.
func DefaultBase() BaseVariables {
	return BaseVariables{
		RelevanceWeight: 0.65,
		CoherenceWeight: 0.55,
		Strictness:      StrictnessStandard,
		Compression:     CompressionModerate,
		SelfCheck:       false,
	}
}

// DefaultExtension returns the extension values used when lifting a 5D grid
// point into the full 14D space.
func DefaultExtension() ExtensionVariables {
	return ExtensionVariables{
		FactualityWeight: 0.5,
		StyleWeight:      0.5,
		BrevityWeight:    0.5,
		ContextWeight:    0.5,
		CitationWeight:   0.5,
		ConfidenceFloor:  0.5,
		Temperature:      0.7,
		ReasoningDepth:   4,
		ContextStrategy:  ContextSlidingWindow,
	}
}

// DefaultVariables returns the default full configuration.
func DefaultVariables() DecisionVariables {
	return DecisionVariables{Base: DefaultBase(), Ext: DefaultExtension()}
}

// FieldKind classifies a slot of the encoded decision vector so that generic
// crossover and mutation operators stay total over the whole space.
type FieldKind int

const (
	FieldContinuous FieldKind = iota
	FieldEnum
	FieldBool
	FieldInt
)

// FieldSpec describes one slot of the encoded decision vector. Min/Max bound
// the encoded value; Levels is the number of discrete levels for enum, bool
// and integer fields.
type FieldSpec struct {
	Name   string
	Kind   FieldKind
	Min    float64
	Max    float64
	Levels int
}

// FieldSpecs returns the 14 encoded slots in canonical order, matching
// Encode and DecodeVariables.
func FieldSpecs() []FieldSpec {
	return []FieldSpec{
		{Name: "relevance_weight", Kind: FieldContinuous, Min: RelevanceWeightMin, Max: RelevanceWeightMax},
		{Name: "coherence_weight", Kind: FieldContinuous, Min: CoherenceWeightMin, Max: CoherenceWeightMax},
		{Name: "strictness", Kind: FieldEnum, Min: 0, Max: 1, Levels: 3},
		{Name: "compression", Kind: FieldEnum, Min: 0, Max: 1, Levels: 3},
		{Name: "self_check", Kind: FieldBool, Min: 0, Max: 1, Levels: 2},
		{Name: "factuality_weight", Kind: FieldContinuous, Min: 0, Max: 1},
		{Name: "style_weight", Kind: FieldContinuous, Min: 0, Max: 1},
		{Name: "brevity_weight", Kind: FieldContinuous, Min: 0, Max: 1},
		{Name: "context_weight", Kind: FieldContinuous, Min: 0, Max: 1},
		{Name: "citation_weight", Kind: FieldContinuous, Min: 0, Max: 1},
		{Name: "confidence_floor", Kind: FieldContinuous, Min: 0, Max: 1},
		{Name: "temperature", Kind: FieldContinuous, Min: TemperatureMin, Max: TemperatureMax},
		{Name: "reasoning_depth", Kind: FieldInt, Min: 0, Max: 1, Levels: ReasoningDepthMax - ReasoningDepthMin + 1},
		{Name: "context_strategy", Kind: FieldEnum, Min: 0, Max: 1, Levels: 3},
	}
}

// enumLevel maps level index i of an n-level enum onto [0,1] with even
// spacing.
func enumLevel(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// nearestLevel inverts enumLevel, clamping out-of-range encodings to the
// nearest valid level.
func nearestLevel(v float64, n int) int {
	if n <= 1 {
		return 0
	}
	i := int(math.Round(v * float64(n-1)))
	if i < 0 {
		i = 0
	}
	if i > n-1 {
		i = n - 1
	}
	return i
}

// Encode flattens the variables into a 14-element numeric vector in
// FieldSpecs order. Continuous weights keep their raw values; enums map onto
// evenly spaced points in [0,1]; the boolean maps to {0,1}; reasoning depth
// is normalized to [0,1].
func (d DecisionVariables) Encode() []float64 {
	b := 0.0
	if d.Base.SelfCheck {
		b = 1.0
	}
	return []float64{
		d.Base.RelevanceWeight,
		d.Base.CoherenceWeight,
		enumLevel(int(d.Base.Strictness), 3),
		enumLevel(int(d.Base.Compression), 3),
		b,
		d.Ext.FactualityWeight,
		d.Ext.StyleWeight,
		d.Ext.BrevityWeight,
		d.Ext.ContextWeight,
		d.Ext.CitationWeight,
		d.Ext.ConfidenceFloor,
		d.Ext.Temperature,
		enumLevel(d.Ext.ReasoningDepth-ReasoningDepthMin, ReasoningDepthMax-ReasoningDepthMin+1),
		enumLevel(int(d.Ext.ContextStrategy), 3),
	}
}

// DecodeVariables reconstructs DecisionVariables from an encoded vector.
// Total over any input: continuous fields are clamped into their bounds and
// discrete fields snap to the nearest level. Vectors shorter than
// NumVariables are zero-padded.
func DecodeVariables(values []float64) DecisionVariables {
	var padded [NumVariables]float64
	copy(padded[:], values)

	d := DecisionVariables{
		Base: BaseVariables{
			RelevanceWeight: clamp(padded[0], RelevanceWeightMin, RelevanceWeightMax),
			CoherenceWeight: clamp(padded[1], CoherenceWeightMin, CoherenceWeightMax),
			Strictness:      Strictness(nearestLevel(padded[2], 3)),
			Compression:     CompressionLevel(nearestLevel(padded[3], 3)),
			SelfCheck:       padded[4] >= 0.5,
		},
		Ext: ExtensionVariables{
			FactualityWeight: clamp(padded[5], 0, 1),
			StyleWeight:      clamp(padded[6], 0, 1),
			BrevityWeight:    clamp(padded[7], 0, 1),
			ContextWeight:    clamp(padded[8], 0, 1),
			CitationWeight:   clamp(padded[9], 0, 1),
			ConfidenceFloor:  clamp(padded[10], 0, 1),
			Temperature:      clamp(padded[11], TemperatureMin, TemperatureMax),
			ReasoningDepth:   ReasoningDepthMin + nearestLevel(padded[12], ReasoningDepthMax-ReasoningDepthMin+1),
			ContextStrategy:  ContextStrategy(nearestLevel(padded[13], 3)),
		},
	}
	return d
}

// Clamp forces every field into its documented range and returns the result.
func (d DecisionVariables) Clamp() DecisionVariables {
	return DecodeVariables(d.Encode())
}

// MetricValues exposes the decision variables as a flat metric map, keyed by
// FieldSpecs names, for constraint checks against variable values.
func (d DecisionVariables) MetricValues() map[string]float64 {
	specs := FieldSpecs()
	encoded := d.Encode()
	metrics := make(map[string]float64, len(specs))
	for i, spec := range specs {
		metrics[spec.Name] = encoded[i]
	}
	// Report the raw integer depth rather than its normalized encoding.
	metrics["reasoning_depth"] = float64(d.Ext.ReasoningDepth)
	metrics["temperature"] = d.Ext.Temperature
	return metrics
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
