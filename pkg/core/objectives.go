package core

// Canonical metric keys for the eight optimization objectives. The order of
// ObjectiveNames is the canonical flat-vector order used by ToSlice and
// ObjectiveVectorFromSlice.
const (
	MetricTaskSuccess      = "task_success"
	MetricQuality          = "quality"
	MetricCoverage         = "coverage"
	MetricDiversity        = "diversity"
	MetricCost             = "cost"
	MetricLatency          = "latency"
	MetricCalibrationError = "calibration_error"
	MetricRegressionRate   = "regression_rate"
)

// NumObjectives is the size of the objective vector.
const NumObjectives = 8

// ObjectiveNames lists all objective metric keys in canonical order:
// the four maximized objectives first, then the four minimized ones.
func ObjectiveNames() []string {
	return []string{
		MetricTaskSuccess,
		MetricQuality,
		MetricCoverage,
		MetricDiversity,
		MetricCost,
		MetricLatency,
		MetricCalibrationError,
		MetricRegressionRate,
	}
}

// ObjectiveVector holds the eight objective values for a single evaluated
// pipeline configuration. TaskSuccess, Quality, Coverage and Diversity are
// maximized; Cost, Latency, CalibrationError and RegressionRate are
// minimized. Values are immutable once produced by an evaluator.
type ObjectiveVector struct {
	TaskSuccess      float64 `json:"task_success"`      // Maximize: fraction of tasks completed correctly
	Quality          float64 `json:"quality"`           // Maximize: output quality score
	Coverage         float64 `json:"coverage"`          // Maximize: input-space coverage
	Diversity        float64 `json:"diversity"`         // Maximize: output diversity
	Cost             float64 `json:"cost"`              // Minimize: evaluation cost
	Latency          float64 `json:"latency"`           // Minimize: end-to-end latency
	CalibrationError float64 `json:"calibration_error"` // Minimize: confidence calibration error
	RegressionRate   float64 `json:"regression_rate"`   // Minimize: rate of regressions vs prior outputs
}

// ObjectiveVectorFromMetrics builds an ObjectiveVector from a raw metric map.
// Missing keys default to 0.0.
func ObjectiveVectorFromMetrics(metrics map[string]float64) ObjectiveVector {
	return ObjectiveVector{
		TaskSuccess:      metrics[MetricTaskSuccess],
		Quality:          metrics[MetricQuality],
		Coverage:         metrics[MetricCoverage],
		Diversity:        metrics[MetricDiversity],
		Cost:             metrics[MetricCost],
		Latency:          metrics[MetricLatency],
		CalibrationError: metrics[MetricCalibrationError],
		RegressionRate:   metrics[MetricRegressionRate],
	}
}

// ObjectiveVectorFromSlice is the inverse of ToSlice. Slices shorter than
// NumObjectives leave the remaining fields at zero; extra entries are ignored.
func ObjectiveVectorFromSlice(values []float64) ObjectiveVector {
	var padded [NumObjectives]float64
	copy(padded[:], values)
	return ObjectiveVector{
		TaskSuccess:      padded[0],
		Quality:          padded[1],
		Coverage:         padded[2],
		Diversity:        padded[3],
		Cost:             padded[4],
		Latency:          padded[5],
		CalibrationError: padded[6],
		RegressionRate:   padded[7],
	}
}

// ToSlice returns the objective values in canonical order (see ObjectiveNames).
func (v ObjectiveVector) ToSlice() []float64 {
	return []float64{
		v.TaskSuccess,
		v.Quality,
		v.Coverage,
		v.Diversity,
		v.Cost,
		v.Latency,
		v.CalibrationError,
		v.RegressionRate,
	}
}

// ToMetrics returns the objective values keyed by canonical metric name.
func (v ObjectiveVector) ToMetrics() map[string]float64 {
	names := ObjectiveNames()
	values := v.ToSlice()
	metrics := make(map[string]float64, NumObjectives)
	for i, name := range names {
		metrics[name] = values[i]
	}
	return metrics
}

// maximized returns the values of the maximized objective group.
func (v ObjectiveVector) maximized() [4]float64 {
	return [4]float64{v.TaskSuccess, v.Quality, v.Coverage, v.Diversity}
}

// minimized returns the values of the minimized objective group.
func (v ObjectiveVector) minimized() [4]float64 {
	return [4]float64{v.Cost, v.Latency, v.CalibrationError, v.RegressionRate}
}

// Dominates reports whether v Pareto-dominates other: v is at least as good
// on every objective (>= on maximized, <= on minimized) and strictly better
// on at least one. The relation is a strict partial order: irreflexive,
// asymmetric and transitive.
func (v ObjectiveVector) Dominates(other ObjectiveVector) bool {
	atLeastAsGood := true
	strictlyBetter := false

	vMax, oMax := v.maximized(), other.maximized()
	for i := range vMax {
		if vMax[i] < oMax[i] {
			atLeastAsGood = false
			break
		}
		if vMax[i] > oMax[i] {
			strictlyBetter = true
		}
	}

	if atLeastAsGood {
		vMin, oMin := v.minimized(), other.minimized()
		for i := range vMin {
			if vMin[i] > oMin[i] {
				atLeastAsGood = false
				break
			}
			if vMin[i] < oMin[i] {
				strictlyBetter = true
			}
		}
	}

	return atLeastAsGood && strictlyBetter
}
