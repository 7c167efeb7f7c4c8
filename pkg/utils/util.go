// Package utils holds small helpers shared across the optimizer packages.
package utils

import "math"

// Clamp bounds v into [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// CloneMetrics returns a shallow copy of a metric map. A nil input yields an
// empty, writable map.
func CloneMetrics(metrics map[string]float64) map[string]float64 {
	clone := make(map[string]float64, len(metrics))
	for k, v := range metrics {
		clone[k] = v
	}
	return clone
}
