// Package fitness maps raw problem measurements into non-negative scores in [0, 1]
package fitness

import "math"

// NormalizeFunc converts a raw measurement to a score in [0, 1]
type NormalizeFunc func(raw float64) float64

// NormalizeLinear maps [lo, hi] onto [0, 1], clamping outside values.
// An empty or inverted range always scores 0.
func NormalizeLinear(lo, hi float64) NormalizeFunc {
	span := hi - lo
	if !(span > 0) {
		return zero
	}
	return func(raw float64) float64 {
		return clamp01((raw - lo) / span)
	}
}

// NormalizeInverse scores distances and costs: 1 / (1 + raw/scale).
// Zero scores 1 and larger values approach 0. Negative input is treated as 0.
func NormalizeInverse(scale float64) NormalizeFunc {
	if !(scale > 0) {
		scale = 1
	}
	return func(raw float64) float64 {
		if !(raw > 0) {
			return 1
		}
		return 1 / (1 + raw/scale)
	}
}

// NormalizeCap scores raw/max, saturating at 1
func NormalizeCap(max float64) NormalizeFunc {
	if !(max > 0) {
		return zero
	}
	return func(raw float64) float64 {
		return clamp01(raw / max)
	}
}

// Scale multiplies a normalized score by factor, keeping the result non-negative
func Scale(fn NormalizeFunc, factor float64) NormalizeFunc {
	factor = math.Max(factor, 0)
	return func(raw float64) float64 {
		return fn(raw) * factor
	}
}

func zero(float64) float64 { return 0 }

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
