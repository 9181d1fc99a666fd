package curve

import "math"

// minFraction keeps decay rate solves away from ln(0).
const minFraction = 1e-12

// MinMax represents a min/max range for normalization.
type MinMax struct {
	Min float64
	Max float64
}

// Range returns max - min.
func (m MinMax) Range() float64 {
	return m.Max - m.Min
}

// IsSingleValue returns true if min equals max (within tolerance).
func (m MinMax) IsSingleValue() bool {
	return math.Abs(m.Max-m.Min) < 1e-10
}

// NormMinMax normalizes a value using linear min-max scaling.
// Formula: (x - min) / (max - min)
func NormMinMax(value float64, minMax MinMax) float64 {
	if minMax.IsSingleValue() {
		if value > minMax.Min {
			return 1.0
		}
		return 0.0
	}

	normalized := (value - minMax.Min) / minMax.Range()
	return clamp(normalized)
}

// NormalizePercent rescales percent to [0,1] against the qualifying minimum.
// percent == minPercent-1 maps to 0 and percent == 100 maps to 1.
func NormalizePercent(percent, minPercent float64) float64 {
	return NormMinMax(percent, MinMax{Min: minPercent - 1, Max: 100})
}

// RankPosition maps rank onto [0,1]: 0 at rank 1, 1 at maxRank.
func RankPosition(rank, maxRank int) float64 {
	if maxRank <= 1 {
		return 0
	}
	return clamp(float64(rank-1) / float64(maxRank-1))
}

// DecayRate solves exp(-rate*steps) = targetFraction for rate.
// Formula: -ln(targetFraction) / steps
func DecayRate(targetFraction float64, steps int) float64 {
	if targetFraction < minFraction {
		targetFraction = minFraction
	}
	if steps < 1 {
		steps = 1
	}
	return -math.Log(targetFraction) / float64(steps)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clampFloat(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, value))
}

func clampInt(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// clamp constrains a value between 0 and 1.
func clamp(value float64) float64 {
	return clampFloat(value, 0.0, 1.0)
}
