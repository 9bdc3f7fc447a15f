package common

import "math"

const (
	// FixedDelta is the simulation step in seconds.
	FixedDelta = 1.0 / 60.0

	// Gravity is the default downward acceleration in pixels per second squared.
	Gravity = 980.0

	// OverlapBias is the extra slack allowed on a per-axis overlap before it
	// is attributed to motion on the other axis.
	OverlapBias = 4.0

	// Slop is added to positional corrections so resolved shapes end up
	// strictly apart instead of exactly touching.
	Slop = 0.0005

	// Epsilon is the tolerance for geometric comparisons.
	Epsilon = 1e-9
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func NearlyZero(v float64) bool {
	return math.Abs(v) <= Epsilon
}

func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}
