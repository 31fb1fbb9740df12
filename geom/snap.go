package geom

import "math"

// SnapToStep quantizes v to the nearest multiple of step. A non-positive
// step returns v unchanged.
func SnapToStep(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return step * math.Round(v/step)
}

// NormalizeAngle wraps an angle into [0, 2*pi). A result within epsilon of
// a full turn collapses to zero so a closed drag reads as "no rotation".
func NormalizeAngle(a float64) float64 {
	twoPi := 2.0 * math.Pi
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	if math.Abs(a-twoPi) < 1e-9 {
		a = 0
	}
	return a
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
