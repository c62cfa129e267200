package mathutil

import "math"

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// NormalizeAngle wraps an angle into [0, 2π) (search: angle-math).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// math.Mod can hand back exactly 2π after the correction for tiny negatives.
	if a >= TwoPi {
		a = 0
	}
	return a
}

// WrapPi wraps an angle difference into (-π, π] (search: angle-math).
func WrapPi(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a <= -math.Pi {
		a += TwoPi
	} else if a > math.Pi {
		a -= TwoPi
	}
	return a
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
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

// Frac returns the fractional part of v in [0, 1), also for negative v.
func Frac(v float64) float64 {
	return v - math.Floor(v)
}
