// Package utils contains small numeric helpers shared by the kinematics packages.
package utils

import (
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// Clamp returns value restricted to the closed interval spanned by lo and hi. The bounds may be given in
// either order.
func Clamp[T constraints.Ordered](value, lo, hi T) T {
	if lo > hi {
		lo, hi = hi, lo
	}
	switch {
	case value < lo:
		return lo
	case value > hi:
		return hi
	default:
		return value
	}
}

// WrapAngleDeg maps an angle in degrees onto (-180, 180].
func WrapAngleDeg(deg float64) float64 {
	wrapped := math.Mod(deg, 360)
	if wrapped <= -180 {
		wrapped += 360
	} else if wrapped > 180 {
		wrapped -= 360
	}
	return wrapped
}

// WrapAngleRad maps an angle in radians onto (-pi, pi].
func WrapAngleRad(rad float64) float64 {
	wrapped := math.Mod(rad, 2*math.Pi)
	if wrapped <= -math.Pi {
		wrapped += 2 * math.Pi
	} else if wrapped > math.Pi {
		wrapped -= 2 * math.Pi
	}
	return wrapped
}

// AngleDiffDeg returns the closest difference from the two given
// angles. The arguments are commutative.
func AngleDiffDeg(a1, a2 float64) float64 {
	return float64(180) - math.Abs(math.Abs(a1-a2)-float64(180))
}

// Square returns n*n. Math.pow( x, 2 ) is slow, this is faster.
func Square(n float64) float64 {
	return n * n
}

// FormatNumber renders v with at most 6 decimal places and no trailing zeros, the number format used in
// RAPID data literals.
func FormatNumber(v float64) string {
	rounded := math.Round(v*1e6) / 1e6
	if rounded == 0 {
		// avoid "-0"
		rounded = 0
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
