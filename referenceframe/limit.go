package referenceframe

import (
	"fmt"
	"math"

	"go.viam.com/rapidkin/utils"
)

// Limit represents the closed interval an axis may move within: mm for linear axes, degrees for
// rotational axes.
type Limit struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NewLimit returns the limit spanned by a and b, in either order.
func NewLimit(a, b float64) Limit {
	return Limit{Min: math.Min(a, b), Max: math.Max(a, b)}
}

// IsValid reports whether the limit is a finite, non inverted interval.
func (l Limit) IsValid() bool {
	if math.IsNaN(l.Min) || math.IsNaN(l.Max) || math.IsInf(l.Min, 0) || math.IsInf(l.Max, 0) {
		return false
	}
	return l.Min <= l.Max
}

// Contains reports whether value lies in the closed interval; the bounds count as inside.
func (l Limit) Contains(value float64) bool {
	return value >= l.Min && value <= l.Max
}

// Clamp returns the closest value to value inside the interval.
func (l Limit) Clamp(value float64) float64 {
	return utils.Clamp(value, l.Min, l.Max)
}

// Length returns the size of the interval.
func (l Limit) Length() float64 {
	return l.Max - l.Min
}

// String returns the interval in mathematical notation.
func (l Limit) String() string {
	return fmt.Sprintf("[%s, %s]", utils.FormatNumber(l.Min), utils.FormatNumber(l.Max))
}

// LimitsAlmostEqual reports whether two lists of limits match within floating point noise.
func LimitsAlmostEqual(a, b []Limit) bool {
	if len(a) != len(b) {
		return false
	}

	const epsilon = 1e-5
	for idx, x := range a {
		if !utils.Float64AlmostEqual(x.Min, b[idx].Min, epsilon) ||
			!utils.Float64AlmostEqual(x.Max, b[idx].Max, epsilon) {
			return false
		}
	}

	return true
}
