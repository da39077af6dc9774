// Package referenceframe defines joint position values, axis limits and the mechanical unit capability set
// shared by robots and external axes.
package referenceframe

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// UndefinedAxisValue is the legacy RAPID value of an external axis channel that is not connected (9E9).
// It only appears when values cross the float, RAPID text or JSON boundaries.
const UndefinedAxisValue = 9e9

// NumAxes is the number of values in a joint position.
const NumAxes = 6

var axisLetters = [NumAxes]string{"A", "B", "C", "D", "E", "F"}

// AxisValue is the value of one external axis channel: either a defined number or unconnected.
// The zero value is unconnected.
type AxisValue struct {
	value   float64
	defined bool
}

// Defined returns a connected axis value. NaN and the legacy 9E9 sentinel become unconnected.
func Defined(value float64) AxisValue {
	return AxisValueFromFloat(value)
}

// Undefined returns an unconnected axis value.
func Undefined() AxisValue {
	return AxisValue{}
}

// AxisValueFromFloat converts a raw number, mapping NaN and 9E9 to unconnected.
func AxisValueFromFloat(value float64) AxisValue {
	if math.IsNaN(value) || value == UndefinedAxisValue {
		return AxisValue{}
	}
	return AxisValue{value: value, defined: true}
}

// IsDefined reports whether the channel carries a value.
func (a AxisValue) IsDefined() bool {
	return a.defined
}

// Value returns the number and whether it is defined.
func (a AxisValue) Value() (float64, bool) {
	return a.value, a.defined
}

// Float returns the number, or UndefinedAxisValue when unconnected.
func (a AxisValue) Float() float64 {
	if !a.defined {
		return UndefinedAxisValue
	}
	return a.value
}

// AxisLetter returns the logical axis letter (A..F) of an index, or "-1" for indices outside 0..5.
func AxisLetter(index int) string {
	if index < 0 || index >= NumAxes {
		return "-1"
	}
	return axisLetters[index]
}

// AxisIndexFromLetter resolves a logical axis letter, in either case, to its index.
func AxisIndexFromLetter(letter string) (int, error) {
	for i, l := range axisLetters {
		if strings.EqualFold(l, letter) {
			return i, nil
		}
	}
	return -1, errors.Wrapf(ErrInvalidAxisLetter, "%q", letter)
}
