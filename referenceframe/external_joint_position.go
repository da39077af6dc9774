package referenceframe

import (
	"encoding/json"
	"math"
)

// ExternalJointPosition holds the six logical external axis channels a..f. A channel is either a defined
// value (mm or degrees) or unconnected. The zero value has all channels unconnected.
type ExternalJointPosition struct {
	values [NumAxes]AxisValue
}

// NewExternalJointPosition returns an external joint position with every channel unconnected.
func NewExternalJointPosition() ExternalJointPosition {
	return ExternalJointPosition{}
}

// ExternalJointPositionFromValues builds a position from six raw numbers. NaN and 9E9 mean unconnected.
func ExternalJointPositionFromValues(eax1, eax2, eax3, eax4, eax5, eax6 float64) ExternalJointPosition {
	var jp ExternalJointPosition
	for i, v := range []float64{eax1, eax2, eax3, eax4, eax5, eax6} {
		jp.Set(i, v)
	}
	return jp
}

// ExternalJointPositionFromSlice builds a position from at most six raw numbers; missing channels are unconnected.
func ExternalJointPositionFromSlice(values []float64) (ExternalJointPosition, error) {
	var jp ExternalJointPosition
	if len(values) > NumAxes {
		return jp, NewIncorrectDoFError(len(values), NumAxes)
	}
	for i, v := range values {
		jp.Set(i, v)
	}
	return jp, nil
}

// Get returns the raw value of channel i, UndefinedAxisValue when unconnected. It panics when i is outside 0..5.
func (jp ExternalJointPosition) Get(i int) float64 {
	return jp.values[i].Float()
}

// Value returns channel i as a tagged value.
func (jp ExternalJointPosition) Value(i int) AxisValue {
	return jp.values[i]
}

// IsDefined reports whether channel i carries a value.
func (jp ExternalJointPosition) IsDefined(i int) bool {
	return jp.values[i].IsDefined()
}

// Set stores a raw value in channel i. NaN and 9E9 disconnect the channel.
func (jp *ExternalJointPosition) Set(i int, v float64) {
	jp.values[i] = AxisValueFromFloat(v)
}

// SetValue stores a tagged value in channel i.
func (jp *ExternalJointPosition) SetValue(i int, v AxisValue) {
	jp.values[i] = v
}

// GetByLetter returns the raw value of the channel with the given logical letter.
func (jp ExternalJointPosition) GetByLetter(letter string) (float64, error) {
	i, err := AxisIndexFromLetter(letter)
	if err != nil {
		return UndefinedAxisValue, err
	}
	return jp.Get(i), nil
}

// SetByLetter stores a raw value in the channel with the given logical letter.
func (jp *ExternalJointPosition) SetByLetter(letter string, v float64) error {
	i, err := AxisIndexFromLetter(letter)
	if err != nil {
		return err
	}
	jp.Set(i, v)
	return nil
}

// Values returns the raw channel values with 9E9 for unconnected channels.
func (jp ExternalJointPosition) Values() [NumAxes]float64 {
	var out [NumAxes]float64
	for i, v := range jp.values {
		out[i] = v.Float()
	}
	return out
}

// Clone returns a copy of the joint position.
func (jp ExternalJointPosition) Clone() ExternalJointPosition {
	return jp
}

// IsZero reports whether every defined channel is 0.
func (jp ExternalJointPosition) IsZero() bool {
	for _, v := range jp.values {
		if v.defined && v.value != 0 {
			return false
		}
	}
	return true
}

// AlmostEqual reports whether both positions have the same connected channels with values within epsilon.
func (jp ExternalJointPosition) AlmostEqual(other ExternalJointPosition, epsilon float64) bool {
	for i, v := range jp.values {
		o := other.values[i]
		if v.defined != o.defined {
			return false
		}
		if v.defined && math.Abs(v.value-o.value) > epsilon {
			return false
		}
	}
	return true
}

type axisOp func(a, b float64) float64

// combine applies op per channel. Two unconnected channels stay unconnected; a connected channel paired with
// an unconnected one is an error.
func (jp ExternalJointPosition) combine(other ExternalJointPosition, op axisOp) (ExternalJointPosition, error) {
	var out ExternalJointPosition
	for i, a := range jp.values {
		b := other.values[i]
		switch {
		case !a.defined && !b.defined:
			continue
		case a.defined != b.defined:
			return ExternalJointPosition{}, NewAxisMismatchError(i)
		}
		out.values[i] = Defined(op(a.value, b.value))
	}
	return out, nil
}

func (jp ExternalJointPosition) combineScalar(v float64, op axisOp) ExternalJointPosition {
	var out ExternalJointPosition
	for i, a := range jp.values {
		if a.defined {
			out.values[i] = Defined(op(a.value, v))
		}
	}
	return out
}

// Add returns the channel-wise sum.
func (jp ExternalJointPosition) Add(other ExternalJointPosition) (ExternalJointPosition, error) {
	return jp.combine(other, func(a, b float64) float64 { return a + b })
}

// Sub returns the channel-wise difference.
func (jp ExternalJointPosition) Sub(other ExternalJointPosition) (ExternalJointPosition, error) {
	return jp.combine(other, func(a, b float64) float64 { return a - b })
}

// Mul returns the channel-wise product.
func (jp ExternalJointPosition) Mul(other ExternalJointPosition) (ExternalJointPosition, error) {
	return jp.combine(other, func(a, b float64) float64 { return a * b })
}

// Div returns the channel-wise quotient. A connected zero divisor fails with ErrDivideByZero.
func (jp ExternalJointPosition) Div(other ExternalJointPosition) (ExternalJointPosition, error) {
	for i, v := range other.values {
		if v.defined && v.value == 0 && jp.values[i].defined {
			return ExternalJointPosition{}, NewDivideByZeroError(i)
		}
	}
	return jp.combine(other, func(a, b float64) float64 { return a / b })
}

// AddScalar adds v to every connected channel.
func (jp ExternalJointPosition) AddScalar(v float64) ExternalJointPosition {
	return jp.combineScalar(v, func(a, b float64) float64 { return a + b })
}

// SubScalar subtracts v from every connected channel.
func (jp ExternalJointPosition) SubScalar(v float64) ExternalJointPosition {
	return jp.combineScalar(v, func(a, b float64) float64 { return a - b })
}

// MulScalar multiplies every connected channel by v.
func (jp ExternalJointPosition) MulScalar(v float64) ExternalJointPosition {
	return jp.combineScalar(v, func(a, b float64) float64 { return a * b })
}

// DivScalar divides every connected channel by v.
func (jp ExternalJointPosition) DivScalar(v float64) (ExternalJointPosition, error) {
	if v == 0 {
		return ExternalJointPosition{}, NewScalarDivideByZeroError()
	}
	return jp.combineScalar(v, func(a, b float64) float64 { return a / b }), nil
}

// ToRAPID returns the RAPID extax literal, e.g. [500, 9E9, 9E9, 9E9, 9E9, 9E9].
func (jp ExternalJointPosition) ToRAPID() string {
	values := jp.Values()
	return formatRAPIDArray(values[:])
}

func (jp ExternalJointPosition) String() string {
	return "ExternalJointPosition" + jp.ToRAPID()
}

// MarshalJSON encodes the position as six numbers with 9E9 for unconnected channels.
func (jp ExternalJointPosition) MarshalJSON() ([]byte, error) {
	return json.Marshal(jp.Values())
}

// UnmarshalJSON decodes an array of at most six numbers.
func (jp *ExternalJointPosition) UnmarshalJSON(data []byte) error {
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	decoded, err := ExternalJointPositionFromSlice(values)
	if err != nil {
		return err
	}
	*jp = decoded
	return nil
}
