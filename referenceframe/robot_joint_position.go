package referenceframe

import (
	"encoding/json"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"go.viam.com/rapidkin/utils"
)

// RobotJointPosition holds the six internal axis values of a robot, in degrees. It never holds NaN:
// NaN is stored as 0.
type RobotJointPosition struct {
	values [NumAxes]float64
}

// NewRobotJointPosition returns the joint position with the given axis values.
func NewRobotJointPosition(rax1, rax2, rax3, rax4, rax5, rax6 float64) RobotJointPosition {
	var jp RobotJointPosition
	for i, v := range []float64{rax1, rax2, rax3, rax4, rax5, rax6} {
		jp.Set(i, v)
	}
	return jp
}

// RobotJointPositionFromSlice builds a joint position from at most six values; missing values are 0.
func RobotJointPositionFromSlice(values []float64) (RobotJointPosition, error) {
	var jp RobotJointPosition
	if len(values) > NumAxes {
		return jp, NewIncorrectDoFError(len(values), NumAxes)
	}
	for i, v := range values {
		jp.Set(i, v)
	}
	return jp, nil
}

func robotValue(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// Get returns the value at index i. Like array indexing it panics when i is outside 0..5.
func (jp RobotJointPosition) Get(i int) float64 {
	return jp.values[i]
}

// Set stores v at index i. NaN is stored as 0.
func (jp *RobotJointPosition) Set(i int, v float64) {
	jp.values[i] = robotValue(v)
}

// Values returns the axis values as an array.
func (jp RobotJointPosition) Values() [NumAxes]float64 {
	return jp.values
}

// Slice returns the axis values as a new slice.
func (jp RobotJointPosition) Slice() []float64 {
	out := make([]float64, NumAxes)
	copy(out, jp.values[:])
	return out
}

// Radians returns the axis values converted to radians.
func (jp RobotJointPosition) Radians() [NumAxes]float64 {
	var out [NumAxes]float64
	for i, v := range jp.values {
		out[i] = utils.DegToRad(v)
	}
	return out
}

// Clone returns a copy of the joint position.
func (jp RobotJointPosition) Clone() RobotJointPosition {
	return jp
}

// IsZero reports whether every axis value is 0.
func (jp RobotJointPosition) IsZero() bool {
	return jp.values == [NumAxes]float64{}
}

// AlmostEqual reports whether both joint positions match within epsilon on every axis.
func (jp RobotJointPosition) AlmostEqual(other RobotJointPosition, epsilon float64) bool {
	return floats.EqualApprox(jp.values[:], other.values[:], epsilon)
}

func (jp RobotJointPosition) apply(other RobotJointPosition, op func(a, b float64) float64) RobotJointPosition {
	var out RobotJointPosition
	for i := range jp.values {
		out.Set(i, op(jp.values[i], other.values[i]))
	}
	return out
}

func (jp RobotJointPosition) applyScalar(v float64, op func(a, b float64) float64) RobotJointPosition {
	var out RobotJointPosition
	for i := range jp.values {
		out.Set(i, op(jp.values[i], v))
	}
	return out
}

// Add returns the element-wise sum.
func (jp RobotJointPosition) Add(other RobotJointPosition) RobotJointPosition {
	return jp.apply(other, func(a, b float64) float64 { return a + b })
}

// Sub returns the element-wise difference.
func (jp RobotJointPosition) Sub(other RobotJointPosition) RobotJointPosition {
	return jp.apply(other, func(a, b float64) float64 { return a - b })
}

// Mul returns the element-wise product.
func (jp RobotJointPosition) Mul(other RobotJointPosition) RobotJointPosition {
	return jp.apply(other, func(a, b float64) float64 { return a * b })
}

// Div returns the element-wise quotient. A zero divisor element fails with ErrDivideByZero.
func (jp RobotJointPosition) Div(other RobotJointPosition) (RobotJointPosition, error) {
	for i, v := range other.values {
		if v == 0 {
			return RobotJointPosition{}, NewDivideByZeroError(i)
		}
	}
	return jp.apply(other, func(a, b float64) float64 { return a / b }), nil
}

// AddScalar adds v to every axis value.
func (jp RobotJointPosition) AddScalar(v float64) RobotJointPosition {
	return jp.applyScalar(v, func(a, b float64) float64 { return a + b })
}

// SubScalar subtracts v from every axis value.
func (jp RobotJointPosition) SubScalar(v float64) RobotJointPosition {
	return jp.applyScalar(v, func(a, b float64) float64 { return a - b })
}

// MulScalar multiplies every axis value by v.
func (jp RobotJointPosition) MulScalar(v float64) RobotJointPosition {
	return jp.applyScalar(v, func(a, b float64) float64 { return a * b })
}

// DivScalar divides every axis value by v.
func (jp RobotJointPosition) DivScalar(v float64) (RobotJointPosition, error) {
	if v == 0 {
		return RobotJointPosition{}, NewScalarDivideByZeroError()
	}
	return jp.applyScalar(v, func(a, b float64) float64 { return a / b }), nil
}

// ToRAPID returns the RAPID robax literal, e.g. [0, 0, 0, 0, 45, 0].
func (jp RobotJointPosition) ToRAPID() string {
	return formatRAPIDArray(jp.values[:])
}

func (jp RobotJointPosition) String() string {
	return "RobotJointPosition" + jp.ToRAPID()
}

// MarshalJSON encodes the joint position as an array of six numbers.
func (jp RobotJointPosition) MarshalJSON() ([]byte, error) {
	return json.Marshal(jp.values)
}

// UnmarshalJSON decodes an array of at most six numbers.
func (jp *RobotJointPosition) UnmarshalJSON(data []byte) error {
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	decoded, err := RobotJointPositionFromSlice(values)
	if err != nil {
		return err
	}
	*jp = decoded
	return nil
}

func formatRAPIDArray(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if v == UndefinedAxisValue {
			parts[i] = "9E9"
			continue
		}
		parts[i] = utils.FormatNumber(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
