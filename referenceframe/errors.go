package referenceframe

import (
	"github.com/pkg/errors"
)

var (
	// ErrAxisMismatch is returned when arithmetic combines a defined external axis value with an undefined one.
	ErrAxisMismatch = errors.New("cannot combine a defined axis value with an undefined axis value")

	// ErrDivideByZero is returned when a joint position is divided by zero.
	ErrDivideByZero = errors.New("division by zero")

	// ErrInvalidAxisLetter is returned for logical axis letters outside a..f.
	ErrInvalidAxisLetter = errors.New("invalid logical axis letter")
)

// NewAxisMismatchError is used when arithmetic on two external joint positions finds exactly one undefined
// value on the same axis.
func NewAxisMismatchError(index int) error {
	return errors.Wrapf(ErrAxisMismatch, "external axis %s", AxisLetter(index))
}

// NewDivideByZeroError is used when an element of a joint position is divided by zero.
func NewDivideByZeroError(index int) error {
	return errors.Wrapf(ErrDivideByZero, "axis value at index %d", index)
}

// NewScalarDivideByZeroError is used when a joint position is divided by a zero scalar.
func NewScalarDivideByZeroError() error {
	return errors.Wrap(ErrDivideByZero, "scalar divisor")
}

// NewIncorrectDoFError is returned when a slice of joint values has the wrong length.
func NewIncorrectDoFError(actual, expected int) error {
	return errors.Errorf("number of values given %d does not match number of axes %d", actual, expected)
}
