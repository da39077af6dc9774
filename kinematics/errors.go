package kinematics

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidAxisConfig is returned for an axis configuration outside 0..7.
	ErrInvalidAxisConfig = errors.New("axis configuration must be between 0 and 7")

	// ErrNonSphericalWrist is returned when the closed form solver is used with a3 != 0.
	ErrNonSphericalWrist = errors.New("inverse kinematics requires a spherical wrist (a3 = 0)")

	// ErrInvalidParameters is returned when the kinematic parameters contain NaN.
	ErrInvalidParameters = errors.New("invalid kinematic parameters")

	// ErrInvalidPlaneCount is returned when a robot is given other than six internal axis planes.
	ErrInvalidPlaneCount = errors.New("a robot needs exactly six internal axis planes")
)

// NewInvalidPlaneCountError is used when a slice of axis planes has the wrong length.
func NewInvalidPlaneCountError(count int) error {
	return errors.Wrapf(ErrInvalidPlaneCount, "got %d", count)
}
