package robot

import (
	"github.com/pkg/errors"
)

var (
	// ErrTooManyExternalAxes is returned when more than six external axes are attached to a robot.
	ErrTooManyExternalAxes = errors.New("a robot can have at most six external axes")

	// ErrMultipleMovingAxes is returned when more than one external axis moves the robot.
	ErrMultipleMovingAxes = errors.New("only one external axis can move the robot")

	// ErrDuplicateAxisLogicNumber is returned when two external axes use the same logical channel.
	ErrDuplicateAxisLogicNumber = errors.New("external axes must have unique axis logic numbers")

	// ErrInvalidRobot is wrapped by every invariant failure reported from Validate.
	ErrInvalidRobot = errors.New("invalid robot")
)

func newInvalidRobotError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidRobot, format, args...)
}
