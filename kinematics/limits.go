package kinematics

import (
	"fmt"

	"go.viam.com/rapidkin/externalaxis"
	"go.viam.com/rapidkin/referenceframe"
	"go.viam.com/rapidkin/utils"
)

// CheckInternalAxisLimits returns one message per internal axis value outside its limits.
func CheckInternalAxisLimits(
	robotName string,
	limits [6]referenceframe.Limit,
	joints referenceframe.RobotJointPosition,
) []string {
	var messages []string
	for i, limit := range limits {
		if v := joints.Get(i); !limit.Contains(v) {
			messages = append(messages, fmt.Sprintf(
				"Internal axis %d of robot %s is out of range: %s is not in %v.",
				i+1, robotName, utils.FormatNumber(v), limit))
		}
	}
	return messages
}

// CheckExternalAxisLimits returns one message per external axis whose value is outside its limits.
// Unconnected channels never violate limits.
func CheckExternalAxisLimits(axes []externalaxis.Axis, ext referenceframe.ExternalJointPosition) []string {
	var messages []string
	for _, ax := range axes {
		if v, inLimits := ax.JointValue(ext); !inLimits {
			messages = append(messages, fmt.Sprintf(
				"External axis %s (%s) is out of range: %s is not in %v.",
				ax.AxisLogic(), ax.Name(), utils.FormatNumber(v), ax.Limits()))
		}
	}
	return messages
}
