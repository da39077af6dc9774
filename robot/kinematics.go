package robot

import (
	"go.viam.com/rapidkin/kinematics"
	"go.viam.com/rapidkin/referenceframe"
	"go.viam.com/rapidkin/spatialmath"
)

// ForwardKinematics poses the robot and its external axes.
func (r *Robot) ForwardKinematics(
	joints referenceframe.RobotJointPosition,
	ext referenceframe.ExternalJointPosition,
) *kinematics.ForwardSolution {
	return kinematics.NewForwardKinematics(r, r.logger).Calculate(joints, ext)
}

// InverseKinematics solves the joint position reaching the TCP target in the given axis configuration.
func (r *Robot) InverseKinematics(
	target spatialmath.Plane,
	axisConfig int,
	ext referenceframe.ExternalJointPosition,
) (*kinematics.InverseSolution, error) {
	return kinematics.NewInverseKinematics(r, r.logger).Calculate(target, axisConfig, ext)
}

// InverseKinematicsAll solves all eight axis configurations for the TCP target.
func (r *Robot) InverseKinematicsAll(
	target spatialmath.Plane,
	ext referenceframe.ExternalJointPosition,
) ([]*kinematics.InverseSolution, error) {
	return kinematics.NewInverseKinematics(r, r.logger).CalculateAll(target, ext)
}

// AxisConfiguration returns the axis configuration a joint position lies in.
func (r *Robot) AxisConfiguration(joints referenceframe.RobotJointPosition) int {
	return kinematics.Configuration(r.params, joints)
}

// PoseMeshes returns the robot meshes posed for the joint positions and caches them for PosedMeshes.
// The attached external axes are posed for ext as well.
func (r *Robot) PoseMeshes(
	joints referenceframe.RobotJointPosition,
	ext referenceframe.ExternalJointPosition,
) []*spatialmath.Mesh {
	sol := r.ForwardKinematics(joints, ext)
	r.posedMeshes = sol.RobotMeshes
	for _, ax := range r.externalAxes {
		ax.PoseMeshes(ext)
	}
	return spatialmath.CloneMeshes(r.posedMeshes)
}

// CheckInternalAxisLimits returns one message per internal axis value outside the robot limits.
func (r *Robot) CheckInternalAxisLimits(joints referenceframe.RobotJointPosition) []string {
	return kinematics.CheckInternalAxisLimits(r.name, r.internalAxisLimits, joints)
}

// CheckExternalAxisLimits returns one message per attached external axis whose value is outside its limits.
func (r *Robot) CheckExternalAxisLimits(ext referenceframe.ExternalJointPosition) []string {
	return kinematics.CheckExternalAxisLimits(r.externalAxes, ext)
}
