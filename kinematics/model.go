package kinematics

import (
	"go.viam.com/rapidkin/externalaxis"
	"go.viam.com/rapidkin/referenceframe"
	"go.viam.com/rapidkin/spatialmath"
	"go.viam.com/rapidkin/tool"
)

// Model is the robot description the solvers evaluate. Accessors return copies.
type Model interface {
	Name() string
	// BasePlane is the plane the robot stands on with every external axis at zero.
	BasePlane() spatialmath.Plane
	// KinematicParameters are derived from the internal axis planes.
	KinematicParameters() Parameters
	InternalAxisLimits() [6]referenceframe.Limit
	ExternalAxes() []externalaxis.Axis
	// Tool is the tool attached to the mounting frame at the zero pose.
	Tool() *tool.Tool
	// Meshes returns the base mesh, the six link meshes and the tool mesh at the zero pose.
	Meshes() []*spatialmath.Mesh
}

// movingAxis returns the external axis that carries the robot, if any.
func movingAxis(m Model) externalaxis.Axis {
	for _, ax := range m.ExternalAxes() {
		if ax.MovesRobot() {
			return ax
		}
	}
	return nil
}

// positionedBasePlane returns the base plane carried by the robot moving external axis, evaluated with the
// clamped contract. The boolean reports whether the unclamped value was in limits.
func positionedBasePlane(m Model, mover externalaxis.Axis, ext referenceframe.ExternalJointPosition) (spatialmath.Plane, bool) {
	base := m.BasePlane()
	if mover == nil {
		return base, true
	}
	_, inLimits := mover.JointValue(ext)
	return base.Transform(mover.CalculateTransformationMatrixSave(ext)), inLimits
}
