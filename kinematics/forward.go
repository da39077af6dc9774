package kinematics

import (
	"go.viam.com/rapidkin/externalaxis"
	"go.viam.com/rapidkin/logging"
	"go.viam.com/rapidkin/referenceframe"
	"go.viam.com/rapidkin/spatialmath"
	"go.viam.com/rapidkin/utils"
)

// ForwardSolution is the posed robot cell for one joint position.
type ForwardSolution struct {
	RobotJointPosition    referenceframe.RobotJointPosition
	ExternalJointPosition referenceframe.ExternalJointPosition

	// BasePlane is the robot base plane after the robot moving external axis is applied.
	BasePlane          spatialmath.Plane
	InternalAxisPlanes [6]spatialmath.Plane
	MountingFrame      spatialmath.Plane
	TCPPlane           spatialmath.Plane
	// ExternalAxisPlanes holds the posed attachment plane of each external axis at its logic number. Channels
	// without an axis hold the unset plane.
	ExternalAxisPlanes [6]spatialmath.Plane

	// RobotMeshes holds the base, the six links and the tool. Empty when meshes are hidden.
	RobotMeshes []*spatialmath.Mesh
	// ExternalAxisMeshes holds the base and link mesh of each external axis, in attachment order.
	ExternalAxisMeshes [][]*spatialmath.Mesh

	ErrorText []string
	InLimits  bool
}

// ForwardKinematics poses a robot model for given joint positions.
type ForwardKinematics struct {
	model      Model
	logger     logging.Logger
	hideMeshes bool
}

// NewForwardKinematics creates a forward solver for model.
func NewForwardKinematics(model Model, logger logging.Logger) *ForwardKinematics {
	return &ForwardKinematics{model: model, logger: logging.OrNop(logger)}
}

// HideMeshes disables posing of meshes, which is the expensive part of a solution.
func (fk *ForwardKinematics) HideMeshes(hide bool) {
	fk.hideMeshes = hide
}

// jointTransforms returns, for each internal axis, the rigid transform in the base frame of everything carried
// by that axis: the product of the rotations of axes 1..i about their zero pose lines.
func jointTransforms(localPlanes [6]spatialmath.Plane, joints referenceframe.RobotJointPosition) [6]spatialmath.Pose {
	var out [6]spatialmath.Pose
	current := spatialmath.NewZeroPose()
	for i, pl := range localPlanes {
		rotation := spatialmath.NewRotationAboutAxis(pl.Origin, pl.ZAxis(), utils.DegToRad(joints.Get(i)))
		current = spatialmath.Compose(current, rotation)
		out[i] = current
	}
	return out
}

// Calculate poses the model. Values outside the limits are evaluated and reported; the robot moving external
// axis is evaluated with its clamped value.
func (fk *ForwardKinematics) Calculate(
	joints referenceframe.RobotJointPosition,
	ext referenceframe.ExternalJointPosition,
) *ForwardSolution {
	sol := &ForwardSolution{RobotJointPosition: joints, ExternalJointPosition: ext}

	axes := fk.model.ExternalAxes()
	mover := movingAxis(fk.model)
	base := fk.model.BasePlane()
	posedBase, _ := positionedBasePlane(fk.model, mover, ext)
	sol.BasePlane = posedBase

	localPlanes, localMounting := fk.model.KinematicParameters().LocalAxisPlanes()
	transforms := jointTransforms(localPlanes, joints)
	for i, pl := range localPlanes {
		sol.InternalAxisPlanes[i] = pl.Transform(transforms[i]).FromFrameOf(posedBase)
	}
	sol.MountingFrame = localMounting.Transform(transforms[5]).FromFrameOf(posedBase)
	sol.TCPPlane = spatialmath.PlaneFromPose(spatialmath.Compose(sol.MountingFrame.Pose(), fk.model.Tool().Offset()))

	for _, ax := range axes {
		if ax.AxisNumber() == externalaxis.Unassigned {
			continue
		}
		if ax.MovesRobot() {
			sol.ExternalAxisPlanes[ax.AxisNumber()] = ax.CalculatePositionSave(ext)
		} else {
			sol.ExternalAxisPlanes[ax.AxisNumber()], _ = ax.CalculatePosition(ext)
		}
	}

	sol.ErrorText = append(sol.ErrorText,
		CheckInternalAxisLimits(fk.model.Name(), fk.model.InternalAxisLimits(), joints)...)
	sol.ErrorText = append(sol.ErrorText, CheckExternalAxisLimits(axes, ext)...)
	sol.InLimits = len(sol.ErrorText) == 0

	if !fk.hideMeshes {
		sol.RobotMeshes = poseRobotMeshes(fk.model.Meshes(), base, posedBase, transforms)
		for _, ax := range axes {
			sol.ExternalAxisMeshes = append(sol.ExternalAxisMeshes, ax.PoseMeshes(ext))
		}
	}

	if !sol.InLimits {
		fk.logger.Debugw("forward kinematics outside limits", "robot", fk.model.Name(), "violations", len(sol.ErrorText))
	}
	return sol
}

// poseRobotMeshes moves the zero pose meshes (base, six links, tool) of a robot standing on base to the posed
// robot standing on posedBase.
func poseRobotMeshes(
	meshes []*spatialmath.Mesh,
	base, posedBase spatialmath.Plane,
	transforms [6]spatialmath.Pose,
) []*spatialmath.Mesh {
	toLocal := spatialmath.PoseInverse(base.Pose())
	toWorld := posedBase.Pose()
	out := make([]*spatialmath.Mesh, len(meshes))
	for i, m := range meshes {
		local := spatialmath.NewZeroPose()
		switch {
		case i == 0:
		case i <= 6:
			local = transforms[i-1]
		default:
			local = transforms[5]
		}
		out[i] = m.Transform(spatialmath.Compose(toWorld, spatialmath.Compose(local, toLocal)))
	}
	return out
}
