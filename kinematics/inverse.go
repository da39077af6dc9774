package kinematics

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/rapidkin/externalaxis"
	"go.viam.com/rapidkin/logging"
	"go.viam.com/rapidkin/referenceframe"
	"go.viam.com/rapidkin/spatialmath"
	"go.viam.com/rapidkin/utils"
)

// Axis configuration bits.
const (
	ConfigWristFlipped = 1 << iota
	ConfigElbowDown
	ConfigShoulderBack

	// NumConfigurations is the number of closed form branches.
	NumConfigurations = 8
)

// singularTolerance is the distance from 0 or 180 degrees below which axis 5 is treated as singular.
const singularTolerance = 1e-9

// InverseSolution is one closed form solution for a target plane.
type InverseSolution struct {
	AxisConfig            int
	RobotJointPosition    referenceframe.RobotJointPosition
	ExternalJointPosition referenceframe.ExternalJointPosition
	// Reachable is false when the target lies outside the workspace and the solution is a best effort.
	Reachable bool
	ErrorText []string
	InLimits  bool
}

// InverseKinematics solves the joint position of a model for a TCP target plane with the OPW closed form.
type InverseKinematics struct {
	model  Model
	logger logging.Logger
}

// NewInverseKinematics creates an inverse solver for model.
func NewInverseKinematics(model Model, logger logging.Logger) *InverseKinematics {
	return &InverseKinematics{model: model, logger: logging.OrNop(logger)}
}

// Calculate returns the solution of target in the branch named by axisConfig. Limit violations and unreachable
// targets are reported in the solution, not as errors.
func (ik *InverseKinematics) Calculate(
	target spatialmath.Plane,
	axisConfig int,
	ext referenceframe.ExternalJointPosition,
) (*InverseSolution, error) {
	if axisConfig < 0 || axisConfig >= NumConfigurations {
		return nil, errors.Wrapf(ErrInvalidAxisConfig, "got %d", axisConfig)
	}
	flange, params, ext, err := ik.prepare(target, ext)
	if err != nil {
		return nil, err
	}
	return ik.solve(flange, params, axisConfig, ext), nil
}

// CalculateAll returns the solutions of all eight branches, indexed by axis configuration.
func (ik *InverseKinematics) CalculateAll(
	target spatialmath.Plane,
	ext referenceframe.ExternalJointPosition,
) ([]*InverseSolution, error) {
	flange, params, ext, err := ik.prepare(target, ext)
	if err != nil {
		return nil, err
	}
	out := make([]*InverseSolution, NumConfigurations)
	for cfg := range out {
		out[cfg] = ik.solve(flange, params, cfg, ext)
	}
	return out, nil
}

// Configuration returns the branch a joint position lies in.
func (ik *InverseKinematics) Configuration(joints referenceframe.RobotJointPosition) int {
	return Configuration(ik.model.KinematicParameters(), joints)
}

// Configuration returns the branch a joint position lies in for a robot with the given parameters.
func Configuration(params Parameters, joints referenceframe.RobotJointPosition) int {
	localPlanes, localMounting := params.LocalAxisPlanes()
	transforms := jointTransforms(localPlanes, joints)
	flange := localMounting.Transform(transforms[5])
	wrist := flange.Origin.Sub(flange.ZAxis().Mul(params.C4))

	theta1 := utils.DegToRad(joints.Get(0))
	reach := wrist.X*math.Cos(theta1) + wrist.Y*math.Sin(theta1)
	phi := math.Atan2(params.A2, params.C3)
	theta3 := utils.DegToRad(joints.Get(2))

	cfg := 0
	if reach < 0 {
		cfg |= ConfigShoulderBack
	}
	if math.Cos(theta3+phi) < 0 {
		cfg |= ConfigElbowDown
	}
	if utils.WrapAngleDeg(joints.Get(4)) < 0 {
		cfg |= ConfigWristFlipped
	}
	return cfg
}

// prepare resolves the external axes for target and returns the flange target in the robot base frame.
func (ik *InverseKinematics) prepare(
	target spatialmath.Plane,
	ext referenceframe.ExternalJointPosition,
) (spatialmath.Pose, Parameters, referenceframe.ExternalJointPosition, error) {
	params := ik.model.KinematicParameters()
	if !params.IsValid() {
		return nil, params, ext, ErrInvalidParameters
	}
	if !params.HasSphericalWrist() {
		return nil, params, ext, errors.Wrapf(ErrNonSphericalWrist, "a3 = %v", params.A3)
	}

	mover := movingAxis(ik.model)
	ext = ik.resolveMovingAxis(mover, target.Origin, ext)
	base, _ := positionedBasePlane(ik.model, mover, ext)

	flangeWorld := spatialmath.Compose(target.Pose(), spatialmath.PoseInverse(ik.model.Tool().Offset()))
	return spatialmath.PoseBetween(base.Pose(), flangeWorld), params, ext, nil
}

// resolveMovingAxis fills an unconnected channel of the robot moving axis. A linear axis takes the value that brings
// the robot base closest to the target; a rotational axis takes clamp(0, min, max).
func (ik *InverseKinematics) resolveMovingAxis(
	mover externalaxis.Axis,
	target r3.Vector,
	ext referenceframe.ExternalJointPosition,
) referenceframe.ExternalJointPosition {
	if mover == nil || mover.AxisNumber() == externalaxis.Unassigned || ext.IsDefined(mover.AxisNumber()) {
		return ext
	}
	value, _ := mover.JointValue(ext)
	if linear, ok := mover.(*externalaxis.LinearAxis); ok {
		value = linear.ClosestValue(ik.model.BasePlane().Origin, target)
	}
	ext.Set(mover.AxisNumber(), value)
	ik.logger.Debugw("resolved robot moving external axis", "axis", mover.Name(), "value", value)
	return ext
}

func (ik *InverseKinematics) solve(
	flange spatialmath.Pose,
	params Parameters,
	axisConfig int,
	ext referenceframe.ExternalJointPosition,
) *InverseSolution {
	shoulderBack := axisConfig&ConfigShoulderBack != 0
	elbowDown := axisConfig&ConfigElbowDown != 0
	wristFlipped := axisConfig&ConfigWristFlipped != 0
	reachable := true

	flangeRotation := flange.Orientation().RotationMatrix()
	wrist := flange.Point().Sub(flangeRotation.Col(2).Mul(params.C4))

	// axis 1
	rhoSquared := wrist.X*wrist.X + wrist.Y*wrist.Y
	reachSquared := rhoSquared - params.B*params.B
	if reachSquared < 0 {
		reachable = false
		reachSquared = 0
	}
	reach := math.Sqrt(reachSquared)
	if shoulderBack {
		reach = -reach
	}
	theta1 := math.Atan2(wrist.Y, wrist.X) - math.Atan2(-params.B, reach)

	// axes 2 and 3
	dx := reach - params.A1
	dz := wrist.Z - params.C1
	upper := math.Hypot(params.C3, params.A2)
	phi := math.Atan2(params.A2, params.C3)
	s := (params.C2*params.C2 + upper*upper - dx*dx - dz*dz) / (2 * params.C2 * upper)
	if s > 1 || s < -1 {
		reachable = false
		s = utils.Clamp(s, -1, 1)
	}
	theta3 := math.Asin(s) - phi
	if elbowDown {
		theta3 = math.Pi - math.Asin(s) - phi
	}
	ux := params.C3*math.Cos(theta3) - params.A2*math.Sin(theta3)
	uz := params.C2 - params.C3*math.Sin(theta3) - params.A2*math.Cos(theta3)
	theta2 := math.Atan2(dx, dz) - math.Atan2(ux, uz)

	// wrist: M = R_arm^T * R_flange * R_flange0^T = Rx(theta4) Ry(theta5) Rx(theta6)
	_, localMounting := params.LocalAxisPlanes()
	zeroRotation := localMounting.Pose().Orientation().RotationMatrix()
	arm := rotationZ(theta1).Mul(rotationY(theta2 + theta3))
	m := arm.Transpose().Mul(flangeRotation).Mul(zeroRotation.Transpose())
	theta4, theta5, theta6 := wristAngles(m, wristFlipped)

	joints := referenceframe.NewRobotJointPosition(
		utils.WrapAngleDeg(utils.RadToDeg(theta1)),
		utils.WrapAngleDeg(utils.RadToDeg(theta2)),
		utils.WrapAngleDeg(utils.RadToDeg(theta3)),
		utils.WrapAngleDeg(utils.RadToDeg(theta4)),
		utils.WrapAngleDeg(utils.RadToDeg(theta5)),
		utils.WrapAngleDeg(utils.RadToDeg(theta6)),
	)

	sol := &InverseSolution{
		AxisConfig:            axisConfig,
		RobotJointPosition:    joints,
		ExternalJointPosition: ext,
		Reachable:             reachable,
	}
	if !reachable {
		sol.ErrorText = append(sol.ErrorText, "The target plane is out of reach of robot "+ik.model.Name()+".")
		ik.logger.Warnw("inverse kinematics target out of reach", "robot", ik.model.Name(), "config", axisConfig)
	}
	sol.ErrorText = append(sol.ErrorText, CheckInternalAxisLimits(ik.model.Name(), ik.model.InternalAxisLimits(), joints)...)
	sol.ErrorText = append(sol.ErrorText, CheckExternalAxisLimits(ik.model.ExternalAxes(), ext)...)
	sol.InLimits = len(sol.ErrorText) == 0
	return sol
}

// wristAngles decomposes m = Rx(theta4) Ry(theta5) Rx(theta6). At the singularities theta4 is 0.
func wristAngles(m *spatialmath.RotationMatrix, flipped bool) (theta4, theta5, theta6 float64) {
	c5 := utils.Clamp(m.At(0, 0), -1, 1)
	theta5 = math.Acos(c5)
	switch {
	case theta5 < singularTolerance:
		return 0, 0, math.Atan2(m.At(2, 1), m.At(1, 1))
	case math.Pi-theta5 < singularTolerance:
		return 0, math.Pi, -math.Atan2(m.At(2, 1), m.At(1, 1))
	case flipped:
		return math.Atan2(-m.At(1, 0), m.At(2, 0)), -theta5, math.Atan2(-m.At(0, 1), -m.At(0, 2))
	default:
		return math.Atan2(m.At(1, 0), -m.At(2, 0)), theta5, math.Atan2(m.At(0, 1), m.At(0, 2))
	}
}

func rotationZ(theta float64) *spatialmath.RotationMatrix {
	c, s := math.Cos(theta), math.Sin(theta)
	return spatialmath.NewRotationMatrixFromAxes(r3.Vector{X: c, Y: s}, r3.Vector{X: -s, Y: c}, r3.Vector{Z: 1})
}

func rotationY(theta float64) *spatialmath.RotationMatrix {
	c, s := math.Cos(theta), math.Sin(theta)
	return spatialmath.NewRotationMatrixFromAxes(r3.Vector{X: c, Z: -s}, r3.Vector{Y: 1}, r3.Vector{X: s, Z: c})
}

// ClosestSolution returns the solution whose internal joint position is nearest to seed in the squared norm of
// the angular differences.
func ClosestSolution(seed referenceframe.RobotJointPosition, solutions []*InverseSolution) *InverseSolution {
	var best *InverseSolution
	dist := math.Inf(1)
	for _, sol := range solutions {
		if sol == nil {
			continue
		}
		diff := make([]float64, referenceframe.NumAxes)
		for i := range diff {
			diff[i] = utils.AngleDiffDeg(seed.Get(i), sol.RobotJointPosition.Get(i))
		}
		if d := squaredNorm(diff); d < dist {
			dist = d
			best = sol
		}
	}
	return best
}

func squaredNorm(vec []float64) float64 {
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	return norm
}
