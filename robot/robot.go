// Package robot implements the ABB robot aggregate: internal axis geometry, tool, meshes and coordinated
// external axes, with the kinematic parameters derived from them kept up to date on every change.
package robot

import (
	"fmt"

	"github.com/golang/geo/r3"
	"go.uber.org/multierr"

	"go.viam.com/rapidkin/externalaxis"
	"go.viam.com/rapidkin/kinematics"
	"go.viam.com/rapidkin/logging"
	"go.viam.com/rapidkin/referenceframe"
	"go.viam.com/rapidkin/spatialmath"
	"go.viam.com/rapidkin/tool"
)

// numRobotMeshes is the number of meshes a robot owns: the base and six links. The tool mesh is added on top.
const numRobotMeshes = 7

// Config describes a robot. Planes and meshes are in world coordinates at the zero pose.
type Config struct {
	Name               string                 `json:"name"`
	BasePlane          spatialmath.Plane      `json:"base_plane"`
	MountingFrame      spatialmath.Plane      `json:"mounting_frame"`
	InternalAxisPlanes []spatialmath.Plane    `json:"internal_axis_planes"`
	InternalAxisLimits []referenceframe.Limit `json:"internal_axis_limits"`
	Tool               *tool.Config           `json:"tool,omitempty"`
	Meshes             []*spatialmath.Mesh    `json:"meshes,omitempty"`
	ExternalAxes       []externalaxis.Config  `json:"external_axes,omitempty"`
}

var (
	_ kinematics.Model              = (*Robot)(nil)
	_ referenceframe.MechanicalUnit = (*Robot)(nil)
)

// Robot is a six axis ABB robot with its tool and external axes.
type Robot struct {
	name               string
	basePlane          spatialmath.Plane
	mountingFrame      spatialmath.Plane
	internalAxisPlanes [6]spatialmath.Plane
	internalAxisLimits [6]referenceframe.Limit
	tool               *tool.Tool
	meshes             []*spatialmath.Mesh
	externalAxes       []externalaxis.Axis

	params             kinematics.Parameters
	lowerArmLength     float64
	upperArmLength     float64
	elbowLength        float64
	externalAxisPlanes [6]spatialmath.Plane
	externalAxisLimits [6]referenceframe.Limit
	posedMeshes        []*spatialmath.Mesh

	state  State
	logger logging.Logger
}

// New builds a robot from cfg. Structural problems (plane or limit counts, unparsable or conflicting external
// axes) are returned as errors; geometric problems leave the robot in StateInvalid.
func New(cfg Config, logger logging.Logger) (*Robot, error) {
	r := &Robot{
		name:          cfg.Name,
		basePlane:     cfg.BasePlane,
		mountingFrame: cfg.MountingFrame,
		state:         StateUninitialized,
		logger:        logging.OrNop(logger),
	}
	if len(cfg.InternalAxisPlanes) != 6 {
		return nil, kinematics.NewInvalidPlaneCountError(len(cfg.InternalAxisPlanes))
	}
	copy(r.internalAxisPlanes[:], cfg.InternalAxisPlanes)
	if len(cfg.InternalAxisLimits) != 6 {
		return nil, referenceframe.NewIncorrectDoFError(len(cfg.InternalAxisLimits), 6)
	}
	copy(r.internalAxisLimits[:], cfg.InternalAxisLimits)

	r.meshes = spatialmath.CloneMeshes(cfg.Meshes)
	if len(r.meshes) == 0 {
		r.meshes = make([]*spatialmath.Mesh, numRobotMeshes)
		for i := range r.meshes {
			r.meshes[i] = spatialmath.NewEmptyMesh()
		}
	}

	toolCfg := tool.Default().Config()
	if cfg.Tool != nil {
		toolCfg = *cfg.Tool
	}
	r.tool = r.attachTool(tool.New(toolCfg))

	axes := make([]externalaxis.Axis, 0, len(cfg.ExternalAxes))
	for _, axCfg := range cfg.ExternalAxes {
		ax, err := externalaxis.New(axCfg)
		if err != nil {
			return nil, err
		}
		axes = append(axes, ax)
	}
	if err := r.setExternalAxes(axes); err != nil {
		return nil, err
	}

	r.update()
	return r, nil
}

// NewFromParameters builds a robot on basePlane whose axis planes and mounting frame are reconstructed from OPW
// parameters.
func NewFromParameters(
	name string,
	params kinematics.Parameters,
	basePlane spatialmath.Plane,
	limits [6]referenceframe.Limit,
	meshes []*spatialmath.Mesh,
	logger logging.Logger,
) (*Robot, error) {
	planes, mountingFrame := params.AxisPlanes(basePlane)
	return New(Config{
		Name:               name,
		BasePlane:          basePlane,
		MountingFrame:      mountingFrame,
		InternalAxisPlanes: planes[:],
		InternalAxisLimits: limits[:],
		Meshes:             meshes,
	}, logger)
}

// attachTool moves t onto the mounting frame. A robot without a mounting frame keeps the tool where it is.
func (r *Robot) attachTool(t *tool.Tool) *tool.Tool {
	if !r.mountingFrame.IsValid() {
		return t.Clone()
	}
	return t.Attach(r.mountingFrame)
}

// update re-derives everything computed from the geometry and settles the validation state.
func (r *Robot) update() {
	r.state = StateAssembling
	r.updateExternalAxisFields()
	r.updateKinematics()
	if r.IsValid() {
		r.state = StateValid
	} else {
		r.state = StateInvalid
	}
}

func (r *Robot) updateExternalAxisFields() {
	for i := range r.externalAxisPlanes {
		r.externalAxisPlanes[i] = spatialmath.Plane{}
		r.externalAxisLimits[i] = referenceframe.Limit{
			Min: referenceframe.UndefinedAxisValue,
			Max: referenceframe.UndefinedAxisValue,
		}
	}
	for _, ax := range r.externalAxes {
		if n := ax.AxisNumber(); n != externalaxis.Unassigned {
			r.externalAxisPlanes[n] = ax.AxisPlane()
			r.externalAxisLimits[n] = ax.Limits()
		}
	}
}

func (r *Robot) updateKinematics() {
	r.params = kinematics.ParametersFromAxisPlanes(r.basePlane, r.internalAxisPlanes)
	r.lowerArmLength, r.upperArmLength, r.elbowLength = kinematics.ArmLengths(r.basePlane, r.internalAxisPlanes)
	r.logger.Debugw("derived kinematic parameters", "robot", r.name, "parameters", r.params.String())
}

// State returns the validation state.
func (r *Robot) State() State {
	return r.state
}

// Validate returns every failed invariant of the robot, or nil.
func (r *Robot) Validate() error {
	var err error
	if r.name == "" {
		err = multierr.Append(err, newInvalidRobotError("robot has no name"))
	}
	if !r.basePlane.IsValid() {
		err = multierr.Append(err, newInvalidRobotError("base plane is not set"))
	}
	if !r.mountingFrame.IsValid() {
		err = multierr.Append(err, newInvalidRobotError("mounting frame is not set"))
	}
	for i, pl := range r.internalAxisPlanes {
		if !pl.IsValid() {
			err = multierr.Append(err, newInvalidRobotError("internal axis plane %d is not set", i+1))
		}
	}
	for i, l := range r.internalAxisLimits {
		if !l.IsValid() {
			err = multierr.Append(err, newInvalidRobotError("internal axis limit %d %v is not a valid interval", i+1, l))
		}
	}
	if len(r.meshes) != numRobotMeshes {
		err = multierr.Append(err, newInvalidRobotError("expected %d meshes, got %d", numRobotMeshes, len(r.meshes)))
	}
	if toolErr := r.tool.Validate(); toolErr != nil {
		err = multierr.Append(err, newInvalidRobotError("%v", toolErr))
	}
	if !r.params.IsValid() {
		err = multierr.Append(err, newInvalidRobotError("kinematic parameters %v contain NaN", r.params))
	}
	err = multierr.Append(err, checkExternalAxes(r.externalAxes))
	for _, ax := range r.externalAxes {
		err = multierr.Append(err, ax.Validate())
	}
	return err
}

// IsValid reports whether Validate passes.
func (r *Robot) IsValid() bool {
	return r.Validate() == nil
}

// Name returns the robot name.
func (r *Robot) Name() string {
	return r.name
}

// BasePlane returns the plane the robot stands on.
func (r *Robot) BasePlane() spatialmath.Plane {
	return r.basePlane
}

// MountingFrame returns the flange plane at the zero pose.
func (r *Robot) MountingFrame() spatialmath.Plane {
	return r.mountingFrame
}

// InternalAxisPlanes returns the six internal axis planes at the zero pose.
func (r *Robot) InternalAxisPlanes() [6]spatialmath.Plane {
	return r.internalAxisPlanes
}

// InternalAxisLimits returns the limits of the six internal axes in degrees.
func (r *Robot) InternalAxisLimits() [6]referenceframe.Limit {
	return r.internalAxisLimits
}

// KinematicParameters returns the OPW parameters derived from the internal axis planes.
func (r *Robot) KinematicParameters() kinematics.Parameters {
	return r.params
}

// LowerArmLength returns the distance between axis 2 and axis 3.
func (r *Robot) LowerArmLength() float64 {
	return r.lowerArmLength
}

// UpperArmLength returns the distance between axis 3 and axis 5.
func (r *Robot) UpperArmLength() float64 {
	return r.upperArmLength
}

// ElbowLength returns the sum of the lower and upper arm lengths.
func (r *Robot) ElbowLength() float64 {
	return r.elbowLength
}

// Tool returns a copy of the tool attached to the mounting frame.
func (r *Robot) Tool() *tool.Tool {
	return r.tool.Clone()
}

// ExternalAxes returns copies of the attached external axes in attachment order.
func (r *Robot) ExternalAxes() []externalaxis.Axis {
	out := make([]externalaxis.Axis, len(r.externalAxes))
	for i, ax := range r.externalAxes {
		out[i] = ax.Clone()
	}
	return out
}

// ExternalAxisPlanes returns the axis plane of each external axis at its logic number; unused channels hold the
// unset plane.
func (r *Robot) ExternalAxisPlanes() [6]spatialmath.Plane {
	return r.externalAxisPlanes
}

// ExternalAxisLimits returns the limits of each external axis at its logic number; unused channels hold
// [9E9, 9E9].
func (r *Robot) ExternalAxisLimits() [6]referenceframe.Limit {
	return r.externalAxisLimits
}

// Meshes returns the base mesh, the six link meshes and the tool mesh at the zero pose.
func (r *Robot) Meshes() []*spatialmath.Mesh {
	return append(spatialmath.CloneMeshes(r.meshes), r.tool.Mesh())
}

// PosedMeshes returns the meshes of the last PoseMeshes call.
func (r *Robot) PosedMeshes() []*spatialmath.Mesh {
	return spatialmath.CloneMeshes(r.posedMeshes)
}

// DoF returns the internal axis limits.
func (r *Robot) DoF() []referenceframe.Limit {
	return r.internalAxisLimits[:]
}

// BoundingBox covers the robot meshes at the zero pose and the sphere the flange plus tool can reach around
// axis 2.
func (r *Robot) BoundingBox() spatialmath.Box {
	box := spatialmath.MeshesBoundingBox(r.Meshes()...)
	if !r.IsValid() {
		return box
	}
	reach := r.elbowLength + r.params.C4 + r.tool.Offset().Point().Norm()
	shoulder := r.internalAxisPlanes[1].Origin
	return box.
		Include(shoulder.Add(r3.Vector{X: reach, Y: reach, Z: reach})).
		Include(shoulder.Sub(r3.Vector{X: reach, Y: reach, Z: reach}))
}

// Config returns the config that rebuilds the robot.
func (r *Robot) Config() Config {
	toolCfg := r.tool.Config()
	cfg := Config{
		Name:               r.name,
		BasePlane:          r.basePlane,
		MountingFrame:      r.mountingFrame,
		InternalAxisPlanes: append([]spatialmath.Plane(nil), r.internalAxisPlanes[:]...),
		InternalAxisLimits: append([]referenceframe.Limit(nil), r.internalAxisLimits[:]...),
		Tool:               &toolCfg,
		Meshes:             spatialmath.CloneMeshes(r.meshes),
	}
	for _, ax := range r.externalAxes {
		cfg.ExternalAxes = append(cfg.ExternalAxes, externalaxis.ToConfig(ax))
	}
	return cfg
}

// Clone returns a deep copy.
func (r *Robot) Clone() *Robot {
	out := *r
	out.tool = r.tool.Clone()
	out.meshes = spatialmath.CloneMeshes(r.meshes)
	out.posedMeshes = spatialmath.CloneMeshes(r.posedMeshes)
	out.externalAxes = r.ExternalAxes()
	return &out
}

func (r *Robot) String() string {
	if r.state != StateValid {
		return "Invalid Robot"
	}
	return fmt.Sprintf("Robot (%s)", r.name)
}
