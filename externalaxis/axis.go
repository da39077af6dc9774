// Package externalaxis implements the external axes an ABB controller coordinates with a robot: linear
// tracks and rotational positioners. An axis maps the value of its logical channel in an
// ExternalJointPosition to a rigid transform of its link.
package externalaxis

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/rapidkin/referenceframe"
	"go.viam.com/rapidkin/spatialmath"
)

// Kind names the motion an external axis performs.
type Kind string

// The supported axis kinds.
const (
	KindLinear     = Kind("linear")
	KindRotational = Kind("rotational")
)

// Unassigned is the axis logic number of an axis the owning robot has not numbered yet.
const Unassigned = -1

// Axis is an external axis of an ABB robot cell.
type Axis interface {
	referenceframe.MechanicalUnit

	// Kind returns whether the axis is linear or rotational.
	Kind() Kind

	// AxisNumber returns the logical channel 0..5 the axis reads, or Unassigned.
	AxisNumber() int
	// AxisLogic returns the logical letter A..F matching AxisNumber, or "-1".
	AxisLogic() string
	// SetAxisNumber assigns the logical channel.
	SetAxisNumber(number int) error

	AttachmentPlane() spatialmath.Plane
	AxisPlane() spatialmath.Plane
	Limits() referenceframe.Limit
	MovesRobot() bool
	BaseMesh() *spatialmath.Mesh
	LinkMesh() *spatialmath.Mesh

	// JointValue returns the value the axis uses for ext: its channel value, or clamp(0, min, max) when
	// the channel is unconnected, and whether that value lies within the limits.
	JointValue(ext referenceframe.ExternalJointPosition) (float64, bool)

	// CalculateTransformationMatrix returns the transform of the link for ext and whether the value used
	// was within limits. Out of range values are still evaluated.
	CalculateTransformationMatrix(ext referenceframe.ExternalJointPosition) (spatialmath.Pose, bool)
	// CalculateTransformationMatrixSave is CalculateTransformationMatrix with the value clamped to the limits.
	CalculateTransformationMatrixSave(ext referenceframe.ExternalJointPosition) spatialmath.Pose
	// CalculatePosition returns the attachment plane moved by the link transform.
	CalculatePosition(ext referenceframe.ExternalJointPosition) (spatialmath.Plane, bool)
	// CalculatePositionSave is CalculatePosition with the value clamped to the limits.
	CalculatePositionSave(ext referenceframe.ExternalJointPosition) spatialmath.Plane

	// PoseMeshes returns the base mesh and the link mesh posed for ext, in that order.
	PoseMeshes(ext referenceframe.ExternalJointPosition) []*spatialmath.Mesh
	// PosedMeshes returns the meshes of the last PoseMeshes call.
	PosedMeshes() []*spatialmath.Mesh

	Clone() Axis
	IsValid() bool
	Validate() error
	String() string
}

// Config describes an external axis. Every field except the planes and limits is optional.
type Config struct {
	Name            string               `json:"name"`
	Kind            Kind                 `json:"kind,omitempty"`
	AttachmentPlane spatialmath.Plane    `json:"attachment_plane"`
	AxisPlane       spatialmath.Plane    `json:"axis_plane"`
	Limits          referenceframe.Limit `json:"limits"`
	BaseMesh        *spatialmath.Mesh    `json:"base_mesh,omitempty"`
	LinkMesh        *spatialmath.Mesh    `json:"link_mesh,omitempty"`
	AxisLogic       string               `json:"axis_logic,omitempty"`
	MovesRobot      bool                 `json:"moves_robot,omitempty"`
}

// New builds the axis described by cfg. An empty Kind means linear.
func New(cfg Config) (Axis, error) {
	switch cfg.Kind {
	case KindLinear, "":
		return NewLinearAxis(cfg)
	case KindRotational:
		return NewRotationalAxis(cfg)
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "%q", cfg.Kind)
	}
}

// ToConfig returns the config that rebuilds a.
func ToConfig(a Axis) Config {
	return Config{
		Name:            a.Name(),
		Kind:            a.Kind(),
		AttachmentPlane: a.AttachmentPlane(),
		AxisPlane:       a.AxisPlane(),
		Limits:          a.Limits(),
		BaseMesh:        a.BaseMesh(),
		LinkMesh:        a.LinkMesh(),
		AxisLogic:       a.AxisLogic(),
		MovesRobot:      a.MovesRobot(),
	}
}

// ParseAxisLogic parses an axis logic token: "-1" for unassigned, "0".."5", or a letter a..f in either case.
// An empty token is unassigned.
func ParseAxisLogic(token string) (int, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Unassigned, nil
	}
	if token == "-1" {
		return Unassigned, nil
	}
	if len(token) == 1 && token[0] >= '0' && int(token[0]-'0') < referenceframe.NumAxes {
		return int(token[0] - '0'), nil
	}
	if idx, err := referenceframe.AxisIndexFromLetter(token); err == nil {
		return idx, nil
	}
	return Unassigned, NewInvalidAxisLogicError(token)
}

// axis holds the state shared by linear and rotational axes.
type axis struct {
	name            string
	number          int
	attachmentPlane spatialmath.Plane
	axisPlane       spatialmath.Plane
	limits          referenceframe.Limit
	baseMesh        *spatialmath.Mesh
	linkMesh        *spatialmath.Mesh
	posedMeshes     []*spatialmath.Mesh
	movesRobot      bool
}

func newAxis(cfg Config) (axis, error) {
	number, err := ParseAxisLogic(cfg.AxisLogic)
	if err != nil {
		return axis{}, err
	}
	attachment := cfg.AttachmentPlane
	if attachment == (spatialmath.Plane{}) {
		attachment = cfg.AxisPlane
	}
	a := axis{
		name:            cfg.Name,
		number:          number,
		attachmentPlane: attachment,
		axisPlane:       cfg.AxisPlane,
		limits:          cfg.Limits,
		baseMesh:        cfg.BaseMesh.Clone(),
		linkMesh:        cfg.LinkMesh.Clone(),
		movesRobot:      cfg.MovesRobot,
	}
	a.posedMeshes = []*spatialmath.Mesh{a.baseMesh.Clone(), a.linkMesh.Clone()}
	return a, nil
}

func (a *axis) clone() axis {
	out := *a
	out.baseMesh = a.baseMesh.Clone()
	out.linkMesh = a.linkMesh.Clone()
	out.posedMeshes = spatialmath.CloneMeshes(a.posedMeshes)
	return out
}

func (a *axis) Name() string {
	return a.name
}

func (a *axis) AxisNumber() int {
	return a.number
}

func (a *axis) AxisLogic() string {
	return referenceframe.AxisLetter(a.number)
}

func (a *axis) SetAxisNumber(number int) error {
	if number < Unassigned || number >= referenceframe.NumAxes {
		return NewInvalidAxisLogicError(fmt.Sprint(number))
	}
	a.number = number
	return nil
}

func (a *axis) AttachmentPlane() spatialmath.Plane {
	return a.attachmentPlane
}

func (a *axis) AxisPlane() spatialmath.Plane {
	return a.axisPlane
}

func (a *axis) Limits() referenceframe.Limit {
	return a.limits
}

func (a *axis) DoF() []referenceframe.Limit {
	return []referenceframe.Limit{a.limits}
}

func (a *axis) MovesRobot() bool {
	return a.movesRobot
}

func (a *axis) BaseMesh() *spatialmath.Mesh {
	return a.baseMesh.Clone()
}

func (a *axis) LinkMesh() *spatialmath.Mesh {
	return a.linkMesh.Clone()
}

func (a *axis) PosedMeshes() []*spatialmath.Mesh {
	return spatialmath.CloneMeshes(a.posedMeshes)
}

func (a *axis) JointValue(ext referenceframe.ExternalJointPosition) (float64, bool) {
	if a.number == Unassigned {
		return a.limits.Clamp(0), true
	}
	value, defined := ext.Value(a.number).Value()
	if !defined {
		return a.limits.Clamp(0), true
	}
	return value, a.limits.Contains(value)
}

func (a *axis) jointValueSave(ext referenceframe.ExternalJointPosition) float64 {
	value, _ := a.JointValue(ext)
	return a.limits.Clamp(value)
}

func (a *axis) poseMeshes(link spatialmath.Pose) []*spatialmath.Mesh {
	a.posedMeshes = []*spatialmath.Mesh{a.baseMesh.Clone(), a.linkMesh.Transform(link)}
	return spatialmath.CloneMeshes(a.posedMeshes)
}

func (a *axis) transform(pose spatialmath.Pose) {
	a.attachmentPlane = a.attachmentPlane.Transform(pose)
	a.axisPlane = a.axisPlane.Transform(pose)
	a.baseMesh = a.baseMesh.Transform(pose)
	a.linkMesh = a.linkMesh.Transform(pose)
	for i, m := range a.posedMeshes {
		a.posedMeshes[i] = m.Transform(pose)
	}
}

func (a *axis) IsValid() bool {
	return a.Validate() == nil
}

func (a *axis) Validate() error {
	var err error
	if !a.attachmentPlane.IsValid() {
		err = multierr.Append(err, errors.Wrap(ErrInvalidAxis, "attachment plane is not set"))
	}
	if !a.axisPlane.IsValid() {
		err = multierr.Append(err, errors.Wrap(ErrInvalidAxis, "axis plane is not set"))
	}
	if !a.limits.IsValid() {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidAxis, "limits %v are not a valid interval", a.limits))
	}
	if a.number < Unassigned || a.number >= referenceframe.NumAxes {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidAxis, "axis number %d out of range", a.number))
	}
	if err != nil && a.name != "" {
		return errors.Wrapf(err, "external axis %q", a.name)
	}
	return err
}

func (a *axis) describe(label string) string {
	if !a.IsValid() {
		return "Invalid " + label
	}
	return fmt.Sprintf("%s (%s, logic %s)", label, a.name, a.AxisLogic())
}
