// Package tool describes the end effector mounted on a robot flange.
package tool

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/rapidkin/rapid"
	"go.viam.com/rapidkin/spatialmath"
)

// DefaultName is the name of the controller's built in tool.
const DefaultName = "tool0"

// defaultMass is the mass in kg the controller assigns to tool0.
const defaultMass = 0.001

// Config describes a tool. AttachmentPlane is where the tool meets the robot flange and ToolPlane is the tool
// center point, both in the same coordinate system.
type Config struct {
	Name            string            `json:"name"`
	AttachmentPlane spatialmath.Plane `json:"attachment_plane"`
	ToolPlane       spatialmath.Plane `json:"tool_plane"`
	Mesh            *spatialmath.Mesh `json:"mesh,omitempty"`
	Mass            float64           `json:"mass"`
	CenterOfGravity r3.Vector         `json:"center_of_gravity"`
}

// Tool is an end effector with a tool center point.
type Tool struct {
	name            string
	attachmentPlane spatialmath.Plane
	toolPlane       spatialmath.Plane
	mesh            *spatialmath.Mesh
	mass            float64
	centerOfGravity r3.Vector
}

// New creates a tool. Unset planes default to world XY and a missing mesh to an empty mesh.
func New(cfg Config) *Tool {
	t := &Tool{
		name:            cfg.Name,
		attachmentPlane: cfg.AttachmentPlane,
		toolPlane:       cfg.ToolPlane,
		mesh:            cfg.Mesh.Clone(),
		mass:            cfg.Mass,
		centerOfGravity: cfg.CenterOfGravity,
	}
	if t.attachmentPlane == (spatialmath.Plane{}) {
		t.attachmentPlane = spatialmath.WorldXY()
	}
	if t.toolPlane == (spatialmath.Plane{}) {
		t.toolPlane = t.attachmentPlane
	}
	return t
}

// Default returns tool0: no offset, no mesh.
func Default() *Tool {
	return New(Config{
		Name:            DefaultName,
		Mass:            defaultMass,
		CenterOfGravity: r3.Vector{Z: 0.001},
	})
}

// Name returns the tool name.
func (t *Tool) Name() string {
	return t.name
}

// AttachmentPlane returns the plane the tool is mounted with.
func (t *Tool) AttachmentPlane() spatialmath.Plane {
	return t.attachmentPlane
}

// ToolPlane returns the tool center point.
func (t *Tool) ToolPlane() spatialmath.Plane {
	return t.toolPlane
}

// Mesh returns a copy of the tool mesh.
func (t *Tool) Mesh() *spatialmath.Mesh {
	return t.mesh.Clone()
}

// Mass returns the tool mass in kg.
func (t *Tool) Mass() float64 {
	return t.mass
}

// CenterOfGravity returns the center of gravity relative to the attachment plane.
func (t *Tool) CenterOfGravity() r3.Vector {
	return t.centerOfGravity
}

// Offset returns the tool center point relative to the attachment plane.
func (t *Tool) Offset() spatialmath.Pose {
	return spatialmath.PoseBetween(t.attachmentPlane.Pose(), t.toolPlane.Pose())
}

// Transform moves the tool geometry by pose.
func (t *Tool) Transform(pose spatialmath.Pose) {
	t.attachmentPlane = t.attachmentPlane.Transform(pose)
	t.toolPlane = t.toolPlane.Transform(pose)
	t.mesh = t.mesh.Transform(pose)
}

// Attach returns a copy of the tool moved so its attachment plane coincides with mountingFrame.
func (t *Tool) Attach(mountingFrame spatialmath.Plane) *Tool {
	out := t.Clone()
	out.Transform(spatialmath.PlaneToPlane(t.attachmentPlane, mountingFrame))
	return out
}

// Clone returns a deep copy.
func (t *Tool) Clone() *Tool {
	out := *t
	out.mesh = t.mesh.Clone()
	return &out
}

// Config returns the config that rebuilds the tool.
func (t *Tool) Config() Config {
	return Config{
		Name:            t.name,
		AttachmentPlane: t.attachmentPlane,
		ToolPlane:       t.toolPlane,
		Mesh:            t.mesh.Clone(),
		Mass:            t.mass,
		CenterOfGravity: t.centerOfGravity,
	}
}

// Validate checks the planes and the mass.
func (t *Tool) Validate() error {
	if t.name == "" {
		return errors.New("tool has no name")
	}
	if !t.attachmentPlane.IsValid() || !t.toolPlane.IsValid() {
		return errors.Errorf("tool %q has an unset plane", t.name)
	}
	if t.mass <= 0 {
		return errors.Errorf("tool %q must have a positive mass, got %v", t.name, t.mass)
	}
	return nil
}

// IsValid reports whether Validate passes.
func (t *Tool) IsValid() bool {
	return t.Validate() == nil
}

// ToRAPID returns the tooldata literal
// [TRUE, [[x, y, z], [q1, q2, q3, q4]], [mass, [cogx, cogy, cogz], [1, 0, 0, 0], 0, 0, 0]].
func (t *Tool) ToRAPID() string {
	load := rapid.FormatList(
		rapid.FormatNumber(t.mass),
		rapid.FormatPoint(t.centerOfGravity),
		rapid.FormatNumbers(1, 0, 0, 0),
		"0", "0", "0",
	)
	return rapid.FormatList(rapid.FormatBool(true), rapid.FormatPose(t.Offset()), load)
}

// ToRAPIDDeclaration returns the PERS tooldata declaration of the tool.
func (t *Tool) ToRAPIDDeclaration(scope rapid.Scope) string {
	return rapid.Declaration{
		Scope:        scope,
		VariableType: rapid.VariableTypePers,
		DataType:     "tooldata",
		Name:         t.name,
		Value:        t.ToRAPID(),
	}.String()
}

func (t *Tool) String() string {
	if !t.IsValid() {
		return "Invalid Tool"
	}
	return fmt.Sprintf("Tool (%s)", t.name)
}
