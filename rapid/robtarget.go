package rapid

import (
	"encoding/json"
	"math"

	"github.com/pkg/errors"

	"go.viam.com/rapidkin/referenceframe"
	"go.viam.com/rapidkin/spatialmath"
	"go.viam.com/rapidkin/utils"
)

// RobotTarget is a RAPID robtarget: a TCP plane in the work object frame, the axis configuration and an external
// joint position.
type RobotTarget struct {
	Name                  string
	Scope                 Scope
	VariableType          VariableType
	Plane                 spatialmath.Plane
	AxisConfig            int
	ExternalJointPosition referenceframe.ExternalJointPosition
}

// NewRobotTarget returns a global VAR robot target.
func NewRobotTarget(
	name string,
	plane spatialmath.Plane,
	axisConfig int,
	external referenceframe.ExternalJointPosition,
) *RobotTarget {
	return &RobotTarget{
		Name:                  name,
		Scope:                 ScopeGlobal,
		VariableType:          VariableTypeVar,
		Plane:                 plane,
		AxisConfig:            axisConfig,
		ExternalJointPosition: external,
	}
}

// ToRAPID returns the robtarget literal [[x, y, z], [q1, q2, q3, q4], [0, 0, 0, cfx], [extax]].
func (rt *RobotTarget) ToRAPID() string {
	pose := rt.Plane.Pose()
	return FormatList(
		FormatPoint(pose.Point()),
		FormatQuaternion(pose.Orientation().Quaternion()),
		FormatNumbers(0, 0, 0, float64(rt.AxisConfig)),
		rt.ExternalJointPosition.ToRAPID(),
	)
}

// ToRAPIDDeclaration returns the declaration statement of the target.
func (rt *RobotTarget) ToRAPIDDeclaration() string {
	return Declaration{
		Scope:        rt.Scope,
		VariableType: rt.VariableType,
		DataType:     "robtarget",
		Name:         rt.Name,
		Value:        rt.ToRAPID(),
	}.String()
}

// ParseRobotTarget parses a robtarget declaration.
func ParseRobotTarget(text string) (*RobotTarget, error) {
	decl, lit, err := parseTypedDeclaration(text, "robtarget")
	if err != nil {
		return nil, err
	}
	if !lit.IsList || len(lit.Items) != 4 {
		return nil, errors.Wrapf(ErrInvalidDeclaration, "robtarget %s needs [trans, rot, robconf, extax]", decl.Name)
	}
	pose, err := Literal{IsList: true, Items: lit.Items[:2]}.Pose()
	if err != nil {
		return nil, errors.Wrapf(err, "pose of %s", decl.Name)
	}
	conf, err := lit.Items[2].Floats(4)
	if err != nil {
		return nil, errors.Wrapf(err, "robconf of %s", decl.Name)
	}
	extax, err := externalJointPositionFromLiteral(lit.Items[3])
	if err != nil {
		return nil, errors.Wrapf(err, "extax of %s", decl.Name)
	}
	return &RobotTarget{
		Name:                  decl.Name,
		Scope:                 decl.Scope,
		VariableType:          decl.VariableType,
		Plane:                 spatialmath.PlaneFromPose(pose),
		AxisConfig:            int(math.Round(conf[3])),
		ExternalJointPosition: extax,
	}, nil
}

func (rt *RobotTarget) String() string {
	return "Robot Target (" + rt.Name + ")"
}

type robotTargetDocument struct {
	Version      int                                  `json:"version"`
	Name         string                               `json:"name"`
	Scope        *Scope                               `json:"scope,omitempty"`
	VariableType *VariableType                        `json:"variable_type,omitempty"`
	Plane        spatialmath.Plane                    `json:"plane"`
	AxisConfig   int                                  `json:"axis_config"`
	Extax        referenceframe.ExternalJointPosition `json:"extax"`
}

// MarshalJSON writes a document tagged with the current version.
func (rt *RobotTarget) MarshalJSON() ([]byte, error) {
	scope, vt := rt.Scope, rt.VariableType
	return json.Marshal(robotTargetDocument{
		Version:      utils.CurrentVersionNumber(),
		Name:         rt.Name,
		Scope:        &scope,
		VariableType: &vt,
		Plane:        rt.Plane,
		AxisConfig:   rt.AxisConfig,
		Extax:        rt.ExternalJointPosition,
	})
}

// UnmarshalJSON reads a document of any supported version.
func (rt *RobotTarget) UnmarshalJSON(data []byte) error {
	var doc robotTargetDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if err := utils.CheckVersionNumber(doc.Version); err != nil {
		return err
	}
	*rt = *NewRobotTarget(doc.Name, doc.Plane, doc.AxisConfig, doc.Extax)
	rt.Scope, rt.VariableType = scopeFromDocument(doc.Version, doc.Scope, doc.VariableType)
	return nil
}
