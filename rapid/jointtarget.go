package rapid

import (
	"encoding/json"

	"github.com/pkg/errors"

	"go.viam.com/rapidkin/referenceframe"
	"go.viam.com/rapidkin/utils"
)

// scopedSince is the first document version that stores scope and variable type.
const scopedSince = "2.0.0"

// ParseJointPosition parses a robax literal such as [0, 0, 0, 0, 45, 0].
func ParseJointPosition(text string) (referenceframe.RobotJointPosition, error) {
	lit, err := ParseLiteral(text)
	if err != nil {
		return referenceframe.RobotJointPosition{}, err
	}
	return robotJointPositionFromLiteral(lit)
}

// ParseExternalJointPosition parses an extax literal such as [500, 9E9, 9E9, 9E9, 9E9, 9E9].
func ParseExternalJointPosition(text string) (referenceframe.ExternalJointPosition, error) {
	lit, err := ParseLiteral(text)
	if err != nil {
		return referenceframe.ExternalJointPosition{}, err
	}
	return externalJointPositionFromLiteral(lit)
}

func robotJointPositionFromLiteral(lit Literal) (referenceframe.RobotJointPosition, error) {
	values, err := lit.Floats(referenceframe.NumAxes)
	if err != nil {
		return referenceframe.RobotJointPosition{}, err
	}
	return referenceframe.RobotJointPositionFromSlice(values)
}

func externalJointPositionFromLiteral(lit Literal) (referenceframe.ExternalJointPosition, error) {
	values, err := lit.Floats(referenceframe.NumAxes)
	if err != nil {
		return referenceframe.ExternalJointPosition{}, err
	}
	return referenceframe.ExternalJointPositionFromSlice(values)
}

// JointTarget is a RAPID jointtarget: a robot joint position plus an external joint position.
type JointTarget struct {
	Name                  string
	Scope                 Scope
	VariableType          VariableType
	RobotJointPosition    referenceframe.RobotJointPosition
	ExternalJointPosition referenceframe.ExternalJointPosition
}

// NewJointTarget returns a global VAR joint target.
func NewJointTarget(
	name string,
	robot referenceframe.RobotJointPosition,
	external referenceframe.ExternalJointPosition,
) *JointTarget {
	return &JointTarget{
		Name:                  name,
		Scope:                 ScopeGlobal,
		VariableType:          VariableTypeVar,
		RobotJointPosition:    robot,
		ExternalJointPosition: external,
	}
}

// ToRAPID returns the jointtarget literal [[robax], [extax]].
func (jt *JointTarget) ToRAPID() string {
	return FormatList(jt.RobotJointPosition.ToRAPID(), jt.ExternalJointPosition.ToRAPID())
}

// ToRAPIDDeclaration returns the declaration statement of the target.
func (jt *JointTarget) ToRAPIDDeclaration() string {
	return Declaration{
		Scope:        jt.Scope,
		VariableType: jt.VariableType,
		DataType:     "jointtarget",
		Name:         jt.Name,
		Value:        jt.ToRAPID(),
	}.String()
}

// ParseJointTarget parses a jointtarget declaration.
func ParseJointTarget(text string) (*JointTarget, error) {
	decl, lit, err := parseTypedDeclaration(text, "jointtarget")
	if err != nil {
		return nil, err
	}
	if !lit.IsList || len(lit.Items) != 2 {
		return nil, errors.Wrapf(ErrInvalidDeclaration, "jointtarget %s needs [robax, extax]", decl.Name)
	}
	robax, err := robotJointPositionFromLiteral(lit.Items[0])
	if err != nil {
		return nil, errors.Wrapf(err, "robax of %s", decl.Name)
	}
	extax, err := externalJointPositionFromLiteral(lit.Items[1])
	if err != nil {
		return nil, errors.Wrapf(err, "extax of %s", decl.Name)
	}
	return &JointTarget{
		Name:                  decl.Name,
		Scope:                 decl.Scope,
		VariableType:          decl.VariableType,
		RobotJointPosition:    robax,
		ExternalJointPosition: extax,
	}, nil
}

func (jt *JointTarget) String() string {
	return "Joint Target (" + jt.Name + ")"
}

type jointTargetDocument struct {
	Version      int                                  `json:"version"`
	Name         string                               `json:"name"`
	Scope        *Scope                               `json:"scope,omitempty"`
	VariableType *VariableType                        `json:"variable_type,omitempty"`
	Robax        referenceframe.RobotJointPosition    `json:"robax"`
	Extax        referenceframe.ExternalJointPosition `json:"extax"`
}

// MarshalJSON writes a document tagged with the current version.
func (jt *JointTarget) MarshalJSON() ([]byte, error) {
	scope, vt := jt.Scope, jt.VariableType
	return json.Marshal(jointTargetDocument{
		Version:      utils.CurrentVersionNumber(),
		Name:         jt.Name,
		Scope:        &scope,
		VariableType: &vt,
		Robax:        jt.RobotJointPosition,
		Extax:        jt.ExternalJointPosition,
	})
}

// UnmarshalJSON reads a document of any supported version. Scope and variable type are only read from
// documents written by version 2.0.0 or later.
func (jt *JointTarget) UnmarshalJSON(data []byte) error {
	var doc jointTargetDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if err := utils.CheckVersionNumber(doc.Version); err != nil {
		return err
	}
	*jt = *NewJointTarget(doc.Name, doc.Robax, doc.Extax)
	jt.Scope, jt.VariableType = scopeFromDocument(doc.Version, doc.Scope, doc.VariableType)
	return nil
}

func scopeFromDocument(version int, scope *Scope, vt *VariableType) (Scope, VariableType) {
	outScope, outType := ScopeGlobal, VariableTypeVar
	if !utils.VersionAtLeast(version, scopedSince) {
		return outScope, outType
	}
	if scope != nil {
		outScope = *scope
	}
	if vt != nil {
		outType = *vt
	}
	return outScope, outType
}
