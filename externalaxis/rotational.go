package externalaxis

import (
	"math"

	"go.viam.com/rapidkin/referenceframe"
	"go.viam.com/rapidkin/spatialmath"
	"go.viam.com/rapidkin/utils"
)

// boundingBoxStep is the largest angle, in degrees, between two link samples of a rotational bounding box.
const boundingBoxStep = 5.0

// RotationalAxis is a positioner that rotates its link about the Z axis of its axis plane, through the plane
// origin. Values are in degrees.
type RotationalAxis struct {
	axis
}

// NewRotationalAxis creates a rotational axis from cfg; the Kind field is ignored.
func NewRotationalAxis(cfg Config) (*RotationalAxis, error) {
	base, err := newAxis(cfg)
	if err != nil {
		return nil, err
	}
	return &RotationalAxis{axis: base}, nil
}

// Kind returns KindRotational.
func (ra *RotationalAxis) Kind() Kind {
	return KindRotational
}

func (ra *RotationalAxis) transformAt(degrees float64) spatialmath.Pose {
	return spatialmath.NewRotationAboutAxis(ra.axisPlane.Origin, ra.axisPlane.ZAxis(), utils.DegToRad(degrees))
}

// CalculateTransformationMatrix rotates by the channel value about the axis line.
func (ra *RotationalAxis) CalculateTransformationMatrix(ext referenceframe.ExternalJointPosition) (spatialmath.Pose, bool) {
	value, inLimits := ra.JointValue(ext)
	return ra.transformAt(value), inLimits
}

// CalculateTransformationMatrixSave rotates by the channel value clamped to the limits.
func (ra *RotationalAxis) CalculateTransformationMatrixSave(ext referenceframe.ExternalJointPosition) spatialmath.Pose {
	return ra.transformAt(ra.jointValueSave(ext))
}

// CalculatePosition returns the attachment plane rotated by the channel value.
func (ra *RotationalAxis) CalculatePosition(ext referenceframe.ExternalJointPosition) (spatialmath.Plane, bool) {
	pose, inLimits := ra.CalculateTransformationMatrix(ext)
	return ra.attachmentPlane.Transform(pose), inLimits
}

// CalculatePositionSave returns the attachment plane rotated by the clamped channel value.
func (ra *RotationalAxis) CalculatePositionSave(ext referenceframe.ExternalJointPosition) spatialmath.Plane {
	return ra.attachmentPlane.Transform(ra.CalculateTransformationMatrixSave(ext))
}

// PoseMeshes returns the base mesh and the link mesh rotated by the channel value.
func (ra *RotationalAxis) PoseMeshes(ext referenceframe.ExternalJointPosition) []*spatialmath.Mesh {
	pose, _ := ra.CalculateTransformationMatrix(ext)
	return ra.poseMeshes(pose)
}

// BoundingBox covers the base mesh and the link mesh sampled over the limit range.
func (ra *RotationalAxis) BoundingBox() spatialmath.Box {
	box := spatialmath.MeshesBoundingBox(ra.baseMesh)
	if !ra.limits.IsValid() {
		return box.Union(ra.linkMesh.BoundingBox())
	}
	steps := int(math.Ceil(ra.limits.Length() / boundingBoxStep))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		value := ra.limits.Min + ra.limits.Length()*float64(i)/float64(steps)
		box = box.Union(ra.linkMesh.Transform(ra.transformAt(value)).BoundingBox())
	}
	return box
}

// Transform moves the axis geometry by pose.
func (ra *RotationalAxis) Transform(pose spatialmath.Pose) {
	ra.transform(pose)
}

// Clone returns a deep copy.
func (ra *RotationalAxis) Clone() Axis {
	return &RotationalAxis{axis: ra.clone()}
}

func (ra *RotationalAxis) String() string {
	return ra.describe("Rotational external axis")
}
