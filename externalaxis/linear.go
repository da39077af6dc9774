package externalaxis

import (
	"github.com/golang/geo/r3"

	"go.viam.com/rapidkin/referenceframe"
	"go.viam.com/rapidkin/spatialmath"
)

// LinearAxis is a track that translates its link along the Z axis of its axis plane. Values are in mm.
type LinearAxis struct {
	axis
	axisCurve spatialmath.Line
}

// NewLinearAxis creates a linear axis from cfg; the Kind field is ignored.
func NewLinearAxis(cfg Config) (*LinearAxis, error) {
	base, err := newAxis(cfg)
	if err != nil {
		return nil, err
	}
	la := &LinearAxis{axis: base}
	la.updateAxisCurve()
	return la, nil
}

func (la *LinearAxis) updateAxisCurve() {
	z := la.axisPlane.ZAxis()
	la.axisCurve = spatialmath.Line{
		From: la.axisPlane.Origin.Add(z.Mul(la.limits.Min)),
		To:   la.axisPlane.Origin.Add(z.Mul(la.limits.Max)),
	}
}

// Kind returns KindLinear.
func (la *LinearAxis) Kind() Kind {
	return KindLinear
}

// AxisCurve returns the segment the axis plane origin travels along between the lower and upper limit.
func (la *LinearAxis) AxisCurve() spatialmath.Line {
	return la.axisCurve
}

func (la *LinearAxis) transformAt(value float64) spatialmath.Pose {
	return spatialmath.NewPoseFromPoint(la.axisPlane.ZAxis().Mul(value))
}

// CalculateTransformationMatrix translates by the channel value along the axis direction.
func (la *LinearAxis) CalculateTransformationMatrix(ext referenceframe.ExternalJointPosition) (spatialmath.Pose, bool) {
	value, inLimits := la.JointValue(ext)
	return la.transformAt(value), inLimits
}

// CalculateTransformationMatrixSave translates by the channel value clamped to the limits.
func (la *LinearAxis) CalculateTransformationMatrixSave(ext referenceframe.ExternalJointPosition) spatialmath.Pose {
	return la.transformAt(la.jointValueSave(ext))
}

// CalculatePosition returns the attachment plane translated by the channel value.
func (la *LinearAxis) CalculatePosition(ext referenceframe.ExternalJointPosition) (spatialmath.Plane, bool) {
	pose, inLimits := la.CalculateTransformationMatrix(ext)
	return la.attachmentPlane.Transform(pose), inLimits
}

// CalculatePositionSave returns the attachment plane translated by the clamped channel value.
func (la *LinearAxis) CalculatePositionSave(ext referenceframe.ExternalJointPosition) spatialmath.Plane {
	return la.attachmentPlane.Transform(la.CalculateTransformationMatrixSave(ext))
}

// PoseMeshes returns the base mesh and the link mesh translated by the channel value.
func (la *LinearAxis) PoseMeshes(ext referenceframe.ExternalJointPosition) []*spatialmath.Mesh {
	pose, _ := la.CalculateTransformationMatrix(ext)
	return la.poseMeshes(pose)
}

// ClosestValue returns the axis value, within limits, that moves a point carried by the axis from from as
// close as possible to target.
func (la *LinearAxis) ClosestValue(from, target r3.Vector) float64 {
	origin := la.axisPlane.Origin
	closest := la.axisCurve.ClosestPoint(target.Sub(from).Add(origin))
	return la.limits.Clamp(closest.Sub(origin).Dot(la.axisPlane.ZAxis()))
}

// BoundingBox covers the base mesh and the link mesh at both limits.
func (la *LinearAxis) BoundingBox() spatialmath.Box {
	return spatialmath.MeshesBoundingBox(
		la.baseMesh,
		la.linkMesh.Transform(la.transformAt(la.limits.Min)),
		la.linkMesh.Transform(la.transformAt(la.limits.Max)),
	)
}

// Transform moves the axis geometry by pose and recomputes the axis curve.
func (la *LinearAxis) Transform(pose spatialmath.Pose) {
	la.transform(pose)
	la.updateAxisCurve()
}

// Clone returns a deep copy.
func (la *LinearAxis) Clone() Axis {
	return &LinearAxis{axis: la.clone(), axisCurve: la.axisCurve}
}

func (la *LinearAxis) String() string {
	return la.describe("Linear external axis")
}
