package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Plane is a right handed coordinate frame: an origin plus orthonormal X and Y axes. The Z axis is X × Y.
// The zero value is the unset plane and is not valid.
type Plane struct {
	Origin r3.Vector `json:"origin"`
	XAxis  r3.Vector `json:"x_axis"`
	YAxis  r3.Vector `json:"y_axis"`
}

// NewPlane returns the plane through origin spanned by xAxis and yAxis. The axes are orthonormalized; the
// direction of xAxis is kept and yAxis is only used to fix the plane. Parallel axes give an unset plane.
func NewPlane(origin, xAxis, yAxis r3.Vector) Plane {
	if xAxis.Norm() == 0 {
		return Plane{}
	}
	x := xAxis.Normalize()
	z := x.Cross(yAxis)
	if z.Norm() < 1e-12 {
		return Plane{}
	}
	z = z.Normalize()
	return Plane{Origin: origin, XAxis: x, YAxis: z.Cross(x)}
}

// NewPlaneFromNormal returns a plane through origin with the given Z axis and an arbitrary perpendicular X axis.
func NewPlaneFromNormal(origin, normal r3.Vector) Plane {
	if normal.Norm() == 0 {
		return Plane{}
	}
	z := normal.Normalize()
	x := z.Ortho()
	return Plane{Origin: origin, XAxis: x, YAxis: z.Cross(x)}
}

// WorldXY returns the world XY plane.
func WorldXY() Plane {
	return Plane{XAxis: r3.Vector{X: 1}, YAxis: r3.Vector{Y: 1}}
}

// WorldYZ returns the world YZ plane.
func WorldYZ() Plane {
	return Plane{XAxis: r3.Vector{Y: 1}, YAxis: r3.Vector{Z: 1}}
}

// PlaneFromPose returns the coordinate frame described by a pose.
func PlaneFromPose(p Pose) Plane {
	rm := p.Orientation().RotationMatrix()
	return NewPlane(p.Point(), rm.Col(0), rm.Col(1))
}

// ZAxis returns the normal of the plane.
func (p Plane) ZAxis() r3.Vector {
	return p.XAxis.Cross(p.YAxis)
}

// IsValid reports whether the plane is set: a finite origin and orthonormal axes.
func (p Plane) IsValid() bool {
	if !R3VectorIsFinite(p.Origin) || !R3VectorIsFinite(p.XAxis) || !R3VectorIsFinite(p.YAxis) {
		return false
	}
	const tol = 1e-6
	return math.Abs(p.XAxis.Norm()-1) < tol && math.Abs(p.YAxis.Norm()-1) < tol && math.Abs(p.XAxis.Dot(p.YAxis)) < tol
}

// Pose returns the transformation from the plane's local coordinates to world coordinates.
func (p Plane) Pose() Pose {
	return NewPose(p.Origin, NewRotationMatrixFromAxes(p.XAxis, p.YAxis, p.ZAxis()))
}

// Transform applies a rigid transformation to the plane.
func (p Plane) Transform(pose Pose) Plane {
	return Plane{
		Origin: TransformPoint(pose, p.Origin),
		XAxis:  RotateVector(pose, p.XAxis),
		YAxis:  RotateVector(pose, p.YAxis),
	}
}

// InFrameOf re-expresses this world plane in the local coordinates of base.
func (p Plane) InFrameOf(base Plane) Plane {
	return p.Transform(PoseInverse(base.Pose()))
}

// FromFrameOf interprets this plane as local coordinates of base and returns it in world coordinates.
func (p Plane) FromFrameOf(base Plane) Plane {
	return p.Transform(base.Pose())
}

// PointAt returns the world point with local coordinates (u, v, w).
func (p Plane) PointAt(u, v, w float64) r3.Vector {
	return p.Origin.Add(p.XAxis.Mul(u)).Add(p.YAxis.Mul(v)).Add(p.ZAxis().Mul(w))
}

// String returns a readable representation of the plane.
func (p Plane) String() string {
	return fmt.Sprintf("O(%.3f, %.3f, %.3f) X(%.3f, %.3f, %.3f) Y(%.3f, %.3f, %.3f)",
		p.Origin.X, p.Origin.Y, p.Origin.Z, p.XAxis.X, p.XAxis.Y, p.XAxis.Z, p.YAxis.X, p.YAxis.Y, p.YAxis.Z)
}

// PlaneToPlane returns the rigid transformation that maps from onto to.
func PlaneToPlane(from, to Plane) Pose {
	return Compose(to.Pose(), PoseInverse(from.Pose()))
}

// PlaneAlmostEqual reports whether the origins and axes of two planes match within epsilon.
func PlaneAlmostEqual(a, b Plane, epsilon float64) bool {
	return R3VectorAlmostEqual(a.Origin, b.Origin, epsilon) &&
		R3VectorAlmostEqual(a.XAxis, b.XAxis, epsilon) &&
		R3VectorAlmostEqual(a.YAxis, b.YAxis, epsilon)
}
