package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/rapidkin/utils"
)

// Pose represents a rigid transformation: a 6dof translation and orientation.
// Poses are immutable; every operation returns a new Pose.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

// NewZeroPose returns a pose at (0,0,0) with same orientation as whatever frame it is placed in.
func NewZeroPose() Pose {
	return newDualQuaternion()
}

// NewPose takes in a point and orientation and returns a Pose.
func NewPose(point r3.Vector, o Orientation) Pose {
	if o == nil {
		return NewPoseFromPoint(point)
	}
	q := newDualQuaternion()
	q.Real = Normalize(o.Quaternion())
	q.SetTranslation(point)
	return q
}

// NewPoseFromPoint returns a pose with the given translation and no rotation.
func NewPoseFromPoint(point r3.Vector) Pose {
	q := newDualQuaternion()
	q.SetTranslation(point)
	return q
}

// NewPoseFromOrientation returns a pose with no translation and the given orientation.
func NewPoseFromOrientation(o Orientation) Pose {
	return NewPose(r3.Vector{}, o)
}

// NewRotationAboutAxis returns the pose that rotates space by angle radians around the line through origin
// with direction axis.
func NewRotationAboutAxis(origin, axis r3.Vector, angle float64) Pose {
	rot := NewPoseFromOrientation(NewR4AAFromVector(axis, angle))
	return Compose(NewPoseFromPoint(origin), Compose(rot, NewPoseFromPoint(origin.Mul(-1))))
}

// Compose returns a pose that is the result of applying b and then a, i.e. a ∘ b.
func Compose(a, b Pose) Pose {
	aq := newDualQuaternionFromPose(a)
	result := &dualQuaternion{aq.Transformation(newDualQuaternionFromPose(b).Number)}

	// Normalization
	if vecLen := 1 / quat.Abs(result.Real); vecLen != 1 {
		result.Real = quat.Scale(vecLen, result.Real)
		result.Dual = quat.Scale(vecLen, result.Dual)
	}
	return result
}

// PoseInverse will return the inverse of a pose. So if a given pose p is the pose of A relative to B, PoseInverse(p)
// will give the pose of B relative to A.
func PoseInverse(p Pose) Pose {
	q := newDualQuaternionFromPose(p)
	conj := quaternion(quat.Conj(q.Real))
	return NewPose(RotateVector(NewPoseFromOrientation(&conj), q.Point()).Mul(-1), &conj)
}

// PoseBetween returns the difference between two Poses, i.e. the pose of b expressed in the frame of a.
func PoseBetween(a, b Pose) Pose {
	return Compose(PoseInverse(a), b)
}

// RotateVector rotates v by the orientation of p, ignoring its translation.
func RotateVector(p Pose, v r3.Vector) r3.Vector {
	q := p.Orientation().Quaternion()
	rotated := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}
}

// TransformPoint applies the full rigid transformation p to the point v.
func TransformPoint(p Pose, v r3.Vector) r3.Vector {
	return RotateVector(p, v).Add(p.Point())
}

// PoseToMat4 returns the homogeneous 4x4 matrix of a pose.
func PoseToMat4(p Pose) mgl64.Mat4 {
	return newDualQuaternionFromPose(p).Mat4()
}

// PoseAlmostEqual will return a bool describing whether 2 poses are approximately the same.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostEqualEps(a, b, 1e-6)
}

// PoseAlmostEqualEps will return a bool describing whether 2 poses are approximately the same, within epsilon.
func PoseAlmostEqualEps(a, b Pose, epsilon float64) bool {
	return R3VectorAlmostEqual(a.Point(), b.Point(), epsilon) &&
		QuaternionAlmostEqual(a.Orientation().Quaternion(), b.Orientation().Quaternion(), epsilon)
}

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}

// R3VectorIsFinite reports whether no component of v is NaN or infinite.
func R3VectorIsFinite(v r3.Vector) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// AngleBetween returns the unsigned angle in radians between two vectors.
func AngleBetween(a, b r3.Vector) float64 {
	return float64(a.Angle(b))
}

// DegreesBetween returns the unsigned angle in degrees between two vectors.
func DegreesBetween(a, b r3.Vector) float64 {
	return utils.RadToDeg(AngleBetween(a, b))
}
