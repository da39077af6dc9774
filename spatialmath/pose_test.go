package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

// represent a 45 degree rotation around the x axis in the different representations
var (
	th   = math.Pi / 4.
	q45x = quat.Number{Real: math.Cos(th / 2.), Imag: math.Sin(th / 2.)}
)

func TestZeroPose(t *testing.T) {
	zero := NewZeroPose()
	test.That(t, zero.Point(), test.ShouldResemble, r3.Vector{})
	test.That(t, zero.Orientation().Quaternion(), test.ShouldResemble, quat.Number{Real: 1})
	test.That(t, NewZeroOrientation().Quaternion(), test.ShouldResemble, quat.Number{Real: 1})
}

func TestOrientationRepresentations(t *testing.T) {
	aa := &R4AA{Theta: th, RX: 1}
	test.That(t, QuaternionAlmostEqual(aa.Quaternion(), q45x, 1e-9), test.ShouldBeTrue)

	back := QuatToR4AA(q45x)
	test.That(t, back.Theta, test.ShouldAlmostEqual, th)
	test.That(t, back.RX, test.ShouldAlmostEqual, 1.)

	rm := aa.RotationMatrix()
	test.That(t, rm.At(0, 0), test.ShouldAlmostEqual, 1.)
	test.That(t, rm.At(1, 1), test.ShouldAlmostEqual, math.Cos(th))
	test.That(t, rm.At(2, 1), test.ShouldAlmostEqual, math.Sin(th))
	test.That(t, QuaternionAlmostEqual(rm.Quaternion(), q45x, 1e-9), test.ShouldBeTrue)

	// a quaternion and its negation are the same rotation
	test.That(t, QuaternionAlmostEqual(q45x, Flip(q45x), 1e-9), test.ShouldBeTrue)
	test.That(t, OrientationAlmostEqual(aa, NewQuaternion(q45x.Real, q45x.Imag, 0, 0)), test.ShouldBeTrue)
}

func TestRotationMatrixFromAxes(t *testing.T) {
	// 90 degrees about Y maps X onto -Z and Z onto X
	rm := NewRotationMatrixFromAxes(r3.Vector{Z: -1}, r3.Vector{Y: 1}, r3.Vector{X: 1})
	aa := rm.AxisAngles()
	test.That(t, aa.Theta, test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, aa.RY, test.ShouldAlmostEqual, 1.)

	ident := rm.Mul(rm.Transpose())
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			expected := 0.
			if r == c {
				expected = 1.
			}
			test.That(t, ident.At(r, c), test.ShouldAlmostEqual, expected)
		}
	}
}

func TestCompose(t *testing.T) {
	rot := NewPoseFromOrientation(&R4AA{Theta: math.Pi / 2, RZ: 1})
	trans := NewPoseFromPoint(r3.Vector{X: 10})

	// translate then rotate: the translation is rotated too
	p := Compose(rot, trans)
	test.That(t, R3VectorAlmostEqual(p.Point(), r3.Vector{Y: 10}, 1e-9), test.ShouldBeTrue)

	// rotate then translate: translation untouched
	p = Compose(trans, rot)
	test.That(t, R3VectorAlmostEqual(p.Point(), r3.Vector{X: 10}, 1e-9), test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(RotateVector(p, r3.Vector{X: 1}), r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(TransformPoint(p, r3.Vector{X: 1}), r3.Vector{X: 10, Y: 1}, 1e-9), test.ShouldBeTrue)
}

func TestPoseInverse(t *testing.T) {
	p := NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, &R4AA{Theta: 1.2, RX: 1, RY: 1})
	ident := Compose(p, PoseInverse(p))
	test.That(t, PoseAlmostEqual(ident, NewZeroPose()), test.ShouldBeTrue)

	ident = Compose(PoseInverse(p), p)
	test.That(t, PoseAlmostEqual(ident, NewZeroPose()), test.ShouldBeTrue)

	q := NewPose(r3.Vector{X: -4, Z: 7}, &R4AA{Theta: -0.3, RZ: 1})
	between := PoseBetween(p, q)
	test.That(t, PoseAlmostEqual(Compose(p, between), q), test.ShouldBeTrue)
}

func TestRotationAboutAxis(t *testing.T) {
	// rotate the point (2, 0, 0) by 90 degrees about the vertical line through (1, 0, 0)
	p := NewRotationAboutAxis(r3.Vector{X: 1}, r3.Vector{Z: 1}, math.Pi/2)
	test.That(t, R3VectorAlmostEqual(TransformPoint(p, r3.Vector{X: 2}), r3.Vector{X: 1, Y: 1}, 1e-9), test.ShouldBeTrue)
	// points on the axis are fixed
	test.That(t, R3VectorAlmostEqual(TransformPoint(p, r3.Vector{X: 1, Z: 5}), r3.Vector{X: 1, Z: 5}, 1e-9), test.ShouldBeTrue)
}

func TestPoseToMat4(t *testing.T) {
	p := NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, &R4AA{Theta: math.Pi / 2, RZ: 1})
	m := PoseToMat4(p)
	test.That(t, m.At(0, 3), test.ShouldAlmostEqual, 1.)
	test.That(t, m.At(1, 3), test.ShouldAlmostEqual, 2.)
	test.That(t, m.At(2, 3), test.ShouldAlmostEqual, 3.)
	test.That(t, m.At(1, 0), test.ShouldAlmostEqual, 1.)
	test.That(t, m.At(3, 3), test.ShouldAlmostEqual, 1.)
}
