// Package kinematics derives OPW kinematic parameters from axis planes and solves forward and inverse
// kinematics of six axis ABB robots with coordinated external axes.
package kinematics

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/rapidkin/spatialmath"
	"go.viam.com/rapidkin/utils"
)

// Parameters are the eight OPW (offset, parallel, wrist) parameters of a six axis robot, in mm.
type Parameters struct {
	A1 float64 `json:"a1"`
	A2 float64 `json:"a2"`
	A3 float64 `json:"a3"`
	B  float64 `json:"b"`
	C1 float64 `json:"c1"`
	C2 float64 `json:"c2"`
	C3 float64 `json:"c3"`
	C4 float64 `json:"c4"`
}

// ParametersFromAxisPlanes derives the parameters from the internal axis planes at the zero pose, given in the
// same coordinate system as basePlane.
func ParametersFromAxisPlanes(basePlane spatialmath.Plane, planes [6]spatialmath.Plane) Parameters {
	p := localOrigins(basePlane, planes)
	return Parameters{
		A1: p[1].X,
		A2: -(p[4].Z - p[2].Z),
		A3: -(p[5].Z - p[4].Z),
		B:  p[0].Y - p[5].Y,
		C1: p[1].Z,
		C2: p[2].Z - p[1].Z,
		C3: p[4].X - p[2].X,
		C4: p[5].X - p[4].X,
	}
}

// ArmLengths returns the lower arm (axis 2 to 3), upper arm (axis 3 to 5) and their sum.
func ArmLengths(basePlane spatialmath.Plane, planes [6]spatialmath.Plane) (lower, upper, elbow float64) {
	p := localOrigins(basePlane, planes)
	lower = p[1].Sub(p[2]).Norm()
	upper = p[2].Sub(p[4]).Norm()
	return lower, upper, lower + upper
}

func localOrigins(basePlane spatialmath.Plane, planes [6]spatialmath.Plane) [6]r3.Vector {
	var out [6]r3.Vector
	for i, pl := range planes {
		out[i] = pl.InFrameOf(basePlane).Origin
	}
	return out
}

// IsValid reports whether no parameter is NaN.
func (p Parameters) IsValid() bool {
	for _, v := range p.values() {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

// HasSphericalWrist reports whether the wrist axes intersect, which the closed form inverse solver requires.
func (p Parameters) HasSphericalWrist() bool {
	return math.Abs(p.A3) < 1e-9
}

func (p Parameters) values() []float64 {
	return []float64{p.A1, p.A2, p.A3, p.B, p.C1, p.C2, p.C3, p.C4}
}

// AlmostEqual compares all eight parameters within epsilon.
func (p Parameters) AlmostEqual(other Parameters, epsilon float64) bool {
	a, b := p.values(), other.values()
	for i := range a {
		if !utils.Float64AlmostEqual(a[i], b[i], epsilon) {
			return false
		}
	}
	return true
}

// LocalAxisPlanes returns the internal axis planes and the mounting frame at the zero pose, in the robot base
// frame. Axis 1 turns about +Z, axes 2, 3 and 5 about +Y, axes 4 and 6 about +X. The mounting frame points its Z
// axis along +X and its X axis along -Z.
func (p Parameters) LocalAxisPlanes() ([6]spatialmath.Plane, spatialmath.Plane) {
	var (
		xAxis = r3.Vector{X: 1}
		yAxis = r3.Vector{Y: 1}
		zAxis = r3.Vector{Z: 1}
	)
	shoulderZ := p.C1 + p.C2
	wristZ := shoulderZ - p.A2
	planes := [6]spatialmath.Plane{
		{Origin: r3.Vector{}, XAxis: xAxis, YAxis: yAxis},
		{Origin: r3.Vector{X: p.A1, Z: p.C1}, XAxis: xAxis, YAxis: zAxis.Mul(-1)},
		{Origin: r3.Vector{X: p.A1, Z: shoulderZ}, XAxis: xAxis, YAxis: zAxis.Mul(-1)},
		{Origin: r3.Vector{X: p.A1 + p.C3/2, Y: -p.B, Z: wristZ}, XAxis: zAxis.Mul(-1), YAxis: yAxis},
		{Origin: r3.Vector{X: p.A1 + p.C3, Y: -p.B, Z: wristZ}, XAxis: xAxis, YAxis: zAxis.Mul(-1)},
		{Origin: r3.Vector{X: p.A1 + p.C3 + p.C4, Y: -p.B, Z: wristZ - p.A3}, XAxis: zAxis.Mul(-1), YAxis: yAxis},
	}
	mountingFrame := spatialmath.Plane{Origin: planes[5].Origin, XAxis: zAxis.Mul(-1), YAxis: yAxis}
	return planes, mountingFrame
}

// AxisPlanes returns the internal axis planes and the mounting frame at the zero pose, placed on basePlane.
func (p Parameters) AxisPlanes(basePlane spatialmath.Plane) ([6]spatialmath.Plane, spatialmath.Plane) {
	planes, mountingFrame := p.LocalAxisPlanes()
	for i := range planes {
		planes[i] = planes[i].FromFrameOf(basePlane)
	}
	return planes, mountingFrame.FromFrameOf(basePlane)
}

func (p Parameters) String() string {
	return fmt.Sprintf("a1=%s a2=%s a3=%s b=%s c1=%s c2=%s c3=%s c4=%s",
		utils.FormatNumber(p.A1), utils.FormatNumber(p.A2), utils.FormatNumber(p.A3), utils.FormatNumber(p.B),
		utils.FormatNumber(p.C1), utils.FormatNumber(p.C2), utils.FormatNumber(p.C3), utils.FormatNumber(p.C4))
}
