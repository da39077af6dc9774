package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Line is a straight segment between two points.
type Line struct {
	From r3.Vector `json:"from"`
	To   r3.Vector `json:"to"`
}

// Length returns the length of the segment.
func (l Line) Length() float64 {
	return l.To.Sub(l.From).Norm()
}

// Direction returns the unit vector from From to To, or the zero vector for a degenerate segment.
func (l Line) Direction() r3.Vector {
	d := l.To.Sub(l.From)
	if d.Norm2() < 1e-30 {
		return r3.Vector{}
	}
	return d.Normalize()
}

// PointAt returns From + t * (To - From).
func (l Line) PointAt(t float64) r3.Vector {
	return l.From.Add(l.To.Sub(l.From).Mul(t))
}

// ClosestPoint returns the point of the segment nearest to pt.
func (l Line) ClosestPoint(pt r3.Vector) r3.Vector {
	ab := l.To.Sub(l.From)
	denom := ab.Norm2()
	if denom < 1e-30 {
		return l.From
	}
	t := pt.Sub(l.From).Dot(ab) / denom
	if t <= 0 {
		return l.From
	}
	if t >= 1 {
		return l.To
	}
	return l.PointAt(t)
}

// Transform applies a rigid transformation to both end points.
func (l Line) Transform(pose Pose) Line {
	return Line{From: TransformPoint(pose, l.From), To: TransformPoint(pose, l.To)}
}
