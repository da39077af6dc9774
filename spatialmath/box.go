package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Ordered list of box vertices.
var boxVertices = [8]r3.Vector{
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: -1, Y: -1, Z: -1},
}

// The sets of indices of the box vertices that tile the box exterior.
var boxTriangles = [12][3]int{
	{0, 1, 3},
	{0, 2, 3},
	{0, 1, 5},
	{0, 4, 5},
	{0, 2, 6},
	{0, 4, 6},
	{7, 1, 3},
	{7, 2, 3},
	{7, 1, 5},
	{7, 4, 5},
	{7, 2, 6},
	{7, 4, 6},
}

// Box is an axis aligned bounding box. An empty box has Min greater than Max.
type Box struct {
	Min r3.Vector `json:"min"`
	Max r3.Vector `json:"max"`
}

// NewEmptyBox returns a box that contains nothing; the union with any point is that point.
func NewEmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: r3.Vector{X: inf, Y: inf, Z: inf},
		Max: r3.Vector{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsValid returns false for the empty box.
func (b Box) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Include returns the smallest box containing b and pt.
func (b Box) Include(pt r3.Vector) Box {
	return Box{
		Min: r3.Vector{X: math.Min(b.Min.X, pt.X), Y: math.Min(b.Min.Y, pt.Y), Z: math.Min(b.Min.Z, pt.Z)},
		Max: r3.Vector{X: math.Max(b.Max.X, pt.X), Y: math.Max(b.Max.Y, pt.Y), Z: math.Max(b.Max.Z, pt.Z)},
	}
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(other Box) Box {
	if !other.IsValid() {
		return b
	}
	return b.Include(other.Min).Include(other.Max)
}

// Inflate grows the box by amount on every side.
func (b Box) Inflate(amount float64) Box {
	if !b.IsValid() {
		return b
	}
	d := r3.Vector{X: amount, Y: amount, Z: amount}
	return Box{Min: b.Min.Sub(d), Max: b.Max.Add(d)}
}

// Center returns the center point of the box.
func (b Box) Center() r3.Vector {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Dims returns the edge lengths of the box.
func (b Box) Dims() r3.Vector {
	return b.Max.Sub(b.Min)
}

// Contains reports whether pt lies inside or on the box.
func (b Box) Contains(pt r3.Vector) bool {
	return pt.X >= b.Min.X && pt.X <= b.Max.X &&
		pt.Y >= b.Min.Y && pt.Y <= b.Max.Y &&
		pt.Z >= b.Min.Z && pt.Z <= b.Max.Z
}

// NewBoxMesh returns a closed box mesh with the given edge lengths, centered on pose.
func NewBoxMesh(pose Pose, dims r3.Vector) *Mesh {
	half := dims.Mul(0.5)
	vertices := make([]r3.Vector, 0, len(boxVertices))
	for _, v := range boxVertices {
		vertices = append(vertices, TransformPoint(pose, r3.Vector{X: v.X * half.X, Y: v.Y * half.Y, Z: v.Z * half.Z}))
	}
	faces := make([][3]int, len(boxTriangles))
	copy(faces, boxTriangles[:])
	return NewMesh(vertices, faces)
}
