package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Mesh is a triangle soup: shared vertices plus faces indexing into them.
// Meshes are treated as values; Transform and Append return new meshes.
type Mesh struct {
	vertices []r3.Vector
	faces    [][3]int
}

// NewMesh creates a mesh. The slices are copied.
func NewMesh(vertices []r3.Vector, faces [][3]int) *Mesh {
	m := &Mesh{
		vertices: make([]r3.Vector, len(vertices)),
		faces:    make([][3]int, len(faces)),
	}
	copy(m.vertices, vertices)
	copy(m.faces, faces)
	return m
}

// NewEmptyMesh returns a mesh without vertices.
func NewEmptyMesh() *Mesh {
	return &Mesh{}
}

// Vertices returns a copy of the mesh vertices.
func (m *Mesh) Vertices() []r3.Vector {
	out := make([]r3.Vector, len(m.vertices))
	copy(out, m.vertices)
	return out
}

// Faces returns a copy of the mesh faces.
func (m *Mesh) Faces() [][3]int {
	out := make([][3]int, len(m.faces))
	copy(out, m.faces)
	return out
}

// Triangles returns the faces of the mesh as triangles.
func (m *Mesh) Triangles() []*Triangle {
	tris := make([]*Triangle, 0, len(m.faces))
	for _, f := range m.faces {
		tris = append(tris, NewTriangle(m.vertices[f[0]], m.vertices[f[1]], m.vertices[f[2]]))
	}
	return tris
}

// IsEmpty reports whether the mesh has no vertices.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.vertices) == 0
}

// Clone returns a deep copy of the mesh. Cloning nil gives an empty mesh.
func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return NewEmptyMesh()
	}
	return NewMesh(m.vertices, m.faces)
}

// Transform returns a copy of the mesh moved by pose.
func (m *Mesh) Transform(pose Pose) *Mesh {
	out := m.Clone()
	for i, v := range out.vertices {
		out.vertices[i] = TransformPoint(pose, v)
	}
	return out
}

// Append returns a mesh holding this mesh and all others.
func (m *Mesh) Append(others ...*Mesh) *Mesh {
	out := m.Clone()
	for _, o := range others {
		if o.IsEmpty() {
			continue
		}
		offset := len(out.vertices)
		out.vertices = append(out.vertices, o.vertices...)
		for _, f := range o.faces {
			out.faces = append(out.faces, [3]int{f[0] + offset, f[1] + offset, f[2] + offset})
		}
	}
	return out
}

// BoundingBox returns the world aligned bounding box of the mesh.
func (m *Mesh) BoundingBox() Box {
	box := NewEmptyBox()
	if m == nil {
		return box
	}
	for _, v := range m.vertices {
		box = box.Include(v)
	}
	return box
}

// MeshesBoundingBox returns the bounding box of all meshes.
func MeshesBoundingBox(meshes ...*Mesh) Box {
	box := NewEmptyBox()
	for _, m := range meshes {
		box = box.Union(m.BoundingBox())
	}
	return box
}

// CloneMeshes deep copies a list of meshes.
func CloneMeshes(meshes []*Mesh) []*Mesh {
	out := make([]*Mesh, len(meshes))
	for i, m := range meshes {
		out[i] = m.Clone()
	}
	return out
}
