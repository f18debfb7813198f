// Package mesh provides triangle mesh loading and the deduplicated
// vertex/face/normal table the rest of the slicer pipeline consumes.
package mesh

import "github.com/krasin/steel-slicer/math3d"

// Face is a triangle: three indices into Mesh.V.
type Face [3]int

// Mesh is a mapping-free table of vertices, faces, and per-face normals.
// |F| must equal |N|; every face index must be in [0, len(V)).
type Mesh struct {
	V []math3d.Vec3
	F []Face
	N []math3d.Vec3
}

// New creates an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.F)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.V)
}

// Bounds returns the axis-aligned bounding box of the mesh.
func (m *Mesh) Bounds() (min, max math3d.Vec3) {
	if len(m.V) == 0 {
		return
	}
	min, max = m.V[0], m.V[0]
	for _, v := range m.V[1:] {
		min = min.Min(v)
		max = max.Max(v)
	}
	return
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	min, max := m.Bounds()
	return min.Add(max).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	min, max := m.Bounds()
	return max.Sub(min)
}

// FaceVertices returns the three vertex positions of face i.
func (m *Mesh) FaceVertices(i int) (a, b, c math3d.Vec3) {
	f := m.F[i]
	return m.V[f[0]], m.V[f[1]], m.V[f[2]]
}

// Transform applies an affine transform to every vertex and transforms
// each stored face normal by the matrix's linear part (translation
// ignored), renormalizing it. Normals are not recomputed from the
// geometry; this keeps them correct for uniform scale, translation and
// rotation.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.V {
		m.V[i] = mat.MulVec3(m.V[i])
	}
	for i := range m.N {
		m.N[i] = mat.MulVec3Dir(m.N[i]).Normalize()
	}
}
