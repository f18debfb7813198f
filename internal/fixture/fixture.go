// Package fixture builds small test meshes shared across the pipeline's
// package tests (cube, hollow cube, tetrahedron) so each stage's tests
// exercise the same known geometry as spec.md's concrete scenarios.
package fixture

import (
	"github.com/krasin/steel-slicer/math3d"
	"github.com/krasin/steel-slicer/mesh"
)

// quad appends two triangles (a,b,c) and (a,c,d) with the given outward normal.
func quad(m *mesh.Mesh, normal math3d.Vec3, a, b, c, d math3d.Vec3) {
	base := len(m.V)
	m.V = append(m.V, a, b, c, d)
	m.F = append(m.F,
		mesh.Face{base + 0, base + 1, base + 2},
		mesh.Face{base + 0, base + 2, base + 3},
	)
	m.N = append(m.N, normal, normal)
}

// Cube returns an axis-aligned cube of the given side length with one
// corner at origin, CCW-wound outward faces.
func Cube(side float64) *mesh.Mesh {
	m := mesh.New()
	s := side
	v := func(x, y, z float64) math3d.Vec3 { return math3d.V3(x, y, z) }

	quad(m, v(0, 0, -1), v(0, 0, 0), v(0, s, 0), v(s, s, 0), v(s, 0, 0))  // bottom z=0
	quad(m, v(0, 0, 1), v(0, 0, s), v(s, 0, s), v(s, s, s), v(0, s, s))   // top z=s
	quad(m, v(0, -1, 0), v(0, 0, 0), v(s, 0, 0), v(s, 0, s), v(0, 0, s))  // y=0
	quad(m, v(0, 1, 0), v(0, s, 0), v(0, s, s), v(s, s, s), v(s, s, 0))   // y=s
	quad(m, v(-1, 0, 0), v(0, 0, 0), v(0, 0, s), v(0, s, s), v(0, s, 0)) // x=0
	quad(m, v(1, 0, 0), v(s, 0, 0), v(s, s, 0), v(s, s, s), v(s, 0, s))  // x=s

	return m
}

// HollowCube returns a cube with a smaller concentric cube-shaped cavity
// removed (both axis-aligned, sharing a center), for contour-depth tests.
// Only the outer and inner shell geometry relevant to mid-height slicing
// is generated: an outer cube plus an inner cube with reversed winding
// (normals pointing inward, into the cavity).
func HollowCube(outer, inner float64) *mesh.Mesh {
	m := Cube(outer)
	offset := (outer - inner) / 2
	innerCube := Cube(inner)
	innerCube.Transform(math3d.Translation4(math3d.V3(offset, offset, offset)))
	// Reverse winding (and thus normal direction) of the inner shell so it
	// faces into the cavity.
	base := len(m.V)
	m.V = append(m.V, innerCube.V...)
	for _, f := range innerCube.F {
		m.F = append(m.F, mesh.Face{f[0] + base, f[2] + base, f[1] + base})
	}
	for _, n := range innerCube.N {
		m.N = append(m.N, n.Negate())
	}
	return m
}

// Tetrahedron returns a tetrahedron resting on z=0 with its apex at
// (cx, cy, height), base an equilateral-ish triangle around (cx,cy,0).
func Tetrahedron(cx, cy, radius, height float64) *mesh.Mesh {
	m := mesh.New()
	apex := math3d.V3(cx, cy, height)
	b0 := math3d.V3(cx+radius, cy, 0)
	b1 := math3d.V3(cx-radius/2, cy+radius*0.8660254, 0)
	b2 := math3d.V3(cx-radius/2, cy-radius*0.8660254, 0)

	tri := func(a, b, c math3d.Vec3) {
		normal := b.Sub(a).Cross(c.Sub(a)).Normalize()
		base := len(m.V)
		m.V = append(m.V, a, b, c)
		m.F = append(m.F, mesh.Face{base, base + 1, base + 2})
		m.N = append(m.N, normal)
	}

	// Base, wound so the outward normal points down (-Z).
	tri(b0, b2, b1)
	// Three lateral faces, wound outward.
	tri(b0, b1, apex)
	tri(b1, b2, apex)
	tri(b2, b0, apex)

	return m
}
