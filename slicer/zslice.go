// Package slicer implements the layer schedule and per-plane mesh
// intersection (S2: Layer Slicer).
package slicer

import (
	"github.com/krasin/steel-slicer/math3d"
	"github.com/krasin/steel-slicer/mesh"
)

// eps is the plane-test tolerance shared by the coplanar and transverse
// triangle classifications.
const eps = 1e-9

// Edge is a sorted pair of indices into a ZSlice's Vertices.
type Edge [2]int

func sortedEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{a, b}
}

// ZSlice is the planar edge soup produced by intersecting a mesh with
// one horizontal plane at Z0.
type ZSlice struct {
	Z0       float64
	Vertices []math3d.Vec3 // lifted to (x, y, Z0)
	Edges    []Edge
}

type vertexIndexer struct {
	z0  float64
	v   []math3d.Vec3
	idx map[[3]float64]int
}

func newVertexIndexer(z0 float64) *vertexIndexer {
	return &vertexIndexer{z0: z0, idx: make(map[[3]float64]int)}
}

func (vi *vertexIndexer) add(x, y float64) int {
	p := math3d.V3(x, y, vi.z0)
	key := p.Key9()
	if i, ok := vi.idx[key]; ok {
		return i
	}
	i := len(vi.v)
	vi.v = append(vi.v, p)
	vi.idx[key] = i
	return i
}

// Slice intersects m with the horizontal plane at z0, producing the
// manifold-cross-section edge soup described in §4.2.
func Slice(m *mesh.Mesh, z0 float64) *ZSlice {
	vi := newVertexIndexer(z0)
	coplanarCount := make(map[Edge]int)
	edgeSeen := make(map[Edge]bool)
	var edges []Edge

	addEdge := func(e Edge) {
		if !edgeSeen[e] {
			edgeSeen[e] = true
			edges = append(edges, e)
		}
	}

	for _, f := range m.F {
		a, b, c := m.V[f[0]], m.V[f[1]], m.V[f[2]]
		da, db, dc := a.Z-z0, b.Z-z0, c.Z-z0

		if abs(da) < eps && abs(db) < eps && abs(dc) < eps {
			// Coplanar: contribute all three edges to the multiplicity bag.
			ia := vi.add(a.X, a.Y)
			ib := vi.add(b.X, b.Y)
			ic := vi.add(c.X, c.Y)
			coplanarCount[sortedEdge(ia, ib)]++
			coplanarCount[sortedEdge(ib, ic)]++
			coplanarCount[sortedEdge(ic, ia)]++
			continue
		}

		pts := triangleSlicePoints(a, b, c, da, db, dc, z0)
		indices := make([]int, 0, len(pts))
		for _, p := range pts {
			indices = append(indices, vi.add(p.X, p.Y))
		}
		unique := dedupInts(indices)

		switch len(unique) {
		case 2:
			addEdge(sortedEdge(unique[0], unique[1]))
		case 3:
			addEdge(sortedEdge(unique[0], unique[1]))
			addEdge(sortedEdge(unique[1], unique[2]))
			addEdge(sortedEdge(unique[2], unique[0]))
		}
	}

	// Boundary-of-union rule: only coplanar edges with multiplicity 1
	// survive (interior shared edges between coplanar patches cancel).
	for e, count := range coplanarCount {
		if count == 1 {
			addEdge(e)
		}
	}

	return &ZSlice{Z0: z0, Vertices: vi.v, Edges: edges}
}

// triangleSlicePoints computes the 0–3 points where the plane z0
// touches or crosses triangle (a, b, c), per §4.2's transverse case.
func triangleSlicePoints(a, b, c math3d.Vec3, da, db, dc, z0 float64) []math3d.Vec3 {
	var pts []math3d.Vec3
	verts := [3]math3d.Vec3{a, b, c}
	ds := [3]float64{da, db, dc}

	for i, v := range verts {
		if abs(ds[i]) < eps {
			pts = append(pts, math3d.V3(v.X, v.Y, z0))
		}
	}

	type edge struct {
		a, b int
	}
	for _, e := range [3]edge{{0, 1}, {1, 2}, {2, 0}} {
		za, zb := ds[e.a], ds[e.b]
		if za*zb < -eps {
			t := (z0 - (verts[e.a].Z)) / (verts[e.b].Z - verts[e.a].Z)
			va, vb := verts[e.a], verts[e.b]
			x := va.X + t*(vb.X-va.X)
			y := va.Y + t*(vb.Y-va.Y)
			pts = append(pts, math3d.V3(x, y, z0))
		}
	}
	return pts
}

func dedupInts(xs []int) []int {
	var out []int
	for _, x := range xs {
		dup := false
		for _, o := range out {
			if o == x {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, x)
		}
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
