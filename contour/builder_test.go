package contour

import (
	"testing"

	"github.com/krasin/steel-slicer/internal/fixture"
	"github.com/krasin/steel-slicer/math3d"
	"github.com/krasin/steel-slicer/slicer"
)

func TestBuildCubeSingleOuterRing(t *testing.T) {
	m := fixture.Cube(20)
	zs := slicer.Slice(m, 10)

	polys, err := Build(zs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(polys) != 1 {
		t.Fatalf("len(polys) = %d, want 1", len(polys))
	}
	if len(polys[0].Outer) != 4 {
		t.Errorf("len(Outer) = %d, want 4", len(polys[0].Outer))
	}
	if len(polys[0].Holes) != 0 {
		t.Errorf("len(Holes) = %d, want 0", len(polys[0].Holes))
	}
}

func TestBuildHollowCubeOuterWithHole(t *testing.T) {
	m := fixture.HollowCube(20, 10)
	zs := slicer.Slice(m, 10)

	polys, err := Build(zs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(polys) != 1 {
		t.Fatalf("len(polys) = %d, want 1 outer polygon", len(polys))
	}
	if len(polys[0].Outer) != 4 {
		t.Errorf("len(Outer) = %d, want 4", len(polys[0].Outer))
	}
	if len(polys[0].Holes) != 1 {
		t.Fatalf("len(Holes) = %d, want 1", len(polys[0].Holes))
	}
	if len(polys[0].Holes[0]) != 4 {
		t.Errorf("len(Holes[0]) = %d, want 4", len(polys[0].Holes[0]))
	}
}

func TestBuildTetrahedronTriangularRing(t *testing.T) {
	m := fixture.Tetrahedron(0, 0, 10, 10)
	zs := slicer.Slice(m, 5)

	polys, err := Build(zs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(polys) != 1 {
		t.Fatalf("len(polys) = %d, want 1", len(polys))
	}
	if len(polys[0].Outer) != 3 {
		t.Errorf("len(Outer) = %d, want 3", len(polys[0].Outer))
	}
	if len(polys[0].Holes) != 0 {
		t.Errorf("len(Holes) = %d, want 0", len(polys[0].Holes))
	}
}

func TestBuildEmptySliceYieldsNoPolygons(t *testing.T) {
	zs := &slicer.ZSlice{Z0: 100}
	polys, err := Build(zs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(polys) != 0 {
		t.Errorf("len(polys) = %d, want 0 for an empty slice", len(polys))
	}
}

func TestBuildDanglingEdgeReportsNonManifold(t *testing.T) {
	// An open three-vertex chain: the edges 0-1 and 1-2 can never
	// close back on a seed vertex.
	zs := &slicer.ZSlice{
		Z0: 0,
		Vertices: []math3d.Vec3{
			math3d.V3(0, 0, 0),
			math3d.V3(1, 0, 0),
			math3d.V3(2, 0, 0),
		},
		Edges: []slicer.Edge{{0, 1}, {1, 2}},
	}
	_, err := Build(zs)
	if err == nil {
		t.Fatal("Build of a dangling edge chain succeeded, want ErrNonManifoldSlice")
	}
}
