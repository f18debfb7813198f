package perimeter

import (
	"testing"

	"github.com/krasin/steel-slicer/contour"
	"github.com/krasin/steel-slicer/internal/fixture"
	"github.com/krasin/steel-slicer/math3d"
	"github.com/krasin/steel-slicer/slicer"
)

func TestGenerateWallsCubeProducesOneLoopPerWall(t *testing.T) {
	m := fixture.Cube(20)
	zs := slicer.Slice(m, 10)
	polys, err := contour.Build(zs)
	if err != nil {
		t.Fatalf("contour.Build: %v", err)
	}
	if len(polys) != 1 {
		t.Fatalf("len(polys) = %d, want 1", len(polys))
	}

	walls, err := GenerateWalls(polys[0], 0.4, 3)
	if err != nil {
		t.Fatalf("GenerateWalls: %v", err)
	}
	if len(walls) != 3 {
		t.Fatalf("len(walls) = %d, want 3", len(walls))
	}
	for i, w := range walls {
		if w.Index != i {
			t.Errorf("walls[%d].Index = %d, want %d", i, w.Index, i)
		}
		if len(w.Loops) != 1 {
			t.Errorf("walls[%d] has %d loops, want 1", i, len(w.Loops))
		}
	}
}

func TestGenerateWallsRejectsNonPositiveParams(t *testing.T) {
	m := fixture.Cube(20)
	zs := slicer.Slice(m, 10)
	polys, err := contour.Build(zs)
	if err != nil {
		t.Fatalf("contour.Build: %v", err)
	}

	if _, err := GenerateWalls(polys[0], 0, 3); err == nil {
		t.Error("GenerateWalls with zero line width succeeded, want error")
	}
	if _, err := GenerateWalls(polys[0], 0.4, 0); err == nil {
		t.Error("GenerateWalls with zero wall count succeeded, want error")
	}
}

func TestInteriorRegionShrinksTowardCenter(t *testing.T) {
	m := fixture.Cube(20)
	zs := slicer.Slice(m, 10)
	polys, err := contour.Build(zs)
	if err != nil {
		t.Fatalf("contour.Build: %v", err)
	}

	region := InteriorRegion(polys[0], 0.4, 2)
	if len(region) == 0 {
		t.Fatal("InteriorRegion produced no loops")
	}
	// Offset radius (2+0.5)*0.4 = 1.0mm: every point stays within [1, 19].
	for _, loop := range region {
		for _, p := range loop {
			if p.X < 1-1e-3 || p.X > 19+1e-3 || p.Y < 1-1e-3 || p.Y > 19+1e-3 {
				t.Errorf("interior point %v not shrunk by 1.0mm from the 20mm square", p)
			}
		}
	}
}

func TestGenerateWallsStopsWhenOffsetConsumesThinShape(t *testing.T) {
	// A sliver 0.2mm wide: a single 0.4mm-wide wall already exceeds its
	// half-width, so generation should stop after zero or one wall
	// instead of erroring.
	thin := contour.PolygonWithHoles{
		Outer: []math3d.Vec2{
			math3d.V2(0, 0),
			math3d.V2(10, 0),
			math3d.V2(10, 0.2),
			math3d.V2(0, 0.2),
		},
	}

	walls, err := GenerateWalls(thin, 0.4, 5)
	if err != nil {
		t.Fatalf("GenerateWalls: %v", err)
	}
	if len(walls) >= 5 {
		t.Errorf("len(walls) = %d, want fewer than 5 for a consumed sliver", len(walls))
	}
}
