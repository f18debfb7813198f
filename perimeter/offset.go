// Package perimeter generates concentric inward wall offsets from a
// layer's polygon-with-holes contours (S4: Perimeter Generator).
package perimeter

import (
	"errors"
	"fmt"

	clipper "github.com/go-clipper/clipper2"

	"github.com/krasin/steel-slicer/contour"
	"github.com/krasin/steel-slicer/math3d"
)

// scale converts millimeter coordinates to clipper2's fixed-point
// int64 space at 1e-6mm resolution, coarser than the 1e-9 rounding
// the rest of the pipeline uses for vertex deduplication (Key9).
const scale = 1e6

// ErrDegenerateGeometry is returned when the input polygon has no ring
// of at least three points. A wall whose offset consumes the contour is
// omitted without this error.
var ErrDegenerateGeometry = errors.New("perimeter: offset produced no geometry")

// Wall is the set of closed loops produced by one inward offset pass.
// Every path the offset returns, outer boundary or hole, is one loop:
// a convex polygon without holes yields one loop, each surviving hole
// adds another, and deep concavities or close holes can split or
// dissolve loops as the offset radius grows (§4.4).
type Wall struct {
	Index int
	Loops [][]math3d.Vec2
}

// GenerateWalls offsets poly inward by (i+0.5)*lineWidth for each of
// wallCount walls and returns them in increasing radius order. A wall
// whose offset consumes the polygon entirely is omitted, together with
// every wall after it, rather than erroring, since the inner walls at
// larger radii are expected to vanish first on thin features.
func GenerateWalls(poly contour.PolygonWithHoles, lineWidth float64, wallCount int) ([]Wall, error) {
	if lineWidth <= 0 {
		return nil, fmt.Errorf("perimeter: line width %g must be positive", lineWidth)
	}
	if wallCount <= 0 {
		return nil, fmt.Errorf("perimeter: wall count %d must be positive", wallCount)
	}

	subject := toPaths64(poly)
	if len(subject) == 0 {
		return nil, fmt.Errorf("%w: empty input polygon", ErrDegenerateGeometry)
	}

	var walls []Wall
	for i := 0; i < wallCount; i++ {
		radius := (float64(i) + 0.5) * lineWidth
		delta := -radius * scale

		offset := inflate(subject, delta)
		if len(offset) == 0 {
			break // this and all larger radii are fully consumed
		}

		loops := make([][]math3d.Vec2, 0, len(offset))
		for _, p := range offset {
			if len(p) < 3 {
				continue
			}
			loops = append(loops, fromPath64(p))
		}
		if len(loops) == 0 {
			break
		}
		walls = append(walls, Wall{Index: i, Loops: loops})
	}

	return walls, nil
}

// InteriorRegion returns the region remaining after wallCount walls
// have been cut from poly, i.e. the offset at (wallCount+0.5)*lineWidth
// — one full line width past the innermost wall's centerline (half a
// line width past that wall's inner edge), so the infill (S5) pattern
// clips flush against the last wall rather than overlapping it.
func InteriorRegion(poly contour.PolygonWithHoles, lineWidth float64, wallCount int) [][]math3d.Vec2 {
	subject := toPaths64(poly)
	if len(subject) == 0 {
		return nil
	}
	delta := -(float64(wallCount) + 0.5) * lineWidth * scale
	offset := inflate(subject, delta)

	loops := make([][]math3d.Vec2, 0, len(offset))
	for _, p := range offset {
		if len(p) < 3 {
			continue
		}
		loops = append(loops, fromPath64(p))
	}
	return loops
}

// inflate is the one call site against clipper2's offset entrypoint,
// isolated so that if the upstream signature turns out to differ from
// what's assumed here, only this function needs to change. delta is
// already in clipper2's fixed-point int64 space (see scale above);
// negative deltas erode a polygon inward.
func inflate(subject clipper.Paths64, delta float64) clipper.Paths64 {
	return clipper.InflatePaths(subject, delta, clipper.Round, clipper.ClosedPolygon, clipper.OffsetOptions{
		MiterLimit:   2.0,
		ArcTolerance: 0.25 * scale,
	})
}

func toPaths64(poly contour.PolygonWithHoles) clipper.Paths64 {
	var paths clipper.Paths64
	if len(poly.Outer) >= 3 {
		paths = append(paths, toPath64(poly.Outer))
	}
	for _, h := range poly.Holes {
		if len(h) >= 3 {
			paths = append(paths, toPath64(h))
		}
	}
	return paths
}

func toPath64(ring []math3d.Vec2) clipper.Path64 {
	p := make(clipper.Path64, len(ring))
	for i, v := range ring {
		p[i] = clipper.Point64{X: int64(v.X * scale), Y: int64(v.Y * scale)}
	}
	return p
}

func fromPath64(p clipper.Path64) []math3d.Vec2 {
	ring := make([]math3d.Vec2, len(p))
	for i, pt := range p {
		ring[i] = math3d.V2(float64(pt.X)/scale, float64(pt.Y)/scale)
	}
	return ring
}
