package contour

import (
	"sort"

	"github.com/krasin/steel-slicer/math3d"
)

// pointInRing reports whether p lies inside ring using the standard
// even-odd ray casting test (ray cast along +X).
func pointInRing(p math3d.Vec2, ring []math3d.Vec2) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := ring[i], ring[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xCross := vj.X + (p.Y-vj.Y)/(vi.Y-vj.Y)*(vi.X-vj.X)
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// representativePoint returns a point guaranteed to lie in the
// interior of a simple (non-self-intersecting) ring, biased toward
// the ring's own topmost edge rather than its overall centroid.
//
// Nested rings sharing a common center (a hole concentric with its
// outer boundary, the common case for §4.3's polygon-with-holes
// assembly) have coincident centroids, so a plain area-weighted
// centroid would report each ring as contained in the other. Instead
// this picks a horizontal scanline just below the ring's highest
// vertex and takes the midpoint of the first crossing span there —
// a point that stays close to the ring's own silhouette.
func representativePoint(ring []math3d.Vec2) math3d.Vec2 {
	if p, ok := scanlinePoint(ring); ok {
		return p
	}
	return averagePoint(ring)
}

func averagePoint(ring []math3d.Vec2) math3d.Vec2 {
	var sx, sy float64
	for _, p := range ring {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(ring))
	return math3d.V2(sx/n, sy/n)
}

// scanlinePoint intersects a horizontal line placed a small fraction
// below the ring's highest vertex with the ring's edges, then returns
// the midpoint of the first crossing span. The offset is relative to
// the ring's own y-extent so it stays close to the ring's silhouette
// regardless of how coarse or fine its neighboring rings are.
func scanlinePoint(ring []math3d.Vec2) (math3d.Vec2, bool) {
	yMin, yMax := ring[0].Y, ring[0].Y
	for _, p := range ring[1:] {
		if p.Y < yMin {
			yMin = p.Y
		}
		if p.Y > yMax {
			yMax = p.Y
		}
	}
	if yMax == yMin {
		return math3d.Vec2{}, false
	}
	y := yMax - 1e-4*(yMax-yMin)

	var xs []float64
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := ring[i], ring[j]
		if (vi.Y > y) != (vj.Y > y) {
			x := vj.X + (y-vj.Y)/(vi.Y-vj.Y)*(vi.X-vj.X)
			xs = append(xs, x)
		}
	}
	sort.Float64s(xs)
	if len(xs) >= 2 {
		return math3d.V2((xs[0]+xs[1])/2, y), true
	}
	return math3d.Vec2{}, false
}
