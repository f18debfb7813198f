package infill

import (
	"sort"

	"github.com/krasin/steel-slicer/math3d"
)

// regionContains reports whether p lies inside the region described
// by loops using even-odd parity across all of them. This works
// whether a given loop is an outer boundary or a hole without needing
// to know which — nested containment naturally comes out odd (hole)
// or even (outer), the same principle contour.Build uses for depth
// classification.
func regionContains(p math3d.Vec2, loops [][]math3d.Vec2) bool {
	inside := false
	for _, ring := range loops {
		if pointInRing(p, ring) {
			inside = !inside
		}
	}
	return inside
}

func pointInRing(p math3d.Vec2, ring []math3d.Vec2) bool {
	in := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := ring[i], ring[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xCross := vj.X + (p.Y-vj.Y)/(vi.Y-vj.Y)*(vi.X-vj.X)
			if p.X < xCross {
				in = !in
			}
		}
	}
	return in
}

// clipPolyline splits line into the sub-polylines that lie inside
// region, mirroring the source's per-wave shapely intersection
// against the innermost offset polygon.
func clipPolyline(line []math3d.Vec2, region [][]math3d.Vec2) [][]math3d.Vec2 {
	if len(line) < 2 {
		return nil
	}

	var out [][]math3d.Vec2
	var current []math3d.Vec2
	inside := regionContains(line[0], region)
	if inside {
		current = []math3d.Vec2{line[0]}
	}

	for i := 0; i < len(line)-1; i++ {
		a, b := line[i], line[i+1]
		ts := segmentCrossings(a, b, region)
		for _, t := range ts {
			pt := a.Lerp(b, t)
			if inside {
				current = append(current, pt)
				if len(current) >= 2 {
					out = append(out, current)
				}
				current = nil
			} else {
				current = []math3d.Vec2{pt}
			}
			inside = !inside
		}
		if inside {
			current = append(current, b)
		}
	}

	if inside && len(current) >= 2 {
		out = append(out, current)
	}

	return out
}

// segmentCrossings returns the sorted, deduplicated parametric
// positions (in (0,1)) where segment a-b crosses any edge of region.
func segmentCrossings(a, b math3d.Vec2, region [][]math3d.Vec2) []float64 {
	var ts []float64
	for _, ring := range region {
		n := len(ring)
		for i := 0; i < n; i++ {
			p, q := ring[i], ring[(i+1)%n]
			if t, ok := segmentIntersectT(a, b, p, q); ok {
				ts = append(ts, t)
			}
		}
	}
	sort.Float64s(ts)
	return dedupTs(ts)
}

func segmentIntersectT(a, b, p, q math3d.Vec2) (float64, bool) {
	d1 := b.Sub(a)
	d2 := q.Sub(p)
	denom := d1.X*d2.Y - d1.Y*d2.X
	if denom == 0 {
		return 0, false
	}
	t := ((p.X-a.X)*d2.Y - (p.Y-a.Y)*d2.X) / denom
	s := ((p.X-a.X)*d1.Y - (p.Y-a.Y)*d1.X) / denom
	if t <= 0 || t >= 1 || s < 0 || s >= 1 {
		return 0, false
	}
	return t, true
}

func dedupTs(ts []float64) []float64 {
	var out []float64
	for _, t := range ts {
		if len(out) == 0 || t-out[len(out)-1] > 1e-9 {
			out = append(out, t)
		}
	}
	return out
}
