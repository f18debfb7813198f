// Package contour reconstructs oriented closed loops from a ZSlice's
// edge soup and classifies them into polygons-with-holes (S3).
package contour

import (
	"errors"
	"math"

	"github.com/krasin/steel-slicer/math3d"
	"github.com/krasin/steel-slicer/slicer"
)

// PolygonWithHoles is one outer ring plus zero or more hole rings, all
// expressed as ordered 2D point sequences (no winding convention is
// enforced — containment is derived from even-odd depth, per spec.md §9).
type PolygonWithHoles struct {
	Outer []math3d.Vec2
	Holes [][]math3d.Vec2
}

// ErrNonManifoldSlice is returned alongside whatever polygons could
// still be reconstructed when the edge soup contained a dead end —
// an edge whose traversal could not return to its seed vertex, which
// only happens for a non-manifold mesh region (§7).
var ErrNonManifoldSlice = errors.New("contour: non-manifold slice, one or more loops did not close")

// Build reconstructs the polygons-with-holes for one ZSlice. If part
// of the edge soup could not be closed into loops, it still returns
// every polygon it could build, alongside ErrNonManifoldSlice.
func Build(zs *slicer.ZSlice) ([]PolygonWithHoles, error) {
	rings, nonManifold := extractLoops(zs)
	var err error
	if nonManifold {
		err = ErrNonManifoldSlice
	}
	if len(rings) == 0 {
		return nil, err
	}

	reps := make([]math3d.Vec2, len(rings))
	for i, r := range rings {
		reps[i] = representativePoint(r)
	}

	depth := make([]int, len(rings))
	for i := range rings {
		for j := range rings {
			if i == j {
				continue
			}
			if pointInRing(reps[i], rings[j]) {
				depth[i]++
			}
		}
	}

	var result []PolygonWithHoles
	outerIndex := make(map[int]int) // ring index -> index into result
	for i, r := range rings {
		if depth[i]%2 == 0 {
			outerIndex[i] = len(result)
			result = append(result, PolygonWithHoles{Outer: r})
		}
	}

	for i, r := range rings {
		if depth[i]%2 != 1 {
			continue
		}
		// Attach to the first outer ring one depth level up that
		// contains this hole's representative point (assembly-order
		// tiebreak, per §4.3).
		for j := range rings {
			if depth[j] != depth[i]-1 {
				continue
			}
			if !pointInRing(reps[i], rings[j]) {
				continue
			}
			if oi, ok := outerIndex[j]; ok {
				result[oi].Holes = append(result[oi].Holes, r)
				break
			}
		}
	}

	return result, err
}

// extractLoops walks the ZSlice's adjacency multimap, peeling off
// closed loops until the adjacency is empty, per §4.3. The second
// return value reports whether any traversal hit a dead end instead
// of closing back on its seed vertex.
func extractLoops(zs *slicer.ZSlice) ([][]math3d.Vec2, bool) {
	adj := make(map[int][]int)
	for _, e := range zs.Edges {
		adj[e[0]] = append(adj[e[0]], e[1])
		adj[e[1]] = append(adj[e[1]], e[0])
	}

	var loops [][]math3d.Vec2
	nonManifold := false

	for len(adj) > 0 {
		var start int
		for k := range adj {
			start = k
			break
		}

		visited := make(map[slicer.Edge]bool)
		current := start
		indices := []int{start}

		for {
			neighbors := adj[current]
			next := -1
			for _, n := range neighbors {
				e := sortedEdge(current, n)
				if !visited[e] {
					next = n
					break
				}
			}
			if next == -1 {
				break // dead end: non-manifold slice, partial ring dropped below
			}
			visited[sortedEdge(current, next)] = true
			indices = append(indices, next)
			current = next
			if current == start {
				break
			}
		}

		// Remove every traversed edge from the adjacency, dropping
		// vertices whose adjacency becomes empty.
		for i := 0; i < len(indices)-1; i++ {
			a, b := indices[i], indices[i+1]
			adj[a] = removeOne(adj[a], b)
			adj[b] = removeOne(adj[b], a)
			if len(adj[a]) == 0 {
				delete(adj, a)
			}
			if len(adj[b]) == 0 {
				delete(adj, b)
			}
		}

		if current != start {
			nonManifold = true
			continue
		}
		if distinctCount(indices) >= 3 {
			ring := make([]math3d.Vec2, 0, len(indices)-1)
			for _, idx := range indices[:len(indices)-1] {
				ring = append(ring, zs.Vertices[idx].Vec2())
			}
			// Drop vertices lying on the straight line through their two
			// neighbours (e.g. where a side face's triangulation diagonal
			// crosses the plane midway along a straight side).
			kept := make([]math3d.Vec2, 0, len(ring))
			for k, p := range ring {
				prev, next := ring[(k+len(ring)-1)%len(ring)], ring[(k+1)%len(ring)]
				u, w := p.Sub(prev), next.Sub(p)
				if math.Abs(u.X*w.Y-u.Y*w.X) > 1e-9*u.Len()*w.Len() {
					kept = append(kept, p)
				}
			}
			if len(kept) >= 3 {
				loops = append(loops, kept)
			}
		}
	}

	return loops, nonManifold
}

func sortedEdge(a, b int) slicer.Edge {
	if a > b {
		a, b = b, a
	}
	return slicer.Edge{a, b}
}

func removeOne(xs []int, v int) []int {
	for i, x := range xs {
		if x == v {
			return append(xs[:i], xs[i+1:]...)
		}
	}
	return xs
}

func distinctCount(xs []int) int {
	seen := make(map[int]bool, len(xs))
	for _, x := range xs {
		seen[x] = true
	}
	return len(seen)
}
