package infill

import "github.com/krasin/steel-slicer/math3d"

// Graph is the deduplicated vertex/edge representation of a set of
// infill polylines for one layer, mirroring the mesh package's vertex
// dedup convention.
type Graph struct {
	Vertices []math3d.Vec2
	Edges    [][2]int
}

// BuildGraph flattens lines into a Graph, merging vertices that land
// on the same 9-decimal-place key.
func BuildGraph(lines [][]math3d.Vec2) Graph {
	idx := make(map[[2]float64]int)
	var g Graph

	add := func(p math3d.Vec2) int {
		key := p.Key9()
		if i, ok := idx[key]; ok {
			return i
		}
		i := len(g.Vertices)
		g.Vertices = append(g.Vertices, p)
		idx[key] = i
		return i
	}

	for _, line := range lines {
		if len(line) < 2 {
			continue
		}
		prev := add(line[0])
		for _, p := range line[1:] {
			curr := add(p)
			if curr != prev {
				g.Edges = append(g.Edges, [2]int{prev, curr})
			}
			prev = curr
		}
	}

	return g
}
