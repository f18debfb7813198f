package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"fortio.org/log"
	"golang.org/x/sync/errgroup"

	"github.com/krasin/steel-slicer/contour"
	"github.com/krasin/steel-slicer/infill"
	"github.com/krasin/steel-slicer/math3d"
	"github.com/krasin/steel-slicer/mesh"
	"github.com/krasin/steel-slicer/perimeter"
	"github.com/krasin/steel-slicer/slicer"
)

// Config holds the per-run slicing parameters (§6's CLI flags map
// directly onto these fields).
type Config struct {
	LayerMode     slicer.LayerMode
	LayerValue    float64
	LineWidth     float64
	WallCount     int
	LineSpacing   float64
	SamplingStep  float64
	Tolerance     float64
	MaxIterations int
}

// LayerResult is one slicing plane's fully assembled geometry: the
// contour polygons, the wall loops cut from them, and the merged
// perimeter+infill vertex/edge graph lifted to 3D at Z.
type LayerResult struct {
	Z        float64
	Polygons []contour.PolygonWithHoles
	Walls    [][]perimeter.Wall

	// InfillVertices/InfillEdges are the dedup'd infill-only graph for
	// this layer (§4.5/§4.6's infill_vertices/infill_edges), lifted to
	// z = Z. Vertices/Edges below is the separate merged view that
	// fuses these with the wall loops.
	InfillVertices []math3d.Vec3
	InfillEdges    [][2]int

	Vertices []math3d.Vec3
	Edges    [][2]int
}

// Result is the full multi-layer output of Run.
type Result struct {
	Layers []LayerResult
	Errors []*LayerError
}

// Run slices m according to cfg, processing layers concurrently
// across up to runtime.GOMAXPROCS(0) workers. A failure in the mesh
// or schedule stage aborts the whole run; a failure isolated to one
// layer (non-manifold slice, degenerate offset) is recorded in
// Result.Errors and does not stop the other layers (§7).
func Run(ctx context.Context, m *mesh.Mesh, cfg Config) (*Result, error) {
	if m.TriangleCount() == 0 {
		return nil, fmt.Errorf("pipeline: %s: %w", KindEmptyMesh, mesh.ErrUnsupportedFormat)
	}

	minB, maxB := m.Bounds()
	zs, err := slicer.Schedule(cfg.LayerMode, cfg.LayerValue, minB.Z, maxB.Z)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", KindInvalidSchedule, err)
	}

	layers := make([]LayerResult, len(zs))
	var mu sync.Mutex
	var layerErrs []*LayerError

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, z0 := range zs {
		i, z0 := i, z0
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lr, layerErr := sliceLayer(m, z0, cfg)
			layers[i] = lr
			if layerErr != nil {
				layerErr.LayerIndex = i
				mu.Lock()
				layerErrs = append(layerErrs, layerErr)
				mu.Unlock()
				log.Warnf("layer %d (z=%.4f): %v", i, z0, layerErr)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(layerErrs, func(a, b int) bool { return layerErrs[a].LayerIndex < layerErrs[b].LayerIndex })
	return &Result{Layers: layers, Errors: layerErrs}, nil
}

// sliceLayer runs S2–S5 for one plane. A LayerError return value
// never aborts the caller's loop — the layer is simply recorded as
// failed and processing continues.
func sliceLayer(m *mesh.Mesh, z0 float64, cfg Config) (LayerResult, *LayerError) {
	lr := LayerResult{Z: z0}

	zs := slicer.Slice(m, z0)
	polys, buildErr := contour.Build(zs)
	if len(polys) == 0 {
		if buildErr != nil {
			return lr, &LayerError{Kind: KindNonManifoldSlice, Z: z0, Reason: buildErr}
		}
		return lr, nil // an empty cross-section is not an error: the plane simply misses the model
	}
	lr.Polygons = polys

	var allInfillLines [][]math3d.Vec2
	lr.Walls = make([][]perimeter.Wall, len(polys))
	var degenerateErr error

	for pi, poly := range polys {
		walls, err := perimeter.GenerateWalls(poly, cfg.LineWidth, cfg.WallCount)
		if err != nil {
			degenerateErr = err
			continue
		}
		lr.Walls[pi] = walls

		region := perimeter.InteriorRegion(poly, cfg.LineWidth, cfg.WallCount)
		lines := infill.Generate(region, z0, infill.Params{
			LineSpacing:   cfg.LineSpacing,
			Tolerance:     cfg.Tolerance,
			MaxIterations: cfg.MaxIterations,
			SamplingStep:  cfg.SamplingStep,
		})
		allInfillLines = append(allInfillLines, lines...)
	}

	lr.InfillVertices, lr.InfillEdges = liftInfillGraph(z0, allInfillLines)
	lr.Vertices, lr.Edges = buildLayerGraph(z0, lr.Walls, allInfillLines)

	switch {
	case buildErr != nil:
		return lr, &LayerError{Kind: KindNonManifoldSlice, Z: z0, Reason: buildErr}
	case degenerateErr != nil:
		return lr, &LayerError{Kind: KindDegenerateGeometry, Z: z0, Reason: degenerateErr}
	default:
		return lr, nil
	}
}

// liftInfillGraph builds the infill-only vertex/edge graph via
// infill.BuildGraph (the §4.5 dedup pass) and lifts its 2D vertices to
// 3D at z0, giving the distinct infill_vertices/infill_edges view §4.6
// requires alongside the merged all_vertices/all_edges graph.
func liftInfillGraph(z0 float64, infillLines [][]math3d.Vec2) ([]math3d.Vec3, [][2]int) {
	g := infill.BuildGraph(infillLines)
	vertices := make([]math3d.Vec3, len(g.Vertices))
	for i, v := range g.Vertices {
		vertices[i] = math3d.V3(v.X, v.Y, z0)
	}
	return vertices, g.Edges
}

// buildLayerGraph merges the wall-loop edges and the infill polyline
// edges into one deduplicated 3D vertex/edge graph, mirroring the
// original's InfillSlice vertex merge (§4.6).
func buildLayerGraph(z0 float64, walls [][]perimeter.Wall, infillLines [][]math3d.Vec2) ([]math3d.Vec3, [][2]int) {
	idx := make(map[[3]float64]int)
	var vertices []math3d.Vec3
	var edges [][2]int

	add := func(p math3d.Vec2) int {
		v := math3d.V3(p.X, p.Y, z0)
		key := v.Key9()
		if i, ok := idx[key]; ok {
			return i
		}
		i := len(vertices)
		vertices = append(vertices, v)
		idx[key] = i
		return i
	}

	for _, perPoly := range walls {
		for _, w := range perPoly {
			for _, loop := range w.Loops {
				n := len(loop)
				if n < 2 {
					continue
				}
				for i := 0; i < n; i++ {
					a := add(loop[i])
					b := add(loop[(i+1)%n])
					if a != b {
						edges = append(edges, [2]int{a, b})
					}
				}
			}
		}
	}

	for _, line := range infillLines {
		if len(line) < 2 {
			continue
		}
		prev := add(line[0])
		for _, p := range line[1:] {
			curr := add(p)
			if curr != prev {
				edges = append(edges, [2]int{prev, curr})
			}
			prev = curr
		}
	}

	return vertices, edges
}
