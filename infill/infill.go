package infill

import "github.com/krasin/steel-slicer/math3d"

// Generate samples the gyroid pattern at z0 and clips it to region
// (the interior area left after wall generation), returning one
// polyline per continuous stretch of infill, per §4.5.
func Generate(region [][]math3d.Vec2, z0 float64, p Params) [][]math3d.Vec2 {
	if len(region) == 0 {
		return nil
	}

	minX, minY, maxX, maxY := bounds(region)
	width, height := maxX-minX, maxY-minY
	if width <= 0 || height <= 0 {
		return nil
	}

	vertical := orientation(z0)
	xs, ys := samplePeriod(width, height, z0, vertical, p)
	waves := tileWaveGrid(xs, ys, minX, minY, width, height, p.LineSpacing*3, vertical)

	var lines [][]math3d.Vec2
	for _, wave := range waves {
		lines = append(lines, clipPolyline(wave, region)...)
	}
	return lines
}

func bounds(region [][]math3d.Vec2) (minX, minY, maxX, maxY float64) {
	first := true
	for _, ring := range region {
		for _, p := range ring {
			if first {
				minX, maxX = p.X, p.X
				minY, maxY = p.Y, p.Y
				first = false
				continue
			}
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	return
}
