package infill

import "github.com/krasin/steel-slicer/math3d"

// tileWaveGrid repeats the sampled wave (xs, ys) across the bounding
// box, producing one polyline per repetition. Offsets start at
// -waveSpacing/2 and step by waveSpacing while below height. Horizontal
// copies are shifted along y by offset-height/2; vertical copies have
// their axes swapped and are shifted along x by -1.25*offset, so they
// lie 1.25*waveSpacing apart.
func tileWaveGrid(xs, ys []float64, minX, minY, width, height, waveSpacing float64, vertical bool) [][]math3d.Vec2 {
	if len(xs) < 2 || len(ys) < 2 {
		return nil
	}

	var lines [][]math3d.Vec2
	for offset := -waveSpacing / 2; offset < height; offset += waveSpacing {
		line := make([]math3d.Vec2, len(xs))
		if vertical {
			for i := range xs {
				// Swap axes: the sampler ran with width/height
				// swapped, so (x, y) here is (along-height, along-width).
				line[i] = math3d.V2(ys[i]+minX-offset*1.25, xs[i]+minY)
			}
		} else {
			for i := range xs {
				line[i] = math3d.V2(xs[i]+minX, ys[i]+minY+offset-height*0.5)
			}
		}
		lines = append(lines, line)
	}
	return lines
}
