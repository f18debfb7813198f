package infill

import "math"

// Params controls the adaptive sampler and the dead-letter bounds on
// its refinement loop.
type Params struct {
	LineSpacing   float64
	Tolerance     float64
	MaxIterations int
	// SamplingStep is the base step Δx walked across one gyroid period
	// before adaptive refinement kicks in. Zero means the default π/50.
	SamplingStep float64
}

// samplePeriod samples the gyroid wave over [0, width) at base step Δx
// (with width/height swapped for vertical orientation). A base sample
// is kept only when the slope from the last kept sample to it exceeds
// tolerance, and is then kept together with the midpoint between the
// two; base samples within tolerance are not kept. Each base step adds
// at most one midpoint, since the next refinement pass compares the
// sample with itself and stops, and MaxIterations of zero keeps only
// the sample at x=0.
func samplePeriod(width, height, z float64, vertical bool, p Params) (xs, ys []float64) {
	if vertical {
		width, height = height, width
	}
	dx := p.SamplingStep
	if dx <= 0 {
		dx = math.Pi / 50
	}

	xs = []float64{0.0}
	ys = []float64{normalize(gyroidSlice(0, z, vertical), height)}

	for x := dx; x < width; x += dx {
		y := normalize(gyroidSlice(x, z, vertical), height)
		for i := 0; i < p.MaxIterations; i++ {
			lastX, lastY := xs[len(xs)-1], ys[len(ys)-1]
			denom := x - lastX
			if denom < 1e-12 {
				denom = 1e-12
			}
			if math.Abs((y-lastY)/denom) <= p.Tolerance {
				break
			}
			xm := (x + lastX) / 2
			ym := normalize(gyroidSlice(xm, z, vertical), height)
			xs = append(xs, xm, x)
			ys = append(ys, ym, y)
		}
	}

	return xs, ys
}
