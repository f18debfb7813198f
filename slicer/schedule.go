package slicer

import (
	"errors"
	"fmt"
)

// ErrInvalidSchedule is returned when the requested layer schedule
// cannot be generated: a thickness step too large for the model's
// height, or a layer count of 1 or fewer.
var ErrInvalidSchedule = errors.New("slicer: invalid layer schedule")

// LayerMode selects how the z-schedule is generated.
type LayerMode int

const (
	// Thickness generates an arithmetic progression from minZ to maxZ
	// with a fixed step.
	Thickness LayerMode = iota
	// Count generates n linearly spaced values from minZ to maxZ.
	Count
)

// topClamp is subtracted from the nominal top z so no layer samples
// exactly on the topmost face.
const topClamp = 1e-5

// Schedule generates the ordered z-values to slice at, per §3's
// "Layer schedule" rules. minZ/maxZ are the model's bounding range.
func Schedule(mode LayerMode, value, minZ, maxZ float64) ([]float64, error) {
	height := maxZ - minZ
	switch mode {
	case Thickness:
		step := value
		if step <= 0 || step >= height/2 {
			return nil, fmt.Errorf("%w: thickness step %g invalid for model height %g", ErrInvalidSchedule, step, height)
		}
		// Matches the source's np.arange(min_z, max_z+step, step): the
		// stop bound is pushed out by one step so the raw schedule
		// always reaches max_z before the top-clamp below is applied.
		var zs []float64
		for z := minZ; z < maxZ+step; z += step {
			zs = append(zs, z)
		}
		if len(zs) == 0 {
			return nil, fmt.Errorf("%w: no layers generated", ErrInvalidSchedule)
		}
		zs[len(zs)-1] = maxZ - topClamp
		return zs, nil

	case Count:
		n := int(value)
		if n <= 1 {
			return nil, fmt.Errorf("%w: layer count %d must be > 1", ErrInvalidSchedule, n)
		}
		zs := make([]float64, n)
		for i := range n {
			t := float64(i) / float64(n-1)
			zs[i] = minZ + t*height
		}
		zs[n-1] = maxZ - topClamp
		return zs, nil

	default:
		return nil, fmt.Errorf("%w: unknown layer mode %d", ErrInvalidSchedule, mode)
	}
}
