package wind

import (
	"fmt"
	"math"
)

// LaunchRadii partitions [rIn, rOut] into nr cell-centered launch radii,
//
//	r_i = rIn + (i - 0.5) * dr,  dr = (rOut - rIn) / (nr - 1),  i = 1..nr.
//
// The spacing formula is undefined for nr == 1; that case degenerates to
// a single launch radius at rIn.
func LaunchRadii(rIn, rOut float64, nr int) ([]float64, error) {
	if nr < 1 {
		return nil, fmt.Errorf("%w: nr=%d", ErrGridSize, nr)
	}
	if !isFinite(rIn) || !isFinite(rOut) {
		return nil, fmt.Errorf("%w: r_in=%g r_out=%g", ErrBadParam, rIn, rOut)
	}
	if rIn >= rOut {
		return nil, fmt.Errorf("%w: r_in=%g r_out=%g", ErrGridBounds, rIn, rOut)
	}
	if nr == 1 {
		return []float64{rIn}, nil
	}

	dr := (rOut - rIn) / float64(nr-1)
	radii := make([]float64, nr)
	for i := 1; i <= nr; i++ {
		radii[i-1] = rIn + (float64(i)-0.5)*dr
	}
	return radii, nil
}

func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
