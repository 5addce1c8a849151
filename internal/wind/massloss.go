package wind

import (
	"math"

	"github.com/arnauq/qwind/internal/constants"
)

// MassLoss sums the annulus-area-weighted mass flux over the escaped
// subset of lines, in g/s. dR is the uniform launch-grid spacing and rg
// the gravitational radius [cm]. An empty escaped subset yields zero.
func MassLoss(lines []Line, dR, rg float64) float64 {
	total := 0.0
	for _, ln := range lines {
		if !ln.Escaped() {
			continue
		}
		total += LineFlux(ln.R0(), ln.Rho0(), ln.VT0(), dR, rg)
	}
	return total
}

// LineFlux is the mass flux [g/s] carried through the annulus of one
// streamline launched at r0 with density rho0 [cm^-3] and launch speed
// vT0 [c].
func LineFlux(r0, rho0, vT0, dR, rg float64) float64 {
	area := 2 * math.Pi * ((r0+dR)*(r0+dR) - r0*r0) * rg * rg
	return rho0 * constants.Mp * vT0 * constants.C * area
}
