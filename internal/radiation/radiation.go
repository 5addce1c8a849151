// Package radiation models the disc radiation field consumed by the wind
// core: the spectral energy distribution that fixes the launch-region
// boundaries and disc temperature profile, and the radiation force felt
// by gas parcels above the disc.
package radiation

import "fmt"

// SED exposes the disc boundary radii and temperature profile. Radii are
// in gravitational-radius units; DiskTemperature4 returns the local disc
// temperature raised to the fourth power, in K^4.
type SED interface {
	CoronaRadius() float64
	GravityRadius() float64
	DiskTemperature4(r float64) float64
}

// Params carries the black-hole and disc quantities an SED needs.
type Params struct {
	M    float64 // black hole mass [g]
	Mdot float64 // accretion ratio L / L_edd
	Eta  float64 // accretion efficiency
	Spin float64 // dimensionless spin in [0, 1)
	RMin float64 // inner disc radius [Rg]
	RMax float64 // outer disc radius [Rg]
	Rg   float64 // gravitational radius [cm]

	XRayFraction float64 // fraction of disc dissipation assigned to the corona
	IntSteps     int     // refinement factor for the dissipation integral
}

// Radiation bundles an SED with the force field derived from it.
type Radiation struct {
	SED
	Field *Field
}

// New constructs the radiation model named by mode ("qsosed" or "simple").
func New(mode string, p Params, f *Field) (*Radiation, error) {
	sed, err := NewSED(mode, p)
	if err != nil {
		return nil, err
	}
	return &Radiation{SED: sed, Field: f}, nil
}

// NewSED constructs the SED implementation named by mode.
func NewSED(mode string, p Params) (SED, error) {
	switch mode {
	case "", "qsosed":
		return NewQSOSED(p), nil
	case "simple":
		return NewSimple(p), nil
	default:
		return nil, fmt.Errorf("radiation: unknown mode %q", mode)
	}
}
