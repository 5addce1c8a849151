package radiation

import "math"

// altForceMultiplier is the constant line-force boost applied when the
// alternative-opacity mode is on. Experimental.
const altForceMultiplier = 2.0

// Field is the radiation force felt by a gas parcel above the disc,
// in the optically-thin point-source approximation: acceleration of
// magnitude mdot e^-tau (1 + fm) / d^2 along the position vector, in
// geometric units (lengths in Rg, velocities in c).
type Field struct {
	Mdot   float64
	TauDr0 float64 // optical depth per Rg at the shielding density

	GravityOnly  bool // zero the force entirely
	AltOpacities bool // apply the constant force-multiplier boost
	OldIntegral  bool // evaluate tau at the launch distance only
}

// Accel returns the radiation acceleration components at (r, z).
// d0 is the parcel's launch distance, consumed only in old-integral
// mode where the attenuation is frozen at its launch value.
func (f *Field) Accel(r, z, d0 float64) (ar, az float64) {
	if f.GravityOnly {
		return 0, 0
	}
	d := math.Hypot(r, z)
	if d == 0 {
		return 0, 0
	}
	tau := f.TauDr0 * d
	if f.OldIntegral {
		tau = f.TauDr0 * d0
	}
	fm := 0.0
	if f.AltOpacities {
		fm = altForceMultiplier
	}
	a := f.Mdot * math.Exp(-tau) * (1 + fm) / (d * d)
	return a * r / d, a * z / d
}
