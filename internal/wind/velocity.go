package wind

import (
	"math"

	"github.com/arnauq/qwind/internal/constants"
)

// coronaReferenceT is the reference temperature [K] substituted for the
// disc temperature in the transition region just outside the corona,
// where the gas is too ionized for the local blackbody temperature to
// set a meaningful velocity scale.
const coronaReferenceT = 2e6

// launchVelocity selects the initial vertical velocity [cm/s] for a
// streamline launched at radius r. First matching rule wins:
// a caller-supplied constant under CustomVelocity/Old, a skip inside the
// corona, the reference thermal velocity in the transition annulus, and
// the local disc thermal velocity beyond it.
func (m *Model) launchVelocity(r, vz0Default float64) (float64, bool) {
	if m.p.Modes.Has(CustomVelocity) || m.p.Modes.Has(Old) {
		return vz0Default, true
	}
	rc := m.rad.CoronaRadius()
	switch {
	case r <= rc:
		return 0, false
	case r < 2*rc:
		return ThermalVelocity(coronaReferenceT, m.p.Mu) * constants.C, true
	default:
		// DiskTemperature4 returns T^4; the fourth root recovers T.
		t := math.Pow(m.rad.DiskTemperature4(r), 0.25)
		return ThermalVelocity(t, m.p.Mu) * constants.C, true
	}
}
