package radiation

import (
	"math"

	"github.com/arnauq/qwind/internal/constants"
)

const (
	defaultXRayFraction = 0.15
	selfGravityAlpha    = 0.1
	dissipationSamples  = 512
)

// QSOSED is the default disc spectral model: a Shakura-Sunyaev
// temperature profile with a spin-dependent ISCO, a corona radius
// enclosing a fixed fraction of the disc dissipation, and the
// Laor-Netzer self-gravity radius as the outer launching boundary.
type QSOSED struct {
	p       Params
	isco    float64
	mdotAcc float64 // mass accretion rate [g/s]
	corona  float64
	gravity float64
}

func NewQSOSED(p Params) *QSOSED {
	if p.XRayFraction <= 0 {
		p.XRayFraction = defaultXRayFraction
	}
	if p.IntSteps < 1 {
		p.IntSteps = 1
	}
	s := &QSOSED{p: p}
	s.isco = ISCORadius(p.Spin)
	ledd := constants.EmissivityConstant * p.Rg
	s.mdotAcc = p.Mdot * ledd / (p.Eta * constants.C * constants.C)
	s.gravity = selfGravityRadius(p.M, p.Mdot)
	s.corona = s.coronaRadius()
	return s
}

func (s *QSOSED) CoronaRadius() float64  { return s.corona }
func (s *QSOSED) GravityRadius() float64 { return s.gravity }

// DiskTemperature4 evaluates the SS73 effective temperature to the
// fourth power at radius r [Rg]. Zero inside the ISCO.
func (s *QSOSED) DiskTemperature4(r float64) float64 {
	return ss73Temperature4(r, s.isco, s.p.M, s.mdotAcc, s.p.Rg)
}

func ss73Temperature4(r, isco, m, mdotAcc, rg float64) float64 {
	if r <= isco {
		return 0
	}
	rPhys := r * rg
	t4 := 3 * constants.G * m * mdotAcc / (8 * math.Pi * constants.SigmaSB * rPhys * rPhys * rPhys)
	return t4 * (1 - math.Sqrt(isco/r))
}

// ISCORadius is the prograde innermost stable circular orbit in Rg,
// from the Bardeen, Press & Teukolsky (1972) expressions.
func ISCORadius(spin float64) float64 {
	a2 := spin * spin
	z1 := 1 + math.Cbrt(1-a2)*(math.Cbrt(1+spin)+math.Cbrt(1-spin))
	z2 := math.Sqrt(3*a2 + z1*z1)
	return 3 + z2 - math.Sqrt((3-z1)*(3+z1+2*z2))
}

// selfGravityRadius is the Laor & Netzer (1989) radius beyond which the
// disc becomes self-gravitating, in Rg.
func selfGravityRadius(m, mdot float64) float64 {
	m9 := m / (1e9 * constants.Msun)
	return 2150 * math.Pow(m9, -2.0/9.0) * math.Pow(mdot, 4.0/9.0) * math.Pow(selfGravityAlpha, 2.0/9.0)
}

// coronaRadius finds the radius enclosing XRayFraction of the total disc
// dissipation, by a cumulative trapezoid sum of sigma_SB T^4 2 pi r dr
// over a logarithmic grid from the ISCO to RMax.
func (s *QSOSED) coronaRadius() float64 {
	n := dissipationSamples * s.p.IntSteps
	rOut := s.p.RMax
	if rOut <= s.isco {
		return s.isco
	}
	lr0 := math.Log(s.isco)
	dlr := (math.Log(rOut) - lr0) / float64(n-1)

	radii := make([]float64, n)
	integrand := make([]float64, n)
	for i := 0; i < n; i++ {
		r := math.Exp(lr0 + float64(i)*dlr)
		radii[i] = r
		// both disc faces; constant factors cancel in the fraction
		integrand[i] = s.DiskTemperature4(r) * r
	}

	total := 0.0
	cum := make([]float64, n)
	for i := 1; i < n; i++ {
		total += 0.5 * (integrand[i] + integrand[i-1]) * (radii[i] - radii[i-1])
		cum[i] = total
	}
	if total == 0 {
		return s.isco
	}

	target := s.p.XRayFraction * total
	for i := 1; i < n; i++ {
		if cum[i] >= target {
			// linear interpolation inside the crossing interval
			f := (target - cum[i-1]) / (cum[i] - cum[i-1])
			return radii[i-1] + f*(radii[i]-radii[i-1])
		}
	}
	return rOut
}
