package radiation

import "github.com/arnauq/qwind/internal/constants"

// Simple is the regression-friendly SED: the launch boundaries are the
// user-supplied disc radii and the ISCO coincides with the inner disc
// edge. Used by tests and old-mode runs where the derived boundaries
// would get in the way.
type Simple struct {
	p       Params
	mdotAcc float64
}

func NewSimple(p Params) *Simple {
	ledd := constants.EmissivityConstant * p.Rg
	return &Simple{
		p:       p,
		mdotAcc: p.Mdot * ledd / (p.Eta * constants.C * constants.C),
	}
}

func (s *Simple) CoronaRadius() float64  { return s.p.RMin }
func (s *Simple) GravityRadius() float64 { return s.p.RMax }

func (s *Simple) DiskTemperature4(r float64) float64 {
	return ss73Temperature4(r, s.p.RMin, s.p.M, s.mdotAcc, s.p.Rg)
}
