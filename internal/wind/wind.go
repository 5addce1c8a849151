// Package wind is the orchestration core of the disc-wind model: it
// derives the global black-hole and disc quantities, builds the radial
// launch grid, assigns each streamline its initial velocity, schedules
// the trajectory integrations over a worker pool and aggregates the
// escaping mass flux.
package wind

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/arnauq/qwind/internal/constants"
	"github.com/arnauq/qwind/internal/radiation"
	"github.com/arnauq/qwind/internal/streamline"
)

// Line is the view of a streamline the core needs: one integration call
// and the launch values consumed by the mass-loss aggregation.
type Line interface {
	Iterate(niter int) error
	Escaped() bool
	R0() float64
	Rho0() float64
	VT0() float64
}

// Params is the model configuration. Masses are in solar masses, radii
// in gravitational radii, temperatures in K, densities in cm^-3.
type Params struct {
	M    float64 // black hole mass [Msun]
	Mdot float64 // accretion ratio L / L_edd
	Spin float64
	Eta  float64 // accretion efficiency
	RIn  float64 // launch boundary override, used by OldBoundaries/Old
	ROut float64
	RMin float64 // inner disc radius
	RMax float64 // outer disc radius
	T    float64 // isothermal wind temperature [K]
	Mu   float64 // mean molecular weight

	Modes         ModeSet
	RhoShielding  float64 // shielding number density [cm^-3]
	IntSteps      int
	NR            int     // number of streamlines
	Dt            float64 // streamline timestep [Rg/c]
	SaveDir       string
	RadiationMode string
	NCPUs         int
}

// DefaultParams mirrors the historical constructor defaults.
func DefaultParams() Params {
	return Params{
		M:             2e8,
		Mdot:          0.5,
		Spin:          0,
		Eta:           0.06,
		RIn:           200,
		ROut:          1600,
		RMin:          6,
		RMax:          1400,
		T:             2e6,
		Mu:            1,
		RhoShielding:  2e8,
		IntSteps:      1,
		NR:            20,
		Dt:            4.096 / 10,
		SaveDir:       "results",
		RadiationMode: "qsosed",
		NCPUs:         1,
	}
}

// Model holds the global wind state: derived scalars, the radiation
// collaborator, the launch grid and, after StartLines, the integrated
// streamlines and their aggregate mass-loss rate.
type Model struct {
	p Params

	m      float64 // mass [g]
	rg     float64 // gravitational radius [cm]
	eddLum float64
	bolLum float64
	tauDr0 float64
	vTh    float64 // thermal velocity at p.T [c]

	rad       *radiation.Radiation
	rIn, rOut float64
	radii     []float64
	dr        float64
	lines     []Line
	mdotW     float64

	// OnSkip, if set, is called for each launch radius discarded for
	// lying inside the corona.
	OnSkip func(r float64)
	// Progress, if set, is called from the coordinating goroutine as
	// each streamline's integration completes.
	Progress func(done, total int, ln Line)
}

// New derives all global quantities, binds the radiation collaborator
// and builds the launch grid. Malformed parameters fail here, before
// any streamline exists.
func New(p Params) (*Model, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	m := &Model{p: p}
	m.m = p.M * constants.Msun
	m.rg = constants.G * m.m / (constants.C * constants.C)
	m.eddLum = constants.EmissivityConstant * m.rg
	m.bolLum = p.Mdot * m.eddLum
	m.tauDr0 = m.TauDr(p.RhoShielding)
	m.vTh = ThermalVelocity(p.T, p.Mu)

	field := &radiation.Field{
		Mdot:         p.Mdot,
		TauDr0:       m.tauDr0,
		GravityOnly:  p.Modes.Has(GravityOnly),
		AltOpacities: p.Modes.Has(AlternateOpacities),
		OldIntegral:  p.Modes.Has(OldIntegral),
	}
	rad, err := radiation.New(p.RadiationMode, radiation.Params{
		M:        m.m,
		Mdot:     p.Mdot,
		Eta:      p.Eta,
		Spin:     p.Spin,
		RMin:     p.RMin,
		RMax:     p.RMax,
		Rg:       m.rg,
		IntSteps: p.IntSteps,
	}, field)
	if err != nil {
		return nil, err
	}
	m.rad = rad

	m.rIn = 2 * rad.CoronaRadius()
	m.rOut = rad.GravityRadius()
	if p.Modes.Has(OldBoundaries) || p.Modes.Has(Old) {
		m.rIn = p.RIn
		m.rOut = p.ROut
	}

	m.radii, err = LaunchRadii(m.rIn, m.rOut, p.NR)
	if err != nil {
		return nil, err
	}
	if p.NR > 1 {
		m.dr = m.radii[1] - m.radii[0]
	}

	// Best effort; a pre-existing directory is the common case.
	if p.SaveDir != "" {
		_ = os.MkdirAll(p.SaveDir, 0755)
	}

	return m, nil
}

func validate(p Params) error {
	switch {
	case p.M <= 0:
		return fmt.Errorf("%w: M=%g", ErrBadParam, p.M)
	case p.Mdot <= 0:
		return fmt.Errorf("%w: mdot=%g", ErrBadParam, p.Mdot)
	case p.Eta <= 0:
		return fmt.Errorf("%w: eta=%g", ErrBadParam, p.Eta)
	case p.Mu <= 0:
		return fmt.Errorf("%w: mu=%g", ErrBadParam, p.Mu)
	case p.T <= 0:
		return fmt.Errorf("%w: T=%g", ErrBadParam, p.T)
	case p.RhoShielding <= 0:
		return fmt.Errorf("%w: rho_shielding=%g", ErrBadParam, p.RhoShielding)
	case p.NCPUs < 1:
		return fmt.Errorf("%w: n_cpus=%d", ErrBadParam, p.NCPUs)
	case p.NR < 1:
		return fmt.Errorf("%w: nr=%d", ErrGridSize, p.NR)
	}
	return nil
}

// Derived-scalar accessors.

func (m *Model) Rg() float64                     { return m.rg }
func (m *Model) Mass() float64                   { return m.m }
func (m *Model) EddingtonLuminosity() float64    { return m.eddLum }
func (m *Model) BolometricLuminosity() float64   { return m.bolLum }
func (m *Model) TauDr0() float64                 { return m.tauDr0 }
func (m *Model) VThermal() float64               { return m.vTh }
func (m *Model) RIn() float64                    { return m.rIn }
func (m *Model) ROut() float64                   { return m.rOut }
func (m *Model) Radiation() *radiation.Radiation { return m.rad }

// LaunchRadiiRange returns the launch grid. The slice is owned by the
// model; callers must not modify it.
func (m *Model) LaunchRadiiRange() []float64 { return m.radii }

// Lines returns the streamlines from the last StartLines call, index
// aligned with the non-skipped launch radii.
func (m *Model) Lines() []Line { return m.lines }

// MassLossRate returns the aggregate stored by the last StartLines call,
// in g/s.
func (m *Model) MassLossRate() float64 { return m.mdotW }

// TauDr is the optical depth per unit Rg at the given number density.
func (m *Model) TauDr(density float64) float64 {
	return constants.SigmaT * m.p.Mu * density * m.rg
}

// ThermalVelocity is the gas thermal velocity in units of c for a gas of
// temperature t and mean molecular weight mu.
func ThermalVelocity(t, mu float64) float64 {
	return math.Sqrt(constants.KB*t/(mu*constants.Mp)) / constants.C
}

// VKepler is the Keplerian tangential velocity at radius r [Rg], in c.
func VKepler(r float64) float64 { return math.Sqrt(1 / r) }

// VEsc is the escape velocity at spherical distance d [Rg], in c.
func VEsc(d float64) float64 { return math.Sqrt(2 / d) }

// LineOpts are the per-streamline launch values. Velocities are in cm/s,
// positions in Rg, density in cm^-3, dt in Rg/c.
type LineOpts struct {
	R0   float64
	Z0   float64
	Rho0 float64
	T    float64
	VR0  float64
	VZ0  float64
	Dt   float64
}

// DefaultLineOpts mirrors the historical per-line defaults.
func DefaultLineOpts() LineOpts {
	return LineOpts{
		R0:   375,
		Z0:   10,
		Rho0: 2e8,
		T:    2e6,
		VR0:  0,
		VZ0:  1e7,
		Dt:   4.096 / 10,
	}
}

// Line constructs one streamline bound to this model's radiation field.
// Pure factory; the line is not registered with the model.
func (m *Model) Line(o LineOpts) *streamline.Line {
	return streamline.New(m.rad.Field,
		o.R0, o.Z0, o.Rho0, o.T,
		o.VR0/constants.C, o.VZ0/constants.C, o.Dt)
}

// StartLines builds one streamline per launch radius (skipping radii
// inside the corona), integrates all of them for niter steps, stores the
// resulting mass-loss rate and returns the integrated sequence.
// vz0Default [cm/s] is used verbatim when CustomVelocity or Old is
// enabled. A single failing integration fails the whole call.
func (m *Model) StartLines(ctx context.Context, vz0Default float64, niter int) ([]Line, error) {
	lines := make([]Line, 0, len(m.radii))
	for _, r := range m.radii {
		vz0, ok := m.launchVelocity(r, vz0Default)
		if !ok {
			if m.OnSkip != nil {
				m.OnSkip(r)
			}
			continue
		}
		o := DefaultLineOpts()
		o.R0 = r
		o.VZ0 = vz0
		o.T = m.p.T
		if m.p.Dt > 0 {
			o.Dt = m.p.Dt
		}
		lines = append(lines, m.Line(o))
	}

	total := len(lines)
	done := 0
	progress := func(i int, ln Line) {
		done++
		if m.Progress != nil {
			m.Progress(done, total, ln)
		}
	}

	out, err := Evolve(ctx, lines, niter, m.p.NCPUs, progress)
	if err != nil {
		return nil, err
	}
	m.lines = out
	m.mdotW = m.ComputeWindMassLoss()
	return out, nil
}

// ComputeWindMassLoss aggregates the escaping mass flux over the current
// streamline sequence, in g/s. Zero when nothing escaped.
func (m *Model) ComputeWindMassLoss() float64 {
	return MassLoss(m.lines, m.dr, m.rg)
}
