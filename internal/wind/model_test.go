package wind

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arnauq/qwind/internal/constants"
)

// simpleParams keeps tests deterministic: the simple SED pins the corona
// radius to r_min and the gravity radius to r_max.
func simpleParams() Params {
	p := DefaultParams()
	p.SaveDir = ""
	p.RadiationMode = "simple"
	return p
}

var _ = Describe("velocity scales", func() {
	It("computes the Keplerian velocity", func() {
		Expect(VKepler(4)).To(BeNumerically("~", 0.5, 1e-12))
		Expect(VKepler(100)).To(BeNumerically("~", 0.1, 1e-12))
	})

	It("computes the escape velocity", func() {
		Expect(VEsc(2)).To(BeNumerically("~", 1.0, 1e-12))
	})

	It("relates escape and Keplerian velocities by sqrt(2)", func() {
		for _, d := range []float64{1, 6, 100, 1e4} {
			Expect(VEsc(d)).To(BeNumerically("~", math.Sqrt2*VKepler(d), 1e-12))
		}
	})

	It("computes a sub-relativistic thermal velocity", func() {
		v := ThermalVelocity(2e6, 1)
		Expect(v).To(BeNumerically(">", 0))
		Expect(v).To(BeNumerically("<", 1e-2))
		// hotter gas moves faster
		Expect(ThermalVelocity(4e6, 1)).To(BeNumerically(">", v))
	})
})

var _ = Describe("Model construction", func() {
	It("derives the gravitational radius and luminosities", func() {
		m, err := New(simpleParams())
		Expect(err).NotTo(HaveOccurred())

		Expect(m.Rg()).To(Equal(constants.G * m.Mass() / (constants.C * constants.C)))
		Expect(m.EddingtonLuminosity()).To(BeNumerically(">", 0))
		Expect(m.BolometricLuminosity()).To(Equal(0.5 * m.EddingtonLuminosity()))
	})

	It("scales the Eddington luminosity linearly with mass", func() {
		p1 := simpleParams()
		p2 := simpleParams()
		p2.M = 2 * p1.M

		m1, err := New(p1)
		Expect(err).NotTo(HaveOccurred())
		m2, err := New(p2)
		Expect(err).NotTo(HaveOccurred())

		Expect(m2.EddingtonLuminosity() / m1.EddingtonLuminosity()).To(BeNumerically("~", 2, 1e-12))
	})

	It("derives boundaries from the SED by default", func() {
		m, err := New(simpleParams())
		Expect(err).NotTo(HaveOccurred())
		// simple SED: corona at r_min, gravity radius at r_max
		Expect(m.RIn()).To(BeNumerically("~", 12, 1e-12))
		Expect(m.ROut()).To(BeNumerically("~", 1400, 1e-12))
	})

	It("honors the old-boundaries override", func() {
		p := simpleParams()
		p.Modes = p.Modes.With(OldBoundaries)
		m, err := New(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.RIn()).To(Equal(200.0))
		Expect(m.ROut()).To(Equal(1600.0))
	})

	It("rejects an inverted boundary override", func() {
		p := simpleParams()
		p.Modes = p.Modes.With(OldBoundaries)
		p.RIn = 1600
		p.ROut = 200
		_, err := New(p)
		Expect(err).To(MatchError(ErrGridBounds))
	})

	It("fails fast on malformed parameters", func() {
		for _, mutate := range []func(*Params){
			func(p *Params) { p.M = 0 },
			func(p *Params) { p.Mdot = -1 },
			func(p *Params) { p.Eta = 0 },
			func(p *Params) { p.Mu = 0 },
			func(p *Params) { p.T = 0 },
			func(p *Params) { p.NCPUs = 0 },
		} {
			p := simpleParams()
			mutate(&p)
			_, err := New(p)
			Expect(err).To(MatchError(ErrBadParam))
		}

		p := simpleParams()
		p.NR = 0
		_, err := New(p)
		Expect(err).To(MatchError(ErrGridSize))
	})

	It("builds the launch grid at construction", func() {
		p := simpleParams()
		p.NR = 4
		p.Modes = p.Modes.With(OldBoundaries)
		p.RIn = 100
		p.ROut = 1600
		m, err := New(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.LaunchRadiiRange()).To(HaveLen(4))
		Expect(m.LaunchRadiiRange()[0]).To(BeNumerically("~", 350, 1e-9))
	})
})

var _ = Describe("initial velocity selection", func() {
	It("returns the caller constant under custom_vel for every radius", func() {
		p := simpleParams()
		p.Modes = p.Modes.With(CustomVelocity)
		m, err := New(p)
		Expect(err).NotTo(HaveOccurred())

		for _, r := range []float64{3, 10, 100, 1000} {
			v, ok := m.launchVelocity(r, 12345)
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(12345.0))
		}
	})

	It("substitutes the reference temperature just outside the corona", func() {
		m, err := New(simpleParams())
		Expect(err).NotTo(HaveOccurred())

		rc := m.Radiation().CoronaRadius()
		v, ok := m.launchVelocity(1.5*rc, 0)
		Expect(ok).To(BeTrue())
		Expect(v).To(BeNumerically("~", ThermalVelocity(2e6, 1)*constants.C, 1e-6))
	})

	It("uses the local disc temperature far from the corona", func() {
		m, err := New(simpleParams())
		Expect(err).NotTo(HaveOccurred())

		rc := m.Radiation().CoronaRadius()
		t4 := m.Radiation().DiskTemperature4(3 * rc)
		Expect(t4).To(BeNumerically(">", 0))

		v, ok := m.launchVelocity(3*rc, 0)
		Expect(ok).To(BeTrue())
		Expect(v).To(BeNumerically("~", ThermalVelocity(math.Pow(t4, 0.25), 1)*constants.C, 1e-6))
	})

	It("skips radii inside the corona", func() {
		p := simpleParams()
		p.Modes = p.Modes.With(OldBoundaries)
		p.RIn = 2
		p.ROut = 20
		p.NR = 10
		m, err := New(p)
		Expect(err).NotTo(HaveOccurred())

		// radii 3, 5, ..., 21; the corona sits at 6, so 3 and 5 are skipped
		var skipped []float64
		m.OnSkip = func(r float64) { skipped = append(skipped, r) }

		lines, err := m.StartLines(context.Background(), 1e7, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(skipped).To(Equal([]float64{3, 5}))
		Expect(lines).To(HaveLen(8))
		Expect(lines[0].R0()).To(BeNumerically("~", 7, 1e-12))
	})
})

var _ = Describe("StartLines scheduling parity", func() {
	run := func(nCPUs int) *Model {
		p := simpleParams()
		p.Modes = p.Modes.With(Old)
		p.NR = 12
		p.NCPUs = nCPUs
		m, err := New(p)
		Expect(err).NotTo(HaveOccurred())
		_, err = m.StartLines(context.Background(), 1e7, 300)
		Expect(err).NotTo(HaveOccurred())
		return m
	}

	It("yields identical per-line outcomes for 1 and 4 workers", func() {
		seq := run(1)
		par := run(4)

		Expect(par.Lines()).To(HaveLen(len(seq.Lines())))
		for i := range seq.Lines() {
			Expect(par.Lines()[i].R0()).To(Equal(seq.Lines()[i].R0()))
			Expect(par.Lines()[i].Escaped()).To(Equal(seq.Lines()[i].Escaped()))
			Expect(par.Lines()[i].Rho0()).To(Equal(seq.Lines()[i].Rho0()))
			Expect(par.Lines()[i].VT0()).To(Equal(seq.Lines()[i].VT0()))
		}
		Expect(par.MassLossRate()).To(Equal(seq.MassLossRate()))
	})
})
