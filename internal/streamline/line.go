// Package streamline integrates a single gas-parcel trajectory launched
// from the disc surface, under gravity, the centrifugal barrier of its
// launch angular momentum, and the disc radiation force.
//
// All lengths are in gravitational radii, velocities in units of c and
// time in Rg/c, so the central gravity is simply -1/d^2.
package streamline

import (
	"errors"
	"math"

	"github.com/arnauq/qwind/internal/radiation"
)

// ErrNonFinite reports that the integration produced NaN or Inf state.
var ErrNonFinite = errors.New("streamline: non-finite state")

// outOfRange is the spherical distance [Rg] beyond which integration
// stops; a parcel this far out that has not reached escape velocity
// never will.
const outOfRange = 3e4

// Line is one streamline. Construct with New, run with Iterate; the
// launch-value accessors feed the wind mass-loss aggregation.
type Line struct {
	field *radiation.Field

	r0, z0 float64
	d0     float64
	rho0   float64
	temp   float64
	vT0    float64 // launch speed |(v_r, v_z)| [c]
	l      float64 // specific angular momentum, Keplerian at r0
	dt     float64

	r, z, vr, vz float64
	escaped      bool
	steps        int
	done         bool
}

// New constructs a streamline at (r0, z0) with number density rho0
// [cm^-3], temperature temp [K] and launch velocities vr0, vz0 [c].
// The timestep dt is in Rg/c.
func New(field *radiation.Field, r0, z0, rho0, temp, vr0, vz0, dt float64) *Line {
	return &Line{
		field: field,
		r0:    r0,
		z0:    z0,
		d0:    math.Hypot(r0, z0),
		rho0:  rho0,
		temp:  temp,
		vT0:   math.Hypot(vr0, vz0),
		l:     math.Sqrt(r0), // v_phi = 1/sqrt(r0) at launch
		dt:    dt,
		r:     r0,
		z:     z0,
		vr:    vr0,
		vz:    vz0,
	}
}

func (l *Line) R0() float64   { return l.r0 }
func (l *Line) Rho0() float64 { return l.rho0 }
func (l *Line) VT0() float64  { return l.vT0 }
func (l *Line) Escaped() bool { return l.escaped }
func (l *Line) Steps() int    { return l.steps }

// Pos returns the current (r, z) position.
func (l *Line) Pos() (float64, float64) { return l.r, l.z }

// Iterate advances the trajectory by up to niter Euler steps, stopping
// early once the parcel escapes, falls back to its launch height, or
// leaves the integration range.
func (l *Line) Iterate(niter int) error {
	if l.done {
		return nil
	}
	for i := 0; i < niter; i++ {
		d := math.Hypot(l.r, l.z)

		vphi := l.l / l.r
		v := math.Sqrt(l.vr*l.vr + l.vz*l.vz + vphi*vphi)
		if v >= vEsc(d) {
			l.escaped = true
			l.done = true
			return nil
		}
		if d > outOfRange || l.z < l.z0 {
			l.done = true
			return nil
		}

		ar := -l.r/(d*d*d) + l.l*l.l/(l.r*l.r*l.r)
		az := -l.z / (d * d * d)
		radR, radZ := l.field.Accel(l.r, l.z, l.d0)
		ar += radR
		az += radZ

		l.vr += ar * l.dt
		l.vz += az * l.dt
		l.r += l.vr * l.dt
		l.z += l.vz * l.dt
		l.steps++

		if !isFinite(l.r) || !isFinite(l.z) || !isFinite(l.vr) || !isFinite(l.vz) {
			l.done = true
			return ErrNonFinite
		}
	}
	l.done = true
	return nil
}

func vEsc(d float64) float64 { return math.Sqrt(2 / d) }

func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
