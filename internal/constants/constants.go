// Package constants collects the physical constants used across the wind
// model. All values are CGS.
package constants

import "math"

const (
	// G is the gravitational constant [cm^3 g^-1 s^-2].
	G = 6.67430e-8
	// Msun is the solar mass [g].
	Msun = 1.98892e33
	// C is the speed of light [cm s^-1].
	C = 2.99792458e10
	// Mp is the proton mass [g].
	Mp = 1.67262192e-24
	// KB is the Boltzmann constant [erg K^-1].
	KB = 1.380649e-16
	// SigmaT is the Thomson cross section [cm^2].
	SigmaT = 6.6524587e-25
	// SigmaSB is the Stefan-Boltzmann constant [erg cm^-2 s^-1 K^-4].
	SigmaSB = 5.670374419e-5
	// Year is one Julian year [s].
	Year = 3.15576e7
)

// EmissivityConstant is 4 pi m_p c^3 / sigma_T. Multiplying by the
// gravitational radius Rg = G M / c^2 gives the Eddington luminosity,
// L_edd = 4 pi G M m_p c / sigma_T.
var EmissivityConstant = 4 * math.Pi * Mp * C * C * C / SigmaT
