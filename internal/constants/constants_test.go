package constants

import (
	"math"
	"testing"
)

func TestEmissivityConstant(t *testing.T) {
	// EmissivityConstant * Rg must reproduce L_edd = 4 pi G M m_p c / sigma_T.
	m := 1e8 * Msun
	rg := G * m / (C * C)

	got := EmissivityConstant * rg
	want := 4 * math.Pi * G * m * Mp * C / SigmaT

	if math.Abs(got-want)/want > 1e-12 {
		t.Errorf("L_edd mismatch: got %e, want %e", got, want)
	}
}
