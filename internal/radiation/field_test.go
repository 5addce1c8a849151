package radiation

import (
	"math"
	"testing"
)

func TestFieldGravityOnly(t *testing.T) {
	f := &Field{Mdot: 0.5, TauDr0: 1e-3, GravityOnly: true}
	ar, az := f.Accel(100, 10, 100)
	if ar != 0 || az != 0 {
		t.Errorf("gravity-only field should be zero, got (%e, %e)", ar, az)
	}
}

func TestFieldPointsOutward(t *testing.T) {
	f := &Field{Mdot: 0.5}
	ar, az := f.Accel(100, 10, 100)
	if ar <= 0 || az <= 0 {
		t.Errorf("force should point away from the origin, got (%e, %e)", ar, az)
	}
	// Magnitude follows mdot / d^2 when unattenuated.
	d := math.Hypot(100, 10)
	want := 0.5 / (d * d)
	if got := math.Hypot(ar, az); math.Abs(got-want)/want > 1e-12 {
		t.Errorf("magnitude = %e, want %e", got, want)
	}
}

func TestFieldAttenuation(t *testing.T) {
	f := &Field{Mdot: 0.5, TauDr0: 1e-2}

	near := mag(f.Accel(100, 0, 100))
	far := mag(f.Accel(200, 0, 100))
	// Geometric dilution alone gives a factor 4; attenuation must make
	// the drop steeper.
	if far >= near/4 {
		t.Errorf("attenuated field should fall faster than 1/d^2: near=%e far=%e", near, far)
	}

	// Old-integral mode freezes tau at the launch distance, so the two
	// evaluations agree only where d == d0.
	old := &Field{Mdot: 0.5, TauDr0: 1e-2, OldIntegral: true}
	if got, want := mag(old.Accel(100, 0, 100)), near; math.Abs(got-want)/want > 1e-12 {
		t.Errorf("old-integral at launch distance = %e, want %e", got, want)
	}
	if mag(old.Accel(200, 0, 100)) <= far {
		t.Error("old-integral attenuation should be weaker beyond the launch distance")
	}
}

func TestFieldAltOpacities(t *testing.T) {
	base := &Field{Mdot: 0.5}
	alt := &Field{Mdot: 0.5, AltOpacities: true}

	b := mag(base.Accel(100, 10, 100))
	a := mag(alt.Accel(100, 10, 100))
	if want := b * (1 + altForceMultiplier); math.Abs(a-want)/want > 1e-12 {
		t.Errorf("alt-opacity boost = %e, want %e", a, want)
	}
}

func mag(ar, az float64) float64 { return math.Hypot(ar, az) }
