package wind

import (
	"errors"
	"math"
	"testing"
)

func TestLaunchRadiiExact(t *testing.T) {
	// nr=4 over [100, 1600]: dr = 500, cell centers at 350, 850, 1350, 1850.
	radii, err := LaunchRadii(100, 1600, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{350, 850, 1350, 1850}
	if len(radii) != len(want) {
		t.Fatalf("got %d radii, want %d", len(radii), len(want))
	}
	for i := range want {
		if math.Abs(radii[i]-want[i]) > 1e-9 {
			t.Errorf("radii[%d] = %f, want %f", i, radii[i], want[i])
		}
	}
}

func TestLaunchRadiiProperties(t *testing.T) {
	tests := []struct {
		rIn, rOut float64
		nr        int
	}{
		{100, 1600, 4},
		{20, 1400, 20},
		{6, 100, 2},
		{1, 2, 100},
	}
	for _, tt := range tests {
		radii, err := LaunchRadii(tt.rIn, tt.rOut, tt.nr)
		if err != nil {
			t.Fatalf("LaunchRadii(%g, %g, %d): %v", tt.rIn, tt.rOut, tt.nr, err)
		}
		if len(radii) != tt.nr {
			t.Fatalf("got %d radii, want %d", len(radii), tt.nr)
		}
		dr := (tt.rOut - tt.rIn) / float64(tt.nr-1)
		if math.Abs(radii[0]-(tt.rIn+0.5*dr)) > 1e-9*dr {
			t.Errorf("first radius %f, want %f", radii[0], tt.rIn+0.5*dr)
		}
		for i := 1; i < len(radii); i++ {
			if radii[i] <= radii[i-1] {
				t.Errorf("radii not strictly increasing at %d: %f <= %f", i, radii[i], radii[i-1])
			}
			if math.Abs((radii[i]-radii[i-1])-dr) > 1e-9*dr {
				t.Errorf("non-uniform spacing at %d: %f, want %f", i, radii[i]-radii[i-1], dr)
			}
		}
	}
}

func TestLaunchRadiiSingle(t *testing.T) {
	radii, err := LaunchRadii(200, 1600, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(radii) != 1 || radii[0] != 200 {
		t.Errorf("nr=1 should degenerate to [r_in], got %v", radii)
	}
}

func TestLaunchRadiiErrors(t *testing.T) {
	if _, err := LaunchRadii(100, 1600, 0); !errors.Is(err, ErrGridSize) {
		t.Errorf("nr=0: got %v, want ErrGridSize", err)
	}
	if _, err := LaunchRadii(1600, 100, 4); !errors.Is(err, ErrGridBounds) {
		t.Errorf("inverted bounds: got %v, want ErrGridBounds", err)
	}
	if _, err := LaunchRadii(100, 100, 4); !errors.Is(err, ErrGridBounds) {
		t.Errorf("equal bounds: got %v, want ErrGridBounds", err)
	}
	if _, err := LaunchRadii(math.NaN(), 100, 4); !errors.Is(err, ErrBadParam) {
		t.Errorf("NaN bound: got %v, want ErrBadParam", err)
	}
}
