package wind

import "fmt"

// Mode is a debug/behavior switch. The set of enabled modes is fixed at
// model construction and only ever tested for membership.
type Mode uint

const (
	// OldBoundaries takes the launch boundaries from the user-supplied
	// r_in/r_out literals instead of the SED-derived radii.
	OldBoundaries Mode = 1 << iota
	// Old is the full legacy behavior: old boundaries plus the constant
	// launch velocity.
	Old
	// CustomVelocity launches every streamline with the caller-supplied
	// vertical velocity, ignoring the disc temperature.
	CustomVelocity
	// GravityOnly disables the radiation force. Useful for debugging.
	GravityOnly
	// AlternateOpacities applies the experimental force-multiplier boost.
	AlternateOpacities
	// OldIntegral freezes the radiation attenuation at its launch value.
	OldIntegral
)

var modeTokens = map[string]Mode{
	"old_boundaries": OldBoundaries,
	"old":            Old,
	"custom_vel":     CustomVelocity,
	"gravityonly":    GravityOnly,
	"altopts":        AlternateOpacities,
	"old_integral":   OldIntegral,
}

func (m Mode) String() string {
	for tok, mode := range modeTokens {
		if mode == m {
			return tok
		}
	}
	return fmt.Sprintf("Mode(%d)", uint(m))
}

// ModeSet is an order-independent set of enabled modes.
type ModeSet uint

// Has reports whether every mode in m is enabled.
func (s ModeSet) Has(m Mode) bool { return uint(s)&uint(m) == uint(m) }

// With returns s with m enabled.
func (s ModeSet) With(m Mode) ModeSet { return ModeSet(uint(s) | uint(m)) }

// ParseModes builds a ModeSet from the string tokens accepted in run
// configurations. Unknown tokens are an error.
func ParseModes(tokens []string) (ModeSet, error) {
	var s ModeSet
	for _, tok := range tokens {
		m, ok := modeTokens[tok]
		if !ok {
			return 0, fmt.Errorf("%w: unknown mode %q", ErrBadParam, tok)
		}
		s = s.With(m)
	}
	return s, nil
}
