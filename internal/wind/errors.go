package wind

import "errors"

// Domain errors for model construction and grid building.
var (
	// ErrBadParam indicates a physical parameter outside its valid range.
	ErrBadParam = errors.New("wind: parameter out of valid bounds")

	// ErrGridSize indicates a streamline count below one.
	ErrGridSize = errors.New("wind: streamline count must be at least 1")

	// ErrGridBounds indicates launch boundaries with r_in >= r_out.
	ErrGridBounds = errors.New("wind: r_in must be less than r_out")
)
