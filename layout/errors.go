package layout

import "errors"

// Sentinel errors for layout package.
var (
	// ErrNilSource is returned when Layout is called without a glyph source.
	ErrNilSource = errors.New("layout: glyph source is nil")

	// ErrInvalidViewport is returned for a viewport with a non-positive side.
	ErrInvalidViewport = errors.New("layout: viewport width and height must be positive")

	// ErrInvalidPlacement is returned for a non-positive or NaN scale, or
	// for a start point, right margin or line spacing that is not finite.
	ErrInvalidPlacement = errors.New("layout: invalid placement")

	// ErrInvalidGrid is returned when the glyph source reports a non-positive grid.
	ErrInvalidGrid = errors.New("layout: atlas grid must be positive")
)
