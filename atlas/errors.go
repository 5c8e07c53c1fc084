package atlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for atlas package.
var (
	// ErrMissingMetadata is returned when an archive has no metadata.json entry.
	ErrMissingMetadata = errors.New("atlas: archive has no metadata.json")

	// ErrMissingImage is returned when an archive has no atlas image entry.
	ErrMissingImage = errors.New("atlas: archive has no atlas image")

	// ErrInvalidGrid is returned when the atlas grid has a non-positive dimension.
	ErrInvalidGrid = errors.New("atlas: grid columns and rows must be positive")

	// ErrImageSize is returned when the decoded image does not match the
	// dimensions declared in the metadata.
	ErrImageSize = errors.New("atlas: image size does not match metadata")

	// ErrNilImage is returned when New is called without an image.
	ErrNilImage = errors.New("atlas: image is nil")
)

// GlyphError reports a glyph table entry that violates the atlas grid.
type GlyphError struct {
	Rune   rune
	Reason string
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("atlas: glyph %U: %s", e.Rune, e.Reason)
}

// LoadError wraps any failure to read an atlas file. The underlying cause
// is available through errors.Unwrap.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("atlas: could not load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
