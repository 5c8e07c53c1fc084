package fontview

import (
	"errors"
	"fmt"
)

// Sentinel errors for fontview.
var (
	// ErrInputNotFound is returned when the atlas path is missing or is
	// not a regular file.
	ErrInputNotFound = errors.New("fontview: input file not found")

	// ErrNotRegularFile is the cause recorded when the path exists but is
	// a directory or device.
	ErrNotRegularFile = errors.New("fontview: not a regular file")

	// ErrNilSource is returned by NewSession without a glyph source.
	ErrNilSource = errors.New("fontview: glyph source is nil")

	// ErrNilUploader is returned by NewSession without a geometry uploader.
	ErrNilUploader = errors.New("fontview: geometry uploader is nil")
)

// InputError reports an unusable atlas path. It matches ErrInputNotFound
// and the underlying cause with errors.Is.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("The font file %s could not be found.", e.Path)
}

// Unwrap returns ErrInputNotFound and the underlying cause.
func (e *InputError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInputNotFound}
	}
	return []error{ErrInputNotFound, e.Err}
}

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "fontview: invalid config." + e.Field + ": " + e.Reason
}
