//go:build !nogpu

package gpu

import "errors"

// Resource errors.
var (
	// ErrNilDevice is returned when a constructor is called without a device or queue.
	ErrNilDevice = errors.New("gpu: device or queue is nil")

	// ErrInvalidCapacity is returned for a non-positive geometry capacity.
	ErrInvalidCapacity = errors.New("gpu: geometry capacity must be positive")

	// ErrDestroyed is returned when a destroyed resource is used.
	ErrDestroyed = errors.New("gpu: resource already destroyed")

	// ErrLengthMismatch is returned when positions and texcoords differ in
	// length or do not hold whole vec2 values.
	ErrLengthMismatch = errors.New("gpu: positions and texcoords length mismatch")

	// ErrPixelSize is returned when texture pixels do not match width*height*4.
	ErrPixelSize = errors.New("gpu: pixel data does not match texture size")

	// ErrInvalidTextureSize is returned for a non-positive texture width or height.
	ErrInvalidTextureSize = errors.New("gpu: texture size must be positive")

	// ErrEmptyShader is returned when a shader source is empty.
	ErrEmptyShader = errors.New("gpu: shader source is empty")

	// ErrUniformNotFound is returned for a uniform the program does not declare.
	ErrUniformNotFound = errors.New("gpu: uniform not found")

	// ErrNilTarget is returned when Draw is called without a target view.
	ErrNilTarget = errors.New("gpu: render target is nil")

	// ErrVertexCount is returned when Draw asks for more vertices than were uploaded.
	ErrVertexCount = errors.New("gpu: vertex count exceeds uploaded geometry")
)
