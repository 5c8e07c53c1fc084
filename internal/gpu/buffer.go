//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// Geometry buffer layout. Positions and texcoords live in separate,
// tightly packed buffers rather than one interleaved buffer, so a layout
// result can be uploaded without reshuffling.
const (
	// floatsPerVertex is the number of floats each array holds per vertex.
	floatsPerVertex = 2

	// vertexStride is the byte stride of one vec2<f32>.
	vertexStride = floatsPerVertex * 4

	// floatsPerGlyph is the per-array float count of one glyph (6 vertices).
	floatsPerGlyph = 6 * floatsPerVertex

	// PositionSlot and TexCoordSlot are the vertex buffer slots.
	PositionSlot = 0
	TexCoordSlot = 1
)

// noCopy may be embedded into structs which must not be copied after
// first use. See go vet -copylocks.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// GeometryBuffer owns the two vertex buffers a text block is drawn from.
//
// The initial capacity is a hint. An upload larger than the current
// buffers replaces them with buffers at least twice as large, so callers
// must fetch Buffers after every Upload rather than caching them.
//
// GeometryBuffer is not safe for concurrent use.
type GeometryBuffer struct {
	noCopy noCopy

	device *wgpu.Device
	queue  *wgpu.Queue

	positions *wgpu.Buffer
	texcoords *wgpu.Buffer

	// capacity is the per-array capacity in floats.
	capacity int

	// CPU mirrors of the last upload.
	lastPositions []float32
	lastTexCoords []float32
	vertexCount   uint32
}

// NewGeometryBuffer creates vertex buffers sized for maxGlyphs glyphs.
func NewGeometryBuffer(device *wgpu.Device, maxGlyphs int) (*GeometryBuffer, error) {
	if device == nil || device.Queue() == nil {
		return nil, ErrNilDevice
	}
	if maxGlyphs <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, maxGlyphs)
	}

	b := &GeometryBuffer{
		device: device,
		queue:  device.Queue(),
	}
	if err := b.allocate(maxGlyphs * floatsPerGlyph); err != nil {
		return nil, err
	}

	slogger().Debug("geometry buffer created",
		"max_glyphs", maxGlyphs,
		"bytes_per_array", b.capacity*4,
	)
	return b, nil
}

// allocate creates both buffers with room for capacity floats each and
// releases the previous pair. On error the previous pair is kept.
func (b *GeometryBuffer) allocate(capacity int) error {
	size := uint64(capacity) * 4 //nolint:gosec // capacity is positive

	positions, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "fontview_positions",
		Size:  size,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create position buffer: %w", err)
	}

	texcoords, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "fontview_texcoords",
		Size:  size,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		positions.Release()
		return fmt.Errorf("create texcoord buffer: %w", err)
	}

	b.release()
	b.positions, b.texcoords = positions, texcoords
	b.capacity = capacity
	return nil
}

// Upload replaces the contents of both buffers and returns the total
// number of bytes written. The arrays must have equal length and hold
// whole vec2 values. Buffers too small for the data are replaced first.
func (b *GeometryBuffer) Upload(positions, texcoords []float32) (int, error) {
	if len(positions) != len(texcoords) || len(positions)%floatsPerVertex != 0 {
		return 0, fmt.Errorf("%w: %d positions, %d texcoords", ErrLengthMismatch, len(positions), len(texcoords))
	}
	if b.positions == nil {
		return 0, ErrDestroyed
	}
	if len(positions) > b.capacity {
		grown := max(len(positions), 2*b.capacity)
		if err := b.allocate(grown); err != nil {
			return 0, err
		}
		slogger().Debug("geometry buffer grown", "max_glyphs", b.Capacity())
	}

	b.lastPositions = append(b.lastPositions[:0], positions...)
	b.lastTexCoords = append(b.lastTexCoords[:0], texcoords...)
	b.vertexCount = uint32(len(positions) / floatsPerVertex) //nolint:gosec // bounded by capacity

	if len(positions) == 0 {
		return 0, nil
	}

	if err := b.queue.WriteBuffer(b.positions, 0, floatBytes(positions)); err != nil {
		return 0, fmt.Errorf("write positions: %w", err)
	}
	if err := b.queue.WriteBuffer(b.texcoords, 0, floatBytes(texcoords)); err != nil {
		return 0, fmt.Errorf("write texcoords: %w", err)
	}

	written := 2 * len(positions) * 4
	slogger().Debug("geometry uploaded", "vertices", b.vertexCount, "bytes", written)
	return written, nil
}

// VertexCount returns the number of vertices from the last upload.
func (b *GeometryBuffer) VertexCount() uint32 {
	return b.vertexCount
}

// Capacity returns the number of glyphs the current buffers hold.
func (b *GeometryBuffer) Capacity() int {
	return b.capacity / floatsPerGlyph
}

// Positions returns a copy of the last uploaded positions.
func (b *GeometryBuffer) Positions() []float32 {
	return append([]float32(nil), b.lastPositions...)
}

// TexCoords returns a copy of the last uploaded texture coordinates.
func (b *GeometryBuffer) TexCoords() []float32 {
	return append([]float32(nil), b.lastTexCoords...)
}

// Buffers returns the current position and texcoord buffers.
func (b *GeometryBuffer) Buffers() (positions, texcoords *wgpu.Buffer) {
	return b.positions, b.texcoords
}

func (b *GeometryBuffer) release() {
	if b.positions != nil {
		b.positions.Release()
		b.positions = nil
	}
	if b.texcoords != nil {
		b.texcoords.Release()
		b.texcoords = nil
	}
}

// Destroy releases both buffers. Safe to call more than once.
func (b *GeometryBuffer) Destroy() {
	b.release()
	b.capacity = 0
	b.vertexCount = 0
}

// VertexLayout returns the vertex buffer layouts matching VertexInput in
// text.vert.wgsl:
//
//	slot 0, location 0: position (vec2<f32>)
//	slot 1, location 1: tex_coord (vec2<f32>)
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			},
		},
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 1},
			},
		},
	}
}

// floatBytes serializes floats as little-endian bytes for GPU upload.
func floatBytes(fs []float32) []byte {
	buf := make([]byte, len(fs)*4)
	for i, f := range fs {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}
