package main

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/fontview"
	"github.com/gogpu/fontview/atlas"
	"github.com/gogpu/fontview/layout"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testProvider mirrors the provider gogpu hands to OnDraw: the device is
// a *wgpu.Device behind the gpucontext.Device token.
type testProvider struct {
	device gpucontext.Device
	format gputypes.TextureFormat
}

func (p *testProvider) Device() gpucontext.Device { return p.device }

func (p *testProvider) Queue() gpucontext.Queue {
	if d, ok := p.device.(*wgpu.Device); ok {
		return d.Queue()
	}
	return nil
}

func (p *testProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (p *testProvider) Adapter() gpucontext.Adapter           { return nil }

func (p *testProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "noop"}
}

var _ gpucontext.DeviceProvider = (*testProvider)(nil)

// testDrawContext stands in for *gogpu.Context with a fixed framebuffer.
type testDrawContext struct {
	width, height int
	view          *wgpu.TextureView
}

func (c *testDrawContext) FramebufferSize() (int, int)    { return c.width, c.height }
func (c *testDrawContext) SurfaceView() *wgpu.TextureView { return c.view }

func newTestDevice(t *testing.T) *wgpu.Device {
	t.Helper()
	instance, err := noop.API{}.CreateInstance(nil)
	require.NoError(t, err)
	adapters := instance.EnumerateAdapters(nil)
	require.NotEmpty(t, adapters)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	require.NoError(t, err)
	device, err := wgpu.NewDeviceFromHAL(openDev.Device, openDev.Queue, 0, gputypes.DefaultLimits(), "fontview_cmd_test")
	require.NoError(t, err)
	t.Cleanup(func() {
		device.Release()
		instance.Destroy()
	})
	return device
}

func newTestTarget(t *testing.T, device *wgpu.Device) *wgpu.TextureView {
	t.Helper()
	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "cmd_test_target",
		Size:          wgpu.Extent3D{Width: 64, Height: 64, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	require.NoError(t, err)
	view, err := device.CreateTextureView(tex, &wgpu.TextureViewDescriptor{
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		view.Release()
		tex.Release()
	})
	return view
}

// testAtlas returns a 2x2 atlas holding 'A' and 'B'.
func testAtlas(t *testing.T) *atlas.Atlas {
	t.Helper()
	a, err := atlas.New(atlas.Metadata{
		Columns: 2,
		Rows:    2,
		Glyphs: map[rune]atlas.GlyphMetadata{
			'A': {Column: 0, Row: 0, Width: 10, Height: 10},
			'B': {Column: 1, Row: 0, Width: 10, Height: 10},
		},
	}, image.NewRGBA(image.Rect(0, 0, 8, 8)))
	require.NoError(t, err)
	return a
}

func TestViewerInitFromProvider(t *testing.T) {
	device := newTestDevice(t)
	v := newViewer(fontview.DefaultConfig().WithText("ABAB"), testAtlas(t))
	t.Cleanup(v.destroy)

	require.NoError(t, v.init(&testProvider{device: device}))
	require.True(t, v.ready())
	assert.Equal(t, 4, v.geometry.Capacity())
	assert.Equal(t, uint32(4), v.texture.MipLevels())
}

func TestViewerInitRejectsForeignDevice(t *testing.T) {
	v := newViewer(fontview.DefaultConfig(), testAtlas(t))

	err := v.init(&testProvider{device: struct{}{}})
	assert.True(t, errors.Is(err, errNoDevice), "err = %v", err)

	err = v.init(&testProvider{})
	assert.True(t, errors.Is(err, errNoDevice), "err = %v", err)

	err = v.init(nil)
	assert.True(t, errors.Is(err, errNoDevice), "err = %v", err)
	assert.False(t, v.ready())
}

func TestViewerFrameUsesFramebufferSize(t *testing.T) {
	device := newTestDevice(t)
	v := newViewer(fontview.DefaultConfig().WithText("ABAB"), testAtlas(t))
	t.Cleanup(v.destroy)
	require.NoError(t, v.init(&testProvider{device: device, format: gputypes.TextureFormatBGRA8Unorm}))

	// A 2x HiDPI window: 1024x576 logical, 2048x1152 physical.
	dc := &testDrawContext{width: 2048, height: 1152, view: newTestTarget(t, device)}
	assert.True(t, v.frame(dc))
	assert.Equal(t, layout.Viewport{Width: 2048, Height: 1152}, v.session.Viewport())
	assert.Equal(t, uint32(4*layout.VerticesPerGlyph), v.session.VertexCount())

	v.requestClose()
	assert.False(t, v.frame(dc))
}

func TestViewerFrameWithoutSurfaceView(t *testing.T) {
	device := newTestDevice(t)
	v := newViewer(fontview.DefaultConfig().WithText("AB"), testAtlas(t))
	t.Cleanup(v.destroy)
	require.NoError(t, v.init(&testProvider{device: device}))

	assert.True(t, v.frame(&testDrawContext{width: 640, height: 480}))
	assert.Equal(t, 1, v.session.Layouts())
}
