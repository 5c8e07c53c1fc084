//go:build !nogpu

package gpu

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice wraps a noop HAL device in a wgpu.Device for testing.
func createNoopDevice(t *testing.T) (*wgpu.Device, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	device, err := wgpu.NewDeviceFromHAL(openDev.Device, openDev.Queue, 0, gputypes.DefaultLimits(), "fontview_test")
	if err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		t.Fatalf("NewDeviceFromHAL failed: %v", err)
	}
	cleanup := func() {
		device.Release()
		instance.Destroy()
	}
	return device, cleanup
}

// createTarget creates a BGRA8 render target view of the given size.
func createTarget(t *testing.T, device *wgpu.Device, w, h uint32) *wgpu.TextureView {
	t.Helper()
	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "test_target",
		Size:          wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	view, err := device.CreateTextureView(tex, &wgpu.TextureViewDescriptor{
		Label:         "test_target_view",
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		tex.Release()
		t.Fatalf("CreateTextureView failed: %v", err)
	}
	t.Cleanup(func() {
		view.Release()
		tex.Release()
	})
	return view
}

// glyphQuads returns n glyphs worth of position and texcoord floats.
func glyphQuads(n int) (positions, texcoords []float32) {
	positions = make([]float32, n*floatsPerGlyph)
	texcoords = make([]float32, n*floatsPerGlyph)
	for i := range positions {
		positions[i] = float32(i) / float32(len(positions))
		texcoords[i] = 1 - positions[i]
	}
	return positions, texcoords
}
