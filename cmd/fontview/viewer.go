package main

import (
	"errors"
	"fmt"

	"github.com/gogpu/fontview"
	"github.com/gogpu/fontview/atlas"
	"github.com/gogpu/fontview/internal/gpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

var (
	errNoDevice      = errors.New("GPU context provider has no wgpu device")
	errNoSurfaceView = errors.New("surface has no texture view for this frame")
)

// viewer owns the GPU objects of the preview window. All methods run on
// the draw callback goroutine.
type viewer struct {
	cfg   fontview.Config
	atlas *atlas.Atlas

	program  *gpu.Program
	texture  *gpu.Texture
	geometry *gpu.GeometryBuffer
	renderer *gpu.Renderer
	session  *fontview.Session

	closing bool
}

func newViewer(cfg fontview.Config, a *atlas.Atlas) *viewer {
	return &viewer{cfg: cfg, atlas: a}
}

func (v *viewer) ready() bool {
	return v.session != nil
}

func (v *viewer) requestClose() {
	v.closing = true
}

// init creates the GPU objects on the provider's device. gogpu hands out
// a *wgpu.Device behind the gpucontext.Device token.
func (v *viewer) init(provider gpucontext.DeviceProvider) error {
	if provider == nil {
		return errNoDevice
	}
	device, ok := provider.Device().(*wgpu.Device)
	if !ok || device == nil {
		return fmt.Errorf("%w: got %T", errNoDevice, provider.Device())
	}

	format := provider.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}

	var err error
	v.program, err = gpu.NewProgram(device, gpu.TextVertexShaderSource(), gpu.TextFragmentShaderSource(), gpu.TextUniforms()...)
	if err != nil {
		return fmt.Errorf("shader program: %w", err)
	}

	w, h := v.atlas.ImageSize()
	v.texture, err = gpu.NewTexture(device, v.atlas.Pixels(), w, h, v.cfg.Wrap)
	if err != nil {
		return fmt.Errorf("atlas texture: %w", err)
	}

	v.geometry, err = gpu.NewGeometryBuffer(device, v.cfg.MaxGlyphs())
	if err != nil {
		return fmt.Errorf("geometry buffer: %w", err)
	}

	cc := v.cfg.ClearColor
	v.renderer, err = gpu.NewRenderer(device, v.program, v.geometry, v.texture, gpu.RendererConfig{
		Format:     format,
		ClearColor: gputypes.Color{R: cc[0], G: cc[1], B: cc[2], A: cc[3]},
		TextColor:  v.cfg.TextColor,
	})
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}

	v.session, err = fontview.NewSession(v.atlas, v.geometry, v.cfg)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	fontview.Logger().Info("renderer ready",
		"adapter", provider.AdapterInfo().Name,
		"format", format,
		"max_glyphs", v.geometry.Capacity(),
		"mip_levels", v.texture.MipLevels(),
	)
	return nil
}

// drawContext is the part of *gogpu.Context a frame needs.
type drawContext interface {
	FramebufferSize() (width, height int)
	SurfaceView() *wgpu.TextureView
}

// frame draws one frame and reports whether the window should stay open.
func (v *viewer) frame(dc drawContext) bool {
	surface := &windowSurface{dc: dc, closing: &v.closing}
	more, err := v.session.Step(surface, func(n uint32) error {
		view := dc.SurfaceView()
		if view == nil {
			return errNoSurfaceView
		}
		return v.renderer.Draw(view, n)
	})
	if err != nil {
		fontview.Logger().Warn("frame skipped", "err", err)
	}
	return more
}

// destroy releases GPU objects in reverse creation order.
func (v *viewer) destroy() {
	if v.renderer != nil {
		v.renderer.Destroy()
	}
	if v.geometry != nil {
		v.geometry.Destroy()
	}
	if v.texture != nil {
		v.texture.Destroy()
	}
	if v.program != nil {
		v.program.Destroy()
	}
}

// windowSurface adapts a gogpu draw context to fontview.Surface.
type windowSurface struct {
	dc      drawContext
	closing *bool
}

// Size returns the framebuffer size in physical pixels, which differs
// from the window size on HiDPI displays.
func (s *windowSurface) Size() (int, int) {
	return s.dc.FramebufferSize()
}

func (s *windowSurface) ShouldClose() bool {
	return *s.closing
}

// Present is a no-op: gogpu presents after the draw callback returns.
func (s *windowSurface) Present() error {
	return nil
}
