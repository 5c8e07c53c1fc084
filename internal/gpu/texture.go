//go:build !nogpu

package gpu

import (
	"fmt"
	"image"
	"math/bits"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"golang.org/x/image/draw"
)

// maxAnisotropy is the sampler's anisotropic filtering clamp.
const maxAnisotropy = 16

// WrapMode selects how the sampler treats texture coordinates outside [0, 1].
type WrapMode int

const (
	// WrapClampToEdge clamps coordinates to the edge texels.
	WrapClampToEdge WrapMode = iota
	// WrapRepeat tiles the texture.
	WrapRepeat
	// WrapMirrorRepeat tiles the texture, mirroring every other tile.
	WrapMirrorRepeat
)

// String returns the flag spelling of the wrap mode.
func (m WrapMode) String() string {
	switch m {
	case WrapClampToEdge:
		return "clamp"
	case WrapRepeat:
		return "repeat"
	case WrapMirrorRepeat:
		return "mirror"
	default:
		return fmt.Sprintf("WrapMode(%d)", int(m))
	}
}

// ParseWrapMode parses "clamp", "repeat" or "mirror".
func ParseWrapMode(s string) (WrapMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clamp", "clamp-to-edge", "":
		return WrapClampToEdge, nil
	case "repeat":
		return WrapRepeat, nil
	case "mirror", "mirror-repeat":
		return WrapMirrorRepeat, nil
	default:
		return WrapClampToEdge, fmt.Errorf("gpu: unknown wrap mode %q", s)
	}
}

func (m WrapMode) addressMode() gputypes.AddressMode {
	switch m {
	case WrapRepeat:
		return gputypes.AddressModeRepeat
	case WrapMirrorRepeat:
		return gputypes.AddressModeMirrorRepeat
	default:
		return gputypes.AddressModeClampToEdge
	}
}

// Texture is an RGBA8 atlas texture with a full mip chain, its view and
// an anisotropic sampler.
type Texture struct {
	noCopy noCopy

	texture *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler

	width     uint32
	height    uint32
	mipLevels uint32
	wrap      WrapMode
}

// NewTexture uploads width*height RGBA8 pixels with their mip chain and
// creates a view and a trilinear, anisotropic sampler using wrap on both
// axes.
//
// Rows are uploaded in the order given; pass bottom-up rows to sample with
// v = 0 at the bottom of the image.
func NewTexture(device *wgpu.Device, pixels []byte, width, height int, wrap WrapMode) (*Texture, error) {
	if device == nil || device.Queue() == nil {
		return nil, ErrNilDevice
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTextureSize, width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrPixelSize, len(pixels), width*height*4)
	}

	w, h := uint32(width), uint32(height) //nolint:gosec // checked positive above
	levels := mipLevelCount(w, h)

	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "fontview_atlas",
		Size:          wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: levels,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create atlas texture: %w", err)
	}

	view, err := device.CreateTextureView(tex, &wgpu.TextureViewDescriptor{
		Label:         "fontview_atlas_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: levels,
	})
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("create atlas texture view: %w", err)
	}

	mode := wrap.addressMode()
	sampler, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:        "fontview_atlas_sampler",
		AddressModeU: mode,
		AddressModeV: mode,
		AddressModeW: mode,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
		LodMaxClamp:  float32(levels),
		Anisotropy:   maxAnisotropy,
	})
	if err != nil {
		view.Release()
		tex.Release()
		return nil, fmt.Errorf("create atlas sampler: %w", err)
	}

	t := &Texture{
		texture:   tex,
		view:      view,
		sampler:   sampler,
		width:     w,
		height:    h,
		mipLevels: levels,
		wrap:      wrap,
	}

	queue := device.Queue()
	level := &image.RGBA{Pix: pixels, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	for mip := uint32(0); mip < levels; mip++ {
		if mip > 0 {
			level = downsample(level)
		}
		lw, lh := uint32(level.Rect.Dx()), uint32(level.Rect.Dy()) //nolint:gosec // positive
		err := queue.WriteTexture(
			&wgpu.ImageCopyTexture{Texture: tex, MipLevel: mip},
			level.Pix,
			&wgpu.ImageDataLayout{Offset: 0, BytesPerRow: lw * 4, RowsPerImage: lh},
			&wgpu.Extent3D{Width: lw, Height: lh, DepthOrArrayLayers: 1},
		)
		if err != nil {
			t.Destroy()
			return nil, fmt.Errorf("upload atlas mip %d: %w", mip, err)
		}
	}

	slogger().Debug("atlas texture uploaded", "width", w, "height", h, "mip_levels", levels, "wrap", wrap)
	return t, nil
}

// mipLevelCount returns the length of the full mip chain for w x h.
func mipLevelCount(w, h uint32) uint32 {
	return uint32(bits.Len32(max(w, h))) //nolint:gosec // at most 32
}

// downsample halves src in each dimension, never below 1 pixel.
func downsample(src *image.RGBA) *image.RGBA {
	w := max(1, src.Rect.Dx()/2)
	h := max(1, src.Rect.Dy()/2)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Rect, src, src.Rect, draw.Src, nil)
	return dst
}

// Size returns the texture dimensions.
func (t *Texture) Size() (uint32, uint32) {
	return t.width, t.height
}

// MipLevels returns the number of mip levels uploaded.
func (t *Texture) MipLevels() uint32 {
	return t.mipLevels
}

// Wrap returns the sampler wrap mode.
func (t *Texture) Wrap() WrapMode {
	return t.wrap
}

// View returns the texture view for binding.
func (t *Texture) View() *wgpu.TextureView {
	return t.view
}

// Sampler returns the sampler for binding.
func (t *Texture) Sampler() *wgpu.Sampler {
	return t.sampler
}

// Destroy releases the sampler, view and texture. Safe to call more than once.
func (t *Texture) Destroy() {
	if t.sampler != nil {
		t.sampler.Release()
		t.sampler = nil
	}
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}
