package fontview

import (
	"context"
	"fmt"

	"github.com/gogpu/fontview/layout"
)

// Surface is the window a session draws into.
type Surface interface {
	// Size returns the drawable size in pixels.
	Size() (width, height int)

	// ShouldClose reports whether the user asked to quit.
	ShouldClose() bool

	// Present shows the finished frame.
	Present() error
}

// Uploader receives laid-out geometry. *gpu.GeometryBuffer implements it.
type Uploader interface {
	Upload(positions, texcoords []float32) (int, error)
}

// DrawFunc draws vertexCount vertices of the uploaded geometry.
type DrawFunc func(vertexCount uint32) error

// Session owns the current viewport and geometry of one preview.
//
// Each frame it lays the text out again if anything changed, uploads the
// result and then draws. Session is not safe for concurrent use; call it
// from the goroutine that owns the GPU device.
type Session struct {
	src      layout.GlyphSource
	geometry Uploader

	text      string
	placement layout.Placement
	opts      layout.Options

	viewport    layout.Viewport
	valid       bool
	vertexCount uint32
	layouts     int

	// missing holds runes already reported, in order of first report.
	missing  []rune
	reported map[rune]struct{}
}

// NewSession validates cfg and prepares a session. No layout happens until
// the first Frame.
func NewSession(src layout.GlyphSource, geometry Uploader, cfg Config) (*Session, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if geometry == nil {
		return nil, ErrNilUploader
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		src:       src,
		geometry:  geometry,
		text:      cfg.Text,
		placement: cfg.Placement,
		opts:      cfg.Layout,
		reported:  make(map[rune]struct{}),
	}, nil
}

// SetText replaces the text and invalidates the geometry.
func (s *Session) SetText(text string) {
	if text == s.text {
		return
	}
	s.text = text
	s.valid = false
}

// SetPlacement replaces the placement and invalidates the geometry.
func (s *Session) SetPlacement(p layout.Placement) {
	if p == s.placement {
		return
	}
	s.placement = p
	s.valid = false
}

// Frame lays out and uploads if the geometry is stale or vp differs from
// the last layout, then calls draw with the uploaded vertex count.
//
// An empty viewport (a minimized window) skips the frame.
func (s *Session) Frame(vp layout.Viewport, draw DrawFunc) error {
	if !vp.Valid() {
		Logger().Debug("frame skipped", "width", vp.Width, "height", vp.Height)
		return nil
	}
	if !s.valid || vp != s.viewport {
		if err := s.relayout(vp); err != nil {
			return err
		}
	}
	if draw == nil {
		return nil
	}
	return draw(s.vertexCount)
}

// relayout runs layout for vp and uploads the result.
func (s *Session) relayout(vp layout.Viewport) error {
	res, err := layout.Layout(s.src, s.placement, vp, s.text, s.opts)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	n, err := s.geometry.Upload(res.Positions, res.TexCoords)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	for _, r := range res.Missing {
		if _, seen := s.reported[r]; seen {
			continue
		}
		s.reported[r] = struct{}{}
		s.missing = append(s.missing, r)
		Logger().Warn("glyph not in atlas", "rune", string(r), "code_point", fmt.Sprintf("U+%04X", r))
	}

	s.viewport = vp
	s.vertexCount = uint32(res.VertexCount()) //nolint:gosec // bounded by buffer capacity
	s.valid = true
	s.layouts++

	Logger().Debug("text laid out",
		"width", vp.Width,
		"height", vp.Height,
		"glyphs", res.GlyphCount,
		"bytes", n,
	)
	return nil
}

// Step runs one frame against surface. It returns false once the surface
// asks to close.
func (s *Session) Step(surface Surface, draw DrawFunc) (bool, error) {
	if surface.ShouldClose() {
		return false, nil
	}
	w, h := surface.Size()
	if err := s.Frame(layout.Viewport{Width: w, Height: h}, draw); err != nil {
		return true, err
	}
	if err := surface.Present(); err != nil {
		return true, fmt.Errorf("present: %w", err)
	}
	return true, nil
}

// Run steps until the surface closes or ctx is done. Frame errors are
// logged and the frame is skipped.
func (s *Session) Run(ctx context.Context, surface Surface, draw DrawFunc) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		more, err := s.Step(surface, draw)
		if err != nil {
			Logger().Warn("frame failed", "err", err)
		}
		if !more {
			return nil
		}
	}
}

// Viewport returns the viewport of the last layout.
func (s *Session) Viewport() layout.Viewport {
	return s.viewport
}

// VertexCount returns the vertex count of the last upload.
func (s *Session) VertexCount() uint32 {
	return s.vertexCount
}

// Layouts returns how many times the text has been laid out.
func (s *Session) Layouts() int {
	return s.layouts
}

// Missing returns the runes reported missing so far, in order of first
// appearance.
func (s *Session) Missing() []rune {
	return append([]rune(nil), s.missing...)
}
