package fontview

import (
	"math"
	"unicode/utf8"

	"github.com/gogpu/fontview/internal/gpu"
	"github.com/gogpu/fontview/layout"
	"golang.org/x/text/unicode/norm"
)

// Config describes one preview: window, placement, colors and text.
//
// Build it from DefaultConfig with the With* methods:
//
//	cfg := fontview.DefaultConfig().
//	    WithSize(1280, 720).
//	    WithScale(48).
//	    WithWrap(gpu.WrapRepeat)
type Config struct {
	// Title is the window title.
	Title string

	// Width and Height are the initial window size in pixels.
	Width  int
	Height int

	// Placement anchors the text block in clip space.
	Placement layout.Placement

	// Layout holds line spacing, right margin and normalization.
	Layout layout.Options

	// TextColor tints the glyphs (RGBA in [0, 1]).
	TextColor [4]float32

	// ClearColor fills the window behind the text (RGBA in [0, 1]).
	ClearColor [4]float64

	// Wrap is the atlas sampler wrap mode.
	Wrap gpu.WrapMode

	// Text is the body to render.
	Text string
}

// DefaultConfig returns a 1024x576 window showing DefaultText in yellow
// on dark blue, 72px glyphs starting near the top-left corner.
func DefaultConfig() Config {
	return Config{
		Title:      "fontview",
		Width:      1024,
		Height:     576,
		Placement:  layout.DefaultPlacement(),
		Layout:     layout.DefaultOptions(),
		TextColor:  [4]float32{1, 1, 0, 1},
		ClearColor: [4]float64{0.2, 0.2, 0.6, 1},
		Wrap:       gpu.WrapClampToEdge,
		Text:       DefaultText,
	}
}

// WithTitle sets the window title.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize sets the initial window size.
func (c Config) WithSize(width, height int) Config {
	c.Width, c.Height = width, height
	return c
}

// WithPlacement replaces the whole placement.
func (c Config) WithPlacement(p layout.Placement) Config {
	c.Placement = p
	return c
}

// WithStart sets the clip-space top-left of the first glyph.
func (c Config) WithStart(x, y float32) Config {
	c.Placement.StartX, c.Placement.StartY = x, y
	return c
}

// WithScale sets the on-screen glyph cell size in pixels.
func (c Config) WithScale(px float32) Config {
	c.Placement.ScalePx = px
	return c
}

// WithLayout sets the wrap and normalization options.
func (c Config) WithLayout(opts layout.Options) Config {
	c.Layout = opts
	return c
}

// WithTextColor sets the glyph tint.
func (c Config) WithTextColor(r, g, b, a float32) Config {
	c.TextColor = [4]float32{r, g, b, a}
	return c
}

// WithClearColor sets the background color.
func (c Config) WithClearColor(r, g, b, a float64) Config {
	c.ClearColor = [4]float64{r, g, b, a}
	return c
}

// WithWrap sets the atlas sampler wrap mode.
func (c Config) WithWrap(m gpu.WrapMode) Config {
	c.Wrap = m
	return c
}

// WithText sets the text body.
func (c Config) WithText(text string) Config {
	c.Text = text
	return c
}

// MaxGlyphs returns an upper bound on the glyphs the text can produce,
// at least 1. Use it to size the geometry buffer.
func (c Config) MaxGlyphs() int {
	text := c.Text
	if c.Layout.Normalize {
		text = norm.NFC.String(text)
	}
	return max(1, utf8.RuneCountInString(text))
}

// Validate reports the first invalid field as a *ConfigError.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return &ConfigError{Field: "Size", Reason: "width and height must be positive"}
	}
	p := c.Placement
	if !finite32(p.ScalePx) || p.ScalePx <= 0 {
		return &ConfigError{Field: "Placement.ScalePx", Reason: "must be positive"}
	}
	if !inClip(p.StartX) || !inClip(p.StartY) {
		return &ConfigError{Field: "Placement.Start", Reason: "must lie in [-1, 1]"}
	}
	if !finite32(c.Layout.LineSpacing) || c.Layout.LineSpacing < 0 {
		return &ConfigError{Field: "Layout.LineSpacing", Reason: "must not be negative"}
	}
	if !inClip(c.Layout.RightMargin) || c.Layout.RightMargin <= p.StartX {
		return &ConfigError{Field: "Layout.RightMargin", Reason: "must lie in [-1, 1] right of Placement.StartX"}
	}
	for _, v := range c.TextColor {
		if !(v >= 0 && v <= 1) {
			return &ConfigError{Field: "TextColor", Reason: "components must lie in [0, 1]"}
		}
	}
	for _, v := range c.ClearColor {
		if !(v >= 0 && v <= 1) {
			return &ConfigError{Field: "ClearColor", Reason: "components must lie in [0, 1]"}
		}
	}
	if _, err := gpu.ParseWrapMode(c.Wrap.String()); err != nil {
		return &ConfigError{Field: "Wrap", Reason: err.Error()}
	}
	return nil
}

func finite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func inClip(v float32) bool {
	return v >= -1 && v <= 1
}
