// Package layout turns a string into glyph quads for a bitmap font atlas.
//
// Layout is a pure function: given the same glyph source, placement,
// viewport, text and options it returns bit-identical output. It has no
// GPU dependency; the flat Positions and TexCoords arrays it produces are
// ready to be uploaded as two tightly packed vec2<f32> vertex buffers.
//
// Coordinates are clip space (NDC), x right and y up, both in [-1, 1].
// Glyphs are placed left to right; when the cursor reaches
// Options.RightMargin the line wraps back to Placement.StartX.
//
// Runes with no glyph in the source are skipped: they emit no vertices
// and do not move the cursor. They are reported in Result.Missing.
package layout

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/gogpu/fontview/atlas"
	"golang.org/x/text/unicode/norm"
)

// GlyphSource is the read-only view of an atlas that layout needs.
// *atlas.Atlas implements it.
type GlyphSource interface {
	// Grid returns the atlas cell columns and rows.
	Grid() (columns, rows int)

	// Glyph returns the metadata for r, or false on a lookup miss.
	Glyph(r rune) (atlas.GlyphMetadata, bool)
}

// Viewport is the drawable surface size in pixels.
type Viewport struct {
	Width  int
	Height int
}

// Valid reports whether both sides are positive.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Placement anchors the text block.
type Placement struct {
	// StartX and StartY are the clip-space top-left of the first glyph.
	StartX float32
	StartY float32

	// ScalePx is the on-screen glyph cell size in pixels.
	ScalePx float32
}

// DefaultPlacement starts near the top-left corner at 72px.
func DefaultPlacement() Placement {
	return Placement{
		StartX:  -0.95,
		StartY:  0.95,
		ScalePx: 72,
	}
}

// Options configures line wrapping and text preparation.
type Options struct {
	// LineSpacing is the clip-space gap added between wrapped lines.
	LineSpacing float32

	// RightMargin is the clip-space x at which a line wraps.
	RightMargin float32

	// Normalize applies Unicode NFC to the text before lookup, so that
	// decomposed input finds precomposed atlas entries.
	Normalize bool
}

// DefaultOptions returns the standard wrap parameters.
func DefaultOptions() Options {
	return Options{
		LineSpacing: 0.05,
		RightMargin: 0.95,
		Normalize:   true,
	}
}

// Result is the geometry of a laid-out string.
type Result struct {
	// Positions holds FloatsPerGlyph clip-space coordinates per glyph.
	Positions []float32

	// TexCoords holds FloatsPerGlyph atlas coordinates per glyph,
	// vertex-for-vertex with Positions.
	TexCoords []float32

	// Quads holds the same geometry grouped per glyph.
	Quads []Quad

	// GlyphCount is the number of glyphs emitted.
	GlyphCount int

	// Missing lists runes that had no glyph, once each, in order of
	// first appearance.
	Missing []rune
}

// VertexCount returns the number of vertices to draw.
func (r *Result) VertexCount() int {
	return r.GlyphCount * VerticesPerGlyph
}

// Layout places text using glyph metadata from src.
//
// For every glyph the cursor advances by Width*ScalePx/vp.Width. When the
// advanced cursor reaches opts.RightMargin it returns to p.StartX and
// moves down by opts.LineSpacing plus the Height of the glyph that caused
// the wrap, so line pitch follows that glyph rather than the tallest one
// on the line.
func Layout(src GlyphSource, p Placement, vp Viewport, text string, opts Options) (*Result, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if !vp.Valid() {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, vp.Width, vp.Height)
	}
	if !(p.ScalePx > 0) || math.IsInf(float64(p.ScalePx), 0) {
		return nil, fmt.Errorf("%w: scale %v", ErrInvalidPlacement, p.ScalePx)
	}
	if !finite(p.StartX) || !finite(p.StartY) {
		return nil, fmt.Errorf("%w: start (%v, %v)", ErrInvalidPlacement, p.StartX, p.StartY)
	}
	if !finite(opts.RightMargin) || !finite(opts.LineSpacing) {
		return nil, fmt.Errorf("%w: right margin %v, line spacing %v", ErrInvalidPlacement, opts.RightMargin, opts.LineSpacing)
	}
	cols, rows := src.Grid()
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, cols, rows)
	}

	if opts.Normalize {
		text = norm.NFC.String(text)
	}

	n := utf8.RuneCountInString(text)
	res := &Result{
		Positions: make([]float32, 0, n*FloatsPerGlyph),
		TexCoords: make([]float32, 0, n*FloatsPerGlyph),
		Quads:     make([]Quad, 0, n),
	}

	width, height := float32(vp.Width), float32(vp.Height)
	quadW := p.ScalePx / width
	quadH := p.ScalePx / height
	cellW := 1 / float32(cols)
	cellH := 1 / float32(rows)

	var missing map[rune]struct{}
	atX, atY := p.StartX, p.StartY

	for _, r := range text {
		g, ok := src.Glyph(r)
		if ok && (g.Column < 0 || g.Column >= cols || g.Row < 0 || g.Row >= rows) {
			ok = false
		}
		if !ok {
			if missing == nil {
				missing = make(map[rune]struct{})
			}
			if _, seen := missing[r]; !seen {
				missing[r] = struct{}{}
				res.Missing = append(res.Missing, r)
			}
			continue
		}

		s := float32(g.Column) * cellW
		t := float32(g.Row+1) * cellH

		x := atX
		y := atY - quadH*g.YOffset

		q := emitQuad(r, x, y, quadW, quadH, s, 1-t, cellW, cellH)
		res.Quads = append(res.Quads, q)
		res.Positions, res.TexCoords = q.appendTo(res.Positions, res.TexCoords)

		atX += g.Width * (p.ScalePx / width)
		if atX >= opts.RightMargin {
			atX = p.StartX
			atY -= opts.LineSpacing + g.Height*(p.ScalePx/height)
		}
	}

	res.GlyphCount = len(res.Quads)
	return res, nil
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
