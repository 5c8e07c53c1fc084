// Package atlas reads pre-baked bitmap font atlases.
//
// An atlas is a single image holding a fixed grid of glyph cells plus a
// table that maps each code point to its cell and rendering metrics.
// The package only reads atlases; it never rasterizes fonts.
//
// Pixel data is exposed as tightly packed RGBA8 with the bottom image row
// first, so that texture coordinate V grows upward from the bottom of the
// image. Atlas.Cell reports cell bounds in that same texture space.
package atlas

import (
	"fmt"
	"image"
	"slices"
	"unicode"

	"golang.org/x/exp/maps"
	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/rect"
)

// GlyphMetadata locates a glyph in the atlas grid and carries its
// rendering metrics in pixels.
type GlyphMetadata struct {
	CodePoint rune    `json:"code_point"`
	Row       int     `json:"row"`
	Column    int     `json:"column"`
	Width     float32 `json:"width"`
	Height    float32 `json:"height"`
	XMin      float32 `json:"x_min"`
	YMin      float32 `json:"y_min"`
	YOffset   float32 `json:"y_offset"`
}

// Metadata is the JSON document stored next to the atlas image.
type Metadata struct {
	// Dimensions is the side length of the square atlas image in pixels.
	// Zero means the image size is taken as is.
	Dimensions    int                    `json:"dimensions"`
	Columns       int                    `json:"columns"`
	Rows          int                    `json:"rows"`
	Padding       int                    `json:"padding"`
	SlotGlyphSize int                    `json:"slot_glyph_size"`
	GlyphSize     int                    `json:"glyph_size"`
	Glyphs        map[rune]GlyphMetadata `json:"glyph_metadata"`
}

// Atlas is a decoded bitmap font atlas. It is read-only after creation
// and safe to share between readers.
type Atlas struct {
	meta   Metadata
	glyphs map[rune]GlyphMetadata
	width  int
	height int
	pixels []byte
}

// New builds an atlas from its metadata and image. Every glyph entry is
// checked against the grid, and the image is converted to bottom-up RGBA8.
func New(meta Metadata, img image.Image) (*Atlas, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if meta.Columns <= 0 || meta.Rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, meta.Columns, meta.Rows)
	}

	b := img.Bounds()
	if meta.Dimensions > 0 && (b.Dx() != meta.Dimensions || b.Dy() != meta.Dimensions) {
		return nil, fmt.Errorf("%w: image is %dx%d, metadata declares %d",
			ErrImageSize, b.Dx(), b.Dy(), meta.Dimensions)
	}

	glyphs := make(map[rune]GlyphMetadata, len(meta.Glyphs))
	for r, g := range meta.Glyphs {
		switch {
		case g.Column < 0 || g.Column >= meta.Columns:
			return nil, &GlyphError{Rune: r, Reason: fmt.Sprintf("column %d outside [0, %d)", g.Column, meta.Columns)}
		case g.Row < 0 || g.Row >= meta.Rows:
			return nil, &GlyphError{Rune: r, Reason: fmt.Sprintf("row %d outside [0, %d)", g.Row, meta.Rows)}
		case g.Width < 0 || g.Height < 0:
			return nil, &GlyphError{Rune: r, Reason: "negative size"}
		}
		// The table key is authoritative; code_point is informational.
		g.CodePoint = r
		glyphs[r] = g
	}

	return &Atlas{
		meta:   meta,
		glyphs: glyphs,
		width:  b.Dx(),
		height: b.Dy(),
		pixels: bottomUpRGBA(img),
	}, nil
}

// bottomUpRGBA converts img to packed RGBA8 rows, last image row first.
func bottomUpRGBA(img image.Image) []byte {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	rowBytes := b.Dx() * 4
	out := make([]byte, rowBytes*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+rowBytes]
		dst := out[(b.Dy()-1-y)*rowBytes:]
		copy(dst[:rowBytes], src)
	}
	return out
}

// GlyphCount returns the number of entries in the glyph table.
func (a *Atlas) GlyphCount() int {
	return len(a.glyphs)
}

// Grid returns the number of cell columns and rows.
func (a *Atlas) Grid() (columns, rows int) {
	return a.meta.Columns, a.meta.Rows
}

// Glyph returns the metadata for r, or false if the atlas has no such glyph.
func (a *Atlas) Glyph(r rune) (GlyphMetadata, bool) {
	g, ok := a.glyphs[r]
	return g, ok
}

// Runes returns every code point in the glyph table in ascending order.
func (a *Atlas) Runes() []rune {
	keys := maps.Keys(a.glyphs)
	slices.Sort(keys)
	return keys
}

// Uncovered returns the distinct code points of text that have no glyph,
// in ascending order. Line breaks and other control characters are
// ignored. The result is nil when the atlas covers the whole text.
func (a *Atlas) Uncovered(text string) []rune {
	known := a.Runes()
	var out []rune
	for _, r := range text {
		if unicode.IsControl(r) {
			continue
		}
		if _, ok := slices.BinarySearch(known, r); ok {
			continue
		}
		if i, seen := slices.BinarySearch(out, r); !seen {
			out = slices.Insert(out, i, r)
		}
	}
	return out
}

// ImageSize returns the atlas image dimensions in pixels.
func (a *Atlas) ImageSize() (width, height int) {
	return a.width, a.height
}

// Pixels returns the RGBA8 image data, bottom row first. The slice is
// shared with the atlas and must not be modified.
func (a *Atlas) Pixels() []byte {
	return a.pixels
}

// Metadata returns the grid parameters the atlas was built from. The
// glyph table is not included; use Glyph or Runes.
func (a *Atlas) Metadata() Metadata {
	m := a.meta
	m.Glyphs = nil
	return m
}

// Cell returns the texture-space bounds of the grid cell at (column, row).
// Rows are counted from the top of the image, so row 0 occupies the top
// strip of texture space, [1-1/rows, 1].
func (a *Atlas) Cell(column, row int) rect.Rect {
	cols, rows := float64(a.meta.Columns), float64(a.meta.Rows)
	return rect.Rect{
		LLx: float64(column) / cols,
		LLy: 1 - float64(row+1)/rows,
		URx: float64(column+1) / cols,
		URy: 1 - float64(row)/rows,
	}
}

// GlyphCell returns the texture-space bounds of the cell holding r.
func (a *Atlas) GlyphCell(r rune) (rect.Rect, bool) {
	g, ok := a.glyphs[r]
	if !ok {
		return rect.Rect{}, false
	}
	return a.Cell(g.Column, g.Row), true
}
