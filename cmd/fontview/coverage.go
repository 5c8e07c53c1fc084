package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gogpu/fontview"
	"github.com/gogpu/fontview/atlas"
	"golang.org/x/text/unicode/norm"
)

// checkCoverage logs the runes of the configured text that the atlas has
// no glyph for and returns them. Layout skips such runes silently.
func checkCoverage(logger *slog.Logger, a *atlas.Atlas, cfg fontview.Config) []rune {
	text := cfg.Text
	if cfg.Layout.Normalize {
		text = norm.NFC.String(text)
	}
	missing := a.Uncovered(text)
	if len(missing) > 0 {
		logger.Warn("text has runes the atlas lacks", "count", len(missing), "runes", string(missing))
	}
	return missing
}

// listGlyphs writes one line per glyph: code point, grid cell and its
// texture-space bounds.
func listGlyphs(w io.Writer, a *atlas.Atlas) error {
	for _, r := range a.Runes() {
		g, _ := a.Glyph(r)
		c, _ := a.GlyphCell(r)
		if _, err := fmt.Fprintf(w, "U+%04X %q col=%d row=%d uv=[%.4f,%.4f]-[%.4f,%.4f]\n",
			r, r, g.Column, g.Row, c.LLx, c.LLy, c.URx, c.URy); err != nil {
			return err
		}
	}
	return nil
}
