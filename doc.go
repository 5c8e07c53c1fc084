// Package fontview previews bitmap font atlases on the GPU.
//
// # Overview
//
// An atlas is a grid of pre-rendered glyphs plus per-glyph metrics (see
// package atlas). fontview lays a block of text out against those metrics
// (package layout), uploads the resulting quads into GPU vertex buffers
// and draws them with the atlas as a texture.
//
// # Quick Start
//
//	a, err := atlas.Load("font.bmfa")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg := fontview.DefaultConfig().WithScale(48)
//	geom, _ := gpu.NewGeometryBuffer(device, queue, cfg.MaxGlyphs())
//	s, err := fontview.NewSession(a, geom, cfg)
//	...
//	// once per frame, on the GPU goroutine:
//	err = s.Frame(layout.Viewport{Width: w, Height: h}, func(n uint32) error {
//	    return renderer.Draw(view, n)
//	})
//
// # Re-layout
//
// The session keeps the viewport of the last layout. A change of width or
// height, text or placement lays the whole block out again and uploads it
// before the next draw.
//
// # Missing glyphs
//
// Runes the atlas does not contain are skipped without moving the cursor.
// Each one is logged once per session at warn level.
//
// # Logging
//
// fontview logs through log/slog and is silent by default; see SetLogger.
//
// # Architecture
//
// The module is organized into:
//   - fontview: Config, Session, input validation, logging
//   - atlas: atlas archive decoding and glyph metadata
//   - layout: text to quads, no GPU dependency
//   - internal/gpu: vertex buffers, texture, shaders, renderer (gogpu/wgpu HAL)
//   - cmd/fontview: the viewer window (gogpu)
package fontview
