// Command fontview opens a window showing a block of text rendered from a
// bitmap font atlas.
//
// Usage:
//
//	fontview -i font.bmfa [-scale 48] [-wrap repeat] [-text-file body.txt]
//	fontview -i font.bmfa -list
//
// Press Escape or close the window to quit.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gogpu/fontview"
	"github.com/gogpu/fontview/atlas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
)

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// The atlas path is checked before any window or GPU work.
	if err := fontview.ValidateInput(opts.input); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := opts.config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(os.Stderr, opts.verbose)
	fontview.SetLogger(logger)

	a, err := atlas.Load(opts.input)
	if err != nil {
		log.Fatalf("Could not load font atlas: %v", err)
	}
	cols, rows := a.Grid()
	logger.Info("atlas loaded", "path", opts.input, "glyphs", a.GlyphCount(), "columns", cols, "rows", rows)

	if opts.list {
		if err := listGlyphs(os.Stdout, a); err != nil {
			log.Fatal(err)
		}
		return
	}
	checkCoverage(logger, a, cfg)

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height))

	v := newViewer(cfg, a)

	app.OnDraw(func(dc *gogpu.Context) {
		if !v.ready() {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			fmt.Printf("Renderer: %v\n", dc.Backend())
			if err := v.init(provider); err != nil {
				log.Fatalf("Failed to initialize renderer: %v", err)
			}
		}
		if !v.frame(dc) {
			app.Quit()
		}
	})

	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if key == gpucontext.KeyEscape {
			v.requestClose()
		}
	})

	app.OnClose(v.destroy)

	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
