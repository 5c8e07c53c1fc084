package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/fontview"
	"github.com/gogpu/fontview/internal/gpu"
)

// options holds the parsed command line.
type options struct {
	input    string
	textFile string
	scale    float64
	startX   float64
	startY   float64
	width    int
	height   int
	wrap     string
	verbose  bool
	list     bool
}

// parseFlags parses args (without the program name).
func parseFlags(args []string, output io.Writer) (options, error) {
	def := fontview.DefaultConfig()

	var o options
	fs := flag.NewFlagSet("fontview", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "fontview: a shell utility for viewing bitmap font atlas files.")
		fmt.Fprintln(fs.Output(), "\nUsage: fontview -i <atlas> [flags]")
		fs.PrintDefaults()
	}

	fs.StringVar(&o.input, "i", "", "path to the font atlas file")
	fs.StringVar(&o.input, "input", "", "path to the font atlas file")
	fs.StringVar(&o.textFile, "text-file", "", "file whose contents replace the built-in text")
	fs.Float64Var(&o.scale, "scale", float64(def.Placement.ScalePx), "glyph cell size in pixels")
	fs.Float64Var(&o.startX, "x", float64(def.Placement.StartX), "clip-space x of the first glyph")
	fs.Float64Var(&o.startY, "y", float64(def.Placement.StartY), "clip-space y of the first glyph")
	fs.IntVar(&o.width, "width", def.Width, "window width")
	fs.IntVar(&o.height, "height", def.Height, "window height")
	fs.StringVar(&o.wrap, "wrap", def.Wrap.String(), "atlas sampler wrap mode: clamp, repeat or mirror")
	fs.BoolVar(&o.verbose, "v", false, "enable debug logging")
	fs.BoolVar(&o.list, "list", false, "print the atlas glyph table and exit")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return o, nil
}

// config turns the options into a validated preview configuration.
func (o options) config() (fontview.Config, error) {
	wrap, err := gpu.ParseWrapMode(o.wrap)
	if err != nil {
		return fontview.Config{}, err
	}

	cfg := fontview.DefaultConfig().
		WithSize(o.width, o.height).
		WithStart(float32(o.startX), float32(o.startY)).
		WithScale(float32(o.scale)).
		WithWrap(wrap)

	if o.textFile != "" {
		data, err := os.ReadFile(o.textFile)
		if err != nil {
			return fontview.Config{}, fmt.Errorf("read text file: %w", err)
		}
		cfg = cfg.WithText(string(data))
	}

	if err := cfg.Validate(); err != nil {
		return fontview.Config{}, err
	}
	return cfg, nil
}
