package fontview

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/fontview/internal/gpu"
	"github.com/gogpu/fontview/layout"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.Width != 1024 || cfg.Height != 576 {
		t.Errorf("size = %dx%d, want 1024x576", cfg.Width, cfg.Height)
	}
	if cfg.Placement != layout.DefaultPlacement() {
		t.Errorf("Placement = %+v", cfg.Placement)
	}
	if cfg.TextColor != [4]float32{1, 1, 0, 1} {
		t.Errorf("TextColor = %v", cfg.TextColor)
	}
	if cfg.Wrap != gpu.WrapClampToEdge {
		t.Errorf("Wrap = %v", cfg.Wrap)
	}
	if cfg.Text != DefaultText {
		t.Error("Text is not DefaultText")
	}
}

func TestConfigBuilders(t *testing.T) {
	cfg := DefaultConfig().
		WithTitle("atlas").
		WithSize(640, 480).
		WithStart(-0.5, 0.5).
		WithScale(24).
		WithTextColor(0, 1, 0, 1).
		WithClearColor(0, 0, 0, 1).
		WithWrap(gpu.WrapRepeat).
		WithText("hi")

	if cfg.Title != "atlas" || cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("window = %q %dx%d", cfg.Title, cfg.Width, cfg.Height)
	}
	want := layout.Placement{StartX: -0.5, StartY: 0.5, ScalePx: 24}
	if cfg.Placement != want {
		t.Errorf("Placement = %+v, want %+v", cfg.Placement, want)
	}
	if cfg.TextColor != [4]float32{0, 1, 0, 1} || cfg.ClearColor != [4]float64{0, 0, 0, 1} {
		t.Errorf("colors = %v / %v", cfg.TextColor, cfg.ClearColor)
	}
	if cfg.Wrap != gpu.WrapRepeat || cfg.Text != "hi" {
		t.Errorf("wrap = %v, text = %q", cfg.Wrap, cfg.Text)
	}

	// Builders work on copies.
	base := DefaultConfig()
	_ = base.WithScale(1)
	if base.Placement.ScalePx != 72 {
		t.Error("WithScale mutated the receiver")
	}
}

func TestConfigValidate(t *testing.T) {
	opts := layout.DefaultOptions()
	opts.LineSpacing = -1

	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"zero width", DefaultConfig().WithSize(0, 10), "Size"},
		{"zero scale", DefaultConfig().WithScale(0), "Placement.ScalePx"},
		{"NaN scale", DefaultConfig().WithScale(float32(math.NaN())), "Placement.ScalePx"},
		{"start outside clip", DefaultConfig().WithStart(-2, 0), "Placement.Start"},
		{"negative spacing", DefaultConfig().WithLayout(opts), "Layout.LineSpacing"},
		{"margin left of start", DefaultConfig().WithStart(0.96, 0.9), "Layout.RightMargin"},
		{"text color", DefaultConfig().WithTextColor(2, 0, 0, 1), "TextColor"},
		{"clear color", DefaultConfig().WithClearColor(0, 0, 0, -1), "ClearColor"},
		{"wrap", DefaultConfig().WithWrap(gpu.WrapMode(7)), "Wrap"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestConfigMaxGlyphs(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 1},
		{"abc", 3},
		{"e\u0301", 1},
	}
	for _, tt := range tests {
		if got := DefaultConfig().WithText(tt.text).MaxGlyphs(); got != tt.want {
			t.Errorf("MaxGlyphs(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}

	opts := layout.DefaultOptions()
	opts.Normalize = false
	if got := DefaultConfig().WithText("e\u0301").WithLayout(opts).MaxGlyphs(); got != 2 {
		t.Errorf("MaxGlyphs without normalization = %d, want 2", got)
	}
}
