package pdfium

import (
	"image"
	"image/color"
	"testing"

	"github.com/ereaderlab/reflow/engine"
)

func TestInnerBox(t *testing.T) {
	s := engine.DefaultSettings()
	b := innerBox(s)
	if b != (box{W: s.OutputWidthPx, H: s.OutputHeightPx}) {
		t.Fatalf("no profile: innerBox = %+v", b)
	}

	s.DeviceProfile = "ko2" // has non-zero padding
	s.OutputWidthPx = 1040
	s.OutputHeightPx = 1356
	b = innerBox(s)
	if b.X != 3 || b.Y != 0 || b.W != 1040-3-19 || b.H != 1356-4 {
		t.Fatalf("ko2 padding not applied: %+v", b)
	}

	// Padding larger than the page falls back to the full area.
	s.OutputWidthPx = 10
	b = innerBox(s)
	if b.W != 10 || b.X != 0 {
		t.Fatalf("oversized padding not ignored: %+v", b)
	}
}

func TestEffectiveDPI(t *testing.T) {
	s := engine.Settings{DPI: 300}
	if got := effectiveDPI(s); got != 300 {
		t.Fatalf("effectiveDPI = %d", got)
	}
	if got := effectiveDPI(engine.Settings{}); got != engine.DefaultDPI {
		t.Fatalf("zero DPI must fall back to default, got %d", got)
	}
}

func TestScalePage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			src.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}

	gray := scalePage(src, 10, 5, false)
	if _, ok := gray.(*image.Gray); !ok {
		t.Fatalf("grayscale target should produce *image.Gray, got %T", gray)
	}
	if got := gray.Bounds(); got.Dx() != 10 || got.Dy() != 5 {
		t.Fatalf("scaled bounds %v", got)
	}

	rgba := scalePage(src, 40, 20, true)
	if _, ok := rgba.(*image.RGBA); !ok {
		t.Fatalf("color target should produce *image.RGBA, got %T", rgba)
	}
	if got := rgba.Bounds(); got.Dx() != 40 || got.Dy() != 20 {
		t.Fatalf("upscaled bounds %v", got)
	}
}
