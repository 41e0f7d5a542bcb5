package render

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func TestPixelCell(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 3))
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(0, 2, blue)
	bg := color.NRGBA{R: 1, G: 2, B: 3, A: 255}

	tests := []struct {
		name string
		y    int
		want Cell
	}{
		{"opaque over transparent", 0, Cell{Ch: UpperHalf, FgR: 255, BgR: 1, BgG: 2, BgB: 3}},
		{"last odd row", 2, Cell{Ch: UpperHalf, FgB: 255, BgR: 1, BgG: 2, BgB: 3}},
		{"outside", 4, Cell{Ch: UpperHalf, FgR: 1, FgG: 2, FgB: 3, BgR: 1, BgG: 2, BgB: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PixelCell(img, 0, tt.y, bg); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRows(t *testing.T) {
	for h, want := range map[int]int{0: 0, 1: 1, 2: 1, 3: 2, 12: 6} {
		if got := Rows(h); got != want {
			t.Errorf("Rows(%d) = %d, want %d", h, got, want)
		}
	}
}

func TestHalfBlocks(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 3))
	img.SetNRGBA(1, 1, red)

	out := HalfBlocks(img, Background)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), out)
	}
	for i, line := range lines {
		if !strings.HasSuffix(line, Reset) {
			t.Errorf("line %d not reset: %q", i, line)
		}
		if n := strings.Count(line, string(UpperHalf)); n != 2 {
			t.Errorf("line %d has %d blocks, want 2", i, n)
		}
	}
	// Bottom half of the second column carries the red pixel.
	if !strings.Contains(lines[0], ";48;2;255;0;0m") {
		t.Errorf("red background missing from %q", lines[0])
	}
}

func TestHalfBlocksEmpty(t *testing.T) {
	if out := HalfBlocks(image.NewNRGBA(image.Rectangle{}), Background); out != "" {
		t.Errorf("got %q", out)
	}
}
