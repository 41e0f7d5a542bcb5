package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

// sample is a 3x2 image with one transparent pixel.
func sample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(1, 0, blue)
	img.SetNRGBA(2, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func opaqueSample() *image.NRGBA {
	img := sample()
	img.SetNRGBA(2, 1, color.NRGBA{G: 200, A: 255})
	return img
}

func assertScaled(t *testing.T, got image.Image, want *image.NRGBA, scale int) {
	t.Helper()
	wb := want.Bounds()
	if got.Bounds().Dx() != wb.Dx()*scale || got.Bounds().Dy() != wb.Dy()*scale {
		t.Fatalf("size %v, want %dx%d", got.Bounds(), wb.Dx()*scale, wb.Dy()*scale)
	}
	n := ToNRGBA(got)
	for y := 0; y < n.Bounds().Dy(); y++ {
		for x := 0; x < n.Bounds().Dx(); x++ {
			if g, w := n.NRGBAAt(x, y), want.NRGBAAt(x/scale, y/scale); g != w {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, g, w)
			}
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"png", FormatPNG},
		{".PNG", FormatPNG},
		{"bmp", FormatBMP},
		{"svg", FormatSVG},
		{"ansi", FormatANSI},
		{"ans", FormatANSI},
		{" datauri ", FormatDataURI},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}

	for _, in := range []string{"", "gif", "jpeg"} {
		if _, err := ParseFormat(in); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("ParseFormat(%q) err = %v, want ErrUnknownFormat", in, err)
		}
	}
}

func TestFormatNames(t *testing.T) {
	for f := FormatPNG; f <= FormatDataURI; f++ {
		back, err := ParseFormat(f.String())
		if err != nil || back != f {
			t.Errorf("%v does not parse back: %v, %v", f, back, err)
		}
		if !strings.HasPrefix(f.Ext(), ".") {
			t.Errorf("%v ext = %q", f, f.Ext())
		}
	}
	if s := Format(42).String(); s != "format(42)" {
		t.Errorf("String = %q", s)
	}
}

func TestUpscale(t *testing.T) {
	for _, scale := range []int{0, 1, 2, 5} {
		want := max(scale, 1)
		assertScaled(t, Upscale(sample(), scale), sample(), want)
	}
}

func TestEncodePNG(t *testing.T) {
	for _, scale := range []int{1, 4} {
		var buf bytes.Buffer
		if err := Encode(&buf, sample(), FormatPNG, scale); err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			t.Fatal(err)
		}
		assertScaled(t, img, sample(), scale)
	}
}

func TestEncodeBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, opaqueSample(), FormatBMP, 3); err != nil {
		t.Fatal(err)
	}
	img, err := bmp.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	assertScaled(t, img, opaqueSample(), 3)
}

func TestEncodeSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sample(), FormatSVG, 4); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if n := strings.Count(out, "<rect"); n != 5 {
		t.Errorf("%d rects, want 5", n)
	}
	for _, want := range []string{`width="12"`, `height="8"`, "fill:rgb(255,0,0)", "fill:rgb(10,20,30)", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestEncodeANSI(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sample(), FormatANSI, 1); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), HalfBlocks(sample(), Background); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDataURI(t *testing.T) {
	uri, err := DataURI(sample())
	if err != nil {
		t.Fatal(err)
	}
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("uri = %q", uri)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	assertScaled(t, img, sample(), 1)

	var buf bytes.Buffer
	if err := Encode(&buf, sample(), FormatDataURI, 1); err != nil {
		t.Fatal(err)
	}
	if buf.String() != uri+"\n" {
		t.Error("datauri format differs from DataURI")
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, sample(), Format(9), 1)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v", err)
	}
}
