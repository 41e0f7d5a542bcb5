package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// Format selects how an image is written out.
type Format int

// Supported output formats.
const (
	FormatPNG Format = iota
	FormatBMP
	FormatSVG
	FormatANSI
	FormatDataURI
)

// ErrUnknownFormat is returned for names ParseFormat does not know.
var ErrUnknownFormat = errors.New("unknown image format")

var formatNames = [...]string{
	FormatPNG:     "png",
	FormatBMP:     "bmp",
	FormatSVG:     "svg",
	FormatANSI:    "ansi",
	FormatDataURI: "datauri",
}

var formatExts = [...]string{
	FormatPNG:     ".png",
	FormatBMP:     ".bmp",
	FormatSVG:     ".svg",
	FormatANSI:    ".ans",
	FormatDataURI: ".txt",
}

// String returns the format name as ParseFormat accepts it.
func (f Format) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Ext is the file extension conventionally used for f, with the dot.
func (f Format) Ext() string {
	if f >= 0 && int(f) < len(formatExts) {
		return formatExts[f]
	}
	return ""
}

// Binary reports whether f should not be written to a terminal.
func (f Format) Binary() bool {
	return f == FormatPNG || f == FormatBMP
}

// ParseFormat reads a format name or file extension, case-insensitively.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if s == "ans" {
		return FormatANSI, nil
	}
	for i, n := range formatNames {
		if n == s {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Upscale enlarges img by an integer factor with nearest-neighbour sampling.
// Factors below 2 return an unscaled copy.
func Upscale(img image.Image, scale int) *image.NRGBA {
	if scale < 2 {
		return imaging.Clone(img)
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.NearestNeighbor)
}

// Encode writes img to w in format f, enlarged by scale.
func Encode(w io.Writer, img image.Image, f Format, scale int) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, Upscale(img, scale))
	case FormatBMP:
		return bmp.Encode(w, Upscale(img, scale))
	case FormatSVG:
		return encodeSVG(w, img, max(scale, 1))
	case FormatANSI:
		_, err := io.WriteString(w, HalfBlocks(Upscale(img, scale), Background))
		return err
	case FormatDataURI:
		uri, err := DataURI(Upscale(img, scale))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, uri+"\n")
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
}

// DataURI returns img as a base64 PNG data URI.
func DataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// encodeSVG emits one square per non-transparent pixel.
func encodeSVG(w io.Writer, img image.Image, scale int) error {
	var buf bytes.Buffer
	b := img.Bounds()
	canvas := svg.New(&buf)
	canvas.Start(b.Dx()*scale, b.Dy()*scale, `shape-rendering="crispEdges"`)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := nrgbaAt(img, x, y)
			if c.A == 0 {
				continue
			}
			style := canvas.RGB(int(c.R), int(c.G), int(c.B))
			if c.A != 255 {
				style = canvas.RGBA(int(c.R), int(c.G), int(c.B), float64(c.A)/255)
			}
			canvas.Rect((x-b.Min.X)*scale, (y-b.Min.Y)*scale, scale, scale, style)
		}
	}
	canvas.End()

	_, err := w.Write(buf.Bytes())
	return err
}
