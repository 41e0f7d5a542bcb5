package render

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
)

// LoadImage reads a PNG or BMP file into an NRGBA image anchored at the
// origin.
func LoadImage(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ToNRGBA(img), nil
}

// ToNRGBA converts img to NRGBA, reusing it when it already is one at the
// origin.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
