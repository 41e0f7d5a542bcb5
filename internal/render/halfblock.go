package render

import (
	"image"
	"image/color"
	"strings"
)

// opaque flattens c onto bg. Partial alpha is treated as fully opaque.
func opaque(c, bg color.NRGBA) color.NRGBA {
	if c.A == 0 {
		return bg
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return color.NRGBA{}
	}
	if n, ok := img.(*image.NRGBA); ok {
		return n.NRGBAAt(x, y)
	}
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

// PixelCell returns the half-block cell for pixel rows y and y+1 of column x.
// Pixels outside the image count as transparent.
func PixelCell(img image.Image, x, y int, bg color.NRGBA) Cell {
	top := opaque(nrgbaAt(img, x, y), bg)
	bot := opaque(nrgbaAt(img, x, y+1), bg)
	return Cell{
		Ch:  UpperHalf,
		FgR: top.R, FgG: top.G, FgB: top.B,
		BgR: bot.R, BgG: bot.G, BgB: bot.B,
	}
}

// Rows returns the number of terminal rows needed to show h pixel rows.
func Rows(h int) int {
	return (h + 1) / 2
}

// HalfBlocks renders img as truecolor text, one line per two pixel rows.
// Every line ends with a reset and a newline.
func HalfBlocks(img image.Image, bg color.NRGBA) string {
	b := img.Bounds()
	var sb strings.Builder
	sb.Grow(b.Dx() * Rows(b.Dy()) * 40)

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			WriteCellSGR(&sb, PixelCell(img, x, y, bg))
		}
		sb.WriteString(Reset)
		sb.WriteByte('\n')
	}
	return sb.String()
}
