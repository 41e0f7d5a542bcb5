package ship

import (
	"image"
	"image/draw"
)

// Rasterize paints a classified grid into dst with the sprite's top-left
// corner at at. The sprite area is cleared to transparent first, then every
// left-half cell is written at (x, y) and mirrored to (Width-x-1, y).
func Rasterize(dst draw.Image, at image.Point, g *Grid, p Palette) {
	area := image.Rect(0, 0, Width, Height).Add(at)
	draw.Draw(dst, area, image.Transparent, image.Point{}, draw.Src)

	for y := 0; y < Height; y++ {
		for x := 0; x < HalfWidth; x++ {
			c := p.CellColor(g.At(x, y), x, y)
			dst.Set(at.X+x, at.Y+y, c)
			dst.Set(at.X+Width-x-1, at.Y+y, c)
		}
	}
}
