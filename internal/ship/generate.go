package ship

import (
	"image"
	"image/draw"
)

// Generate renders the 12x12 sprite for a seed pair. Same seeds, same pixels.
func Generate(seeds SeedPair, monochrome bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, Width, Height))
	Draw(img, image.Point{}, seeds, monochrome)
	return img
}

// GenerateWithFreshSeed draws a new seed pair from src and renders it.
// The pair is returned so the ship can be replayed with Generate.
func GenerateWithFreshSeed(src SeedSource, monochrome bool) (*image.NRGBA, SeedPair) {
	seeds := NextPair(src)
	return Generate(seeds, monochrome), seeds
}

// Draw runs the full pipeline for one ship into dst at the given offset:
// classify, outline, rasterize.
func Draw(dst draw.Image, at image.Point, seeds SeedPair, monochrome bool) {
	g := Classify(seeds.Shape)
	g.ExtendBorder()
	Rasterize(dst, at, g, Palette{Seed: seeds.Color, Monochrome: monochrome})
}
