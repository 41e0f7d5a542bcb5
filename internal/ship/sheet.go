package ship

import "image"

const (
	// TileSize is the edge of one sheet tile in pixels.
	TileSize = Width + 2*TileMargin
	// TileMargin is the transparent border around each sprite in a tile.
	TileMargin = 2
	// DefaultTiles is the default number of tiles along each sheet axis.
	DefaultTiles = 8
)

// ComposeSheet tiles tilesX*tilesY ships, each with a fresh seed pair drawn
// from src in row-major order. Non-positive counts give an empty sheet.
func ComposeSheet(src SeedSource, tilesX, tilesY int, monochrome bool) (*image.NRGBA, []SeedPair) {
	if tilesX <= 0 || tilesY <= 0 {
		return image.NewNRGBA(image.Rectangle{}), nil
	}

	seeds := make([]SeedPair, tilesX*tilesY)
	for i := range seeds {
		seeds[i] = NextPair(src)
	}
	return ComposeSeeds(seeds, tilesX, tilesY, monochrome), seeds
}

// ComposeSeeds tiles the given seed pairs row-major into a sheet of
// tilesX*tilesY tiles. Missing pairs leave their tiles transparent and
// extra pairs are ignored.
func ComposeSeeds(seeds []SeedPair, tilesX, tilesY int, monochrome bool) *image.NRGBA {
	if tilesX <= 0 || tilesY <= 0 {
		return image.NewNRGBA(image.Rectangle{})
	}

	sheet := image.NewNRGBA(image.Rect(0, 0, TileSize*tilesX, TileSize*tilesY))
	for i, sp := range seeds {
		if i >= tilesX*tilesY {
			break
		}
		Draw(sheet, TileOrigin(i, tilesX), sp, monochrome)
	}
	return sheet
}

// TileOrigin returns the top-left pixel of the sprite in tile i of a sheet
// that is tilesX tiles wide.
func TileOrigin(i, tilesX int) image.Point {
	tx, ty := i%tilesX, i/tilesX
	return image.Pt(tx*TileSize+TileMargin, ty*TileSize+TileMargin)
}

// GenerateTile renders one ship inside a single margin-padded tile.
func GenerateTile(seeds SeedPair, monochrome bool) *image.NRGBA {
	return ComposeSeeds([]SeedPair{seeds}, 1, 1, monochrome)
}
