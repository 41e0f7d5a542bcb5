package ship

// ExtendBorder outlines every silhouette cell (body, cockpit, jets) of the
// left half with solid cells. It is a single row-major sweep: cells turned
// solid during the sweep are not visited as silhouette cells.
//
// The down guard is y < Height, so a silhouette cell on the last visible row
// marks the sentinel row below it. That row is never rendered.
func (g *Grid) ExtendBorder() {
	for y := 0; y < Height; y++ {
		for x := 0; x < HalfWidth; x++ {
			switch g.At(x, y) {
			case Empty, Solid:
				continue
			}

			if y > 0 {
				g.markSolid(x, y-1)
			}
			if x < HalfWidth-1 {
				g.markSolid(x+1, y)
			}
			if y < Height {
				g.markSolid(x, y+1)
			}
			if x > 0 {
				g.markSolid(x-1, y)
			}
		}
	}
}

func (g *Grid) markSolid(x, y int) {
	if g.At(x, y) == Empty {
		g.Set(x, y, Solid)
	}
}
