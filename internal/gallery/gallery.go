package gallery

import (
	"image"
	"image/color"

	"infiniship/internal/ship"
)

// Action represents a viewer input action.
type Action int

// Viewer actions.
const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionNextPage
	ActionPrevPage
	ActionMono
	ActionQuit
)

var actionNames = [...]string{"none", "up", "down", "left", "right", "next", "prev", "mono", "quit"}

// String returns a short lower-case name for logs.
func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Highlight outlines the selected ship inside its tile margin.
var Highlight = color.NRGBA{R: 255, G: 220, B: 100, A: 255}

// Gallery is one viewer's paged browse through ships. Every seed pair ever
// shown is kept, so earlier pages come back unchanged.
type Gallery struct {
	src    ship.SeedSource
	seeds  []ship.SeedPair
	start  int // index in seeds of the first ship on the page
	sel    int // offset from start
	tilesX int
	tilesY int
	mono   bool
}

// New starts a gallery whose first ships are first, followed by draws from
// src as pages are filled.
func New(src ship.SeedSource, first ...ship.SeedPair) *Gallery {
	g := &Gallery{
		src:    src,
		seeds:  append([]ship.SeedPair(nil), first...),
		tilesX: 1,
		tilesY: 1,
	}
	g.fill()
	return g
}

// Fit sizes the page to the largest tile grid inside w x h pixels, with at
// least one tile. The first ship on the page stays the same.
func (g *Gallery) Fit(w, h int) {
	g.tilesX = max(w/ship.TileSize, 1)
	g.tilesY = max(h/ship.TileSize, 1)
	g.sel = min(g.sel, g.PageSize()-1)
	g.fill()
}

// Tiles returns the page grid.
func (g *Gallery) Tiles() (int, int) {
	return g.tilesX, g.tilesY
}

// PageSize is the number of ships on one page.
func (g *Gallery) PageSize() int {
	return g.tilesX * g.tilesY
}

// Page is the 1-based page number for the current page size.
func (g *Gallery) Page() int {
	return g.start/g.PageSize() + 1
}

// Monochrome reports whether ships are drawn black and white.
func (g *Gallery) Monochrome() bool {
	return g.mono
}

// Apply performs a and reports whether the view changed.
func (g *Gallery) Apply(a Action) bool {
	n := g.PageSize()
	col, row := g.sel%g.tilesX, g.sel/g.tilesX

	switch a {
	case ActionUp:
		if row == 0 {
			return false
		}
		g.sel -= g.tilesX
	case ActionDown:
		if row == g.tilesY-1 {
			return false
		}
		g.sel += g.tilesX
	case ActionLeft:
		if col == 0 {
			return false
		}
		g.sel--
	case ActionRight:
		if col == g.tilesX-1 {
			return false
		}
		g.sel++
	case ActionNextPage:
		g.start += n
		g.fill()
	case ActionPrevPage:
		if g.start == 0 {
			return false
		}
		g.start = max(g.start-n, 0)
	case ActionMono:
		g.mono = !g.mono
	default:
		return false
	}
	return true
}

// PageSeeds returns the seed pairs on the current page in row-major order.
func (g *Gallery) PageSeeds() []ship.SeedPair {
	return g.seeds[g.start : g.start+g.PageSize()]
}

// Selected returns the seed pair of the highlighted ship.
func (g *Gallery) Selected() ship.SeedPair {
	return g.seeds[g.start+g.sel]
}

// Frame renders the current page with the selection outlined.
func (g *Gallery) Frame() *image.NRGBA {
	sheet := ship.ComposeSeeds(g.PageSeeds(), g.tilesX, g.tilesY, g.mono)

	o := ship.TileOrigin(g.sel, g.tilesX)
	x0, y0 := o.X-1, o.Y-1
	x1, y1 := o.X+ship.Width, o.Y+ship.Height
	for x := x0; x <= x1; x++ {
		sheet.SetNRGBA(x, y0, Highlight)
		sheet.SetNRGBA(x, y1, Highlight)
	}
	for y := y0; y <= y1; y++ {
		sheet.SetNRGBA(x0, y, Highlight)
		sheet.SetNRGBA(x1, y, Highlight)
	}
	return sheet
}

// fill draws fresh seed pairs until the current page is complete.
func (g *Gallery) fill() {
	for len(g.seeds) < g.start+g.PageSize() {
		g.seeds = append(g.seeds, ship.NextPair(g.src))
	}
}
