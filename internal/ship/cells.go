package ship

import "strings"

const (
	// Width is the sprite width in cells (and pixels).
	Width = 12
	// Height is the sprite height in cells (and pixels).
	Height = 12
	// HalfWidth is the number of columns that are classified; the rest is mirrored.
	HalfWidth = Width / 2
)

// CellType tags one logical cell of a ship.
type CellType uint8

// Cell types. Empty cells render transparent.
const (
	Empty CellType = iota
	Solid
	Body
	Cockpit
	Jets
)

var cellNames = [...]string{"empty", "solid", "body", "cockpit", "jets"}

// String returns the lower-case type name.
func (c CellType) String() string {
	if int(c) < len(cellNames) {
		return cellNames[c]
	}
	return "unknown"
}

// cellGlyphs is used by Grid.String for ASCII dumps.
var cellGlyphs = [...]byte{'.', '#', 'o', 'C', 'J'}

// Coord is a cell position inside the left half of the grid.
type Coord struct{ X, Y int }

// Ship template. Only body and cockpit cells depend on the shape seed.
// (5,10) is listed both as body and jets; jets are applied last and win.
var (
	solidCells = [...]Coord{
		{5, 2}, {5, 3}, {5, 4}, {5, 8},
	}

	bodyCells = [...]Coord{
		{4, 1}, {5, 1}, {4, 2}, {3, 3}, {4, 3}, {3, 4}, {4, 4},
		{2, 5}, {3, 5}, {4, 5},
		{1, 6}, {2, 6}, {3, 6},
		{1, 7}, {2, 7}, {3, 7},
		{1, 8}, {2, 8}, {3, 8},
		{1, 9}, {2, 9}, {3, 9}, {4, 9},
		{1, 10}, {2, 10}, {5, 10},
	}

	cockpitCells = [...]Coord{
		{4, 6}, {5, 6}, {4, 7}, {5, 7}, {4, 8}, {5, 5}, {4, 10},
	}

	jetsCells = [...]Coord{
		{5, 9}, {5, 10},
	}
)

// Grid is the classified cell map of one ship, row-major.
// It carries one sentinel row below the last visible row so that the border
// pass can address y == Height; the sentinel row is never rasterized.
type Grid struct {
	cells [Width * (Height + 1)]CellType
}

func cellIndex(x, y int) int {
	return y*Width + x
}

// At returns the cell type at (x, y). y may be Height (the sentinel row).
func (g *Grid) At(x, y int) CellType {
	return g.cells[cellIndex(x, y)]
}

// Set overwrites the cell type at (x, y).
func (g *Grid) Set(x, y int, c CellType) {
	g.cells[cellIndex(x, y)] = c
}

// Classify builds the grid for a shape seed. The zero Grid is all Empty,
// so the rules below start from a blank template.
func Classify(shapeSeed uint64) *Grid {
	g := &Grid{}

	for _, c := range solidCells {
		g.Set(c.X, c.Y, Solid)
	}

	for i, c := range bodyCells {
		if bitSet(shapeSeed, i) {
			g.Set(c.X, c.Y, Body)
		} else {
			g.Set(c.X, c.Y, Empty)
		}
	}

	for i, c := range cockpitCells {
		if bitSet(shapeSeed, len(bodyCells)+i) {
			g.Set(c.X, c.Y, Solid)
		} else {
			g.Set(c.X, c.Y, Cockpit)
		}
	}

	for _, c := range jetsCells {
		g.Set(c.X, c.Y, Jets)
	}

	return g
}

func bitSet(seed uint64, i int) bool {
	return seed&(1<<uint(i)) != 0
}

// String renders the visible rows as mirrored ASCII, one line per row.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			cx := x
			if cx >= HalfWidth {
				cx = Width - x - 1
			}
			sb.WriteByte(cellGlyphs[g.At(cx, y)])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Count returns how many cells of the left half carry each type.
func (g *Grid) Count() map[CellType]int {
	counts := make(map[CellType]int, len(cellNames))
	for y := 0; y < Height; y++ {
		for x := 0; x < HalfWidth; x++ {
			counts[g.At(x, y)]++
		}
	}
	return counts
}

// TemplateCells returns the template positions that can take type c, in
// the order their seed bits are read. Empty has no template cells.
func TemplateCells(c CellType) []Coord {
	switch c {
	case Solid:
		return append([]Coord(nil), solidCells[:]...)
	case Body:
		return append([]Coord(nil), bodyCells[:]...)
	case Cockpit:
		return append([]Coord(nil), cockpitCells[:]...)
	case Jets:
		return append([]Coord(nil), jetsCells[:]...)
	}
	return nil
}
