package gallery

import (
	"testing"

	"infiniship/internal/ship"
)

// counter hands out 1, 2, 3, ... so every pair is distinct and predictable.
type counter struct{ n uint64 }

func (c *counter) NextSeed() uint64 {
	c.n++
	return c.n
}

func newGallery(tilesX, tilesY int, first ...ship.SeedPair) *Gallery {
	g := New(&counter{}, first...)
	g.Fit(tilesX*ship.TileSize, tilesY*ship.TileSize)
	return g
}

func TestFit(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantX, wantY int
	}{
		{"exact", 64, 32, 4, 2},
		{"remainder", 70, 47, 4, 2},
		{"too small", 10, 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(&counter{})
			g.Fit(tt.w, tt.h)
			x, y := g.Tiles()
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("tiles = %dx%d, want %dx%d", x, y, tt.wantX, tt.wantY)
			}
			if len(g.PageSeeds()) != tt.wantX*tt.wantY {
				t.Errorf("%d seeds on page", len(g.PageSeeds()))
			}
		})
	}
}

func TestFirstSeedsLeadPage(t *testing.T) {
	named := ship.SeedsForName("ann")
	g := newGallery(2, 2, named)

	seeds := g.PageSeeds()
	if seeds[0] != named {
		t.Errorf("first ship = %v, want %v", seeds[0], named)
	}
	if seeds[1] != (ship.SeedPair{Color: 1, Shape: 2}) {
		t.Errorf("second ship = %v", seeds[1])
	}
	if g.Selected() != named {
		t.Errorf("selected = %v", g.Selected())
	}
}

func TestSelectionMoves(t *testing.T) {
	g := newGallery(3, 2)

	steps := []struct {
		action  Action
		changed bool
		sel     int
	}{
		{ActionUp, false, 0},
		{ActionLeft, false, 0},
		{ActionRight, true, 1},
		{ActionRight, true, 2},
		{ActionRight, false, 2},
		{ActionDown, true, 5},
		{ActionDown, false, 5},
		{ActionLeft, true, 4},
		{ActionUp, true, 1},
		{ActionNone, false, 1},
		{ActionQuit, false, 1},
	}
	for i, s := range steps {
		if got := g.Apply(s.action); got != s.changed {
			t.Errorf("step %d (%v): changed = %v, want %v", i, s.action, got, s.changed)
		}
		if g.sel != s.sel {
			t.Errorf("step %d (%v): sel = %d, want %d", i, s.action, g.sel, s.sel)
		}
		if g.Selected() != g.PageSeeds()[s.sel] {
			t.Errorf("step %d: Selected disagrees with page", i)
		}
	}
}

func TestPagingKeepsHistory(t *testing.T) {
	g := newGallery(2, 2)
	first := append([]ship.SeedPair(nil), g.PageSeeds()...)

	if g.Apply(ActionPrevPage) {
		t.Error("prev on first page reported a change")
	}
	g.Apply(ActionNextPage)
	if g.Page() != 2 {
		t.Errorf("page = %d", g.Page())
	}
	second := append([]ship.SeedPair(nil), g.PageSeeds()...)
	if second[0] == first[0] {
		t.Error("next page repeated the first ship")
	}

	g.Apply(ActionPrevPage)
	for i, sp := range g.PageSeeds() {
		if sp != first[i] {
			t.Errorf("ship %d = %v after returning, want %v", i, sp, first[i])
		}
	}
	g.Apply(ActionNextPage)
	for i, sp := range g.PageSeeds() {
		if sp != second[i] {
			t.Errorf("ship %d = %v on revisit, want %v", i, sp, second[i])
		}
	}
}

func TestRefitClampsSelection(t *testing.T) {
	g := newGallery(4, 4)
	for i := 0; i < 3; i++ {
		g.Apply(ActionDown)
		g.Apply(ActionRight)
	}
	if g.sel != 15 {
		t.Fatalf("sel = %d", g.sel)
	}

	g.Fit(2*ship.TileSize, 2*ship.TileSize)
	if g.sel != 3 {
		t.Errorf("sel after shrink = %d, want 3", g.sel)
	}
	g.Fit(5*ship.TileSize, 5*ship.TileSize)
	if len(g.PageSeeds()) != 25 {
		t.Errorf("%d seeds after grow", len(g.PageSeeds()))
	}
}

func TestFrame(t *testing.T) {
	g := newGallery(2, 1)
	g.Apply(ActionRight)

	img := g.Frame()
	if img.Bounds().Dx() != 2*ship.TileSize || img.Bounds().Dy() != ship.TileSize {
		t.Fatalf("bounds = %v", img.Bounds())
	}

	o := ship.TileOrigin(1, 2)
	corners := [][2]int{
		{o.X - 1, o.Y - 1},
		{o.X + ship.Width, o.Y - 1},
		{o.X - 1, o.Y + ship.Height},
		{o.X + ship.Width, o.Y + ship.Height},
	}
	for _, c := range corners {
		if got := img.NRGBAAt(c[0], c[1]); got != Highlight {
			t.Errorf("outline pixel %v = %v", c, got)
		}
	}
	// The unselected tile carries no outline.
	if got := img.NRGBAAt(ship.TileMargin-1, ship.TileMargin-1); got.A != 0 {
		t.Errorf("unselected tile outlined: %v", got)
	}

	want := ship.Generate(g.Selected(), false)
	for y := 0; y < ship.Height; y++ {
		for x := 0; x < ship.Width; x++ {
			if img.NRGBAAt(o.X+x, o.Y+y) != want.NRGBAAt(x, y) {
				t.Fatalf("selected ship pixel (%d,%d) differs", x, y)
			}
		}
	}
}

func TestMonoToggle(t *testing.T) {
	g := newGallery(1, 1, ship.SeedPair{Color: 0x12345678, Shape: 0x3ffffff})
	g.Apply(ActionMono)
	if !g.Monochrome() {
		t.Fatal("mono not toggled")
	}

	img := g.Frame()
	o := ship.TileOrigin(0, 1)
	// (4,1) is a body cell for this shape.
	if got := img.NRGBAAt(o.X+4, o.Y+1); got != ship.White {
		t.Errorf("mono body pixel = %v, want white", got)
	}
}
