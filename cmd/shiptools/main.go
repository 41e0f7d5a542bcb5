package main

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"infiniship/internal/render"
	"infiniship/internal/ship"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "grid":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: shiptools grid <shape-seed>")
			os.Exit(1)
		}
		os.Exit(runGrid(os.Stdout, args[0]))
	case "stats":
		if len(args) < 1 || len(args) > 2 {
			fmt.Fprintln(os.Stderr, "Usage: shiptools stats <count> [rng-seed]")
			os.Exit(1)
		}
		os.Exit(runStats(os.Stdout, args))
	case "palette":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: shiptools palette <color-seed>")
			os.Exit(1)
		}
		os.Exit(runPalette(os.Stdout, args[0]))
	case "verify":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "Usage: shiptools verify <image-file> <color-shape>")
			os.Exit(1)
		}
		os.Exit(runVerify(os.Stdout, args[0], args[1]))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: shiptools <command> <args>

Commands:
  grid    <shape-seed>              Show the cell map before and after outlining
  stats   <count> [rng-seed]        Cell type distribution over random shapes
  palette <color-seed>              Colors of every template cell
  verify  <image-file> <color-shape> Check an exported PNG/BMP ship or tile against its seeds`)
}

func parseHex(s string) (uint64, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hex seed %q", s)
	}
	return v, nil
}

// --- grid ---

func runGrid(w io.Writer, arg string) int {
	seed, err := parseHex(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	g := ship.Classify(seed)
	fmt.Fprintf(w, "shape %08x\n\nclassified:\n%s", seed, g)
	g.ExtendBorder()
	fmt.Fprintf(w, "\noutlined:\n%s", g)
	fmt.Fprintln(w, "\nlegend: . empty  # solid  o body  C cockpit  J jets")
	return 0
}

// --- stats ---

var statTypes = []ship.CellType{ship.Empty, ship.Solid, ship.Body, ship.Cockpit, ship.Jets}

func runStats(w io.Writer, args []string) int {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		fmt.Fprintf(os.Stderr, "Error: invalid count %q\n", args[0])
		return 1
	}
	var src ship.SeedSource = ship.DefaultSource
	if len(args) == 2 {
		rs, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid rng seed %q\n", args[1])
			return 1
		}
		src = ship.NewRandSource(rs)
	}

	totals := make(map[ship.CellType]int)
	for i := 0; i < n; i++ {
		g := ship.Classify(src.NextSeed())
		g.ExtendBorder()
		for c, k := range g.Count() {
			totals[c] += k
		}
	}

	cells := n * ship.HalfWidth * ship.Height
	fmt.Fprintf(w, "%d shapes (%d half-grid cells)\n\n", n, cells)
	for _, c := range statTypes {
		pct := float64(totals[c]) / float64(cells) * 100
		bar := strings.Repeat("█", int(pct/2))
		fmt.Fprintf(w, "  %-8s %6.2f/ship (%5.1f%%) %s\n", c, float64(totals[c])/float64(n), pct, bar)
	}
	return 0
}

// --- palette ---

func runPalette(w io.Writer, arg string) int {
	seed, err := parseHex(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	p := ship.Palette{Seed: seed}
	fmt.Fprintf(w, "color %08x\n", seed)
	for _, c := range []ship.CellType{ship.Body, ship.Cockpit, ship.Jets} {
		fmt.Fprintf(w, "\n%s:\n", c)
		for _, at := range ship.TemplateCells(c) {
			col, ok := colorful.MakeColor(p.CellColor(c, at.X, at.Y))
			if !ok {
				continue
			}
			h, s, v := col.Hsv()
			r, g, b := col.RGB255()
			var sb strings.Builder
			render.WriteCellSGR(&sb, render.Cell{Ch: ' ', BgR: r, BgG: g, BgB: b})
			render.WriteCellSGR(&sb, render.Cell{Ch: ' ', BgR: r, BgG: g, BgB: b})
			sb.WriteString(render.Reset)
			fmt.Fprintf(w, "  (%2d,%2d) %s %s  h=%5.1f s=%.3f v=%.3f\n", at.X, at.Y, sb.String(), col.Hex(), h, s, v)
		}
	}
	return 0
}

// --- verify ---

func runVerify(w io.Writer, path, seeds string) int {
	sp, err := ship.ParseSeedPair(seeds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	img, err := render.LoadImage(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	b := img.Bounds()
	refs := references(sp, b.Dx(), b.Dy())
	if len(refs) == 0 {
		fmt.Fprintf(w, "FAIL: %s is %dx%d, not a scaled %dx%d ship or %dx%d tile\n",
			path, b.Dx(), b.Dy(), ship.Width, ship.Height, ship.TileSize, ship.TileSize)
		return 1
	}

	// Formats without alpha come back fully opaque; transparency is not
	// checked for them.
	noAlpha := img.Opaque()

	best := -1
	for _, ref := range refs {
		bad := 0
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				if !pixelMatches(img.NRGBAAt(x, y), ref.img.NRGBAAt(x/ref.scale, y/ref.scale), noAlpha) {
					bad++
				}
			}
		}
		if bad == 0 {
			fmt.Fprintf(w, "OK: %s matches %v %s(scale %d)\n", path, sp, ref.kind, ref.scale)
			return 0
		}
		if best < 0 || bad < best {
			best = bad
		}
	}
	fmt.Fprintf(w, "FAIL: %s differs from %v in %d pixels\n", path, sp, best)
	return 1
}

type reference struct {
	kind  string
	img   *image.NRGBA
	scale int
}

// references lists the renderings of sp a w x h image may be: a bare ship
// or a padded tile, in colour or monochrome, at an integer scale.
func references(sp ship.SeedPair, w, h int) []reference {
	if w != h || w == 0 {
		return nil
	}
	var refs []reference
	if w%ship.Width == 0 {
		refs = append(refs,
			reference{"", ship.Generate(sp, false), w / ship.Width},
			reference{"monochrome ", ship.Generate(sp, true), w / ship.Width})
	}
	if w%ship.TileSize == 0 {
		refs = append(refs,
			reference{"tile ", ship.GenerateTile(sp, false), w / ship.TileSize},
			reference{"monochrome tile ", ship.GenerateTile(sp, true), w / ship.TileSize})
	}
	return refs
}

func pixelMatches(got, want color.NRGBA, noAlpha bool) bool {
	if want.A == 0 {
		return noAlpha || got.A == 0
	}
	return got == want
}
