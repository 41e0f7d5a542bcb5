package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"

	"infiniship/internal/config"
	"infiniship/internal/render"
	"infiniship/internal/ship"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("infiniship", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "config file")
	seeds := fs.String("seeds", "", "replay seed pairs as color-shape hex, comma separated")
	name := fs.String("name", "", "derive the seed pair from a name")
	rng := fs.Uint64("rng", 0, "seed for a reproducible run of fresh ships (0 = random)")
	sheet := fs.Bool("sheet", false, "render a sheet of ships instead of one")
	tile := fs.Bool("tile", false, "pad a single ship into a 16x16 tile with a 2px margin")
	tiles := fs.String("tiles", "", "sheet size as WxH (default from config, 8x8)")
	mono := fs.Bool("mono", false, "black and white ships")
	format := fs.String("format", "", "png, bmp, svg, ansi or datauri (default from -out extension or config)")
	scale := fs.Int("scale", 0, "integer upscale factor (default from config, 1)")
	out := fs.String("out", "", "output file, or directory to name the file after the seeds (default: stdout)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: infiniship [-seeds C-S[,C-S...] | -name NAME | -rng N] [-tile | -sheet [-tiles WxH]] [-mono] [-format F] [-scale N] [-out file]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if *tile && *sheet {
		return errors.New("-tile and -sheet cannot be combined")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["mono"] {
		cfg.Sheet.Monochrome = *mono
	}
	if set["scale"] {
		cfg.Export.Scale = *scale
	}
	if set["tiles"] {
		if cfg.Sheet.TilesX, cfg.Sheet.TilesY, err = parseTiles(*tiles); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	f, err := pickFormat(*format, cfg.Export.Format, *out, stdout)
	if err != nil {
		return err
	}

	src, err := seedSource(*seeds, *name, *rng)
	if err != nil {
		return err
	}

	var (
		img  image.Image
		base string
	)
	switch {
	case *sheet:
		s, used := ship.ComposeSheet(src, cfg.Sheet.TilesX, cfg.Sheet.TilesY, cfg.Sheet.Monochrome)
		for i, sp := range used {
			fmt.Fprintf(stderr, "tile %d: %v\n", i, sp)
		}
		img, base = s, "sheet-"+used[0].String()
	case *tile:
		sp := ship.NextPair(src)
		fmt.Fprintf(stderr, "seeds: %v\n", sp)
		img, base = ship.GenerateTile(sp, cfg.Sheet.Monochrome), "tile-"+sp.String()
	default:
		s, sp := ship.GenerateWithFreshSeed(src, cfg.Sheet.Monochrome)
		fmt.Fprintf(stderr, "seeds: %v\n", sp)
		img, base = s, sp.String()
	}

	return write(img, f, cfg.Export.Scale, outPath(*out, base, f), stdout, stderr)
}

// outPath names the output file after the seeds when out is a directory.
func outPath(out, base string, f render.Format) string {
	if out == "" {
		return ""
	}
	if fi, err := os.Stat(out); err == nil && fi.IsDir() {
		return filepath.Join(out, base+f.Ext())
	}
	return out
}

// seedSource picks where ship seeds come from: replayed pairs, a name,
// a seeded generator or the process-wide one.
func seedSource(seeds, name string, rng uint64) (ship.SeedSource, error) {
	switch {
	case seeds != "":
		var pairs []ship.SeedPair
		for _, s := range strings.Split(seeds, ",") {
			sp, err := ship.ParseSeedPair(strings.TrimSpace(s))
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, sp)
		}
		return ship.PairSource(pairs...), nil
	case name != "":
		return ship.NameSource(name), nil
	case rng != 0:
		return ship.NewRandSource(rng), nil
	}
	return ship.DefaultSource, nil
}

// pickFormat resolves the output format: the flag, then the output file's
// extension, then the config. Binary formats headed for a terminal become
// ANSI art.
func pickFormat(flagVal, cfgVal, out string, stdout io.Writer) (render.Format, error) {
	if flagVal != "" {
		return render.ParseFormat(flagVal)
	}
	if out != "" {
		if f, err := render.ParseFormat(filepath.Ext(out)); err == nil {
			return f, nil
		}
	}
	f, err := render.ParseFormat(cfgVal)
	if err != nil {
		return f, err
	}
	if out == "" && f.Binary() && isTerminal(stdout) {
		return render.FormatANSI, nil
	}
	return f, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func write(img image.Image, f render.Format, scale int, out string, stdout, stderr io.Writer) error {
	if out == "" {
		if f == render.FormatANSI {
			if file, ok := stdout.(*os.File); ok {
				stdout = colorable.NewColorable(file)
			}
		}
		return render.Encode(stdout, img, f, scale)
	}

	file, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := render.Encode(file, img, f, scale); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "Wrote %s (%s, scale %d)\n", out, f, scale)
	return nil
}

func parseTiles(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid tiles %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 1 {
		return 0, 0, fmt.Errorf("invalid tile width %q (minimum 1)", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h < 1 {
		return 0, 0, fmt.Errorf("invalid tile height %q (minimum 1)", parts[1])
	}
	return w, h, nil
}
