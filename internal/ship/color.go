package ship

import (
	"image/color"
	"math"
)

// Shading curves. brightness is indexed by column, saturation by row.
// Only the first HalfWidth brightness entries are reached by the rasterizer.
var (
	brightness = [14]float64{40, 70, 100, 130, 160, 190, 220, 220, 190, 160, 130, 100, 70, 40}
	saturation = [Height]float64{40, 60, 80, 100, 80, 60, 80, 100, 120, 100, 80, 60}
)

// Fixed palette colors, independent of the color seed.
var (
	Black       = color.NRGBA{A: 255}
	White       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Transparent = color.NRGBA{}
)

// Palette maps cell types to colors for one color seed.
type Palette struct {
	Seed       uint64
	Monochrome bool
}

// CellColor returns the color of a cell of type c at grid position (x, y).
func (p Palette) CellColor(c CellType, x, y int) color.NRGBA {
	switch c {
	case Solid:
		return Black
	case Body:
		if p.Monochrome {
			return White
		}
		return bodyColor(p.Seed, x, y)
	case Cockpit:
		if p.Monochrome {
			return White
		}
		return cockpitColor(p.Seed, x, y)
	case Jets:
		if p.Monochrome {
			return Black
		}
		return jetsColor(p.Seed, x)
	default:
		return Transparent
	}
}

// bodyColor picks the hull hue by row band: top, middle and tail each read
// their own byte of the seed.
func bodyColor(seed uint64, x, y int) color.NRGBA {
	var hue uint64
	switch {
	case y < 6:
		hue = (seed >> 8) & 0xff
	case y < 9:
		hue = (seed >> 16) & 0xff
	default:
		hue = (seed >> 24) & 0xff
	}
	return HSVToRGB(hueArg(hue), saturation[y]/255, brightness[x]/255)
}

func cockpitColor(seed uint64, x, y int) color.NRGBA {
	return HSVToRGB(hueArg(seed&0xff), saturation[y]/255, (brightness[x]+40)/255)
}

func jetsColor(seed uint64, x int) color.NRGBA {
	return HSVToRGB(hueArg(seed&0xff), 10.0/255, (brightness[x]-40)/255)
}

// hueArg scales a hue byte to degrees. HSVToRGB reduces it through floor
// and mod 6, so values beyond 1 are fine.
func hueArg(b uint64) float64 {
	return 360 * float64(b) / 256
}

// HSVToRGB converts an HSV triple to an opaque color. Inputs are not clamped
// and each channel is floor(c*255) truncated to a byte.
//
// Products are wrapped in float64() so no multiply-add gets fused; a fused
// result can land on the other side of a floor.
func HSVToRGB(h, s, v float64) color.NRGBA {
	if s == 0 {
		c := channel(v)
		return color.NRGBA{R: c, G: c, B: c, A: 255}
	}

	x6 := float64(h * 6)
	i := math.Floor(x6)
	f := x6 - i
	p := v * float64(1-s)
	q := v * float64(1-float64(f*s))
	t := v * float64(1-float64((1-f)*s))

	var r, g, b float64
	switch int(math.Mod(i, 6)) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}

	return color.NRGBA{R: channel(r), G: channel(g), B: channel(b), A: 255}
}

func channel(c float64) uint8 {
	return uint8(int(math.Floor(float64(c * 255))))
}
