package render

import (
	"image"
	"strings"
)

// HUDRows is the number of terminal rows reserved at the bottom of the
// screen: a separator and up to two lines of text.
const HUDRows = 3

var sentinel = Cell{Ch: '\x00', FgR: 255, BgB: 255, Bold: true}

var (
	bgCell  = Cell{Ch: ' ', BgR: Background.R, BgG: Background.G, BgB: Background.B}
	hudBg   = [3]uint8{15, 18, 30}
	hudText = [3]uint8{180, 180, 195}
)

// Engine is a per-session double-buffer diff renderer.
type Engine struct {
	width, height int
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
}

// NewEngine creates a renderer for the given terminal dimensions.
func NewEngine(width, height int) *Engine {
	e := &Engine{}
	e.Resize(width, height)
	return e
}

// Resize adjusts the renderer for a new terminal size. The next frame is
// emitted in full.
func (e *Engine) Resize(width, height int) {
	e.width = max(width, 0)
	e.height = max(height, 0)
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	e.firstFrame = true
}

// Size returns the terminal size in cells.
func (e *Engine) Size() (int, int) {
	return e.width, e.height
}

// ImageArea returns the pixel size available above the HUD.
func (e *Engine) ImageArea() (w, h int) {
	return e.width, max(e.height-HUDRows, 0) * 2
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := 0; y < e.height; y++ {
		buf[y] = make([]Cell, e.width)
		for x := 0; x < e.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

// Frame draws img from the top-left corner using half blocks, followed by
// the HUD lines, and returns the ANSI output for cells that changed since
// the previous frame.
func (e *Engine) Frame(img image.Image, hud []string) string {
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			e.next[y][x] = bgCell
		}
	}

	if img != nil {
		e.stampImage(img)
	}
	e.drawHUD(hud)

	return e.flush()
}

func (e *Engine) stampImage(img image.Image) {
	b := img.Bounds()
	rows := min(Rows(b.Dy()), e.height-HUDRows)
	cols := min(b.Dx(), e.width)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			e.next[row][col] = PixelCell(img, b.Min.X+col, b.Min.Y+row*2, Background)
		}
	}
}

func (e *Engine) drawHUD(lines []string) {
	hudY := e.height - HUDRows
	if hudY < 0 {
		return
	}

	// Separator, fading left to right
	for x := 0; x < e.width; x++ {
		t := uint8(60 - x*40/max(e.width, 1))
		e.next[hudY][x] = Cell{
			Ch: '━', FgR: 40 + t, FgG: 70 + t, FgB: 90 + t,
			BgR: hudBg[0], BgG: hudBg[1], BgB: hudBg[2],
		}
	}

	for i := 0; i < HUDRows-1; i++ {
		text := ""
		if i < len(lines) {
			text = lines[i]
		}
		e.writeLine(hudY+1+i, text)
	}
}

func (e *Engine) writeLine(row int, text string) {
	runes := []rune(text)
	for x := 0; x < e.width; x++ {
		c := Cell{Ch: ' ', BgR: hudBg[0], BgG: hudBg[1], BgB: hudBg[2]}
		if x > 0 && x-1 < len(runes) {
			c.Ch = runes[x-1]
			c.FgR, c.FgG, c.FgB = hudText[0], hudText[1], hudText[2]
		}
		e.next[row][x] = c
	}
}

// flush diffs next against current, emits only changed cells and swaps.
func (e *Engine) flush() string {
	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			nc := e.next[y][x]
			if e.firstFrame || nc != e.current[y][x] {
				// Only emit cursor position if not consecutive
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(y+1, x+1))
				}
				WriteCellSGR(&sb, nc)
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	e.current, e.next = e.next, e.current
	e.firstFrame = false

	return sb.String()
}
