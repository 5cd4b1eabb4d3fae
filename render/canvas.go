package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// Cell is one composited terminal cell
// Rune 0 marks the right half of a wide rune and is not flushed
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs tcell.AttrMask
}

// Canvas is a cell compositor, rebuilt every frame and flushed to a tcell screen
type Canvas struct {
	cells  []Cell
	width  int
	height int
}

// NewCanvas creates a canvas with the specified dimensions
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize adjusts canvas dimensions, reallocates only if capacity insufficient
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(c.cells) < size {
		c.cells = make([]Cell, size)
	} else {
		c.cells = c.cells[:size]
	}
	c.width = width
	c.height = height
	c.Clear()
}

// Size returns the canvas dimensions in cells
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Clear resets all cells to blank using exponential copy
func (c *Canvas) Clear() {
	if len(c.cells) == 0 {
		return
	}
	c.cells[0] = Cell{Rune: ' ', Fg: RGBBlack, Bg: RGBBlack}
	for filled := 1; filled < len(c.cells); filled *= 2 {
		copy(c.cells[filled:], c.cells[:filled])
	}
}

// inBounds returns true if in canvas bounds
func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Cell returns the cell at x, y, zero value when out of bounds
func (c *Canvas) Cell(x, y int) Cell {
	if !c.inBounds(x, y) {
		return Cell{}
	}
	return c.cells[y*c.width+x]
}

// Set composites a cell with specified blend mode; a zero rune keeps the existing glyph
func (c *Canvas) Set(x, y int, r rune, fg, bg RGB, mode BlendMode, alpha float64, attrs tcell.AttrMask) {
	if !c.inBounds(x, y) {
		return
	}
	dst := &c.cells[y*c.width+x]

	op := uint8(mode) & 0x0F
	flags := uint8(mode) & 0xF0

	if r != 0 {
		dst.Rune = r
		dst.Attrs = attrs
	}
	if flags&flagBg != 0 {
		dst.Bg = apply(op, dst.Bg, bg, alpha)
	}
	if flags&flagFg != 0 {
		dst.Fg = apply(op, dst.Fg, fg, alpha)
	}
}

// SetBgOnly updates the background color while preserving existing rune/foreground
func (c *Canvas) SetBgOnly(x, y int, bg RGB) {
	if !c.inBounds(x, y) {
		return
	}
	c.cells[y*c.width+x].Bg = bg
}

// SetGlyph writes a glyph whose color is fg faded by alpha over the cell background
func (c *Canvas) SetGlyph(x, y int, r rune, fg RGB, alpha float64, attrs tcell.AttrMask) {
	if !c.inBounds(x, y) {
		return
	}
	dst := &c.cells[y*c.width+x]
	dst.Rune = r
	dst.Fg = Blend(dst.Bg, fg, alpha)
	dst.Attrs = attrs
}

// Flush writes every cell to the screen and shows it
// A canvas whose size no longer matches the screen is dropped, the next frame resizes
func (c *Canvas) Flush(screen tcell.Screen) bool {
	w, h := screen.Size()
	if w != c.width || h != c.height {
		return false
	}
	for y := 0; y < c.height; y++ {
		row := c.cells[y*c.width : (y+1)*c.width]
		for x := range row {
			cell := &row[x]
			if cell.Rune == 0 {
				continue
			}
			style := tcell.StyleDefault.
				Foreground(cell.Fg.Tcell()).
				Background(cell.Bg.Tcell()).
				Attributes(cell.Attrs)
			screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}
	screen.Show()
	return true
}

// cellOf maps a viewport coordinate to its cell index, rounding down so (-1, 0) stays off-canvas
func cellOf(v float64) int {
	return int(math.Floor(v))
}
