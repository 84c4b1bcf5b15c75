package tui

import "strings"

// Canvas is a braille pixel buffer. Each cell packs 2x4 dots into one
// rune, so a cols x rows canvas exposes a 2*cols x 4*rows pixel grid.
type Canvas struct {
	cols, rows int
	cells      []rune
}

const brailleBase = 0x2800

// dotBits maps a sub-cell pixel (y%4, x%2) to its braille bit.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{cols: cols, rows: rows, cells: make([]rune, cols*rows)}
	c.Clear()
	return c
}

// PixelSize reports the addressable pixel grid.
func (c *Canvas) PixelSize() (w, h int) {
	return c.cols * 2, c.rows * 4
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBase
	}
}

// Set lights the pixel at (x, y). Out-of-range pixels are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.cols*2 || y >= c.rows*4 {
		return
	}
	c.cells[(y/4)*c.cols+x/2] |= dotBits[y%4][x%2]
}

// DrawLine rasterizes a segment with Bresenham stepping.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for r := 0; r < c.rows; r++ {
		b.WriteString(string(c.cells[r*c.cols : (r+1)*c.cols]))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
