// Package canvas rasterizes lines onto terminal cells using braille
// patterns, two dots wide and four dots tall per cell.
package canvas

import "strings"

// NoLayer marks a cell nothing has been drawn on.
const NoLayer = -1

const brailleBase = '⠀'

// dotBits[y][x] is the braille bit for the dot at (x, y) inside a cell.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells. Each cell remembers the layer that
// last drew on it so callers can colour runs of cells.
type Canvas struct {
	cols, rows int
	dots       []rune
	layers     []int
	text       []rune
}

// New returns an empty canvas of cols x rows terminal cells.
func New(cols, rows int) *Canvas {
	cols, rows = max(cols, 0), max(rows, 0)
	c := &Canvas{
		cols:   cols,
		rows:   rows,
		dots:   make([]rune, cols*rows),
		layers: make([]int, cols*rows),
		text:   make([]rune, cols*rows),
	}
	for i := range c.layers {
		c.layers[i] = NoLayer
	}
	return c
}

// Width is the horizontal resolution in dots.
func (c *Canvas) Width() int { return c.cols * 2 }

// Height is the vertical resolution in dots.
func (c *Canvas) Height() int { return c.rows * 4 }

// Set turns on the dot at (x, y). Points off the canvas are ignored.
func (c *Canvas) Set(x, y, layer int) {
	if x < 0 || y < 0 || x >= c.Width() || y >= c.Height() {
		return
	}
	i := (y/4)*c.cols + x/2
	c.dots[i] |= dotBits[y%4][x%2]
	c.layers[i] = layer
}

// Line draws a straight line between two dots, endpoints included.
func (c *Canvas) Line(x0, y0, x1, y1, layer int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		c.Set(x0, y0, layer)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Text writes s starting at the cell holding dot (x, y). Text replaces
// braille in the cells it covers and is clipped at the right edge.
func (c *Canvas) Text(x, y int, s string, layer int) {
	if y < 0 || y >= c.Height() {
		return
	}
	col, row := x/2, y/4
	if x < 0 {
		col = (x - 1) / 2
	}
	for _, r := range s {
		if col >= c.cols {
			return
		}
		if col >= 0 {
			i := row*c.cols + col
			c.text[i] = r
			c.layers[i] = layer
		}
		col++
	}
}

// Cell returns the rune and layer of the cell at (col, row).
func (c *Canvas) Cell(col, row int) (rune, int) {
	i := row*c.cols + col
	if c.text[i] != 0 {
		return c.text[i], c.layers[i]
	}
	if c.dots[i] == 0 {
		return ' ', NoLayer
	}
	return brailleBase + c.dots[i], c.layers[i]
}

// Rows renders every row, passing runs of cells that share a layer to
// paint. A nil paint returns the plain runes.
func (c *Canvas) Rows(paint func(layer int, s string) string) []string {
	out := make([]string, c.rows)
	for row := range out {
		var sb, run strings.Builder
		current := NoLayer
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if paint != nil {
				sb.WriteString(paint(current, run.String()))
			} else {
				sb.WriteString(run.String())
			}
			run.Reset()
		}
		for col := 0; col < c.cols; col++ {
			r, layer := c.Cell(col, row)
			if layer != current {
				flush()
				current = layer
			}
			run.WriteRune(r)
		}
		flush()
		out[row] = sb.String()
	}
	return out
}

// String renders the canvas without styling.
func (c *Canvas) String() string {
	return strings.Join(c.Rows(nil), "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
