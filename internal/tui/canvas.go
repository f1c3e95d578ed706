package tui

import "strings"

// Braille cells pack a 2x4 dot grid per character, offset from U+2800.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille drawing surface. Dot coordinates run over a grid of
// (Cols*2) x (Rows*4) sub-pixels.
type Canvas struct {
	Cols, Rows int
	cells      []rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{Cols: cols, Rows: rows, cells: make([]rune, cols*rows)}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = 0x2800
	}
}

func (c *Canvas) Dot(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Cols || row >= c.Rows {
		return
	}
	c.cells[row*c.Cols+col] |= dotBits[y%4][x%2]
}

// Line draws from (x0,y0) to (x1,y1) by stepping the dominant axis.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	steps := abs(dx)
	if abs(dy) > steps {
		steps = abs(dy)
	}
	if steps == 0 {
		c.Dot(x0, y0)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + dx*i/steps
		y := y0 + dy*i/steps
		c.Dot(x, y)
	}
}

func (c *Canvas) HLine(x0, x1, y int) { c.Line(x0, y, x1, y) }
func (c *Canvas) VLine(x, y0, y1 int) { c.Line(x, y0, x, y1) }

// FillRect fills the dot rectangle [x0,x1] x [y0,y1] inclusive.
func (c *Canvas) FillRect(x0, y0, x1, y1 int) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.Dot(x, y)
		}
	}
}

// Blob marks a small cluster around (x, y), used for crystals and bubbles.
func (c *Canvas) Blob(x, y, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Dot(x+dx, y+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Rows; row++ {
		b.WriteString(string(c.cells[row*c.Cols : (row+1)*c.Cols]))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
