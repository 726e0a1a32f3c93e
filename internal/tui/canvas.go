package tui

import "strings"

// Braille cells pack 2x4 dots per character, unicode offset 0x2800.
var dotMask = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

type canvas struct {
	cols, rows int
	cells      [][]rune
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{
		cols:  cols,
		rows:  rows,
		cells: make([][]rune, rows),
	}
	for i := range c.cells {
		c.cells[i] = make([]rune, cols)
	}
	c.clear()
	return c
}

// set marks a dot at sub-pixel coordinates; the drawable area spans
// (cols*2) x (rows*4) dots.
func (c *canvas) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row][col] |= dotMask[y%4][x%2]
}

func (c *canvas) unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row][col] &^= dotMask[y%4][x%2]
	if c.cells[row][col] < 0x2800 {
		c.cells[row][col] = 0x2800
	}
}

func (c *canvas) clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = 0x2800
		}
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}
