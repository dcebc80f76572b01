// Package canvas provides the character grid that diagrams are painted on
// and its serialization to text lines.
//
// A Canvas is filled with blanks on creation. Writes outside the grid are
// not applied; the first one is remembered and reported by [Canvas.Err] so
// that a renderer can paint freely and check once at the end.
//
// Double-width runes (for example CJK characters) occupy two cells. The
// second cell holds a continuation marker that [Canvas.Lines] skips, so
// every serialized row has the same display width.
package canvas

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Blank is the default cell content.
const Blank = ' '

// continuation marks the right half of a double-width rune.
const continuation = rune(0)

// cells measures display width independently of the user's locale, so that
// ambiguous-width runes always count as one cell.
var cells = &runewidth.Condition{EastAsianWidth: false}

// StringWidth returns the number of cells s occupies on a canvas.
func StringWidth(s string) int { return cells.StringWidth(s) }

// Canvas is a fixed-size grid of runes.
type Canvas struct {
	width  int
	height int
	cells  [][]rune
	err    error
}

// New creates a blank canvas.
func New(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	cells := make([][]rune, height)
	for y := range cells {
		row := make([]rune, width)
		for x := range row {
			row[x] = Blank
		}
		cells[y] = row
	}
	return &Canvas{width: width, height: height, cells: cells}
}

// Width returns the number of columns.
func (c *Canvas) Width() int { return c.width }

// Height returns the number of rows.
func (c *Canvas) Height() int { return c.height }

// Set writes r at (x, y).
func (c *Canvas) Set(x, y int, r rune) {
	if !c.inBounds(x, y) {
		c.fail(x, y)
		return
	}
	c.cells[y][x] = r
}

// Get returns the rune at (x, y), or Blank outside the grid.
func (c *Canvas) Get(x, y int) rune {
	if !c.inBounds(x, y) {
		return Blank
	}
	return c.cells[y][x]
}

// HLine writes r on every cell of row y from x0 to x1 inclusive.
func (c *Canvas) HLine(x0, x1, y int, r rune) {
	for x := x0; x <= x1; x++ {
		c.Set(x, y, r)
	}
}

// VLine writes r on every cell of column x from y0 to y1 inclusive.
func (c *Canvas) VLine(x, y0, y1 int, r rune) {
	for y := y0; y <= y1; y++ {
		c.Set(x, y, r)
	}
}

// Text writes s starting at (x, y), advancing by each rune's display width.
// It returns the column after the last written cell.
func (c *Canvas) Text(x, y int, s string) int {
	for _, r := range s {
		w := cells.RuneWidth(r)
		if w == 0 {
			continue
		}
		c.Set(x, y, r)
		for i := 1; i < w; i++ {
			c.Set(x+i, y, continuation)
		}
		x += w
	}
	return x
}

// Err returns the first out-of-bounds write, if any.
func (c *Canvas) Err() error { return c.err }

// Lines serializes the canvas row by row. Trailing blanks are kept so that
// every line has the same display width as the canvas.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.height)
	var b strings.Builder
	for y, row := range c.cells {
		b.Reset()
		b.Grow(len(row))
		for _, r := range row {
			if r == continuation {
				continue
			}
			b.WriteRune(r)
		}
		lines[y] = b.String()
	}
	return lines
}

// String joins Lines with newlines.
func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

func (c *Canvas) fail(x, y int) {
	if c.err == nil {
		c.err = fmt.Errorf("write at (%d,%d) outside %dx%d canvas", x, y, c.width, c.height)
	}
}
