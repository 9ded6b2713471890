package canvas

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Style is the colour and attributes of one cell. Colours are "#rrggbb" strings; empty
// means the terminal default.
type Style struct {
	Fg      string
	Bg      string
	Bold    bool
	Reverse bool
	Dim     bool
}

// Cell is one character cell of a Grid.
type Cell struct {
	Rune  rune
	Style Style
}

// continuation marks the second cell of a wide character.
const continuation = '\x00'

// BoxStyle is the set of runes used to draw a rectangle.
type BoxStyle struct {
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Horizontal, Vertical                       rune
}

var (
	// RoundedBox draws note and node outlines.
	RoundedBox = BoxStyle{'╭', '╮', '╰', '╯', '─', '│'}
	// DashedBox draws frames.
	DashedBox = BoxStyle{'┌', '┐', '└', '┘', '╌', '╎'}
)

// Grid is a rune matrix with per-cell styles. Origin (0,0) is top-left, all coordinates
// are in character cells. Drawing outside the grid is clipped silently.
//
// Grid is not safe for concurrent writes.
type Grid struct {
	cells  [][]Cell
	width  int
	height int
}

// NewGrid creates a blank grid. Non-positive sizes produce an empty grid.
func NewGrid(width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}
	g := &Grid{cells: cells, width: width, height: height}
	g.Clear()
	return g
}

// Size returns the width and height of the grid.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the cell at (x, y), or a blank cell when out of bounds.
func (g *Grid) Get(x, y int) Cell {
	if !g.inBounds(x, y) {
		return Cell{Rune: ' '}
	}
	return g.cells[y][x]
}

// Set places r at (x, y) and reports whether it was inside the grid.
func (g *Grid) Set(x, y int, r rune, style Style) bool {
	if !g.inBounds(x, y) {
		return false
	}
	g.cells[y][x] = Cell{Rune: r, Style: style}
	return true
}

// Clear resets every cell to an unstyled space.
func (g *Grid) Clear() {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// String returns the grid as text, one line per row, with trailing spaces trimmed.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.height * (g.width + 1))
	for y := 0; y < g.height; y++ {
		var line strings.Builder
		for x := 0; x < g.width; x++ {
			if r := g.cells[y][x].Rune; r != continuation {
				line.WriteRune(r)
			}
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		if y < g.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Walk calls fn for every cell that starts a character, skipping wide-character
// continuations.
func (g *Grid) Walk(fn func(x, y int, c Cell)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if c := g.cells[y][x]; c.Rune != continuation {
				fn(x, y, c)
			}
		}
	}
}

// FillRect sets the background colour of a rectangle, keeping its runes.
func (g *Grid) FillRect(x, y, width, height int, bg string) {
	for yy := max(y, 0); yy < min(y+height, g.height); yy++ {
		for xx := max(x, 0); xx < min(x+width, g.width); xx++ {
			g.cells[yy][xx].Style.Bg = bg
		}
	}
}

// DrawBox draws a rectangle outline. Boxes smaller than 2x2 are not drawn.
func (g *Grid) DrawBox(x, y, width, height int, box BoxStyle, style Style) {
	if width < 2 || height < 2 {
		return
	}
	right, bottom := x+width-1, y+height-1

	for i := x + 1; i < right; i++ {
		g.Set(i, y, box.Horizontal, style)
		g.Set(i, bottom, box.Horizontal, style)
	}
	for i := y + 1; i < bottom; i++ {
		g.Set(x, i, box.Vertical, style)
		g.Set(right, i, box.Vertical, style)
	}
	g.Set(x, y, box.TopLeft, style)
	g.Set(right, y, box.TopRight, style)
	g.Set(x, bottom, box.BottomLeft, style)
	g.Set(right, bottom, box.BottomRight, style)
}

// DrawLine draws a line between two cells using Bresenham's algorithm. Only blank cells
// are overwritten so lines pass behind text.
func (g *Grid) DrawLine(x1, y1, x2, y2 int, r rune, style Style) {
	if (x1 < 0 && x2 < 0) || (y1 < 0 && y2 < 0) ||
		(x1 >= g.width && x2 >= g.width) || (y1 >= g.height && y2 >= g.height) {
		return
	}
	dx, dy := abs(x2-x1), -abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx + dy
	for {
		if g.Get(x1, y1).Rune == ' ' {
			g.Set(x1, y1, r, style)
		}
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawText writes text starting at (x, y). Wide characters take two cells; a wide
// character that would be cut by the right edge is dropped.
func (g *Grid) DrawText(x, y int, text string, style Style) {
	if y < 0 || y >= g.height {
		return
	}
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= g.width {
			return
		}
		if w == 2 && x+1 >= g.width {
			return
		}
		g.Set(x, y, r, style)
		if w == 2 {
			g.Set(x+1, y, continuation, style)
		}
		x += w
	}
}

// DrawTextCentered writes text centred on column cx.
func (g *Grid) DrawTextCentered(cx, y int, text string, style Style) {
	g.DrawText(cx-runewidth.StringWidth(text)/2, y, text, style)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
