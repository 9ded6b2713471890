package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"wordweb/canvas"
)

// color converts a "#rrggbb" style colour. Empty or malformed values fall back to the
// terminal default.
func color(hex string) tcell.Color {
	if hex == "" {
		return tcell.ColorDefault
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorDefault
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// cellStyle converts a grid style to a tcell style.
func cellStyle(s canvas.Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(color(s.Fg)).
		Background(color(s.Bg)).
		Bold(s.Bold).
		Reverse(s.Reverse).
		Dim(s.Dim)
}

// drawGrid copies grid to the screen with its top-left cell at row top.
func drawGrid(screen tcell.Screen, grid *canvas.Grid, top int) {
	grid.Walk(func(x, y int, c canvas.Cell) {
		screen.SetContent(x, top+y, c.Rune, nil, cellStyle(c.Style))
	})
}

// drawLine writes text at row y starting at column x, clipped to width columns, and
// pads the rest of the row with style.
func drawLine(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if col+w > x+width {
			break
		}
		screen.SetContent(col, y, r, nil, style)
		col += max(w, 1)
	}
	for ; col < x+width; col++ {
		screen.SetContent(col, y, ' ', nil, style)
	}
}
