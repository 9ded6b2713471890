package export

import (
	"fmt"
	"image/color"

	"wordweb/diagram"
)

var (
	colorBackdrop = color.RGBA{R: 0xfa, G: 0xfa, B: 0xf7, A: 0xff}
	colorFrame    = color.RGBA{R: 0x95, G: 0xa5, B: 0xa6, A: 0xff}
	colorEdge     = color.RGBA{R: 0xb0, G: 0xb8, B: 0xbf, A: 0xff}
	colorManual   = color.RGBA{R: 0xe6, G: 0x7e, B: 0x22, A: 0xff}
	colorWord     = color.RGBA{R: 0xec, G: 0xf0, B: 0xf1, A: 0xff}
	colorNote     = color.RGBA{R: 0xfd, G: 0xf6, B: 0xe3, A: 0xff}
	colorStroke   = color.RGBA{R: 0x34, G: 0x49, B: 0x5e, A: 0xff}
	colorSelected = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}
	colorText     = color.RGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff}
	colorSubtle   = color.RGBA{R: 0x7f, G: 0x8c, B: 0x8d, A: 0xff}
)

// nodeFill returns the node's own fill, or the default for its type.
func nodeFill(n diagram.Node) color.RGBA {
	if r, g, b, ok := diagram.FillRGB(n.Fill); ok {
		return color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	if n.IsNote() {
		return colorNote
	}
	return colorWord
}

func nodeStroke(n diagram.Node) color.RGBA {
	if n.Selected {
		return colorSelected
	}
	return colorStroke
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// truncate shortens s to max runes, marking the cut with an ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
