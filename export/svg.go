package export

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"wordweb/diagram"
	"wordweb/geometry"
)

// SVGExporter draws the graph at world scale
type SVGExporter struct{}

// NewSVGExporter creates a new SVG exporter
func NewSVGExporter() *SVGExporter {
	return &SVGExporter{}
}

// Export renders the graph as an SVG document
func (e *SVGExporter) Export(g *diagram.Graph) ([]byte, error) {
	box, err := bounds(g)
	if err != nil {
		return nil, err
	}
	width, height := int(math.Ceil(box.Width)), int(math.Ceil(box.Height))
	at := func(p geometry.Point) (int, int) {
		return int(math.Round(p.X - box.X)), int(math.Round(p.Y - box.Y))
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:%s", css(colorBackdrop)))

	for _, f := range g.Frames {
		x, y := at(f.Rect().Min())
		canvas.Roundrect(x, y, int(f.Width), int(f.Height), 12, 12,
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5;stroke-dasharray:8,6", css(colorFrame)))
		canvas.Text(x+12, y+20, f.Title,
			fmt.Sprintf("fill:%s;font-size:14px;font-family:sans-serif;font-weight:bold", css(colorSubtle)))
	}

	for _, s := range segments(g) {
		x1, y1 := at(s.from)
		x2, y2 := at(s.to)
		style := fmt.Sprintf("stroke:%s;stroke-width:2", css(colorEdge))
		if s.conn.Manual {
			style = fmt.Sprintf("stroke:%s;stroke-width:2;stroke-dasharray:6,4", css(colorManual))
		}
		canvas.Line(x1, y1, x2, y2, style)
		if s.conn.Label != "" {
			mx, my := at(s.from.Add(s.to).Scale(0.5))
			canvas.Text(mx, my-6, s.conn.Label,
				fmt.Sprintf("fill:%s;font-size:12px;font-family:sans-serif;text-anchor:middle", css(colorSubtle)))
		}
	}

	for _, n := range g.Nodes {
		w, h := n.Size()
		cx, cy := at(n.Position())
		shape := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", css(nodeFill(n)), css(nodeStroke(n)))
		text := fmt.Sprintf("fill:%s;font-size:14px;font-family:sans-serif;text-anchor:middle", css(colorText))

		if !n.IsNote() {
			canvas.Circle(cx, cy, int(w/2), shape)
			canvas.Text(cx, cy+5, truncate(n.Text, 18), text)
			continue
		}

		x, y := at(n.Bounds().Min())
		canvas.Roundrect(x, y, int(w), int(h), 6, 6, shape)
		row := y + 22
		if n.Text != "" {
			canvas.Text(x+int(w)/2, row, truncate(n.Text, 24), text+";font-weight:bold")
			row += 18
		}
		for _, line := range strings.Split(n.Content, "\n") {
			if row > y+int(h)-8 {
				break
			}
			canvas.Text(x+10, row, truncate(line, 28),
				fmt.Sprintf("fill:%s;font-size:12px;font-family:sans-serif", css(colorText)))
			row += 16
		}
	}

	canvas.End()
	return buf.Bytes(), nil
}

// GetFileExtension returns the recommended file extension
func (e *SVGExporter) GetFileExtension() string {
	return ".svg"
}

// GetFormatName returns the format name
func (e *SVGExporter) GetFormatName() string {
	return "SVG"
}
