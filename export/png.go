package export

import (
	"bytes"
	"fmt"
	"image/png"
	"math"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"wordweb/diagram"
	"wordweb/geometry"
)

// MaxImageSide caps the longest side of a PNG export in pixels. Larger graphs are
// scaled down to fit.
const MaxImageSide = 8192

// PNGExporter rasterises the graph
type PNGExporter struct {
	// Scale is pixels per world unit before the MaxImageSide cap.
	Scale float64
}

// NewPNGExporter creates a new PNG exporter at scale 1
func NewPNGExporter() *PNGExporter {
	return &PNGExporter{Scale: 1}
}

// Export renders the graph as a PNG image
func (e *PNGExporter) Export(g *diagram.Graph) ([]byte, error) {
	box, err := bounds(g)
	if err != nil {
		return nil, err
	}
	scale := e.Scale
	if scale <= 0 {
		scale = 1
	}
	if longest := math.Max(box.Width, box.Height) * scale; longest > MaxImageSide {
		scale *= MaxImageSide / longest
	}
	width := min(int(math.Ceil(box.Width*scale)), MaxImageSide)
	height := min(int(math.Ceil(box.Height*scale)), MaxImageSide)

	dc := gg.NewContext(width, height)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.Scale(scale, scale)
	dc.Translate(-box.X, -box.Y)
	dc.SetFontFace(basicfont.Face7x13)

	for _, f := range g.Frames {
		dc.SetColor(colorFrame)
		dc.SetLineWidth(1.5)
		dc.DrawRoundedRectangle(f.X, f.Y, f.Width, f.Height, 12)
		dc.Stroke()
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(f.Title, f.X+12, f.Y+16, 0, 0.5)
	}

	for _, s := range segments(g) {
		drawSegment(dc, s)
	}

	for _, n := range g.Nodes {
		drawNode(dc, n)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawSegment(dc *gg.Context, s segment) {
	dc.SetColor(colorEdge)
	if s.conn.Manual {
		dc.SetColor(colorManual)
	}
	dc.SetLineWidth(2)
	dc.DrawLine(s.from.X, s.from.Y, s.to.X, s.to.Y)
	dc.Stroke()

	if s.conn.Label != "" {
		mid := s.from.Add(s.to).Scale(0.5)
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(s.conn.Label, mid.X, mid.Y-8, 0.5, 0.5)
	}
}

func drawNode(dc *gg.Context, n diagram.Node) {
	w, h := n.Size()
	outline := func() {
		if n.IsNote() {
			corner := n.Bounds().Min()
			dc.DrawRoundedRectangle(corner.X, corner.Y, w, h, 6)
		} else {
			dc.DrawCircle(n.X, n.Y, w/2)
		}
	}

	dc.SetColor(nodeFill(n))
	outline()
	dc.Fill()
	dc.SetColor(nodeStroke(n))
	dc.SetLineWidth(2)
	outline()
	dc.Stroke()

	dc.SetColor(colorText)
	if !n.IsNote() {
		dc.DrawStringAnchored(truncate(n.Text, 14), n.X, n.Y, 0.5, 0.5)
		return
	}

	top := n.Bounds().Min()
	row := geometry.Pt(top.X+10, top.Y+18)
	if n.Text != "" {
		dc.DrawStringAnchored(truncate(n.Text, 26), n.X, row.Y, 0.5, 0.5)
		row.Y += 16
	}
	for _, line := range strings.Split(n.Content, "\n") {
		if row.Y > top.Y+h-8 {
			break
		}
		dc.DrawStringAnchored(truncate(line, 26), row.X, row.Y, 0, 0.5)
		row.Y += 15
	}
}

// GetFileExtension returns the recommended file extension
func (e *PNGExporter) GetFileExtension() string {
	return ".png"
}

// GetFormatName returns the format name
func (e *PNGExporter) GetFormatName() string {
	return "PNG"
}
