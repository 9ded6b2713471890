package export

import (
	"math"

	"wordweb/canvas"
	"wordweb/diagram"
)

// ASCIIExporter renders the graph the way the terminal editor draws it
type ASCIIExporter struct {
	// MaxWidth caps the output width in cells; the view is zoomed out to fit.
	MaxWidth int
	Cells    canvas.CellSize
}

// NewASCIIExporter creates a new ASCII exporter
func NewASCIIExporter() *ASCIIExporter {
	return &ASCIIExporter{MaxWidth: 160, Cells: canvas.DefaultCellSize}
}

// Export converts the graph to Unicode art
func (e *ASCIIExporter) Export(g *diagram.Graph) ([]byte, error) {
	box, err := bounds(g)
	if err != nil {
		return nil, err
	}

	vp := canvas.NewViewport()
	minScale, maxScale := vp.Limits()
	scale := 1.0
	if e.MaxWidth > 0 {
		scale = math.Min(scale, float64(e.MaxWidth)*e.Cells.W/box.Width)
	}
	vp.Scale = math.Max(minScale, math.Min(scale, maxScale))
	vp.PanX = -box.X * vp.Scale
	vp.PanY = -box.Y * vp.Scale

	cols := int(math.Ceil(box.Width*vp.Scale/e.Cells.W)) + 1
	rows := int(math.Ceil(box.Height*vp.Scale/e.Cells.H)) + 1
	grid := canvas.NewGrid(cols, rows)
	canvas.Render(grid, canvas.Scene{Graph: g, Viewport: vp, Cells: e.Cells})

	return []byte(grid.String()), nil
}

// GetFileExtension returns the recommended file extension
func (e *ASCIIExporter) GetFileExtension() string {
	return ".txt"
}

// GetFormatName returns the format name
func (e *ASCIIExporter) GetFormatName() string {
	return "ASCII/Unicode Art"
}
