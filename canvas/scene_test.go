package canvas

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"wordweb/diagram"
	"wordweb/geometry"
)

func TestRenderScene(t *testing.T) {
	g := &diagram.Graph{
		Nodes: []diagram.Node{
			{ID: "root", Text: "coffee"},
			{ID: "note", Type: diagram.NodeTypeNote, Text: "todo", Content: "buy beans", X: 0, Y: 200},
		},
		Connections: []diagram.Connection{
			{ID: "c1", From: "root", To: "ghost"},
		},
		Frames: []diagram.Frame{
			{ID: "f1", Title: "drinks", X: -100, Y: -100, Width: 200, Height: 200, NodeIDs: []string{"root", "gone"}},
		},
	}

	vp := NewViewport()
	vp.CenterOn(geometry.Point{}, geometry.Pt(320, 160))

	grid := NewGrid(80, 30)
	Render(grid, Scene{Graph: g, Viewport: vp, Busy: "root"})
	out := grid.String()

	assert.Contains(t, out, "(coffee …)")
	assert.Contains(t, out, " drinks ")
	assert.Contains(t, out, "todo")
	assert.Contains(t, out, "buy beans")
}

func TestRenderEditingAndBand(t *testing.T) {
	g := &diagram.Graph{Nodes: []diagram.Node{
		{ID: "note", Type: diagram.NodeTypeNote, Content: "old", X: 0, Y: 0},
	}}
	vp := NewViewport()
	vp.CenterOn(geometry.Point{}, geometry.Pt(320, 160))
	band := geometry.RectFromCorners(geometry.Pt(-300, -100), geometry.Pt(-200, 0))

	grid := NewGrid(80, 30)
	Render(grid, Scene{Graph: g, Viewport: vp, Editing: "note", EditBuffer: "new text", Band: &band})
	out := grid.String()

	assert.Contains(t, out, "new text▏")
	assert.NotContains(t, out, "old")
	assert.True(t, strings.ContainsRune(out, DashedBox.TopLeft))
}

func TestRenderWithoutGraph(t *testing.T) {
	grid := NewGrid(4, 2)
	grid.Set(0, 0, 'x', Style{})
	Render(grid, Scene{})
	assert.Empty(t, strings.TrimSpace(grid.String()))
}

func TestCellSizeConversions(t *testing.T) {
	x, y := DefaultCellSize.ToCell(geometry.Pt(17, 33))
	assert.Equal(t, 2, x)
	assert.Equal(t, 2, y)

	x, y = DefaultCellSize.ToCell(geometry.Pt(-1, -1))
	assert.Equal(t, -1, x)
	assert.Equal(t, -1, y)

	assert.Equal(t, geometry.Pt(20, 40), DefaultCellSize.ToScreen(2, 2))
}
