package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wordweb/diagram"
	"wordweb/geometry"
)

func hitGraph() *diagram.Graph {
	return &diagram.Graph{
		Nodes: []diagram.Node{
			{ID: "root", Text: "coffee"},
			{ID: "a", Text: "espresso", Level: 1, ParentID: "root", X: 300},
			{ID: "note", Type: diagram.NodeTypeNote, Content: "buy beans", X: 0, Y: 400},
		},
		Connections: []diagram.Connection{
			{ID: "c1", From: "root", To: "a"},
			{ID: "dangling", From: "root", To: "ghost"},
		},
	}
}

func TestHitTest(t *testing.T) {
	g := hitGraph()

	tests := []struct {
		name string
		at   geometry.Point
		want Hit
	}{
		{"root body", geometry.Pt(10, 10), Hit{Kind: HitNode, ID: "root"}},
		{"root handle on right edge", geometry.Pt(60, 0), Hit{Kind: HitHandle, ID: "root"}},
		{"child body", geometry.Pt(300, 40), Hit{Kind: HitNode, ID: "a"}},
		{"child handle", geometry.Pt(345, 3), Hit{Kind: HitHandle, ID: "a"}},
		{"connection stroke", geometry.Pt(150, 10), Hit{Kind: HitConnection, ID: "c1"}},
		{"outside stroke", geometry.Pt(150, 13), Hit{}},
		{"note rectangle corner", geometry.Pt(-95, 345), Hit{Kind: HitNode, ID: "note"}},
		{"empty space", geometry.Pt(-500, -500), Hit{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HitTest(g, tt.at, 1))
		})
	}
}

func TestHitTestNilGraph(t *testing.T) {
	assert.Equal(t, HitNone, HitTest(nil, geometry.Point{}, 1).Kind)
}

func TestHitToleranceFollowsScale(t *testing.T) {
	g := hitGraph()

	// 16 world units from root's handle and 16 from the c1 segment
	handle := geometry.Pt(60, -16)
	stroke := geometry.Pt(200, 16)

	tests := []struct {
		scale  float64
		handle HitKind
		stroke HitKind
	}{
		{1, HitNone, HitNone},
		{0.5, HitHandle, HitConnection},
		{2, HitNone, HitNone},
		{0, HitNone, HitNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.handle, HitTest(g, handle, tt.scale).Kind, "handle at scale %v", tt.scale)
		assert.Equal(t, tt.stroke, HitTest(g, stroke, tt.scale).Kind, "stroke at scale %v", tt.scale)
	}
}

func TestTopmostNodeWins(t *testing.T) {
	g := &diagram.Graph{Nodes: []diagram.Node{
		{ID: "under", X: 0},
		{ID: "over", X: 20},
	}}
	id, ok := NodeAt(g, geometry.Pt(10, 0), 1)
	assert.True(t, ok)
	assert.Equal(t, "over", id)
}

func TestNodesInRectUsesCentres(t *testing.T) {
	g := hitGraph()

	// Overlaps root's disc but not its centre
	assert.Empty(t, NodesInRect(g, geometry.RectFromCorners(geometry.Pt(20, 20), geometry.Pt(200, 200))))

	got := NodesInRect(g, geometry.RectFromCorners(geometry.Pt(350, -10), geometry.Pt(-10, 10)))
	assert.Equal(t, []string{"root", "a"}, got)
}

func TestHitKindString(t *testing.T) {
	assert.Equal(t, "handle", HitHandle.String())
	assert.Equal(t, "none", HitKind(42).String())
}
