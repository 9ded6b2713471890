package canvas

import (
	"wordweb/diagram"
	"wordweb/geometry"
)

// Hit-test tolerances in screen pixels. HandleRadius covers the whole terminal cell the
// handle glyph is drawn in, whose centre can sit half a cell away from the handle point.
const (
	HandleRadius     = 10.0
	ConnectionStroke = 12.0
)

// HitKind identifies what lies under a point.
type HitKind int

const (
	HitNone HitKind = iota
	HitNode
	HitHandle
	HitConnection
)

func (k HitKind) String() string {
	switch k {
	case HitNode:
		return "node"
	case HitHandle:
		return "handle"
	case HitConnection:
		return "connection"
	default:
		return "none"
	}
}

// Hit is the result of a hit test. ID is a node id for HitNode and HitHandle and a
// connection id for HitConnection.
type Hit struct {
	Kind HitKind
	ID   string
}

// HandlePoint returns the centre of a node's connector handle, on its right edge.
func HandlePoint(n diagram.Node) geometry.Point {
	w, _ := n.Size()
	return geometry.Pt(n.X+w/2, n.Y)
}

// ContainsPoint reports whether p lies on the node's body. Word nodes are discs, notes
// are rectangles.
func ContainsPoint(n diagram.Node, p geometry.Point) bool {
	if n.IsNote() {
		return n.Bounds().Contains(p)
	}
	w, _ := n.Size()
	return geometry.Distance(n.Position(), p) <= w/2
}

// HitTest finds what lies under world point p when the view is drawn at scale. Later
// nodes are drawn on top, so they are tested first. Handles win over bodies, bodies over
// connections. Connections with a dangling endpoint are skipped.
func HitTest(g *diagram.Graph, p geometry.Point, scale float64) Hit {
	if g == nil {
		return Hit{}
	}
	if scale <= 0 {
		scale = 1
	}
	handle, stroke := HandleRadius/scale, ConnectionStroke/scale

	for i := len(g.Nodes) - 1; i >= 0; i-- {
		n := g.Nodes[i]
		if geometry.Distance(HandlePoint(n), p) <= handle {
			return Hit{Kind: HitHandle, ID: n.ID}
		}
	}
	for i := len(g.Nodes) - 1; i >= 0; i-- {
		n := g.Nodes[i]
		if ContainsPoint(n, p) {
			return Hit{Kind: HitNode, ID: n.ID}
		}
	}
	for i := len(g.Connections) - 1; i >= 0; i-- {
		c := g.Connections[i]
		from, ok1 := g.Node(c.From)
		to, ok2 := g.Node(c.To)
		if !ok1 || !ok2 {
			continue
		}
		if geometry.DistanceToSegment(p, from.Position(), to.Position()) <= stroke {
			return Hit{Kind: HitConnection, ID: c.ID}
		}
	}
	return Hit{}
}

// NodeAt returns the id of the topmost node whose body or handle contains p.
func NodeAt(g *diagram.Graph, p geometry.Point, scale float64) (string, bool) {
	h := HitTest(g, p, scale)
	if h.Kind == HitNode || h.Kind == HitHandle {
		return h.ID, true
	}
	return "", false
}

// NodesInRect returns the ids of nodes whose centre lies inside r, in graph order.
// Rendered size is ignored.
func NodesInRect(g *diagram.Graph, r geometry.Rect) []string {
	var ids []string
	for _, n := range g.Nodes {
		if r.Contains(n.Position()) {
			ids = append(ids, n.ID)
		}
	}
	return ids
}
