package diagram

import "wordweb/geometry"

// FrameMargin is the padding added around the member nodes' extents.
const FrameMargin = 40.0

// PlaceholderFrameTitle is used until a title suggestion arrives.
const PlaceholderFrameTitle = "Untitled frame"

// NewFrame builds a frame around the given node ids. Ids that do not resolve to a node are
// dropped from the membership. ok is false when no member resolves.
func NewFrame(g *Graph, title string, ids []string) (Frame, bool) {
	var (
		rects   []geometry.Rect
		members []string
		seen    = make(map[string]bool)
	)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		rects = append(rects, n.Bounds())
		members = append(members, id)
	}

	box, ok := geometry.BoundingBox(rects)
	if !ok {
		return Frame{}, false
	}
	box = box.Expand(FrameMargin)

	return Frame{
		ID:      NewID(),
		Title:   title,
		X:       box.X,
		Y:       box.Y,
		Width:   box.Width,
		Height:  box.Height,
		NodeIDs: members,
	}, true
}

// Members returns the frame's member nodes that still exist, skipping dangling ids.
func (g *Graph) Members(f Frame) []Node {
	var nodes []Node
	for _, id := range f.NodeIDs {
		if n, ok := g.Node(id); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
