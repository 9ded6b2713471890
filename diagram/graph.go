package diagram

import "strings"

// Graph is an immutable snapshot of the editor's collections. Every mutator returns a new
// Graph and leaves the receiver untouched, so a snapshot handed out earlier never changes.
type Graph struct {
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
	Frames      []Frame      `json:"frames"`
}

// Empty returns a graph with no content.
func Empty() *Graph {
	return &Graph{Nodes: []Node{}, Connections: []Connection{}, Frames: []Frame{}}
}

// Clone creates a deep copy of the graph
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}

	clone := &Graph{
		Nodes:       make([]Node, len(g.Nodes)),
		Connections: make([]Connection, len(g.Connections)),
		Frames:      make([]Frame, len(g.Frames)),
	}
	copy(clone.Nodes, g.Nodes)
	copy(clone.Connections, g.Connections)

	// Frames hold a slice of member ids that must not be shared
	for i, f := range g.Frames {
		f.NodeIDs = append([]string(nil), f.NodeIDs...)
		clone.Frames[i] = f
	}

	return clone
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	if i := g.nodeIndex(id); i >= 0 {
		return g.Nodes[i], true
	}
	return Node{}, false
}

// HasNode reports whether a node with the given id exists.
func (g *Graph) HasNode(id string) bool {
	return g.nodeIndex(id) >= 0
}

func (g *Graph) nodeIndex(id string) int {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return i
		}
	}
	return -1
}

// Connection returns the connection with the given id.
func (g *Graph) Connection(id string) (Connection, bool) {
	for _, c := range g.Connections {
		if c.ID == id {
			return c, true
		}
	}
	return Connection{}, false
}

// Frame returns the frame with the given id.
func (g *Graph) Frame(id string) (Frame, bool) {
	for _, f := range g.Frames {
		if f.ID == id {
			return f, true
		}
	}
	return Frame{}, false
}

// HasEdge reports whether a connection joins a and b, in either direction.
func (g *Graph) HasEdge(a, b string) bool {
	for _, c := range g.Connections {
		if c.Joins(a, b) {
			return true
		}
	}
	return false
}

// Selected returns the ids of all selected nodes in node order.
func (g *Graph) Selected() []string {
	var ids []string
	for _, n := range g.Nodes {
		if n.Selected {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// Children returns the nodes whose parent reference is id, in node order.
func (g *Graph) Children(id string) []Node {
	var kids []Node
	for _, n := range g.Nodes {
		if n.ParentID == id {
			kids = append(kids, n)
		}
	}
	return kids
}

// Texts returns the lower-cased text of every node, for exclusion lists.
func (g *Graph) Texts() []string {
	texts := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if t := strings.TrimSpace(n.Text); t != "" {
			texts = append(texts, strings.ToLower(t))
		}
	}
	return texts
}

// WithNodes returns a copy of the graph with nodes appended.
func (g *Graph) WithNodes(nodes ...Node) *Graph {
	next := g.shallow()
	next.Nodes = append(append(make([]Node, 0, len(g.Nodes)+len(nodes)), g.Nodes...), nodes...)
	return next
}

// ReplaceNodes returns a copy of the graph with the node collection replaced wholesale.
func (g *Graph) ReplaceNodes(nodes []Node) *Graph {
	next := g.shallow()
	next.Nodes = append([]Node(nil), nodes...)
	return next
}

// UpdateNode returns a copy of the graph where the node with the given id is replaced by
// fn's result. ok is false, and the receiver is returned, when the id is unknown.
func (g *Graph) UpdateNode(id string, fn func(Node) Node) (next *Graph, ok bool) {
	i := g.nodeIndex(id)
	if i < 0 {
		return g, false
	}
	next = g.shallow()
	next.Nodes = append([]Node(nil), g.Nodes...)
	next.Nodes[i] = fn(g.Nodes[i])
	return next, true
}

// MapNodes returns a copy of the graph with fn applied to every node.
func (g *Graph) MapNodes(fn func(Node) Node) *Graph {
	next := g.shallow()
	next.Nodes = make([]Node, len(g.Nodes))
	for i, n := range g.Nodes {
		next.Nodes[i] = fn(n)
	}
	return next
}

// RemoveNode returns a copy of the graph without the node and without the connections
// touching it. Frames and child nodes are left alone: their references simply dangle.
func (g *Graph) RemoveNode(id string) (next *Graph, ok bool) {
	i := g.nodeIndex(id)
	if i < 0 {
		return g, false
	}
	next = g.shallow()
	next.Nodes = make([]Node, 0, len(g.Nodes)-1)
	next.Nodes = append(next.Nodes, g.Nodes[:i]...)
	next.Nodes = append(next.Nodes, g.Nodes[i+1:]...)

	next.Connections = make([]Connection, 0, len(g.Connections))
	for _, c := range g.Connections {
		if !c.Touches(id) {
			next.Connections = append(next.Connections, c)
		}
	}
	return next, true
}

// WithConnections returns a copy of the graph with connections appended.
func (g *Graph) WithConnections(conns ...Connection) *Graph {
	next := g.shallow()
	next.Connections = append(append(make([]Connection, 0, len(g.Connections)+len(conns)), g.Connections...), conns...)
	return next
}

// UpdateConnection returns a copy of the graph with the connection replaced by fn's result.
func (g *Graph) UpdateConnection(id string, fn func(Connection) Connection) (next *Graph, ok bool) {
	for i, c := range g.Connections {
		if c.ID != id {
			continue
		}
		next = g.shallow()
		next.Connections = append([]Connection(nil), g.Connections...)
		next.Connections[i] = fn(c)
		return next, true
	}
	return g, false
}

// RemoveConnection returns a copy of the graph without the connection.
func (g *Graph) RemoveConnection(id string) (next *Graph, ok bool) {
	for i, c := range g.Connections {
		if c.ID != id {
			continue
		}
		next = g.shallow()
		next.Connections = make([]Connection, 0, len(g.Connections)-1)
		next.Connections = append(next.Connections, g.Connections[:i]...)
		next.Connections = append(next.Connections, g.Connections[i+1:]...)
		return next, true
	}
	return g, false
}

// WithFrames returns a copy of the graph with frames appended.
func (g *Graph) WithFrames(frames ...Frame) *Graph {
	next := g.shallow()
	next.Frames = append(append(make([]Frame, 0, len(g.Frames)+len(frames)), g.Frames...), frames...)
	return next
}

// UpdateFrame returns a copy of the graph with the frame replaced by fn's result.
func (g *Graph) UpdateFrame(id string, fn func(Frame) Frame) (next *Graph, ok bool) {
	for i, f := range g.Frames {
		if f.ID != id {
			continue
		}
		next = g.shallow()
		next.Frames = append([]Frame(nil), g.Frames...)
		next.Frames[i] = fn(f)
		return next, true
	}
	return g, false
}

// RemoveFrame returns a copy of the graph without the frame. Member nodes are untouched.
func (g *Graph) RemoveFrame(id string) (next *Graph, ok bool) {
	for i, f := range g.Frames {
		if f.ID != id {
			continue
		}
		next = g.shallow()
		next.Frames = make([]Frame, 0, len(g.Frames)-1)
		next.Frames = append(next.Frames, g.Frames[:i]...)
		next.Frames = append(next.Frames, g.Frames[i+1:]...)
		return next, true
	}
	return g, false
}

// shallow copies the header; callers replace whichever slice they change.
func (g *Graph) shallow() *Graph {
	next := *g
	return &next
}
