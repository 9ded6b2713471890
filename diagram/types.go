// Package diagram contains the graph model edited by wordweb: nodes, connections and frames.
package diagram

import "wordweb/geometry"

// NodeType distinguishes plain word nodes from notes carrying free text.
type NodeType string

// Node type constants
const (
	NodeTypeWord NodeType = "word" // Default/empty is a word node
	NodeTypeNote NodeType = "note" // Free-text note, editable on double-click
)

// Default rendered sizes, used when a node carries no explicit size.
const (
	RootSize   = 120.0
	ChildSize  = 90.0
	NoteWidth  = 200.0
	NoteHeight = 120.0
)

// Node is a placed, labeled point in the graph. X and Y are the centre of the node.
type Node struct {
	ID       string   `json:"id" validate:"required"`
	Text     string   `json:"text"`
	Type     NodeType `json:"type,omitempty" validate:"omitempty,oneof=word note"`
	Content  string   `json:"content,omitempty"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width,omitempty" validate:"gte=0"`
	Height   float64  `json:"height,omitempty" validate:"gte=0"`
	Selected bool     `json:"selected,omitempty"`
	Level    int      `json:"level" validate:"gte=0"`
	ParentID string   `json:"parentId,omitempty"` // Weak back-reference, never ownership
	Fill     string   `json:"fill,omitempty" validate:"omitempty,hexcolor"`
}

// IsNote reports whether the node is a note.
func (n Node) IsNote() bool {
	return n.Type == NodeTypeNote
}

// Position returns the centre of the node.
func (n Node) Position() geometry.Point {
	return geometry.Point{X: n.X, Y: n.Y}
}

// Size returns the explicit size when set, otherwise the size derived from the node's role.
func (n Node) Size() (width, height float64) {
	if n.Width > 0 && n.Height > 0 {
		return n.Width, n.Height
	}
	switch {
	case n.IsNote():
		return NoteWidth, NoteHeight
	case n.Level == 0:
		return RootSize, RootSize
	default:
		return ChildSize, ChildSize
	}
}

// Bounds returns the rendered extent of the node.
func (n Node) Bounds() geometry.Rect {
	w, h := n.Size()
	return geometry.RectAround(n.Position(), w, h)
}

// Connection is an edge between two node ids.
type Connection struct {
	ID     string `json:"id,omitempty"`
	From   string `json:"from" validate:"required"`
	To     string `json:"to" validate:"required"`
	Label  string `json:"label,omitempty"`
	Manual bool   `json:"manual,omitempty"` // Drawn by hand rather than derived from an expansion
}

// Joins reports whether the connection links a and b in either direction.
func (c Connection) Joins(a, b string) bool {
	return (c.From == a && c.To == b) || (c.From == b && c.To == a)
}

// Touches reports whether the connection has id as one of its endpoints.
func (c Connection) Touches(id string) bool {
	return c.From == id || c.To == id
}

// Frame groups node ids under a title. It does not own its members.
type Frame struct {
	ID      string   `json:"id" validate:"required"`
	Title   string   `json:"title"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Width   float64  `json:"width" validate:"gte=0"`
	Height  float64  `json:"height" validate:"gte=0"`
	NodeIDs []string `json:"nodeIds"`
}

// Rect returns the frame's bounding box.
func (f Frame) Rect() geometry.Rect {
	return geometry.Rect{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
}

// Has reports whether id is a member of the frame.
func (f Frame) Has(id string) bool {
	for _, m := range f.NodeIDs {
		if m == id {
			return true
		}
	}
	return false
}
