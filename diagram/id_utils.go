package diagram

import "github.com/google/uuid"

// NewID returns a fresh identifier for a node, connection or frame.
func NewID() string {
	return uuid.NewString()
}

// EnsureUniqueIDs returns a copy of g in which every connection and frame has a non-empty,
// unique ID. Connections loaded from older exports may carry no id at all. Node ids are
// left alone since connections and frames refer to them.
func EnsureUniqueIDs(g *Graph) *Graph {
	if g == nil {
		return nil
	}
	next := g.Clone()

	seen := make(map[string]bool)
	for i := range next.Connections {
		id := next.Connections[i].ID
		if id == "" || seen[id] {
			id = NewID()
			next.Connections[i].ID = id
		}
		seen[id] = true
	}

	seen = make(map[string]bool)
	for i := range next.Frames {
		id := next.Frames[i].ID
		if id == "" || seen[id] {
			id = NewID()
			next.Frames[i].ID = id
		}
		seen[id] = true
	}

	return next
}
