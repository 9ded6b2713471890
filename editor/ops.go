package editor

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"wordweb/diagram"
	"wordweb/geometry"
)

// AddNode creates a root word node at a world position and returns its id.
func (e *Editor) AddNode(text string, at geometry.Point) (string, error) {
	if e.closed {
		return "", ErrClosed
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoText
	}
	n := diagram.Node{ID: diagram.NewID(), Text: text, Type: diagram.NodeTypeWord, X: at.X, Y: at.Y}
	e.commit(e.graph.WithNodes(n))
	e.metrics.RecordNodesCreated(1)
	return n.ID, nil
}

// AddNote creates an empty note at a world position and starts editing it.
func (e *Editor) AddNote(at geometry.Point) (string, error) {
	if e.closed {
		return "", ErrClosed
	}
	n := diagram.Node{ID: diagram.NewID(), Type: diagram.NodeTypeNote, X: at.X, Y: at.Y}
	e.commit(e.graph.WithNodes(n))
	e.metrics.RecordNodesCreated(1)
	e.machine.BeginEdit(n)
	return n.ID, nil
}

// EditNote starts editing an existing note.
func (e *Editor) EditNote(id string) error {
	n, ok := e.graph.Node(id)
	if !ok {
		return ErrUnknownNode
	}
	if !n.IsNote() {
		return ErrNotNote
	}
	e.machine.BeginEdit(n)
	return nil
}

// Key forwards a text-editing key to the note being edited.
func (e *Editor) Key(k EditKey, r rune) bool {
	return e.machine.Key(k, r)
}

// FinishEdit commits the note being edited, if any.
func (e *Editor) FinishEdit() {
	if cmd := e.machine.FinishEdit(); cmd != nil {
		e.Execute(cmd)
	}
}

// CancelEdit drops the note edit or drag in progress.
func (e *Editor) CancelEdit() {
	e.machine.CancelEdit()
}

// Connect adds a manual connection between two nodes. Self-loops, unknown endpoints and
// duplicates in either direction are ignored, and false is returned.
func (e *Editor) Connect(from, to string) bool {
	if e.closed || from == to || !e.graph.HasNode(from) || !e.graph.HasNode(to) {
		return false
	}
	if e.graph.HasEdge(from, to) {
		e.logger.Debug("duplicate connection ignored", zap.String("from", from), zap.String("to", to))
		return false
	}
	c := diagram.Connection{ID: diagram.NewID(), From: from, To: to, Manual: true}
	e.commit(e.graph.WithConnections(c))
	e.metrics.RecordConnectionsCreated(1)
	return true
}

// SetSelection selects exactly ids, or adds them to the selection when additive.
// Selection changes are not undo steps.
func (e *Editor) SetSelection(ids []string, additive bool) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	e.graph = e.graph.MapNodes(func(n diagram.Node) diagram.Node {
		n.Selected = want[n.ID] || (additive && n.Selected)
		return n
	})
}

// ToggleSelection flips the selection of one node and clears every other node.
func (e *Editor) ToggleSelection(id string) error {
	n, ok := e.graph.Node(id)
	if !ok {
		return ErrUnknownNode
	}
	if n.Selected {
		e.SetSelection(nil, false)
	} else {
		e.SetSelection([]string{id}, false)
	}
	return nil
}

// ClearSelection deselects every node.
func (e *Editor) ClearSelection() {
	e.SetSelection(nil, false)
}

// UpdateNodeContent replaces a note's content. Unchanged content is not an undo step.
func (e *Editor) UpdateNodeContent(id, content string) error {
	n, ok := e.graph.Node(id)
	if !ok {
		return ErrUnknownNode
	}
	if n.Content == content {
		return nil
	}
	next, _ := e.graph.UpdateNode(id, func(n diagram.Node) diagram.Node {
		n.Content = content
		return n
	})
	e.commit(next)
	return nil
}

// RenameNode replaces a node's text.
func (e *Editor) RenameNode(id, text string) error {
	n, ok := e.graph.Node(id)
	if !ok {
		return ErrUnknownNode
	}
	text = strings.TrimSpace(text)
	if text == "" && !n.IsNote() {
		return ErrNoText
	}
	if n.Text == text {
		return nil
	}
	next, _ := e.graph.UpdateNode(id, func(n diagram.Node) diagram.Node {
		n.Text = text
		return n
	})
	e.commit(next)
	return nil
}

// SetConnectionLabel sets or clears a connection's label.
func (e *Editor) SetConnectionLabel(id, label string) error {
	next, ok := e.graph.UpdateConnection(id, func(c diagram.Connection) diagram.Connection {
		c.Label = strings.TrimSpace(label)
		return c
	})
	if !ok {
		return ErrUnknownConnection
	}
	e.commit(next)
	return nil
}

// SetFill sets the fill colour of the given nodes, or of the selection when ids is
// empty. An empty colour clears the fill.
func (e *Editor) SetFill(color string, ids ...string) error {
	fill, err := diagram.NormalizeFill(color)
	if err != nil {
		return fmt.Errorf("set fill: %w", err)
	}
	if len(ids) == 0 {
		ids = e.graph.Selected()
	}
	if len(ids) == 0 {
		return ErrNothingSelected
	}
	target := make(map[string]bool, len(ids))
	for _, id := range ids {
		target[id] = true
	}
	e.commit(e.graph.MapNodes(func(n diagram.Node) diagram.Node {
		if target[n.ID] {
			n.Fill = fill
		}
		return n
	}))
	return nil
}

// DeleteNode removes a node and its connections. Frames and children keep their
// references to it.
func (e *Editor) DeleteNode(id string) error {
	next, ok := e.graph.RemoveNode(id)
	if !ok {
		return ErrUnknownNode
	}
	if editing, _, ok := e.machine.Editing(); ok && editing == id {
		e.machine.CancelEdit()
	}
	e.commit(next)
	return nil
}

// DeleteSelected removes every selected node as one undo step and returns how many
// were removed.
func (e *Editor) DeleteSelected() int {
	next := e.graph
	removed := 0
	for _, id := range e.graph.Selected() {
		var ok bool
		if next, ok = next.RemoveNode(id); ok {
			removed++
		}
	}
	if removed > 0 {
		e.machine.CancelEdit()
		e.commit(next)
	}
	return removed
}

// DeleteConnection removes one connection.
func (e *Editor) DeleteConnection(id string) error {
	next, ok := e.graph.RemoveConnection(id)
	if !ok {
		return ErrUnknownConnection
	}
	e.commit(next)
	return nil
}

// RenameFrame changes a frame's title.
func (e *Editor) RenameFrame(id, title string) error {
	next, ok := e.graph.UpdateFrame(id, func(f diagram.Frame) diagram.Frame {
		f.Title = strings.TrimSpace(title)
		return f
	})
	if !ok {
		return ErrUnknownFrame
	}
	e.commit(next)
	return nil
}

// DeleteFrame removes a frame. Its members stay.
func (e *Editor) DeleteFrame(id string) error {
	next, ok := e.graph.RemoveFrame(id)
	if !ok {
		return ErrUnknownFrame
	}
	e.commit(next)
	return nil
}

// FocusNode pans the view so a node sits at the centre of the screen.
func (e *Editor) FocusNode(id string) error {
	n, ok := e.graph.Node(id)
	if !ok {
		return ErrUnknownNode
	}
	e.viewport.CenterOn(n.Position(), e.screen.Scale(0.5))
	return nil
}
