package editor

import (
	"wordweb/diagram"
)

// History manages undo/redo over graph snapshots. Graphs are never mutated in place,
// so states are stored by pointer without copying.
type History struct {
	states  []*diagram.Graph
	current int // Current position in history
	max     int // Maximum number of states to keep
}

// NewHistory creates a history holding at most max states
func NewHistory(max int) *History {
	if max <= 0 {
		max = 50
	}
	return &History{
		states:  make([]*diagram.Graph, 0, max),
		current: -1,
		max:     max,
	}
}

// Save records g as the newest state, discarding anything that could be redone
func (h *History) Save(g *diagram.Graph) {
	if h.current < len(h.states)-1 {
		h.states = h.states[:h.current+1]
	}

	h.states = append(h.states, g)

	// If we exceed max, drop the oldest
	if len(h.states) > h.max {
		h.states = h.states[1:]
	} else {
		h.current++
	}
}

// CanUndo returns true if we can undo
func (h *History) CanUndo() bool {
	return h.current > 0
}

// CanRedo returns true if we can redo
func (h *History) CanRedo() bool {
	return h.current < len(h.states)-1
}

// Undo goes back one state
func (h *History) Undo() (*diagram.Graph, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.current--
	return h.states[h.current], true
}

// Redo goes forward one state
func (h *History) Redo() (*diagram.Graph, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.current++
	return h.states[h.current], true
}

// Clear drops all history
func (h *History) Clear() {
	h.states = h.states[:0]
	h.current = -1
}

// Stats returns current position and total states
func (h *History) Stats() (current, total int) {
	return h.current + 1, len(h.states)
}
