package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordweb/diagram"
)

func graphWith(ids ...string) *diagram.Graph {
	g := diagram.Empty()
	for _, id := range ids {
		g = g.WithNodes(diagram.Node{ID: id, Text: id})
	}
	return g
}

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory(5)
	states := []*diagram.Graph{graphWith(), graphWith("a"), graphWith("a", "b")}
	for _, g := range states {
		h.Save(g)
	}

	current, total := h.Stats()
	assert.Equal(t, 3, current)
	assert.Equal(t, 3, total)
	assert.False(t, h.CanRedo())

	g, ok := h.Undo()
	require.True(t, ok)
	assert.Same(t, states[1], g, "states are shared, not copied")

	g, ok = h.Undo()
	require.True(t, ok)
	assert.Same(t, states[0], g)

	_, ok = h.Undo()
	assert.False(t, ok, "the first state cannot be undone")

	g, ok = h.Redo()
	require.True(t, ok)
	assert.Same(t, states[1], g)
}

func TestHistorySaveDropsRedo(t *testing.T) {
	h := NewHistory(5)
	h.Save(graphWith())
	h.Save(graphWith("a"))
	h.Undo()

	branch := graphWith("z")
	h.Save(branch)

	assert.False(t, h.CanRedo())
	_, total := h.Stats()
	assert.Equal(t, 2, total)
}

func TestHistoryCapacity(t *testing.T) {
	h := NewHistory(3)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		h.Save(graphWith(id))
	}

	current, total := h.Stats()
	assert.Equal(t, 3, total)
	assert.Equal(t, 3, current)

	h.Undo()
	g, _ := h.Undo()
	assert.Equal(t, "c", g.Nodes[0].ID)
	assert.False(t, h.CanUndo())

	h.Clear()
	_, total = h.Stats()
	assert.Zero(t, total)
}
