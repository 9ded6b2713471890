package editor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordweb/canvas"
	"wordweb/diagram"
	"wordweb/geometry"
)

// machineGraph has a root at the origin, a child to its right and a note below.
func machineGraph() *diagram.Graph {
	return &diagram.Graph{
		Nodes: []diagram.Node{
			{ID: "root", Text: "coffee"},
			{ID: "b", Text: "espresso", X: 300, Level: 1, ParentID: "root"},
			{ID: "note", Type: diagram.NodeTypeNote, Content: "hello", Y: 300},
		},
		Connections: []diagram.Connection{
			{ID: "c1", From: "root", To: "b"},
		},
	}
}

func down(x, y float64) Event {
	return Event{Kind: PointerDown, Button: ButtonPrimary, Screen: geometry.Pt(x, y)}
}

func move(x, y float64) Event {
	return Event{Kind: PointerMove, Screen: geometry.Pt(x, y)}
}

func up(x, y float64) Event {
	return Event{Kind: PointerUp, Button: ButtonPrimary, Screen: geometry.Pt(x, y)}
}

func TestClickOnWordNodeExpands(t *testing.T) {
	m, g, vp := NewMachine(), machineGraph(), canvas.NewViewport()

	assert.Nil(t, m.Handle(down(10, 10), g, vp))
	assert.Nil(t, m.Handle(move(12, 11), g, vp), "movement under the threshold keeps the click")
	cmd := m.Handle(up(11, 11), g, vp)

	assert.Equal(t, ExpandCommand{NodeID: "root"}, cmd)
	assert.Equal(t, ModeIdle, m.Mode())
	assert.Equal(t, geometry.Point{}, vp.Pan())
}

func TestPressThatDriftsBecomesPan(t *testing.T) {
	m, g, vp := NewMachine(), machineGraph(), canvas.NewViewport()

	m.Handle(down(10, 10), g, vp)
	m.Handle(move(20, 10), g, vp)
	assert.Equal(t, ModePanning, m.Mode())
	assert.Equal(t, geometry.Pt(10, 0), vp.Pan())

	m.Handle(move(25, 15), g, vp)
	assert.Equal(t, geometry.Pt(15, 5), vp.Pan())

	assert.Nil(t, m.Handle(up(25, 15), g, vp), "a drag never expands")
	assert.Equal(t, ModeIdle, m.Mode())
}

func TestBackgroundDragPans(t *testing.T) {
	m, g, vp := NewMachine(), machineGraph(), canvas.NewViewport()

	m.Handle(down(-400, -400), g, vp)
	assert.Equal(t, ModePanning, m.Mode())
	m.Handle(move(-390, -380), g, vp)
	assert.Equal(t, geometry.Pt(10, 20), vp.Pan())
	m.Handle(up(-390, -380), g, vp)
	assert.Equal(t, ModeIdle, m.Mode())
}

func TestHandleDragConnects(t *testing.T) {
	tests := []struct {
		name    string
		release geometry.Point
		want    Command
	}{
		{"onto another node", geometry.Pt(300, 0), ConnectCommand{From: "root", To: "b"}},
		{"onto empty canvas", geometry.Pt(-400, -400), nil},
		{"back onto the source", geometry.Pt(0, 0), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, g, vp := NewMachine(), machineGraph(), canvas.NewViewport()

			m.Handle(down(60, 0), g, vp)
			require.Equal(t, ModeConnecting, m.Mode())

			m.Handle(move(150, 40), g, vp)
			src, end, ok := m.Connection()
			require.True(t, ok)
			assert.Equal(t, "root", src)
			assert.Equal(t, geometry.Pt(150, 40), end)

			cmd := m.Handle(up(tt.release.X, tt.release.Y), g, vp)
			assert.Equal(t, tt.want, cmd)
			assert.Equal(t, ModeIdle, m.Mode())
			_, _, ok = m.Connection()
			assert.False(t, ok)
		})
	}
}

func TestHandleCellConnectsWhenZoomedOut(t *testing.T) {
	for _, scale := range []float64{1, 0.5, 0.3} {
		t.Run(fmt.Sprintf("scale %v", scale), func(t *testing.T) {
			m, g, vp := NewMachine(), machineGraph(), canvas.NewViewport()
			vp.Scale = scale

			// Press where the handle glyph is drawn, not on the exact handle point
			root, _ := g.Node("root")
			cx, cy := canvas.DefaultCellSize.ToCell(vp.WorldToScreen(canvas.HandlePoint(root)))
			at := canvas.DefaultCellSize.ToScreen(cx, cy)

			m.Handle(down(at.X, at.Y), g, vp)
			require.Equal(t, ModeConnecting, m.Mode())

			target := vp.WorldToScreen(geometry.Pt(300, 0))
			m.Handle(move(target.X, target.Y), g, vp)
			cmd := m.Handle(up(target.X, target.Y), g, vp)
			assert.Equal(t, ConnectCommand{From: "root", To: "b"}, cmd)
		})
	}
}

func TestShiftDragSelects(t *testing.T) {
	m, g, vp := NewMachine(), machineGraph(), canvas.NewViewport()

	ev := down(-200, -200)
	ev.Mods = ModShift
	m.Handle(ev, g, vp)
	require.Equal(t, ModeSelecting, m.Mode())

	m.Handle(move(400, 100), g, vp)
	band, ok := m.Band()
	require.True(t, ok)
	assert.Equal(t, geometry.RectFromCorners(geometry.Pt(-200, -200), geometry.Pt(400, 100)), band)

	end := up(400, 100)
	end.Mods = ModShift
	cmd := m.Handle(end, g, vp)

	sel, ok := cmd.(SelectCommand)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"root", "b"}, sel.NodeIDs)
	assert.True(t, sel.Additive)
	assert.Equal(t, ModeIdle, m.Mode())
}

func TestAnySelectModifierStartsBand(t *testing.T) {
	for _, mod := range []Modifier{ModShift, ModCtrl, ModAlt, ModCtrl | ModAlt} {
		m, g, vp := NewMachine(), machineGraph(), canvas.NewViewport()

		ev := down(-200, -200)
		ev.Mods = mod
		m.Handle(ev, g, vp)
		require.Equal(t, ModeSelecting, m.Mode(), "modifier %b", mod)

		end := up(400, 100)
		end.Mods = mod
		sel, ok := m.Handle(end, g, vp).(SelectCommand)
		require.True(t, ok)
		assert.True(t, sel.Additive, "modifier %b", mod)
	}
}

func TestBandReleasedWithoutShiftReplacesSelection(t *testing.T) {
	m, g, vp := NewMachine(), machineGraph(), canvas.NewViewport()

	ev := down(-500, -500)
	ev.Mods = ModShift
	m.Handle(ev, g, vp)
	cmd := m.Handle(up(-450, -450), g, vp)

	assert.Equal(t, SelectCommand{Additive: false}, cmd)
}

func TestSecondaryClick(t *testing.T) {
	m, g, vp := NewMachine(), machineGraph(), canvas.NewViewport()
	right := func(x, y float64) Event {
		return Event{Kind: PointerDown, Button: ButtonSecondary, Screen: geometry.Pt(x, y)}
	}

	assert.Equal(t, ToggleSelectCommand{NodeID: "b"}, m.Handle(right(300, 10), g, vp))
	assert.Equal(t, RelabelCommand{ConnectionID: "c1"}, m.Handle(right(150, 4), g, vp))
	assert.Nil(t, m.Handle(right(-500, -500), g, vp))
	assert.Equal(t, ModeIdle, m.Mode())
}

func TestNoteIsEditedOnDoubleClickOnly(t *testing.T) {
	m, g, vp := NewMachine(), machineGraph(), canvas.NewViewport()

	m.Handle(down(0, 300), g, vp)
	assert.Nil(t, m.Handle(up(0, 300), g, vp), "a click on a note does not expand")

	m.Handle(Event{Kind: DoubleClick, Button: ButtonPrimary, Screen: geometry.Pt(0, 300)}, g, vp)
	require.Equal(t, ModeEditing, m.Mode())

	id, text, ok := m.Editing()
	require.True(t, ok)
	assert.Equal(t, "note", id)
	assert.Equal(t, "hello", text)

	assert.True(t, m.Key(KeyRune, '!'))
	assert.True(t, m.Key(KeyNewline, 0))
	assert.True(t, m.Key(KeyRune, 'x'))
	assert.True(t, m.Key(KeyBackspace, 0))

	// Clicks inside the note keep editing
	assert.Nil(t, m.Handle(down(10, 310), g, vp))
	assert.Equal(t, ModeEditing, m.Mode())

	cmd := m.Handle(down(-500, -500), g, vp)
	assert.Equal(t, CommitEditCommand{NodeID: "note", Text: "hello!\n"}, cmd)
	assert.Equal(t, ModeIdle, m.Mode())
	assert.False(t, m.Key(KeyRune, 'y'), "keys are ignored outside editing")
}

func TestDoubleClickOnWordNodeDoesNothing(t *testing.T) {
	m, g, vp := NewMachine(), machineGraph(), canvas.NewViewport()
	m.Handle(Event{Kind: DoubleClick, Button: ButtonPrimary, Screen: geometry.Pt(0, 0)}, g, vp)
	assert.Equal(t, ModeIdle, m.Mode())
}

func TestCancelEditDropsBuffer(t *testing.T) {
	m := NewMachine()
	m.BeginEdit(diagram.Node{ID: "n", Type: diagram.NodeTypeNote, Content: "draft"})
	m.Key(KeyRune, 'x')
	m.CancelEdit()

	assert.Equal(t, ModeIdle, m.Mode())
	assert.Nil(t, m.FinishEdit())
}

func TestWheelZoomsAroundCursorInAnyMode(t *testing.T) {
	m, g, vp := NewMachine(), machineGraph(), canvas.NewViewport()

	m.Handle(down(-400, -400), g, vp)
	require.Equal(t, ModePanning, m.Mode())

	cursor := geometry.Pt(100, 50)
	before := vp.ScreenToWorld(cursor)
	m.Handle(Event{Kind: Wheel, Screen: cursor, Delta: 1000}, g, vp)

	assert.InDelta(t, 2.0, vp.Scale, 1e-9)
	after := vp.ScreenToWorld(cursor)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
	assert.Equal(t, ModePanning, m.Mode())
}

func TestHitTestingUsesWorldCoordinates(t *testing.T) {
	m, g, vp := NewMachine(), machineGraph(), canvas.NewViewport()
	vp.PanBy(geometry.Pt(100, 100))

	m.Handle(down(100, 100), g, vp)
	assert.Equal(t, ExpandCommand{NodeID: "root"}, m.Handle(up(100, 100), g, vp))
}
