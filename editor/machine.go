package editor

import (
	"wordweb/canvas"
	"wordweb/diagram"
	"wordweb/geometry"
)

// ClickThreshold is how far, in screen pixels, the pointer may travel between down and
// up and still count as a click.
const ClickThreshold = 3.0

// press is a primary-button down on a node body that may still become a click.
type press struct {
	nodeID string
	origin geometry.Point
}

// Machine is the interaction state machine. It turns pointer events into viewport
// changes and Commands. It never mutates the graph.
type Machine struct {
	mode Mode

	// Panning
	last geometry.Point

	// Pending click on a node while Idle
	pressed *press

	// Connecting
	source   string
	floating geometry.Point

	// Selecting, in world space
	anchor geometry.Point
	corner geometry.Point

	// Editing
	editing string
	buffer  *textBuffer
}

// NewMachine creates a machine in ModeIdle.
func NewMachine() *Machine {
	return &Machine{}
}

// Mode returns the current interaction state.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Connection returns the source node and the floating endpoint of an in-progress
// connection drag.
func (m *Machine) Connection() (source string, end geometry.Point, ok bool) {
	if m.mode != ModeConnecting {
		return "", geometry.Point{}, false
	}
	return m.source, m.floating, true
}

// Band returns the rubber-band rectangle in world space.
func (m *Machine) Band() (geometry.Rect, bool) {
	if m.mode != ModeSelecting {
		return geometry.Rect{}, false
	}
	return geometry.RectFromCorners(m.anchor, m.corner), true
}

// Editing returns the note being edited and the current buffer.
func (m *Machine) Editing() (nodeID, text string, ok bool) {
	if m.mode != ModeEditing {
		return "", "", false
	}
	return m.editing, m.buffer.String(), true
}

// Handle processes one pointer event. Pan and zoom are applied to vp directly; graph
// changes are returned as a Command, or nil.
func (m *Machine) Handle(ev Event, g *diagram.Graph, vp *canvas.Viewport) Command {
	if ev.Kind == Wheel {
		vp.Zoom(ev.Delta, ev.Screen)
		return nil
	}
	world := vp.ScreenToWorld(ev.Screen)

	switch m.mode {
	case ModeEditing:
		return m.handleEditing(ev, g, world)
	case ModePanning:
		return m.handlePanning(ev, vp)
	case ModeConnecting:
		return m.handleConnecting(ev, g, vp, world)
	case ModeSelecting:
		return m.handleSelecting(ev, g, world)
	default:
		return m.handleIdle(ev, g, vp, world)
	}
}

func (m *Machine) handleIdle(ev Event, g *diagram.Graph, vp *canvas.Viewport, world geometry.Point) Command {
	switch ev.Kind {
	case PointerDown:
		hit := canvas.HitTest(g, world, vp.Scale)
		if ev.Button == ButtonSecondary {
			switch hit.Kind {
			case canvas.HitNode, canvas.HitHandle:
				return ToggleSelectCommand{NodeID: hit.ID}
			case canvas.HitConnection:
				return RelabelCommand{ConnectionID: hit.ID}
			}
			return nil
		}
		if ev.Button != ButtonPrimary {
			return nil
		}

		switch hit.Kind {
		case canvas.HitHandle:
			m.mode = ModeConnecting
			m.source = hit.ID
			m.floating = world
		case canvas.HitNode:
			m.pressed = &press{nodeID: hit.ID, origin: ev.Screen}
		default:
			if ev.Has(ModSelect) {
				m.mode = ModeSelecting
				m.anchor, m.corner = world, world
			} else {
				m.mode = ModePanning
				m.last = ev.Screen
			}
		}

	case PointerMove:
		// A press that drifts too far is a drag of the view, not a click
		if m.pressed != nil && geometry.Distance(m.pressed.origin, ev.Screen) > ClickThreshold {
			vp.PanBy(ev.Screen.Sub(m.pressed.origin))
			m.pressed = nil
			m.mode = ModePanning
			m.last = ev.Screen
		}

	case PointerUp:
		p := m.pressed
		m.pressed = nil
		if p == nil || ev.Button != ButtonPrimary {
			return nil
		}
		// Notes are edited by double click, never expanded
		if n, ok := g.Node(p.nodeID); ok && !n.IsNote() {
			return ExpandCommand{NodeID: n.ID}
		}

	case DoubleClick:
		m.pressed = nil
		id, ok := canvas.NodeAt(g, world, vp.Scale)
		if !ok {
			return nil
		}
		if n, _ := g.Node(id); n.IsNote() {
			m.BeginEdit(n)
		}
	}
	return nil
}

func (m *Machine) handlePanning(ev Event, vp *canvas.Viewport) Command {
	switch ev.Kind {
	case PointerMove:
		vp.PanBy(ev.Screen.Sub(m.last))
		m.last = ev.Screen
	case PointerUp:
		m.mode = ModeIdle
	}
	return nil
}

func (m *Machine) handleConnecting(ev Event, g *diagram.Graph, vp *canvas.Viewport, world geometry.Point) Command {
	switch ev.Kind {
	case PointerMove:
		m.floating = world
	case PointerUp:
		source := m.source
		m.mode = ModeIdle
		m.source = ""
		if target, ok := canvas.NodeAt(g, world, vp.Scale); ok && target != source {
			return ConnectCommand{From: source, To: target}
		}
	}
	return nil
}

func (m *Machine) handleSelecting(ev Event, g *diagram.Graph, world geometry.Point) Command {
	switch ev.Kind {
	case PointerMove:
		m.corner = world
	case PointerUp:
		m.corner = world
		m.mode = ModeIdle
		band := geometry.RectFromCorners(m.anchor, m.corner)
		return SelectCommand{
			NodeIDs:  canvas.NodesInRect(g, band),
			Additive: ev.Has(ModSelect),
		}
	}
	return nil
}

func (m *Machine) handleEditing(ev Event, g *diagram.Graph, world geometry.Point) Command {
	if ev.Kind != PointerDown {
		return nil
	}
	if n, ok := g.Node(m.editing); ok && n.Bounds().Contains(world) {
		return nil
	}
	// Clicking anywhere off the note ends the edit
	return m.FinishEdit()
}

// BeginEdit enters ModeEditing for note n, loading its content into the buffer.
// Anything in progress is abandoned.
func (m *Machine) BeginEdit(n diagram.Node) {
	m.reset()
	m.mode = ModeEditing
	m.editing = n.ID
	m.buffer = newTextBuffer(n.Content)
}

// FinishEdit leaves ModeEditing and returns the commit for the edited text.
func (m *Machine) FinishEdit() Command {
	if m.mode != ModeEditing {
		return nil
	}
	cmd := CommitEditCommand{NodeID: m.editing, Text: m.buffer.String()}
	m.reset()
	return cmd
}

// CancelEdit leaves ModeEditing without committing. Other modes are cancelled too,
// dropping any in-progress drag.
func (m *Machine) CancelEdit() {
	m.reset()
}

// Key edits the buffer while in ModeEditing and reports whether the key was consumed.
func (m *Machine) Key(k EditKey, r rune) bool {
	if m.mode != ModeEditing {
		return false
	}
	switch k {
	case KeyRune:
		m.buffer.insert(r)
	case KeyNewline:
		m.buffer.insert('\n')
	case KeyBackspace:
		m.buffer.backspace()
	case KeyLeft:
		m.buffer.moveLeft()
	case KeyRight:
		m.buffer.moveRight()
	case KeyDeleteWord:
		m.buffer.deleteWordBackward()
	case KeyDeleteLine:
		m.buffer.deleteToBeginningOfLine()
	default:
		return false
	}
	return true
}

func (m *Machine) reset() {
	*m = Machine{}
}

// EditKey is a text-editing key.
type EditKey int

const (
	KeyRune EditKey = iota
	KeyNewline
	KeyBackspace
	KeyLeft
	KeyRight
	KeyDeleteWord
	KeyDeleteLine
)
