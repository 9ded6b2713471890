package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"wordweb/canvas"
	"wordweb/editor"
)

const (
	// DoubleClickInterval is the longest gap between two primary clicks on the same cell
	// that still counts as a double click.
	DoubleClickInterval = 400 * time.Millisecond
	// WheelStep is the zoom delta of one wheel notch. At the default zoom speed a notch
	// changes the scale by 0.1.
	WheelStep = 100.0
)

// Pointer turns tcell mouse reports into editor pointer events. tcell only reports the
// current button state, so presses and releases are found by comparing each report with
// the previous one.
type Pointer struct {
	cells canvas.CellSize
	now   func() time.Time

	held       editor.Button
	cellX      int
	cellY      int
	seen       bool
	lastClick  time.Time
	clickX     int
	clickY     int
	clickArmed bool
}

// NewPointer creates a translator for cells of the given pixel size.
func NewPointer(cells canvas.CellSize) *Pointer {
	if cells.W <= 0 || cells.H <= 0 {
		cells = canvas.DefaultCellSize
	}
	return &Pointer{cells: cells, now: time.Now}
}

// Held returns the button currently down, or ButtonNone.
func (p *Pointer) Held() editor.Button {
	return p.held
}

// Translate returns the editor events described by one mouse report, in order.
func (p *Pointer) Translate(ev *tcell.EventMouse) []editor.Event {
	x, y := ev.Position()
	base := editor.Event{Screen: p.cells.ToScreen(x, y), Mods: modifiers(ev.Modifiers())}
	buttons := ev.Buttons()

	if buttons&(tcell.WheelUp|tcell.WheelDown) != 0 {
		wheel := base
		wheel.Kind = editor.Wheel
		wheel.Delta = WheelStep
		if buttons&tcell.WheelDown != 0 {
			wheel.Delta = -WheelStep
		}
		return []editor.Event{wheel}
	}

	button := buttonOf(buttons)
	moved := !p.seen || x != p.cellX || y != p.cellY
	p.cellX, p.cellY, p.seen = x, y, true

	var out []editor.Event
	emit := func(kind editor.EventKind, b editor.Button) {
		e := base
		e.Kind, e.Button = kind, b
		out = append(out, e)
	}

	switch {
	case p.held == button:
		if moved {
			emit(editor.PointerMove, p.held)
		}
	case p.held == editor.ButtonNone:
		p.held = button
		emit(editor.PointerDown, button)
	default:
		// Released, or switched straight to another button
		released := p.held
		p.held = editor.ButtonNone
		emit(editor.PointerUp, released)
		if released == editor.ButtonPrimary && p.isDoubleClick(x, y) {
			emit(editor.DoubleClick, editor.ButtonPrimary)
		}
		if button != editor.ButtonNone {
			p.held = button
			emit(editor.PointerDown, button)
		}
	}
	return out
}

// isDoubleClick records a primary click at (x, y) and reports whether it completes a
// double click. A completed double click does not arm the next one.
func (p *Pointer) isDoubleClick(x, y int) bool {
	now := p.now()
	double := p.clickArmed && x == p.clickX && y == p.clickY && now.Sub(p.lastClick) <= DoubleClickInterval
	p.clickArmed = !double
	p.lastClick, p.clickX, p.clickY = now, x, y
	return double
}

func buttonOf(b tcell.ButtonMask) editor.Button {
	switch {
	case b&tcell.Button1 != 0:
		return editor.ButtonPrimary
	case b&tcell.Button2 != 0:
		return editor.ButtonSecondary
	default:
		return editor.ButtonNone
	}
}

func modifiers(m tcell.ModMask) editor.Modifier {
	var out editor.Modifier
	if m&tcell.ModShift != 0 {
		out |= editor.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= editor.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= editor.ModAlt
	}
	return out
}
