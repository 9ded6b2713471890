package editor

import "wordweb/geometry"

// EventKind is the type of a pointer event.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	DoubleClick
	Wheel
)

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
)

// Modifier is a bit set of held keyboard modifiers.
type Modifier int

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// ModSelect holds the modifiers that turn a background drag into a rubber band and make
// the resulting selection additive. Any one of them is enough, since many terminals keep
// Shift+drag for their own text selection.
const ModSelect = ModShift | ModCtrl | ModAlt

// Event is a pointer event in screen coordinates.
type Event struct {
	Kind   EventKind
	Button Button
	Screen geometry.Point
	Mods   Modifier
	// Delta is the wheel amount for Wheel events, positive zooms in.
	Delta float64
}

// Has reports whether any modifier in m is held.
func (e Event) Has(m Modifier) bool {
	return e.Mods&m != 0
}
