package editor

// Mode is the current interaction state of the canvas
type Mode int

const (
	ModeIdle       Mode = iota // Nothing in progress
	ModePanning                // Dragging the view
	ModeConnecting             // Dragging a new connection from a node's handle
	ModeSelecting              // Dragging a rubber band
	ModeEditing                // Editing a note's content
)

// String returns the mode name for display
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "IDLE"
	case ModePanning:
		return "PAN"
	case ModeConnecting:
		return "CONNECT"
	case ModeSelecting:
		return "SELECT"
	case ModeEditing:
		return "EDIT"
	default:
		return "UNKNOWN"
	}
}
