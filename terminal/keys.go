package terminal

import (
	"github.com/gdamore/tcell/v2"

	"wordweb/editor"
)

// Action is a keyboard command of the canvas.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionUndo
	ActionRedo
	ActionAddNode
	ActionAddNote
	ActionExpand
	ActionExtract
	ActionCluster
	ActionFrame
	ActionRename
	ActionColor
	ActionDelete
	ActionSnapshot
	ActionSave
	ActionCopyOutline
	ActionExternalEdit
	ActionCenter
	ActionResetView
	ActionHelp
	ActionCancel
)

var runeActions = map[rune]Action{
	'q': ActionQuit,
	'u': ActionUndo,
	'a': ActionAddNode,
	'n': ActionAddNote,
	'x': ActionExpand,
	't': ActionExtract,
	'g': ActionCluster,
	'f': ActionFrame,
	'r': ActionRename,
	'c': ActionColor,
	'd': ActionDelete,
	's': ActionSnapshot,
	'y': ActionCopyOutline,
	'E': ActionExternalEdit,
	'z': ActionCenter,
	'0': ActionResetView,
	'?': ActionHelp,
}

var keyActions = map[tcell.Key]Action{
	tcell.KeyCtrlC:     ActionQuit,
	tcell.KeyCtrlZ:     ActionUndo,
	tcell.KeyCtrlR:     ActionRedo,
	tcell.KeyCtrlY:     ActionRedo,
	tcell.KeyCtrlS:     ActionSave,
	tcell.KeyDelete:    ActionDelete,
	tcell.KeyBackspace: ActionDelete,
	tcell.KeyEscape:    ActionCancel,
}

// CanvasAction maps a key press outside note editing to an Action.
func CanvasAction(ev *tcell.EventKey) Action {
	if ev.Key() == tcell.KeyRune {
		return runeActions[ev.Rune()]
	}
	if ev.Key() == tcell.KeyBackspace2 {
		return ActionDelete
	}
	return keyActions[ev.Key()]
}

// EditOutcome says what a key press during note editing does.
type EditOutcome int

const (
	EditIgnore EditOutcome = iota
	EditKeyPress
	EditCommit
	EditCancel
)

// EditAction maps a key press during note editing. Escape commits the buffer and
// Ctrl+G discards it; the other handled keys become an editor key.
func EditAction(ev *tcell.EventKey) (EditOutcome, editor.EditKey, rune) {
	switch ev.Key() {
	case tcell.KeyRune:
		return EditKeyPress, editor.KeyRune, ev.Rune()
	case tcell.KeyEnter:
		return EditKeyPress, editor.KeyNewline, 0
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return EditKeyPress, editor.KeyBackspace, 0
	case tcell.KeyLeft:
		return EditKeyPress, editor.KeyLeft, 0
	case tcell.KeyRight:
		return EditKeyPress, editor.KeyRight, 0
	case tcell.KeyCtrlW:
		return EditKeyPress, editor.KeyDeleteWord, 0
	case tcell.KeyCtrlU:
		return EditKeyPress, editor.KeyDeleteLine, 0
	case tcell.KeyEscape:
		return EditCommit, 0, 0
	case tcell.KeyCtrlG:
		return EditCancel, 0, 0
	}
	return EditIgnore, 0, 0
}
