package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"wordweb/editor"
)

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestCanvasAction(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"quit", runeKey('q'), ActionQuit},
		{"ctrl-c quits", key(tcell.KeyCtrlC), ActionQuit},
		{"undo", runeKey('u'), ActionUndo},
		{"ctrl-z undoes", key(tcell.KeyCtrlZ), ActionUndo},
		{"redo", key(tcell.KeyCtrlR), ActionRedo},
		{"cluster", runeKey('g'), ActionCluster},
		{"delete key", key(tcell.KeyDelete), ActionDelete},
		{"backspace deletes", key(tcell.KeyBackspace2), ActionDelete},
		{"external edit is upper case", runeKey('E'), ActionExternalEdit},
		{"escape cancels", key(tcell.KeyEscape), ActionCancel},
		{"unbound rune", runeKey('Q'), ActionNone},
		{"unbound key", key(tcell.KeyF5), ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanvasAction(tt.ev))
		})
	}
}

func TestEditAction(t *testing.T) {
	outcome, k, r := EditAction(runeKey('x'))
	assert.Equal(t, EditKeyPress, outcome)
	assert.Equal(t, editor.KeyRune, k)
	assert.Equal(t, 'x', r)

	outcome, k, _ = EditAction(key(tcell.KeyEnter))
	assert.Equal(t, EditKeyPress, outcome)
	assert.Equal(t, editor.KeyNewline, k)

	outcome, k, _ = EditAction(key(tcell.KeyCtrlW))
	assert.Equal(t, EditKeyPress, outcome)
	assert.Equal(t, editor.KeyDeleteWord, k)

	outcome, _, _ = EditAction(key(tcell.KeyEscape))
	assert.Equal(t, EditCommit, outcome)

	outcome, _, _ = EditAction(key(tcell.KeyCtrlG))
	assert.Equal(t, EditCancel, outcome)

	outcome, _, _ = EditAction(key(tcell.KeyF1))
	assert.Equal(t, EditIgnore, outcome)
}

func TestPromptEditing(t *testing.T) {
	var got string
	p := newPrompt("Word", "", func(s string) { got = s })

	for _, r := range "ab" {
		assert.False(t, p.handle(runeKey(r)))
	}
	p.handle(key(tcell.KeyLeft))
	p.handle(runeKey('X'))
	assert.Equal(t, "Word: aXb", p.String())
	assert.Equal(t, 8, p.Cursor())

	p.handle(key(tcell.KeyBackspace2))
	assert.Equal(t, "Word: ab", p.String())

	assert.True(t, p.handle(key(tcell.KeyEnter)))
	assert.Equal(t, "ab", got)
}

func TestPromptEscapeDoesNotSubmit(t *testing.T) {
	called := false
	p := newPrompt("Rename", " old ", func(string) { called = true })
	assert.True(t, p.handle(key(tcell.KeyEscape)))
	assert.False(t, called)
}

func TestPromptTrimsOnSubmit(t *testing.T) {
	var got string
	p := newPrompt("Rename", "  spaced  ", func(s string) { got = s })
	p.handle(key(tcell.KeyEnter))
	assert.Equal(t, "spaced", got)
}

func TestColor(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), color("#ff0000"))
	assert.Equal(t, tcell.ColorDefault, color(""))
	assert.Equal(t, tcell.ColorDefault, color("not a colour"))
}
