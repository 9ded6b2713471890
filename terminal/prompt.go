package terminal

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// prompt is a one-line input shown in the status bar. submit receives the trimmed text
// when Enter is pressed; Escape abandons the prompt.
type prompt struct {
	label  string
	text   []rune
	cursor int
	submit func(text string)
}

func newPrompt(label, initial string, submit func(string)) *prompt {
	text := []rune(initial)
	return &prompt{label: label, text: text, cursor: len(text), submit: submit}
}

// String returns the prompt line as displayed.
func (p *prompt) String() string {
	return p.label + ": " + string(p.text)
}

// Cursor returns the display column of the cursor within String.
func (p *prompt) Cursor() int {
	return runewidth.StringWidth(p.label + ": " + string(p.text[:p.cursor]))
}

// handle applies a key and reports whether the prompt is finished.
func (p *prompt) handle(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter:
		p.submit(strings.TrimSpace(string(p.text)))
		return true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if p.cursor > 0 {
			p.text = append(p.text[:p.cursor-1], p.text[p.cursor:]...)
			p.cursor--
		}
	case tcell.KeyLeft:
		if p.cursor > 0 {
			p.cursor--
		}
	case tcell.KeyRight:
		if p.cursor < len(p.text) {
			p.cursor++
		}
	case tcell.KeyCtrlA, tcell.KeyHome:
		p.cursor = 0
	case tcell.KeyCtrlE, tcell.KeyEnd:
		p.cursor = len(p.text)
	case tcell.KeyCtrlU:
		p.text = p.text[p.cursor:]
		p.cursor = 0
	case tcell.KeyRune:
		p.text = append(p.text[:p.cursor], append([]rune{ev.Rune()}, p.text[p.cursor:]...)...)
		p.cursor++
	}
	return false
}
