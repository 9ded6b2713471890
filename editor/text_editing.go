package editor

// textBuffer is the rune buffer of a note being edited, with a cursor.
type textBuffer struct {
	runes  []rune
	cursor int
}

func newTextBuffer(s string) *textBuffer {
	r := []rune(s)
	return &textBuffer{runes: r, cursor: len(r)}
}

func (b *textBuffer) String() string {
	return string(b.runes)
}

// insert adds r at the cursor
func (b *textBuffer) insert(r rune) {
	b.runes = append(b.runes, 0)
	copy(b.runes[b.cursor+1:], b.runes[b.cursor:])
	b.runes[b.cursor] = r
	b.cursor++
}

// backspace deletes the rune before the cursor
func (b *textBuffer) backspace() {
	if b.cursor == 0 {
		return
	}
	b.runes = append(b.runes[:b.cursor-1], b.runes[b.cursor:]...)
	b.cursor--
}

func (b *textBuffer) moveLeft() {
	if b.cursor > 0 {
		b.cursor--
	}
}

func (b *textBuffer) moveRight() {
	if b.cursor < len(b.runes) {
		b.cursor++
	}
}

// deleteWordBackward deletes the previous word (Ctrl+W)
func (b *textBuffer) deleteWordBackward() {
	if b.cursor == 0 {
		return
	}
	start := b.cursor - 1

	// Skip trailing spaces, then the word itself
	for start >= 0 && b.runes[start] == ' ' {
		start--
	}
	for start >= 0 && b.runes[start] != ' ' && b.runes[start] != '\n' {
		start--
	}
	start++

	b.runes = append(b.runes[:start], b.runes[b.cursor:]...)
	b.cursor = start
}

// deleteToBeginningOfLine deletes from the cursor back to the start of its line (Ctrl+U)
func (b *textBuffer) deleteToBeginningOfLine() {
	lineStart := b.cursor
	for lineStart > 0 && b.runes[lineStart-1] != '\n' {
		lineStart--
	}
	b.runes = append(b.runes[:lineStart], b.runes[b.cursor:]...)
	b.cursor = lineStart
}
