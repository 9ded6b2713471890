package canvas

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// MeasureText returns the display width of a string in terminal cells.
func MeasureText(text string) int {
	return runewidth.StringWidth(text)
}

// WrapText wraps text to fit within maxWidth cells at word boundaries. Words longer than
// the line are broken at character boundaries. Explicit newlines start a new line.
func WrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var line strings.Builder
		width := 0
		for _, word := range words {
			ww := runewidth.StringWidth(word)
			if width > 0 && width+1+ww <= maxWidth {
				line.WriteByte(' ')
				line.WriteString(word)
				width += 1 + ww
				continue
			}
			if width > 0 {
				lines = append(lines, line.String())
				line.Reset()
				width = 0
			}
			for ww > maxWidth {
				head := runewidth.Truncate(word, maxWidth, "")
				if head == "" {
					// A single rune wider than the line
					head = string([]rune(word)[:1])
				}
				lines = append(lines, head)
				word = word[len(head):]
				ww = runewidth.StringWidth(word)
			}
			line.WriteString(word)
			width = ww
		}
		lines = append(lines, line.String())
	}
	return lines
}

// FitText truncates text to maxWidth cells, ending with ellipsis when cut.
func FitText(text string, maxWidth int, ellipsis string) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}
	if runewidth.StringWidth(ellipsis) >= maxWidth {
		return runewidth.Truncate(text, maxWidth, "")
	}
	return runewidth.Truncate(text, maxWidth, ellipsis)
}
