package diagram

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// NormalizeFill parses a hex colour ("#abc" or "#aabbcc") and returns it in the canonical
// lower-case six digit form. The empty string means "no fill" and is returned unchanged.
func NormalizeFill(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("invalid fill color %q: %w", s, err)
	}
	return c.Hex(), nil
}

// Palette returns n visually distinct fill colours, evenly spaced in hue.
// The result is deterministic so that re-running a clustering yields the same colours.
func Palette(n int) []string {
	if n <= 0 {
		return nil
	}
	colors := make([]string, n)
	for i := range colors {
		hue := 360 * float64(i) / float64(n)
		colors[i] = colorful.Hcl(hue, 0.45, 0.82).Clamped().Hex()
	}
	return colors
}

// FillRGB returns the 8-bit components of a fill, or ok=false when it is empty or invalid.
func FillRGB(fill string) (r, g, b uint8, ok bool) {
	if fill == "" {
		return 0, 0, 0, false
	}
	c, err := colorful.Hex(fill)
	if err != nil {
		return 0, 0, 0, false
	}
	r, g, b = c.RGB255()
	return r, g, b, true
}
