package export

import (
	"fmt"
	"strings"

	"wordweb/diagram"
)

// FramesHeading introduces the frame list at the end of an outline.
const FramesHeading = "## Frames"

// EmptyNoteLabel is the bullet written for a note with neither text nor content.
const EmptyNoteLabel = "(empty note)"

// MarkdownExporter writes the graph as a bullet outline. Each node appears under its
// parent; nodes whose parent is missing start a new top-level bullet. Note content
// follows its bullet as quoted lines. Frames are listed in a closing section.
type MarkdownExporter struct {
	Title string
}

// NewMarkdownExporter creates a new Markdown exporter
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{Title: "wordweb"}
}

// Export converts the graph to a Markdown outline
func (e *MarkdownExporter) Export(g *diagram.Graph) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("graph is nil")
	}

	var sb strings.Builder
	if e.Title != "" {
		fmt.Fprintf(&sb, "# %s\n\n", e.Title)
	}

	children := make(map[string][]diagram.Node)
	var roots []diagram.Node
	for _, n := range g.Nodes {
		if n.ParentID != "" && g.HasNode(n.ParentID) {
			children[n.ParentID] = append(children[n.ParentID], n)
		} else {
			roots = append(roots, n)
		}
	}

	visited := make(map[string]bool, len(g.Nodes))
	var walk func(n diagram.Node, depth int)
	walk = func(n diagram.Node, depth int) {
		if visited[n.ID] {
			return
		}
		visited[n.ID] = true

		indent := strings.Repeat("  ", depth)
		text := label(n)
		if text == "" && n.IsNote() {
			text = EmptyNoteLabel
		}
		fmt.Fprintf(&sb, "%s- %s\n", indent, text)
		if n.IsNote() && n.Content != "" {
			for _, line := range strings.Split(n.Content, "\n") {
				fmt.Fprintf(&sb, "%s  > %s\n", indent, line)
			}
		}
		for _, c := range children[n.ID] {
			walk(c, depth+1)
		}
	}
	for _, r := range roots {
		walk(r, 0)
	}

	if len(g.Frames) > 0 {
		fmt.Fprintf(&sb, "\n%s\n\n", FramesHeading)
		for _, f := range g.Frames {
			var names []string
			for _, m := range g.Members(f) {
				names = append(names, label(m))
			}
			fmt.Fprintf(&sb, "- %s: %s\n", f.Title, strings.Join(names, ", "))
		}
	}
	return []byte(sb.String()), nil
}

// GetFileExtension returns the recommended file extension
func (e *MarkdownExporter) GetFileExtension() string {
	return ".md"
}

// GetFormatName returns the format name
func (e *MarkdownExporter) GetFormatName() string {
	return "Markdown outline"
}
