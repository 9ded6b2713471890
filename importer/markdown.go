package importer

import (
	"fmt"
	"strings"

	"wordweb/diagram"
	"wordweb/export"
	"wordweb/layout"
)

// RootSpacing is the horizontal gap between imported top-level bullets.
const RootSpacing = 1200.0

// MarkdownImporter turns a bullet outline into a tree: each bullet becomes a word node,
// nested bullets become its expansion children, and quoted lines under a bullet make it a
// note. Bullets under the frames heading become frames, matched to nodes by text.
type MarkdownImporter struct {
	planner *layout.RadialPlanner
}

// NewMarkdownImporter creates an importer with a deterministic radial layout
func NewMarkdownImporter() *MarkdownImporter {
	return &MarkdownImporter{
		planner: layout.NewRadialPlanner(layout.NewResolver(layout.WithSeed(1))),
	}
}

// CanImport reports whether content contains at least one bullet
func (i *MarkdownImporter) CanImport(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if _, ok := bullet(strings.TrimSpace(line)); ok {
			return true
		}
	}
	return false
}

type outlineItem struct {
	node     diagram.Node
	children []int
}

type frameSpec struct {
	title   string
	members []string
}

// Import parses the outline and lays it out radially
func (i *MarkdownImporter) Import(content string) (*diagram.Graph, error) {
	var (
		items    []outlineItem
		roots    []int
		stack    []int
		frames   []frameSpec
		inFrames bool
	)

	for n, raw := range strings.Split(content, "\n") {
		line := strings.ReplaceAll(raw, "\t", "  ")
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "#"):
			inFrames = strings.EqualFold(trimmed, export.FramesHeading)
			continue
		case strings.HasPrefix(trimmed, ">"):
			if len(items) == 0 || inFrames {
				return nil, fmt.Errorf("line %d: quoted text outside a bullet", n+1)
			}
			last := &items[len(items)-1].node
			text := strings.TrimPrefix(strings.TrimPrefix(trimmed, ">"), " ")
			if last.IsNote() {
				last.Content += "\n" + text
			} else {
				last.Type = diagram.NodeTypeNote
				last.Content = text
				// The exporter titles untitled notes with their first line
				if last.Text == text {
					last.Text = ""
				}
			}
			continue
		}

		text, ok := bullet(trimmed)
		if !ok {
			continue
		}
		if inFrames {
			title, members, _ := strings.Cut(text, ":")
			f := frameSpec{title: strings.TrimSpace(title)}
			for _, m := range strings.Split(members, ",") {
				if m = strings.TrimSpace(m); m != "" {
					f.members = append(f.members, m)
				}
			}
			frames = append(frames, f)
			continue
		}

		depth := min((len(line)-len(strings.TrimLeft(line, " ")))/2, len(stack))
		stack = stack[:depth]
		idx := len(items)
		item := outlineItem{node: diagram.Node{ID: diagram.NewID(), Text: text, Level: depth}}
		if text == export.EmptyNoteLabel {
			item.node.Text = ""
			item.node.Type = diagram.NodeTypeNote
		}
		if depth == 0 {
			roots = append(roots, idx)
		} else {
			parent := stack[depth-1]
			item.node.ParentID = items[parent].node.ID
			items[parent].children = append(items[parent].children, idx)
		}
		items = append(items, item)
		stack = append(stack, idx)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no bullets found")
	}
	return i.build(items, roots, frames), nil
}

// build places roots along the x axis and every child list with the radial planner,
// parents before children.
func (i *MarkdownImporter) build(items []outlineItem, roots []int, frames []frameSpec) *diagram.Graph {
	for n, idx := range roots {
		items[idx].node.X = float64(n) * RootSpacing
	}

	g := diagram.Empty()
	queue := append([]int(nil), roots...)
	for _, idx := range roots {
		g = g.WithNodes(items[idx].node)
	}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		parent, _ := g.Node(items[idx].node.ID)

		kids := items[idx].children
		placements := i.planner.Plan(parent, len(kids), g.Nodes)
		for k, p := range placements {
			child := items[kids[k]].node
			child.X, child.Y = p.Point.X, p.Point.Y
			g = g.WithNodes(child).WithConnections(diagram.Connection{
				ID: diagram.NewID(), From: parent.ID, To: child.ID,
			})
		}
		queue = append(queue, kids...)
	}

	for _, spec := range frames {
		var ids []string
		for _, name := range spec.members {
			if id, ok := findByText(g, name); ok {
				ids = append(ids, id)
			}
		}
		if f, ok := diagram.NewFrame(g, spec.title, ids); ok {
			g = g.WithFrames(f)
		}
	}
	return g
}

// bullet returns the text of a "- " or "* " list item.
func bullet(trimmed string) (string, bool) {
	if trimmed == "-" || trimmed == "*" {
		return "", true
	}
	for _, marker := range []string{"- ", "* "} {
		if rest, ok := strings.CutPrefix(trimmed, marker); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

func findByText(g *diagram.Graph, text string) (string, bool) {
	for _, n := range g.Nodes {
		label := n.Text
		if label == "" && n.IsNote() {
			label, _, _ = strings.Cut(n.Content, "\n")
		}
		if strings.EqualFold(label, text) {
			return n.ID, true
		}
	}
	return "", false
}

// GetFormatName returns the format name
func (i *MarkdownImporter) GetFormatName() string {
	return "Markdown"
}

// GetFileExtensions returns common file extensions
func (i *MarkdownImporter) GetFileExtensions() []string {
	return []string{".md", ".markdown"}
}
