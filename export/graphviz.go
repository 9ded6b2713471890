package export

import (
	"fmt"
	"strings"

	"wordweb/diagram"
)

// GraphvizExporter exports graphs to Graphviz DOT syntax. Nodes are pinned at their canvas
// positions so `neato -n` reproduces the layout.
type GraphvizExporter struct{}

// NewGraphvizExporter creates a new Graphviz exporter
func NewGraphvizExporter() *GraphvizExporter {
	return &GraphvizExporter{}
}

// dotScale converts world units to DOT points.
const dotScale = 0.5

// Export converts the graph to Graphviz DOT syntax
func (e *GraphvizExporter) Export(g *diagram.Graph) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("graph is nil")
	}
	if len(g.Nodes) == 0 {
		return nil, ErrEmptyGraph
	}

	var sb strings.Builder
	sb.WriteString("graph G {\n")
	sb.WriteString("  layout=neato;\n")
	sb.WriteString("  node [shape=ellipse, style=filled, fillcolor=\"#ecf0f1\"];\n\n")

	nodeMap := make(map[string]string, len(g.Nodes))
	for i, n := range g.Nodes {
		id := fmt.Sprintf("N%d", i+1)
		nodeMap[n.ID] = id
		sb.WriteString(fmt.Sprintf("  %s [%s];\n", id, strings.Join(e.nodeAttributes(n), ", ")))
	}

	if len(g.Connections) > 0 {
		sb.WriteString("\n")
	}
	for _, conn := range g.Connections {
		fromID, ok1 := nodeMap[conn.From]
		toID, ok2 := nodeMap[conn.To]
		if !ok1 || !ok2 {
			continue
		}
		var attrs []string
		if conn.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=\"%s\"", e.escapeLabel(conn.Label)))
		}
		if conn.Manual {
			attrs = append(attrs, "style=dashed")
		}
		if len(attrs) > 0 {
			sb.WriteString(fmt.Sprintf("  %s -- %s [%s];\n", fromID, toID, strings.Join(attrs, ", ")))
		} else {
			sb.WriteString(fmt.Sprintf("  %s -- %s;\n", fromID, toID))
		}
	}

	for i, f := range g.Frames {
		members := g.Members(f)
		if len(members) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n  subgraph cluster_%d {\n", i+1))
		sb.WriteString(fmt.Sprintf("    label=\"%s\";\n", e.escapeLabel(f.Title)))
		for _, m := range members {
			sb.WriteString(fmt.Sprintf("    %s;\n", nodeMap[m.ID]))
		}
		sb.WriteString("  }\n")
	}

	sb.WriteString("}\n")
	return []byte(sb.String()), nil
}

func (e *GraphvizExporter) nodeAttributes(n diagram.Node) []string {
	// DOT's y axis points up
	attrs := []string{
		fmt.Sprintf("label=\"%s\"", e.escapeLabel(label(n))),
		fmt.Sprintf("pos=\"%.0f,%.0f!\"", n.X*dotScale, 0-n.Y*dotScale),
	}
	if n.IsNote() {
		attrs = append(attrs, "shape=note")
	}
	if n.Fill != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=\"%s\"", n.Fill))
	}
	return attrs
}

// escapeLabel escapes special characters in labels
func (e *GraphvizExporter) escapeLabel(label string) string {
	label = strings.ReplaceAll(label, `\`, `\\`)
	label = strings.ReplaceAll(label, `"`, `\"`)
	label = strings.ReplaceAll(label, "\n", `\n`)
	return label
}

// GetFileExtension returns the recommended file extension
func (e *GraphvizExporter) GetFileExtension() string {
	return ".dot"
}

// GetFormatName returns the format name
func (e *GraphvizExporter) GetFormatName() string {
	return "Graphviz"
}
