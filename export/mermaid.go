package export

import (
	"fmt"
	"strings"

	"wordweb/diagram"
)

// MermaidExporter exports graphs to Mermaid flowchart syntax
type MermaidExporter struct{}

// NewMermaidExporter creates a new Mermaid exporter
func NewMermaidExporter() *MermaidExporter {
	return &MermaidExporter{}
}

// Export converts the graph to Mermaid syntax. Node ids are renumbered N1, N2... in graph
// order since stored ids are not valid Mermaid identifiers.
func (e *MermaidExporter) Export(g *diagram.Graph) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("graph is nil")
	}
	if len(g.Nodes) == 0 {
		return nil, ErrEmptyGraph
	}

	var sb strings.Builder
	sb.WriteString("flowchart LR\n")

	nodeMap := make(map[string]string, len(g.Nodes))
	for i, n := range g.Nodes {
		id := fmt.Sprintf("N%d", i+1)
		nodeMap[n.ID] = id
		sb.WriteString(fmt.Sprintf("    %s%s\n", id, e.shape(n)))
	}

	if len(g.Connections) > 0 {
		sb.WriteString("\n")
	}
	for _, conn := range g.Connections {
		fromID, ok := nodeMap[conn.From]
		if !ok {
			continue
		}
		toID, ok := nodeMap[conn.To]
		if !ok {
			continue
		}

		// Expansions are undirected links, manual connections are dotted
		style := "---"
		if conn.Manual {
			style = "-.-"
		}
		if conn.Label != "" {
			sb.WriteString(fmt.Sprintf("    %s %s|%s| %s\n", fromID, style, e.escapeLabel(conn.Label), toID))
		} else {
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", fromID, style, toID))
		}
	}

	for i, f := range g.Frames {
		var members []string
		for _, m := range g.Members(f) {
			members = append(members, nodeMap[m.ID])
		}
		if len(members) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n    subgraph F%d[\"%s\"]\n", i+1, e.escapeLabel(f.Title)))
		for _, id := range members {
			sb.WriteString(fmt.Sprintf("        %s\n", id))
		}
		sb.WriteString("    end\n")
	}

	var styles []string
	for _, n := range g.Nodes {
		if n.Fill != "" {
			styles = append(styles, fmt.Sprintf("    style %s fill:%s", nodeMap[n.ID], n.Fill))
		}
	}
	if len(styles) > 0 {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(styles, "\n"))
		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}

// shape renders word nodes as circles and notes as rectangles.
func (e *MermaidExporter) shape(n diagram.Node) string {
	text := e.escapeLabel(label(n))
	if n.IsNote() {
		return fmt.Sprintf("[\"%s\"]", text)
	}
	return fmt.Sprintf("((\"%s\"))", text)
}

// escapeLabel makes text safe inside a quoted Mermaid label
func (e *MermaidExporter) escapeLabel(label string) string {
	label = strings.ReplaceAll(label, `"`, "#quot;")
	label = strings.ReplaceAll(label, "|", "#124;")
	label = strings.ReplaceAll(label, "\n", "<br/>")
	return label
}

// GetFileExtension returns the recommended file extension
func (e *MermaidExporter) GetFileExtension() string {
	return ".mmd"
}

// GetFormatName returns the format name
func (e *MermaidExporter) GetFormatName() string {
	return "Mermaid"
}
