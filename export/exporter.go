// Package export writes graphs to file formats: structured JSON, Markdown outline, Mermaid,
// Graphviz, SVG, PNG and terminal art.
package export

import (
	"errors"
	"fmt"
	"strings"

	"wordweb/diagram"
	"wordweb/geometry"
)

// Format represents an export format
type Format string

const (
	// FormatJSON is the versioned structured snapshot, readable by the importer
	FormatJSON Format = "json"
	// FormatMarkdown is a nested bullet outline following parent links
	FormatMarkdown Format = "markdown"
	// FormatMermaid exports to Mermaid flowchart syntax
	FormatMermaid Format = "mermaid"
	// FormatGraphviz exports to Graphviz DOT with pinned positions
	FormatGraphviz Format = "graphviz"
	// FormatSVG is a vector image of the canvas
	FormatSVG Format = "svg"
	// FormatPNG is a raster image of the canvas
	FormatPNG Format = "png"
	// FormatASCII is the terminal rendering as plain text
	FormatASCII Format = "ascii"
)

// ErrEmptyGraph is returned by formats that cannot represent a graph without nodes.
var ErrEmptyGraph = errors.New("graph has no nodes")

// Exporter interface for different export formats
type Exporter interface {
	// Export converts a graph to the target format
	Export(g *diagram.Graph) ([]byte, error)
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatMarkdown:
		return NewMarkdownExporter(), nil
	case FormatMermaid:
		return NewMermaidExporter(), nil
	case FormatGraphviz:
		return NewGraphvizExporter(), nil
	case FormatSVG:
		return NewSVGExporter(), nil
	case FormatPNG:
		return NewPNGExporter(), nil
	case FormatASCII:
		return NewASCIIExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "markdown", "md", "outline":
		return FormatMarkdown, nil
	case "mermaid", "mmd":
		return FormatMermaid, nil
	case "graphviz", "dot", "gv":
		return FormatGraphviz, nil
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "ascii", "text", "txt":
		return FormatASCII, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatJSON,
		FormatMarkdown,
		FormatMermaid,
		FormatGraphviz,
		FormatSVG,
		FormatPNG,
		FormatASCII,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatJSON:     "Structured snapshot (wordweb native, re-importable)",
		FormatMarkdown: "Nested bullet outline following expansions",
		FormatMermaid:  "Mermaid flowchart syntax (for Markdown)",
		FormatGraphviz: "Graphviz DOT with canvas positions (render with neato -n)",
		FormatSVG:      "Vector image of the canvas",
		FormatPNG:      "Raster image of the canvas",
		FormatASCII:    "Unicode terminal rendering",
	}
}

// Margin is the blank border around image exports, in world units.
const Margin = 40.0

// bounds returns the world extent of every node and frame, plus Margin.
func bounds(g *diagram.Graph) (geometry.Rect, error) {
	if g == nil || len(g.Nodes) == 0 {
		return geometry.Rect{}, ErrEmptyGraph
	}
	rects := make([]geometry.Rect, 0, len(g.Nodes)+len(g.Frames))
	for _, n := range g.Nodes {
		rects = append(rects, n.Bounds())
	}
	for _, f := range g.Frames {
		rects = append(rects, f.Rect())
	}
	box, _ := geometry.BoundingBox(rects)
	return box.Expand(Margin), nil
}

// segments returns the drawable connections with both endpoints present.
func segments(g *diagram.Graph) []segment {
	var out []segment
	for _, c := range g.Connections {
		from, ok1 := g.Node(c.From)
		to, ok2 := g.Node(c.To)
		if ok1 && ok2 {
			out = append(out, segment{conn: c, from: from.Position(), to: to.Position()})
		}
	}
	return out
}

type segment struct {
	conn     diagram.Connection
	from, to geometry.Point
}

// label returns the text shown for a node: its text, or a note's first content line.
func label(n diagram.Node) string {
	if n.Text != "" || !n.IsNote() {
		return n.Text
	}
	first, _, _ := strings.Cut(strings.TrimSpace(n.Content), "\n")
	return first
}
