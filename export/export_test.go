package export_test

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordweb/diagram"
	"wordweb/export"
)

func sampleGraph() *diagram.Graph {
	return &diagram.Graph{
		Nodes: []diagram.Node{
			{ID: "root", Text: "coffee", Fill: "#aabbcc"},
			{ID: "a", Text: "espresso", X: 220, Level: 1, ParentID: "root"},
			{ID: "b", Text: "morning", X: -220, Level: 1, ParentID: "root"},
			{ID: "c", Text: "crema", X: 440, Level: 2, ParentID: "a"},
			{ID: "note", Type: diagram.NodeTypeNote, Content: "buy beans\ngrind fresh", Y: 300},
		},
		Connections: []diagram.Connection{
			{ID: "c1", From: "root", To: "a"},
			{ID: "c2", From: "root", To: "b", Label: "daily"},
			{ID: "c3", From: "a", To: "c"},
			{ID: "c4", From: "note", To: "b", Manual: true},
			{ID: "c5", From: "note", To: "ghost"},
		},
		Frames: []diagram.Frame{
			{ID: "f1", Title: "drinks", X: -100, Y: -100, Width: 420, Height: 200, NodeIDs: []string{"root", "a", "ghost"}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected export.Format
		wantErr  bool
	}{
		{"json", export.FormatJSON, false},
		{".json", export.FormatJSON, false},
		{"md", export.FormatMarkdown, false},
		{"outline", export.FormatMarkdown, false},
		{"mermaid", export.FormatMermaid, false},
		{"MMD", export.FormatMermaid, false},
		{"dot", export.FormatGraphviz, false},
		{"svg", export.FormatSVG, false},
		{"png", export.FormatPNG, false},
		{"txt", export.FormatASCII, false},
		{"plantuml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := export.ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEveryFormatHasExporterAndDescription(t *testing.T) {
	descriptions := export.GetFormatDescriptions()
	for _, format := range export.GetAvailableFormats() {
		t.Run(string(format), func(t *testing.T) {
			exporter, err := export.NewExporter(format)
			require.NoError(t, err)
			assert.NotEmpty(t, exporter.GetFormatName())
			assert.True(t, strings.HasPrefix(exporter.GetFileExtension(), "."))
			assert.NotEmpty(t, descriptions[format])

			out, err := exporter.Export(sampleGraph())
			require.NoError(t, err)
			assert.NotEmpty(t, out)
		})
	}

	_, err := export.NewExporter("d2")
	assert.Error(t, err)
}

func TestJSONDocument(t *testing.T) {
	out, err := export.NewJSONExporter().Export(sampleGraph())
	require.NoError(t, err)

	var doc export.Document
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, export.DocumentVersion, doc.Version)
	assert.Len(t, doc.Nodes, 5)
	assert.Len(t, doc.Connections, 5)
	assert.Equal(t, []string{"root", "a", "ghost"}, doc.Frames[0].NodeIDs)
	assert.Equal(t, sampleGraph().Nodes, doc.Graph().Nodes)

	empty, err := export.NewJSONExporter().Export(diagram.Empty())
	require.NoError(t, err)
	assert.Contains(t, string(empty), `"nodes": []`)
}

func TestMarkdownOutline(t *testing.T) {
	out, err := export.NewMarkdownExporter().Export(sampleGraph())
	require.NoError(t, err)

	want := `# wordweb

- coffee
  - espresso
    - crema
  - morning
- buy beans
  > buy beans
  > grind fresh

## Frames

- drinks: coffee, espresso
`
	assert.Equal(t, want, string(out))
}

func TestMarkdownNotes(t *testing.T) {
	g := &diagram.Graph{Nodes: []diagram.Node{
		{ID: "n1", Type: diagram.NodeTypeNote, Content: "grind fresh\nevery day"},
		{ID: "n2", Type: diagram.NodeTypeNote},
		{ID: "n3", Type: diagram.NodeTypeNote, Text: "titled", Content: "body"},
	}}
	out, err := export.NewMarkdownExporter().Export(g)
	require.NoError(t, err)

	want := `# wordweb

- grind fresh
  > grind fresh
  > every day
- (empty note)
- titled
  > body
`
	assert.Equal(t, want, string(out))
	assert.NotContains(t, string(out), "> \n")
}

func TestMarkdownPromotesOrphans(t *testing.T) {
	g := &diagram.Graph{Nodes: []diagram.Node{
		{ID: "x", Text: "lonely", Level: 1, ParentID: "deleted"},
	}}
	e := &export.MarkdownExporter{}
	out, err := e.Export(g)
	require.NoError(t, err)
	assert.Equal(t, "- lonely\n", string(out))
}

func TestMermaid(t *testing.T) {
	out, err := export.NewMermaidExporter().Export(sampleGraph())
	require.NoError(t, err)
	s := string(out)

	assert.True(t, strings.HasPrefix(s, "flowchart LR\n"))
	assert.Contains(t, s, `    N1(("coffee"))`)
	assert.Contains(t, s, `    N5["buy beans"]`)
	assert.Contains(t, s, "    N1 --- N2\n")
	assert.Contains(t, s, "    N1 ---|daily| N3\n")
	assert.Contains(t, s, "    N5 -.- N3\n")
	assert.NotContains(t, s, "ghost")
	assert.Contains(t, s, "subgraph F1[\"drinks\"]\n        N1\n        N2\n    end")
	assert.Contains(t, s, "style N1 fill:#aabbcc")

	_, err = export.NewMermaidExporter().Export(diagram.Empty())
	assert.ErrorIs(t, err, export.ErrEmptyGraph)
}

func TestGraphviz(t *testing.T) {
	out, err := export.NewGraphvizExporter().Export(sampleGraph())
	require.NoError(t, err)
	s := string(out)

	assert.True(t, strings.HasPrefix(s, "graph G {\n"))
	assert.Contains(t, s, `  N1 [label="coffee", pos="0,0!", fillcolor="#aabbcc"];`)
	assert.Contains(t, s, `  N2 [label="espresso", pos="110,0!"];`)
	assert.Contains(t, s, `  N5 [label="buy beans", pos="0,-150!", shape=note];`)
	assert.Contains(t, s, "  N1 -- N3 [label=\"daily\"];\n")
	assert.Contains(t, s, "  N5 -- N3 [style=dashed];\n")
	assert.NotContains(t, s, "ghost")
	assert.Contains(t, s, "subgraph cluster_1 {\n    label=\"drinks\";\n    N1;\n    N2;\n  }")
	assert.True(t, strings.HasSuffix(s, "}\n"))

	_, err = export.NewGraphvizExporter().Export(diagram.Empty())
	assert.ErrorIs(t, err, export.ErrEmptyGraph)
}

func TestSVG(t *testing.T) {
	out, err := export.NewSVGExporter().Export(sampleGraph())
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "<svg")
	assert.Equal(t, 4, strings.Count(s, "<circle"))
	assert.Contains(t, s, "espresso")
	assert.Contains(t, s, "fill:#aabbcc")
	assert.Contains(t, s, "stroke-dasharray:6,4", "manual connections are dashed")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(s), "</svg>"))

	_, err = export.NewSVGExporter().Export(diagram.Empty())
	assert.ErrorIs(t, err, export.ErrEmptyGraph)
}

func TestPNG(t *testing.T) {
	g := &diagram.Graph{Nodes: []diagram.Node{
		{ID: "root", Text: "coffee"},
		{ID: "a", Text: "espresso", X: 220, Level: 1, ParentID: "root"},
	}}
	out, err := export.NewPNGExporter().Export(g)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	// root spans -60..60, a spans 175..265, plus the margin on both sides
	assert.Equal(t, 325+2*int(export.Margin), img.Bounds().Dx())
	assert.Equal(t, 120+2*int(export.Margin), img.Bounds().Dy())
}

func TestPNGIsCapped(t *testing.T) {
	g := &diagram.Graph{Nodes: []diagram.Node{
		{ID: "a", Text: "far"},
		{ID: "b", Text: "away", X: 40000},
	}}
	out, err := export.NewPNGExporter().Export(g)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), export.MaxImageSide)
}

func TestASCII(t *testing.T) {
	out, err := export.NewASCIIExporter().Export(sampleGraph())
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "(coffee)")
	assert.Contains(t, s, "drinks")
	for _, line := range strings.Split(s, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 161)
	}
}
