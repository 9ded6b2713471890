package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordweb/diagram"
	"wordweb/export"
	"wordweb/geometry"
	"wordweb/layout"
)

const outline = `# coffee map

- coffee
  - espresso
    - crema
  - morning
* tea
- 
  > buy beans
  > grind fresh

## Frames

- drinks: coffee, Espresso, missing
`

func TestMarkdownImportBuildsTree(t *testing.T) {
	g, err := NewMarkdownImporter().Import(outline)
	require.NoError(t, err)
	require.NoError(t, diagram.Validate(g))
	require.Len(t, g.Nodes, 6)

	byText := map[string]diagram.Node{}
	for _, n := range g.Nodes {
		byText[n.Text] = n
	}
	coffee, espresso, crema := byText["coffee"], byText["espresso"], byText["crema"]

	assert.Equal(t, 0, coffee.Level)
	assert.Equal(t, coffee.ID, espresso.ParentID)
	assert.Equal(t, 2, crema.Level)
	assert.Equal(t, espresso.ID, crema.ParentID)
	assert.Equal(t, 0, byText["tea"].Level)

	note := byText[""]
	assert.True(t, note.IsNote())
	assert.Equal(t, "buy beans\ngrind fresh", note.Content)

	assert.Len(t, g.Connections, 3)
	for _, c := range g.Connections {
		assert.False(t, c.Manual)
	}

	// Roots sit on the x axis, children on the radial ring around their parent
	assert.Equal(t, geometry.Pt(0, 0), coffee.Position())
	assert.Equal(t, geometry.Pt(RootSpacing, 0), byText["tea"].Position())
	assert.InDelta(t, layout.DefaultBaseRadius, geometry.Distance(coffee.Position(), espresso.Position()), 1e-6)

	require.Len(t, g.Frames, 1)
	assert.Equal(t, "drinks", g.Frames[0].Title)
	assert.Equal(t, []string{coffee.ID, espresso.ID}, g.Frames[0].NodeIDs)
}

func TestMarkdownRoundTrip(t *testing.T) {
	src, err := NewMarkdownImporter().Import(outline)
	require.NoError(t, err)

	out, err := export.NewMarkdownExporter().Export(src)
	require.NoError(t, err)
	again, err := NewMarkdownImporter().Import(string(out))
	require.NoError(t, err)

	assert.Equal(t, src.Texts(), again.Texts())
	assert.Len(t, again.Connections, len(src.Connections))
	assert.Len(t, again.Frames, 1)
}

func TestMarkdownRoundTripKeepsNotesUntitled(t *testing.T) {
	src := &diagram.Graph{Nodes: []diagram.Node{
		{ID: "a", Type: diagram.NodeTypeNote, Content: "grind fresh\nevery day"},
		{ID: "b", Type: diagram.NodeTypeNote, X: 400},
	}}
	out, err := export.NewMarkdownExporter().Export(src)
	require.NoError(t, err)

	g, err := NewMarkdownImporter().Import(string(out))
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)
	for _, n := range g.Nodes {
		assert.True(t, n.IsNote())
		assert.Empty(t, n.Text)
	}
	assert.Equal(t, "grind fresh\nevery day", g.Nodes[0].Content)
	assert.Empty(t, g.Nodes[1].Content)
}

func TestMarkdownErrors(t *testing.T) {
	_, err := NewMarkdownImporter().Import("# just a heading\n")
	assert.Error(t, err)

	_, err = NewMarkdownImporter().Import("> orphan quote\n- x\n")
	assert.Error(t, err)
}

func TestMarkdownClampsDeepIndent(t *testing.T) {
	g, err := NewMarkdownImporter().Import("- a\n      - b\n")
	require.NoError(t, err)
	b := g.Nodes[1]
	assert.Equal(t, 1, b.Level, "over-indented bullets attach to the nearest parent")
}

func TestJSONRoundTrip(t *testing.T) {
	g := &diagram.Graph{
		Nodes: []diagram.Node{
			{ID: "root", Text: "coffee", Fill: "#aabbcc"},
			{ID: "a", Text: "espresso", X: 220, Level: 1, ParentID: "root"},
		},
		Connections: []diagram.Connection{{From: "root", To: "a"}},
		Frames:      []diagram.Frame{{ID: "f", Title: "drinks", NodeIDs: []string{"root"}}},
	}
	data, err := export.NewJSONExporter().Export(g)
	require.NoError(t, err)

	got, err := NewJSONImporter().Import(string(data))
	require.NoError(t, err)
	assert.Equal(t, g.Nodes, got.Nodes)
	assert.NotEmpty(t, got.Connections[0].ID, "missing ids are assigned")
	assert.Equal(t, g.Frames, got.Frames)
}

func TestJSONRejects(t *testing.T) {
	tests := map[string]string{
		"newer version": `{"version": 99, "nodes": []}`,
		"invalid graph": `{"version": 1, "nodes": [{"id": "a", "text": "x", "level": 3, "parentId": "b"}, {"id": "b", "text": "y"}]}`,
		"not json":      `{nodes`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewJSONImporter().Import(content)
			assert.Error(t, err)
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewImporterRegistry()
	assert.Equal(t, []string{"JSON", "Markdown"}, r.GetAvailableFormats())

	imp, err := r.DetectFormat(`{"version":1}`)
	require.NoError(t, err)
	assert.Equal(t, "JSON", imp.GetFormatName())

	imp, err = r.DetectFormat(outline)
	require.NoError(t, err)
	assert.Equal(t, "Markdown", imp.GetFormatName())

	_, err = r.DetectFormat("plain prose")
	assert.ErrorIs(t, err, ErrUndetected)

	g, err := r.ImportWithFormat("- a\n", ".md")
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 1)

	_, err = r.ImportWithFormat("- a\n", "d2")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	imp, ok := r.Lookup("MARKDOWN")
	require.True(t, ok)
	assert.Equal(t, "Markdown", imp.GetFormatName())
}

func TestImportHinted(t *testing.T) {
	r := NewImporterRegistry()

	g, err := r.ImportHinted(outline, "txt")
	require.NoError(t, err, "unknown hint falls back to detection")
	assert.NotEmpty(t, g.Nodes)

	g, err = r.ImportHinted(`{"version":1,"nodes":[{"id":"a","text":"coffee"}]}`, "")
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 1)

	_, err = r.ImportHinted("not json", ".json")
	assert.Error(t, err, "a matched importer is not second-guessed")

	_, err = r.ImportHinted("plain prose", "")
	assert.ErrorIs(t, err, ErrUndetected)
}
