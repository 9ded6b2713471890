package export

import (
	"github.com/goccy/go-json"

	"wordweb/diagram"
)

// DocumentVersion is written into every JSON export.
const DocumentVersion = 1

// Document is the on-disk form of a graph.
type Document struct {
	Version     int                  `json:"version"`
	Nodes       []diagram.Node       `json:"nodes"`
	Connections []diagram.Connection `json:"connections"`
	Frames      []diagram.Frame      `json:"frames"`
}

// NewDocument wraps g for serialisation. Nil slices are written as empty arrays.
func NewDocument(g *diagram.Graph) Document {
	if g == nil {
		g = diagram.Empty()
	}
	doc := Document{Version: DocumentVersion, Nodes: g.Nodes, Connections: g.Connections, Frames: g.Frames}
	if doc.Nodes == nil {
		doc.Nodes = []diagram.Node{}
	}
	if doc.Connections == nil {
		doc.Connections = []diagram.Connection{}
	}
	if doc.Frames == nil {
		doc.Frames = []diagram.Frame{}
	}
	return doc
}

// Graph returns the document content as a graph.
func (d Document) Graph() *diagram.Graph {
	return &diagram.Graph{Nodes: d.Nodes, Connections: d.Connections, Frames: d.Frames}
}

// JSONExporter exports graphs to the versioned JSON document
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts a graph to JSON
func (e *JSONExporter) Export(g *diagram.Graph) ([]byte, error) {
	data, err := json.MarshalIndent(NewDocument(g), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// GetFileExtension returns the file extension for JSON
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}
