package importer

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"wordweb/diagram"
	"wordweb/export"
)

// JSONImporter reads the versioned JSON document written by the JSON exporter
type JSONImporter struct{}

// NewJSONImporter creates a new JSON importer
func NewJSONImporter() *JSONImporter {
	return &JSONImporter{}
}

// CanImport reports whether content looks like a JSON object
func (i *JSONImporter) CanImport(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), "{")
}

// Import parses and validates a JSON document. Missing or duplicate ids are replaced;
// documents from a newer version are rejected.
func (i *JSONImporter) Import(content string) (*diagram.Graph, error) {
	var doc export.Document
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if doc.Version > export.DocumentVersion {
		return nil, fmt.Errorf("document version %d is newer than supported version %d",
			doc.Version, export.DocumentVersion)
	}

	g := diagram.EnsureUniqueIDs(doc.Graph())
	if g.Nodes == nil {
		g.Nodes = []diagram.Node{}
	}
	if g.Connections == nil {
		g.Connections = []diagram.Connection{}
	}
	if g.Frames == nil {
		g.Frames = []diagram.Frame{}
	}
	if err := diagram.Validate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// GetFormatName returns the format name
func (i *JSONImporter) GetFormatName() string {
	return "JSON"
}

// GetFileExtensions returns common file extensions
func (i *JSONImporter) GetFileExtensions() []string {
	return []string{".json"}
}
