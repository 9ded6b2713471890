// Package importer reads graphs back from the structured JSON snapshot and from Markdown
// outlines.
package importer

import (
	"errors"
	"fmt"
	"strings"

	"wordweb/diagram"
)

var (
	// ErrUnknownFormat is returned by ImportWithFormat for a format no importer handles.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrUndetected is returned when no importer recognises the content.
	ErrUndetected = errors.New("unable to detect format")
)

// Importer interface defines methods for importing graphs from various formats
type Importer interface {
	// CanImport checks if the given content can be imported by this importer
	CanImport(content string) bool

	// Import converts the input content into a graph
	Import(content string) (*diagram.Graph, error)

	// GetFormatName returns the human-readable name of the format
	GetFormatName() string

	// GetFileExtensions returns common file extensions for this format
	GetFileExtensions() []string
}

// ImporterRegistry holds the importers in detection order.
type ImporterRegistry struct {
	importers []Importer
}

// NewImporterRegistry returns a registry with the JSON and Markdown importers.
func NewImporterRegistry() *ImporterRegistry {
	return &ImporterRegistry{
		importers: []Importer{
			NewJSONImporter(),
			NewMarkdownImporter(),
		},
	}
}

// Register adds a new importer to the registry
func (r *ImporterRegistry) Register(importer Importer) {
	r.importers = append(r.importers, importer)
}

// Lookup finds the importer for a format name or file extension, with or without the
// leading dot. Matching ignores case.
func (r *ImporterRegistry) Lookup(format string) (Importer, bool) {
	format = strings.TrimPrefix(strings.ToLower(format), ".")
	for _, imp := range r.importers {
		if strings.ToLower(imp.GetFormatName()) == format {
			return imp, true
		}
		for _, ext := range imp.GetFileExtensions() {
			if strings.TrimPrefix(ext, ".") == format {
				return imp, true
			}
		}
	}
	return nil, false
}

// DetectFormat returns the first importer that accepts content.
func (r *ImporterRegistry) DetectFormat(content string) (Importer, error) {
	for _, imp := range r.importers {
		if imp.CanImport(content) {
			return imp, nil
		}
	}
	return nil, ErrUndetected
}

// Import imports content with the detected importer.
func (r *ImporterRegistry) Import(content string) (*diagram.Graph, error) {
	imp, err := r.DetectFormat(content)
	if err != nil {
		return nil, err
	}
	return imp.Import(content)
}

// ImportWithFormat imports content with the importer for format.
func (r *ImporterRegistry) ImportWithFormat(content, format string) (*diagram.Graph, error) {
	imp, ok := r.Lookup(format)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return imp.Import(content)
}

// ImportHinted imports content using hint, typically a file extension, when it names a
// known format, and detection otherwise. Errors from a matched importer are returned
// as they are; a file named .md that fails to parse is not retried as JSON.
func (r *ImporterRegistry) ImportHinted(content, hint string) (*diagram.Graph, error) {
	if hint != "" {
		if imp, ok := r.Lookup(hint); ok {
			return imp.Import(content)
		}
	}
	return r.Import(content)
}

// GetAvailableFormats returns the names of the registered formats
func (r *ImporterRegistry) GetAvailableFormats() []string {
	formats := make([]string, len(r.importers))
	for i, imp := range r.importers {
		formats[i] = imp.GetFormatName()
	}
	return formats
}
