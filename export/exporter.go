// Package export turns a page's forest into external artifacts. Exporters
// only ever read the forest they are handed; nothing here mutates the
// document.
package export

import (
	"fmt"
	"strings"

	"sld/diagram"
)

// Exporter converts a page to a specific output format.
type Exporter interface {
	// Export converts a page to the output format
	Export(p *diagram.Page) (string, error)

	// GetFileExtension returns the file extension including the dot
	GetFileExtension() string

	// GetFormatName returns the human-readable format name
	GetFormatName() string
}

// Registry holds the available exporters.
type Registry struct {
	exporters []Exporter
}

// NewRegistry creates a registry with the built-in exporters.
func NewRegistry() *Registry {
	return &Registry{
		exporters: []Exporter{
			NewJSONExporter(),
			NewCSVExporter(),
		},
	}
}

// Register adds an exporter to the registry.
func (r *Registry) Register(e Exporter) {
	r.exporters = append(r.exporters, e)
}

// Get returns the exporter for the named format.
func (r *Registry) Get(format string) (Exporter, error) {
	for _, e := range r.exporters {
		if strings.EqualFold(e.GetFormatName(), format) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("unknown export format: %s", format)
}

// Formats returns the available format names.
func (r *Registry) Formats() []string {
	formats := make([]string, len(r.exporters))
	for i, e := range r.exporters {
		formats[i] = e.GetFormatName()
	}
	return formats
}
