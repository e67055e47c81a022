package export

import (
	"encoding/csv"
	"strconv"
	"strings"

	"sld/diagram"
)

// CSVExporter flattens a page's forest into a component schedule: one row
// per node in depth-first order, with the owning parent id so the hierarchy
// can be rebuilt in a spreadsheet.
type CSVExporter struct{}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

var csvHeader = []string{
	"depth", "id", "type", "name", "componentNumber", "model",
	"voltage", "amperage", "kva", "meterNumber", "parentId", "extraFeeds",
}

// Export converts a page to CSV.
func (e *CSVExporter) Export(p *diagram.Page) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, root := range p.Items {
		if err := writeRows(w, root, "", 0); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeRows(w *csv.Writer, n *diagram.Node, parentID string, depth int) error {
	row := []string{
		strconv.Itoa(depth),
		n.ID,
		string(n.Type),
		n.Name,
		n.ComponentNumber,
		n.Model,
		n.Voltage,
		n.Amperage,
		n.KVA,
		n.MeterNumber,
		parentID,
		strings.Join(n.ExtraConnections, " "),
	}
	if err := w.Write(row); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := writeRows(w, c, n.ID, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// GetFileExtension returns the file extension for CSV.
func (e *CSVExporter) GetFileExtension() string {
	return ".csv"
}

// GetFormatName returns the format name.
func (e *CSVExporter) GetFormatName() string {
	return "CSV"
}
