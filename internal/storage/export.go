package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/episim/internal/sim"
)

type ExportData struct {
	Meta   *RunMetadata `json:"meta"`
	Series *sim.Series  `json:"series"`
}

// ExportJSON writes a run's metadata and series as a single JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, series *sim.Series) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Meta: meta, Series: series})
}
