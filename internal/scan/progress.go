// Package scan walks library directories, extracts metadata and merges
// the results into the catalog. A single coordinator supervises at most
// one scan session at a time.
package scan

// Scan phases reported through progress events.
const (
	PhaseFindingFiles = "finding_files"
	PhaseParsing      = "parsing_metadata"
	PhaseSaving       = "saving_to_db"
	PhaseComplete     = "complete"
	PhaseError        = "error"
	PhaseCanceled     = "canceled"
)

// Progress is one event in a scan's ordered progress stream. Events for a
// session arrive in production order; the terminal phase (complete, error
// or canceled) is always last.
type Progress struct {
	Phase     string `json:"phase"`
	Message   string `json:"message,omitempty"`
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
	Percent   int    `json:"percent"`
}
