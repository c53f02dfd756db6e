package store

import (
	"encoding/json"
	"time"
)

// ReportSnapshot is one fetched report as written to the local archive.
type ReportSnapshot struct {
	ID         string          `json:"id"`
	ReportType string          `json:"report_type"`
	Filters    json.RawMessage `json:"filters,omitempty"`
	Summary    string          `json:"summary"`
	Columns    []string        `json:"columns"`
	Rows       json.RawMessage `json:"rows,omitempty"`
	RowCount   int             `json:"row_count"`
	FetchedAt  time.Time       `json:"fetched_at"`
}
