package api

import (
	"encoding/json"

	"github.com/de-tools/boutique-reports/pkg/models/domain"
)

// Meta is the open metadata object attached to a report.
type Meta map[string]interface{}

// ReportResponse is the tabular result the backend computes for every
// report type. R is the row shape, M the meta shape.
type ReportResponse[R any, M any] struct {
	Summary string   `json:"summary"`
	Columns []string `json:"columns"`
	Rows    []R      `json:"rows"`
	Meta    M        `json:"meta,omitempty"`
}

// RawReport keeps rows and meta untyped.
type RawReport = ReportResponse[map[string]interface{}, Meta]

type NaturalLanguageQueryRequest struct {
	Query string `json:"query"`
}

type ParsedQuery struct {
	Intent  string                 `json:"intent"`
	Filters map[string]interface{} `json:"filters"`
	Limit   *int                   `json:"limit,omitempty"`
}

type NaturalLanguageQueryResponse struct {
	QueryOriginal string      `json:"query_original"`
	ParsedQuery   ParsedQuery `json:"parsed_query"`
	Report        RawReport   `json:"report"`
}

type ReportByTypeRequest struct {
	ReportType domain.ReportType `json:"report_type"`
	Filters    *domain.Filters   `json:"filters,omitempty"`
}

// ReportByTypeResponse is the /generate/ body. The report object is kept
// both decoded and as raw JSON so callers can bind it to a typed shape.
type ReportByTypeResponse struct {
	ReportType string                 `json:"report_type"`
	Filters    map[string]interface{} `json:"filters"`
	Report     RawReport              `json:"report"`

	raw json.RawMessage
}

func (r *ReportByTypeResponse) UnmarshalJSON(data []byte) error {
	type plain ReportByTypeResponse
	var aux struct {
		plain
		Report json.RawMessage `json:"report"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = ReportByTypeResponse(aux.plain)
	r.raw = aux.Report
	// A report that does not fit the generic shape is left zero here;
	// binding it to a typed shape reports the mismatch.
	var report RawReport
	if err := json.Unmarshal(aux.Report, &report); err == nil {
		r.Report = report
	}
	return nil
}

// RawReportJSON returns the report object exactly as received.
func (r *ReportByTypeResponse) RawReportJSON() json.RawMessage {
	return r.raw
}

// ErrorResponse is the body the backend sends with a failure status.
type ErrorResponse struct {
	Error string `json:"error"`
}
