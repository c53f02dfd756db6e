package reports

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/de-tools/boutique-reports/pkg/models/api"
	"github.com/de-tools/boutique-reports/pkg/models/domain"
)

var ErrShapeMismatch = errors.New("report does not match the expected shape")

// ShapeError means the backend answered, but not with the shape the
// report type promises.
type ShapeError struct {
	ReportType domain.ReportType
	Err        error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("report %s does not match the expected shape: %v", e.ReportType, e.Err)
}

func (e *ShapeError) Unwrap() []error {
	return []error{ErrShapeMismatch, e.Err}
}

// bindReport decodes the raw report object into its typed shape. Unknown
// keys are ignored; missing envelope fields and mistyped values are not.
func bindReport[R any, M any](t domain.ReportType, resp *api.ReportByTypeResponse) (*api.ReportResponse[R, M], error) {
	if err := checkKnownType(t, resp); err != nil {
		return nil, err
	}

	raw := resp.RawReportJSON()
	if isNull(raw) {
		return nil, &ShapeError{ReportType: t, Err: errors.New("missing report object")}
	}

	var envelope struct {
		Summary *string         `json:"summary"`
		Columns json.RawMessage `json:"columns"`
		Rows    json.RawMessage `json:"rows"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &ShapeError{ReportType: t, Err: err}
	}
	switch {
	case envelope.Summary == nil:
		return nil, &ShapeError{ReportType: t, Err: errors.New("missing summary")}
	case isNull(envelope.Columns):
		return nil, &ShapeError{ReportType: t, Err: errors.New("missing columns")}
	case isNull(envelope.Rows):
		return nil, &ShapeError{ReportType: t, Err: errors.New("missing rows")}
	}

	var out api.ReportResponse[R, M]
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &ShapeError{ReportType: t, Err: err}
	}
	return &out, nil
}

// checkKnownType detects the 200 answer the backend gives for a report
// type it does not implement.
func checkKnownType(t domain.ReportType, resp *api.ReportByTypeResponse) error {
	meta := resp.Report.Meta
	if _, ok := meta["tipos_disponibles"]; ok {
		msg, _ := meta["error"].(string)
		return fmt.Errorf("%w: backend rejected %s: %s", domain.ErrUnknownReportType, t, msg)
	}
	if resp.ReportType != "" && resp.ReportType != t.String() {
		return &ShapeError{
			ReportType: t,
			Err:        fmt.Errorf("backend answered for report type %q", resp.ReportType),
		}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
