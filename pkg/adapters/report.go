package adapters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/de-tools/boutique-reports/pkg/models/api"
	"github.com/de-tools/boutique-reports/pkg/models/domain"
	"github.com/de-tools/boutique-reports/pkg/models/store"
	"github.com/google/uuid"
)

// MapToRawReport converts a typed report back to the untyped shape used
// for rendering and archiving.
func MapToRawReport[R any, M any](r *api.ReportResponse[R, M]) (api.RawReport, error) {
	var raw api.RawReport
	data, err := json.Marshal(r)
	if err != nil {
		return raw, fmt.Errorf("failed to encode report: %w", err)
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return raw, fmt.Errorf("failed to decode report: %w", err)
	}
	return raw, nil
}

func MapRawReportToDomain(t domain.ReportType, filters domain.Filters, r api.RawReport) domain.Report {
	title := t.String()
	if spec, ok := domain.LookupReport(t); ok {
		title = spec.Description
	}

	report := domain.Report{
		Title:   title,
		Type:    t,
		Summary: r.Summary,
		Columns: r.Columns,
	}
	if filters.FechaInicio != "" || filters.FechaFin != "" {
		report.Period = &domain.DateRange{FechaInicio: filters.FechaInicio, FechaFin: filters.FechaFin}
	}

	if len(report.Columns) == 0 && len(r.Rows) > 0 {
		report.Columns = sortedKeys(r.Rows[0])
	}
	for _, row := range r.Rows {
		cells := make([]string, len(report.Columns))
		for i, col := range report.Columns {
			cells[i] = FormatCell(row[col])
		}
		report.Rows = append(report.Rows, cells)
	}

	for _, key := range sortedKeys(r.Meta) {
		report.Details = append(report.Details, domain.ReportDetail{Name: key, Value: FormatCell(r.Meta[key])})
	}
	return report
}

func MapRawReportToSnapshot(
	t domain.ReportType,
	filters domain.Filters,
	r api.RawReport,
	fetchedAt time.Time,
) (store.ReportSnapshot, error) {
	snap := store.ReportSnapshot{
		ID:         uuid.NewString(),
		ReportType: t.String(),
		Summary:    r.Summary,
		Columns:    r.Columns,
		RowCount:   len(r.Rows),
		FetchedAt:  fetchedAt,
	}

	if !filters.IsEmpty() {
		data, err := json.Marshal(filters)
		if err != nil {
			return snap, fmt.Errorf("failed to encode filters: %w", err)
		}
		snap.Filters = data
	}

	rows, err := json.Marshal(r.Rows)
	if err != nil {
		return snap, fmt.Errorf("failed to encode rows: %w", err)
	}
	snap.Rows = rows
	return snap, nil
}

// FormatCell renders a decoded JSON value as table text.
func FormatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case map[string]interface{}, []interface{}:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	default:
		return fmt.Sprint(val)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
