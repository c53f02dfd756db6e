package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/boutique-reports/pkg/adapters"
	"github.com/de-tools/boutique-reports/pkg/models/api"
	"github.com/de-tools/boutique-reports/pkg/models/domain"
	"github.com/de-tools/boutique-reports/pkg/services/reports"
	"github.com/de-tools/boutique-reports/pkg/store/duckdb/snapshot"
	"github.com/spf13/cobra"
)

// Runtime is what commands need from the CLI. It is resolved after flag
// parsing, so commands must only call it from RunE.
type Runtime interface {
	Service() *reports.Service
	Now() time.Time
	// Emit prints payload in JSON mode, views otherwise.
	Emit(payload any, views ...domain.Report) error
	// Archive stores fetched reports when an archive is configured.
	Archive(ctx context.Context, fetched ...FetchedReport) error
	Snapshots() (snapshot.Store, error)
	Profiles(ctx context.Context) ([]domain.ConfigProfile, error)
}

// FetchedReport is a report as received, with the filters it was asked for.
type FetchedReport struct {
	Type    domain.ReportType
	Filters domain.Filters
	Raw     api.RawReport
}

type rangeFlags struct {
	month string
	days  int
}

func (r *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.month, "month", "", "Restrict to a calendar month (current|last)")
	cmd.Flags().IntVar(&r.days, "days", 0, "Restrict to the last N days")
	cmd.MarkFlagsMutuallyExclusive("month", "days")
}

func (r *rangeFlags) apply(now time.Time, f domain.Filters) (domain.Filters, error) {
	switch r.month {
	case "":
	case "current":
		f = f.WithRange(domain.CurrentMonthRange(now))
	case "last":
		f = f.WithRange(domain.LastMonthRange(now))
	default:
		return f, fmt.Errorf("invalid --month %q: expected current or last", r.month)
	}
	if r.days < 0 {
		return f, fmt.Errorf("invalid --days %d: must be greater than 0", r.days)
	}
	if r.days > 0 {
		f = f.WithRange(domain.LastNDaysRange(now, r.days))
	}
	return f, nil
}

type filterFlags struct {
	rangeFlags
	values map[string]string
}

// register adds --filter, and --month/--days when withRange is set.
func (ff *filterFlags) register(cmd *cobra.Command, withRange bool) {
	cmd.Flags().StringToStringVar(&ff.values, "filter", nil, "Report filter as key=value (repeatable)")
	if withRange {
		ff.rangeFlags.register(cmd)
	}
}

func (ff *filterFlags) filters(now time.Time) (domain.Filters, error) {
	f, err := domain.ParseFilters(ff.values)
	if err != nil {
		return f, err
	}
	f, err = ff.apply(now, f)
	if err != nil {
		return f, err
	}
	return f, f.Validate()
}

// emitReport prints the report first and archives it afterwards, so a
// broken archive never hides a result.
func emitReport(ctx context.Context, rt Runtime, t domain.ReportType, filters domain.Filters, payload any, raw api.RawReport) error {
	if err := rt.Emit(payload, adapters.MapRawReportToDomain(t, filters, raw)); err != nil {
		return err
	}
	if err := rt.Archive(ctx, FetchedReport{Type: t, Filters: filters, Raw: raw}); err != nil {
		return fmt.Errorf("failed to archive report: %w", err)
	}
	return nil
}

func runTyped[R any, M any](
	cmd *cobra.Command,
	rt Runtime,
	t domain.ReportType,
	filters domain.Filters,
	fetch func(ctx context.Context) (*api.ReportResponse[R, M], error),
) error {
	report, err := fetch(cmd.Context())
	if err != nil {
		return err
	}
	raw, err := adapters.MapToRawReport(report)
	if err != nil {
		return err
	}
	return emitReport(cmd.Context(), rt, t, filters, report, raw)
}
