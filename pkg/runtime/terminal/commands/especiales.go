package commands

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/de-tools/boutique-reports/pkg/adapters"
	"github.com/de-tools/boutique-reports/pkg/models/domain"
	"github.com/de-tools/boutique-reports/pkg/services/workflow"
	"github.com/spf13/cobra"
)

func NewDashboardCmd(rt Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the administrative dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := rt.Service().Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			sections, err := adapters.MapDashboardToSections(data)
			if err != nil {
				return err
			}

			views := make([]domain.Report, len(sections))
			fetched := make([]FetchedReport, len(sections))
			for i, s := range sections {
				views[i] = adapters.MapRawReportToDomain(s.Type, domain.Filters{}, s.Raw)
				fetched[i] = FetchedReport{Type: s.Type, Raw: s.Raw}
			}
			if err := rt.Emit(data, views...); err != nil {
				return err
			}
			if err := rt.Archive(cmd.Context(), fetched...); err != nil {
				return fmt.Errorf("failed to archive dashboard: %w", err)
			}
			return nil
		},
	}
}

func NewCierreDiaCmd(rt Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "cierre-dia",
		Short: "Show today's cash register closing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := rt.Service().CierreDia(cmd.Context())
			if err != nil {
				return err
			}
			views, err := adapters.MapCierreDiaToDomain(data)
			if err != nil {
				return err
			}
			return rt.Emit(data, views...)
		},
	}
}

func NewAlertasCmd(rt Runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "alertas",
		Aliases: []string{"alertas-inventario"},
		Short:   "Show inventory alerts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := rt.Service().AlertasInventario(cmd.Context())
			if err != nil {
				return err
			}
			views, err := adapters.MapAlertasToDomain(data)
			if err != nil {
				return err
			}
			return rt.Emit(data, views...)
		},
	}
}

type ArchiveCmd struct {
	rt         Runtime
	reportType string
	limit      int

	watchTypes []string
	every      time.Duration
	rounds     int
}

func NewArchiveCmd(rt Runtime) *cobra.Command {
	ac := &ArchiveCmd{rt: rt}
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect reports stored in the local archive",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List archived reports, newest first",
		Args:  cobra.NoArgs,
		RunE:  ac.list,
	}
	list.Flags().StringVar(&ac.reportType, "type", "", "Only show one report type")
	list.Flags().IntVar(&ac.limit, "limit", 20, "Maximum number of snapshots")

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Fetch reports on an interval and archive every round",
		Args:  cobra.NoArgs,
		RunE:  ac.watch,
	}
	watch.Flags().StringSliceVar(&ac.watchTypes, "type",
		[]string{string(domain.ReportStockBajo), string(domain.ReportMorosidad)}, "Report types to capture")
	watch.Flags().DurationVar(&ac.every, "every", time.Hour, "Time between rounds")
	watch.Flags().IntVar(&ac.rounds, "rounds", 0, "Stop after N rounds (0 runs until interrupted)")

	cmd.AddCommand(list, watch)
	return cmd
}

func (ac *ArchiveCmd) watch(cmd *cobra.Command, args []string) error {
	types := make([]domain.ReportType, 0, len(ac.watchTypes))
	for _, raw := range ac.watchTypes {
		t, err := domain.ParseReportType(raw)
		if err != nil {
			return err
		}
		types = append(types, t)
	}

	archive, err := ac.rt.Snapshots()
	if err != nil {
		return err
	}
	runner, err := workflow.NewRunner(ac.rt.Service(), archive, types, workflow.RunnerConfig{
		Interval: ac.every,
		Rounds:   ac.rounds,
		Now:      ac.rt.Now,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go runner.Run(ctx)

	for p := range runner.Progress() {
		view := domain.Report{
			Title:   fmt.Sprintf("Ronda %d", p.Round),
			Columns: []string{"archivados", "con_error", "hora"},
			Rows: [][]string{{
				strconv.Itoa(p.Captured),
				strconv.Itoa(p.Failed),
				p.LastCapturedAt.Format("15:04:05"),
			}},
		}
		if err := ac.rt.Emit(p, view); err != nil {
			return err
		}
	}
	<-runner.Done()
	return nil
}

func (ac *ArchiveCmd) list(cmd *cobra.Command, args []string) error {
	if ac.reportType != "" {
		if _, err := domain.ParseReportType(ac.reportType); err != nil {
			return err
		}
	}

	archive, err := ac.rt.Snapshots()
	if err != nil {
		return err
	}
	snapshots, err := archive.List(cmd.Context(), ac.reportType, ac.limit)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	view := domain.Report{
		Title:   "Reportes archivados",
		Summary: fmt.Sprintf("%d reportes", len(snapshots)),
		Columns: []string{"id", "tipo", "filas", "obtenido", "resumen"},
	}
	for _, s := range snapshots {
		view.Rows = append(view.Rows, []string{
			s.ID,
			s.ReportType,
			strconv.Itoa(s.RowCount),
			s.FetchedAt.Format("2006-01-02 15:04:05"),
			s.Summary,
		})
	}
	return ac.rt.Emit(snapshots, view)
}
