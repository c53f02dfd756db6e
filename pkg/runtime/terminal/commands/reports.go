package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/boutique-reports/pkg/models/domain"
	"github.com/spf13/cobra"
)

func NewQueryCmd(rt Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "query <text>",
		Short: "Ask for a report in natural language",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := rt.Service().Query(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			t := domain.ReportType(resp.ParsedQuery.Intent)
			return emitReport(cmd.Context(), rt, t, domain.Filters{}, resp, resp.Report)
		},
	}
}

type GenerateCmd struct {
	filterFlags
	rt Runtime
}

func NewGenerateCmd(rt Runtime) *cobra.Command {
	gc := &GenerateCmd{rt: rt}
	cmd := &cobra.Command{
		Use:   "generate <type>",
		Short: "Generate any report type with explicit filters",
		Example: `  reports generate ventas --month last
  reports generate ventas_entre_montos --filter monto_min=100 --filter monto_max=500`,
		Args: cobra.ExactArgs(1),
		RunE: gc.run,
	}
	gc.filterFlags.register(cmd, true)
	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, args []string) error {
	t, err := domain.ParseReportType(args[0])
	if err != nil {
		return err
	}
	filters, err := gc.filters(gc.rt.Now())
	if err != nil {
		return err
	}

	resp, err := gc.rt.Service().Generate(cmd.Context(), t, filters)
	if err != nil {
		return err
	}
	return emitReport(cmd.Context(), gc.rt, t, filters, resp, resp.Report)
}

func NewTypesCmd(rt Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the report types the backend computes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := domain.ReportTypes()
			view := domain.Report{
				Title:   "Tipos de reporte",
				Summary: fmt.Sprintf("%d tipos disponibles", len(specs)),
				Columns: []string{"tipo", "categoria", "descripcion", "filtros"},
			}
			for _, s := range specs {
				keys := make([]string, len(s.AllowedFilters))
				for i, k := range s.AllowedFilters {
					keys[i] = string(k)
				}
				view.Rows = append(view.Rows, []string{
					s.Type.String(), string(s.Category), s.Description, strings.Join(keys, ","),
				})
			}
			return rt.Emit(specs, view)
		},
	}
}

func NewProfilesCmd(rt Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the backend profiles in the profiles file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := rt.Profiles(cmd.Context())
			if err != nil {
				return err
			}
			view := domain.Report{
				Title:   "Perfiles",
				Columns: []string{"nombre", "api_url"},
			}
			for _, p := range profiles {
				view.Rows = append(view.Rows, []string{p.Name, p.APIURL})
			}
			return rt.Emit(profiles, view)
		},
	}
}
