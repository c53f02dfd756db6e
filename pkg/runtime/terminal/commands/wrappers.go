package commands

import (
	"context"

	"github.com/de-tools/boutique-reports/pkg/models/api"
	"github.com/de-tools/boutique-reports/pkg/models/domain"
	"github.com/de-tools/boutique-reports/pkg/services/reports"
	"github.com/spf13/cobra"
)

// NewWrapperCmds returns one command per typed report call.
func NewWrapperCmds(rt Runtime) []*cobra.Command {
	return []*cobra.Command{
		newFilteredCmd(rt, "ventas", "Sales with custom filters", domain.ReportVentas,
			func(ctx context.Context, f domain.Filters) (*api.VentasReport, error) {
				return rt.Service().Ventas(ctx, f)
			}),
		newVentasClienteCmd(rt),
		newVentasPeriodoCmd(rt),
		newVentasUltimosDiasCmd(rt),
		newMontoCmd(rt, "ventas-mayores-a", "Sales above an amount", domain.ReportVentasMayoresA,
			func(ctx context.Context, monto float64) (*api.VentasReport, error) {
				return rt.Service().VentasMayoresA(ctx, monto)
			}),
		newMontoCmd(rt, "ventas-menores-a", "Sales below an amount", domain.ReportVentasMenoresA,
			func(ctx context.Context, monto float64) (*api.VentasReport, error) {
				return rt.Service().VentasMenoresA(ctx, monto)
			}),
		newVentasEntreMontosCmd(rt),

		newFilteredCmd(rt, "productos", "Product inventory", domain.ReportProductos,
			func(ctx context.Context, f domain.Filters) (*api.ProductosReport, error) {
				return rt.Service().Productos(ctx, f)
			}),
		newPlainCmd(rt, "stock-bajo", "Products at or below minimum stock", domain.ReportStockBajo,
			func(ctx context.Context) (*api.StockBajoReport, error) {
				return rt.Service().StockBajo(ctx)
			}),
		newRankingCmd(rt, "mas-vendidos", "Best selling products", domain.ReportMasVendidos,
			func(ctx context.Context, limite int) (*api.ProductosMasVendidosReport, error) {
				return rt.Service().ProductosMasVendidos(ctx, limite)
			}),
		newRankingCmd(rt, "menos-vendidos", "Worst selling products", domain.ReportMenosVendidos,
			func(ctx context.Context, limite int) (*api.ProductosMasVendidosReport, error) {
				return rt.Service().ProductosMenosVendidos(ctx, limite)
			}),
		newRankingCmd(rt, "mas-ingresos", "Products with the highest revenue", domain.ReportProductosMasIngresos,
			func(ctx context.Context, limite int) (*api.ProductosMasVendidosReport, error) {
				return rt.Service().ProductosMasIngresos(ctx, limite)
			}),
		newRankingCmd(rt, "menos-ingresos", "Products with the lowest revenue", domain.ReportProductosMenosIngresos,
			func(ctx context.Context, limite int) (*api.ProductosMasVendidosReport, error) {
				return rt.Service().ProductosMenosIngresos(ctx, limite)
			}),
		newPlainCmd(rt, "sin-ventas", "Products without sales", domain.ReportSinVentas,
			func(ctx context.Context) (*api.ProductosSinVentasReport, error) {
				return rt.Service().ProductosSinVentas(ctx)
			}),
		newPlainCmd(rt, "rentabilidad", "Product profitability", domain.ReportRentabilidad,
			func(ctx context.Context) (*api.RentabilidadReport, error) {
				return rt.Service().Rentabilidad(ctx)
			}),

		newFilteredCmd(rt, "pagos", "Payments by method", domain.ReportPagos,
			func(ctx context.Context, f domain.Filters) (*api.PagosReport, error) {
				return rt.Service().Pagos(ctx, f)
			}),
		newFilteredCmd(rt, "cuotas", "Credit sale installments", domain.ReportCuotas,
			func(ctx context.Context, f domain.Filters) (*api.CuotasReport, error) {
				return rt.Service().Cuotas(ctx, f)
			}),
		newPlainCmd(rt, "morosidad", "Clients with overdue installments", domain.ReportMorosidad,
			func(ctx context.Context) (*api.MorosidadReport, error) {
				return rt.Service().Morosidad(ctx)
			}),
		newFilteredCmd(rt, "flujo-caja", "Cash flow", domain.ReportFlujoCaja,
			func(ctx context.Context, f domain.Filters) (*api.FlujoCajaReport, error) {
				return rt.Service().FlujoCaja(ctx, f)
			}),
	}
}

func newFilteredCmd[R any, M any](
	rt Runtime,
	use, short string,
	t domain.ReportType,
	fetch func(ctx context.Context, f domain.Filters) (*api.ReportResponse[R, M], error),
) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := ff.filters(rt.Now())
			if err != nil {
				return err
			}
			return runTyped(cmd, rt, t, filters, func(ctx context.Context) (*api.ReportResponse[R, M], error) {
				return fetch(ctx, filters)
			})
		},
	}
	spec, _ := domain.LookupReport(t)
	ff.register(cmd, spec.Allows(domain.FilterFechaInicio))
	return cmd
}

func newPlainCmd[R any, M any](
	rt Runtime,
	use, short string,
	t domain.ReportType,
	fetch func(ctx context.Context) (*api.ReportResponse[R, M], error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTyped(cmd, rt, t, domain.Filters{}, fetch)
		},
	}
}

func newRankingCmd(
	rt Runtime,
	use, short string,
	t domain.ReportType,
	fetch func(ctx context.Context, limite int) (*api.ProductosMasVendidosReport, error),
) *cobra.Command {
	var limite int
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTyped(cmd, rt, t, reports.RankingFilters(limite), func(ctx context.Context) (*api.ProductosMasVendidosReport, error) {
				return fetch(ctx, limite)
			})
		},
	}
	cmd.Flags().IntVar(&limite, "limite", 10, "Number of products to return")
	return cmd
}

func newMontoCmd(
	rt Runtime,
	use, short string,
	t domain.ReportType,
	fetch func(ctx context.Context, monto float64) (*api.VentasReport, error),
) *cobra.Command {
	var monto float64
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTyped(cmd, rt, t, domain.Filters{Monto: &monto}, func(ctx context.Context) (*api.VentasReport, error) {
				return fetch(ctx, monto)
			})
		},
	}
	cmd.Flags().Float64Var(&monto, "monto", 0, "Amount in Bs.")
	_ = cmd.MarkFlagRequired("monto")
	return cmd
}

func newVentasClienteCmd(rt Runtime) *cobra.Command {
	var cliente string
	cmd := &cobra.Command{
		Use:   "ventas-cliente",
		Short: "Sales grouped by client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTyped(cmd, rt, domain.ReportVentasCliente, domain.Filters{Cliente: cliente},
				func(ctx context.Context) (*api.VentasClienteReport, error) {
					return rt.Service().VentasPorCliente(ctx, cliente)
				})
		},
	}
	cmd.Flags().StringVar(&cliente, "cliente", "", "Restrict to a client ID")
	return cmd
}

func newVentasPeriodoCmd(rt Runtime) *cobra.Command {
	var periodo string
	cmd := &cobra.Command{
		Use:   "ventas-periodo",
		Short: "Sales grouped by period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := domain.Periodo(periodo)
			return runTyped(cmd, rt, domain.ReportVentasPeriodo, reports.PeriodoFilters(p),
				func(ctx context.Context) (*api.VentasPeriodoReport, error) {
					return rt.Service().VentasPorPeriodo(ctx, p)
				})
		},
	}
	cmd.Flags().StringVar(&periodo, "periodo", string(domain.PeriodoMes), "Grouping period (dia|semana|mes|año)")
	return cmd
}

func newVentasUltimosDiasCmd(rt Runtime) *cobra.Command {
	var dias int
	cmd := &cobra.Command{
		Use:   "ventas-ultimos-dias",
		Short: "Sales of the last N days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTyped(cmd, rt, domain.ReportVentasUltimosDias, reports.UltimosDiasFilters(dias),
				func(ctx context.Context) (*api.VentasReport, error) {
					return rt.Service().VentasUltimosDias(ctx, dias)
				})
		},
	}
	cmd.Flags().IntVar(&dias, "dias", 30, "Number of days")
	return cmd
}

func newVentasEntreMontosCmd(rt Runtime) *cobra.Command {
	var montoMin, montoMax float64
	cmd := &cobra.Command{
		Use:   "ventas-entre-montos",
		Short: "Sales between two amounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := domain.Filters{MontoMin: &montoMin, MontoMax: &montoMax}
			return runTyped(cmd, rt, domain.ReportVentasEntreMontos, filters,
				func(ctx context.Context) (*api.VentasReport, error) {
					return rt.Service().VentasEntreMontos(ctx, montoMin, montoMax)
				})
		},
	}
	cmd.Flags().Float64Var(&montoMin, "min", 0, "Minimum amount in Bs.")
	cmd.Flags().Float64Var(&montoMax, "max", 0, "Maximum amount in Bs.")
	_ = cmd.MarkFlagRequired("min")
	_ = cmd.MarkFlagRequired("max")
	return cmd
}
