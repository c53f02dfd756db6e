package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/boutique-reports/pkg/models/api"
	"github.com/de-tools/boutique-reports/pkg/models/domain"
	"github.com/de-tools/boutique-reports/pkg/store/client"
	"github.com/rs/zerolog"
)

const (
	defaultPeriodo = domain.PeriodoMes
	defaultDias    = 30
	defaultLimite  = 10
)

var ErrEmptyQuery = errors.New("query must not be empty")

// Service exposes one typed call per report type on top of the generic
// /generate/ endpoint.
type Service struct {
	api client.ReportsAPI
}

func NewService(reportsAPI client.ReportsAPI) *Service {
	return &Service{api: reportsAPI}
}

// Query runs a natural-language report request.
func (s *Service) Query(ctx context.Context, text string) (*api.NaturalLanguageQueryResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyQuery
	}
	return s.api.GenerateNaturalLanguageReport(ctx, api.NaturalLanguageQueryRequest{Query: text})
}

// Generate requests any report type and returns the backend body as is.
func (s *Service) Generate(ctx context.Context, t domain.ReportType, filters domain.Filters) (*api.ReportByTypeResponse, error) {
	req, err := buildRequest(t, filters)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().
		Str("report_type", t.String()).
		Interface("filters", req.Filters).
		Msg("generating report")
	return s.api.GenerateReportByType(ctx, req)
}

// GenerateChecked is Generate plus the envelope check the typed calls
// apply, for callers that pass the report on untyped.
func (s *Service) GenerateChecked(ctx context.Context, t domain.ReportType, filters domain.Filters) (*api.ReportByTypeResponse, error) {
	resp, err := s.Generate(ctx, t, filters)
	if err != nil {
		return nil, err
	}
	if _, err := bindReport[map[string]interface{}, api.Meta](t, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *Service) Dashboard(ctx context.Context) (*api.DashboardData, error) {
	return s.api.GetDashboard(ctx)
}

func (s *Service) CierreDia(ctx context.Context) (*api.CierreDiaData, error) {
	return s.api.GetCierreDia(ctx)
}

func (s *Service) AlertasInventario(ctx context.Context) (*api.AlertasInventarioData, error) {
	return s.api.GetAlertasInventario(ctx)
}

func buildRequest(t domain.ReportType, filters domain.Filters) (api.ReportByTypeRequest, error) {
	if err := filters.ValidateFor(t); err != nil {
		return api.ReportByTypeRequest{}, err
	}
	req := api.ReportByTypeRequest{ReportType: t}
	if !filters.IsEmpty() {
		req.Filters = &filters
	}
	return req, nil
}

func generate[R any, M any](
	ctx context.Context,
	s *Service,
	t domain.ReportType,
	filters domain.Filters,
) (*api.ReportResponse[R, M], error) {
	resp, err := s.Generate(ctx, t, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s report: %w", t, err)
	}
	return bindReport[R, M](t, resp)
}

// Ventas

func (s *Service) Ventas(ctx context.Context, filters domain.Filters) (*api.VentasReport, error) {
	return generate[api.VentaRow, api.VentaMeta](ctx, s, domain.ReportVentas, filters)
}

// VentasPorCliente groups sales by client; an empty cliente covers all clients.
func (s *Service) VentasPorCliente(ctx context.Context, cliente string) (*api.VentasClienteReport, error) {
	return generate[api.VentaClienteRow, api.Meta](ctx, s, domain.ReportVentasCliente, domain.Filters{Cliente: cliente})
}

// VentasPorPeriodo groups sales by period, monthly when periodo is empty.
func (s *Service) VentasPorPeriodo(ctx context.Context, periodo domain.Periodo) (*api.VentasPeriodoReport, error) {
	return generate[api.VentaPeriodoRow, api.Meta](ctx, s, domain.ReportVentasPeriodo, PeriodoFilters(periodo))
}

// PeriodoFilters is what VentasPorPeriodo sends for periodo.
func PeriodoFilters(periodo domain.Periodo) domain.Filters {
	if periodo == "" {
		periodo = defaultPeriodo
	}
	return domain.Filters{Periodo: periodo}
}

// VentasUltimosDias covers the last dias days; zero means 30.
func (s *Service) VentasUltimosDias(ctx context.Context, dias int) (*api.VentasReport, error) {
	return generate[api.VentaRow, api.VentaMeta](ctx, s, domain.ReportVentasUltimosDias, UltimosDiasFilters(dias))
}

// UltimosDiasFilters is what VentasUltimosDias sends for dias.
func UltimosDiasFilters(dias int) domain.Filters {
	if dias == 0 {
		dias = defaultDias
	}
	return domain.Filters{Dias: &dias}
}

func (s *Service) VentasMayoresA(ctx context.Context, monto float64) (*api.VentasReport, error) {
	return generate[api.VentaRow, api.VentaMeta](ctx, s, domain.ReportVentasMayoresA, domain.Filters{Monto: &monto})
}

func (s *Service) VentasMenoresA(ctx context.Context, monto float64) (*api.VentasReport, error) {
	return generate[api.VentaRow, api.VentaMeta](ctx, s, domain.ReportVentasMenoresA, domain.Filters{Monto: &monto})
}

func (s *Service) VentasEntreMontos(ctx context.Context, montoMin, montoMax float64) (*api.VentasReport, error) {
	return generate[api.VentaRow, api.VentaMeta](ctx, s, domain.ReportVentasEntreMontos, domain.Filters{
		MontoMin: &montoMin,
		MontoMax: &montoMax,
	})
}

// Productos

func (s *Service) Productos(ctx context.Context, filters domain.Filters) (*api.ProductosReport, error) {
	return generate[api.ProductoRow, api.ProductoMeta](ctx, s, domain.ReportProductos, filters)
}

func (s *Service) StockBajo(ctx context.Context) (*api.StockBajoReport, error) {
	return generate[api.StockBajoRow, api.StockBajoMeta](ctx, s, domain.ReportStockBajo, domain.Filters{})
}

// ProductosMasVendidos returns the top sellers; zero limite means 10.
func (s *Service) ProductosMasVendidos(ctx context.Context, limite int) (*api.ProductosMasVendidosReport, error) {
	return s.ranking(ctx, domain.ReportMasVendidos, limite)
}

func (s *Service) ProductosMenosVendidos(ctx context.Context, limite int) (*api.ProductosMasVendidosReport, error) {
	return s.ranking(ctx, domain.ReportMenosVendidos, limite)
}

func (s *Service) ProductosMasIngresos(ctx context.Context, limite int) (*api.ProductosMasVendidosReport, error) {
	return s.ranking(ctx, domain.ReportProductosMasIngresos, limite)
}

func (s *Service) ProductosMenosIngresos(ctx context.Context, limite int) (*api.ProductosMasVendidosReport, error) {
	return s.ranking(ctx, domain.ReportProductosMenosIngresos, limite)
}

func (s *Service) ranking(ctx context.Context, t domain.ReportType, limite int) (*api.ProductosMasVendidosReport, error) {
	return generate[api.ProductoMasVendidoRow, api.Meta](ctx, s, t, RankingFilters(limite))
}

// RankingFilters is what the product rankings send for limite.
func RankingFilters(limite int) domain.Filters {
	if limite == 0 {
		limite = defaultLimite
	}
	return domain.Filters{Limite: &limite}
}

func (s *Service) ProductosSinVentas(ctx context.Context) (*api.ProductosSinVentasReport, error) {
	return generate[api.ProductoSinVentasRow, api.ProductoSinVentasMeta](ctx, s, domain.ReportSinVentas, domain.Filters{})
}

func (s *Service) Rentabilidad(ctx context.Context) (*api.RentabilidadReport, error) {
	return generate[api.RentabilidadRow, api.RentabilidadMeta](ctx, s, domain.ReportRentabilidad, domain.Filters{})
}

// Pagos

func (s *Service) Pagos(ctx context.Context, filters domain.Filters) (*api.PagosReport, error) {
	return generate[api.PagoRow, api.PagoMeta](ctx, s, domain.ReportPagos, filters)
}

func (s *Service) Cuotas(ctx context.Context, filters domain.Filters) (*api.CuotasReport, error) {
	return generate[api.CuotaRow, api.CuotaMeta](ctx, s, domain.ReportCuotas, filters)
}

func (s *Service) Morosidad(ctx context.Context) (*api.MorosidadReport, error) {
	return generate[api.MorosidadRow, api.MorosidadMeta](ctx, s, domain.ReportMorosidad, domain.Filters{})
}

func (s *Service) FlujoCaja(ctx context.Context, filters domain.Filters) (*api.FlujoCajaReport, error) {
	return generate[api.FlujoCajaRow, api.FlujoCajaMeta](ctx, s, domain.ReportFlujoCaja, filters)
}
