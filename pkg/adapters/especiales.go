package adapters

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/de-tools/boutique-reports/pkg/models/api"
	"github.com/de-tools/boutique-reports/pkg/models/domain"
)

// DashboardSection is one report embedded in the dashboard aggregate.
type DashboardSection struct {
	Type domain.ReportType
	Raw  api.RawReport
}

// MapDashboardToSections splits the dashboard aggregate into its
// embedded reports.
func MapDashboardToSections(d *api.DashboardData) ([]DashboardSection, error) {
	sections := []struct {
		t   domain.ReportType
		raw func() (api.RawReport, error)
	}{
		{domain.ReportVentas, func() (api.RawReport, error) { return MapToRawReport(&d.VentasMes) }},
		{domain.ReportMasVendidos, func() (api.RawReport, error) { return MapToRawReport(&d.TopProductos) }},
		{domain.ReportStockBajo, func() (api.RawReport, error) { return MapToRawReport(&d.StockCritico) }},
		{domain.ReportMorosidad, func() (api.RawReport, error) { return MapToRawReport(&d.Morosidad) }},
		{domain.ReportFlujoCaja, func() (api.RawReport, error) { return MapToRawReport(&d.FlujoCaja) }},
	}

	out := make([]DashboardSection, 0, len(sections))
	for _, s := range sections {
		raw, err := s.raw()
		if err != nil {
			return nil, fmt.Errorf("dashboard %s: %w", s.t, err)
		}
		out = append(out, DashboardSection{Type: s.t, Raw: raw})
	}
	return out, nil
}

func MapCierreDiaToDomain(c *api.CierreDiaData) ([]domain.Report, error) {
	ventas, err := rowsToReport("Ventas del día "+c.Fecha, c.DetalleVentas)
	if err != nil {
		return nil, err
	}
	ventas.Period = &domain.DateRange{FechaInicio: c.Fecha, FechaFin: c.Fecha}
	ventas.Summary = fmt.Sprintf("%d ventas por Bs. %s", c.Ventas.Cantidad, c.Ventas.Total.StringFixed(2))
	ventas.Details = []domain.ReportDetail{
		{Name: "promedio", Value: c.Ventas.Promedio.StringFixed(2)},
		{Name: "efectivo", Value: c.Ingresos.Efectivo.StringFixed(2)},
		{Name: "tarjeta", Value: c.Ingresos.Tarjeta.StringFixed(2)},
		{Name: "qr", Value: c.Ingresos.QR.StringFixed(2)},
		{Name: "total_ingresos", Value: c.Ingresos.Total.StringFixed(2)},
	}

	pagos, err := rowsToReport("Pagos del día "+c.Fecha, c.DetallePagos)
	if err != nil {
		return nil, err
	}
	return []domain.Report{ventas, pagos}, nil
}

func MapAlertasToDomain(a *api.AlertasInventarioData) ([]domain.Report, error) {
	urgente, err := rowsToReport("Stock crítico", a.Urgente)
	if err != nil {
		return nil, err
	}
	bajo, err := rowsToReport("Stock bajo", a.BajoStock)
	if err != nil {
		return nil, err
	}
	sinMovimiento, err := rowsToReport("Sin movimiento", a.SinMovimiento)
	if err != nil {
		return nil, err
	}
	sinMovimiento.Details = []domain.ReportDetail{
		{Name: "productos_criticos", Value: strconv.Itoa(a.Resumen.ProductosCriticos)},
		{Name: "productos_bajo_stock", Value: strconv.Itoa(a.Resumen.ProductosBajoStock)},
		{Name: "productos_sin_ventas", Value: strconv.Itoa(a.Resumen.ProductosSinVentas)},
	}
	return []domain.Report{urgente, bajo, sinMovimiento}, nil
}

func rowsToReport[R any](title string, rows []R) (domain.Report, error) {
	var decoded []map[string]interface{}
	data, err := json.Marshal(rows)
	if err != nil {
		return domain.Report{}, fmt.Errorf("failed to encode %s: %w", title, err)
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return domain.Report{}, fmt.Errorf("failed to decode %s: %w", title, err)
	}

	report := MapRawReportToDomain("", domain.Filters{}, api.RawReport{Rows: decoded})
	report.Title = title
	report.Summary = fmt.Sprintf("%d registros", len(rows))
	return report, nil
}
