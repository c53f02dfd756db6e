package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownReportType = errors.New("unknown report type")

// ReportType selects which computation the backend runs for /generate/.
type ReportType string

const (
	ReportVentas                 ReportType = "ventas"
	ReportVentasCliente          ReportType = "ventas_cliente"
	ReportVentasPeriodo          ReportType = "ventas_periodo"
	ReportVentasUltimosDias      ReportType = "ventas_ultimos_dias"
	ReportVentasMayoresA         ReportType = "ventas_mayores_a"
	ReportVentasMenoresA         ReportType = "ventas_menores_a"
	ReportVentasEntreMontos      ReportType = "ventas_entre_montos"
	ReportProductos              ReportType = "productos"
	ReportStockBajo              ReportType = "stock_bajo"
	ReportMasVendidos            ReportType = "mas_vendidos"
	ReportMenosVendidos          ReportType = "menos_vendidos"
	ReportSinVentas              ReportType = "sin_ventas"
	ReportRentabilidad           ReportType = "rentabilidad"
	ReportProductosMasIngresos   ReportType = "productos_mas_ingresos"
	ReportProductosMenosIngresos ReportType = "productos_menos_ingresos"
	ReportPagos                  ReportType = "pagos"
	ReportCuotas                 ReportType = "cuotas"
	ReportMorosidad              ReportType = "morosidad"
	ReportFlujoCaja              ReportType = "flujo_caja"
)

type ReportCategory string

const (
	CategoryVentas    ReportCategory = "ventas"
	CategoryProductos ReportCategory = "productos"
	CategoryPagos     ReportCategory = "pagos"
)

// ReportSpec describes what the backend accepts for a report type.
// The backend owns these rules; the catalog mirrors them so bad
// filters fail before a round trip.
type ReportSpec struct {
	Type           ReportType     `json:"report_type"`
	Category       ReportCategory `json:"category"`
	Description    string         `json:"description"`
	AllowedFilters []FilterKey    `json:"allowed_filters"`
}

// Allows reports whether key is meaningful for the report type.
func (s ReportSpec) Allows(key FilterKey) bool {
	for _, k := range s.AllowedFilters {
		if k == key {
			return true
		}
	}
	return false
}

var salesFilters = []FilterKey{
	FilterFechaInicio, FilterFechaFin, FilterTipoPago, FilterEstadoPago,
	FilterCliente, FilterMontoMin, FilterMontoMax, FilterOrden,
}

var productFilters = []FilterKey{
	FilterCategoria, FilterStockBajo, FilterMasVendidos, FilterLimite,
}

var paymentFilters = []FilterKey{
	FilterFechaInicio, FilterFechaFin, FilterMetodoPago, FilterVenta, FilterCliente,
}

var installmentFilters = []FilterKey{
	FilterEstado, FilterVenta, FilterCliente, FilterVencDesde, FilterVencHasta,
}

var catalog = []ReportSpec{
	{ReportVentas, CategoryVentas, "Ventas con filtros personalizados", salesFilters},
	{ReportVentasCliente, CategoryVentas, "Ventas agrupadas por cliente", []FilterKey{FilterCliente}},
	{ReportVentasPeriodo, CategoryVentas, "Ventas agrupadas por período", []FilterKey{FilterPeriodo}},
	{ReportVentasUltimosDias, CategoryVentas, "Ventas de los últimos N días", []FilterKey{FilterDias}},
	{ReportVentasMayoresA, CategoryVentas, "Ventas mayores a un monto", []FilterKey{FilterMonto}},
	{ReportVentasMenoresA, CategoryVentas, "Ventas menores a un monto", []FilterKey{FilterMonto}},
	{ReportVentasEntreMontos, CategoryVentas, "Ventas entre dos montos", []FilterKey{FilterMontoMin, FilterMontoMax}},
	{ReportProductos, CategoryProductos, "Inventario de productos", productFilters},
	{ReportStockBajo, CategoryProductos, "Productos con stock bajo", nil},
	{ReportMasVendidos, CategoryProductos, "Productos más vendidos", []FilterKey{FilterLimite}},
	{ReportMenosVendidos, CategoryProductos, "Productos menos vendidos", []FilterKey{FilterLimite}},
	{ReportSinVentas, CategoryProductos, "Productos sin ventas", nil},
	{ReportRentabilidad, CategoryProductos, "Rentabilidad de productos", nil},
	{ReportProductosMasIngresos, CategoryProductos, "Productos con más ingresos", []FilterKey{FilterLimite}},
	{ReportProductosMenosIngresos, CategoryProductos, "Productos con menos ingresos", []FilterKey{FilterLimite}},
	{ReportPagos, CategoryPagos, "Pagos por método", paymentFilters},
	{ReportCuotas, CategoryPagos, "Cuotas de ventas a crédito", installmentFilters},
	{ReportMorosidad, CategoryPagos, "Clientes morosos", nil},
	{ReportFlujoCaja, CategoryPagos, "Flujo de caja", []FilterKey{FilterFechaInicio, FilterFechaFin}},
}

var catalogIndex = func() map[ReportType]ReportSpec {
	idx := make(map[ReportType]ReportSpec, len(catalog))
	for _, spec := range catalog {
		idx[spec.Type] = spec
	}
	return idx
}()

// ReportTypes returns every known report in declaration order.
func ReportTypes() []ReportSpec {
	out := make([]ReportSpec, len(catalog))
	copy(out, catalog)
	return out
}

func LookupReport(t ReportType) (ReportSpec, bool) {
	spec, ok := catalogIndex[t]
	return spec, ok
}

func ParseReportType(s string) (ReportType, error) {
	t := ReportType(s)
	if _, ok := catalogIndex[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownReportType, s)
	}
	return t, nil
}

func (t ReportType) String() string {
	return string(t)
}
