package api

import "github.com/shopspring/decimal"

type ProductoRow struct {
	ID               int              `json:"id"`
	Producto         string           `json:"producto"`
	Categoria        string           `json:"categoria"`
	Talla            string           `json:"talla"`
	Color            string           `json:"color"`
	Stock            int              `json:"stock"`
	StockMinimo      *int             `json:"stock_minimo,omitempty"`
	StockCritico     *bool            `json:"stock_critico,omitempty"`
	Vendidos         int              `json:"vendidos"`
	PrecioVenta      decimal.Decimal  `json:"precio_venta"`
	PrecioCosto      *decimal.Decimal `json:"precio_costo,omitempty"`
	Ingresos         decimal.Decimal  `json:"ingresos"`
	Margen           *decimal.Decimal `json:"margen,omitempty"`
	MargenPorcentaje decimal.Decimal  `json:"margen_porcentaje"`
}

type ProductoMeta struct {
	TotalVariantes    int             `json:"total_variantes"`
	TotalStock        int             `json:"total_stock"`
	TotalVendidos     int             `json:"total_vendidos"`
	TotalIngresos     decimal.Decimal `json:"total_ingresos"`
	ProductosCriticos int             `json:"productos_criticos"`
}

type ProductosReport = ReportResponse[ProductoRow, ProductoMeta]

type EstadoStock string

const (
	EstadoStockCritico EstadoStock = "CRÍTICO"
	EstadoStockBajo    EstadoStock = "BAJO"
)

type StockBajoRow struct {
	Producto    string      `json:"producto"`
	Categoria   string      `json:"categoria"`
	Talla       string      `json:"talla"`
	Color       string      `json:"color"`
	StockActual int         `json:"stock_actual"`
	StockMinimo int         `json:"stock_minimo"`
	Deficit     int         `json:"deficit"`
	Estado      EstadoStock `json:"estado"`
}

type StockBajoMeta struct {
	TotalProductosCriticos int `json:"total_productos_criticos"`
	SinStock               int `json:"sin_stock"`
}

type StockBajoReport = ReportResponse[StockBajoRow, StockBajoMeta]

type ProductoMasVendidoRow struct {
	Producto        string          `json:"producto"`
	Talla           string          `json:"talla"`
	Color           string          `json:"color"`
	CantidadVendida int             `json:"cantidad_vendida"`
	NumVentas       int             `json:"num_ventas"`
	Ingresos        decimal.Decimal `json:"ingresos"`
	StockActual     int             `json:"stock_actual"`
}

type ProductosMasVendidosReport = ReportResponse[ProductoMasVendidoRow, Meta]

type ProductoConFechasRow struct {
	ID                int             `json:"id"`
	Nombre            string          `json:"nombre"`
	SKU               string          `json:"sku"`
	Color             string          `json:"color"`
	Talla             string          `json:"talla"`
	CantidadVendida   int             `json:"cantidad_vendida"`
	IngresosGenerados decimal.Decimal `json:"ingresos_generados"`
}

type PeriodoConsultado struct {
	FechaInicio string `json:"fecha_inicio,omitempty"`
	FechaFin    string `json:"fecha_fin,omitempty"`
}

type ProductosConFechasResponse struct {
	Productos []ProductoConFechasRow `json:"productos"`
	Periodo   PeriodoConsultado      `json:"periodo"`
}

type ProductoSinVentasRow struct {
	Producto     string          `json:"producto"`
	Categoria    string          `json:"categoria"`
	Talla        string          `json:"talla"`
	Color        string          `json:"color"`
	Stock        int             `json:"stock"`
	DiasSinVenta int             `json:"dias_sin_venta"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
}

type ProductoSinVentasMeta struct {
	TotalProductos            int             `json:"total_productos"`
	ValorTotalInventario      decimal.Decimal `json:"valor_total_inventario"`
	PromedioDiasSinMovimiento float64         `json:"promedio_dias_sin_movimiento"`
}

type ProductosSinVentasReport = ReportResponse[ProductoSinVentasRow, ProductoSinVentasMeta]

type RentabilidadRow struct {
	Producto         string          `json:"producto"`
	Categoria        string          `json:"categoria"`
	Talla            string          `json:"talla"`
	Color            string          `json:"color"`
	CantidadVendida  int             `json:"cantidad_vendida"`
	Ingresos         decimal.Decimal `json:"ingresos"`
	Costos           decimal.Decimal `json:"costos"`
	Ganancia         decimal.Decimal `json:"ganancia"`
	MargenPorcentaje decimal.Decimal `json:"margen_porcentaje"`
	ROIPorcentaje    decimal.Decimal `json:"roi_porcentaje"`
}

type RentabilidadMeta struct {
	IngresosTotales decimal.Decimal `json:"ingresos_totales"`
	CostosTotales   decimal.Decimal `json:"costos_totales"`
	GananciaTotal   decimal.Decimal `json:"ganancia_total"`
	MargenPromedio  decimal.Decimal `json:"margen_promedio"`
	ROIPromedio     decimal.Decimal `json:"roi_promedio"`
}

type RentabilidadReport = ReportResponse[RentabilidadRow, RentabilidadMeta]
