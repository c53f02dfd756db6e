package api

import "github.com/shopspring/decimal"

type VentaRow struct {
	Producto        string          `json:"producto"`
	Talla           string          `json:"talla"`
	Color           string          `json:"color"`
	CantidadVendida int             `json:"cantidad_vendida"`
	TotalBs         decimal.Decimal `json:"total_bs"`
}

type MontoPorTipoPago struct {
	Tipo     string          `json:"tipo"`
	Cantidad int             `json:"cantidad"`
	Monto    decimal.Decimal `json:"monto"`
}

type MontoPorEstado struct {
	Estado   string          `json:"estado"`
	Cantidad int             `json:"cantidad"`
	Monto    decimal.Decimal `json:"monto"`
}

type VentaMeta struct {
	TotalVentas     decimal.Decimal    `json:"total_ventas"`
	TotalConInteres decimal.Decimal    `json:"total_con_interes"`
	CantidadVentas  int                `json:"cantidad_ventas"`
	PromedioVenta   decimal.Decimal    `json:"promedio_venta"`
	VentaMaxima     decimal.Decimal    `json:"venta_maxima"`
	VentaMinima     decimal.Decimal    `json:"venta_minima"`
	PorTipoPago     []MontoPorTipoPago `json:"por_tipo_pago"`
	PorEstado       []MontoPorEstado   `json:"por_estado"`
}

type VentasReport = ReportResponse[VentaRow, VentaMeta]

type VentaClienteRow struct {
	Cliente        string          `json:"cliente"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	TotalCompras   int             `json:"total_compras"`
	MontoTotal     decimal.Decimal `json:"monto_total"`
	MontoPendiente decimal.Decimal `json:"monto_pendiente"`
}

type VentasClienteReport = ReportResponse[VentaClienteRow, Meta]

type VentaPeriodoRow struct {
	Periodo        string          `json:"periodo"`
	Fecha          string          `json:"fecha"`
	CantidadVentas int             `json:"cantidad_ventas"`
	MontoTotal     decimal.Decimal `json:"monto_total"`
	MontoPromedio  decimal.Decimal `json:"monto_promedio"`
}

type VentasPeriodoReport = ReportResponse[VentaPeriodoRow, Meta]

// VentaDetalleRow is a single sale. Totals arrive as numeric strings.
type VentaDetalleRow struct {
	ID                     int             `json:"id"`
	Codigo                 string          `json:"codigo"`
	Fecha                  string          `json:"fecha"`
	Cliente                string          `json:"cliente"`
	Total                  decimal.Decimal `json:"total"`
	TotalConInteres        decimal.Decimal `json:"total_con_interes"`
	TipoVenta              string          `json:"tipo_venta"`
	CantidadTotalProductos *int            `json:"cantidad_total_productos,omitempty"`
}

type ProductoDestacado struct {
	Nombre          string `json:"nombre"`
	SKU             string `json:"sku"`
	CantidadVendida int    `json:"cantidad_vendida"`
}

type VentasStats struct {
	PromedioVenta decimal.Decimal `json:"promedio_venta"`
}

type VentasConProductoResponse struct {
	Ventas             []VentaDetalleRow  `json:"ventas"`
	TotalVentas        int                `json:"total_ventas"`
	MontoTotal         decimal.Decimal    `json:"monto_total"`
	ProductoMasVendido *ProductoDestacado `json:"producto_mas_vendido"`
	Stats              *VentasStats       `json:"stats,omitempty"`
	Mensaje            string             `json:"mensaje,omitempty"`
}
