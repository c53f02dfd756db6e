package api

import "github.com/shopspring/decimal"

// DashboardData is the administrative dashboard aggregate.
type DashboardData struct {
	VentasMes    VentasReport               `json:"ventas_mes"`
	TopProductos ProductosMasVendidosReport `json:"top_productos"`
	StockCritico StockBajoReport            `json:"stock_critico"`
	Morosidad    MorosidadReport            `json:"morosidad"`
	FlujoCaja    FlujoCajaReport            `json:"flujo_caja"`
}

type ResumenVentasDia struct {
	Cantidad int             `json:"cantidad"`
	Total    decimal.Decimal `json:"total"`
	Promedio decimal.Decimal `json:"promedio"`
}

type IngresosDia struct {
	Efectivo decimal.Decimal `json:"efectivo"`
	Tarjeta  decimal.Decimal `json:"tarjeta"`
	QR       decimal.Decimal `json:"qr"`
	Total    decimal.Decimal `json:"total"`
}

// CierreDiaData is the daily cash-register closing.
type CierreDiaData struct {
	Fecha         string            `json:"fecha"`
	Ventas        ResumenVentasDia  `json:"ventas"`
	Ingresos      IngresosDia       `json:"ingresos"`
	DetalleVentas []VentaDetalleRow `json:"detalle_ventas"`
	DetallePagos  []PagoRow         `json:"detalle_pagos"`
}

type ResumenAlertas struct {
	ProductosCriticos  int `json:"productos_criticos"`
	ProductosBajoStock int `json:"productos_bajo_stock"`
	ProductosSinVentas int `json:"productos_sin_ventas"`
}

type AlertasInventarioData struct {
	Urgente       []StockBajoRow         `json:"urgente"`
	BajoStock     []StockBajoRow         `json:"bajo_stock"`
	SinMovimiento []ProductoSinVentasRow `json:"sin_movimiento"`
	Resumen       ResumenAlertas         `json:"resumen"`
}
