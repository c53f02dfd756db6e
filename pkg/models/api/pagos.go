package api

import "github.com/shopspring/decimal"

type MetodoPago string

const (
	MetodoPagoEfectivo MetodoPago = "efectivo"
	MetodoPagoTarjeta  MetodoPago = "tarjeta"
	MetodoPagoQR       MetodoPago = "qr"
)

type PagoRow struct {
	MetodoPago    MetodoPago      `json:"método_pago"`
	CantidadPagos int             `json:"cantidad_pagos"`
	MontoTotal    decimal.Decimal `json:"monto_total"`
	MontoPromedio decimal.Decimal `json:"monto_promedio"`
}

type PagoMeta struct {
	TotalPagos         decimal.Decimal `json:"total_pagos"`
	MontoTotalEfectivo decimal.Decimal `json:"monto_total_efectivo"`
	MontoTotalTarjeta  decimal.Decimal `json:"monto_total_tarjeta"`
	MontoTotalQR       decimal.Decimal `json:"monto_total_qr"`
}

type PagosReport = ReportResponse[PagoRow, PagoMeta]

type CuotaRow struct {
	VentaCodigo      string          `json:"venta_codigo"`
	Cliente          string          `json:"cliente"`
	CuotaNumero      int             `json:"cuota_numero"`
	Monto            decimal.Decimal `json:"monto"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	Estado           string          `json:"estado"`
	DiasVencidos     *int            `json:"dias_vencidos,omitempty"`
}

type CuotaMeta struct {
	TotalCuotas      int             `json:"total_cuotas"`
	CuotasPendientes int             `json:"cuotas_pendientes"`
	CuotasVencidas   int             `json:"cuotas_vencidas"`
	MontoPendiente   decimal.Decimal `json:"monto_pendiente"`
	MontoVencido     decimal.Decimal `json:"monto_vencido"`
}

type CuotasReport = ReportResponse[CuotaRow, CuotaMeta]

type MorosidadRow struct {
	Cliente          string          `json:"cliente"`
	Email            string          `json:"email"`
	Telefono         string          `json:"telefono"`
	DeudaTotal       decimal.Decimal `json:"deuda_total"`
	CuotasVencidas   int             `json:"cuotas_vencidas"`
	DiasMoraPromedio float64         `json:"dias_mora_promedio"`
	UltimaVenta      string          `json:"ultima_venta"`
}

type MorosidadMeta struct {
	TotalClientesMorosos int             `json:"total_clientes_morosos"`
	DeudaTotal           decimal.Decimal `json:"deuda_total"`
	CuotasVencidasTotal  int             `json:"cuotas_vencidas_total"`
	PromedioDiasMora     float64         `json:"promedio_dias_mora"`
}

type MorosidadReport = ReportResponse[MorosidadRow, MorosidadMeta]

type FlujoCajaRow struct {
	Fecha          string          `json:"fecha"`
	Ingresos       decimal.Decimal `json:"ingresos"`
	Egresos        decimal.Decimal `json:"egresos"`
	Neto           decimal.Decimal `json:"neto"`
	SaldoAcumulado decimal.Decimal `json:"saldo_acumulado"`
}

type FlujoCajaMeta struct {
	TotalIngresos decimal.Decimal `json:"total_ingresos"`
	TotalEgresos  decimal.Decimal `json:"total_egresos"`
	NetoPeriodo   decimal.Decimal `json:"neto_periodo"`
	SaldoFinal    decimal.Decimal `json:"saldo_final"`
}

type FlujoCajaReport = ReportResponse[FlujoCajaRow, FlujoCajaMeta]
