package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilters(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		want    Filters
		wantKey FilterKey
	}{
		{
			name:   "dates and payment type",
			values: map[string]string{"fecha_inicio": "2025-01-01", "fecha_fin": "2025-01-31", "tipo_pago": "credito"},
			want:   Filters{FechaInicio: "2025-01-01", FechaFin: "2025-01-31", TipoPago: TipoPagoCredito},
		},
		{
			name:   "numeric and boolean values",
			values: map[string]string{"limite": "5", "monto_min": "100.5", "stock_bajo": "true"},
			want:   Filters{Limite: Int(5), MontoMin: Float(100.5), StockBajo: Bool(true)},
		},
		{
			name: "payment and installment keys",
			values: map[string]string{
				"metodo_pago": "efectivo", "venta": "42", "estado": "vencida",
				"vencimiento_desde": "2025-01-01", "vencimiento_hasta": "2025-01-31",
			},
			want: Filters{
				MetodoPago: MetodoPagoEfectivo, Venta: Int(42), Estado: EstadoCuotaVencida,
				VencimientoDesde: "2025-01-01", VencimientoHasta: "2025-01-31",
			},
		},
		{
			name:    "unknown payment method",
			values:  map[string]string{"metodo_pago": "cheque"},
			wantKey: FilterMetodoPago,
		},
		{
			name:    "due date range needs both ends",
			values:  map[string]string{"vencimiento_desde": "2025-01-01"},
			wantKey: FilterVencDesde,
		},
		{
			name:    "due date range reversed",
			values:  map[string]string{"vencimiento_desde": "2025-02-01", "vencimiento_hasta": "2025-01-01"},
			wantKey: FilterVencDesde,
		},
		{
			name:   "periodo with accent",
			values: map[string]string{"periodo": "año"},
			want:   Filters{Periodo: PeriodoAnio},
		},
		{
			name:    "unknown key rejected",
			values:  map[string]string{"sucursal": "centro"},
			wantKey: "sucursal",
		},
		{
			name:    "non numeric limit",
			values:  map[string]string{"limite": "diez"},
			wantKey: FilterLimite,
		},
		{
			name:    "bad date format",
			values:  map[string]string{"fecha_inicio": "01/02/2025"},
			wantKey: FilterFechaInicio,
		},
		{
			name:    "bad order value",
			values:  map[string]string{"orden": "monto"},
			wantKey: FilterOrden,
		},
		{
			name:    "inverted amount range",
			values:  map[string]string{"monto_min": "500", "monto_max": "100"},
			wantKey: FilterMontoMin,
		},
		{
			name:    "inverted date range",
			values:  map[string]string{"fecha_inicio": "2025-02-01", "fecha_fin": "2025-01-01"},
			wantKey: FilterFechaInicio,
		},
		{
			name:    "zero days",
			values:  map[string]string{"dias": "0"},
			wantKey: FilterDias,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilters(tt.values)
			if tt.wantKey != "" {
				var fe *FilterError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, tt.wantKey, fe.Key)
				assert.True(t, errors.Is(err, ErrInvalidFilter))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeFilters_RejectsUnknownKeys(t *testing.T) {
	_, err := DecodeFilters([]byte(`{"fecha_inicio":"2025-01-01","foo":1}`))
	assert.ErrorIs(t, err, ErrInvalidFilter)

	f, err := DecodeFilters([]byte(`{"limite":3,"orden":"-total"}`))
	require.NoError(t, err)
	assert.Equal(t, Filters{Limite: Int(3), Orden: "-total"}, f)
}

func TestFilters_ValidateFor(t *testing.T) {
	t.Run("allowed keys", func(t *testing.T) {
		f := Filters{FechaInicio: "2025-01-01", TipoPago: TipoPagoContado}
		assert.NoError(t, f.ValidateFor(ReportVentas))
	})

	t.Run("key not accepted by the report", func(t *testing.T) {
		f := Filters{Limite: Int(10)}
		err := f.ValidateFor(ReportStockBajo)
		var fe *FilterError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, FilterLimite, fe.Key)
	})

	t.Run("filters the backend ignores are rejected", func(t *testing.T) {
		cases := []struct {
			report ReportType
			f      Filters
			key    FilterKey
		}{
			{ReportCuotas, Filters{TipoPago: TipoPagoCredito}, FilterTipoPago},
			{ReportCuotas, Filters{FechaInicio: "2025-01-01"}, FilterFechaInicio},
			{ReportPagos, Filters{EstadoPago: EstadoPagoPendiente}, FilterEstadoPago},
			{ReportProductos, Filters{FechaFin: "2025-01-31"}, FilterFechaFin},
		}
		for _, c := range cases {
			var fe *FilterError
			require.ErrorAs(t, c.f.ValidateFor(c.report), &fe, "%s", c.report)
			assert.Equal(t, c.key, fe.Key)
		}
	})

	t.Run("unknown report type", func(t *testing.T) {
		err := Filters{}.ValidateFor("inventario_total")
		assert.ErrorIs(t, err, ErrUnknownReportType)
	})
}

func TestFilters_JSONOmitsUnsetFields(t *testing.T) {
	data, err := json.Marshal(Filters{Monto: Float(1000)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"monto":1000}`, string(data))

	data, err = json.Marshal(Filters{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestFilters_Keys(t *testing.T) {
	f := Filters{EstadoPago: EstadoPagoParcial, FechaFin: "2025-01-31", Dias: Int(3)}
	assert.Equal(t, []FilterKey{FilterFechaFin, FilterDias, FilterEstadoPago}, f.Keys())
	assert.True(t, Filters{}.IsEmpty())
}

func TestParseReportType(t *testing.T) {
	got, err := ParseReportType("flujo_caja")
	require.NoError(t, err)
	assert.Equal(t, ReportFlujoCaja, got)

	_, err = ParseReportType("flujo")
	assert.ErrorIs(t, err, ErrUnknownReportType)
}

func TestReportTypes_CatalogIsComplete(t *testing.T) {
	specs := ReportTypes()
	assert.Len(t, specs, 19)

	seen := map[ReportType]bool{}
	for _, spec := range specs {
		assert.False(t, seen[spec.Type], "duplicate %s", spec.Type)
		seen[spec.Type] = true
		assert.NotEmpty(t, spec.Description)
		assert.Contains(t, []ReportCategory{CategoryVentas, CategoryProductos, CategoryPagos}, spec.Category)
	}
}

func TestFilters_ValidateForAcceptsEveryHonoredKey(t *testing.T) {
	honored := map[ReportType]Filters{
		ReportVentas: {
			FechaInicio: "2025-01-01", FechaFin: "2025-01-31", TipoPago: TipoPagoContado,
			EstadoPago: EstadoPagoPagado, Cliente: "7", MontoMin: Float(10), MontoMax: Float(90), Orden: "-total",
		},
		ReportVentasCliente:          {Cliente: "7"},
		ReportVentasPeriodo:          {Periodo: PeriodoSemana},
		ReportVentasUltimosDias:      {Dias: Int(15)},
		ReportVentasMayoresA:         {Monto: Float(100)},
		ReportVentasMenoresA:         {Monto: Float(100)},
		ReportVentasEntreMontos:      {MontoMin: Float(10), MontoMax: Float(20)},
		ReportProductos:              {Categoria: "blusas", StockBajo: Bool(true), MasVendidos: Bool(true), Limite: Int(5)},
		ReportStockBajo:              {},
		ReportMasVendidos:            {Limite: Int(5)},
		ReportMenosVendidos:          {Limite: Int(5)},
		ReportSinVentas:              {},
		ReportRentabilidad:           {},
		ReportProductosMasIngresos:   {Limite: Int(5)},
		ReportProductosMenosIngresos: {Limite: Int(5)},
		ReportPagos: {
			FechaInicio: "2025-01-01", FechaFin: "2025-01-31", MetodoPago: MetodoPagoQR, Venta: Int(3), Cliente: "7",
		},
		ReportCuotas: {
			Estado: EstadoCuotaPendiente, Venta: Int(3), Cliente: "7",
			VencimientoDesde: "2025-01-01", VencimientoHasta: "2025-03-31",
		},
		ReportMorosidad: {},
		ReportFlujoCaja: {FechaInicio: "2025-01-01", FechaFin: "2025-01-31"},
	}
	require.Len(t, honored, len(ReportTypes()))

	for report, f := range honored {
		t.Run(string(report), func(t *testing.T) {
			assert.NoError(t, f.ValidateFor(report))

			spec, ok := LookupReport(report)
			require.True(t, ok)
			assert.ElementsMatch(t, spec.AllowedFilters, f.Keys())
		})
	}
}
