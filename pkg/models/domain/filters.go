package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidFilter = errors.New("invalid filter")

type FilterKey string

const (
	FilterFechaInicio FilterKey = "fecha_inicio"
	FilterFechaFin    FilterKey = "fecha_fin"
	FilterCliente     FilterKey = "cliente"
	FilterPeriodo     FilterKey = "periodo"
	FilterDias        FilterKey = "dias"
	FilterMonto       FilterKey = "monto"
	FilterMontoMin    FilterKey = "monto_min"
	FilterMontoMax    FilterKey = "monto_max"
	FilterLimite      FilterKey = "limite"
	FilterCategoria   FilterKey = "categoria"
	FilterStockBajo   FilterKey = "stock_bajo"
	FilterMasVendidos FilterKey = "mas_vendidos"
	FilterOrden       FilterKey = "orden"
	FilterTipoPago    FilterKey = "tipo_pago"
	FilterEstadoPago  FilterKey = "estado_pago"
	FilterMetodoPago  FilterKey = "metodo_pago"
	FilterVenta       FilterKey = "venta"
	FilterEstado      FilterKey = "estado"
	FilterVencDesde   FilterKey = "vencimiento_desde"
	FilterVencHasta   FilterKey = "vencimiento_hasta"
)

type Periodo string

const (
	PeriodoDia    Periodo = "dia"
	PeriodoSemana Periodo = "semana"
	PeriodoMes    Periodo = "mes"
	PeriodoAnio   Periodo = "año"
)

type TipoPago string

const (
	TipoPagoContado TipoPago = "contado"
	TipoPagoCredito TipoPago = "credito"
)

type EstadoPago string

const (
	EstadoPagoPendiente EstadoPago = "pendiente"
	EstadoPagoParcial   EstadoPago = "parcial"
	EstadoPagoPagado    EstadoPago = "pagado"
)

type MetodoPago string

const (
	MetodoPagoEfectivo MetodoPago = "efectivo"
	MetodoPagoTarjeta  MetodoPago = "tarjeta"
	MetodoPagoQR       MetodoPago = "qr"
)

// EstadoCuota is the state of a credit installment.
type EstadoCuota string

const (
	EstadoCuotaPendiente EstadoCuota = "pendiente"
	EstadoCuotaPagada    EstadoCuota = "pagada"
	EstadoCuotaVencida   EstadoCuota = "vencida"
)

// Filters narrows the input data of a report. Only the fields listed here
// are ever sent; there is no pass-through for arbitrary keys. Cliente and
// Venta are backend IDs.
type Filters struct {
	FechaInicio      string      `json:"fecha_inicio,omitempty" validate:"omitempty,datetime=2006-01-02"`
	FechaFin         string      `json:"fecha_fin,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Cliente          string      `json:"cliente,omitempty"`
	Periodo          Periodo     `json:"periodo,omitempty" validate:"omitempty,oneof=dia semana mes año"`
	Dias             *int        `json:"dias,omitempty" validate:"omitempty,gt=0"`
	Monto            *float64    `json:"monto,omitempty" validate:"omitempty,gte=0"`
	MontoMin         *float64    `json:"monto_min,omitempty" validate:"omitempty,gte=0"`
	MontoMax         *float64    `json:"monto_max,omitempty" validate:"omitempty,gte=0"`
	Limite           *int        `json:"limite,omitempty" validate:"omitempty,gt=0"`
	Categoria        string      `json:"categoria,omitempty"`
	StockBajo        *bool       `json:"stock_bajo,omitempty"`
	MasVendidos      *bool       `json:"mas_vendidos,omitempty"`
	Orden            string      `json:"orden,omitempty" validate:"omitempty,oneof=fecha total -fecha -total"`
	TipoPago         TipoPago    `json:"tipo_pago,omitempty" validate:"omitempty,oneof=contado credito"`
	EstadoPago       EstadoPago  `json:"estado_pago,omitempty" validate:"omitempty,oneof=pendiente parcial pagado"`
	MetodoPago       MetodoPago  `json:"metodo_pago,omitempty" validate:"omitempty,oneof=efectivo tarjeta qr"`
	Venta            *int        `json:"venta,omitempty" validate:"omitempty,gt=0"`
	Estado           EstadoCuota `json:"estado,omitempty" validate:"omitempty,oneof=pendiente pagada vencida"`
	VencimientoDesde string      `json:"vencimiento_desde,omitempty" validate:"omitempty,datetime=2006-01-02"`
	VencimientoHasta string      `json:"vencimiento_hasta,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// FilterError names the offending filter key.
type FilterError struct {
	Key    FilterKey
	Reason string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid filter %q: %s", e.Key, e.Reason)
}

func (e *FilterError) Unwrap() error {
	return ErrInvalidFilter
}

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

// Validate checks value formats and the cross-field ranges.
func (f Filters) Validate() error {
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &FilterError{Key: FilterKey(fe.Field()), Reason: describeTag(fe)}
		}
		return fmt.Errorf("failed to validate filters: %w", err)
	}

	if f.FechaInicio != "" && f.FechaFin != "" && f.FechaInicio > f.FechaFin {
		return &FilterError{Key: FilterFechaInicio, Reason: "fecha_inicio must not be after fecha_fin"}
	}
	if f.MontoMin != nil && f.MontoMax != nil && *f.MontoMin > *f.MontoMax {
		return &FilterError{Key: FilterMontoMin, Reason: "monto_min must not exceed monto_max"}
	}
	// The due-date range only applies when both ends are present.
	if (f.VencimientoDesde == "") != (f.VencimientoHasta == "") {
		key := FilterVencDesde
		if f.VencimientoDesde == "" {
			key = FilterVencHasta
		}
		return &FilterError{Key: key, Reason: "vencimiento_desde and vencimiento_hasta must be set together"}
	}
	if f.VencimientoDesde > f.VencimientoHasta {
		return &FilterError{Key: FilterVencDesde, Reason: "vencimiento_desde must not be after vencimiento_hasta"}
	}
	return nil
}

// ValidateFor runs Validate and rejects keys the report type does not accept.
func (f Filters) ValidateFor(t ReportType) error {
	spec, ok := LookupReport(t)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownReportType, t)
	}
	if err := f.Validate(); err != nil {
		return err
	}
	for _, key := range f.Keys() {
		if !spec.Allows(key) {
			return &FilterError{Key: key, Reason: fmt.Sprintf("not accepted by report type %s", t)}
		}
	}
	return nil
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "datetime":
		return "expected a YYYY-MM-DD date"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

// Keys lists the filters that are set, in canonical order.
func (f Filters) Keys() []FilterKey {
	var keys []FilterKey
	add := func(k FilterKey, set bool) {
		if set {
			keys = append(keys, k)
		}
	}
	add(FilterFechaInicio, f.FechaInicio != "")
	add(FilterFechaFin, f.FechaFin != "")
	add(FilterCliente, f.Cliente != "")
	add(FilterPeriodo, f.Periodo != "")
	add(FilterDias, f.Dias != nil)
	add(FilterMonto, f.Monto != nil)
	add(FilterMontoMin, f.MontoMin != nil)
	add(FilterMontoMax, f.MontoMax != nil)
	add(FilterLimite, f.Limite != nil)
	add(FilterCategoria, f.Categoria != "")
	add(FilterStockBajo, f.StockBajo != nil)
	add(FilterMasVendidos, f.MasVendidos != nil)
	add(FilterOrden, f.Orden != "")
	add(FilterTipoPago, f.TipoPago != "")
	add(FilterEstadoPago, f.EstadoPago != "")
	add(FilterMetodoPago, f.MetodoPago != "")
	add(FilterVenta, f.Venta != nil)
	add(FilterEstado, f.Estado != "")
	add(FilterVencDesde, f.VencimientoDesde != "")
	add(FilterVencHasta, f.VencimientoHasta != "")
	return keys
}

func (f Filters) IsEmpty() bool {
	return len(f.Keys()) == 0
}

// WithRange returns a copy of f restricted to the date range.
func (f Filters) WithRange(r DateRange) Filters {
	f.FechaInicio = r.FechaInicio
	f.FechaFin = r.FechaFin
	return f
}

// ParseFilters builds Filters from string pairs such as CLI flags or a
// query string. Unknown keys are rejected.
func ParseFilters(values map[string]string) (Filters, error) {
	var f Filters
	for raw, value := range values {
		key := FilterKey(raw)
		var err error
		switch key {
		case FilterFechaInicio:
			f.FechaInicio = value
		case FilterFechaFin:
			f.FechaFin = value
		case FilterCliente:
			f.Cliente = value
		case FilterPeriodo:
			f.Periodo = Periodo(value)
		case FilterCategoria:
			f.Categoria = value
		case FilterOrden:
			f.Orden = value
		case FilterTipoPago:
			f.TipoPago = TipoPago(value)
		case FilterEstadoPago:
			f.EstadoPago = EstadoPago(value)
		case FilterMetodoPago:
			f.MetodoPago = MetodoPago(value)
		case FilterEstado:
			f.Estado = EstadoCuota(value)
		case FilterVencDesde:
			f.VencimientoDesde = value
		case FilterVencHasta:
			f.VencimientoHasta = value
		case FilterVenta:
			f.Venta, err = parseInt(value)
		case FilterDias:
			f.Dias, err = parseInt(value)
		case FilterLimite:
			f.Limite, err = parseInt(value)
		case FilterMonto:
			f.Monto, err = parseFloat(value)
		case FilterMontoMin:
			f.MontoMin, err = parseFloat(value)
		case FilterMontoMax:
			f.MontoMax, err = parseFloat(value)
		case FilterStockBajo:
			f.StockBajo, err = parseBool(value)
		case FilterMasVendidos:
			f.MasVendidos, err = parseBool(value)
		default:
			return Filters{}, &FilterError{Key: key, Reason: "unknown filter"}
		}
		if err != nil {
			return Filters{}, &FilterError{Key: key, Reason: err.Error()}
		}
	}
	if err := f.Validate(); err != nil {
		return Filters{}, err
	}
	return f, nil
}

// DecodeFilters parses a JSON object into Filters, rejecting unknown keys.
func DecodeFilters(data []byte) (Filters, error) {
	var f Filters
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return Filters{}, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	if err := f.Validate(); err != nil {
		return Filters{}, err
	}
	return f, nil
}

func parseInt(s string) (*int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("expected an integer, got %q", s)
	}
	return &n, nil
}

func parseFloat(s string) (*float64, error) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("expected a number, got %q", s)
	}
	return &n, nil
}

func parseBool(s string) (*bool, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("expected true or false, got %q", s)
	}
	return &b, nil
}

func Int(n int) *int { return &n }

func Float(n float64) *float64 { return &n }

func Bool(b bool) *bool { return &b }
