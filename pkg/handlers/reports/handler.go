package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/de-tools/boutique-reports/pkg/models/api"
	"github.com/de-tools/boutique-reports/pkg/models/domain"
	"github.com/de-tools/boutique-reports/pkg/services/reports"
	"github.com/de-tools/boutique-reports/pkg/store/client"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Query parameters that select a date range instead of a filter.
const (
	paramMonth = "month"
	paramDays  = "days"
)

type ReportsService interface {
	Query(ctx context.Context, text string) (*api.NaturalLanguageQueryResponse, error)
	GenerateChecked(ctx context.Context, t domain.ReportType, filters domain.Filters) (*api.ReportByTypeResponse, error)
	Dashboard(ctx context.Context) (*api.DashboardData, error)
	CierreDia(ctx context.Context) (*api.CierreDiaData, error)
	AlertasInventario(ctx context.Context) (*api.AlertasInventarioData, error)
}

type Handler struct {
	svc ReportsService
	now func() time.Time
}

func NewHandler(svc ReportsService, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{svc: svc, now: now}
}

func (h *Handler) ListReportTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, domain.ReportTypes())
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	t, err := domain.ParseReportType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	filters, err := h.parseFilters(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.svc.GenerateChecked(ctx, t, filters)
	if err != nil {
		logger.Warn().Err(err).Str("report_type", t.String()).Msg("failed to generate report")
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req api.NaturalLanguageQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.svc.Query(r.Context(), req.Query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, data)
}

func (h *Handler) GetCierreDia(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.CierreDia(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, data)
}

func (h *Handler) GetAlertasInventario(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.AlertasInventario(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, data)
}

// parseFilters reads filters from the query string. month=current|last
// and days=N expand to fecha_inicio/fecha_fin and cannot be combined.
func (h *Handler) parseFilters(r *http.Request) (domain.Filters, error) {
	query := r.URL.Query()
	values := make(map[string]string, len(query))
	for key, vals := range query {
		if key == paramMonth || key == paramDays || len(vals) == 0 {
			continue
		}
		values[key] = vals[0]
	}

	filters, err := domain.ParseFilters(values)
	if err != nil {
		return filters, err
	}

	month, days := query.Get(paramMonth), query.Get(paramDays)
	if month != "" && days != "" {
		return filters, &domain.FilterError{Key: paramDays, Reason: "cannot be combined with month"}
	}

	now := h.now()
	switch month {
	case "":
	case "current":
		filters = filters.WithRange(domain.CurrentMonthRange(now))
	case "last":
		filters = filters.WithRange(domain.LastMonthRange(now))
	default:
		return filters, &domain.FilterError{Key: paramMonth, Reason: "expected current or last"}
	}
	if days != "" {
		n, err := strconv.Atoi(days)
		if err != nil {
			return filters, &domain.FilterError{Key: paramDays, Reason: "must be an integer"}
		}
		if n <= 0 {
			return filters, &domain.FilterError{Key: paramDays, Reason: "must be greater than 0"}
		}
		filters = filters.WithRange(domain.LastNDaysRange(now, n))
	}
	return filters, nil
}

func statusFor(err error) int {
	var reqErr *client.RequestError
	switch {
	case errors.As(err, &reqErr):
		return reqErr.StatusCode
	case errors.Is(err, domain.ErrUnknownReportType):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidFilter), errors.Is(err, reports.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, reports.ErrShapeMismatch):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	msg := err.Error()
	var reqErr *client.RequestError
	if errors.As(err, &reqErr) {
		msg = reqErr.Message
	}
	writeJSON(w, r, statusFor(err), api.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("type", fmt.Sprintf("%T", v)).
			Msg("failed to encode response")
	}
}
