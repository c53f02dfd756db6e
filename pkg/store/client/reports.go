package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/de-tools/boutique-reports/pkg/models/api"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const DefaultBaseURL = "http://localhost:8000/api/v1/reports"

const (
	pathQuery             = "/query/"
	pathGenerate          = "/generate/"
	pathDashboard         = "/dashboard/"
	pathCierreDia         = "/cierre-dia/"
	pathAlertasInventario = "/alertas-inventario/"
)

// ReportsAPI is the surface of the reporting backend.
type ReportsAPI interface {
	GenerateNaturalLanguageReport(ctx context.Context, req api.NaturalLanguageQueryRequest) (*api.NaturalLanguageQueryResponse, error)
	GenerateReportByType(ctx context.Context, req api.ReportByTypeRequest) (*api.ReportByTypeResponse, error)
	GetDashboard(ctx context.Context) (*api.DashboardData, error)
	GetCierreDia(ctx context.Context) (*api.CierreDiaData, error)
	GetAlertasInventario(ctx context.Context) (*api.AlertasInventarioData, error)
}

type Config struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	UserAgent string
}

type Option func(*ReportsClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *ReportsClient) {
		c.httpClient = hc
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *ReportsClient) {
		c.metrics = m
	}
}

// ReportsClient issues exactly one round trip per call. It holds no
// mutable state and is safe for concurrent use.
type ReportsClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
	metrics    *Metrics
}

func NewReportsClient(cfg Config, opts ...Option) (*ReportsClient, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", base, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", base)
	}

	c := &ReportsClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(base, "/"),
		token:      cfg.Token,
		userAgent:  cfg.UserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *ReportsClient) BaseURL() string {
	return c.baseURL
}

// GenerateNaturalLanguageReport submits a free-text query such as
// "ventas del mes pasado mayores a 1000".
func (c *ReportsClient) GenerateNaturalLanguageReport(
	ctx context.Context,
	req api.NaturalLanguageQueryRequest,
) (*api.NaturalLanguageQueryResponse, error) {
	var out api.NaturalLanguageQueryResponse
	if err := c.do(ctx, http.MethodPost, pathQuery, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ReportsClient) GenerateReportByType(
	ctx context.Context,
	req api.ReportByTypeRequest,
) (*api.ReportByTypeResponse, error) {
	var out api.ReportByTypeResponse
	if err := c.do(ctx, http.MethodPost, pathGenerate, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ReportsClient) GetDashboard(ctx context.Context) (*api.DashboardData, error) {
	var out api.DashboardData
	if err := c.do(ctx, http.MethodGet, pathDashboard, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ReportsClient) GetCierreDia(ctx context.Context) (*api.CierreDiaData, error) {
	var out api.CierreDiaData
	if err := c.do(ctx, http.MethodGet, pathCierreDia, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ReportsClient) GetAlertasInventario(ctx context.Context) (*api.AlertasInventarioData, error) {
	var out api.AlertasInventarioData
	if err := c.do(ctx, http.MethodGet, pathAlertasInventario, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ReportsClient) do(ctx context.Context, method, path string, body any, out any) error {
	logger := zerolog.Ctx(ctx)

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(path, 0, time.Since(start))
		logger.Warn().Err(err).Str("path", path).Msg("reports request failed")
		return fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close response body")
		}
	}(resp.Body)

	c.metrics.observe(path, resp.StatusCode, time.Since(start))
	logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("reports request completed")

	return decodeResponse(resp, out)
}

// newRequest prepares a JSON request; body is serialized only when non-nil.
func (c *ReportsClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

// decodeResponse unwraps a backend response: any 2xx decodes into out,
// everything else becomes a *RequestError.
func decodeResponse(resp *http.Response, out any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newRequestError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
