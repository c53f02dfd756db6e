package terminal

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stockBajoBody = `{
	"report_type": "stock_bajo",
	"filters": {},
	"report": {
		"summary": "1 producto con stock bajo",
		"columns": ["producto", "stock_actual", "estado"],
		"rows": [{"producto": "Blusa", "categoria": "Blusas", "talla": "M", "color": "rojo",
			"stock_actual": 1, "stock_minimo": 5, "deficit": 4, "estado": "CRÍTICO"}],
		"meta": {"total_productos_criticos": 1, "sin_stock": 0}
	}
}`

var fixedNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.Local)

type recorded struct {
	path string
	body map[string]interface{}
}

func newBackend(t *testing.T, status int, body string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{path: r.URL.Path}
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &rec.body)
		}
		calls = append(calls, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli := NewCLI(Options{Output: &out, LogOutput: io.Discard, Now: func() time.Time { return fixedNow }})
	cli.SetArgs(args)
	err := cli.Execute()
	return out.String(), err
}

func TestCLI_WrapperRendersTable(t *testing.T) {
	srv, calls := newBackend(t, http.StatusOK, stockBajoBody)

	out, err := run(t, "stock-bajo", "--api-url", srv.URL+"/api/v1")
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	assert.Equal(t, "/api/v1/reports/generate/", (*calls)[0].path)
	assert.Equal(t, "stock_bajo", (*calls)[0].body["report_type"])

	assert.Contains(t, out, "Productos con stock bajo")
	assert.Contains(t, out, "1 producto con stock bajo")
	assert.Contains(t, out, "Blusa")
	assert.Contains(t, out, "total_productos_criticos: 1")
}

func TestCLI_GenerateWithFiltersAndMonth(t *testing.T) {
	srv, calls := newBackend(t, http.StatusOK, stockBajoBody)

	_, err := run(t, "generate", "ventas", "--month", "last",
		"--filter", "cliente=Ana", "--api-url", srv.URL+"/api/v1")
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	assert.Equal(t, "ventas", (*calls)[0].body["report_type"])
	assert.Equal(t, map[string]interface{}{
		"cliente":      "Ana",
		"fecha_inicio": "2025-02-01",
		"fecha_fin":    "2025-02-28",
	}, (*calls)[0].body["filters"])
}

func TestCLI_GenerateRejectsBadInput(t *testing.T) {
	srv, calls := newBackend(t, http.StatusOK, stockBajoBody)

	_, err := run(t, "generate", "inventado", "--api-url", srv.URL+"/api/v1")
	assert.Error(t, err)

	_, err = run(t, "generate", "ventas", "--filter", "color=rojo", "--api-url", srv.URL+"/api/v1")
	assert.Error(t, err)

	_, err = run(t, "generate", "ventas", "--month", "next", "--api-url", srv.URL+"/api/v1")
	assert.Error(t, err)

	_, err = run(t, "ventas-entre-montos", "--min", "500", "--max", "100", "--api-url", srv.URL+"/api/v1")
	assert.Error(t, err)

	_, err = run(t, "flujo-caja", "--days", "-3", "--api-url", srv.URL+"/api/v1")
	assert.Error(t, err)

	// cuotas filters by due date, so the sale-date range flags do not exist.
	_, err = run(t, "cuotas", "--month", "last", "--api-url", srv.URL+"/api/v1")
	assert.Error(t, err)

	_, err = run(t, "cuotas", "--filter", "tipo_pago=credito", "--api-url", srv.URL+"/api/v1")
	assert.Error(t, err)

	assert.Empty(t, *calls)
}

func TestCLI_JSONOutput(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, stockBajoBody)

	out, err := run(t, "stock-bajo", "-o", "json", "--api-url", srv.URL+"/api/v1")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "1 producto con stock bajo", decoded["summary"])
}

func TestCLI_BackendErrorIsReturned(t *testing.T) {
	srv, _ := newBackend(t, http.StatusServiceUnavailable, `{"error":"base de datos no disponible"}`)

	_, err := run(t, "morosidad", "--api-url", srv.URL+"/api/v1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base de datos no disponible")
}

func TestCLI_Types(t *testing.T) {
	out, err := run(t, "types")
	require.NoError(t, err)
	assert.Contains(t, out, "19 tipos disponibles")
	assert.Contains(t, out, "ventas_entre_montos")
}

func TestCLI_ArchiveRoundTrip(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, stockBajoBody)
	archive := filepath.Join(t.TempDir(), "reports.db")

	_, err := run(t, "stock-bajo", "--archive", archive, "--api-url", srv.URL+"/api/v1")
	require.NoError(t, err)

	out, err := run(t, "archive", "list", "--archive", archive)
	require.NoError(t, err)
	assert.Contains(t, out, "1 reportes")
	assert.Contains(t, out, "stock_bajo")
}

func TestCLI_ArchiveKeepsDefaultedFilters(t *testing.T) {
	srv, calls := newBackend(t, http.StatusOK, `{
		"report_type": "mas_vendidos",
		"filters": {"limite": 10},
		"report": {"summary": "Top", "columns": [], "rows": [], "meta": {}}
	}`)
	archive := filepath.Join(t.TempDir(), "reports.db")

	_, err := run(t, "mas-vendidos", "--limite", "0", "--archive", archive, "--api-url", srv.URL+"/api/v1")
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	sent := (*calls)[0].body["filters"]

	out, err := run(t, "archive", "list", "-o", "json", "--archive", archive)
	require.NoError(t, err)

	var snaps []struct {
		Filters map[string]interface{} `json:"filters"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &snaps))
	require.Len(t, snaps, 1)
	assert.Equal(t, map[string]interface{}{"limite": float64(10)}, sent)
	assert.Equal(t, sent, snaps[0].Filters)
}

func TestCLI_ArchiveListWithoutArchive(t *testing.T) {
	_, err := run(t, "archive", "list")
	assert.ErrorIs(t, err, ErrNoArchive)
}

func TestCLI_ArchiveWatch(t *testing.T) {
	srv, calls := newBackend(t, http.StatusOK, stockBajoBody)
	archive := filepath.Join(t.TempDir(), "reports.db")

	out, err := run(t, "archive", "watch", "--type", "stock_bajo", "--rounds", "1",
		"--archive", archive, "--api-url", srv.URL+"/api/v1")
	require.NoError(t, err)
	assert.Contains(t, out, "Ronda 1")
	assert.Len(t, *calls, 1)

	out, err = run(t, "archive", "list", "--type", "stock_bajo", "--archive", archive)
	require.NoError(t, err)
	assert.Contains(t, out, "1 reportes")
}

func TestCLI_ProfileOverridesDefaults(t *testing.T) {
	srv, calls := newBackend(t, http.StatusOK, stockBajoBody)
	profiles := filepath.Join(t.TempDir(), "boutiquecfg")
	require.NoError(t, os.WriteFile(profiles, []byte("[centro]\napi_url = "+srv.URL+"/api/v1\n"), 0o600))

	out, err := run(t, "profiles", "--profiles", profiles)
	require.NoError(t, err)
	assert.Contains(t, out, "centro")

	_, err = run(t, "stock-bajo", "--profiles", profiles, "--profile", "centro")
	require.NoError(t, err)
	assert.Len(t, *calls, 1)
}

func TestCLI_WrapperFlags(t *testing.T) {
	cli := NewCLI(Options{Output: io.Discard, LogOutput: io.Discard})

	cmd, _, err := cli.rootCmd.Find([]string{"ventas-cliente"})
	require.NoError(t, err)
	require.NotNil(t, cmd.Flags().Lookup("cliente"))
	assert.Contains(t, cmd.Flags().Lookup("cliente").Usage, "client ID")

	cmd, _, err = cli.rootCmd.Find([]string{"flujo-caja"})
	require.NoError(t, err)
	assert.NotNil(t, cmd.Flags().Lookup("month"))

	cmd, _, err = cli.rootCmd.Find([]string{"cuotas"})
	require.NoError(t, err)
	assert.Nil(t, cmd.Flags().Lookup("month"))
	assert.NotNil(t, cmd.Flags().Lookup("filter"))
}
