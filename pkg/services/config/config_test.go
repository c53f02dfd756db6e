package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/boutique-reports/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Given no file and no environment
	t.Setenv("REPORTS_API_URL", "")

	// When
	s, err := Load("")

	// Then
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, s.APIURL)
	assert.Equal(t, "http://localhost:8000/api/v1/reports", s.ReportsURL())
	assert.Zero(t, s.Timeout)
	assert.Equal(t, "info", s.LogLevel)
}

func TestLoad_ValidYAML_PopulatesAllFields(t *testing.T) {
	// Given
	// No indentation inside the backtick block to avoid YAML parsing errors
	path := writeFile(t, "reports.yaml", `api_url: "https://boutique.example.com/api/v1/"
token: "tok"
timeout: "15s"
log_level: "debug"`)

	// When
	s, err := Load(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "https://boutique.example.com/api/v1/", s.APIURL)
	assert.Equal(t, "https://boutique.example.com/api/v1/reports", s.ReportsURL())
	assert.Equal(t, "tok", s.Token)
	assert.Equal(t, 15*time.Second, s.Timeout)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	// Given
	path := writeFile(t, "reports.yaml", `api_url: "https://file.example.com/api/v1"`)
	t.Setenv("REPORTS_API_URL", "https://env.example.com/api/v1")
	t.Setenv("REPORTS_TIMEOUT", "2s")

	// When
	s, err := Load(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/api/v1", s.APIURL)
	assert.Equal(t, 2*time.Second, s.Timeout)
}

func TestLoad_InvalidSettings_ReturnsError(t *testing.T) {
	t.Run("bad yaml", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "api_url: example:443: bad")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		path := writeFile(t, "level.yaml", `log_level: "loud"`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestSettings_Merge(t *testing.T) {
	base := Settings{APIURL: DefaultAPIURL, LogLevel: "info"}
	got := base.Merge(Settings{Token: "abc", Timeout: time.Second})

	assert.Equal(t, Settings{APIURL: DefaultAPIURL, Token: "abc", Timeout: time.Second, LogLevel: "info"}, got)
}

const profilesFile = `[centro]
api_url = https://centro.example.com/api/v1
token = abc123
timeout = 5s

[norte]
api_url = https://norte.example.com/api/v1

[broken]
timeout = forever
`

func TestRegistry_Profiles(t *testing.T) {
	ctx := context.Background()
	reg, err := NewRegistry(writeFile(t, "boutiquecfg", profilesFile))
	require.NoError(t, err)

	profiles, err := reg.GetProfiles(ctx)
	require.NoError(t, err)
	assert.Contains(t, profiles, domain.ConfigProfile{Name: "centro", APIURL: "https://centro.example.com/api/v1"})
	assert.Contains(t, profiles, domain.ConfigProfile{Name: "norte", APIURL: "https://norte.example.com/api/v1"})

	s, err := reg.GetConfig(ctx, "centro")
	require.NoError(t, err)
	assert.Equal(t, "abc123", s.Token)
	assert.Equal(t, 5*time.Second, s.Timeout)

	_, err = reg.GetConfig(ctx, "sur")
	assert.Error(t, err)

	_, err = reg.GetConfig(ctx, "broken")
	assert.Error(t, err)
}

func TestNewRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
