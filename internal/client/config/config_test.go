package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T) {
	t.Helper()
	origArgs := os.Args
	os.Args = []string{"qmshub"}
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv("QMSHUB_CONFIG", "")
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvRequestTimeout, "")
	t.Setenv(EnvDatabasePath, "")
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetArgs(t)

	cfg := LoadConfig()
	require.Equal(t, "http://localhost:5000/", cfg.BaseURL)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, "qmshub.db", cfg.DatabasePath)
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	resetArgs(t)
	os.Args = []string{"qmshub", "-a", "https://qms.example.com/api", "-t", "5"}

	cfg := LoadConfig()
	// Trailing slash is normalized on.
	require.Equal(t, "https://qms.example.com/api/", cfg.BaseURL)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_EnvOverridesJSON(t *testing.T) {
	resetArgs(t)

	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"base_url": "http://from-json/",
		"request_timeout": "10s",
		"database_path": "json.db"
	}`), 0o600))
	t.Setenv("QMSHUB_CONFIG", path)
	t.Setenv(EnvBaseURL, "http://from-env/")

	cfg := LoadConfig()
	require.Equal(t, "http://from-env/", cfg.BaseURL)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, "json.db", cfg.DatabasePath)
}

func TestLoadConfig_MalformedEnvTimeoutIgnored(t *testing.T) {
	resetArgs(t)
	t.Setenv(EnvRequestTimeout, "soon")

	cfg := LoadConfig()
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
}
