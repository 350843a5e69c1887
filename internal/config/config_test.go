package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onepay-ir/onepay-client/internal/config"
)

func TestDefaults(t *testing.T) {
	t.Setenv("ONEPAY_HOME", t.TempDir())

	cfg := config.New()
	require.Equal(t, "http://localhost:8000/api/v1", cfg.GetAPIBase())
	require.Equal(t, "mock", cfg.GetDefaultGateway())
	require.Equal(t, "info", cfg.GetLogLevel())
	require.Equal(t, ":8000", cfg.GetPort())
	require.Equal(t, "DEV", cfg.GetEnv())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ONEPAY_HOME", t.TempDir())
	t.Setenv("ONEPAY_API_BASE", "https://api.onepay.example/api/v1/")
	t.Setenv("ONEPAY_GATEWAY", "zarinpal")
	t.Setenv("ONEPAY_PORT", "9000")

	cfg := config.New()
	require.Equal(t, "https://api.onepay.example/api/v1", cfg.GetAPIBase(), "trailing slash is trimmed")
	require.Equal(t, "zarinpal", cfg.GetDefaultGateway())
	require.Equal(t, ":9000", cfg.GetPort())
}

func TestConfigFileBeneathEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ONEPAY_HOME", home)
	t.Setenv("ONEPAY_GATEWAY", "from-env")

	yaml := "api_base: https://file.onepay.example/api/v1\ngateway: from-file\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(yaml), 0o600))

	cfg := config.New()
	require.Equal(t, "https://file.onepay.example/api/v1", cfg.GetAPIBase())
	require.Equal(t, "from-env", cfg.GetDefaultGateway(), "environment wins over the file")
}
