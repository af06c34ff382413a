package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvSecretKey, "")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "binance", cfg.Exchange)
	assert.True(t, cfg.TestOrder)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "GTC", cfg.DefaultTimeInForce)
	assert.Equal(t, int64(0), cfg.RecvWindow)

	_, err = cfg.APIKeyFunc()()
	assert.EqualError(t, err, "BINANCE_API_KEY is not set")
	_, err = cfg.SecretKeyFunc()()
	assert.EqualError(t, err, "BINANCE_SECRET_KEY is not set")
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv(EnvAPIKey, "key")
	t.Setenv(EnvSecretKey, "secret")
	t.Setenv("STONK_TEST_ORDER", "false")
	t.Setenv("STONK_RECV_WINDOW", "5000")

	path := filepath.Join(t.TempDir(), "stonk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("exchange: binance\n"), 0o600))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.False(t, cfg.TestOrder)
	assert.Equal(t, int64(5000), cfg.RecvWindow)

	key, err := cfg.APIKeyFunc()()
	require.NoError(t, err)
	assert.Equal(t, "key", key)
	secret, err := cfg.SecretKeyFunc()()
	require.NoError(t, err)
	assert.Equal(t, "secret", secret)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stonk.yaml")
	body := `
exchange: binance
base_url: https://testnet.binance.vision
timeout: 3s
test_order: false
default_time_in_force: IOC
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "https://testnet.binance.vision", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.False(t, cfg.TestOrder)
	assert.Equal(t, "IOC", cfg.DefaultTimeInForce)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stonk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recv_window: 90000\n"), 0o600))
	_, err := Load(New(), path)
	assert.Error(t, err)

	_, err = Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
