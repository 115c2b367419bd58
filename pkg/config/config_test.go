package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{EnvKeyID, EnvSecretKey, EnvPaper, EnvBaseURL, EnvDataURL, EnvTimeout, EnvLogLevel, EnvLogFile} {
		t.Setenv(k, "")
	}
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "https://paper-api.alpaca.markets", BaseURL(Trading, true))
	assert.Equal(t, "https://api.alpaca.markets", BaseURL(Trading, false))
	assert.Equal(t, "https://data.alpaca.markets", BaseURL(MarketData, false))
	assert.Equal(t, "https://broker-api.sandbox.alpaca.markets", BaseURL(Broker, true))

	c := Default()
	assert.Equal(t, PaperTradingURL, c.URL(Trading))
	c.BaseURL = "http://127.0.0.1:8080/"
	assert.Equal(t, "http://127.0.0.1:8080", c.URL(Trading))
	assert.Equal(t, MarketDataURL, c.URL(MarketData))
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvKeyID, "key")
	t.Setenv(EnvSecretKey, "secret")
	t.Setenv(EnvPaper, "false")
	t.Setenv(EnvTimeout, "5")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "key", c.Key)
	assert.Equal(t, "secret", c.Secret)
	assert.False(t, c.Paper)
	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.Equal(t, LiveTradingURL, c.URL(Trading))
	assert.NoError(t, c.Validate())
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "alpaca.yaml")
	require.NoError(t, os.WriteFile(path, []byte("key: file-key\nsecret: file-secret\npaper: true\ntimeout: 10s\nlog_level: debug\n"), 0o600))

	c, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", c.Key)
	assert.Equal(t, 10*time.Second, c.Timeout)
	assert.Equal(t, "debug", c.LogLevel)

	t.Setenv(EnvKeyID, "env-key")
	c, err = LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", c.Key)
	assert.Equal(t, "file-secret", c.Secret)

	jsonPath := filepath.Join(dir, "alpaca.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"key":"j","secret":"s","paper":false}`), 0o600))
	c, err = LoadFromFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "env-key", c.Key)
	assert.False(t, c.Paper)

	_, err = LoadFromFile(filepath.Join(dir, "alpaca.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := Default()
	assert.ErrorContains(t, c.Validate(), EnvKeyID)
	c.Key = "k"
	assert.ErrorContains(t, c.Validate(), EnvSecretKey)
	c.Secret = "s"
	assert.NoError(t, c.Validate())
}
