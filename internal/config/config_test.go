package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "*/5 * * * *", cfg.Schedule.AlertCron)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":9090"
database:
  password: from-file
market_data:
  base_url: https://quotes.example.com
`), 0o600))

	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "https://quotes.example.com", cfg.MarketData.BaseURL)
	require.NoError(t, cfg.Validate())
}

func TestValidate_RequiredFields(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.password")

	cfg.Database.Password = "pw"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "market_data.base_url")
}

func TestDSN(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	cfg.Database.Password = "pw"

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=pw dbname=tradedesk sslmode=disable",
		cfg.DSN())
}
