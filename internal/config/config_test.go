package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagegen/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  host: localhost
  dbname: pagegen
site:
  origin: https://example.com
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "INR", cfg.Site.Currency)
	assert.Equal(t, config.DefaultPrerenderLimit, cfg.Generation.PrerenderLimit)
	assert.Equal(t, 24*time.Hour, cfg.Generation.CacheTTL)
}

func TestLoadRejectsMissingOrigin(t *testing.T) {
	path := writeConfig(t, `
database:
  host: localhost
  dbname: pagegen
`)

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "site.origin")
}

func TestLoadRejectsTrailingSlashOrigin(t *testing.T) {
	path := writeConfig(t, `
database:
  host: localhost
  dbname: pagegen
site:
  origin: https://example.com/
`)

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  host: localhost
  dbname: pagegen
site:
  origin: https://example.com
`)

	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("PAGEGEN_PORT", "9090")
	t.Setenv("APP_DEBUG", "true")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.True(t, cfg.Debug)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
