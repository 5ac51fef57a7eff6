package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
server:
  host: 0.0.0.0
  port: 8080
database:
  host: localhost
  port: 5432
  user: lunch
  password: secret
  database: lunchdb
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
	assert.Contains(t, cfg.GetDatabaseConnectionString(), "dbname=lunchdb")
	assert.Contains(t, cfg.GetDatabaseConnectionString(), "sslmode=disable")

	// Defaults
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "0 10 0 * * *", cfg.Scheduler.ExpirePackages)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(writeConfig(t, `
server:
  port: 8080
database:
  host: localhost
  user: lunch
`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `
server:
  port: 0
database:
  host: localhost
  user: lunch
  database: lunchdb
`))
	assert.Error(t, err)
}
