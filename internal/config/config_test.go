package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 100, cfg.Audit.Keep)
	assert.Equal(t, time.Hour, cfg.Storage.URLExpiry)
	assert.False(t, cfg.Storage.Enabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: "9090"
database:
  name: from_file
  host: filehost
audit:
  keep: 50
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("DB_HOST", "envhost")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "from_file", cfg.Database.Name)
	assert.Equal(t, "envhost", cfg.Database.Host)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 50, cfg.Audit.Keep)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsNonPositiveKeep(t *testing.T) {
	t.Setenv("AUDIT_KEEP", "0")
	_, err := Load("")
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: "1", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=n sslmode=disable", d.DSN())
}
