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
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Contains(t, cfg.DSN, "flipper_db")
	assert.Contains(t, cfg.DSN, "tcp(127.0.0.1:3306)")
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
port: 9000
env: production
jwt_secret: super-secret
database:
  host: db.internal
  port: 3307
  user: flipper
  password: hunter2
  name: flipper_prod
allowed_origins:
  - flipper.example.com
  - "*.flipper.example.com"
paths:
  uploads: /var/lib/flipper/uploads
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Contains(t, cfg.DSN, "flipper:hunter2@tcp(db.internal:3307)/flipper_prod")
	assert.Equal(t, []string{"flipper.example.com", "*.flipper.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "/var/lib/flipper/uploads", cfg.UploadDir())
}

func TestLoadExplicitDSNWins(t *testing.T) {
	path := writeConfig(t, `
dsn: "user:pw@tcp(10.0.0.1:3306)/other?parseTime=true"
database:
  host: ignored.example.com
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "user:pw@tcp(10.0.0.1:3306)/other?parseTime=true", cfg.DSN)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	path := writeConfig(t, "port: 70000\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "prot: 8080\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestUploadDirDefaultIsRelativeToWorkingDir(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	dir := cfg.UploadDir()
	assert.True(t, filepath.IsAbs(dir))
	assert.Equal(t, "uploads", filepath.Base(dir))
}
