package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600))
	return dir
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "avatar_platform.db", cfg.DB.DSN)
	assert.Equal(t, "session", cfg.Session.Cookie)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.InsecureSecret())
	assert.Empty(t, cfg.CORS.AllowedOrigins)
}

func TestLoad_FileValues(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	dir := writeConfig(t, `
port: "9090"
db:
  driver: postgres
  dsn: postgres://u:p@localhost/avatar
session:
  secret: from-file
  ttl: 2h
  secure: true
cors:
  allowed_origins: ["https://a.example", "https://b.example"]
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "from-file", cfg.Session.Secret)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.Session.Secure)
	assert.False(t, cfg.InsecureSecret())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := writeConfig(t, "session:\n  secret: from-file\n")
	t.Setenv("SECRET_KEY", "from-env")
	t.Setenv("DB_DSN", "/tmp/other.db")
	t.Setenv("PORT", "7000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://x.example, https://y.example")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Session.Secret)
	assert.Equal(t, "/tmp/other.db", cfg.DB.DSN)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, []string{"https://x.example", "https://y.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := writeConfig(t, "port: [unterminated")
	_, err := Load(dir)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{
		DB:      DBConfig{DSN: "x.db"},
		Session: SessionConfig{Secret: "s", Cookie: "session"},
	}
	require.NoError(t, base.Validate())

	noSecret := base
	noSecret.Session.Secret = "  "
	assert.Error(t, noSecret.Validate())

	noCookie := base
	noCookie.Session.Cookie = ""
	assert.Error(t, noCookie.Validate())

	noDSN := base
	noDSN.DB.DSN = ""
	assert.Error(t, noDSN.Validate())
}
