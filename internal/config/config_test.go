package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	LoadConfig()
	cfg := AppConfig

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, 10, cfg.Database.StartupAttempts)
	assert.Equal(t, "24h", cfg.JWT.ExpiresIn)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Auth.VerifyOnRegister)
	assert.Equal(t, 15*60*1000, cfg.RateLimit.WindowMS)
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 8080
  env: staging
jwt:
  secret: file-secret
  refresh_secret: file-refresh
  expires_in: 1h
rate_limit:
  max_requests: 50
`)
	t.Setenv("CONFIG_PATH", path)

	LoadConfig()
	cfg := AppConfig

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "staging", cfg.Server.Env)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, "1h", cfg.JWT.ExpiresIn)
	assert.Equal(t, 50, cfg.RateLimit.MaxRequests)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 8080
jwt:
  secret: file-secret
  refresh_secret: file-refresh
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_URL", "postgres://env-host/db")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "60000")

	LoadConfig()
	cfg := AppConfig

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "file-refresh", cfg.JWT.RefreshSecret)
	assert.Equal(t, "postgres://env-host/db", cfg.Database.DSN)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, 60000, cfg.RateLimit.WindowMS)
}

func TestLoadConfig_IgnoresBadNumericEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PORT", "not-a-number")

	LoadConfig()
	assert.Equal(t, 5000, AppConfig.Server.Port)
}
