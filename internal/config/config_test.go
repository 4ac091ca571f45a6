package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeTempConfig(t, "jwt:\n  secret: test-secret\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "instracore", cfg.Database.DBName)
	assert.Equal(t, "1h", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "720h", cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, "uploads", cfg.Storage.BasePath)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := writeTempConfig(t, `
server:
  port: "9090"
  mode: production
database:
  dbname: institute_test
jwt:
  secret: test-secret
  access_token_expiration: 15m
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "institute_test", cfg.Database.DBName)
	assert.Equal(t, "15m", cfg.JWT.AccessTokenExpiration)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeTempConfig(t, "jwt:\n  secret: file-secret\n")

	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SERVER_PORT", "3000")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "3000", cfg.Server.Port)
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	path := writeTempConfig(t, "server:\n  port: \"8081\"\n")

	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigInvalidDuration(t *testing.T) {
	path := writeTempConfig(t, "jwt:\n  secret: test-secret\n  access_token_expiration: soon\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "localhost"
	cfg.Database.Port = "5432"
	cfg.Database.DBName = "instracore"
	cfg.Database.SSLMode = "disable"

	assert.Equal(t, "postgres://app:pw@localhost:5432/instracore?sslmode=disable", cfg.GetPostgresConnectionString())
}
