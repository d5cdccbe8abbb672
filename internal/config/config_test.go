package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "inventory.db", cfg.Database.DSN)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.AMQP.URL)
	assert.Equal(t, "inventory", cfg.AMQP.Exchange)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "pgx")
	t.Setenv("DATABASE_DSN", "postgres://localhost/inventory")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load(newTestViper())
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/inventory", cfg.Database.DSN)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: \"7000\"\nlog:\n  level: debug\n"), 0o600))

	v := newTestViper()
	require.NoError(t, ReadFile(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.HTTPPort)
	assert.Equal(t, "debug", cfg.LogLevel)

	assert.Error(t, ReadFile(newTestViper(), filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestValidateReportsAllProblems(t *testing.T) {
	v := newTestViper()
	v.Set("http.port", "abc")
	v.Set("database.driver", "mysql")
	v.Set("env", "production")
	v.Set("request.timeout", "0s")

	_, err := Load(v)
	require.Error(t, err)
	for _, want := range []string{
		`http.port "abc" is not a valid port`,
		`database.driver "mysql" must be sqlite or pgx`,
		"secret must be changed in production",
		"request.timeout must be positive",
	} {
		assert.ErrorContains(t, err, want)
	}
}
