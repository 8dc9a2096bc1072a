package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 6432, cfg.DBPort)
	assert.Equal(t, "owntracks", cfg.DBName)
	assert.Equal(t, 2, cfg.DBPoolMin)
	assert.Equal(t, 10, cfg.DBPoolMax)
	assert.Equal(t, 5*time.Second, cfg.DBConnectTimeout)
	assert.False(t, cfg.MigrateOnStart)
	assert.False(t, cfg.OAuth2Enabled)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 100, cfg.RateLimitLimit)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_DB", "tracking")
	t.Setenv("DB_POOL_MAX", "25")
	t.Setenv("OAUTH2_ENABLED", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "tracking", cfg.DBName)
	assert.Equal(t, 25, cfg.DBPoolMax)
	assert.True(t, cfg.OAuth2Enabled)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}

func TestLoad_UnparsableValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("MIGRATE_ON_START", "maybe")

	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.MigrateOnStart)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:           "db.local",
		DBPort:           6432,
		DBUser:           "reader",
		DBPassword:       "secret",
		DBName:           "owntracks",
		DBConnectTimeout: 5 * time.Second,
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "host=db.local")
	assert.Contains(t, dsn, "port=6432")
	assert.Contains(t, dsn, "dbname=owntracks")
	assert.Contains(t, dsn, "connect_timeout=5")
}

func TestValidateDatabase(t *testing.T) {
	cfg := &Config{DBUser: "reader", DBPassword: "secret"}
	require.NoError(t, cfg.ValidateDatabase())

	cfg = &Config{DBUser: "reader"}
	assert.Error(t, cfg.ValidateDatabase())
}
