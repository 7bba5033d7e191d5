package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("GOPHAUTH_ADDRESS", ":9000")
	t.Setenv("GOPHAUTH_DATABASE_DSN", "sqlite:///tmp/a.db")
	t.Setenv("GOPHAUTH_SECRET_KEY", "env-secret")
	t.Setenv("GOPHAUTH_REQUEST_TIMEOUT", "7s")
	t.Setenv("GOPHAUTH_REDIS_DB", "3")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, ":9000", cfg.EndpointAddrHTTP)
	assert.Equal(t, "sqlite:///tmp/a.db", cfg.DatabaseDSN)
	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "account-events", cfg.EventsStream, "unset variables keep their value")
}

func TestParseEnv_BadValue(t *testing.T) {
	t.Setenv("GOPHAUTH_REQUEST_TIMEOUT", "forever")

	err := parseEnv(&Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}
