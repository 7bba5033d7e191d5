package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{ServerURL: "https://auth.example.com", OnlineCheckInterval: time.Second}, false},
		{"no scheme", Config{ServerURL: "127.0.0.1:8080", OnlineCheckInterval: time.Second}, true},
		{"non-http scheme", Config{ServerURL: "tcp://h:1", OnlineCheckInterval: time.Second}, true},
		{"zero interval", Config{ServerURL: "http://h:1"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_url": "http://json:1",
		"request_timeout": "4s",
		"online_check_interval": "7s"
	}`), 0o600))

	t.Setenv("GOPHAUTH_SERVER_URL", "http://env:2")
	t.Setenv("GOPHAUTH_CLIENT_TIMEOUT", "")
	t.Setenv("GOPHAUTH_CHECK_INTERVAL", "")

	cfg, err := load([]string{"-c", path, "-i", "9"})
	require.NoError(t, err)

	want := &Config{
		ServerURL:           "http://env:2",
		RequestTimeout:      4 * time.Second,
		OnlineCheckInterval: 9 * time.Second,
	}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_url":"http://file:3"}`), 0o600))
	t.Setenv(ConfigFileEnv, path)

	cfg, err := load(nil)
	require.NoError(t, err)
	assert.Equal(t, "http://file:3", cfg.ServerURL)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := load([]string{"-config", filepath.Join(t.TempDir(), "nope.json")})
		assert.Error(t, err)
	})

	t.Run("bad json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{ nope`), 0o600))
		_, err := load([]string{"-c", path})
		assert.Error(t, err)
	})

	t.Run("bad interval flag", func(t *testing.T) {
		_, err := load([]string{"-i", "abc"})
		assert.Error(t, err)
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := load([]string{"-a", "localhost"})
		assert.Error(t, err)
	})
}

func TestParseFlags_KeepsUnsetValues(t *testing.T) {
	cfg := &Config{ServerURL: "http://a:1", RequestTimeout: 5 * time.Second, OnlineCheckInterval: time.Second}
	require.NoError(t, parseFlags(cfg, []string{"-a", "http://b:2", "-unknown", "x"}))

	assert.Equal(t, "http://b:2", cfg.ServerURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Second, cfg.OnlineCheckInterval)
}
