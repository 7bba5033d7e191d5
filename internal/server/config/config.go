// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables and command-line
// flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// ConfigFileEnv names the variable consulted when no -c/-config flag is given.
const ConfigFileEnv = "GOPHAUTH_CONFIG"

// Config holds runtime settings for the gophauth server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: "postgres://..." (pgx), "sqlite://<path>" or empty for the
//     in-memory store.
//   - SecretKey: HMAC secret for signing access tokens (HS256). Required.
//   - RequestTimeout: upper bound for a single request.
//   - RedisAddr / RedisPassword / RedisDB / EventsStream: optional event
//     stream; events are disabled when RedisAddr is empty.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP string        `env:"GOPHAUTH_ADDRESS"`
	DatabaseDSN      string        `env:"GOPHAUTH_DATABASE_DSN"`
	SecretKey        string        `env:"GOPHAUTH_SECRET_KEY"`
	RequestTimeout   time.Duration `env:"GOPHAUTH_REQUEST_TIMEOUT"`
	RedisAddr        string        `env:"GOPHAUTH_REDIS_ADDR"`
	RedisPassword    string        `env:"GOPHAUTH_REDIS_PASSWORD"`
	RedisDB          int           `env:"GOPHAUTH_REDIS_DB"`
	EventsStream     string        `env:"GOPHAUTH_EVENTS_STREAM"`
	LogLevel         string        `env:"GOPHAUTH_LOG_LEVEL"`
}

// LoadDefaults populates Config with development defaults. There is no
// default secret.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.RequestTimeout = 10 * time.Second
	c.EventsStream = "account-events"
	c.LogLevel = "info"
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is required (-s or GOPHAUTH_SECRET_KEY)"))
	}
	if c.EndpointAddrHTTP == "" {
		errs = append(errs, errors.New("listen address is empty"))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("negative request timeout %v", c.RequestTimeout))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, flagx.ConfigFile(args, ConfigFileEnv)); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
