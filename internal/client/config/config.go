package config

import (
	"errors"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

const ConfigFileEnv = "GOPHAUTH_CLIENT_CONFIG"

// Config holds runtime settings for the gophauth CLI.
type Config struct {
	ServerURL           string        `env:"GOPHAUTH_SERVER_URL"`
	RequestTimeout      time.Duration `env:"GOPHAUTH_CLIENT_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"GOPHAUTH_CHECK_INTERVAL"`
}

// LoadDefaults populates c with defaults pointing at a local server.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
}

func (c *Config) Validate() error {
	var errs []error
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, errors.New("server url must be an absolute http(s) url"))
	}
	if c.OnlineCheckInterval <= 0 {
		errs = append(errs, errors.New("online check interval must be positive"))
	}
	return errors.Join(errs...)
}

// LoadConfig constructs a Config from defaults, JSON, environment and flags.
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
