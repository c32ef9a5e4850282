package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Netflix/go-env"
)

// Config is read once from the environment at startup and passed down to
// whatever needs it
type Config struct {
	APIURL      string        `env:"RIMUN_API_URL,default=http://127.0.0.1:8081"`
	HTTPTimeout time.Duration `env:"RIMUN_HTTP_TIMEOUT,default=0s"`
	Environment string        `env:"ENVIRONMENT,default=dev"`
	LogLevel    string        `env:"LOG_LEVEL,default=info"`
	Port        int           `env:"PORT,default=8080"`
}

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"staging": true,
	"prod":    true,
}

// Load reads the environment without checking it, so callers can apply
// overrides before calling Validate
func Load() (*Config, error) {
	var cfg Config

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	return &cfg, nil
}

func NewConfig() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks values after env loading and after any flag overrides
func (cfg *Config) Validate() error {
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid environment '%s'. Valid environments: dev, test, staging, prod", cfg.Environment)
	}

	if cfg.APIURL == "" {
		return fmt.Errorf("RIMUN_API_URL cannot be empty")
	}
	u, err := url.Parse(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("invalid RIMUN_API_URL %q: %w", cfg.APIURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("RIMUN_API_URL must be an absolute http(s) URL, got %q", cfg.APIURL)
	}

	if cfg.HTTPTimeout < 0 {
		return fmt.Errorf("http timeout must not be negative, got %v", cfg.HTTPTimeout)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}

	return nil
}
