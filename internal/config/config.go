// Package config loads the application configuration.
//
// Values are resolved in order: built-in defaults, the optional YAML file named
// by CONFIG_FILE, then individual environment variables. The result is checked
// by Validate before use.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	envcfg "beer-catalog/pkg/config"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const minFetchTimeout = 100 * time.Millisecond

// AppConfig is the full service configuration.
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Query     QueryConfig     `yaml:"query"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	// RequestTimeout bounds a whole catalog request, fetch included.
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Version         string        `yaml:"version"`
}

// FetchConfig configures the outbound product source.
type FetchConfig struct {
	Timeout        time.Duration `yaml:"timeout"`
	MaxBodySize    int64         `yaml:"max_body_size"`
	MaxRedirects   int           `yaml:"max_redirects"`
	DenyPrivateIPs bool          `yaml:"deny_private_ips"`
}

// QueryConfig holds query defaults.
type QueryConfig struct {
	// DefaultTargetPrice is used by priceExactly and all when targetPrice is absent.
	DefaultTargetPrice string `yaml:"default_target_price"`
}

// RateLimitConfig configures the per-client token bucket.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
	// TrustProxy keys clients by X-Forwarded-For / X-Real-IP.
	TrustProxy bool `yaml:"trust_proxy"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			RequestTimeout:    30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			Version:           "dev",
		},
		Fetch: FetchConfig{
			Timeout:        10 * time.Second,
			MaxBodySize:    10 * 1024 * 1024,
			MaxRedirects:   5,
			DenyPrivateIPs: true,
		},
		Query: QueryConfig{
			DefaultTargetPrice: "17.99",
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     5,
			Burst:   10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, CONFIG_FILE and the environment.
func Load() (*AppConfig, error) {
	cfg := Default()

	if path := envcfg.GetEnvString("CONFIG_FILE", ""); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *AppConfig) mergeFile(path string) error {
	// #nosec G304 -- path comes from the operator's environment
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *AppConfig) applyEnv() {
	c.Server.Addr = envcfg.GetEnvString("SERVER_ADDR", c.Server.Addr)
	c.Server.ReadHeaderTimeout = envcfg.GetEnvDuration("SERVER_READ_HEADER_TIMEOUT", c.Server.ReadHeaderTimeout)
	c.Server.RequestTimeout = envcfg.GetEnvDuration("SERVER_REQUEST_TIMEOUT", c.Server.RequestTimeout)
	c.Server.ShutdownTimeout = envcfg.GetEnvDuration("SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.Server.Version = envcfg.GetEnvString("APP_VERSION", c.Server.Version)

	c.Fetch.Timeout = envcfg.GetEnvDuration("FETCH_TIMEOUT", c.Fetch.Timeout)
	c.Fetch.MaxBodySize = envcfg.GetEnvInt64("FETCH_MAX_BODY_SIZE", c.Fetch.MaxBodySize)
	c.Fetch.MaxRedirects = envcfg.GetEnvInt("FETCH_MAX_REDIRECTS", c.Fetch.MaxRedirects)
	c.Fetch.DenyPrivateIPs = envcfg.GetEnvBool("FETCH_DENY_PRIVATE_IPS", c.Fetch.DenyPrivateIPs)

	c.Query.DefaultTargetPrice = envcfg.GetEnvString("DEFAULT_TARGET_PRICE", c.Query.DefaultTargetPrice)

	c.RateLimit.Enabled = envcfg.GetEnvBool("RATE_LIMIT_ENABLED", c.RateLimit.Enabled)
	c.RateLimit.RPS = envcfg.GetEnvFloat("RATE_LIMIT_RPS", c.RateLimit.RPS)
	c.RateLimit.Burst = envcfg.GetEnvInt("RATE_LIMIT_BURST", c.RateLimit.Burst)
	c.RateLimit.TrustProxy = envcfg.GetEnvBool("RATE_LIMIT_TRUST_PROXY", c.RateLimit.TrustProxy)

	c.Log.Level = envcfg.GetEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = envcfg.GetEnvString("LOG_FORMAT", c.Log.Format)
}

// Validate reports every invalid setting at once.
func (c *AppConfig) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server addr cannot be empty"))
	}
	for name, d := range map[string]time.Duration{
		"server read_header_timeout": c.Server.ReadHeaderTimeout,
		"server request_timeout":     c.Server.RequestTimeout,
		"server shutdown_timeout":    c.Server.ShutdownTimeout,
		"fetch timeout":              c.Fetch.Timeout,
	} {
		if err := envcfg.ValidatePositiveDuration(d); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if c.Fetch.Timeout > 0 && c.Server.RequestTimeout > 0 {
		// A fetch must finish inside the request deadline.
		if err := envcfg.ValidateDurationRange(c.Fetch.Timeout, minFetchTimeout, c.Server.RequestTimeout); err != nil {
			errs = append(errs, fmt.Errorf("fetch timeout must lie within [%v, server request_timeout]: %w", minFetchTimeout, err))
		}
	}
	if c.Fetch.MaxBodySize <= 0 {
		errs = append(errs, errors.New("fetch max_body_size must be positive"))
	}
	if c.Fetch.MaxRedirects < 0 {
		errs = append(errs, errors.New("fetch max_redirects cannot be negative"))
	}
	if _, err := c.TargetPrice(); err != nil {
		errs = append(errs, err)
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RPS <= 0 {
			errs = append(errs, errors.New("rate_limit rps must be positive"))
		}
		if c.RateLimit.Burst < 1 {
			errs = append(errs, errors.New("rate_limit burst must be at least 1"))
		}
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log format must be json or text, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// TargetPrice parses Query.DefaultTargetPrice.
func (c *AppConfig) TargetPrice() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.Query.DefaultTargetPrice)
	if err != nil {
		return decimal.Zero, fmt.Errorf("query default_target_price %q is invalid: %w", c.Query.DefaultTargetPrice, err)
	}
	return d, nil
}
