package config

import (
	"log/slog"
	"time"

	"github.com/Aubaid12/Flight-Search-Engine/internal/pkg/exception"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel LogLeveler `mapstructure:"LOG_LEVEL"`
	HTTP     HTTP       `mapstructure:",squash"`
	Amadeus  Amadeus    `mapstructure:",squash"`
	Search   Search     `mapstructure:",squash"`
	Redis    Redis      `mapstructure:",squash"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}

// Amadeus holds the travel-inventory API settings. The base URL
// defaults to the vendor sandbox.
type Amadeus struct {
	BaseURL      string        `mapstructure:"AMADEUS_BASE_URL"`
	APIKey       string        `mapstructure:"AMADEUS_API_KEY"`
	APISecret    string        `mapstructure:"AMADEUS_API_SECRET"`
	Timeout      time.Duration `mapstructure:"AMADEUS_TIMEOUT"`
	RateLimitRPS int           `mapstructure:"AMADEUS_RATE_LIMIT"`
	MaxResults   int           `mapstructure:"AMADEUS_MAX_RESULTS"`
}

type Search struct {
	CacheExpiration time.Duration `mapstructure:"SEARCH_CACHE_EXPIRATION"`
	LockTimeout     time.Duration `mapstructure:"SEARCH_LOCK_TIMEOUT"`
}

// Validate checks the settings no component can run without. Missing
// upstream credentials are fatal at startup, not at first search.
func (c Config) Validate() error {
	if c.Amadeus.APIKey == "" || c.Amadeus.APISecret == "" {
		return exception.NewConfigError(
			"AMADEUS_API_KEY and AMADEUS_API_SECRET must be configured")
	}

	return nil
}
