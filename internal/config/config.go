// Package config manages environment variables.
//
// It reads variables from the `.env` file,
// loads them into structured Go types (struct), and
// validates that required values are present so they
// can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Apply defaults for optional blocks (server, database pool, observability).
//   - Validate required values so the app fails fast on bad config.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it is loaded into the
	// process env before any config is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix STARWARS_. Keys are lowercased and the
	prefix removed; nesting uses the "." delimiter, so
	STARWARS_SERVER.PORT -> server.port -> Config.Server.Port.

	The plain DATABASE_URL and PORT variables are honoured as well so the
	service runs unchanged on hosts that only provide those two.
*/

const envPrefix = "STARWARS_"

// ServiceName tags logs, traces and the New Relic application.
const ServiceName = "starwars-api"

// DefaultDatabaseURL is used when no connection string is configured.
const DefaultDatabaseURL = "sqlite:////tmp/starwars.db"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production test"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string          `koanf:"port" validate:"required"`
	ReadTimeout        int             `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int             `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int             `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string        `koanf:"cors_allowed_origins" validate:"required,min=1"`
	RateLimit          RateLimitConfig `koanf:"rate_limit"`
}

// RateLimitConfig configures the per-client token bucket.
// RequestsPerSecond of zero disables rate limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"min=0"`
	Burst             int           `koanf:"burst" validate:"min=0"`
	ExpiresIn         time.Duration `koanf:"expires_in"`
}

// DatabaseConfig holds the connection string and pool tuning.
//
// URL selects the engine: postgres:// or postgresql:// opens PostgreSQL,
// everything else is treated as a SQLite location.
type DatabaseConfig struct {
	URL             string `koanf:"url" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=0"`
}

// RedisConfig contains Redis connection details.
// An empty Address disables Redis and the background jobs that need it.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// IntegrationConfig stores third-party credentials.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// LoadConfig loads configuration from environment variables, applies
// defaults, validates it and returns the resulting config.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Unprefixed compatibility variables. Returning "" drops the key.
	err = k.Load(env.Provider("", ".", func(s string) string {
		switch s {
		case "DATABASE_URL":
			return "database.url"
		case "PORT":
			return "server.port"
		}
		return ""
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load compatibility env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults()

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Service name and environment always follow the primary config so
	// logs and traces agree on naming.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	if c.Primary.Env == "" {
		c.Primary.Env = "local"
	}

	if c.Server.Port == "" {
		c.Server.Port = "3000"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
	if c.Server.RateLimit.ExpiresIn == 0 {
		c.Server.RateLimit.ExpiresIn = 3 * time.Minute
	}
	if c.Server.RateLimit.RequestsPerSecond > 0 && c.Server.RateLimit.Burst == 0 {
		c.Server.RateLimit.Burst = int(c.Server.RateLimit.RequestsPerSecond)
	}

	if c.Database.URL == "" {
		c.Database.URL = DefaultDatabaseURL
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.ConnMaxIdleTime == 0 {
		c.Database.ConnMaxIdleTime = 60
	}

	if c.Integration.EmailFrom == "" {
		c.Integration.EmailFrom = "Star Wars API <onboarding@resend.dev>"
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
}
