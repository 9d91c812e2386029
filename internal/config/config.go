package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/utafrali/storefront/internal/catalog"
	pkgconfig "github.com/utafrali/storefront/pkg/config"
	"github.com/utafrali/storefront/pkg/database"
	"github.com/utafrali/storefront/pkg/tracing"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort        int           `env:"STOREFRONT_HTTP_PORT" envDefault:"8010"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// Catalog API
	CatalogBaseURL    string        `env:"CATALOG_BASE_URL" envDefault:"https://fakestoreapi.com"`
	CatalogTimeout    time.Duration `env:"CATALOG_TIMEOUT" envDefault:"10s"`
	CatalogMaxRetries int           `env:"CATALOG_MAX_RETRIES" envDefault:"2"`
	CatalogCacheTTL   time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"10m"`

	Redis database.RedisConfig

	// Cart
	CartTTL         time.Duration `env:"CART_TTL" envDefault:"168h"`
	CartIdleTimeout time.Duration `env:"CART_IDLE_TIMEOUT" envDefault:"30m"`
	ConfirmationTTL time.Duration `env:"CART_CONFIRMATION_TTL" envDefault:"3s"`

	// Recent searches
	RecentSearchTTL time.Duration `env:"RECENT_SEARCH_TTL" envDefault:"720h"`

	// Per-session throttling of cart and history routes; 0 disables it.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`

	// Kafka
	KafkaEnabled       bool     `env:"KAFKA_ENABLED" envDefault:"true"`
	KafkaBrokers       []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	CatalogEventsTopic string   `env:"CATALOG_EVENTS_TOPIC"` // defaults to catalog.TopicCatalogUpdated
	CatalogEventsGroup string   `env:"CATALOG_EVENTS_GROUP" envDefault:"storefront-catalog-cache"`

	Tracing tracing.Config

	PprofAllowedCIDRs  []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.1/32,::1/128" envSeparator:","`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if cfg.CatalogEventsTopic == "" {
		cfg.CatalogEventsTopic = catalog.TopicCatalogUpdated
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	var errs []error
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP port: %d", c.HTTPPort))
	}
	if u, err := url.ParseRequestURI(c.CatalogBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("CATALOG_BASE_URL must be an absolute http(s) URL: %q", c.CatalogBaseURL))
	}
	if c.CatalogMaxRetries < 0 {
		errs = append(errs, errors.New("CATALOG_MAX_RETRIES must not be negative"))
	}
	if c.CartTTL <= 0 || c.ConfirmationTTL <= 0 || c.CatalogCacheTTL <= 0 {
		errs = append(errs, errors.New("CART_TTL, CART_CONFIRMATION_TTL and CATALOG_CACHE_TTL must be positive"))
	}
	if c.RateLimitRPS < 0 || (c.RateLimitRPS > 0 && c.RateLimitBurst < 1) {
		errs = append(errs, errors.New("RATE_LIMIT_RPS must not be negative and RATE_LIMIT_BURST must be positive when limiting"))
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is set"))
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		errs = append(errs, errors.New("OTEL_SAMPLE_RATE must be between 0.0 and 1.0"))
	}
	return errors.Join(errs...)
}

// TracingConfig returns the tracing settings stamped with service identity.
func (c *Config) TracingConfig(serviceName, version string) tracing.Config {
	t := c.Tracing
	t.ServiceName = serviceName
	t.ServiceVersion = version
	t.Environment = c.Environment
	return t
}
