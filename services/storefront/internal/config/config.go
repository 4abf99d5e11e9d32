package config

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "github.com/Roselynepj1/Flowerpower/pkg/config"
)

// Checkout store backends.
const (
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Page templates; empty means the embedded pages.
	PageTemplateDir string `env:"PAGE_TEMPLATE_DIR" envDefault:""`

	// Upstream store API
	StoreAPIEndpoint       string `env:"STORE_API_ENDPOINT" envDefault:"https://itinsiderafrica.com/rainydaysjackets/wp-json/wc/store/products"`
	StoreAPITimeoutSeconds int    `env:"STORE_API_TIMEOUT_SECONDS" envDefault:"10"`

	// Circuit breaker settings for the store API
	CBMaxRequests  uint32  `env:"CB_MAX_REQUESTS" envDefault:"1"`
	CBInterval     int     `env:"CB_INTERVAL_SECONDS" envDefault:"60"`
	CBTimeout      int     `env:"CB_TIMEOUT_SECONDS" envDefault:"30"`
	CBFailureRatio float64 `env:"CB_FAILURE_RATIO" envDefault:"0.5"`
	CBMinRequests  uint32  `env:"CB_MIN_REQUESTS" envDefault:"5"`

	// Checkout store: "redis" or "postgres"
	CheckoutStore    string `env:"CHECKOUT_STORE" envDefault:"redis"`
	CheckoutTTLHours int    `env:"CHECKOUT_TTL_HOURS" envDefault:"168"`

	// Redis
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"storefront"`
	PostgresDB   string `env:"STOREFRONT_DB_NAME" envDefault:"storefront"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Database pool
	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"1"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINUTES" envDefault:"30"`

	// Slow query logging
	SlowQueryThresholdMs int `env:"LOG_SLOW_QUERY_MS" envDefault:"500"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"10.0.0.0/8,172.16.0.0/12,192.168.0.0/16,127.0.0.0/8,::1/128" envSeparator:","`

	// Per-IP rate limiting; 0 RPS disables it.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`

	// CORS for the JSON API
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Shopper cookie
	ShopperCookieSecure bool `env:"SHOPPER_COOKIE_SECURE" envDefault:"false"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	u, err := url.ParseRequestURI(c.StoreAPIEndpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid STORE_API_ENDPOINT %q", c.StoreAPIEndpoint)
	}
	if c.StoreAPITimeoutSeconds <= 0 {
		return fmt.Errorf("STORE_API_TIMEOUT_SECONDS must be positive, got %d", c.StoreAPITimeoutSeconds)
	}
	if c.CBFailureRatio <= 0 || c.CBFailureRatio > 1.0 {
		return fmt.Errorf("CB_FAILURE_RATIO must be in (0.0, 1.0], got %f", c.CBFailureRatio)
	}

	switch c.CheckoutStore {
	case StoreRedis:
		if c.RedisHost == "" {
			return fmt.Errorf("REDIS_HOST is required")
		}
		if c.CheckoutTTLHours <= 0 {
			return fmt.Errorf("CHECKOUT_TTL_HOURS must be positive, got %d", c.CheckoutTTLHours)
		}
	case StorePostgres:
		if c.PostgresHost == "" {
			return fmt.Errorf("POSTGRES_HOST is required")
		}
		if c.PostgresUser == "" {
			return fmt.Errorf("POSTGRES_USER is required")
		}
	default:
		return fmt.Errorf("CHECKOUT_STORE must be %q or %q, got %q", StoreRedis, StorePostgres, c.CheckoutStore)
	}

	if len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %f", c.RateLimitRPS)
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", c.RateLimitBurst)
	}
	return nil
}

// CheckoutTTL returns how long an idle Redis checkout is kept.
func (c *Config) CheckoutTTL() time.Duration {
	return time.Duration(c.CheckoutTTLHours) * time.Hour
}

// StoreAPITimeout returns the upstream request timeout.
func (c *Config) StoreAPITimeout() time.Duration {
	return time.Duration(c.StoreAPITimeoutSeconds) * time.Second
}
