package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv    = "TABLESIDE_APP_ENV"
	EnvPort      = "TABLESIDE_APP_PORT"
	EnvDBDSN     = "TABLESIDE_DB_DSN"
	EnvRedisURL  = "TABLESIDE_REDIS_URL"
	EnvJWTSecret = "TABLESIDE_JWT_SECRET"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Pricing      PricingConfig
	Cart         CartConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TABLESIDE_APP_ENV" required:"true"`
	Port         string `envconfig:"TABLESIDE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TABLESIDE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TABLESIDE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TABLESIDE_DB_DSN" required:"true"`
	Driver string `envconfig:"TABLESIDE_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"TABLESIDE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TABLESIDE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TABLESIDE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TABLESIDE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TABLESIDE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TABLESIDE_REDIS_ADDR"`
	Password     string        `envconfig:"TABLESIDE_REDIS_PASSWORD"`
	DB           int           `envconfig:"TABLESIDE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TABLESIDE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TABLESIDE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TABLESIDE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TABLESIDE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TABLESIDE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig governs the signed table-session tokens handed out when a
// guest scans a table QR code.
type SessionConfig struct {
	JWTSecret  string        `envconfig:"TABLESIDE_JWT_SECRET" required:"true"`
	JWTIssuer  string        `envconfig:"TABLESIDE_JWT_ISSUER" default:"tableside"`
	SessionTTL time.Duration `envconfig:"TABLESIDE_SESSION_TTL" default:"4h"`
}

// PricingConfig carries the monetary knobs. The menu-wide default tax rate
// and the per-cart rate are intentionally separate values: which one is
// authoritative is still an open product question, so both are configurable.
type PricingConfig struct {
	DefaultTaxRate    float64 `envconfig:"TABLESIDE_DEFAULT_TAX_RATE" default:"0.08"`
	CartTaxRate       float64 `envconfig:"TABLESIDE_CART_TAX_RATE" default:"0.0875"`
	ProcessingFeeRate float64 `envconfig:"TABLESIDE_PROCESSING_FEE_RATE" default:"0.029"`
	ProcessingFeeFlat float64 `envconfig:"TABLESIDE_PROCESSING_FEE_FLAT" default:"0.30"`
	CurrencyCode      string  `envconfig:"TABLESIDE_CURRENCY_CODE" default:"USD"`
}

func (p PricingConfig) validate() error {
	if p.DefaultTaxRate < 0 || p.CartTaxRate < 0 {
		return fmt.Errorf("tax rates must be non-negative")
	}
	if p.ProcessingFeeRate < 0 || p.ProcessingFeeFlat < 0 {
		return fmt.Errorf("processing fee values must be non-negative")
	}
	return nil
}

type CartConfig struct {
	StorageKeyPrefix string        `envconfig:"TABLESIDE_CART_KEY_PREFIX" default:"tableside:cart"`
	PersistTTL       time.Duration `envconfig:"TABLESIDE_CART_PERSIST_TTL" default:"24h"`
}

// RateLimitConfig caps order submissions per table session. A fixed window
// keeps a stuck client from flooding the kitchen queue.
type RateLimitConfig struct {
	SubmitWindow time.Duration `envconfig:"TABLESIDE_SUBMIT_RATE_WINDOW" default:"1m"`
	SubmitLimit  int64         `envconfig:"TABLESIDE_SUBMIT_RATE_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TABLESIDE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TABLESIDE_AUTO_MIGRATE" default:"false"`
}
