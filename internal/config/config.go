// Package config reads process configuration from the environment (and an optional .env file).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

type Config struct {
	Port   string `env:"PORT" envDefault:"3000"`
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	JWTSecret  string        `env:"JWT_SECRET"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL" envDefault:"168h"`

	Store    StoreConfig
	Redis    RedisConfig
	Postgres PostgresConfig

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	CORSOrigins    []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS" envDefault:"0.2"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST" envDefault:"5"`
}

type StoreConfig struct {
	Backend        string `env:"STORE_BACKEND" envDefault:"file"`
	Dir            string `env:"STORE_DIR" envDefault:"./data"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"./data/dayflow.db"`
	RecoverCorrupt bool   `env:"STORE_RECOVER_CORRUPT" envDefault:"true"`
	ConnectRetries int    `env:"STORE_CONNECT_RETRIES" envDefault:"5"`
}

type RedisConfig struct {
	Addr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Prefix string `env:"REDIS_PREFIX" envDefault:"dayflow:"`
	// Cache turns on idempotency keys and the dashboard cache for non-redis backends.
	Cache bool `env:"REDIS_CACHE" envDefault:"false"`
}

type PostgresConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"dayflow"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsesRedis reports whether a Redis connection is needed, as store backend or cache.
func (c Config) UsesRedis() bool {
	return c.Store.Backend == BackendRedis || c.Redis.Cache
}

// Load reads .env files if present, then the environment. Variables already set in the
// environment win over the files.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	return cfg, cfg.Validate()
}

// LoadStore is Load without the HTTP-only requirements, for the CLI.
func LoadStore(files ...string) (Config, error) {
	_ = godotenv.Load(files...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	return cfg, cfg.validateStore()
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return ErrMissingJWTSecret
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return c.validateStore()
}

func (c Config) validateStore() error {
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis, BackendPostgres, BackendSQLite:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}
