package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "development"
	EnvProd  = "production"

	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type (
	// Config contains runtime configuration required by the service.
	Config struct {
		Env         string `env:"APP_ENV" envDefault:"local"`
		Port        string `env:"PORT" envDefault:"5000"`
		StoreDriver string `env:"STORE_DRIVER" envDefault:"mongo"`

		Mongo    MongoConfig    `envPrefix:"MONGO_"`
		Postgres PostgresConfig
		Cache    CacheConfig `envPrefix:"CACHE_"`
	}

	MongoConfig struct {
		URL            string        `env:"URL"`
		Database       string        `env:"DATABASE" envDefault:"test"`
		ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
	}

	PostgresConfig struct {
		DBURL string `env:"DB_URL"`
	}

	// CacheConfig enables the Redis read-through cache for event lookups.
	CacheConfig struct {
		Enabled       bool          `env:"ENABLED" envDefault:"false"`
		RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		RedisPassword string        `env:"REDIS_PASSWORD"`
		RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
		TTL           time.Duration `env:"TTL" envDefault:"30s"`
	}
)

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	cfg.Mongo.URL = strings.TrimSpace(cfg.Mongo.URL)
	cfg.Postgres.DBURL = strings.TrimSpace(cfg.Postgres.DBURL)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("APP_ENV must be one of %s, %s, %s", EnvLocal, EnvDev, EnvProd)
	}

	switch c.StoreDriver {
	case DriverMongo:
		if c.Mongo.URL == "" {
			return errors.New("MONGO_URL required")
		}
	case DriverPostgres:
		if c.Postgres.DBURL == "" {
			return errors.New("DB_URL required")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q", DriverMongo, DriverPostgres)
	}

	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return errors.New("CACHE_TTL must be positive")
	}
	return nil
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}
