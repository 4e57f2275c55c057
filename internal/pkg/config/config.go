package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Revocation store backends.
const (
	RevocationStoreRedis = "redis"
	RevocationStoreMongo = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT    JWTConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Admin  AdminConfig
	Limits LimitsConfig

	BcryptCost      int           `env:"BCRYPT_COST,      default=12"`
	RevocationStore string        `env:"REVOCATION_STORE, default=redis"`
	PruneInterval   time.Duration `env:"PRUNE_INTERVAL,   default=15m"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET, required"`
	Expiry time.Duration `env:"JWT_EXPIRY, default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_service"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// AdminConfig seeds an initial admin account when both fields are set.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

type LimitsConfig struct {
	// LoginRate is the sustained login attempts per second allowed per client IP.
	LoginRate float64 `env:"LOGIN_RATE_LIMIT, default=5"`
}

// Enabled reports whether an admin account should be seeded.
func (a AdminConfig) Enabled() bool {
	return a.Email != "" && a.Password != ""
}

// Development reports whether the process runs in a development environment.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Expiry <= 0 {
		return errors.New("JWT_EXPIRY must be positive")
	}
	switch c.RevocationStore {
	case RevocationStoreRedis, RevocationStoreMongo:
	default:
		return fmt.Errorf("REVOCATION_STORE must be %q or %q, got %q", RevocationStoreRedis, RevocationStoreMongo, c.RevocationStore)
	}
	if (c.Admin.Email == "") != (c.Admin.Password == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}
