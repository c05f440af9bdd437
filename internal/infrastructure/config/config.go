package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"
)

// Config is the full runtime configuration, loaded from the environment.
// MONGO_URI is the only required value; everything else has a safe default.
// When REDIS_ADDR is empty, sessions are held in process memory instead of
// Redis and do not survive a restart.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	SessionTTL     time.Duration `env:"SESSION_TTL,     default=12h"`
	SessionSliding bool          `env:"SESSION_SLIDING, default=true"`
	CookieName     string        `env:"SESSION_COOKIE,  default=inv_session"`
	CookieSecure   bool          `env:"COOKIE_SECURE,   default=false"`

	BcryptCost  int `env:"BCRYPT_COST,  default=12"`
	HashWorkers int `env:"HASH_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, required"`
	Database string `env:"MONGO_DB,  default=inventory"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Production reports whether the process runs in a production environment.
// Cookies are forced Secure in production regardless of COOKIE_SECURE.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// SecureCookies resolves the effective cookie security flag.
func (c *Config) SecureCookies() bool {
	return c.CookieSecure || c.Production()
}

// Load reads configuration from environment variables. A missing required
// value or an out-of-range knob is a startup error: the caller is expected
// to exit non-zero rather than run misconfigured.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	// envconfig accepts a set-but-empty variable; an empty connection string
	// is still unusable.
	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST %d outside valid range %d..%d", cfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}

	return &cfg, nil
}
