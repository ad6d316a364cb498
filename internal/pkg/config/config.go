package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port              string `env:"PORT,                default=5000"`
	Env               string `env:"ENV,                 default=development"`
	LogLevel          string `env:"LOG_LEVEL,           default=info"`
	AccessTokenSecret string `env:"ACCESS_TOKEN_SECRET, required"`

	Mongo    MongoConfig
	Redis    RedisConfig
	HTTP     HTTPConfig
	Security SecurityConfig
	Audit    AuditConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bistroDb"`
}

// RedisConfig configures the catalog cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,          default=0"`
	CacheTTL time.Duration `env:"CATALOG_CACHE_TTL, default=30s"`
}

type HTTPConfig struct {
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS, default=*"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,     default=10s"`
}

// SecurityConfig toggles guards the original deployment never attached.
type SecurityConfig struct {
	// GuardUserAdminOps requires an admin token for user deletion and
	// admin promotion.
	GuardUserAdminOps bool `env:"GUARD_USER_ADMIN_OPS, default=false"`
	// GuardCartWrites requires a token for cart writes and restricts them
	// to the caller's own cart.
	GuardCartWrites bool `env:"GUARD_CART_WRITES, default=false"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// IsDevelopment reports whether the process runs with ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from the given lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
