package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"

	ReservationsMock  = "mock"
	ReservationsMongo = "mongo"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	StorageDriver      string `env:"STORAGE_DRIVER,      default=memory"`
	ReservationBackend string `env:"RESERVATION_BACKEND, default=mock"`

	ClientCookie     string        `env:"CLIENT_COOKIE,      default=hs_client"`
	SocialProfileTTL time.Duration `env:"SOCIAL_PROFILE_TTL, default=30m"`
	MarkReadWorkers  int           `env:"MARK_READ_WORKERS,  default=4"`
	LoginPerMinute   int           `env:"LOGIN_PER_MINUTE,   default=30"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Backend BackendConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=homeservice"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// BackendConfig points at the external marketplace API. An empty BaseURL
// serves every outbound call from the in-process mock directory.
type BackendConfig struct {
	BaseURL  string        `env:"BACKEND_BASE_URL"`
	Timeout  time.Duration `env:"BACKEND_TIMEOUT,   default=10s"`
	CacheTTL time.Duration `env:"BACKEND_CACHE_TTL, default=30s"`
}

// IsDevelopment reports whether the process runs with ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" && !c.IsDevelopment() {
		return fmt.Errorf("JWT_SECRET is required outside development")
	}
	switch c.StorageDriver {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	switch c.ReservationBackend {
	case ReservationsMock, ReservationsMongo:
	default:
		return fmt.Errorf("unknown RESERVATION_BACKEND %q", c.ReservationBackend)
	}
	if c.ClientCookie == "" {
		return fmt.Errorf("CLIENT_COOKIE must not be empty")
	}
	return nil
}
