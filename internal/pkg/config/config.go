package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs and verifies access tokens. Required: startup must
	// abort when it is empty rather than run with a default secret.
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=30m"`

	// ProtectedRoles is the closed set of roles admitted to /protected.
	ProtectedRoles []string `env:"PROTECTED_ROLES, default=admin"`

	// StoreBackend selects the credential store: "memory" or "mongo".
	StoreBackend string `env:"STORE_BACKEND, default=memory"`

	Seed  SeedConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// SeedConfig pre-registers one account at startup when Username is set.
type SeedConfig struct {
	Username string `env:"SEED_USERNAME"`
	Password string `env:"SEED_PASSWORD"`
	Role     string `env:"SEED_ROLE, default=admin"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_service"`
}

type RedisConfig struct {
	// Enabled turns on the Redis-backed failed-login limiter.
	Enabled bool   `env:"REDIS_ENABLED, default=false"`
	Addr    string `env:"REDIS_ADDR,    default=localhost:6379"`
	DB      int    `env:"REDIS_DB,      default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
