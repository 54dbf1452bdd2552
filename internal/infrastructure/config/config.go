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

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	// JWTSecret signs stateless claims tokens. Loaded once at startup and
	// never mutated afterwards.
	JWTSecret string `env:"JWT_SECRET"`

	// TokenTTL is the validity window of stateless claims tokens.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=168h"`

	// SessionTTL is the lifetime of cookie-backed admin sessions.
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`

	SessionCookie string `env:"SESSION_COOKIE, default=docgen_session"`
	AdminPrefix   string `env:"ADMIN_PREFIX,   default=/admin"`
	LoginPath     string `env:"ADMIN_LOGIN_PATH, default=/admin/login"`

	// BootstrapEmail and BootstrapPassword provision the initial admin
	// account: a user with this exact email and no stored password hash
	// authenticates with the bootstrap password until a real hash is set.
	BootstrapEmail    string `env:"BOOTSTRAP_EMAIL"`
	BootstrapPassword string `env:"BOOTSTRAP_PASSWORD"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=docgen"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
