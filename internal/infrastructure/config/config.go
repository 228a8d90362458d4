package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// CORSOrigins is the comma-separated allow list for browser clients.
	CORSOrigins []string `env:"CORS_ORIGINS, default=http://localhost:3000"`

	Auth      AuthConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig

	// Workers sizes the activity dispatcher pool.
	Workers int `env:"ACTIVITY_WORKERS, default=4"`
}

type AuthConfig struct {
	JWTSecret      string `env:"JWT_SECRET, required"`
	AccessTTLMin   int    `env:"ACCESS_TOKEN_TTL_MIN,   default=60"`
	RefreshTTLDays int    `env:"REFRESH_TOKEN_TTL_DAYS, default=7"`
	BcryptCost     int    `env:"BCRYPT_COST,            default=10"`

	// AdminTaskAccess lets admins read and mutate any user's tasks.
	// Off by default pending product confirmation.
	AdminTaskAccess bool `env:"ADMIN_TASK_ACCESS, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=task_management"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type RateLimitConfig struct {
	Enabled bool `env:"RATE_LIMIT_ENABLED, default=true"`
	// Capacity is the burst budget per client; Refill tokens come back
	// every RefillSec seconds.
	Capacity  int `env:"RATE_LIMIT_CAPACITY,   default=100"`
	Refill    int `env:"RATE_LIMIT_REFILL,     default=100"`
	RefillSec int `env:"RATE_LIMIT_REFILL_SEC, default=900"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
