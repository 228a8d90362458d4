package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// clientName is reported to the server (CLIENT SETNAME) so this service's
// connections are identifiable in CLIENT LIST during incidents.
const clientName = "task-management-api"

const defaultTimeout = 5 * time.Second

// Config holds the connection settings for the dedup and rate-limit store.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect builds a Redis client and confirms the server answers a ping
// before handing it out. cfg.Timeout bounds the ping; zero means
// defaultTimeout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:       cfg.Addr,
		DB:         cfg.DB,
		ClientName: clientName,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
