package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialBudget = 5 * time.Second

// Config locates the Redis that backs per-visitor storage.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

func (c Config) budget() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return dialBudget
}

func (c Config) options() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr,
		DB:           c.DB,
		DialTimeout:  c.budget(),
		ReadTimeout:  c.budget(),
		WriteTimeout: c.budget(),
	}
}

// Connect returns a client only once the visitor store answers PING.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(cfg.options())

	ctx, cancel := context.WithTimeout(ctx, cfg.budget())
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("visitor storage unreachable at %s: %w", cfg.Addr, err)
	}
	return client, nil
}
