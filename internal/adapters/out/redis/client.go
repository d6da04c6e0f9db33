// Package redis holds the Redis backed adapters.
package redis

import (
	"context"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// NewClient connects to addr and pings it. It returns nil when addr is empty
// or the server does not answer, so callers can run without Redis.
func NewClient(addr, password string, db int, logger *slog.Logger) *goredis.Client {
	if addr == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unavailable, attempt limiting disabled", "addr", addr, "error", err)
		_ = client.Close()
		return nil
	}
	return client
}
