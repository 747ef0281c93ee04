package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/4bhisheksharma/book-swap3/internal/pkg/config"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// Init initializes the Redis client
func Init(cfg *config.Config) error {
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: "",
		DB:       cfg.Redis.DB,
	})

	if err := c.Ping(ctx).Err(); err != nil {
		return err
	}

	client = c
	zap.L().Info("Redis connected successfully",
		zap.String("addr", cfg.RedisAddr()))

	return nil
}

// GetClient returns the Redis client, or nil when Redis is not configured
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		err := client.Close()
		client = nil
		return err
	}
	return nil
}

// CountInWindow increments the counter for key and returns the new count.
// The key expires after the window, so stale counters clean themselves up.
func CountInWindow(key string, window time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := client.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}
