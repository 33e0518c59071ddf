package cache

import (
	"context"
	"fmt"
	"time"

	"clinic-booking/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// pingTimeout bounds the startup check so a dead Redis fails fast.
const pingTimeout = 5 * time.Second

// NewRedisClient connects to the Redis instance holding access tokens, the
// schedule cache and slot claims. The client is closed again if the first
// ping fails.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr(),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: pingTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr(), err)
	}

	logrus.WithFields(logrus.Fields{"addr": cfg.Addr(), "db": cfg.DB}).Info("Successfully connected to Redis")

	return client, nil
}
