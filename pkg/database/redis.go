package database

import (
	"context"
	"fmt"
	"time"

	"streamvault/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to redis. An empty address returns a nil client: redis is optional.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	if config.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return rdb, nil
}
