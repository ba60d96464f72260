// internal/cache/client.go
package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storelabs/orders-backend/internal/config"
)

func Initialize(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Println("Redis connection established successfully")
	return client, nil
}

func Close(client *redis.Client) {
	if err := client.Close(); err != nil {
		log.Printf("Error closing redis connection: %v", err)
	}
}
