package cache

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// NewRedisFromURL builds a Redis client from a REDIS_URL style connection
// string. A failed ping is logged but not fatal; the cache is optional.
func NewRedisFromURL(ctx context.Context, url string) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("invalid REDIS_URL, falling back to defaults: %v", err)
		opts = &redis.Options{Addr: "localhost:6379"}
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis ping failed: %v", err)
	}
	return rdb
}

// Close closes the Redis client, logging any error.
func Close(rdb *redis.Client) {
	if err := rdb.Close(); err != nil {
		log.Printf("failed to close redis client: %v", err)
	}
}
