package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"booklyo/config"
)

// RateLimitClient is the Redis client backing the shared rate limiter.
// It stays nil when no REDIS_ADDR is configured.
var RateLimitClient *redis.Client

// InitRateLimitCache initializes the Redis client for rate limiting.
func InitRateLimitCache() {
	if config.AppConfig.RedisAddr == "" {
		return
	}
	RateLimitClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisRateLimitDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := RateLimitClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (rate limit): %v", err)
	}
}

// GetRateLimitClient returns the rate limit Redis client, or nil when
// the deployment runs without Redis.
func GetRateLimitClient() *redis.Client {
	return RateLimitClient
}
