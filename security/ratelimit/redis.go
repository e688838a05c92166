package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// RedisStore keeps limiter state in Redis so multiple instances share
// one view. Attempts live in a sorted set scored by timestamp; blocks
// are plain keys with a TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps the given client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func attemptsKey(key string) string { return "ratelimit:attempts:" + key }
func blockKey(key string) string    { return "ratelimit:block:" + key }

func (s *RedisStore) Record(ctx context.Context, key string, now time.Time, window time.Duration) error {
	k := attemptsKey(key)
	member := strconv.FormatInt(now.UnixNano(), 10) + ":" + uuid.New().String()
	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, k, &redis.Z{Score: float64(now.UnixNano()), Member: member})
	pipe.ZRemRangeByScore(ctx, k, "-inf", strconv.FormatInt(now.Add(-window).UnixNano(), 10))
	pipe.Expire(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

func (s *RedisStore) Count(ctx context.Context, key string, now time.Time, window time.Duration) (int, error) {
	k := attemptsKey(key)
	if err := s.client.ZRemRangeByScore(ctx, k, "-inf", strconv.FormatInt(now.Add(-window).UnixNano(), 10)).Err(); err != nil {
		return 0, fmt.Errorf("trim attempts: %w", err)
	}
	n, err := s.client.ZCard(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return int(n), nil
}

func (s *RedisStore) Block(ctx context.Context, key string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		ttl = time.Second
	}
	if err := s.client.Set(ctx, blockKey(key), strconv.FormatInt(until.UnixNano(), 10), ttl).Err(); err != nil {
		return fmt.Errorf("set block: %w", err)
	}
	return nil
}

func (s *RedisStore) BlockedUntil(ctx context.Context, key string) (time.Time, error) {
	val, err := s.client.Get(ctx, blockKey(key)).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get block: %w", err)
	}
	nanos, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse block value %q: %w", val, err)
	}
	return time.Unix(0, nanos), nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, attemptsKey(key), blockKey(key)).Err(); err != nil {
		return fmt.Errorf("clear limiter keys: %w", err)
	}
	return nil
}
