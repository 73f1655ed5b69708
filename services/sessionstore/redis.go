package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "dental:session:"

// RedisStore keeps each session as a hash that expires after the TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(sessionID string) string {
	return redisKeyPrefix + sessionID
}

// Get reads a flag and refreshes the session hash's TTL
func (s *RedisStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	pipe := s.client.TxPipeline()
	hget := pipe.HGet(ctx, s.key(sessionID), key)
	pipe.Expire(ctx, s.key(sessionID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return "", false, fmt.Errorf("redis hget %s: %w", key, err)
	}

	v, err := hget.Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis hget %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID, key, value string) error {
	if sessionID == "" {
		return ErrNoSession
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.key(sessionID), key, value)
	pipe.Expire(ctx, s.key(sessionID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis hset %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
