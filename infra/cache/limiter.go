package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const scanBatchSize = 100

// LimiterStorage implements fiber.Storage on Redis so that request counters
// are shared by every instance behind a load balancer.
type LimiterStorage struct {
	client redis.UniversalClient
	prefix string
}

// NewLimiterStorage returns nil for a nil client.
func NewLimiterStorage(client redis.UniversalClient, prefix string) *LimiterStorage {
	if client == nil {
		return nil
	}
	return &LimiterStorage{client: client, prefix: prefix + "ratelimit:"}
}

// Get returns nil, nil for a missing key.
func (s *LimiterStorage) Get(key string) ([]byte, error) {
	val, err := s.client.Get(context.Background(), s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

// Set ignores an empty key or value. A zero exp never expires.
func (s *LimiterStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	if err := s.client.Set(context.Background(), s.prefix+key, val, exp).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *LimiterStorage) Delete(key string) error {
	if err := s.client.Del(context.Background(), s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

// Reset drops every counter under the prefix.
func (s *LimiterStorage) Reset() error {
	ctx := context.Background()
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis batch delete: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close is a no-op; the client belongs to the process.
func (*LimiterStorage) Close() error {
	return nil
}
