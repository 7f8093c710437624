package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTracker records processed idempotency keys in Redis so that
// duplicate deliveries are skipped across restarts and instances.
type RedisTracker struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisTracker creates a tracker. Keys expire after ttl; a zero ttl keeps
// them forever.
func NewRedisTracker(
	client redis.UniversalClient,
	prefix string,
	ttl time.Duration,
	logger *slog.Logger,
) *RedisTracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisTracker{
		client: client,
		prefix: prefix + "idempotency:",
		ttl:    ttl,
		logger: logger,
	}
}

func (r *RedisTracker) key(key string) string {
	return r.prefix + key
}

// Seen reports whether key was marked processed.
func (r *RedisTracker) Seen(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// MarkProcessed stores key. Marking an existing key keeps its original
// expiry.
func (r *RedisTracker) MarkProcessed(ctx context.Context, key string) error {
	set, err := r.client.SetNX(ctx, r.key(key), time.Now().UTC().Format(time.RFC3339Nano), r.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !set {
		r.logger.Debug("Idempotency key already marked", "key", key)
	}
	return nil
}
