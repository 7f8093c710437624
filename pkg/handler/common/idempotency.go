package common

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amirasaad/storefront/pkg/domain/events"
	"github.com/amirasaad/storefront/pkg/eventbus"
	"golang.org/x/sync/singleflight"
)

// KeyExtractor extracts an idempotency key from an event
type KeyExtractor func(events.Event) string

// Tracker remembers which idempotency keys were handled successfully.
type Tracker interface {
	Seen(ctx context.Context, key string) (bool, error)
	MarkProcessed(ctx context.Context, key string) error
}

// IdempotencyTracker is an in-process Tracker.
type IdempotencyTracker struct {
	processed sync.Map
}

// NewIdempotencyTracker creates a new idempotency tracker
func NewIdempotencyTracker() *IdempotencyTracker {
	return &IdempotencyTracker{}
}

func (t *IdempotencyTracker) Seen(_ context.Context, key string) (bool, error) {
	_, ok := t.processed.Load(key)
	return ok, nil
}

func (t *IdempotencyTracker) MarkProcessed(_ context.Context, key string) error {
	t.processed.Store(key, struct{}{})
	return nil
}

// EntityKey keys an event by handler name and entity identifier.
func EntityKey(handlerName string) KeyExtractor {
	return func(e events.Event) string {
		id, err := e.EntityID()
		if err != nil {
			return ""
		}
		return handlerName + ":" + e.Type.String() + ":" + id
	}
}

// WithIdempotency wraps a handler so that a key which already completed
// successfully is skipped. Concurrent deliveries of one key share a single
// execution and its outcome. A failed outcome leaves the key unmarked.
func WithIdempotency(
	handler eventbus.HandlerFunc,
	tracker Tracker,
	keyExtractor KeyExtractor,
	handlerName string,
	logger *slog.Logger,
) eventbus.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	var inflight singleflight.Group

	return func(ctx context.Context, e events.Event) (any, error) {
		key := keyExtractor(e)
		if key == "" {
			return handler(ctx, e)
		}

		log := logger.With(
			"handler", handlerName,
			"event_type", e.Type,
			"idempotency_key", key,
		)

		if seen(ctx, tracker, key, log) {
			log.Info("🔁 [SKIP] Event already processed")
			return nil, nil
		}

		type settled struct {
			value any
			err   error
		}
		res, _, _ := inflight.Do(key, func() (any, error) {
			if seen(ctx, tracker, key, log) {
				return settled{}, nil
			}
			value, err := handler(ctx, e)
			if eventbus.NewOutcome(value, err).OK() {
				if markErr := tracker.MarkProcessed(ctx, key); markErr != nil {
					log.Warn("Failed to record processed key", "error", markErr)
				}
			}
			return settled{value: value, err: err}, nil
		})
		out := res.(settled)
		return out.value, out.err
	}
}

func seen(ctx context.Context, tracker Tracker, key string, log *slog.Logger) bool {
	ok, err := tracker.Seen(ctx, key)
	if err != nil {
		log.Warn("Idempotency lookup failed, handling event", "error", err)
		return false
	}
	return ok
}
