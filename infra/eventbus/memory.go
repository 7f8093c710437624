package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/amirasaad/storefront/pkg/domain/events"
	"github.com/amirasaad/storefront/pkg/eventbus"
	"github.com/amirasaad/storefront/pkg/metrics"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"
)

// MemoryEventBus is an in-process implementation of the eventbus.Bus interface.
// Handlers run on their own goroutines; a panicking handler is recovered and
// never affects the other handlers of the same event.
type MemoryEventBus struct {
	handlers map[events.EventType][]eventbus.HandlerFunc
	mu       sync.RWMutex
	inflight conc.WaitGroup
	closed   bool
	logger   *slog.Logger
	metrics  metrics.Recorder
}

// Option configures a MemoryEventBus.
type Option func(*MemoryEventBus)

// WithMetrics reports publish and settle counters to r.
func WithMetrics(r metrics.Recorder) Option {
	return func(b *MemoryEventBus) {
		if r != nil {
			b.metrics = r
		}
	}
}

// NewWithMemory creates a new in-memory event bus.
func NewWithMemory(logger *slog.Logger, opts ...Option) *MemoryEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	b := &MemoryEventBus{
		handlers: make(map[events.EventType][]eventbus.HandlerFunc),
		logger:   logger.With("bus", "memory"),
		metrics:  metrics.Nop{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register appends handler to the handlers of eventType.
func (b *MemoryEventBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// ListenerCount returns the number of handlers registered for eventType.
func (b *MemoryEventBus) ListenerCount(eventType events.EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Publish starts every handler of the event and returns immediately.
// Handlers keep running after ctx is cancelled; their outcomes are discarded.
func (b *MemoryEventBus) Publish(ctx context.Context, e events.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return eventbus.ErrBusClosed
	}

	b.metrics.EventPublished(e.Type.String(), metrics.ModeFireAndForget)
	detached := context.WithoutCancel(ctx)
	for _, h := range b.handlers[e.Type] {
		b.inflight.Go(func() {
			out := b.invoke(detached, h, e)
			if out.Err != nil && isPanic(out.Err) {
				b.logger.Error("panic recovered in event handler",
					"event_type", e.Type,
					"error", out.Err,
				)
			}
		})
	}
	return nil
}

// PublishAndAwait starts every handler of the event concurrently and waits
// until all of them have settled. The returned outcomes follow registration
// order. An event without handlers yields an empty slice.
func (b *MemoryEventBus) PublishAndAwait(ctx context.Context, e events.Event) ([]eventbus.Outcome, error) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return nil, eventbus.ErrBusClosed
	}
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[e.Type]...)
	b.mu.RUnlock()

	b.metrics.EventPublished(e.Type.String(), metrics.ModeAwait)
	outcomes := make([]eventbus.Outcome, len(handlers))
	if len(handlers) == 0 {
		return outcomes, nil
	}

	detached := context.WithoutCancel(ctx)
	p := pool.New()
	for i, h := range handlers {
		p.Go(func() {
			outcomes[i] = b.invoke(detached, h, e)
		})
	}
	p.Wait()
	return outcomes, nil
}

// Close rejects further publishing and waits for in-flight fire-and-forget
// handlers, or for ctx to be done.
func (b *MemoryEventBus) Close(ctx context.Context) error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *MemoryEventBus) invoke(ctx context.Context, h eventbus.HandlerFunc, e events.Event) (out eventbus.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = eventbus.NewOutcome(nil, &panicError{value: r})
		}
		b.metrics.HandlerSettled(e.Type.String(), out.OK())
	}()
	return eventbus.NewOutcome(h(ctx, e))
}

type panicError struct {
	value any
}

func (p *panicError) Error() string {
	return fmt.Sprintf("%s: %v", eventbus.ErrHandlerPanic, p.value)
}

func (p *panicError) Unwrap() error {
	return eventbus.ErrHandlerPanic
}

func isPanic(err error) bool {
	_, ok := err.(*panicError)
	return ok
}

var _ eventbus.Bus = (*MemoryEventBus)(nil)
