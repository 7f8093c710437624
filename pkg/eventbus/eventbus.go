package eventbus

import (
	"context"
	"errors"

	"github.com/amirasaad/storefront/pkg/domain/events"
)

// ErrHandlerPanic is reported as the outcome of a handler that panicked.
var ErrHandlerPanic = errors.New("event handler panicked")

// ErrBusClosed is returned by publish operations after the bus has been closed.
var ErrBusClosed = errors.New("event bus closed")

// HandlerFunc handles a single event and returns its outcome value.
// A returned error means the handler failed.
type HandlerFunc func(ctx context.Context, e events.Event) (any, error)

// Outcome is what a single handler settled with.
type Outcome struct {
	Value any
	Err   error
}

// NewOutcome builds an Outcome from a handler's return values.
func NewOutcome(value any, err error) Outcome {
	return Outcome{Value: value, Err: err}
}

type reporter interface {
	OK() bool
}

type causer interface {
	Cause() error
}

// OK reports whether the handler succeeded. Values that report their own
// success (such as retry results) are consulted too.
func (o Outcome) OK() bool {
	if o.Err != nil {
		return false
	}
	if r, ok := o.Value.(reporter); ok {
		return r.OK()
	}
	return true
}

// Cause returns the handler's error, or the failure carried by its value.
// It is nil for successful outcomes.
func (o Outcome) Cause() error {
	if o.Err != nil {
		return o.Err
	}
	if c, ok := o.Value.(causer); ok {
		return c.Cause()
	}
	return nil
}

// Registrar attaches handlers to event names.
type Registrar interface {
	Register(eventType events.EventType, handler HandlerFunc)
}

// Publisher delivers events to registered handlers.
type Publisher interface {
	// Publish invokes every handler without waiting for them.
	Publish(ctx context.Context, e events.Event) error
	// PublishAndAwait invokes every handler concurrently and returns one
	// outcome per handler, in registration order, once all have settled.
	PublishAndAwait(ctx context.Context, e events.Event) ([]Outcome, error)
}

// Bus is the in-process event bus shared by producers and listeners.
type Bus interface {
	Registrar
	Publisher
	// ListenerCount returns how many handlers are registered for eventType.
	ListenerCount(eventType events.EventType) int
}
