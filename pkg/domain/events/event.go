package events

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPayload is returned when an event payload is not an entity identifier.
var ErrInvalidPayload = errors.New("invalid event payload")

// Event is a named occurrence broadcast in-process to every handler
// registered for its type. Events are never persisted.
type Event struct {
	Type       EventType
	Payload    any
	OccurredAt time.Time
}

// New creates an event of the given type carrying payload.
func New(eventType EventType, payload any) Event {
	return Event{
		Type:       eventType,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// NewUserRegistered is emitted after a user has been persisted.
func NewUserRegistered(userID string) Event {
	return New(EventTypeUserRegistered, userID)
}

// NewUserLoggedIn is emitted after a successful credential check.
func NewUserLoggedIn(userID string) Event {
	return New(EventTypeUserLoggedIn, userID)
}

// NewProductDeleted is emitted before a product record is removed.
func NewProductDeleted(productID string) Event {
	return New(EventTypeProductDeleted, productID)
}

// NewStockLow is emitted when a product's stock falls under the threshold.
func NewStockLow(productID string) Event {
	return New(EventTypeStockLow, productID)
}

// EntityID returns the payload as an entity identifier.
func (e Event) EntityID() (string, error) {
	switch id := e.Payload.(type) {
	case string:
		if id == "" {
			return "", fmt.Errorf("%w: empty identifier for %s", ErrInvalidPayload, e.Type)
		}
		return id, nil
	case fmt.Stringer:
		return id.String(), nil
	default:
		return "", fmt.Errorf("%w: %T for %s", ErrInvalidPayload, e.Payload, e.Type)
	}
}
