package events

// EventType represents the type of an event in the system.
type EventType string

// Event type constants. The values are the flat names producers and
// listeners agree on.
const (
	// User events
	EventTypeUserRegistered EventType = "userRegistered"
	EventTypeUserLoggedIn   EventType = "userLoggedIn"

	// Product events
	EventTypeProductDeleted EventType = "productDeleted"

	// Inventory events
	EventTypeStockLow EventType = "stockLow"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}
