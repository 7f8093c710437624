// Package metrics defines the counters the event core reports to.
package metrics

// Publish modes reported with EventPublished.
const (
	ModeFireAndForget = "fire_and_forget"
	ModeAwait         = "await"
)

// Recorder receives event and retry counters.
type Recorder interface {
	EventPublished(eventType, mode string)
	HandlerSettled(eventType string, ok bool)
	RetryAttempt(operation string)
	RetryExhausted(operation string)
}

// Nop discards everything.
type Nop struct{}

func (Nop) EventPublished(string, string) {}
func (Nop) HandlerSettled(string, bool)   {}
func (Nop) RetryAttempt(string)           {}
func (Nop) RetryExhausted(string)         {}

var _ Recorder = Nop{}
