package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventName identifies a class of occurrences, e.g. "greet" or "file.changed".
type EventName string

// Event is the envelope handed to listeners. Payload is whatever the producer emitted.
type Event struct {
	ID        uuid.UUID
	Name      EventName
	Payload   any
	EmittedAt time.Time
}

// Listener processes emitted events. A returned error is reported by the bus
// and never stops delivery to the remaining listeners.
type Listener interface {
	Handle(ctx context.Context, event Event) error
}

// ListenerFunc adapts an ordinary function to the Listener interface.
type ListenerFunc func(ctx context.Context, event Event) error

// Handle calls f(ctx, event).
func (f ListenerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Subscription identifies one registration. Registering the same listener
// twice yields two subscriptions.
type Subscription struct {
	ID   uuid.UUID
	Name EventName
}

// Receipt summarizes one dispatch.
type Receipt struct {
	EventID   uuid.UUID
	Name      EventName
	Delivered int     // named listeners that returned without fault
	Failed    int     // named listeners that returned an error or panicked
	Faults    []error // every fault, observers included
	Err       error   // set when the dispatch was refused
}

// PanicError records a recovered listener panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("listener panicked: %v", e.Value)
}
