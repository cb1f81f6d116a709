package events

import "github.com/philly/emitter/internal/platform/eventbus"

// Greeting events
const (
	// GreetTopic carries the name to greet, either a string or an object with a "name" field.
	GreetTopic         eventbus.EventName = "greet"
	GreetRenderedTopic eventbus.EventName = "greet.rendered"
)

// GreetingRenderedEvent is emitted after a greeting has been written and rendered
type GreetingRenderedEvent struct {
	Name string `json:"name"`
	Text string `json:"text"`
	HTML string `json:"html"`
}
