package events

import (
	"time"

	"github.com/philly/emitter/internal/platform/eventbus"
)

// Application lifecycle events
const (
	AppStartedTopic  eventbus.EventName = "app.started"
	AppStoppingTopic eventbus.EventName = "app.stopping"
)

// AppStartedEvent is emitted once the HTTP server is listening
type AppStartedEvent struct {
	Address   string    `json:"address"`
	Version   string    `json:"version"`
	StartedAt time.Time `json:"started_at"`
}

// AppStoppingEvent is emitted when a shutdown signal arrives
type AppStoppingEvent struct {
	Signal string `json:"signal"`
}
