package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded emission
type Entry struct {
	ID         uuid.UUID // Event ID assigned by the bus
	Name       string
	Payload    json.RawMessage
	EmittedAt  time.Time
	RecordedAt time.Time
}

// NewEntry builds an entry, encoding the payload as JSON. Payloads that cannot be
// encoded (funcs, channels, cycles) are stored as a JSON string of their %v form.
func NewEntry(id uuid.UUID, name string, payload any, emittedAt time.Time) *Entry {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw, _ = json.Marshal(fmt.Sprintf("%v", payload))
	}

	return &Entry{
		ID:         id,
		Name:       name,
		Payload:    raw,
		EmittedAt:  emittedAt,
		RecordedAt: time.Now().UTC(),
	}
}
