package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/philly/emitter/internal/journal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewEntry(t *testing.T) {
	id := uuid.New()
	emitted := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	entry := domain.NewEntry(id, "greet", map[string]any{"name": "Alice"}, emitted)

	assert.Equal(t, id, entry.ID)
	assert.Equal(t, "greet", entry.Name)
	assert.JSONEq(t, `{"name":"Alice"}`, string(entry.Payload))
	assert.Equal(t, emitted, entry.EmittedAt)
	assert.False(t, entry.RecordedAt.IsZero())
}

func TestNewEntryNilPayload(t *testing.T) {
	entry := domain.NewEntry(uuid.New(), "silent", nil, time.Now())

	assert.Equal(t, "null", string(entry.Payload))
}

func TestNewEntryUnencodablePayload(t *testing.T) {
	entry := domain.NewEntry(uuid.New(), "odd", make(chan int), time.Now())

	assert.Equal(t, byte('"'), entry.Payload[0])
}
