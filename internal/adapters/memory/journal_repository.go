package memory

import (
	"context"
	"sync"

	"github.com/philly/emitter/internal/journal/domain"
	"github.com/philly/emitter/internal/journal/ports"
)

// JournalRepository keeps the most recent entries in a fixed-size ring.
// Used when no database is configured.
type JournalRepository struct {
	mu      sync.RWMutex
	entries []*domain.Entry
	next    int // index of the slot the next Append writes
	full    bool
}

// NewJournalRepository creates a ring holding at most capacity entries
func NewJournalRepository(capacity int) *JournalRepository {
	if capacity <= 0 {
		capacity = 1
	}
	return &JournalRepository{entries: make([]*domain.Entry, capacity)}
}

// Append stores entry, evicting the oldest one when the ring is full
func (r *JournalRepository) Append(ctx context.Context, entry *domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.next] = entry
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
	return nil
}

// Recent returns up to limit entries, newest first
func (r *JournalRepository) Recent(ctx context.Context, limit int) ([]*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	size := r.next
	if r.full {
		size = len(r.entries)
	}
	if limit > size {
		limit = size
	}
	if limit < 0 {
		limit = 0
	}

	result := make([]*domain.Entry, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.next - i + len(r.entries)) % len(r.entries)
		result = append(result, r.entries[idx])
	}
	return result, nil
}

var _ ports.EntryRepository = (*JournalRepository)(nil)
