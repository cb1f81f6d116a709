package ports

import (
	"context"

	"github.com/philly/emitter/internal/journal/domain"
)

// EntryRepository stores recorded emissions
type EntryRepository interface {
	Append(ctx context.Context, entry *domain.Entry) error
	// Recent returns at most limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]*domain.Entry, error)
}
