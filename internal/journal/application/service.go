package application

import (
	"context"
	"fmt"
	"net/http"

	"github.com/philly/emitter/internal/journal/domain"
	"github.com/philly/emitter/internal/journal/ports"
	"github.com/philly/emitter/internal/platform/apperror"
	"github.com/philly/emitter/internal/platform/eventbus"
	"github.com/philly/emitter/internal/platform/logger"
)

// DefaultLimit is used when Config.MaxLimit is not set
const DefaultLimit = 100

// ErrJournalUnavailable wraps repository failures surfaced to callers
var ErrJournalUnavailable = apperror.New(
	apperror.CodeUnavailable,
	apperror.BusinessCodeJournalUnavailable,
	"journal unavailable",
	http.StatusServiceUnavailable,
)

// Config holds journal settings
type Config struct {
	MaxLimit int
}

// JournalService records every emission on the bus and serves the recent history.
type JournalService struct {
	repo     ports.EntryRepository
	bus      *eventbus.Bus
	logger   logger.Logger
	maxLimit int
}

// NewJournalService creates a journal; call Subscribe to start recording.
func NewJournalService(repo ports.EntryRepository, bus *eventbus.Bus, config Config, logger logger.Logger) *JournalService {
	maxLimit := config.MaxLimit
	if maxLimit <= 0 {
		maxLimit = DefaultLimit
	}
	return &JournalService{
		repo:     repo,
		bus:      bus,
		logger:   logger,
		maxLimit: maxLimit,
	}
}

// Subscribe attaches the journal to the bus as an observer of every event.
func (s *JournalService) Subscribe() eventbus.Subscription {
	return s.bus.Observe(s)
}

// Handle implements eventbus.Listener.
func (s *JournalService) Handle(ctx context.Context, event eventbus.Event) error {
	entry := domain.NewEntry(event.ID, string(event.Name), event.Payload, event.EmittedAt)
	if err := s.repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to record event %s: %w", event.Name, err)
	}

	s.logger.Debug(ctx, "event recorded", "event", event.Name, "event_id", event.ID)
	return nil
}

// Recent returns up to limit entries, newest first. limit is clamped to [1, MaxLimit].
func (s *JournalService) Recent(ctx context.Context, limit int) ([]*domain.Entry, error) {
	if limit <= 0 || limit > s.maxLimit {
		limit = s.maxLimit
	}

	entries, err := s.repo.Recent(ctx, limit)
	if err != nil {
		s.logger.Error(ctx, "failed to load journal", "error", err, "limit", limit)
		return nil, apperror.Wrap(
			err,
			ErrJournalUnavailable.Code,
			ErrJournalUnavailable.BusinessCode,
			ErrJournalUnavailable.Message,
			ErrJournalUnavailable.HTTPStatus,
		)
	}
	return entries, nil
}

// MaxLimit is the largest page Recent will return
func (s *JournalService) MaxLimit() int {
	return s.maxLimit
}
