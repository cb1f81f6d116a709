package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/philly/emitter/internal/journal/domain"
	"github.com/philly/emitter/internal/journal/ports"
	"github.com/philly/emitter/internal/platform/postgres"
)

const journalTable = "event_journal"

var journalSchema = []string{
	`CREATE TABLE IF NOT EXISTS event_journal (
	id          UUID PRIMARY KEY,
	name        TEXT NOT NULL,
	payload     JSON NOT NULL, -- jsonb would reject \u0000
	emitted_at  TIMESTAMPTZ NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS event_journal_emitted_at_idx ON event_journal (emitted_at DESC)`,
}

// JournalRepository implements ports.EntryRepository using PostgreSQL
type JournalRepository struct {
	postgres.BaseRepository
}

// NewJournalRepository creates a new PostgreSQL journal repository
func NewJournalRepository(db postgres.Querier) *JournalRepository {
	return &JournalRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// WithTx creates a repository instance that uses the provided transaction
func (r *JournalRepository) WithTx(tx pgx.Tx) *JournalRepository {
	return &JournalRepository{
		BaseRepository: r.BaseRepository.WithTx(tx),
	}
}

// EnsureSchema creates the journal table when it does not exist
func (r *JournalRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range journalSchema {
		if _, err := r.DB.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("JournalRepository.EnsureSchema: %w", err)
		}
	}
	return nil
}

// Append inserts an entry. Re-recording the same event id is ignored.
func (r *JournalRepository) Append(ctx context.Context, entry *domain.Entry) error {
	query, args, err := r.SB.
		Insert(journalTable).
		Columns("id", "name", "payload", "emitted_at", "recorded_at").
		Values(
			pgtype.UUID{Bytes: entry.ID, Valid: true},
			entry.Name,
			string(entry.Payload),
			pgtype.Timestamptz{Time: entry.EmittedAt, Valid: true},
			pgtype.Timestamptz{Time: entry.RecordedAt, Valid: true},
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("JournalRepository.Append: build query: %w", err)
	}

	if _, err := r.DB.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("JournalRepository.Append: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first
func (r *JournalRepository) Recent(ctx context.Context, limit int) ([]*domain.Entry, error) {
	query, args, err := r.recentQuery(limit)
	if err != nil {
		return nil, fmt.Errorf("JournalRepository.Recent: build query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("JournalRepository.Recent: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.Entry, 0, limit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("JournalRepository.Recent: scan: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("JournalRepository.Recent: rows: %w", err)
	}

	return entries, nil
}

func (r *JournalRepository) recentQuery(limit int) (string, []any, error) {
	if limit < 0 {
		limit = 0
	}
	return r.SB.
		Select("id", "name", "payload", "emitted_at", "recorded_at").
		From(journalTable).
		OrderBy("emitted_at DESC", "recorded_at DESC").
		Limit(uint64(limit)).
		ToSql()
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		id         pgtype.UUID
		entry      domain.Entry
		payload    []byte
		emittedAt  pgtype.Timestamptz
		recordedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &entry.Name, &payload, &emittedAt, &recordedAt); err != nil {
		return nil, err
	}

	entry.ID = uuid.UUID(id.Bytes)
	entry.Payload = payload
	entry.EmittedAt = emittedAt.Time
	entry.RecordedAt = recordedAt.Time
	return &entry, nil
}

var _ ports.EntryRepository = (*JournalRepository)(nil)
