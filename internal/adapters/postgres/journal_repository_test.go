package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/philly/emitter/internal/journal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuerier struct {
	execSQL  []string
	execArgs [][]any
	execErr  error
	queryErr error
}

func (f *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	f.execArgs = append(f.execArgs, args)
	return pgconn.NewCommandTag("OK"), f.execErr
}

func (f *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, f.queryErr
}

func (f *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

type fakeRow struct {
	id         uuid.UUID
	name       string
	payload    []byte
	emittedAt  time.Time
	recordedAt time.Time
}

func (r fakeRow) Scan(dest ...any) error {
	*dest[0].(*pgtype.UUID) = pgtype.UUID{Bytes: r.id, Valid: true}
	*dest[1].(*string) = r.name
	*dest[2].(*[]byte) = r.payload
	*dest[3].(*pgtype.Timestamptz) = pgtype.Timestamptz{Time: r.emittedAt, Valid: true}
	*dest[4].(*pgtype.Timestamptz) = pgtype.Timestamptz{Time: r.recordedAt, Valid: true}
	return nil
}

func TestJournalRepositoryAppend(t *testing.T) {
	db := &fakeQuerier{}
	repo := NewJournalRepository(db)
	entry := domain.NewEntry(uuid.New(), "greet", "Alice", time.Now().UTC())

	require.NoError(t, repo.Append(context.Background(), entry))

	require.Len(t, db.execSQL, 1)
	assert.Equal(t,
		"INSERT INTO event_journal (id,name,payload,emitted_at,recorded_at) VALUES ($1,$2,$3,$4,$5) ON CONFLICT (id) DO NOTHING",
		db.execSQL[0],
	)
	args := db.execArgs[0]
	require.Len(t, args, 5)
	assert.Equal(t, pgtype.UUID{Bytes: entry.ID, Valid: true}, args[0])
	assert.Equal(t, "greet", args[1])
	assert.Equal(t, `"Alice"`, args[2])
}

func TestJournalRepositoryAppendKeepsNUL(t *testing.T) {
	db := &fakeQuerier{}
	repo := NewJournalRepository(db)
	entry := domain.NewEntry(uuid.New(), "greet", "a\x00b", time.Now().UTC())

	require.NoError(t, repo.Append(context.Background(), entry))

	require.Len(t, db.execArgs, 1)
	assert.Equal(t, `"a\u0000b"`, db.execArgs[0][2])
}

func TestJournalRepositoryAppendError(t *testing.T) {
	db := &fakeQuerier{execErr: errors.New("connection reset")}
	repo := NewJournalRepository(db)

	err := repo.Append(context.Background(), domain.NewEntry(uuid.New(), "greet", nil, time.Now()))

	require.Error(t, err)
	assert.ErrorIs(t, err, db.execErr)
	assert.Contains(t, err.Error(), "JournalRepository.Append")
}

func TestJournalRepositoryEnsureSchema(t *testing.T) {
	db := &fakeQuerier{}
	repo := NewJournalRepository(db)

	require.NoError(t, repo.EnsureSchema(context.Background()))

	require.Len(t, db.execSQL, 2)
	assert.Contains(t, db.execSQL[0], "CREATE TABLE IF NOT EXISTS event_journal")
	// Payloads with NUL must be storable, which jsonb refuses.
	assert.Contains(t, db.execSQL[0], "payload     JSON NOT NULL")
	assert.NotContains(t, db.execSQL[0], "JSONB")
	assert.Contains(t, db.execSQL[1], "CREATE INDEX IF NOT EXISTS")
}

func TestJournalRepositoryRecentQuery(t *testing.T) {
	repo := NewJournalRepository(&fakeQuerier{})

	query, args, err := repo.recentQuery(5)

	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Contains(t, query, "SELECT id, name, payload, emitted_at, recorded_at FROM event_journal")
	assert.Contains(t, query, "ORDER BY emitted_at DESC, recorded_at DESC")
	assert.Contains(t, query, "LIMIT 5")
}

func TestJournalRepositoryRecentQueryError(t *testing.T) {
	db := &fakeQuerier{queryErr: errors.New("timeout")}
	repo := NewJournalRepository(db)

	_, err := repo.Recent(context.Background(), 5)

	assert.ErrorIs(t, err, db.queryErr)
}

func TestScanEntry(t *testing.T) {
	row := fakeRow{
		id:         uuid.New(),
		name:       "file.changed",
		payload:    []byte(`{"base":"report.txt"}`),
		emittedAt:  time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		recordedAt: time.Date(2025, 3, 1, 10, 0, 1, 0, time.UTC),
	}

	entry, err := scanEntry(row)

	require.NoError(t, err)
	assert.Equal(t, row.id, entry.ID)
	assert.Equal(t, "file.changed", entry.Name)
	assert.JSONEq(t, `{"base":"report.txt"}`, string(entry.Payload))
	assert.Equal(t, row.emittedAt, entry.EmittedAt)
	assert.Equal(t, row.recordedAt, entry.RecordedAt)
}
