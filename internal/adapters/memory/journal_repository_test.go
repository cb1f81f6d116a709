package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/philly/emitter/internal/adapters/memory"
	"github.com/philly/emitter/internal/journal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendNamed(t *testing.T, repo *memory.JournalRepository, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, repo.Append(context.Background(), domain.NewEntry(uuid.New(), name, nil, time.Now())))
	}
}

func names(entries []*domain.Entry) []string {
	result := make([]string, len(entries))
	for i, e := range entries {
		result[i] = e.Name
	}
	return result
}

func TestJournalRepositoryEmpty(t *testing.T) {
	repo := memory.NewJournalRepository(3)

	entries, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournalRepositoryNewestFirst(t *testing.T) {
	repo := memory.NewJournalRepository(5)
	appendNamed(t, repo, "a", "b", "c")

	entries, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, names(entries))

	entries, err = repo.Recent(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, names(entries))
}

func TestJournalRepositoryEvictsOldest(t *testing.T) {
	repo := memory.NewJournalRepository(3)
	appendNamed(t, repo, "a", "b", "c", "d", "e")

	entries, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "d", "c"}, names(entries))
}

func TestJournalRepositoryNonPositiveLimit(t *testing.T) {
	repo := memory.NewJournalRepository(4)
	appendNamed(t, repo, "a", "b")

	for _, limit := range []int{0, -1} {
		entries, err := repo.Recent(context.Background(), limit)
		require.NoError(t, err, "limit=%d", limit)
		assert.Empty(t, entries, "limit=%d", limit)
	}
}
