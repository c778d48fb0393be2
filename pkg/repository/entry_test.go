package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedsink/pkg/domain"
	"feedsink/pkg/feed"
)

func TestEntryRepository_StoreBatch(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	src := createTestSource(t, repos, "https://store.example.com/feed")
	syncedAt := time.Now().UTC().Truncate(time.Second)

	t.Run("inserts and stamps last synced", func(t *testing.T) {
		entries := []domain.Entry{
			{GUID: "g1", ContentHash: feed.ContentHash("First", "first body"), Title: "First", Body: "first body"},
			{GUID: "g2", ContentHash: feed.ContentHash("Second", "second body"), Title: "Second", Body: "second body"},
		}
		inserted, err := repos.Entry.StoreBatch(ctx, src.ID, entries, syncedAt)
		require.NoError(t, err)
		assert.Equal(t, 2, inserted)

		count, err := repos.Entry.CountEntries(ctx, src.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		stamped, err := repos.Source.GetSource(ctx, src.ID)
		require.NoError(t, err)
		require.NotNil(t, stamped.LastSyncedAt)
		assert.WithinDuration(t, syncedAt, *stamped.LastSyncedAt, time.Second)
	})

	t.Run("replaying the same batch inserts nothing", func(t *testing.T) {
		entries := []domain.Entry{
			{GUID: "g1", ContentHash: feed.ContentHash("First", "first body"), Title: "First", Body: "first body"},
			{GUID: "g2", ContentHash: feed.ContentHash("Second", "second body"), Title: "Second", Body: "second body"},
		}
		inserted, err := repos.Entry.StoreBatch(ctx, src.ID, entries, time.Now().UTC())
		require.NoError(t, err)
		assert.Zero(t, inserted)

		count, err := repos.Entry.CountEntries(ctx, src.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("empty batch still stamps the source", func(t *testing.T) {
		later := syncedAt.Add(time.Hour)
		inserted, err := repos.Entry.StoreBatch(ctx, src.ID, nil, later)
		require.NoError(t, err)
		assert.Zero(t, inserted)

		stamped, err := repos.Source.GetSource(ctx, src.ID)
		require.NoError(t, err)
		require.NotNil(t, stamped.LastSyncedAt)
		assert.WithinDuration(t, later, *stamped.LastSyncedAt, time.Second)
	})

	t.Run("same guid in another source is unaffected", func(t *testing.T) {
		other := createTestSource(t, repos, "https://other.example.com/feed")
		entries := []domain.Entry{
			{GUID: "g1", ContentHash: feed.ContentHash("First", "first body"), Title: "First", Body: "first body"},
		}
		inserted, err := repos.Entry.StoreBatch(ctx, other.ID, entries, time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, 1, inserted)
	})

	t.Run("stamped timestamp usable by sqlite date arithmetic", func(t *testing.T) {
		_, err := repos.Entry.StoreBatch(ctx, src.ID, nil, time.Now().UTC())
		require.NoError(t, err)

		// a stamp datetime() cannot parse comes back NULL and would make
		// the source permanently overdue-invisible to the scheduler
		var due sql.NullString
		err = repos.Entry.db.GetContext(ctx, &due,
			"SELECT datetime(last_synced_at, '+' || sync_interval_minutes || ' minutes') FROM sources WHERE id = ?", src.ID)
		require.NoError(t, err)
		assert.True(t, due.Valid, "last_synced_at must be parseable by datetime()")
	})

	t.Run("empty guids never collide", func(t *testing.T) {
		blank := createTestSource(t, repos, "https://blank.example.com/feed")
		entries := []domain.Entry{
			{GUID: "", ContentHash: feed.ContentHash("A", "a"), Title: "A", Body: "a"},
			{GUID: "", ContentHash: feed.ContentHash("B", "b"), Title: "B", Body: "b"},
		}
		inserted, err := repos.Entry.StoreBatch(ctx, blank.ID, entries, time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, 2, inserted)
	})
}

func TestEntryRepository_ExistingKeys(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	src := createTestSource(t, repos, "https://keys.example.com/feed")

	hashA := feed.ContentHash("A", "a")
	hashB := feed.ContentHash("B", "b")
	entries := []domain.Entry{
		{GUID: "guid-a", ContentHash: hashA, Title: "A", Body: "a"},
		{GUID: "", ContentHash: hashB, Title: "B", Body: "b"},
	}
	_, err := repos.Entry.StoreBatch(ctx, src.ID, entries, time.Now().UTC())
	require.NoError(t, err)

	known, err := repos.Entry.ExistingKeys(ctx, src.ID)
	require.NoError(t, err)

	assert.Contains(t, known.GUIDs, "guid-a")
	assert.NotContains(t, known.GUIDs, "") // empty guids are not keys
	assert.Contains(t, known.Hashes, hashA)
	assert.Contains(t, known.Hashes, hashB)

	// other sources see nothing
	other := createTestSource(t, repos, "https://keys2.example.com/feed")
	empty, err := repos.Entry.ExistingKeys(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, empty.GUIDs)
	assert.Empty(t, empty.Hashes)
}

func TestEntryRepository_GetRecentEntries(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	src := createTestSource(t, repos, "https://recent.example.com/feed")
	now := time.Now().UTC().Truncate(time.Second)
	older := now.Add(-2 * time.Hour)
	newer := now.Add(-time.Hour)

	entries := []domain.Entry{
		{GUID: "old", ContentHash: feed.ContentHash("Old", "old"), Title: "Old", Body: "old", PublishedAt: &older},
		{GUID: "new", ContentHash: feed.ContentHash("New", "new"), Title: "New", Body: "new", PublishedAt: &newer},
		{GUID: "undated", ContentHash: feed.ContentHash("Undated", "undated"), Title: "Undated", Body: "undated"},
	}
	_, err := repos.Entry.StoreBatch(ctx, src.ID, entries, now)
	require.NoError(t, err)

	t.Run("ordering newest first, undated last", func(t *testing.T) {
		got, err := repos.Entry.GetRecentEntries(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "New", got[0].Title)
		assert.Equal(t, "Old", got[1].Title)
		assert.Equal(t, "Undated", got[2].Title)

		// source fields joined in
		assert.Equal(t, "Test Source", got[0].SourceName)
	})

	t.Run("limit respected", func(t *testing.T) {
		got, err := repos.Entry.GetRecentEntries(ctx, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "New", got[0].Title)
	})

	t.Run("inactive source excluded", func(t *testing.T) {
		src.Active = false
		require.NoError(t, repos.Source.UpdateSource(ctx, src))

		got, err := repos.Entry.GetRecentEntries(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, got)

		// entries stay in place for when the source comes back
		count, err := repos.Entry.CountEntries(ctx, src.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})
}

func TestEntryRepository_GetEntriesBySource(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	one := createTestSource(t, repos, "https://one.example.com/feed")
	two := createTestSource(t, repos, "https://two.example.com/feed")

	_, err := repos.Entry.StoreBatch(ctx, one.ID, []domain.Entry{
		{GUID: "a", ContentHash: feed.ContentHash("A", "a"), Title: "A"},
	}, time.Now().UTC())
	require.NoError(t, err)
	_, err = repos.Entry.StoreBatch(ctx, two.ID, []domain.Entry{
		{GUID: "b", ContentHash: feed.ContentHash("B", "b"), Title: "B"},
	}, time.Now().UTC())
	require.NoError(t, err)

	got, err := repos.Entry.GetEntriesBySource(ctx, one.ID, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Title)
}
