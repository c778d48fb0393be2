package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedsink/pkg/domain"
)

func TestSourceRepository_CreateAndGet(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	src := &domain.Source{
		Name:                "Example",
		FeedURL:             "https://example.com/feed.xml",
		HomepageURL:         "https://example.com",
		Description:         "an example feed",
		Language:            "en",
		Category:            "tech",
		Active:              true,
		SyncIntervalMinutes: 15,
	}
	require.NoError(t, repos.Source.CreateSource(ctx, src))
	require.NotZero(t, src.ID)

	got, err := repos.Source.GetSource(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, "Example", got.Name)
	assert.Equal(t, "https://example.com/feed.xml", got.FeedURL)
	assert.Equal(t, 15, got.SyncIntervalMinutes)
	assert.True(t, got.Active)
	assert.Nil(t, got.LastSyncedAt)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSourceRepository_CreateSource_Validation(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	t.Run("zero interval rejected", func(t *testing.T) {
		err := repos.Source.CreateSource(ctx, &domain.Source{
			Name:    "Bad",
			FeedURL: "https://bad.example.com/feed",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sync interval")
	})

	t.Run("duplicate feed url rejected", func(t *testing.T) {
		createTestSource(t, repos, "https://dup.example.com/feed")
		err := repos.Source.CreateSource(ctx, &domain.Source{
			Name:                "Dup",
			FeedURL:             "https://dup.example.com/feed",
			Active:              true,
			SyncIntervalMinutes: 30,
		})
		require.Error(t, err)
	})
}

func TestSourceRepository_GetSource_NotFound(t *testing.T) {
	repos := setupTestDB(t)

	_, err := repos.Source.GetSource(context.Background(), 12345)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestSourceRepository_EnsureSource(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	src := &domain.Source{
		Name:                "Seeded",
		FeedURL:             "https://seed.example.com/feed",
		Active:              true,
		SyncIntervalMinutes: 30,
	}
	first, err := repos.Source.EnsureSource(ctx, src)
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	// second ensure with the same feed url is a no-op, original row wins
	again, err := repos.Source.EnsureSource(ctx, &domain.Source{
		Name:                "Renamed",
		FeedURL:             "https://seed.example.com/feed",
		Active:              true,
		SyncIntervalMinutes: 99,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Seeded", again.Name)
	assert.Equal(t, 30, again.SyncIntervalMinutes)
}

func TestSourceRepository_ListSources(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	active := createTestSource(t, repos, "https://a.example.com/feed")
	inactive := &domain.Source{
		Name:                "Inactive",
		FeedURL:             "https://b.example.com/feed",
		Active:              false,
		SyncIntervalMinutes: 30,
	}
	require.NoError(t, repos.Source.CreateSource(ctx, inactive))

	all, err := repos.Source.ListSources(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	activeOnly, err := repos.Source.ListSources(ctx, true)
	require.NoError(t, err)
	require.Len(t, activeOnly, 1)
	assert.Equal(t, active.ID, activeOnly[0].ID)
}

func TestSourceRepository_GetDueSources(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	t.Run("never synced source is due", func(t *testing.T) {
		src := createTestSource(t, repos, "https://due1.example.com/feed")

		due, err := repos.Source.GetDueSources(ctx)
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, src.ID, due[0].ID)
	})

	t.Run("recently synced source is not due", func(t *testing.T) {
		src, err := repos.Source.GetSourceByFeedURL(ctx, "https://due1.example.com/feed")
		require.NoError(t, err)

		// stamp a sync just now; with a 30 minute interval the source drops out
		_, err = repos.Entry.StoreBatch(ctx, src.ID, nil, time.Now().UTC())
		require.NoError(t, err)

		due, err := repos.Source.GetDueSources(ctx)
		require.NoError(t, err)
		assert.Empty(t, due)
	})

	t.Run("elapsed interval makes source due again", func(t *testing.T) {
		src, err := repos.Source.GetSourceByFeedURL(ctx, "https://due1.example.com/feed")
		require.NoError(t, err)

		// a sync stamped an hour ago is past the 30 minute interval
		_, err = repos.Entry.StoreBatch(ctx, src.ID, nil, time.Now().UTC().Add(-time.Hour))
		require.NoError(t, err)

		due, err := repos.Source.GetDueSources(ctx)
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, src.ID, due[0].ID)
	})

	t.Run("inactive source never due", func(t *testing.T) {
		src, err := repos.Source.GetSourceByFeedURL(ctx, "https://due1.example.com/feed")
		require.NoError(t, err)
		src.Active = false
		require.NoError(t, repos.Source.UpdateSource(ctx, src))

		due, err := repos.Source.GetDueSources(ctx)
		require.NoError(t, err)
		assert.Empty(t, due)
	})
}

func TestSourceRepository_UpdateSource(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	src := createTestSource(t, repos, "https://upd.example.com/feed")
	src.Name = "Updated"
	src.SyncIntervalMinutes = 120
	src.Active = false
	require.NoError(t, repos.Source.UpdateSource(ctx, src))

	got, err := repos.Source.GetSource(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated", got.Name)
	assert.Equal(t, 120, got.SyncIntervalMinutes)
	assert.False(t, got.Active)

	t.Run("unknown id", func(t *testing.T) {
		err := repos.Source.UpdateSource(ctx, &domain.Source{ID: 9999, Name: "x", FeedURL: "https://x", SyncIntervalMinutes: 1})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSourceNotFound)
	})
}

func TestSourceRepository_UpdateSourceAvatar(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	src := createTestSource(t, repos, "https://avatar.example.com/feed")
	require.NoError(t, repos.Source.UpdateSourceAvatar(ctx, src.ID, "https://example.com/icon.png"))

	got, err := repos.Source.GetSource(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/icon.png", got.AvatarURL)
}

func TestSourceRepository_DeleteSource(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	src := createTestSource(t, repos, "https://del.example.com/feed")

	// entries and logs go with the source
	_, err := repos.Entry.StoreBatch(ctx, src.ID, []domain.Entry{
		{GUID: "g1", ContentHash: "h1", Title: "one"},
	}, time.Now().UTC())
	require.NoError(t, err)
	_, err = repos.FetchLog.CreateLog(ctx, src.ID, time.Now().UTC())
	require.NoError(t, err)

	require.NoError(t, repos.Source.DeleteSource(ctx, src.ID))

	_, err = repos.Source.GetSource(ctx, src.ID)
	assert.ErrorIs(t, err, ErrSourceNotFound)

	count, err := repos.Entry.CountEntries(ctx, src.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	logs, err := repos.FetchLog.ListLogs(ctx, src.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
