package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"feedsink/pkg/domain"
	"feedsink/pkg/feed"
)

// EntryRepository handles entry-related database operations
type EntryRepository struct {
	db *sqlx.DB
}

// entrySQL represents an entry for SQL operations
type entrySQL struct {
	ID          int64      `db:"id"`
	SourceID    int64      `db:"source_id"`
	GUID        string     `db:"guid"`
	ContentHash string     `db:"content_hash"`
	Title       string     `db:"title"`
	Summary     string     `db:"summary"`
	Body        string     `db:"body"`
	Link        string     `db:"link"`
	Author      string     `db:"author"`
	PublishedAt *time.Time `db:"published_at"`
	FetchedAt   time.Time  `db:"fetched_at"`

	// joined data (not stored in entries, populated by snapshot queries)
	SourceName   string `db:"source_name"`
	SourceAvatar string `db:"source_avatar"`
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(database *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: database}
}

// ExistingKeys loads the dedup keys (guids and content hashes) of all
// stored entries for a source
func (r *EntryRepository) ExistingKeys(ctx context.Context, sourceID int64) (feed.KnownKeys, error) {
	known := feed.NewKnownKeys()

	rows, err := r.db.QueryxContext(ctx,
		"SELECT guid, content_hash FROM entries WHERE source_id = ?", sourceID)
	if err != nil {
		return known, fmt.Errorf("load existing keys: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var guid, hash string
		if err := rows.Scan(&guid, &hash); err != nil {
			return known, fmt.Errorf("scan existing keys: %w", err)
		}
		if guid != "" {
			known.GUIDs[guid] = struct{}{}
		}
		known.Hashes[hash] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return known, fmt.Errorf("iterate existing keys: %w", err)
	}

	return known, nil
}

// StoreBatch persists new entries and stamps the source's last_synced_at
// in a single transaction; either everything commits or nothing does.
// Residual duplicates rejected by the unique indexes are counted as
// already present, not as failures. Returns the number actually inserted.
func (r *EntryRepository) StoreBatch(ctx context.Context, sourceID int64, entries []domain.Entry, syncedAt time.Time) (int, error) {
	retrier := newRetrier()

	inserted := 0
	err := retrier.Do(ctx, func() error {
		inserted = 0

		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("begin store batch: %w", err)}
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		insertQuery := `
			INSERT INTO entries (source_id, guid, content_hash, title, summary, body, link, author, published_at, fetched_at)
			VALUES (:source_id, :guid, :content_hash, :title, :summary, :body, :link, :author, :published_at, :fetched_at)
			ON CONFLICT DO NOTHING
		`
		for i := range entries {
			entries[i].SourceID = sourceID
			if entries[i].FetchedAt.IsZero() {
				entries[i].FetchedAt = syncedAt
			}

			result, err := tx.NamedExecContext(ctx, insertQuery, r.toSQL(&entries[i]))
			if err != nil {
				if isLockError(err) {
					return err // retry whole transaction
				}
				return &criticalError{err: fmt.Errorf("insert entry %q: %w", entries[i].Title, err)}
			}
			affected, err := result.RowsAffected()
			if err != nil {
				return &criticalError{err: fmt.Errorf("get rows affected: %w", err)}
			}
			inserted += int(affected)
		}

		// last_synced_at feeds the due-source datetime() arithmetic,
		// so it must be stored in a form that function can parse
		if _, err := tx.ExecContext(ctx,
			"UPDATE sources SET last_synced_at = ?, updated_at = ? WHERE id = ?",
			sqlTime(syncedAt), sqlTime(syncedAt), sourceID); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("update last synced: %w", err)}
		}

		if err := tx.Commit(); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("commit store batch: %w", err)}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// GetRecentEntries retrieves the most recent entries across all active
// sources, newest first with undated entries last, capped at limit.
// Source name and avatar are joined in for display.
func (r *EntryRepository) GetRecentEntries(ctx context.Context, limit int) ([]*domain.Entry, error) {
	query := `
		SELECT e.*, s.name AS source_name, s.avatar_url AS source_avatar
		FROM entries e
		JOIN sources s ON s.id = e.source_id
		WHERE s.is_active = 1
		ORDER BY e.published_at IS NULL, e.published_at DESC, e.id DESC
		LIMIT ?
	`
	var sqlEntries []entrySQL
	err := r.db.SelectContext(ctx, &sqlEntries, query, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent entries: %w", err)
	}

	entries := make([]*domain.Entry, len(sqlEntries))
	for i, e := range sqlEntries {
		entries[i] = r.toDomain(&e)
	}
	return entries, nil
}

// GetEntriesBySource retrieves a source's entries, newest first
func (r *EntryRepository) GetEntriesBySource(ctx context.Context, sourceID int64, limit int) ([]*domain.Entry, error) {
	query := `
		SELECT e.*, s.name AS source_name, s.avatar_url AS source_avatar
		FROM entries e
		JOIN sources s ON s.id = e.source_id
		WHERE e.source_id = ?
		ORDER BY e.published_at IS NULL, e.published_at DESC, e.id DESC
		LIMIT ?
	`
	var sqlEntries []entrySQL
	err := r.db.SelectContext(ctx, &sqlEntries, query, sourceID, limit)
	if err != nil {
		return nil, fmt.Errorf("get entries by source: %w", err)
	}

	entries := make([]*domain.Entry, len(sqlEntries))
	for i, e := range sqlEntries {
		entries[i] = r.toDomain(&e)
	}
	return entries, nil
}

// CountEntries returns the number of stored entries for a source
func (r *EntryRepository) CountEntries(ctx context.Context, sourceID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM entries WHERE source_id = ?", sourceID)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

// toSQL converts domain.Entry to entrySQL
func (r *EntryRepository) toSQL(entry *domain.Entry) *entrySQL {
	return &entrySQL{
		ID:          entry.ID,
		SourceID:    entry.SourceID,
		GUID:        entry.GUID,
		ContentHash: entry.ContentHash,
		Title:       entry.Title,
		Summary:     entry.Summary,
		Body:        entry.Body,
		Link:        entry.Link,
		Author:      entry.Author,
		PublishedAt: entry.PublishedAt,
		FetchedAt:   entry.FetchedAt,
	}
}

// toDomain converts entrySQL to domain.Entry
func (r *EntryRepository) toDomain(sqlEntry *entrySQL) *domain.Entry {
	return &domain.Entry{
		ID:           sqlEntry.ID,
		SourceID:     sqlEntry.SourceID,
		GUID:         sqlEntry.GUID,
		ContentHash:  sqlEntry.ContentHash,
		Title:        sqlEntry.Title,
		Summary:      sqlEntry.Summary,
		Body:         sqlEntry.Body,
		Link:         sqlEntry.Link,
		Author:       sqlEntry.Author,
		PublishedAt:  sqlEntry.PublishedAt,
		FetchedAt:    sqlEntry.FetchedAt,
		SourceName:   sqlEntry.SourceName,
		SourceAvatar: sqlEntry.SourceAvatar,
	}
}
