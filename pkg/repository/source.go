package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"feedsink/pkg/domain"
)

// ErrSourceNotFound is returned when a source id or feed URL is unknown
var ErrSourceNotFound = errors.New("source not found")

// SourceRepository handles source-related database operations
type SourceRepository struct {
	db *sqlx.DB
}

// sourceSQL represents a source for SQL operations
type sourceSQL struct {
	ID                  int64      `db:"id"`
	Name                string     `db:"name"`
	FeedURL             string     `db:"feed_url"`
	HomepageURL         string     `db:"homepage_url"`
	AvatarURL           string     `db:"avatar_url"`
	Description         string     `db:"description"`
	Language            string     `db:"language"`
	Category            string     `db:"category"`
	Active              bool       `db:"is_active"`
	SyncIntervalMinutes int        `db:"sync_interval_minutes"`
	LastSyncedAt        *time.Time `db:"last_synced_at"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

// NewSourceRepository creates a new source repository
func NewSourceRepository(database *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: database}
}

// CreateSource inserts a new source
func (r *SourceRepository) CreateSource(ctx context.Context, source *domain.Source) error {
	if source.SyncIntervalMinutes <= 0 {
		return fmt.Errorf("sync interval must be positive, got %d", source.SyncIntervalMinutes)
	}

	query := `
		INSERT INTO sources (name, feed_url, homepage_url, avatar_url, description, language, category, is_active, sync_interval_minutes)
		VALUES (:name, :feed_url, :homepage_url, :avatar_url, :description, :language, :category, :is_active, :sync_interval_minutes)
	`
	result, err := r.db.NamedExecContext(ctx, query, r.toSQL(source))
	if err != nil {
		return fmt.Errorf("create source: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}

	source.ID = id
	return nil
}

// EnsureSource creates the source unless one with the same feed URL
// already exists; returns the stored source either way. Used to seed
// configured sources at startup.
func (r *SourceRepository) EnsureSource(ctx context.Context, source *domain.Source) (*domain.Source, error) {
	existing, err := r.GetSourceByFeedURL(ctx, source.FeedURL)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrSourceNotFound) {
		return nil, err
	}

	if err := r.CreateSource(ctx, source); err != nil {
		return nil, err
	}
	return r.GetSource(ctx, source.ID)
}

// GetSource retrieves a source by ID
func (r *SourceRepository) GetSource(ctx context.Context, id int64) (*domain.Source, error) {
	var sqlSource sourceSQL
	err := r.db.GetContext(ctx, &sqlSource, "SELECT * FROM sources WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("source %d: %w", id, ErrSourceNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get source: %w", err)
	}
	return r.toDomain(&sqlSource), nil
}

// GetSourceByFeedURL retrieves a source by its unique feed URL
func (r *SourceRepository) GetSourceByFeedURL(ctx context.Context, feedURL string) (*domain.Source, error) {
	var sqlSource sourceSQL
	err := r.db.GetContext(ctx, &sqlSource, "SELECT * FROM sources WHERE feed_url = ?", feedURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("source %s: %w", feedURL, ErrSourceNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get source by feed url: %w", err)
	}
	return r.toDomain(&sqlSource), nil
}

// ListSources retrieves sources with optional active-only filtering
func (r *SourceRepository) ListSources(ctx context.Context, activeOnly bool) ([]*domain.Source, error) {
	query := "SELECT * FROM sources"
	if activeOnly {
		query += " WHERE is_active = 1"
	}
	query += " ORDER BY id"

	var sqlSources []sourceSQL
	err := r.db.SelectContext(ctx, &sqlSources, query)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	sources := make([]*domain.Source, len(sqlSources))
	for i, s := range sqlSources {
		sources[i] = r.toDomain(&s)
	}
	return sources, nil
}

// GetDueSources retrieves active sources whose per-source interval has
// elapsed since the last successful sync (or that were never synced)
func (r *SourceRepository) GetDueSources(ctx context.Context) ([]*domain.Source, error) {
	query := `
		SELECT * FROM sources
		WHERE is_active = 1
		AND (last_synced_at IS NULL
		     OR datetime(last_synced_at, '+' || sync_interval_minutes || ' minutes') <= datetime('now'))
		ORDER BY last_synced_at ASC
	`
	var sqlSources []sourceSQL
	err := r.db.SelectContext(ctx, &sqlSources, query)
	if err != nil {
		return nil, fmt.Errorf("get due sources: %w", err)
	}

	sources := make([]*domain.Source, len(sqlSources))
	for i, s := range sqlSources {
		sources[i] = r.toDomain(&s)
	}
	return sources, nil
}

// UpdateSource updates the externally editable fields of a source.
// Sync bookkeeping (last_synced_at, avatar) has dedicated methods.
func (r *SourceRepository) UpdateSource(ctx context.Context, source *domain.Source) error {
	if source.SyncIntervalMinutes <= 0 {
		return fmt.Errorf("sync interval must be positive, got %d", source.SyncIntervalMinutes)
	}

	query := `
		UPDATE sources
		SET name = :name,
		    feed_url = :feed_url,
		    homepage_url = :homepage_url,
		    description = :description,
		    language = :language,
		    category = :category,
		    is_active = :is_active,
		    sync_interval_minutes = :sync_interval_minutes,
		    updated_at = datetime('now')
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, r.toSQL(source))
	if err != nil {
		return fmt.Errorf("update source: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("source %d: %w", source.ID, ErrSourceNotFound)
	}
	return nil
}

// UpdateSourceAvatar stores a discovered avatar URL
func (r *SourceRepository) UpdateSourceAvatar(ctx context.Context, sourceID int64, avatarURL string) error {
	retrier := newRetrier()

	return retrier.Do(ctx, func() error {
		query := `
			UPDATE sources
			SET avatar_url = ?, updated_at = datetime('now')
			WHERE id = ?
		`
		_, err := r.db.ExecContext(ctx, query, avatarURL, sourceID)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("update source avatar: %w", err)}
		}
		return nil
	})
}

// DeleteSource removes a source and all its entries and logs. Admin
// operation: the sync engine itself never deletes sources.
func (r *SourceRepository) DeleteSource(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	return nil
}

// toSQL converts domain.Source to sourceSQL
func (r *SourceRepository) toSQL(source *domain.Source) *sourceSQL {
	return &sourceSQL{
		ID:                  source.ID,
		Name:                source.Name,
		FeedURL:             source.FeedURL,
		HomepageURL:         source.HomepageURL,
		AvatarURL:           source.AvatarURL,
		Description:         source.Description,
		Language:            source.Language,
		Category:            source.Category,
		Active:              source.Active,
		SyncIntervalMinutes: source.SyncIntervalMinutes,
		LastSyncedAt:        source.LastSyncedAt,
	}
}

// toDomain converts sourceSQL to domain.Source
func (r *SourceRepository) toDomain(sqlSource *sourceSQL) *domain.Source {
	return &domain.Source{
		ID:                  sqlSource.ID,
		Name:                sqlSource.Name,
		FeedURL:             sqlSource.FeedURL,
		HomepageURL:         sqlSource.HomepageURL,
		AvatarURL:           sqlSource.AvatarURL,
		Description:         sqlSource.Description,
		Language:            sqlSource.Language,
		Category:            sqlSource.Category,
		Active:              sqlSource.Active,
		SyncIntervalMinutes: sqlSource.SyncIntervalMinutes,
		LastSyncedAt:        sqlSource.LastSyncedAt,
		CreatedAt:           sqlSource.CreatedAt,
		UpdatedAt:           sqlSource.UpdatedAt,
	}
}
