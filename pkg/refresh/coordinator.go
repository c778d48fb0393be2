package refresh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"feedsink/pkg/domain"
	"feedsink/pkg/feed"
)

//go:generate moq -out mocks/source_store.go -pkg mocks -skip-ensure -fmt goimports . SourceStore
//go:generate moq -out mocks/entry_store.go -pkg mocks -skip-ensure -fmt goimports . EntryStore
//go:generate moq -out mocks/fetchlog_store.go -pkg mocks -skip-ensure -fmt goimports . FetchLogStore
//go:generate moq -out mocks/parser.go -pkg mocks -skip-ensure -fmt goimports . Parser
//go:generate moq -out mocks/avatar_resolver.go -pkg mocks -skip-ensure -fmt goimports . AvatarResolver

// ErrRefreshInFlight is returned when a refresh for the same source is
// already running; no new attempt is created in that case
var ErrRefreshInFlight = errors.New("refresh already in flight")

// ErrSourceInactive is returned on a manual refresh of a disabled source
var ErrSourceInactive = errors.New("source is inactive")

// SourceStore is the source registry the coordinator reads and stamps
type SourceStore interface {
	GetSource(ctx context.Context, id int64) (*domain.Source, error)
	UpdateSourceAvatar(ctx context.Context, sourceID int64, avatarURL string) error
}

// EntryStore persists deduplicated entries
type EntryStore interface {
	ExistingKeys(ctx context.Context, sourceID int64) (feed.KnownKeys, error)
	StoreBatch(ctx context.Context, sourceID int64, entries []domain.Entry, syncedAt time.Time) (int, error)
}

// FetchLogStore records refresh attempts
type FetchLogStore interface {
	CreateLog(ctx context.Context, sourceID int64, startedAt time.Time) (*domain.FetchLog, error)
	FinalizeLog(ctx context.Context, logID int64, status domain.FetchStatus, errMsg string, entriesFetched int, finishedAt time.Time) error
}

// Parser fetches and parses a feed URL
type Parser interface {
	Parse(ctx context.Context, url string) (*feed.Parsed, error)
}

// AvatarResolver discovers a source's display image, best-effort
type AvatarResolver interface {
	Resolve(ctx context.Context, pageURL string) (string, error)
}

// Coordinator orchestrates one refresh attempt end to end: per-source
// mutual exclusion, fetch log lifecycle, fetch/parse/dedup, the atomic
// entries + last_synced_at commit and best-effort avatar resolution.
// At most one attempt actively writes for a given source at any instant.
type Coordinator struct {
	sources SourceStore
	entries EntryStore
	logs    FetchLogStore
	parser  Parser
	avatars AvatarResolver
	locks   *sourceLocks
}

// NewCoordinator creates a refresh coordinator
func NewCoordinator(sources SourceStore, entries EntryStore, logs FetchLogStore, parser Parser, avatars AvatarResolver) *Coordinator {
	return &Coordinator{
		sources: sources,
		entries: entries,
		logs:    logs,
		parser:  parser,
		avatars: avatars,
		locks:   newSourceLocks(),
	}
}

// Refresh runs one refresh attempt for the source and returns its
// finalized fetch log. A failed attempt is not an error from the caller's
// point of view: the returned log carries status failed and the recorded
// message. Errors are returned only when no attempt was made at all
// (unknown source, inactive source, refresh already in flight, or the
// attempt record itself could not be created).
func (c *Coordinator) Refresh(ctx context.Context, sourceID int64) (*domain.FetchLog, error) {
	source, err := c.sources.GetSource(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("refresh source %d: %w", sourceID, err)
	}
	if !source.Active {
		return nil, fmt.Errorf("refresh source %d: %w", sourceID, ErrSourceInactive)
	}

	if !c.locks.tryAcquire(sourceID) {
		return nil, ErrRefreshInFlight
	}
	defer c.locks.release(sourceID)

	fetchLog, err := c.logs.CreateLog(ctx, sourceID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("create fetch log for source %d: %w", sourceID, err)
	}

	inserted, attemptErr := c.runAttempt(ctx, source)

	finishedAt := time.Now().UTC()
	if attemptErr != nil {
		lgr.Printf("[WARN] refresh failed for source %d (%s): %v", source.ID, source.FeedURL, attemptErr)
		if err := c.logs.FinalizeLog(ctx, fetchLog.ID, domain.FetchFailed, attemptErr.Error(), 0, finishedAt); err != nil {
			return nil, fmt.Errorf("finalize fetch log %d: %w", fetchLog.ID, err)
		}
		fetchLog.Status = domain.FetchFailed
		fetchLog.ErrorMessage = attemptErr.Error()
		fetchLog.FinishedAt = &finishedAt
		return fetchLog, nil
	}

	if err := c.logs.FinalizeLog(ctx, fetchLog.ID, domain.FetchSuccess, "", inserted, finishedAt); err != nil {
		return nil, fmt.Errorf("finalize fetch log %d: %w", fetchLog.ID, err)
	}
	fetchLog.Status = domain.FetchSuccess
	fetchLog.EntriesFetched = inserted
	fetchLog.FinishedAt = &finishedAt

	lgr.Printf("[INFO] refreshed source %d (%s): %d new entries", source.ID, source.FeedURL, inserted)
	return fetchLog, nil
}

// runAttempt executes fetch, parse, dedup, the atomic store and the
// best-effort avatar step; any returned error fails the whole attempt
func (c *Coordinator) runAttempt(ctx context.Context, source *domain.Source) (inserted int, err error) {
	parsed, err := c.parser.Parse(ctx, source.FeedURL)
	if err != nil {
		return 0, err
	}

	known, err := c.entries.ExistingKeys(ctx, source.ID)
	if err != nil {
		return 0, fmt.Errorf("load dedup keys: %w", err)
	}

	fresh := feed.SelectNew(parsed.Items, known)

	now := time.Now().UTC()
	entries := make([]domain.Entry, len(fresh))
	for i, item := range fresh {
		entries[i] = domain.Entry{
			SourceID:    source.ID,
			GUID:        item.GUID,
			ContentHash: feed.ContentHash(item.Title, item.Body),
			Title:       item.Title,
			Summary:     item.Summary,
			Body:        item.Body,
			Link:        item.Link,
			Author:      item.Author,
			PublishedAt: item.Published,
			FetchedAt:   now,
		}
	}

	// new entries and the sync timestamp commit together or not at all
	inserted, err = c.entries.StoreBatch(ctx, source.ID, entries, now)
	if err != nil {
		return 0, fmt.Errorf("store entries: %w", err)
	}

	c.ensureAvatar(ctx, source)

	return inserted, nil
}

// ensureAvatar resolves and stores a display image when the source lacks
// one; every failure here is swallowed, it never fails the attempt
func (c *Coordinator) ensureAvatar(ctx context.Context, source *domain.Source) {
	if source.AvatarURL != "" {
		return
	}

	pageURL := source.HomepageURL
	if pageURL == "" {
		pageURL = source.FeedURL
	}

	avatarURL, err := c.avatars.Resolve(ctx, pageURL)
	if err != nil {
		lgr.Printf("[WARN] avatar resolution failed for source %d (%s): %v", source.ID, pageURL, err)
		return
	}
	if avatarURL == "" {
		lgr.Printf("[DEBUG] no avatar found for source %d (%s)", source.ID, pageURL)
		return
	}

	if err := c.sources.UpdateSourceAvatar(ctx, source.ID, avatarURL); err != nil {
		lgr.Printf("[WARN] failed to store avatar for source %d: %v", source.ID, err)
		return
	}
	source.AvatarURL = avatarURL
	lgr.Printf("[INFO] resolved avatar for source %d: %s", source.ID, avatarURL)
}
