package domain

import "time"

// Entry represents a single stored feed item. Entries are append-only:
// once stored they are never updated or deleted by the engine.
type Entry struct {
	ID          int64      `json:"id"`
	SourceID    int64      `json:"source_id"`
	GUID        string     `json:"guid,omitempty"`
	ContentHash string     `json:"-"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary,omitempty"`
	Body        string     `json:"body,omitempty"`
	Link        string     `json:"link,omitempty"`
	Author      string     `json:"author,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	FetchedAt   time.Time  `json:"fetched_at"`

	// joined data, populated by snapshot queries only
	SourceName   string `json:"source_name,omitempty"`
	SourceAvatar string `json:"source_avatar,omitempty"`
}
