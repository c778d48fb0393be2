package domain

import "time"

// Source represents a configured RSS/Atom feed source
type Source struct {
	ID                  int64      `json:"id"`
	Name                string     `json:"name"`
	FeedURL             string     `json:"feed_url"`
	HomepageURL         string     `json:"homepage_url,omitempty"`
	AvatarURL           string     `json:"avatar_url,omitempty"`
	Description         string     `json:"description,omitempty"`
	Language            string     `json:"language,omitempty"`
	Category            string     `json:"category,omitempty"`
	Active              bool       `json:"is_active"`
	SyncIntervalMinutes int        `json:"sync_interval_minutes"`
	LastSyncedAt        *time.Time `json:"last_synced_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// SyncInterval returns the per-source refresh cadence as a duration
func (s *Source) SyncInterval() time.Duration {
	return time.Duration(s.SyncIntervalMinutes) * time.Minute
}
