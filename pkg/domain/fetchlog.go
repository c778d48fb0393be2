package domain

import "time"

// FetchStatus is the lifecycle state of a refresh attempt
type FetchStatus string

// fetch log statuses; running is the only non-terminal state
const (
	FetchRunning FetchStatus = "running"
	FetchSuccess FetchStatus = "success"
	FetchFailed  FetchStatus = "failed"
)

// FetchLog is the immutable audit record of one refresh attempt.
// A log is created with status running and finalized exactly once.
type FetchLog struct {
	ID             int64       `json:"id"`
	SourceID       int64       `json:"source_id"`
	Status         FetchStatus `json:"status"`
	StartedAt      time.Time   `json:"started_at"`
	FinishedAt     *time.Time  `json:"finished_at,omitempty"`
	ErrorMessage   string      `json:"error_message,omitempty"`
	EntriesFetched int         `json:"entries_fetched"`
}

// Terminal reports whether the log reached a final state
func (l *FetchLog) Terminal() bool {
	return l.Status == FetchSuccess || l.Status == FetchFailed
}
