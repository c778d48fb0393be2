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

// ErrLogFinalized is returned on an attempt to finalize a fetch log twice
var ErrLogFinalized = errors.New("fetch log already finalized")

// FetchLogRepository handles the append-only refresh audit trail
type FetchLogRepository struct {
	db *sqlx.DB
}

// fetchLogSQL represents a fetch log for SQL operations
type fetchLogSQL struct {
	ID             int64      `db:"id"`
	SourceID       int64      `db:"source_id"`
	Status         string     `db:"status"`
	StartedAt      time.Time  `db:"started_at"`
	FinishedAt     *time.Time `db:"finished_at"`
	ErrorMessage   string     `db:"error_message"`
	EntriesFetched int        `db:"entries_fetched"`
}

// NewFetchLogRepository creates a new fetch log repository
func NewFetchLogRepository(database *sqlx.DB) *FetchLogRepository {
	return &FetchLogRepository{db: database}
}

// CreateLog inserts a running log row marking the start of a refresh attempt
func (r *FetchLogRepository) CreateLog(ctx context.Context, sourceID int64, startedAt time.Time) (*domain.FetchLog, error) {
	retrier := newRetrier()

	var id int64
	err := retrier.Do(ctx, func() error {
		result, err := r.db.ExecContext(ctx,
			"INSERT INTO fetch_logs (source_id, status, started_at) VALUES (?, ?, ?)",
			sourceID, domain.FetchRunning, startedAt)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("create fetch log: %w", err)}
		}
		id, err = result.LastInsertId()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get insert id: %w", err)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &domain.FetchLog{
		ID:        id,
		SourceID:  sourceID,
		Status:    domain.FetchRunning,
		StartedAt: startedAt,
	}, nil
}

// FinalizeLog moves a running log to its terminal state. A log can be
// finalized exactly once; a second call returns ErrLogFinalized.
func (r *FetchLogRepository) FinalizeLog(ctx context.Context, logID int64, status domain.FetchStatus, errMsg string, entriesFetched int, finishedAt time.Time) error {
	if status != domain.FetchSuccess && status != domain.FetchFailed {
		return fmt.Errorf("status %q is not terminal", status)
	}

	retrier := newRetrier()

	return retrier.Do(ctx, func() error {
		result, err := r.db.ExecContext(ctx, `
			UPDATE fetch_logs
			SET status = ?, error_message = ?, entries_fetched = ?, finished_at = ?
			WHERE id = ? AND status = ?`,
			status, errMsg, entriesFetched, finishedAt, logID, domain.FetchRunning)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("finalize fetch log: %w", err)}
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get rows affected: %w", err)}
		}
		if affected == 0 {
			return &criticalError{err: fmt.Errorf("fetch log %d: %w", logID, ErrLogFinalized)}
		}
		return nil
	})
}

// GetLog retrieves a fetch log by ID
func (r *FetchLogRepository) GetLog(ctx context.Context, id int64) (*domain.FetchLog, error) {
	var sqlLog fetchLogSQL
	err := r.db.GetContext(ctx, &sqlLog, "SELECT * FROM fetch_logs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("fetch log %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get fetch log: %w", err)
	}
	return r.toDomain(&sqlLog), nil
}

// ListLogs retrieves a source's refresh history, most recent first
func (r *FetchLogRepository) ListLogs(ctx context.Context, sourceID int64, limit int) ([]*domain.FetchLog, error) {
	var sqlLogs []fetchLogSQL
	err := r.db.SelectContext(ctx, &sqlLogs,
		"SELECT * FROM fetch_logs WHERE source_id = ? ORDER BY started_at DESC, id DESC LIMIT ?",
		sourceID, limit)
	if err != nil {
		return nil, fmt.Errorf("list fetch logs: %w", err)
	}

	logs := make([]*domain.FetchLog, len(sqlLogs))
	for i, l := range sqlLogs {
		logs[i] = r.toDomain(&l)
	}
	return logs, nil
}

// toDomain converts fetchLogSQL to domain.FetchLog
func (r *FetchLogRepository) toDomain(sqlLog *fetchLogSQL) *domain.FetchLog {
	return &domain.FetchLog{
		ID:             sqlLog.ID,
		SourceID:       sqlLog.SourceID,
		Status:         domain.FetchStatus(sqlLog.Status),
		StartedAt:      sqlLog.StartedAt,
		FinishedAt:     sqlLog.FinishedAt,
		ErrorMessage:   sqlLog.ErrorMessage,
		EntriesFetched: sqlLog.EntriesFetched,
	}
}
