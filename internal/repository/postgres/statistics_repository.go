package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acme/telesales-call-manager/internal/domain"
	"github.com/acme/telesales-call-manager/internal/repository"
)

// ListStatisticsRepository implements repository.ListStatisticsRepository.
type ListStatisticsRepository struct {
	db *sqlx.DB
}

// NewListStatisticsRepository builds the repository.
func NewListStatisticsRepository(db *sqlx.DB) *ListStatisticsRepository {
	return &ListStatisticsRepository{db: db}
}

// Ensure ensures a counters row exists for the list.
func (r *ListStatisticsRepository) Ensure(ctx context.Context, listID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO list_statistics (list_id)
		VALUES ($1) ON CONFLICT (list_id) DO NOTHING`, listID)
	if err != nil {
		return fmt.Errorf("list stats: ensure: %w", err)
	}
	return nil
}

// Get retrieves outcome counters for a list.
func (r *ListStatisticsRepository) Get(ctx context.Context, listID uuid.UUID) (*domain.ListStats, error) {
	row := r.db.QueryRowxContext(ctx, `SELECT total_calls, meetings, info_requests, no_answers, not_interested, callbacks, other
		FROM list_statistics WHERE list_id = $1`, listID)

	var rec statsRecord
	if err := row.StructScan(&rec); err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("list stats: get: %w", err)
	}

	stats := rec.toDomain()
	return &stats, nil
}

// ApplyDelta applies counter deltas atomically.
func (r *ListStatisticsRepository) ApplyDelta(ctx context.Context, listID uuid.UUID, delta repository.StatsDelta) error {
	_, err := r.db.ExecContext(ctx, `UPDATE list_statistics SET
		total_calls = total_calls + $2,
		meetings = meetings + $3,
		info_requests = info_requests + $4,
		no_answers = no_answers + $5,
		not_interested = not_interested + $6,
		callbacks = callbacks + $7,
		other = other + $8,
		updated_at = NOW()
	WHERE list_id = $1`,
		listID,
		delta.TotalCallsDelta,
		delta.MeetingsDelta,
		delta.InfoRequestsDelta,
		delta.NoAnswersDelta,
		delta.NotInterestedDelta,
		delta.CallbacksDelta,
		delta.OtherDelta,
	)
	if err != nil {
		return fmt.Errorf("list stats: apply delta: %w", err)
	}
	return nil
}

type statsRecord struct {
	TotalCalls    int64 `db:"total_calls"`
	Meetings      int64 `db:"meetings"`
	InfoRequests  int64 `db:"info_requests"`
	NoAnswers     int64 `db:"no_answers"`
	NotInterested int64 `db:"not_interested"`
	Callbacks     int64 `db:"callbacks"`
	Other         int64 `db:"other"`
}

func (r statsRecord) toDomain() domain.ListStats {
	return domain.ListStats{
		TotalCalls:    r.TotalCalls,
		Meetings:      r.Meetings,
		InfoRequests:  r.InfoRequests,
		NoAnswers:     r.NoAnswers,
		NotInterested: r.NotInterested,
		Callbacks:     r.Callbacks,
		Other:         r.Other,
	}
}
