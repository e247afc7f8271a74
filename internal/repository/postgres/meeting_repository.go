package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acme/telesales-call-manager/internal/domain"
)

// MeetingRepository implements repository.MeetingRepository using PostgreSQL.
type MeetingRepository struct {
	db *sqlx.DB
}

// NewMeetingRepository constructs the repository.
func NewMeetingRepository(db *sqlx.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// Create inserts a meeting record.
func (r *MeetingRepository) Create(ctx context.Context, meeting *domain.Meeting) error {
	q := `INSERT INTO meetings (id, contact_id, date, time, duration_minutes, description, created_at)
		VALUES (:id, :contact_id, :date, :time, :duration_minutes, :description, :created_at)`

	params := map[string]any{
		"id":               meeting.ID,
		"contact_id":       meeting.ContactID,
		"date":             meeting.Date,
		"time":             meeting.Time,
		"duration_minutes": int(meeting.Duration.Minutes()),
		"description":      meeting.Description,
		"created_at":       meeting.CreatedAt,
	}

	if _, err := r.db.NamedExecContext(ctx, q, params); err != nil {
		return fmt.Errorf("meeting repo: insert: %w", err)
	}
	return nil
}

// ListByContact returns a contact's meetings, soonest first.
func (r *MeetingRepository) ListByContact(ctx context.Context, contactID uuid.UUID, limit int) ([]domain.Meeting, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryxContext(ctx, `SELECT id, contact_id, date, time, duration_minutes, description, created_at
		FROM meetings WHERE contact_id = $1 ORDER BY date ASC, time ASC LIMIT $2`, contactID, limit)
	if err != nil {
		return nil, fmt.Errorf("meeting repo: list by contact: %w", err)
	}
	defer rows.Close()
	return scanMeetings(rows)
}

// ListUpcoming returns meetings from today onwards.
func (r *MeetingRepository) ListUpcoming(ctx context.Context, limit int) ([]domain.Meeting, error) {
	if limit <= 0 {
		limit = 100
	}
	today := time.Now().UTC().Format("2006-01-02")
	rows, err := r.db.QueryxContext(ctx, `SELECT id, contact_id, date, time, duration_minutes, description, created_at
		FROM meetings WHERE date >= $1 ORDER BY date ASC, time ASC LIMIT $2`, today, limit)
	if err != nil {
		return nil, fmt.Errorf("meeting repo: list upcoming: %w", err)
	}
	defer rows.Close()
	return scanMeetings(rows)
}

func scanMeetings(rows *sqlx.Rows) ([]domain.Meeting, error) {
	var results []domain.Meeting
	for rows.Next() {
		var rec meetingRecord
		if err := rows.StructScan(&rec); err != nil {
			return nil, fmt.Errorf("meeting repo: scan: %w", err)
		}
		results = append(results, rec.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("meeting repo: rows err: %w", err)
	}
	return results, nil
}

type meetingRecord struct {
	ID              uuid.UUID      `db:"id"`
	ContactID       uuid.UUID      `db:"contact_id"`
	Date            string         `db:"date"`
	Time            string         `db:"time"`
	DurationMinutes int            `db:"duration_minutes"`
	Description     sql.NullString `db:"description"`
	CreatedAt       sql.NullTime   `db:"created_at"`
}

func (r meetingRecord) toDomain() domain.Meeting {
	return domain.Meeting{
		ID:          r.ID,
		ContactID:   r.ContactID,
		Date:        r.Date,
		Time:        r.Time,
		Duration:    time.Duration(r.DurationMinutes) * time.Minute,
		Description: r.Description.String,
		CreatedAt:   r.CreatedAt.Time,
	}
}
