package scylla

import (
	"context"
	"fmt"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"github.com/acme/telesales-call-manager/internal/domain"
)

// HistoryStore persists per-contact call history in Scylla. Entries are
// written once and never updated.
type HistoryStore struct {
	session *gocql.Session
}

// NewHistoryStore creates a new history store.
func NewHistoryStore(session *gocql.Session) *HistoryStore {
	return &HistoryStore{session: session}
}

// Append inserts a call history entry.
func (s *HistoryStore) Append(ctx context.Context, entry *domain.CallHistory) error {
	if err := s.session.Query(`INSERT INTO history_by_contact (contact_id, called_at, entry_id, notes, result, meeting_date, meeting_time, callback_date, callback_time, callback_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ContactID.String(), entry.Date, entry.ID.String(), entry.Notes, string(entry.Result),
		entry.MeetingDate, entry.MeetingTime, entry.CallbackDate, entry.CallbackTime, entry.CallbackReason,
	).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("history store: insert: %w", err)
	}
	return nil
}

// ListByContact lists a contact's call history newest first, with pagination.
func (s *HistoryStore) ListByContact(ctx context.Context, contactID uuid.UUID, limit int, pagingState []byte) ([]domain.CallHistory, []byte, error) {
	if limit <= 0 {
		limit = 50
	}

	query := s.session.Query(`SELECT called_at, entry_id, notes, result, meeting_date, meeting_time, callback_date, callback_time, callback_reason
		FROM history_by_contact WHERE contact_id = ?`, contactID.String()).WithContext(ctx)
	query = query.PageSize(limit)
	if len(pagingState) > 0 {
		query = query.PageState(pagingState)
	}

	iter := query.Iter()
	entries := make([]domain.CallHistory, 0, limit)

	var (
		calledAt       time.Time
		entryIDStr     string
		notes          string
		result         string
		meetingDate    string
		meetingTime    string
		callbackDate   string
		callbackTime   string
		callbackReason string
	)

	for iter.Scan(&calledAt, &entryIDStr, &notes, &result, &meetingDate, &meetingTime, &callbackDate, &callbackTime, &callbackReason) {
		entryID, err := uuid.Parse(entryIDStr)
		if err != nil {
			continue
		}

		entries = append(entries, domain.CallHistory{
			ID:             entryID,
			ContactID:      contactID,
			Date:           calledAt,
			Notes:          notes,
			Result:         domain.CallResult(result),
			MeetingDate:    meetingDate,
			MeetingTime:    meetingTime,
			CallbackDate:   callbackDate,
			CallbackTime:   callbackTime,
			CallbackReason: callbackReason,
		})
	}

	if err := iter.Close(); err != nil {
		return nil, nil, fmt.Errorf("history store: iter close: %w", err)
	}

	return entries, iter.PageState(), nil
}
