package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/acme/telesales-call-manager/internal/domain"
	apperrors "github.com/acme/telesales-call-manager/pkg/errors"
)

var (
	// ErrNotFound indicates the entity was not located.
	ErrNotFound = apperrors.ErrNotFound
	// ErrConflict indicates a unique constraint violation.
	ErrConflict = apperrors.ErrConflict
)

// ContactListRepository manages contact list metadata.
type ContactListRepository interface {
	Create(ctx context.Context, list *domain.ContactList) error
	Get(ctx context.Context, id uuid.UUID) (*domain.ContactList, error)
	Rename(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit int) ([]*domain.ContactList, error)
}

// ContactRepository manages contact persistence.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	BulkInsert(ctx context.Context, listID uuid.UUID, contacts []domain.Contact) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	Update(ctx context.Context, contact *domain.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByList(ctx context.Context, listID uuid.UUID, limit int) ([]domain.Contact, error)
	ListDueCallbacks(ctx context.Context, onDate string, limit int) ([]domain.Contact, error)
}

// CallHistoryStore persists per-contact call history as an append-only log.
type CallHistoryStore interface {
	Append(ctx context.Context, entry *domain.CallHistory) error
	ListByContact(ctx context.Context, contactID uuid.UUID, limit int, pagingState []byte) ([]domain.CallHistory, []byte, error)
}

// ScriptRepository manages call scripts.
type ScriptRepository interface {
	Create(ctx context.Context, script *domain.Script) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Script, error)
	GetDefault(ctx context.Context) (*domain.Script, error)
	Update(ctx context.Context, script *domain.Script) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit int) ([]*domain.Script, error)
}

// EmailTemplateRepository manages email templates.
type EmailTemplateRepository interface {
	Create(ctx context.Context, tmpl *domain.EmailTemplate) error
	Get(ctx context.Context, id uuid.UUID) (*domain.EmailTemplate, error)
	GetByCallResult(ctx context.Context, result domain.CallResult) (*domain.EmailTemplate, error)
	GetDefault(ctx context.Context) (*domain.EmailTemplate, error)
	Update(ctx context.Context, tmpl *domain.EmailTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit int) ([]*domain.EmailTemplate, error)
}

// MeetingRepository stores booked meetings.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *domain.Meeting) error
	ListByContact(ctx context.Context, contactID uuid.UUID, limit int) ([]domain.Meeting, error)
	ListUpcoming(ctx context.Context, limit int) ([]domain.Meeting, error)
}

// ListStatisticsRepository keeps per-list outcome counters.
type ListStatisticsRepository interface {
	Ensure(ctx context.Context, listID uuid.UUID) error
	Get(ctx context.Context, listID uuid.UUID) (*domain.ListStats, error)
	ApplyDelta(ctx context.Context, listID uuid.UUID, delta StatsDelta) error
}

// StatsDelta captures atomic counter increments.
type StatsDelta struct {
	TotalCallsDelta    int64
	MeetingsDelta      int64
	InfoRequestsDelta  int64
	NoAnswersDelta     int64
	NotInterestedDelta int64
	CallbacksDelta     int64
	OtherDelta         int64
}

// DeltaForResult maps a call result to the counter it increments.
func DeltaForResult(result domain.CallResult) StatsDelta {
	delta := StatsDelta{TotalCallsDelta: 1}
	switch result {
	case domain.ResultMeeting:
		delta.MeetingsDelta = 1
	case domain.ResultSendInfo:
		delta.InfoRequestsDelta = 1
	case domain.ResultNoAnswer:
		delta.NoAnswersDelta = 1
	case domain.ResultNotInterested:
		delta.NotInterestedDelta = 1
	case domain.ResultCallLater:
		delta.CallbacksDelta = 1
	default:
		delta.OtherDelta = 1
	}
	return delta
}
