// Package session implements the calling-session contact queue and the
// call-outcome rules. The engine mutates in-memory state only; persistence,
// calendar records and email dispatch belong to the caller. Calls against
// one session must be serialized by the caller.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/acme/telesales-call-manager/internal/domain"
)

// State is the ephemeral queue of one calling session.
type State struct {
	ID            uuid.UUID        `json:"id"`
	ListID        uuid.UUID        `json:"list_id"`
	Contacts      []domain.Contact `json:"contacts"`
	CurrentIndex  int              `json:"current_index"`
	Requeued      []domain.Contact `json:"requeued"`
	SingleContact bool             `json:"single_contact"`
	Complete      bool             `json:"complete"`
	StartedAt     time.Time        `json:"started_at"`
}

// New builds a session over the given contacts in their given order.
func New(listID uuid.UUID, contacts []domain.Contact) *State {
	return &State{
		ID:        uuid.New(),
		ListID:    listID,
		Contacts:  contacts,
		StartedAt: time.Now().UTC(),
	}
}

// NewSingle builds a single-contact session: no queue, no advancing.
func NewSingle(contact domain.Contact) *State {
	return &State{
		ID:            uuid.New(),
		ListID:        contact.ListID,
		Contacts:      []domain.Contact{contact},
		SingleContact: true,
		StartedAt:     time.Now().UTC(),
	}
}

// Current returns the contact under the cursor, or nil when the session
// is complete.
func (s *State) Current() *domain.Contact {
	if s.Complete || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Contacts) {
		return nil
	}
	return &s.Contacts[s.CurrentIndex]
}

// Remaining reports how many contacts are still ahead of the cursor,
// including any buffered retries.
func (s *State) Remaining() int {
	if s.Complete {
		return 0
	}
	n := len(s.Contacts) - s.CurrentIndex
	if n < 0 {
		n = 0
	}
	return n + len(s.Requeued)
}
