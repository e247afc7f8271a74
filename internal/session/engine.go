package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/acme/telesales-call-manager/internal/domain"
	apperrors "github.com/acme/telesales-call-manager/pkg/errors"
)

// Outcome is the operator's report of a finished call.
type Outcome struct {
	Result         domain.CallResult
	Notes          string
	CallbackDate   string
	CallbackTime   string
	CallbackReason string
	MeetingDate    string
	MeetingTime    string
}

// Validate enforces the conditionally required outcome fields.
func (o Outcome) Validate() error {
	if o.Result == "" {
		return apperrors.Validationf("result required")
	}
	if o.Result == domain.ResultCallLater && (o.CallbackDate == "" || o.CallbackTime == "") {
		return apperrors.Validationf("callback date/time required")
	}
	if o.Result == domain.ResultMeeting && (o.MeetingDate == "" || o.MeetingTime == "") {
		return apperrors.Validationf("meeting date/time required")
	}
	return nil
}

// RecordOutcome validates the outcome, appends a history entry and updates
// the contact's status, last-call date and callback fields. On validation
// failure nothing is mutated. A recorded call always supersedes any pending
// callback: the callback fields are cleared unless the result schedules a
// new one.
func RecordOutcome(contact *domain.Contact, outcome Outcome) (*domain.CallHistory, error) {
	if err := outcome.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := &domain.CallHistory{
		ID:             uuid.New(),
		ContactID:      contact.ID,
		Date:           now,
		Notes:          outcome.Notes,
		Result:         outcome.Result,
		MeetingDate:    outcome.MeetingDate,
		MeetingTime:    outcome.MeetingTime,
		CallbackDate:   outcome.CallbackDate,
		CallbackTime:   outcome.CallbackTime,
		CallbackReason: outcome.CallbackReason,
	}

	contact.Status = outcome.Result
	contact.LastCallDate = &now

	if outcome.Result == domain.ResultCallLater {
		contact.CallbackDate = outcome.CallbackDate
		contact.CallbackTime = outcome.CallbackTime
		contact.CallbackReason = outcome.CallbackReason
	} else {
		contact.CallbackDate = ""
		contact.CallbackTime = ""
		contact.CallbackReason = ""
	}

	return entry, nil
}

// AdvanceResult describes the queue position after an outcome.
type AdvanceResult struct {
	NextIndex       int
	SessionComplete bool
	RequeuedCount   int
}

// Advance moves the session forward after recording the given result.
//
// A "no answer" outcome additionally buffers a requeued copy of the contact
// so it gets exactly one retry later in the same pass; the original slot is
// still consumed. When the cursor runs off the end of the list, any
// buffered retries are appended and the cursor lands on the first of them;
// only an empty buffer ends the session.
func Advance(s *State, result domain.CallResult) AdvanceResult {
	if s.SingleContact {
		s.Complete = true
		return AdvanceResult{NextIndex: s.CurrentIndex, SessionComplete: true}
	}

	if current := s.Current(); current != nil {
		// A requeued copy gets no second retry; its flag expires with it.
		if result == domain.ResultNoAnswer && !current.Requeued {
			clone := *current
			clone.Requeued = true
			s.Requeued = append(s.Requeued, clone)
		}
		current.Requeued = false
	}

	s.CurrentIndex++

	if s.CurrentIndex >= len(s.Contacts) {
		if len(s.Requeued) > 0 {
			s.Contacts = append(s.Contacts, s.Requeued...)
			s.Requeued = nil
		} else {
			s.Complete = true
		}
	}

	return AdvanceResult{
		NextIndex:       s.CurrentIndex,
		SessionComplete: s.Complete,
		RequeuedCount:   len(s.Requeued),
	}
}
