// Package callsession orchestrates calling sessions. It owns nothing the
// engine in internal/session computes, only the plumbing around it:
// loading and sorting contacts, persisting outcomes, the calendar and
// email side-channels, and the per-session serialization.
package callsession

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acme/telesales-call-manager/internal/domain"
	"github.com/acme/telesales-call-manager/internal/render"
	"github.com/acme/telesales-call-manager/internal/repository"
	"github.com/acme/telesales-call-manager/internal/service/email"
	"github.com/acme/telesales-call-manager/internal/session"
	apperrors "github.com/acme/telesales-call-manager/pkg/errors"
)

// Service runs calling sessions end to end.
type Service struct {
	store           *session.Store
	contacts        repository.ContactRepository
	lists           repository.ContactListRepository
	history         repository.CallHistoryStore
	meetings        repository.MeetingRepository
	stats           repository.ListStatisticsRepository
	scripts         repository.ScriptRepository
	email           *email.Service
	companyName     string
	meetingDuration time.Duration
}

// NewService builds the session service.
func NewService(
	store *session.Store,
	contacts repository.ContactRepository,
	lists repository.ContactListRepository,
	history repository.CallHistoryStore,
	meetings repository.MeetingRepository,
	stats repository.ListStatisticsRepository,
	scripts repository.ScriptRepository,
	emailSvc *email.Service,
	companyName string,
	meetingDuration time.Duration,
) *Service {
	if meetingDuration <= 0 {
		meetingDuration = time.Hour
	}
	return &Service{
		store:           store,
		contacts:        contacts,
		lists:           lists,
		history:         history,
		meetings:        meetings,
		stats:           stats,
		scripts:         scripts,
		email:           emailSvc,
		companyName:     companyName,
		meetingDuration: meetingDuration,
	}
}

// Start loads a list's contacts in calling order and opens a session.
func (s *Service) Start(ctx context.Context, listID uuid.UUID) (*session.State, error) {
	if _, err := s.lists.Get(ctx, listID); err != nil {
		return nil, err
	}

	contacts, err := s.contacts.ListByList(ctx, listID, 0)
	if err != nil {
		return nil, fmt.Errorf("session service: load contacts: %w", err)
	}
	if len(contacts) == 0 {
		return nil, apperrors.Validationf("list has no contacts to call")
	}

	domain.SortForCalling(contacts)
	state := session.New(listID, contacts)

	if err := s.store.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// StartSingle opens a single-contact session.
func (s *Service) StartSingle(ctx context.Context, contactID uuid.UUID) (*session.State, error) {
	contact, err := s.contacts.Get(ctx, contactID)
	if err != nil {
		return nil, err
	}

	state := session.NewSingle(*contact)
	if err := s.store.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Get loads a session by id.
func (s *Service) Get(ctx context.Context, sessionID uuid.UUID) (*session.State, error) {
	return s.store.Load(ctx, sessionID)
}

// End deletes a session regardless of progress.
func (s *Service) End(ctx context.Context, sessionID uuid.UUID) error {
	return s.store.Delete(ctx, sessionID)
}

// CurrentView is the operator's view of the contact under the cursor.
type CurrentView struct {
	Contact         *domain.Contact
	Script          string
	Remaining       int
	SessionComplete bool
}

// Current returns the current contact with the script rendered for it.
// scriptID nil selects the default script; a missing default renders
// an empty script rather than failing the call flow.
func (s *Service) Current(ctx context.Context, sessionID uuid.UUID, scriptID *uuid.UUID) (*CurrentView, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	contact := state.Current()
	if contact == nil {
		return &CurrentView{SessionComplete: true}, nil
	}

	body := ""
	var script *domain.Script
	if scriptID != nil {
		script, err = s.scripts.Get(ctx, *scriptID)
	} else {
		script, err = s.scripts.GetDefault(ctx)
	}
	if err == nil {
		body = render.Render(script.Body, render.Data{
			ContactName:    contact.Name,
			ContactCompany: contact.Company,
			ContactEmail:   contact.Email,
			ContactPhone:   contact.Phone,
			ContactWebsite: contact.Website,
			CompanyName:    s.companyName,
		})
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	return &CurrentView{
		Contact:   contact,
		Script:    body,
		Remaining: state.Remaining(),
	}, nil
}

// OutcomeInput is the operator's submission for the current contact.
type OutcomeInput struct {
	Result         domain.CallResult
	Notes          string
	CallbackDate   string
	CallbackTime   string
	CallbackReason string
	MeetingDate    string
	MeetingTime    string
	SendEmail      bool
	TemplateID     *uuid.UUID
}

// OutcomeResult reports what happened, including non-fatal side-channel
// failures that must not roll back the recorded outcome.
type OutcomeResult struct {
	Contact         *domain.Contact
	History         *domain.CallHistory
	NextIndex       int
	SessionComplete bool
	Warnings        []string
}

// RecordOutcome records the outcome for the session's current contact and
// advances the queue. The whole operation holds the session lock, so two
// submissions against the same session never interleave.
func (s *Service) RecordOutcome(ctx context.Context, sessionID uuid.UUID, input OutcomeInput) (*OutcomeResult, error) {
	locked, err := s.store.Acquire(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, fmt.Errorf("%w: session is busy", apperrors.ErrConflict)
	}
	defer func() { _ = s.store.Release(ctx, sessionID) }()

	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	contact := state.Current()
	if contact == nil {
		return nil, apperrors.Validationf("session already complete")
	}

	outcome := session.Outcome{
		Result:         input.Result,
		Notes:          input.Notes,
		CallbackDate:   input.CallbackDate,
		CallbackTime:   input.CallbackTime,
		CallbackReason: input.CallbackReason,
		MeetingDate:    input.MeetingDate,
		MeetingTime:    input.MeetingTime,
	}

	entry, err := session.RecordOutcome(contact, outcome)
	if err != nil {
		return nil, err
	}

	// Persist the mutated contact and the history entry before advancing.
	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, fmt.Errorf("session service: persist contact: %w", err)
	}
	if err := s.history.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("session service: append history: %w", err)
	}

	result := &OutcomeResult{Contact: contact, History: entry}

	if err := s.stats.ApplyDelta(ctx, state.ListID, repository.DeltaForResult(input.Result)); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("statistics not updated: %v", err))
	}

	if input.Result == domain.ResultMeeting {
		if err := s.createMeeting(ctx, contact, input); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("meeting not created: %v", err))
		}
	}

	if input.SendEmail || input.Result == domain.ResultSendInfo {
		if err := s.sendEmail(ctx, contact, input); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("email not sent: %v", err))
		}
	}

	adv := session.Advance(state, input.Result)
	result.NextIndex = adv.NextIndex
	result.SessionComplete = adv.SessionComplete

	if adv.SessionComplete {
		if err := s.store.Delete(ctx, sessionID); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("session cleanup failed: %v", err))
		}
	} else if err := s.store.Save(ctx, state); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) createMeeting(ctx context.Context, contact *domain.Contact, input OutcomeInput) error {
	description := fmt.Sprintf("Kohtumine: %s", contact.Company)
	if input.Notes != "" {
		description = fmt.Sprintf("%s. %s", description, input.Notes)
	}

	meeting := &domain.Meeting{
		ID:          uuid.New(),
		ContactID:   contact.ID,
		Date:        input.MeetingDate,
		Time:        input.MeetingTime,
		Duration:    s.meetingDuration,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	return s.meetings.Create(ctx, meeting)
}

func (s *Service) sendEmail(ctx context.Context, contact *domain.Contact, input OutcomeInput) error {
	var meetingDate *time.Time
	if input.MeetingDate != "" {
		if t, err := time.Parse("2006-01-02", input.MeetingDate); err == nil {
			meetingDate = &t
		}
	}

	_, err := s.email.ComposeAndDispatch(ctx, email.ComposeInput{
		Contact:     contact,
		Result:      input.Result,
		MeetingDate: meetingDate,
		MeetingTime: input.MeetingTime,
		TemplateID:  input.TemplateID,
	})
	return err
}
