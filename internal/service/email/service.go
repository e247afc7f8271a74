// Package email selects, renders and dispatches templated emails.
package email

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acme/telesales-call-manager/internal/domain"
	"github.com/acme/telesales-call-manager/internal/queue"
	"github.com/acme/telesales-call-manager/internal/render"
	"github.com/acme/telesales-call-manager/internal/repository"
	apperrors "github.com/acme/telesales-call-manager/pkg/errors"
)

// Dispatcher pushes rendered emails onto the delivery queue.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg queue.EmailMessage) error
}

// Service composes outbound emails from templates.
type Service struct {
	templates   repository.EmailTemplateRepository
	dispatcher  Dispatcher
	companyName string
}

// NewService builds the email service.
func NewService(templates repository.EmailTemplateRepository, dispatcher Dispatcher, companyName string) *Service {
	return &Service{templates: templates, dispatcher: dispatcher, companyName: companyName}
}

// SelectTemplate picks the template for a recorded outcome: the first
// template tagged with that result, else the default template.
func (s *Service) SelectTemplate(ctx context.Context, result domain.CallResult) (*domain.EmailTemplate, error) {
	tmpl, err := s.templates.GetByCallResult(ctx, result)
	if err == nil {
		return tmpl, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.templates.GetDefault(ctx)
}

// ComposeInput carries everything needed to render an email for a contact.
type ComposeInput struct {
	Contact     *domain.Contact
	Result      domain.CallResult
	MeetingDate *time.Time
	MeetingTime string
	TemplateID  *uuid.UUID
}

// Compose renders the selected template against the contact.
func (s *Service) Compose(ctx context.Context, input ComposeInput) (*queue.EmailMessage, error) {
	if input.Contact == nil {
		return nil, apperrors.Validationf("contact required")
	}

	var (
		tmpl *domain.EmailTemplate
		err  error
	)
	if input.TemplateID != nil {
		tmpl, err = s.templates.Get(ctx, *input.TemplateID)
	} else {
		tmpl, err = s.SelectTemplate(ctx, input.Result)
	}
	if err != nil {
		return nil, fmt.Errorf("email service: select template: %w", err)
	}

	data := render.Data{
		ContactName:    input.Contact.Name,
		ContactCompany: input.Contact.Company,
		ContactEmail:   input.Contact.Email,
		ContactPhone:   input.Contact.Phone,
		ContactWebsite: input.Contact.Website,
		CompanyName:    s.companyName,
		MeetingDate:    input.MeetingDate,
		MeetingTime:    input.MeetingTime,
	}

	msg := &queue.EmailMessage{
		ID:         uuid.New(),
		ContactID:  input.Contact.ID,
		TemplateID: tmpl.ID,
		To:         input.Contact.Email,
		Subject:    render.Render(tmpl.Subject, data),
		Body:       render.Render(tmpl.Body, data),
		CallResult: string(input.Result),
		EnqueuedAt: time.Now().UTC(),
	}
	return msg, nil
}

// ComposeAndDispatch renders and queues an email in one step. The contact
// must have an email address.
func (s *Service) ComposeAndDispatch(ctx context.Context, input ComposeInput) (*queue.EmailMessage, error) {
	if input.Contact != nil && input.Contact.Email == "" {
		return nil, apperrors.Validationf("contact has no email address")
	}

	msg, err := s.Compose(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.dispatcher.Dispatch(ctx, *msg); err != nil {
		return nil, fmt.Errorf("email service: dispatch: %w", err)
	}
	return msg, nil
}
