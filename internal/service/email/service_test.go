package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/acme/telesales-call-manager/internal/domain"
	"github.com/acme/telesales-call-manager/internal/queue"
	"github.com/acme/telesales-call-manager/internal/repository"
	apperrors "github.com/acme/telesales-call-manager/pkg/errors"
)

type fakeTemplateRepo struct {
	byResult map[domain.CallResult]*domain.EmailTemplate
	fallback *domain.EmailTemplate
}

func (f *fakeTemplateRepo) Create(context.Context, *domain.EmailTemplate) error { return nil }
func (f *fakeTemplateRepo) Update(context.Context, *domain.EmailTemplate) error { return nil }
func (f *fakeTemplateRepo) Delete(context.Context, uuid.UUID) error             { return nil }

func (f *fakeTemplateRepo) Get(_ context.Context, id uuid.UUID) (*domain.EmailTemplate, error) {
	for _, tmpl := range f.byResult {
		if tmpl.ID == id {
			return tmpl, nil
		}
	}
	if f.fallback != nil && f.fallback.ID == id {
		return f.fallback, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTemplateRepo) GetByCallResult(_ context.Context, result domain.CallResult) (*domain.EmailTemplate, error) {
	if tmpl, ok := f.byResult[result]; ok {
		return tmpl, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTemplateRepo) GetDefault(context.Context) (*domain.EmailTemplate, error) {
	if f.fallback == nil {
		return nil, repository.ErrNotFound
	}
	return f.fallback, nil
}

func (f *fakeTemplateRepo) List(context.Context, int) ([]*domain.EmailTemplate, error) {
	return nil, nil
}

type fakeDispatcher struct {
	sent []queue.EmailMessage
	fail error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, msg queue.EmailMessage) error {
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestSelectTemplatePrefersTaggedOverDefault(t *testing.T) {
	tagged := &domain.EmailTemplate{ID: uuid.New(), Name: "info", CallResult: domain.ResultSendInfo}
	fallback := &domain.EmailTemplate{ID: uuid.New(), Name: "default", IsDefault: true}

	svc := NewService(&fakeTemplateRepo{
		byResult: map[domain.CallResult]*domain.EmailTemplate{domain.ResultSendInfo: tagged},
		fallback: fallback,
	}, &fakeDispatcher{}, "Näidisfirma")

	got, err := svc.SelectTemplate(context.Background(), domain.ResultSendInfo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != tagged.ID {
		t.Fatalf("expected tagged template, got %q", got.Name)
	}

	got, err = svc.SelectTemplate(context.Background(), domain.ResultMeeting)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != fallback.ID {
		t.Fatalf("expected default template, got %q", got.Name)
	}
}

func TestComposeRendersPlaceholders(t *testing.T) {
	tmpl := &domain.EmailTemplate{
		ID:      uuid.New(),
		Subject: "Kohtumine [Kuupäev]",
		Body:    "Tere, [Kontaktisiku nimi]! Kohtume [Nädalapäev] kell [Kellaaeg]. Tervitades [Ettevõtte nimi]",
	}
	svc := NewService(&fakeTemplateRepo{fallback: tmpl}, &fakeDispatcher{}, "Näidisfirma")

	// 2026-09-07 is a Monday.
	meeting := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	contact := &domain.Contact{ID: uuid.New(), Name: "Madis Org", Email: "madis@example.ee"}

	msg, err := svc.Compose(context.Background(), ComposeInput{
		Contact:     contact,
		Result:      domain.ResultMeeting,
		MeetingDate: &meeting,
		MeetingTime: "10:30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if msg.Subject != "Kohtumine 7. september" {
		t.Fatalf("subject: got %q", msg.Subject)
	}
	want := "Tere, Madis! Kohtume Esmaspäeval kell 10:30. Tervitades Näidisfirma"
	if msg.Body != want {
		t.Fatalf("body: got %q, want %q", msg.Body, want)
	}
	if msg.To != "madis@example.ee" {
		t.Fatalf("recipient: got %q", msg.To)
	}
}

func TestComposeAndDispatchRequiresEmailAddress(t *testing.T) {
	tmpl := &domain.EmailTemplate{ID: uuid.New(), Subject: "x", Body: "y"}
	dispatcher := &fakeDispatcher{}
	svc := NewService(&fakeTemplateRepo{fallback: tmpl}, dispatcher, "Näidisfirma")

	contact := &domain.Contact{ID: uuid.New(), Name: "Mari Tamm"}
	_, err := svc.ComposeAndDispatch(context.Background(), ComposeInput{
		Contact: contact,
		Result:  domain.ResultSendInfo,
	})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(dispatcher.sent) != 0 {
		t.Fatal("nothing should have been dispatched")
	}
}

func TestComposeAndDispatchQueuesMessage(t *testing.T) {
	tmpl := &domain.EmailTemplate{ID: uuid.New(), Subject: "Info", Body: "Tere!"}
	dispatcher := &fakeDispatcher{}
	svc := NewService(&fakeTemplateRepo{fallback: tmpl}, dispatcher, "Näidisfirma")

	contact := &domain.Contact{ID: uuid.New(), Name: "Mari Tamm", Email: "mari@example.ee"}
	msg, err := svc.ComposeAndDispatch(context.Background(), ComposeInput{
		Contact: contact,
		Result:  domain.ResultSendInfo,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dispatcher.sent) != 1 || dispatcher.sent[0].ID != msg.ID {
		t.Fatalf("expected one dispatched message, got %d", len(dispatcher.sent))
	}
}
