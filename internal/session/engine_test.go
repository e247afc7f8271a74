package session

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/acme/telesales-call-manager/internal/domain"
	apperrors "github.com/acme/telesales-call-manager/pkg/errors"
)

func testContacts(n int) []domain.Contact {
	contacts := make([]domain.Contact, n)
	for i := range contacts {
		contacts[i] = domain.Contact{ID: uuid.New(), Name: string(rune('A' + i))}
	}
	return contacts
}

func TestOutcomeValidation(t *testing.T) {
	cases := []struct {
		name    string
		outcome Outcome
		wantErr bool
	}{
		{"empty result", Outcome{}, true},
		{"plain result", Outcome{Result: domain.ResultNotInterested}, false},
		{"call later without date", Outcome{Result: domain.ResultCallLater, CallbackTime: "14:00"}, true},
		{"call later without time", Outcome{Result: domain.ResultCallLater, CallbackDate: "2026-09-01"}, true},
		{"call later complete", Outcome{Result: domain.ResultCallLater, CallbackDate: "2026-09-01", CallbackTime: "14:00"}, false},
		{"meeting without time", Outcome{Result: domain.ResultMeeting, MeetingDate: "2026-09-01"}, true},
		{"meeting complete", Outcome{Result: domain.ResultMeeting, MeetingDate: "2026-09-01", MeetingTime: "10:00"}, false},
	}

	for _, tc := range cases {
		err := tc.outcome.Validate()
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if tc.wantErr && !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestRecordOutcomeSetsCallback(t *testing.T) {
	contact := &domain.Contact{ID: uuid.New(), Name: "Mari Maasikas"}

	entry, err := RecordOutcome(contact, Outcome{
		Result:         domain.ResultCallLater,
		CallbackDate:   "2026-09-02",
		CallbackTime:   "11:30",
		CallbackReason: "asks for a quote first",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if contact.Status != domain.ResultCallLater {
		t.Fatalf("expected status %q, got %q", domain.ResultCallLater, contact.Status)
	}
	if contact.CallbackDate != "2026-09-02" || contact.CallbackTime != "11:30" {
		t.Fatalf("callback fields not set: %q %q", contact.CallbackDate, contact.CallbackTime)
	}
	if contact.LastCallDate == nil {
		t.Fatal("expected last call date to be set")
	}
	if entry.ContactID != contact.ID || entry.Result != domain.ResultCallLater {
		t.Fatalf("unexpected history entry: %+v", entry)
	}
}

func TestRecordOutcomeClearsStaleCallback(t *testing.T) {
	contact := &domain.Contact{
		ID:             uuid.New(),
		CallbackDate:   "2026-09-02",
		CallbackTime:   "11:30",
		CallbackReason: "old reason",
	}

	if _, err := RecordOutcome(contact, Outcome{Result: domain.ResultNotInterested}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if contact.CallbackDate != "" || contact.CallbackTime != "" || contact.CallbackReason != "" {
		t.Fatalf("expected callback fields cleared, got %q %q %q",
			contact.CallbackDate, contact.CallbackTime, contact.CallbackReason)
	}
}

func TestRecordOutcomeValidationLeavesContactUntouched(t *testing.T) {
	contact := &domain.Contact{ID: uuid.New(), Status: domain.ResultSendInfo}

	if _, err := RecordOutcome(contact, Outcome{Result: domain.ResultCallLater}); err == nil {
		t.Fatal("expected validation error")
	}

	if contact.Status != domain.ResultSendInfo {
		t.Fatalf("contact mutated on failed validation: %q", contact.Status)
	}
	if contact.LastCallDate != nil {
		t.Fatal("last call date set on failed validation")
	}
}

func TestAdvanceRequeuesUnansweredOnce(t *testing.T) {
	s := New(uuid.New(), testContacts(3))

	// First contact does not answer; it should come back exactly once.
	first := s.Current().ID

	res := Advance(s, domain.ResultNoAnswer)
	if res.SessionComplete {
		t.Fatal("session completed too early")
	}
	if res.RequeuedCount != 1 {
		t.Fatalf("expected 1 buffered retry, got %d", res.RequeuedCount)
	}

	Advance(s, domain.ResultNotInterested)
	res = Advance(s, domain.ResultMeeting)
	if res.SessionComplete {
		t.Fatal("expected retry pass, session completed")
	}

	retry := s.Current()
	if retry == nil || retry.ID != first {
		t.Fatalf("expected retry of first contact, got %+v", retry)
	}
	if !retry.Requeued {
		t.Fatal("retry copy should carry the requeued flag")
	}

	// Second no-answer on the retry must not requeue again.
	res = Advance(s, domain.ResultNoAnswer)
	if !res.SessionComplete {
		t.Fatalf("expected session complete, got %+v", res)
	}
	if res.RequeuedCount != 0 {
		t.Fatalf("requeued copy was requeued again: %d", res.RequeuedCount)
	}
}

func TestAdvanceCompletesWithoutRetries(t *testing.T) {
	s := New(uuid.New(), testContacts(2))

	Advance(s, domain.ResultSendInfo)
	res := Advance(s, domain.ResultNotInterested)
	if !res.SessionComplete {
		t.Fatal("expected session complete")
	}
	if s.Current() != nil {
		t.Fatal("expected nil current contact after completion")
	}
	if s.Remaining() != 0 {
		t.Fatalf("expected 0 remaining, got %d", s.Remaining())
	}
}

func TestAdvanceSingleContactNeverRequeues(t *testing.T) {
	s := NewSingle(testContacts(1)[0])

	res := Advance(s, domain.ResultNoAnswer)
	if !res.SessionComplete {
		t.Fatal("single-contact session must complete after one call")
	}
	if res.RequeuedCount != 0 {
		t.Fatalf("single-contact session buffered a retry: %d", res.RequeuedCount)
	}
}

func TestRemainingIncludesBufferedRetries(t *testing.T) {
	s := New(uuid.New(), testContacts(3))

	Advance(s, domain.ResultNoAnswer)
	if got := s.Remaining(); got != 3 {
		t.Fatalf("expected 2 ahead + 1 buffered = 3, got %d", got)
	}
}
