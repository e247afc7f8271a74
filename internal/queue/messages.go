package queue

import (
	"time"

	"github.com/google/uuid"
)

// EmailMessage carries a fully rendered email awaiting delivery.
type EmailMessage struct {
	ID         uuid.UUID `json:"id"`
	ContactID  uuid.UUID `json:"contact_id"`
	TemplateID uuid.UUID `json:"template_id"`
	To         string    `json:"to"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	CallResult string    `json:"call_result,omitempty"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// ReminderMessage announces a callback that is about to come due.
type ReminderMessage struct {
	ContactID      uuid.UUID `json:"contact_id"`
	ContactName    string    `json:"contact_name"`
	Company        string    `json:"company"`
	Phone          string    `json:"phone"`
	CallbackDate   string    `json:"callback_date"`
	CallbackTime   string    `json:"callback_time"`
	CallbackReason string    `json:"callback_reason,omitempty"`
	PublishedAt    time.Time `json:"published_at"`
}
