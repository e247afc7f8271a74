package domain

import (
	"time"

	"github.com/google/uuid"
)

// CallResult is the categorical label assigned to a completed call. The five
// Estonian labels below drive engine behavior; anything else is carried as
// free text and treated as ResultOther.
type CallResult string

const (
	ResultMeeting       CallResult = "Kohtumine"
	ResultSendInfo      CallResult = "Saada info"
	ResultNoAnswer      CallResult = "Ei vastanud"
	ResultNotInterested CallResult = "Pole huvitatud"
	ResultCallLater     CallResult = "Helista hiljem"
)

// Known reports whether the result is one of the five fixed labels.
func (r CallResult) Known() bool {
	switch r {
	case ResultMeeting, ResultSendInfo, ResultNoAnswer, ResultNotInterested, ResultCallLater:
		return true
	}
	return false
}

// KnownResults lists the fixed outcome vocabulary in display order.
func KnownResults() []CallResult {
	return []CallResult{ResultMeeting, ResultSendInfo, ResultNoAnswer, ResultNotInterested, ResultCallLater}
}

// Priority classifies how soon a contact should be worked.
type Priority string

const (
	PriorityUnreviewed Priority = "Unreviewed"
	PriorityHigh       Priority = "High"
	PriorityMedium     Priority = "Medium"
	PriorityLow        Priority = "Low"
	PriorityNormal     Priority = "Normal"
)

// Rank orders priorities for display and calling: Unreviewed first, Low last.
func (p Priority) Rank() int {
	switch p {
	case PriorityUnreviewed:
		return -1
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityNormal:
		return 2
	case PriorityLow:
		return 3
	}
	return 2
}

// Contact is a person/company lead owned by a contact list.
type Contact struct {
	ID             uuid.UUID
	ListID         uuid.UUID
	Company        string
	Name           string
	Phone          string
	Email          string
	Website        string
	RegistryCode   string
	Notes          string
	Status         CallResult
	Priority       Priority
	LastCallDate   *time.Time
	CallbackDate   string
	CallbackTime   string
	CallbackReason string
	// Requeued is true only while the contact sits in the session's retry
	// side-buffer or its appended tail; never persisted.
	Requeued  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactList is a named container of contacts.
type ContactList struct {
	ID           uuid.UUID
	Name         string
	ContactCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CallHistory records one completed call attempt. Immutable once created.
type CallHistory struct {
	ID             uuid.UUID
	ContactID      uuid.UUID
	Date           time.Time
	Notes          string
	Result         CallResult
	MeetingDate    string
	MeetingTime    string
	CallbackDate   string
	CallbackTime   string
	CallbackReason string
}

// Meeting is a persisted calendar record created when a call books one.
type Meeting struct {
	ID          uuid.UUID
	ContactID   uuid.UUID
	Date        string
	Time        string
	Duration    time.Duration
	Description string
	CreatedAt   time.Time
}

// ListStats aggregates outcome counters for a contact list's dashboard.
type ListStats struct {
	TotalCalls    int64
	Meetings      int64
	InfoRequests  int64
	NoAnswers     int64
	NotInterested int64
	Callbacks     int64
	Other         int64
}
