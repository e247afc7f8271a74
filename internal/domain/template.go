package domain

import (
	"time"

	"github.com/google/uuid"
)

// Script is an HTML-bearing call script shown to the operator.
type Script struct {
	ID        uuid.UUID
	Name      string
	Body      string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmailTemplate is an HTML-bearing email body. CallResult optionally tags
// the template to the outcome it should be auto-selected for.
type EmailTemplate struct {
	ID         uuid.UUID
	Name       string
	Subject    string
	Body       string
	CallResult CallResult
	IsDefault  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
