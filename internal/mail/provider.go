package mail

import (
	"context"
	"time"

	"github.com/acme/telesales-call-manager/internal/queue"
)

// Result captures the outcome of a delivery attempt.
type Result struct {
	Accepted   bool
	Duration   time.Duration
	ProviderID string
	Error      string
}

// Provider abstracts the email transport integration.
type Provider interface {
	Send(ctx context.Context, msg queue.EmailMessage) (Result, error)
}
