package mock

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/acme/telesales-call-manager/internal/config"
	"github.com/acme/telesales-call-manager/internal/mail"
	"github.com/acme/telesales-call-manager/internal/queue"
)

// Provider simulates an email transport.
type Provider struct {
	acceptRate float64
	timeout    time.Duration
	rng        *rand.Rand
}

// NewProvider constructs a mock provider.
func NewProvider(cfg config.MailConfig) *Provider {
	return &Provider{
		acceptRate: 0.95,
		timeout:    cfg.RequestTimeout,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Send simulates a delivery attempt.
func (p *Provider) Send(ctx context.Context, msg queue.EmailMessage) (mail.Result, error) {
	duration := time.Duration(50+p.rng.Intn(300)) * time.Millisecond

	select {
	case <-ctx.Done():
		return mail.Result{Duration: duration, Error: ctx.Err().Error()}, ctx.Err()
	case <-time.After(duration):
	}

	if p.rng.Float64() <= p.acceptRate {
		return mail.Result{
			Accepted:   true,
			Duration:   duration,
			ProviderID: fmt.Sprintf("mock-%d", p.rng.Int63()),
		}, nil
	}

	return mail.Result{Duration: duration, Error: "simulated rejection"}, nil
}
