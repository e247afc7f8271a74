// Package email contains the worker that drains the email topic and hands
// messages to the mail provider. Delivery failures are logged and the
// message is committed anyway: an email is a side effect of an already
// recorded outcome and must never block the queue.
package email

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/acme/telesales-call-manager/internal/app"
	"github.com/acme/telesales-call-manager/internal/mail"
	"github.com/acme/telesales-call-manager/internal/queue"
)

// Worker consumes rendered emails and sends them through the provider.
type Worker struct {
	container *app.Container
	provider  mail.Provider
}

// New creates a new email worker instance.
func New(container *app.Container) *Worker {
	return &Worker{
		container: container,
		provider:  container.Providers().Mail,
	}
}

// Run starts the worker loop.
func (w *Worker) Run(ctx context.Context) error {
	cfg := w.container.Config
	reader := w.container.Kafka.NewReader(cfg.Kafka.EmailTopic, cfg.Kafka.EmailConsumerGroupID)
	defer reader.Close()

	for {
		m, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.container.Logger.Error("email worker: fetch message", zap.Error(err))
			continue
		}

		if err := w.processMessage(ctx, reader, m); err != nil {
			w.container.Logger.Error("email worker: process", zap.Error(err))
		}
	}
}

func (w *Worker) processMessage(ctx context.Context, reader *kafka.Reader, m kafka.Message) error {
	var msg queue.EmailMessage
	if err := json.Unmarshal(m.Value, &msg); err != nil {
		_ = reader.CommitMessages(ctx, m)
		return fmt.Errorf("unmarshal email: %w", err)
	}

	tracer := otel.Tracer("telesales.emailworker")
	sctx, span := tracer.Start(ctx, "email.send", trace.WithAttributes(
		attribute.String("email.id", msg.ID.String()),
		attribute.String("contact.id", msg.ContactID.String()),
	))
	defer span.End()

	sendCtx := sctx
	if timeout := w.container.Config.Mail.RequestTimeout; timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(sctx, timeout)
		defer cancel()
	}

	result, err := w.provider.Send(sendCtx, msg)
	if err != nil {
		span.RecordError(err)
		w.container.Logger.Warn("email worker: send failed",
			zap.String("email_id", msg.ID.String()),
			zap.String("to", msg.To),
			zap.Error(err))
	} else if !result.Accepted {
		w.container.Logger.Warn("email worker: provider rejected",
			zap.String("email_id", msg.ID.String()),
			zap.String("to", msg.To),
			zap.String("reason", result.Error))
	} else {
		w.container.Logger.Info("email worker: sent",
			zap.String("email_id", msg.ID.String()),
			zap.String("provider_id", result.ProviderID),
			zap.Duration("duration", result.Duration))
	}

	if err := reader.CommitMessages(ctx, m); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
