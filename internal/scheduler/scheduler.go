// Package scheduler publishes reminders for callbacks that are coming due.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/acme/telesales-call-manager/internal/app"
	"github.com/acme/telesales-call-manager/internal/queue"
)

// Scheduler periodically scans for due callbacks and publishes reminders.
type Scheduler struct {
	container *app.Container
}

// New constructs a scheduler.
func New(container *app.Container) *Scheduler {
	return &Scheduler{container: container}
}

// Run executes the scheduling loop until cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	cfg := s.container.Config
	interval := cfg.Reminder.TickInterval
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := s.tick(ctx); err != nil && ctx.Err() == nil {
			s.container.Logger.Error("reminder tick failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) error {
	cfg := s.container.Config.Reminder
	logger := s.container.Logger

	tracer := otel.Tracer("telesales.reminder")
	sctx, span := tracer.Start(ctx, "reminder.tick")
	defer span.End()

	now := time.Now()
	if withinQuietHours(now, cfg.QuietStart, cfg.QuietEnd) {
		span.SetAttributes(attribute.Bool("quiet_hours", true))
		return nil
	}

	// Only one scheduler instance publishes per tick window.
	locked, err := s.acquireTickLock(sctx)
	if err != nil {
		return err
	}
	if !locked {
		return nil
	}

	lookAhead := cfg.LookAhead
	if lookAhead <= 0 {
		lookAhead = 15 * time.Minute
	}

	today := now.Format("2006-01-02")
	contacts, err := s.container.Repositories().Contacts.ListDueCallbacks(sctx, today, cfg.MaxBatchSize)
	if err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttributes(attribute.Int("callbacks.total", len(contacts)))

	published := 0
	publisher := s.container.Dispatchers().Reminders
	for _, contact := range contacts {
		due, err := callbackDue(contact.CallbackDate, contact.CallbackTime, now, lookAhead)
		if err != nil || !due {
			continue
		}

		msg := queue.ReminderMessage{
			ContactID:      contact.ID,
			ContactName:    contact.Name,
			Company:        contact.Company,
			Phone:          contact.Phone,
			CallbackDate:   contact.CallbackDate,
			CallbackTime:   contact.CallbackTime,
			CallbackReason: contact.CallbackReason,
			PublishedAt:    now.UTC(),
		}
		if err := publisher.Publish(sctx, msg); err != nil {
			logger.Error("reminder publish failed",
				zap.String("contact_id", contact.ID.String()), zap.Error(err))
			continue
		}
		published++
	}

	span.SetAttributes(attribute.Int("callbacks.published", published))
	logger.Info("reminder tick complete",
		zap.Int("due", len(contacts)), zap.Int("published", published))
	return nil
}

func (s *Scheduler) acquireTickLock(ctx context.Context) (bool, error) {
	ttl := s.container.Config.Reminder.LockTTL
	if ttl <= 0 {
		ttl = 50 * time.Second
	}
	ok, err := s.container.Redis.Inner().SetNX(ctx, "telesales:reminder:lock", 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reminder: acquire lock: %w", err)
	}
	return ok, nil
}

// callbackDue reports whether a callback timestamped by its date and HH:MM
// time falls inside the look-ahead window ending at now+lookAhead. Past-due
// callbacks still count so missed ones surface on the next tick.
func callbackDue(date, hhmm string, now time.Time, lookAhead time.Duration) (bool, error) {
	if date == "" {
		return false, nil
	}
	layout := "2006-01-02"
	value := date
	if hhmm != "" {
		layout = "2006-01-02 15:04"
		value = date + " " + hhmm
	}
	at, err := time.ParseInLocation(layout, value, now.Location())
	if err != nil {
		return false, fmt.Errorf("reminder: parse callback time: %w", err)
	}
	return !at.After(now.Add(lookAhead)), nil
}

// withinQuietHours reports whether now falls inside the HH:MM quiet window.
// A window crossing midnight is honored; empty bounds disable it.
func withinQuietHours(now time.Time, start, end string) bool {
	if start == "" || end == "" {
		return false
	}
	s, err := time.Parse("15:04", start)
	if err != nil {
		return false
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return false
	}

	minutes := now.Hour()*60 + now.Minute()
	startMin := s.Hour()*60 + s.Minute()
	endMin := e.Hour()*60 + e.Minute()

	if startMin <= endMin {
		return minutes >= startMin && minutes < endMin
	}
	return minutes >= startMin || minutes < endMin
}
