package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/acme/telesales-call-manager/internal/config"
	"github.com/acme/telesales-call-manager/internal/infra/db"
	"github.com/acme/telesales-call-manager/internal/infra/redis"
	"github.com/acme/telesales-call-manager/internal/mail"
	mailmock "github.com/acme/telesales-call-manager/internal/mail/mock"
	"github.com/acme/telesales-call-manager/internal/queue"
	"github.com/acme/telesales-call-manager/internal/repository"
	pgrepo "github.com/acme/telesales-call-manager/internal/repository/postgres"
	scyllarepo "github.com/acme/telesales-call-manager/internal/repository/scylla"
	callsessionsvc "github.com/acme/telesales-call-manager/internal/service/callsession"
	contactsvc "github.com/acme/telesales-call-manager/internal/service/contact"
	emailsvc "github.com/acme/telesales-call-manager/internal/service/email"
	"github.com/acme/telesales-call-manager/internal/session"
	"github.com/acme/telesales-call-manager/pkg/logger"
)

// Container wires together shared infrastructure dependencies.
type Container struct {
	Config *config.Config
	Logger *logger.Logger

	Postgres *db.Postgres
	Scylla   *db.Scylla
	Redis    *redis.Client
	Kafka    *queue.Kafka

	// lazily initialised components
	components struct {
		once         sync.Once
		repositories *repositories
		services     *services
		dispatchers  *dispatchers
		providers    *providers
		sessions     *session.Store
	}
}

type repositories struct {
	Lists    repository.ContactListRepository
	Contacts repository.ContactRepository
	History  repository.CallHistoryStore
	Scripts  repository.ScriptRepository
	Emails   repository.EmailTemplateRepository
	Meetings repository.MeetingRepository
	Stats    repository.ListStatisticsRepository
}

type services struct {
	Contact *contactsvc.Service
	Email   *emailsvc.Service
	Session *callsessionsvc.Service
}

type dispatchers struct {
	Emails    *queue.EmailDispatcher
	Reminders *queue.ReminderPublisher
}

type providers struct {
	Mail mail.Provider
}

// Build constructs a container for the given configuration path.
func Build(ctx context.Context, configPath string) (*Container, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	lg, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, err
	}

	pg, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("bootstrap postgres: %w", err)
	}

	scylla, err := db.NewScylla(cfg.Scylla)
	if err != nil {
		return nil, fmt.Errorf("bootstrap scylla: %w", err)
	}

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("bootstrap redis: %w", err)
	}

	kafka, err := queue.NewKafka(cfg.Kafka)
	if err != nil {
		return nil, fmt.Errorf("bootstrap kafka: %w", err)
	}

	container := &Container{
		Config:   cfg,
		Logger:   lg,
		Postgres: pg,
		Scylla:   scylla,
		Redis:    redisClient,
		Kafka:    kafka,
	}

	return container, nil
}

func (c *Container) initComponents() {
	c.components.once.Do(func() {
		repos := &repositories{
			Lists:    pgrepo.NewContactListRepository(c.Postgres.DB()),
			Contacts: pgrepo.NewContactRepository(c.Postgres.DB()),
			History:  scyllarepo.NewHistoryStore(c.Scylla.Session()),
			Scripts:  pgrepo.NewScriptRepository(c.Postgres.DB()),
			Emails:   pgrepo.NewEmailTemplateRepository(c.Postgres.DB()),
			Meetings: pgrepo.NewMeetingRepository(c.Postgres.DB()),
			Stats:    pgrepo.NewListStatisticsRepository(c.Postgres.DB()),
		}

		disp := &dispatchers{
			Emails:    queue.NewEmailDispatcher(c.Kafka, c.Config.Kafka.EmailTopic),
			Reminders: queue.NewReminderPublisher(c.Kafka, c.Config.Kafka.ReminderTopic),
		}

		sessions := session.NewStore(
			c.Redis.Inner(),
			c.Config.Session.TTL,
			c.Config.Session.LockTTL,
			c.Config.Session.KeyPrefix,
		)

		svcs := &services{
			Contact: contactsvc.NewService(repos.Lists, repos.Contacts, repos.History, repos.Stats),
			Email:   emailsvc.NewService(repos.Emails, disp.Emails, c.Config.Calling.CompanyName),
		}

		svcs.Session = callsessionsvc.NewService(
			sessions,
			repos.Contacts,
			repos.Lists,
			repos.History,
			repos.Meetings,
			repos.Stats,
			repos.Scripts,
			svcs.Email,
			c.Config.Calling.CompanyName,
			c.Config.Calling.DefaultMeetingDuration,
		)

		c.components.repositories = repos
		c.components.dispatchers = disp
		c.components.services = svcs
		c.components.providers = &providers{Mail: mailmock.NewProvider(c.Config.Mail)}
		c.components.sessions = sessions
	})
}

// Repositories exposes initialized repositories.
func (c *Container) Repositories() *repositories {
	c.initComponents()
	return c.components.repositories
}

// Services exposes initialized services.
func (c *Container) Services() *services {
	c.initComponents()
	return c.components.services
}

// Dispatchers exposes Kafka dispatchers.
func (c *Container) Dispatchers() *dispatchers {
	c.initComponents()
	return c.components.dispatchers
}

// Providers exposes external providers.
func (c *Container) Providers() *providers {
	c.initComponents()
	return c.components.providers
}

// Sessions exposes the session store.
func (c *Container) Sessions() *session.Store {
	c.initComponents()
	return c.components.sessions
}

// Close releases all held resources.
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	if d := c.components.dispatchers; d != nil {
		if d.Emails != nil {
			if err := d.Emails.Close(); err != nil {
				errs = append(errs, fmt.Errorf("email dispatcher close: %w", err))
			}
		}
		if d.Reminders != nil {
			if err := d.Reminders.Close(); err != nil {
				errs = append(errs, fmt.Errorf("reminder publisher close: %w", err))
			}
		}
	}
	if c.Kafka != nil {
		if err := c.Kafka.Close(); err != nil {
			errs = append(errs, fmt.Errorf("kafka close: %w", err))
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if c.Scylla != nil {
		if err := c.Scylla.Close(); err != nil {
			errs = append(errs, fmt.Errorf("scylla close: %w", err))
		}
	}
	if c.Postgres != nil {
		if err := c.Postgres.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("postgres close: %w", err))
		}
	}
	if c.Logger != nil {
		c.Logger.Sync()
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// EnsureTopics ensures required Kafka topics exist.
func (c *Container) EnsureTopics(ctx context.Context) error {
	topics := []string{c.Config.Kafka.EmailTopic, c.Config.Kafka.ReminderTopic}
	return c.Kafka.EnsureTopics(ctx, topics, 12, 1)
}
