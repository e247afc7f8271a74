package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/acme/telesales-call-manager/internal/app"
	callsessionsvc "github.com/acme/telesales-call-manager/internal/service/callsession"
	contactsvc "github.com/acme/telesales-call-manager/internal/service/contact"
	emailsvc "github.com/acme/telesales-call-manager/internal/service/email"
)

// HandlerSet bundles all HTTP handlers.
type HandlerSet struct {
	container *app.Container
	contacts  *contactsvc.Service
	sessions  *callsessionsvc.Service
	emails    *emailsvc.Service
}

// NewHandlerSet creates a new handler bundle.
func NewHandlerSet(container *app.Container) *HandlerSet {
	services := container.Services()
	return &HandlerSet{
		container: container,
		contacts:  services.Contact,
		sessions:  services.Session,
		emails:    services.Email,
	}
}

// Register wires all routes onto the fiber app.
func (h *HandlerSet) Register(app *fiber.App) {
	app.Get("/healthz", h.health)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	lists := v1.Group("/lists")
	lists.Post("/", h.createList)
	lists.Get("/", h.listLists)
	lists.Get("/:id", h.getList)
	lists.Put("/:id", h.renameList)
	lists.Delete("/:id", h.deleteList)
	lists.Post("/:id/contacts", h.addContacts)
	lists.Get("/:id/contacts", h.listContacts)
	lists.Get("/:id/stats", h.listStats)

	contacts := v1.Group("/contacts")
	contacts.Get("/:id", h.getContact)
	contacts.Put("/:id", h.updateContact)
	contacts.Delete("/:id", h.deleteContact)
	contacts.Get("/:id/history", h.contactHistory)

	scripts := v1.Group("/scripts")
	scripts.Post("/", h.createScript)
	scripts.Get("/", h.listScripts)
	scripts.Get("/:id", h.getScript)
	scripts.Put("/:id", h.updateScript)
	scripts.Delete("/:id", h.deleteScript)

	templates := v1.Group("/templates")
	templates.Post("/", h.createTemplate)
	templates.Get("/", h.listTemplates)
	templates.Get("/:id", h.getTemplate)
	templates.Put("/:id", h.updateTemplate)
	templates.Delete("/:id", h.deleteTemplate)

	sessions := v1.Group("/sessions")
	sessions.Post("/", h.startSession)
	sessions.Get("/:id", h.getSession)
	sessions.Get("/:id/current", h.sessionCurrent)
	sessions.Post("/:id/outcome", h.sessionOutcome)
	sessions.Delete("/:id", h.endSession)

	dashboard := v1.Group("/dashboard")
	dashboard.Get("/callbacks", h.dueCallbacks)
	dashboard.Get("/meetings", h.upcomingMeetings)
}

// ErrorHandler provides centralized error responses.
func (h *HandlerSet) ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	if fiberErr, ok := err.(*fiber.Error); ok {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code == fiber.StatusInternalServerError {
		h.container.Logger.Error("request failed", zap.Error(err))
	}

	return ctx.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

func (h *HandlerSet) health(ctx *fiber.Ctx) error {
	healthCtx, cancel := context.WithTimeout(ctx.Context(), 2*time.Second)
	defer cancel()

	errs := make(map[string]string)

	if err := h.container.Postgres.DB().PingContext(healthCtx); err != nil {
		errs["postgres"] = err.Error()
	}

	if err := h.container.Redis.Inner().Ping(healthCtx).Err(); err != nil {
		errs["redis"] = err.Error()
	}

	if err := h.container.Scylla.Session().Query("SELECT now() FROM system.local").WithContext(healthCtx).Exec(); err != nil {
		errs["scylla"] = err.Error()
	}

	status := fiber.StatusOK
	if len(errs) > 0 {
		status = fiber.StatusServiceUnavailable
	}

	return ctx.Status(status).JSON(fiber.Map{"status": "ok", "errors": errs})
}
