package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/acme/telesales-call-manager/internal/domain"
)

type scriptRequest struct {
	Name      string `json:"name"`
	Body      string `json:"body"`
	IsDefault bool   `json:"is_default"`
}

type scriptResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Body      string    `json:"body"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type templateRequest struct {
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	CallResult string `json:"call_result"`
	IsDefault  bool   `json:"is_default"`
}

type templateResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	CallResult string    `json:"call_result,omitempty"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (h *HandlerSet) createScript(ctx *fiber.Ctx) error {
	var req scriptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "script name is required")
	}

	now := time.Now().UTC()
	script := &domain.Script{
		ID:        uuid.New(),
		Name:      req.Name,
		Body:      req.Body,
		IsDefault: req.IsDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.container.Repositories().Scripts.Create(ctx.Context(), script); err != nil {
		return translateError(err)
	}
	return ctx.Status(http.StatusCreated).JSON(toScriptResponse(script))
}

func (h *HandlerSet) listScripts(ctx *fiber.Ctx) error {
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))
	scripts, err := h.container.Repositories().Scripts.List(ctx.Context(), limit)
	if err != nil {
		return translateError(err)
	}

	resp := make([]scriptResponse, 0, len(scripts))
	for _, s := range scripts {
		resp = append(resp, toScriptResponse(s))
	}
	return ctx.Status(http.StatusOK).JSON(fiber.Map{"scripts": resp})
}

func (h *HandlerSet) getScript(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid script id")
	}
	script, err := h.container.Repositories().Scripts.Get(ctx.Context(), id)
	if err != nil {
		return translateError(err)
	}
	return ctx.Status(http.StatusOK).JSON(toScriptResponse(script))
}

func (h *HandlerSet) updateScript(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid script id")
	}

	var req scriptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	script, err := h.container.Repositories().Scripts.Get(ctx.Context(), id)
	if err != nil {
		return translateError(err)
	}

	if req.Name != "" {
		script.Name = req.Name
	}
	script.Body = req.Body
	script.IsDefault = req.IsDefault

	if err := h.container.Repositories().Scripts.Update(ctx.Context(), script); err != nil {
		return translateError(err)
	}
	return ctx.Status(http.StatusOK).JSON(toScriptResponse(script))
}

func (h *HandlerSet) deleteScript(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid script id")
	}
	if err := h.container.Repositories().Scripts.Delete(ctx.Context(), id); err != nil {
		return translateError(err)
	}
	return ctx.SendStatus(http.StatusNoContent)
}

func (h *HandlerSet) createTemplate(ctx *fiber.Ctx) error {
	var req templateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "template name is required")
	}

	now := time.Now().UTC()
	tmpl := &domain.EmailTemplate{
		ID:         uuid.New(),
		Name:       req.Name,
		Subject:    req.Subject,
		Body:       req.Body,
		CallResult: domain.CallResult(req.CallResult),
		IsDefault:  req.IsDefault,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.container.Repositories().Emails.Create(ctx.Context(), tmpl); err != nil {
		return translateError(err)
	}
	return ctx.Status(http.StatusCreated).JSON(toTemplateResponse(tmpl))
}

func (h *HandlerSet) listTemplates(ctx *fiber.Ctx) error {
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))
	templates, err := h.container.Repositories().Emails.List(ctx.Context(), limit)
	if err != nil {
		return translateError(err)
	}

	resp := make([]templateResponse, 0, len(templates))
	for _, t := range templates {
		resp = append(resp, toTemplateResponse(t))
	}
	return ctx.Status(http.StatusOK).JSON(fiber.Map{"templates": resp})
}

func (h *HandlerSet) getTemplate(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid template id")
	}
	tmpl, err := h.container.Repositories().Emails.Get(ctx.Context(), id)
	if err != nil {
		return translateError(err)
	}
	return ctx.Status(http.StatusOK).JSON(toTemplateResponse(tmpl))
}

func (h *HandlerSet) updateTemplate(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid template id")
	}

	var req templateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	tmpl, err := h.container.Repositories().Emails.Get(ctx.Context(), id)
	if err != nil {
		return translateError(err)
	}

	if req.Name != "" {
		tmpl.Name = req.Name
	}
	tmpl.Subject = req.Subject
	tmpl.Body = req.Body
	tmpl.CallResult = domain.CallResult(req.CallResult)
	tmpl.IsDefault = req.IsDefault

	if err := h.container.Repositories().Emails.Update(ctx.Context(), tmpl); err != nil {
		return translateError(err)
	}
	return ctx.Status(http.StatusOK).JSON(toTemplateResponse(tmpl))
}

func (h *HandlerSet) deleteTemplate(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid template id")
	}
	if err := h.container.Repositories().Emails.Delete(ctx.Context(), id); err != nil {
		return translateError(err)
	}
	return ctx.SendStatus(http.StatusNoContent)
}

func toScriptResponse(s *domain.Script) scriptResponse {
	return scriptResponse{
		ID:        s.ID,
		Name:      s.Name,
		Body:      s.Body,
		IsDefault: s.IsDefault,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toTemplateResponse(t *domain.EmailTemplate) templateResponse {
	return templateResponse{
		ID:         t.ID,
		Name:       t.Name,
		Subject:    t.Subject,
		Body:       t.Body,
		CallResult: string(t.CallResult),
		IsDefault:  t.IsDefault,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
