package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/acme/telesales-call-manager/internal/domain"
	callsessionsvc "github.com/acme/telesales-call-manager/internal/service/callsession"
	"github.com/acme/telesales-call-manager/internal/session"
)

type startSessionRequest struct {
	ListID    *uuid.UUID `json:"list_id"`
	ContactID *uuid.UUID `json:"contact_id"`
}

type sessionResponse struct {
	ID            uuid.UUID `json:"id"`
	ListID        uuid.UUID `json:"list_id"`
	CurrentIndex  int       `json:"current_index"`
	TotalContacts int       `json:"total_contacts"`
	RequeuedCount int       `json:"requeued_count"`
	SingleContact bool      `json:"single_contact"`
	Complete      bool      `json:"complete"`
}

type outcomeRequest struct {
	Result         string     `json:"result"`
	Notes          string     `json:"notes"`
	CallbackDate   string     `json:"callback_date"`
	CallbackTime   string     `json:"callback_time"`
	CallbackReason string     `json:"callback_reason"`
	MeetingDate    string     `json:"meeting_date"`
	MeetingTime    string     `json:"meeting_time"`
	SendEmail      bool       `json:"send_email"`
	TemplateID     *uuid.UUID `json:"template_id"`
}

type outcomeResponse struct {
	Contact         contactResponse      `json:"contact"`
	History         historyEntryResponse `json:"history"`
	NextIndex       int                  `json:"next_index"`
	SessionComplete bool                 `json:"session_complete"`
	Warnings        []string             `json:"warnings,omitempty"`
}

func (h *HandlerSet) startSession(ctx *fiber.Ctx) error {
	var req startSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	var (
		state *session.State
		err   error
	)
	switch {
	case req.ContactID != nil:
		state, err = h.sessions.StartSingle(ctx.Context(), *req.ContactID)
	case req.ListID != nil:
		state, err = h.sessions.Start(ctx.Context(), *req.ListID)
	default:
		return fiber.NewError(http.StatusBadRequest, "list_id or contact_id required")
	}
	if err != nil {
		return translateError(err)
	}

	return ctx.Status(http.StatusCreated).JSON(toSessionResponse(state))
}

func (h *HandlerSet) getSession(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid session id")
	}

	state, err := h.sessions.Get(ctx.Context(), id)
	if err != nil {
		return translateError(err)
	}
	return ctx.Status(http.StatusOK).JSON(toSessionResponse(state))
}

func (h *HandlerSet) sessionCurrent(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid session id")
	}

	var scriptID *uuid.UUID
	if raw := ctx.Query("script_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid script id")
		}
		scriptID = &parsed
	}

	view, err := h.sessions.Current(ctx.Context(), id, scriptID)
	if err != nil {
		return translateError(err)
	}

	if view.SessionComplete {
		return ctx.Status(http.StatusOK).JSON(fiber.Map{"session_complete": true})
	}

	return ctx.Status(http.StatusOK).JSON(fiber.Map{
		"contact":   toContactResponse(view.Contact),
		"script":    view.Script,
		"remaining": view.Remaining,
	})
}

func (h *HandlerSet) sessionOutcome(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid session id")
	}

	var req outcomeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.sessions.RecordOutcome(ctx.Context(), id, callsessionsvc.OutcomeInput{
		Result:         domain.CallResult(req.Result),
		Notes:          req.Notes,
		CallbackDate:   req.CallbackDate,
		CallbackTime:   req.CallbackTime,
		CallbackReason: req.CallbackReason,
		MeetingDate:    req.MeetingDate,
		MeetingTime:    req.MeetingTime,
		SendEmail:      req.SendEmail,
		TemplateID:     req.TemplateID,
	})
	if err != nil {
		return translateError(err)
	}

	return ctx.Status(http.StatusOK).JSON(outcomeResponse{
		Contact: toContactResponse(result.Contact),
		History: historyEntryResponse{
			ID:             result.History.ID,
			Date:           result.History.Date,
			Notes:          result.History.Notes,
			Result:         string(result.History.Result),
			MeetingDate:    result.History.MeetingDate,
			MeetingTime:    result.History.MeetingTime,
			CallbackDate:   result.History.CallbackDate,
			CallbackTime:   result.History.CallbackTime,
			CallbackReason: result.History.CallbackReason,
		},
		NextIndex:       result.NextIndex,
		SessionComplete: result.SessionComplete,
		Warnings:        result.Warnings,
	})
}

func (h *HandlerSet) endSession(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid session id")
	}
	if err := h.sessions.End(ctx.Context(), id); err != nil {
		return translateError(err)
	}
	return ctx.SendStatus(http.StatusNoContent)
}

func toSessionResponse(s *session.State) sessionResponse {
	return sessionResponse{
		ID:            s.ID,
		ListID:        s.ListID,
		CurrentIndex:  s.CurrentIndex,
		TotalContacts: len(s.Contacts),
		RequeuedCount: len(s.Requeued),
		SingleContact: s.SingleContact,
		Complete:      s.Complete,
	}
}
