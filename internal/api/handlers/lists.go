package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/acme/telesales-call-manager/internal/domain"
	contactsvc "github.com/acme/telesales-call-manager/internal/service/contact"
)

type contactRequest struct {
	Company      string `json:"company"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Website      string `json:"website"`
	RegistryCode string `json:"registry_code"`
	Notes        string `json:"notes"`
	Priority     string `json:"priority"`
}

type createListRequest struct {
	Name     string           `json:"name"`
	Contacts []contactRequest `json:"contacts"`
}

type listResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactCount int       `json:"contact_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type contactResponse struct {
	ID             uuid.UUID  `json:"id"`
	ListID         uuid.UUID  `json:"list_id"`
	Company        string     `json:"company"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email,omitempty"`
	Website        string     `json:"website,omitempty"`
	RegistryCode   string     `json:"registry_code,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	Status         string     `json:"status,omitempty"`
	Priority       string     `json:"priority"`
	LastCallDate   *time.Time `json:"last_call_date,omitempty"`
	CallbackDate   string     `json:"callback_date,omitempty"`
	CallbackTime   string     `json:"callback_time,omitempty"`
	CallbackReason string     `json:"callback_reason,omitempty"`
	Requeued       bool       `json:"requeued,omitempty"`
}

type statsResponse struct {
	TotalCalls    int64 `json:"total_calls"`
	Meetings      int64 `json:"meetings"`
	InfoRequests  int64 `json:"info_requests"`
	NoAnswers     int64 `json:"no_answers"`
	NotInterested int64 `json:"not_interested"`
	Callbacks     int64 `json:"callbacks"`
	Other         int64 `json:"other"`
}

func (h *HandlerSet) createList(ctx *fiber.Ctx) error {
	var req createListRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	list, err := h.contacts.CreateList(ctx.Context(), req.Name, toContactInputs(req.Contacts))
	if err != nil {
		return translateError(err)
	}

	return ctx.Status(http.StatusCreated).JSON(toListResponse(list))
}

func (h *HandlerSet) listLists(ctx *fiber.Ctx) error {
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))

	lists, err := h.contacts.Lists(ctx.Context(), limit)
	if err != nil {
		return translateError(err)
	}

	resp := make([]listResponse, 0, len(lists))
	for _, l := range lists {
		resp = append(resp, toListResponse(l))
	}
	return ctx.Status(http.StatusOK).JSON(fiber.Map{"lists": resp})
}

func (h *HandlerSet) getList(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid list id")
	}

	list, err := h.contacts.GetList(ctx.Context(), id)
	if err != nil {
		return translateError(err)
	}
	return ctx.Status(http.StatusOK).JSON(toListResponse(list))
}

type renameListRequest struct {
	Name string `json:"name"`
}

func (h *HandlerSet) renameList(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid list id")
	}

	var req renameListRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.contacts.RenameList(ctx.Context(), id, req.Name); err != nil {
		return translateError(err)
	}
	return ctx.SendStatus(http.StatusNoContent)
}

func (h *HandlerSet) deleteList(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid list id")
	}
	if err := h.contacts.DeleteList(ctx.Context(), id); err != nil {
		return translateError(err)
	}
	return ctx.SendStatus(http.StatusNoContent)
}

type addContactsRequest struct {
	Contacts []contactRequest `json:"contacts"`
}

func (h *HandlerSet) addContacts(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid list id")
	}

	var req addContactsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.contacts.AddContacts(ctx.Context(), id, toContactInputs(req.Contacts)); err != nil {
		return translateError(err)
	}
	return ctx.SendStatus(http.StatusNoContent)
}

func (h *HandlerSet) listContacts(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid list id")
	}
	limit, _ := strconv.Atoi(ctx.Query("limit", "0"))

	contacts, err := h.contacts.ListContacts(ctx.Context(), id, limit)
	if err != nil {
		return translateError(err)
	}

	resp := make([]contactResponse, 0, len(contacts))
	for i := range contacts {
		resp = append(resp, toContactResponse(&contacts[i]))
	}
	return ctx.Status(http.StatusOK).JSON(fiber.Map{"contacts": resp})
}

func (h *HandlerSet) listStats(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid list id")
	}

	stats, err := h.contacts.ListStats(ctx.Context(), id)
	if err != nil {
		return translateError(err)
	}

	return ctx.Status(http.StatusOK).JSON(statsResponse{
		TotalCalls:    stats.TotalCalls,
		Meetings:      stats.Meetings,
		InfoRequests:  stats.InfoRequests,
		NoAnswers:     stats.NoAnswers,
		NotInterested: stats.NotInterested,
		Callbacks:     stats.Callbacks,
		Other:         stats.Other,
	})
}

func toContactInputs(reqs []contactRequest) []contactsvc.ContactInput {
	inputs := make([]contactsvc.ContactInput, 0, len(reqs))
	for _, r := range reqs {
		inputs = append(inputs, contactsvc.ContactInput{
			Company:      r.Company,
			Name:         r.Name,
			Phone:        r.Phone,
			Email:        r.Email,
			Website:      r.Website,
			RegistryCode: r.RegistryCode,
			Notes:        r.Notes,
			Priority:     domain.Priority(r.Priority),
		})
	}
	return inputs
}

func toListResponse(l *domain.ContactList) listResponse {
	return listResponse{
		ID:           l.ID,
		Name:         l.Name,
		ContactCount: l.ContactCount,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func toContactResponse(c *domain.Contact) contactResponse {
	return contactResponse{
		ID:             c.ID,
		ListID:         c.ListID,
		Company:        c.Company,
		Name:           c.Name,
		Phone:          c.Phone,
		Email:          c.Email,
		Website:        c.Website,
		RegistryCode:   c.RegistryCode,
		Notes:          c.Notes,
		Status:         string(c.Status),
		Priority:       string(c.Priority),
		LastCallDate:   c.LastCallDate,
		CallbackDate:   c.CallbackDate,
		CallbackTime:   c.CallbackTime,
		CallbackReason: c.CallbackReason,
		Requeued:       c.Requeued,
	}
}
