package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/acme/telesales-call-manager/internal/domain"
	"github.com/acme/telesales-call-manager/internal/service/common"
	contactsvc "github.com/acme/telesales-call-manager/internal/service/contact"
)

type updateContactRequest struct {
	Company      *string `json:"company"`
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Website      *string `json:"website"`
	RegistryCode *string `json:"registry_code"`
	Notes        *string `json:"notes"`
	Priority     *string `json:"priority"`
}

type historyEntryResponse struct {
	ID             uuid.UUID `json:"id"`
	Date           time.Time `json:"date"`
	Notes          string    `json:"notes,omitempty"`
	Result         string    `json:"result"`
	MeetingDate    string    `json:"meeting_date,omitempty"`
	MeetingTime    string    `json:"meeting_time,omitempty"`
	CallbackDate   string    `json:"callback_date,omitempty"`
	CallbackTime   string    `json:"callback_time,omitempty"`
	CallbackReason string    `json:"callback_reason,omitempty"`
}

type historyResponse struct {
	Entries  []historyEntryResponse `json:"entries"`
	NextPage string                 `json:"next_page_token,omitempty"`
}

func (h *HandlerSet) getContact(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid contact id")
	}

	contact, err := h.contacts.Get(ctx.Context(), id)
	if err != nil {
		return translateError(err)
	}
	return ctx.Status(http.StatusOK).JSON(toContactResponse(contact))
}

func (h *HandlerSet) updateContact(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid contact id")
	}

	var req updateContactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	input := contactsvc.UpdateContactInput{
		ID:           id,
		Company:      req.Company,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Website:      req.Website,
		RegistryCode: req.RegistryCode,
		Notes:        req.Notes,
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		input.Priority = &p
	}

	contact, err := h.contacts.Update(ctx.Context(), input)
	if err != nil {
		return translateError(err)
	}
	return ctx.Status(http.StatusOK).JSON(toContactResponse(contact))
}

func (h *HandlerSet) deleteContact(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid contact id")
	}
	if err := h.contacts.Delete(ctx.Context(), id); err != nil {
		return translateError(err)
	}
	return ctx.SendStatus(http.StatusNoContent)
}

func (h *HandlerSet) contactHistory(ctx *fiber.Ctx) error {
	id, err := parseUUID(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid contact id")
	}
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))

	pagingState, err := common.DecodePageToken(ctx.Query("page_token"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid page token")
	}

	entries, next, err := h.contacts.History(ctx.Context(), id, limit, pagingState)
	if err != nil {
		return translateError(err)
	}

	resp := historyResponse{
		Entries:  make([]historyEntryResponse, 0, len(entries)),
		NextPage: common.EncodePageToken(next),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, historyEntryResponse{
			ID:             e.ID,
			Date:           e.Date,
			Notes:          e.Notes,
			Result:         string(e.Result),
			MeetingDate:    e.MeetingDate,
			MeetingTime:    e.MeetingTime,
			CallbackDate:   e.CallbackDate,
			CallbackTime:   e.CallbackTime,
			CallbackReason: e.CallbackReason,
		})
	}
	return ctx.Status(http.StatusOK).JSON(resp)
}

func (h *HandlerSet) dueCallbacks(ctx *fiber.Ctx) error {
	onDate := ctx.Query("date", time.Now().Format("2006-01-02"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "100"))

	contacts, err := h.contacts.DueCallbacks(ctx.Context(), onDate, limit)
	if err != nil {
		return translateError(err)
	}

	resp := make([]contactResponse, 0, len(contacts))
	for i := range contacts {
		resp = append(resp, toContactResponse(&contacts[i]))
	}
	return ctx.Status(http.StatusOK).JSON(fiber.Map{"date": onDate, "contacts": resp})
}

func (h *HandlerSet) upcomingMeetings(ctx *fiber.Ctx) error {
	limit, _ := strconv.Atoi(ctx.Query("limit", "100"))

	meetings, err := h.container.Repositories().Meetings.ListUpcoming(ctx.Context(), limit)
	if err != nil {
		return translateError(err)
	}

	type meetingResponse struct {
		ID          uuid.UUID `json:"id"`
		ContactID   uuid.UUID `json:"contact_id"`
		Date        string    `json:"date"`
		Time        string    `json:"time"`
		DurationMin int       `json:"duration_minutes"`
		Description string    `json:"description,omitempty"`
	}

	resp := make([]meetingResponse, 0, len(meetings))
	for _, m := range meetings {
		resp = append(resp, meetingResponse{
			ID:          m.ID,
			ContactID:   m.ContactID,
			Date:        m.Date,
			Time:        m.Time,
			DurationMin: int(m.Duration.Minutes()),
			Description: m.Description,
		})
	}
	return ctx.Status(http.StatusOK).JSON(fiber.Map{"meetings": resp})
}
