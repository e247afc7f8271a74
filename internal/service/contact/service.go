// Package contact provides CRUD operations over contact lists and contacts.
package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acme/telesales-call-manager/internal/domain"
	"github.com/acme/telesales-call-manager/internal/repository"
	apperrors "github.com/acme/telesales-call-manager/pkg/errors"
)

// Service orchestrates contact and contact list operations.
type Service struct {
	lists    repository.ContactListRepository
	contacts repository.ContactRepository
	history  repository.CallHistoryStore
	stats    repository.ListStatisticsRepository
}

// NewService constructs a contact service.
func NewService(
	lists repository.ContactListRepository,
	contacts repository.ContactRepository,
	history repository.CallHistoryStore,
	stats repository.ListStatisticsRepository,
) *Service {
	return &Service{lists: lists, contacts: contacts, history: history, stats: stats}
}

// ContactInput captures contact creation/update fields.
type ContactInput struct {
	Company      string
	Name         string
	Phone        string
	Email        string
	Website      string
	RegistryCode string
	Notes        string
	Priority     domain.Priority
}

// CreateList provisions a new contact list with optional initial contacts.
func (s *Service) CreateList(ctx context.Context, name string, contacts []ContactInput) (*domain.ContactList, error) {
	if name == "" {
		return nil, apperrors.Validationf("list name is required")
	}

	now := time.Now().UTC()
	list := &domain.ContactList{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.lists.Create(ctx, list); err != nil {
		return nil, fmt.Errorf("contact service: create list: %w", err)
	}
	if err := s.stats.Ensure(ctx, list.ID); err != nil {
		return nil, fmt.Errorf("contact service: ensure stats: %w", err)
	}

	if len(contacts) > 0 {
		if err := s.AddContacts(ctx, list.ID, contacts); err != nil {
			return nil, err
		}
		list.ContactCount = len(contacts)
	}

	return list, nil
}

// GetList retrieves a contact list by id.
func (s *Service) GetList(ctx context.Context, id uuid.UUID) (*domain.ContactList, error) {
	return s.lists.Get(ctx, id)
}

// Lists returns contact lists.
func (s *Service) Lists(ctx context.Context, limit int) ([]*domain.ContactList, error) {
	return s.lists.List(ctx, limit)
}

// RenameList changes a list's name.
func (s *Service) RenameList(ctx context.Context, id uuid.UUID, name string) error {
	if name == "" {
		return apperrors.Validationf("list name is required")
	}
	return s.lists.Rename(ctx, id, name)
}

// DeleteList removes a list and its contacts.
func (s *Service) DeleteList(ctx context.Context, id uuid.UUID) error {
	return s.lists.Delete(ctx, id)
}

// AddContacts appends contacts to a list.
func (s *Service) AddContacts(ctx context.Context, listID uuid.UUID, inputs []ContactInput) error {
	if len(inputs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	contacts := make([]domain.Contact, 0, len(inputs))
	for _, in := range inputs {
		if in.Company == "" && in.Name == "" {
			return apperrors.Validationf("contact needs a company or person name")
		}
		priority := in.Priority
		if priority == "" {
			priority = domain.PriorityUnreviewed
		}
		contacts = append(contacts, domain.Contact{
			ID:           uuid.New(),
			ListID:       listID,
			Company:      in.Company,
			Name:         in.Name,
			Phone:        in.Phone,
			Email:        in.Email,
			Website:      in.Website,
			RegistryCode: in.RegistryCode,
			Notes:        in.Notes,
			Priority:     priority,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	if err := s.contacts.BulkInsert(ctx, listID, contacts); err != nil {
		return fmt.Errorf("contact service: add contacts: %w", err)
	}
	return nil
}

// Get retrieves a contact.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	return s.contacts.Get(ctx, id)
}

// UpdateContactInput captures updatable contact fields.
type UpdateContactInput struct {
	ID           uuid.UUID
	Company      *string
	Name         *string
	Phone        *string
	Email        *string
	Website      *string
	RegistryCode *string
	Notes        *string
	Priority     *domain.Priority
}

// Update modifies contact fields.
func (s *Service) Update(ctx context.Context, input UpdateContactInput) (*domain.Contact, error) {
	contact, err := s.contacts.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Company != nil {
		contact.Company = *input.Company
	}
	if input.Name != nil {
		contact.Name = *input.Name
	}
	if input.Phone != nil {
		contact.Phone = *input.Phone
	}
	if input.Email != nil {
		contact.Email = *input.Email
	}
	if input.Website != nil {
		contact.Website = *input.Website
	}
	if input.RegistryCode != nil {
		contact.RegistryCode = *input.RegistryCode
	}
	if input.Notes != nil {
		contact.Notes = *input.Notes
	}
	if input.Priority != nil {
		contact.Priority = *input.Priority
	}

	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Delete removes a contact.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.contacts.Delete(ctx, id)
}

// ListContacts returns a list's contacts in calling order.
func (s *Service) ListContacts(ctx context.Context, listID uuid.UUID, limit int) ([]domain.Contact, error) {
	contacts, err := s.contacts.ListByList(ctx, listID, limit)
	if err != nil {
		return nil, err
	}
	domain.SortForCalling(contacts)
	return contacts, nil
}

// History returns a contact's call history page.
func (s *Service) History(ctx context.Context, contactID uuid.UUID, limit int, pagingState []byte) ([]domain.CallHistory, []byte, error) {
	return s.history.ListByContact(ctx, contactID, limit, pagingState)
}

// ListStats retrieves a list's dashboard counters.
func (s *Service) ListStats(ctx context.Context, listID uuid.UUID) (*domain.ListStats, error) {
	return s.stats.Get(ctx, listID)
}

// DueCallbacks returns contacts with callbacks scheduled on the given date.
func (s *Service) DueCallbacks(ctx context.Context, onDate string, limit int) ([]domain.Contact, error) {
	return s.contacts.ListDueCallbacks(ctx, onDate, limit)
}
