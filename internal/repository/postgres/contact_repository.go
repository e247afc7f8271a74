package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acme/telesales-call-manager/internal/domain"
	"github.com/acme/telesales-call-manager/internal/repository"
)

// ContactRepository implements repository.ContactRepository using PostgreSQL.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository constructs the repository.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

const contactColumns = `id, list_id, company, name, phone, email, website, registry_code, notes,
	status, priority, last_call_date, callback_date, callback_time, callback_reason,
	created_at, updated_at`

// Create inserts a single contact.
func (r *ContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	if _, err := r.db.NamedExecContext(ctx, insertContactQuery, contactParams(contact)); err != nil {
		return fmt.Errorf("contact repo: insert: %w", err)
	}
	return nil
}

// BulkInsert inserts a batch of contacts into a list.
func (r *ContactRepository) BulkInsert(ctx context.Context, listID uuid.UUID, contacts []domain.Contact) error {
	if len(contacts) == 0 {
		return nil
	}

	rows := make([]map[string]any, 0, len(contacts))
	for i := range contacts {
		contacts[i].ListID = listID
		rows = append(rows, contactParams(&contacts[i]))
	}

	if _, err := r.db.NamedExecContext(ctx, insertContactQuery+` ON CONFLICT (id) DO NOTHING`, rows); err != nil {
		return fmt.Errorf("contact repo: bulk insert: %w", err)
	}
	return nil
}

// Get fetches a contact by id.
func (r *ContactRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	row := r.db.QueryRowxContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
	var rec contactRecord
	if err := row.StructScan(&rec); err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("contact repo: get: %w", err)
	}
	contact := rec.toDomain()
	return &contact, nil
}

// Update rewrites all mutable contact fields.
func (r *ContactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	contact.UpdatedAt = time.Now().UTC()

	q := `UPDATE contacts SET
		company = :company,
		name = :name,
		phone = :phone,
		email = :email,
		website = :website,
		registry_code = :registry_code,
		notes = :notes,
		status = :status,
		priority = :priority,
		last_call_date = :last_call_date,
		callback_date = :callback_date,
		callback_time = :callback_time,
		callback_reason = :callback_reason,
		updated_at = :updated_at
	 WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, q, contactParams(contact))
	if err != nil {
		return fmt.Errorf("contact repo: update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("contact repo: rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a contact.
func (r *ContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("contact repo: delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("contact repo: rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListByList returns a list's contacts in insertion order. Call-ordering is
// applied by the caller via domain.SortForCalling.
func (r *ContactRepository) ListByList(ctx context.Context, listID uuid.UUID, limit int) ([]domain.Contact, error) {
	if limit <= 0 {
		limit = 1000
	}

	rows, err := r.db.QueryxContext(ctx, `SELECT `+contactColumns+` FROM contacts
		WHERE list_id = $1 ORDER BY created_at ASC LIMIT $2`, listID, limit)
	if err != nil {
		return nil, fmt.Errorf("contact repo: list: %w", err)
	}
	defer rows.Close()

	return scanContacts(rows)
}

// ListDueCallbacks returns contacts whose callback falls on the given date.
func (r *ContactRepository) ListDueCallbacks(ctx context.Context, onDate string, limit int) ([]domain.Contact, error) {
	if limit <= 0 {
		limit = 200
	}

	rows, err := r.db.QueryxContext(ctx, `SELECT `+contactColumns+` FROM contacts
		WHERE callback_date = $1 ORDER BY callback_time ASC LIMIT $2`, onDate, limit)
	if err != nil {
		return nil, fmt.Errorf("contact repo: due callbacks: %w", err)
	}
	defer rows.Close()

	return scanContacts(rows)
}

func scanContacts(rows *sqlx.Rows) ([]domain.Contact, error) {
	var results []domain.Contact
	for rows.Next() {
		var rec contactRecord
		if err := rows.StructScan(&rec); err != nil {
			return nil, fmt.Errorf("contact repo: scan: %w", err)
		}
		results = append(results, rec.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("contact repo: rows err: %w", err)
	}
	return results, nil
}

const insertContactQuery = `INSERT INTO contacts (
	id, list_id, company, name, phone, email, website, registry_code, notes,
	status, priority, last_call_date, callback_date, callback_time, callback_reason,
	created_at, updated_at
) VALUES (
	:id, :list_id, :company, :name, :phone, :email, :website, :registry_code, :notes,
	:status, :priority, :last_call_date, :callback_date, :callback_time, :callback_reason,
	:created_at, :updated_at
)`

func contactParams(c *domain.Contact) map[string]any {
	return map[string]any{
		"id":              c.ID,
		"list_id":         c.ListID,
		"company":         c.Company,
		"name":            c.Name,
		"phone":           c.Phone,
		"email":           c.Email,
		"website":         c.Website,
		"registry_code":   c.RegistryCode,
		"notes":           c.Notes,
		"status":          string(c.Status),
		"priority":        string(c.Priority),
		"last_call_date":  c.LastCallDate,
		"callback_date":   c.CallbackDate,
		"callback_time":   c.CallbackTime,
		"callback_reason": c.CallbackReason,
		"created_at":      c.CreatedAt,
		"updated_at":      c.UpdatedAt,
	}
}

type contactRecord struct {
	ID             uuid.UUID      `db:"id"`
	ListID         uuid.UUID      `db:"list_id"`
	Company        sql.NullString `db:"company"`
	Name           sql.NullString `db:"name"`
	Phone          sql.NullString `db:"phone"`
	Email          sql.NullString `db:"email"`
	Website        sql.NullString `db:"website"`
	RegistryCode   sql.NullString `db:"registry_code"`
	Notes          sql.NullString `db:"notes"`
	Status         sql.NullString `db:"status"`
	Priority       sql.NullString `db:"priority"`
	LastCallDate   sql.NullTime   `db:"last_call_date"`
	CallbackDate   sql.NullString `db:"callback_date"`
	CallbackTime   sql.NullString `db:"callback_time"`
	CallbackReason sql.NullString `db:"callback_reason"`
	CreatedAt      sql.NullTime   `db:"created_at"`
	UpdatedAt      sql.NullTime   `db:"updated_at"`
}

func (r contactRecord) toDomain() domain.Contact {
	contact := domain.Contact{
		ID:             r.ID,
		ListID:         r.ListID,
		Company:        r.Company.String,
		Name:           r.Name.String,
		Phone:          r.Phone.String,
		Email:          r.Email.String,
		Website:        r.Website.String,
		RegistryCode:   r.RegistryCode.String,
		Notes:          r.Notes.String,
		Status:         domain.CallResult(r.Status.String),
		Priority:       domain.Priority(r.Priority.String),
		CallbackDate:   r.CallbackDate.String,
		CallbackTime:   r.CallbackTime.String,
		CallbackReason: r.CallbackReason.String,
		CreatedAt:      r.CreatedAt.Time,
		UpdatedAt:      r.UpdatedAt.Time,
	}
	if contact.Priority == "" {
		contact.Priority = domain.PriorityUnreviewed
	}
	if r.LastCallDate.Valid {
		t := r.LastCallDate.Time
		contact.LastCallDate = &t
	}
	return contact
}
