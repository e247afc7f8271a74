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

// ContactListRepository implements repository.ContactListRepository using PostgreSQL.
type ContactListRepository struct {
	db *sqlx.DB
}

// NewContactListRepository constructs a new repository.
func NewContactListRepository(db *sqlx.DB) *ContactListRepository {
	return &ContactListRepository{db: db}
}

// Create inserts a new contact list.
func (r *ContactListRepository) Create(ctx context.Context, list *domain.ContactList) error {
	q := `INSERT INTO contact_lists (id, name, created_at, updated_at)
		VALUES (:id, :name, :created_at, :updated_at)`

	params := map[string]any{
		"id":         list.ID,
		"name":       list.Name,
		"created_at": list.CreatedAt,
		"updated_at": list.UpdatedAt,
	}

	if _, err := r.db.NamedExecContext(ctx, q, params); err != nil {
		return fmt.Errorf("contact list repo: insert: %w", err)
	}
	return nil
}

// Get fetches a contact list by id, including its contact count.
func (r *ContactListRepository) Get(ctx context.Context, id uuid.UUID) (*domain.ContactList, error) {
	q := `SELECT l.id, l.name, l.created_at, l.updated_at,
	       (SELECT COUNT(*) FROM contacts c WHERE c.list_id = l.id) AS contact_count
	  FROM contact_lists l WHERE l.id = $1`

	row := r.db.QueryRowxContext(ctx, q, id)
	var record listRecord
	if err := row.StructScan(&record); err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("contact list repo: get: %w", err)
	}

	list := record.toDomain()
	return &list, nil
}

// Rename changes the list name.
func (r *ContactListRepository) Rename(ctx context.Context, id uuid.UUID, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE contact_lists SET name = $1, updated_at = $2 WHERE id = $3`,
		name, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("contact list repo: rename: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("contact list repo: rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the list and its contacts.
func (r *ContactListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contact_lists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("contact list repo: delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("contact list repo: rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns contact lists newest first.
func (r *ContactListRepository) List(ctx context.Context, limit int) ([]*domain.ContactList, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryxContext(ctx, `SELECT l.id, l.name, l.created_at, l.updated_at,
		(SELECT COUNT(*) FROM contacts c WHERE c.list_id = l.id) AS contact_count
		FROM contact_lists l ORDER BY l.created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("contact list repo: list: %w", err)
	}
	defer rows.Close()

	var results []*domain.ContactList
	for rows.Next() {
		var record listRecord
		if err := rows.StructScan(&record); err != nil {
			return nil, fmt.Errorf("contact list repo: scan: %w", err)
		}
		list := record.toDomain()
		results = append(results, &list)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("contact list repo: rows err: %w", err)
	}
	return results, nil
}

type listRecord struct {
	ID           uuid.UUID    `db:"id"`
	Name         string       `db:"name"`
	ContactCount int          `db:"contact_count"`
	CreatedAt    sql.NullTime `db:"created_at"`
	UpdatedAt    sql.NullTime `db:"updated_at"`
}

func (r listRecord) toDomain() domain.ContactList {
	return domain.ContactList{
		ID:           r.ID,
		Name:         r.Name,
		ContactCount: r.ContactCount,
		CreatedAt:    r.CreatedAt.Time,
		UpdatedAt:    r.UpdatedAt.Time,
	}
}
