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

// ScriptRepository implements repository.ScriptRepository using PostgreSQL.
type ScriptRepository struct {
	db *sqlx.DB
}

// NewScriptRepository constructs the repository.
func NewScriptRepository(db *sqlx.DB) *ScriptRepository {
	return &ScriptRepository{db: db}
}

// Create inserts a script.
func (r *ScriptRepository) Create(ctx context.Context, script *domain.Script) error {
	q := `INSERT INTO scripts (id, name, body, is_default, created_at, updated_at)
		VALUES (:id, :name, :body, :is_default, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, q, scriptParams(script)); err != nil {
		return fmt.Errorf("script repo: insert: %w", err)
	}
	return nil
}

// Get fetches a script by id.
func (r *ScriptRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Script, error) {
	row := r.db.QueryRowxContext(ctx, `SELECT id, name, body, is_default, created_at, updated_at
		FROM scripts WHERE id = $1`, id)
	return scanScript(row)
}

// GetDefault fetches the script flagged as default.
func (r *ScriptRepository) GetDefault(ctx context.Context) (*domain.Script, error) {
	row := r.db.QueryRowxContext(ctx, `SELECT id, name, body, is_default, created_at, updated_at
		FROM scripts WHERE is_default ORDER BY updated_at DESC LIMIT 1`)
	return scanScript(row)
}

// Update rewrites a script.
func (r *ScriptRepository) Update(ctx context.Context, script *domain.Script) error {
	script.UpdatedAt = time.Now().UTC()
	q := `UPDATE scripts SET name = :name, body = :body, is_default = :is_default, updated_at = :updated_at
		WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, q, scriptParams(script))
	if err != nil {
		return fmt.Errorf("script repo: update: %w", err)
	}
	return requireRow(res, "script repo")
}

// Delete removes a script.
func (r *ScriptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scripts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("script repo: delete: %w", err)
	}
	return requireRow(res, "script repo")
}

// List returns scripts newest first.
func (r *ScriptRepository) List(ctx context.Context, limit int) ([]*domain.Script, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryxContext(ctx, `SELECT id, name, body, is_default, created_at, updated_at
		FROM scripts ORDER BY updated_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("script repo: list: %w", err)
	}
	defer rows.Close()

	var results []*domain.Script
	for rows.Next() {
		var rec scriptRecord
		if err := rows.StructScan(&rec); err != nil {
			return nil, fmt.Errorf("script repo: scan: %w", err)
		}
		script := rec.toDomain()
		results = append(results, &script)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("script repo: rows err: %w", err)
	}
	return results, nil
}

func scanScript(row *sqlx.Row) (*domain.Script, error) {
	var rec scriptRecord
	if err := row.StructScan(&rec); err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("script repo: get: %w", err)
	}
	script := rec.toDomain()
	return &script, nil
}

func scriptParams(s *domain.Script) map[string]any {
	return map[string]any{
		"id":         s.ID,
		"name":       s.Name,
		"body":       s.Body,
		"is_default": s.IsDefault,
		"created_at": s.CreatedAt,
		"updated_at": s.UpdatedAt,
	}
}

type scriptRecord struct {
	ID        uuid.UUID    `db:"id"`
	Name      string       `db:"name"`
	Body      string       `db:"body"`
	IsDefault bool         `db:"is_default"`
	CreatedAt sql.NullTime `db:"created_at"`
	UpdatedAt sql.NullTime `db:"updated_at"`
}

func (r scriptRecord) toDomain() domain.Script {
	return domain.Script{
		ID:        r.ID,
		Name:      r.Name,
		Body:      r.Body,
		IsDefault: r.IsDefault,
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
}

// EmailTemplateRepository implements repository.EmailTemplateRepository using PostgreSQL.
type EmailTemplateRepository struct {
	db *sqlx.DB
}

// NewEmailTemplateRepository constructs the repository.
func NewEmailTemplateRepository(db *sqlx.DB) *EmailTemplateRepository {
	return &EmailTemplateRepository{db: db}
}

const templateColumns = `id, name, subject, body, call_result, is_default, created_at, updated_at`

// Create inserts a template.
func (r *EmailTemplateRepository) Create(ctx context.Context, tmpl *domain.EmailTemplate) error {
	q := `INSERT INTO email_templates (` + templateColumns + `)
		VALUES (:id, :name, :subject, :body, :call_result, :is_default, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, q, templateParams(tmpl)); err != nil {
		return fmt.Errorf("email template repo: insert: %w", err)
	}
	return nil
}

// Get fetches a template by id.
func (r *EmailTemplateRepository) Get(ctx context.Context, id uuid.UUID) (*domain.EmailTemplate, error) {
	row := r.db.QueryRowxContext(ctx, `SELECT `+templateColumns+` FROM email_templates WHERE id = $1`, id)
	return scanTemplate(row)
}

// GetByCallResult fetches the template tagged with the given outcome.
func (r *EmailTemplateRepository) GetByCallResult(ctx context.Context, result domain.CallResult) (*domain.EmailTemplate, error) {
	row := r.db.QueryRowxContext(ctx, `SELECT `+templateColumns+` FROM email_templates
		WHERE call_result = $1 ORDER BY updated_at DESC LIMIT 1`, string(result))
	return scanTemplate(row)
}

// GetDefault fetches the template flagged as default.
func (r *EmailTemplateRepository) GetDefault(ctx context.Context) (*domain.EmailTemplate, error) {
	row := r.db.QueryRowxContext(ctx, `SELECT `+templateColumns+` FROM email_templates
		WHERE is_default ORDER BY updated_at DESC LIMIT 1`)
	return scanTemplate(row)
}

// Update rewrites a template.
func (r *EmailTemplateRepository) Update(ctx context.Context, tmpl *domain.EmailTemplate) error {
	tmpl.UpdatedAt = time.Now().UTC()
	q := `UPDATE email_templates SET name = :name, subject = :subject, body = :body,
		call_result = :call_result, is_default = :is_default, updated_at = :updated_at
		WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, q, templateParams(tmpl))
	if err != nil {
		return fmt.Errorf("email template repo: update: %w", err)
	}
	return requireRow(res, "email template repo")
}

// Delete removes a template.
func (r *EmailTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM email_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("email template repo: delete: %w", err)
	}
	return requireRow(res, "email template repo")
}

// List returns templates newest first.
func (r *EmailTemplateRepository) List(ctx context.Context, limit int) ([]*domain.EmailTemplate, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryxContext(ctx, `SELECT `+templateColumns+` FROM email_templates
		ORDER BY updated_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("email template repo: list: %w", err)
	}
	defer rows.Close()

	var results []*domain.EmailTemplate
	for rows.Next() {
		var rec templateRecord
		if err := rows.StructScan(&rec); err != nil {
			return nil, fmt.Errorf("email template repo: scan: %w", err)
		}
		tmpl := rec.toDomain()
		results = append(results, &tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("email template repo: rows err: %w", err)
	}
	return results, nil
}

func scanTemplate(row *sqlx.Row) (*domain.EmailTemplate, error) {
	var rec templateRecord
	if err := row.StructScan(&rec); err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("email template repo: get: %w", err)
	}
	tmpl := rec.toDomain()
	return &tmpl, nil
}

func templateParams(t *domain.EmailTemplate) map[string]any {
	return map[string]any{
		"id":          t.ID,
		"name":        t.Name,
		"subject":     t.Subject,
		"body":        t.Body,
		"call_result": string(t.CallResult),
		"is_default":  t.IsDefault,
		"created_at":  t.CreatedAt,
		"updated_at":  t.UpdatedAt,
	}
}

type templateRecord struct {
	ID         uuid.UUID      `db:"id"`
	Name       string         `db:"name"`
	Subject    sql.NullString `db:"subject"`
	Body       string         `db:"body"`
	CallResult sql.NullString `db:"call_result"`
	IsDefault  bool           `db:"is_default"`
	CreatedAt  sql.NullTime   `db:"created_at"`
	UpdatedAt  sql.NullTime   `db:"updated_at"`
}

func (r templateRecord) toDomain() domain.EmailTemplate {
	return domain.EmailTemplate{
		ID:         r.ID,
		Name:       r.Name,
		Subject:    r.Subject.String,
		Body:       r.Body,
		CallResult: domain.CallResult(r.CallResult.String),
		IsDefault:  r.IsDefault,
		CreatedAt:  r.CreatedAt.Time,
		UpdatedAt:  r.UpdatedAt.Time,
	}
}

func requireRow(res sql.Result, scope string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", scope, err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
