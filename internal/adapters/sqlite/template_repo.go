package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/ports/secondary"
)

// TemplateRepository implements secondary.TemplateRepository with SQLite.
type TemplateRepository struct {
	db *sql.DB
}

// NewTemplateRepository creates a new SQLite petition template repository.
func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

var _ secondary.TemplateRepository = (*TemplateRepository)(nil)

const (
	templateSelectCols = "id, user_id, tema, subtema, titulo, ordem, descricao, created_at, updated_at"
	fileSelectCols     = "id, template_id, user_id, file_name, storage_path, mime_type, size, created_at"
)

func scanTemplate(s scanner) (*secondary.TemplateRecord, error) {
	var (
		desc                 sql.NullString
		createdAt, updatedAt time.Time
	)

	r := &secondary.TemplateRecord{}
	err := s.Scan(&r.ID, &r.UserID, &r.Tema, &r.Subtema, &r.Titulo, &r.Ordem, &desc, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	r.Descricao = desc.String
	r.CreatedAt = createdAt.Format(time.RFC3339)
	r.UpdatedAt = updatedAt.Format(time.RFC3339)
	return r, nil
}

func scanTemplateFile(s scanner) (*secondary.TemplateFileRecord, error) {
	var createdAt time.Time

	r := &secondary.TemplateFileRecord{}
	err := s.Scan(&r.ID, &r.TemplateID, &r.UserID, &r.FileName, &r.StoragePath, &r.MimeType, &r.Size, &createdAt)
	if err != nil {
		return nil, err
	}
	r.CreatedAt = createdAt.Format(time.RFC3339)
	return r, nil
}

// Create persists a new template.
func (r *TemplateRepository) Create(ctx context.Context, t *secondary.TemplateRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO petition_templates (id, user_id, tema, subtema, titulo, ordem, descricao) VALUES (?, ?, ?, ?, ?, ?, ?)",
		t.ID, t.UserID, t.Tema, t.Subtema, t.Titulo, t.Ordem, nullString(t.Descricao),
	)
	if err != nil {
		return createErr("template", t.ID, err)
	}
	return nil
}

// GetByID retrieves a template by its ID.
func (r *TemplateRepository) GetByID(ctx context.Context, userID, id string) (*secondary.TemplateRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+templateSelectCols+" FROM petition_templates WHERE id = ? AND user_id = ?",
		id, userID,
	)

	record, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("template %s %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return record, nil
}

// GetByOrdem retrieves the oldest template with the given catalog order.
func (r *TemplateRepository) GetByOrdem(ctx context.Context, userID, ordem string) (*secondary.TemplateRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+templateSelectCols+" FROM petition_templates WHERE user_id = ? AND ordem = ? ORDER BY created_at ASC, id ASC LIMIT 1",
		userID, ordem,
	)

	record, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("template with ordem %s %w", ordem, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return record, nil
}

// List retrieves all templates of the user, ordered by ordem.
func (r *TemplateRepository) List(ctx context.Context, userID string) ([]*secondary.TemplateRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+templateSelectCols+" FROM petition_templates WHERE user_id = ? ORDER BY ordem ASC, id ASC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*secondary.TemplateRecord
	for rows.Next() {
		record, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, record)
	}
	return templates, rows.Err()
}

// Delete removes a template; its file rows cascade.
func (r *TemplateRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM petition_templates WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return requireRow(result, "template", id)
}

// DeleteAll removes every template of the user and returns how many.
func (r *TemplateRepository) DeleteAll(ctx context.Context, userID string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM template_files WHERE user_id = ?", userID); err != nil {
		return 0, fmt.Errorf("failed to delete template files: %w", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM petition_templates WHERE user_id = ?", userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete templates: %w", err)
	}
	n, _ := result.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return int(n), nil
}

// GetNextID returns the next available template ID.
func (r *TemplateRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM petition_templates",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next template ID: %w", err)
	}
	return fmt.Sprintf("TPL-%03d", maxID+1), nil
}

// Count returns the number of templates owned by the user.
func (r *TemplateRepository) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM petition_templates WHERE user_id = ?", userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count templates: %w", err)
	}
	return n, nil
}

// AddFile persists a file row attached to a template.
func (r *TemplateRepository) AddFile(ctx context.Context, f *secondary.TemplateFileRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO template_files (id, template_id, user_id, file_name, storage_path, mime_type, size) VALUES (?, ?, ?, ?, ?, ?, ?)",
		f.ID, f.TemplateID, f.UserID, f.FileName, f.StoragePath, f.MimeType, f.Size,
	)
	if err != nil {
		return fmt.Errorf("failed to add template file: %w", err)
	}
	return nil
}

// GetFile retrieves a file row by ID.
func (r *TemplateRepository) GetFile(ctx context.Context, userID, id string) (*secondary.TemplateFileRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+fileSelectCols+" FROM template_files WHERE id = ? AND user_id = ?",
		id, userID,
	)

	record, err := scanTemplateFile(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("file %s %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template file: %w", err)
	}
	return record, nil
}

// ListFiles retrieves file rows; an empty templateID lists every file of the user.
func (r *TemplateRepository) ListFiles(ctx context.Context, userID, templateID string) ([]*secondary.TemplateFileRecord, error) {
	query := "SELECT " + fileSelectCols + " FROM template_files WHERE user_id = ?"
	args := []any{userID}
	if templateID != "" {
		query += " AND template_id = ?"
		args = append(args, templateID)
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list template files: %w", err)
	}
	defer rows.Close()

	var files []*secondary.TemplateFileRecord
	for rows.Next() {
		record, err := scanTemplateFile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template file: %w", err)
		}
		files = append(files, record)
	}
	return files, rows.Err()
}

// DeleteFile removes a file row.
func (r *TemplateRepository) DeleteFile(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM template_files WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete template file: %w", err)
	}
	return requireRow(result, "file", id)
}

// GetNextFileID returns the next available template file ID.
func (r *TemplateRepository) GetNextFileID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 7) AS INTEGER)), 0) FROM template_files",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next file ID: %w", err)
	}
	return fmt.Sprintf("TFILE-%03d", maxID+1), nil
}
