package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/ports/secondary"
)

// IconRepository implements secondary.IconRepository with SQLite.
type IconRepository struct {
	db *sql.DB
}

// NewIconRepository creates a new SQLite uploaded icon repository.
func NewIconRepository(db *sql.DB) *IconRepository {
	return &IconRepository{db: db}
}

var _ secondary.IconRepository = (*IconRepository)(nil)

const iconSelectCols = "id, user_id, name, storage_path, url, size, mime_type, created_at"

func scanIcon(s scanner) (*secondary.IconRecord, error) {
	var createdAt time.Time
	r := &secondary.IconRecord{}
	if err := s.Scan(&r.ID, &r.UserID, &r.Name, &r.StoragePath, &r.URL, &r.Size, &r.MimeType, &createdAt); err != nil {
		return nil, err
	}
	r.CreatedAt = createdAt.Format(time.RFC3339)
	return r, nil
}

// Create persists a new icon.
func (r *IconRepository) Create(ctx context.Context, icon *secondary.IconRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO uploaded_icons (id, user_id, name, storage_path, url, size, mime_type) VALUES (?, ?, ?, ?, ?, ?, ?)",
		icon.ID, icon.UserID, icon.Name, icon.StoragePath, icon.URL, icon.Size, icon.MimeType,
	)
	if err != nil {
		return createErr("icon", icon.ID, err)
	}
	return nil
}

// GetByID retrieves an icon by its ID.
func (r *IconRepository) GetByID(ctx context.Context, userID, id string) (*secondary.IconRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+iconSelectCols+" FROM uploaded_icons WHERE id = ? AND user_id = ?", id, userID)
	record, err := scanIcon(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("icon %s %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get icon: %w", err)
	}
	return record, nil
}

// List retrieves the user's icons, newest first.
func (r *IconRepository) List(ctx context.Context, userID string) ([]*secondary.IconRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+iconSelectCols+" FROM uploaded_icons WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list icons: %w", err)
	}
	defer rows.Close()

	var icons []*secondary.IconRecord
	for rows.Next() {
		record, err := scanIcon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan icon: %w", err)
		}
		icons = append(icons, record)
	}
	return icons, rows.Err()
}

// Delete removes an icon.
func (r *IconRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM uploaded_icons WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete icon: %w", err)
	}
	return requireRow(result, "icon", id)
}

// GetNextID returns the next available icon ID.
func (r *IconRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM uploaded_icons",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next icon ID: %w", err)
	}
	return fmt.Sprintf("ICON-%03d", maxID+1), nil
}
