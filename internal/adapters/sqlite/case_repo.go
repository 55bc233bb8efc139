package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/ports/secondary"
)

// CaseRepository implements secondary.CaseRepository with SQLite.
type CaseRepository struct {
	db *sql.DB
}

// NewCaseRepository creates a new SQLite case repository.
func NewCaseRepository(db *sql.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

var _ secondary.CaseRepository = (*CaseRepository)(nil)

const caseSelectCols = "id, user_id, client_id, category, subcategory, description, status, created_at, updated_at, completed_at"

func scanCase(s scanner) (*secondary.CaseRecord, error) {
	var (
		subcategory, desc    sql.NullString
		createdAt, updatedAt time.Time
		completedAt          sql.NullTime
	)

	r := &secondary.CaseRecord{}
	err := s.Scan(&r.ID, &r.UserID, &r.ClientID, &r.Category, &subcategory, &desc, &r.Status,
		&createdAt, &updatedAt, &completedAt)
	if err != nil {
		return nil, err
	}

	r.Subcategory = subcategory.String
	r.Description = desc.String
	r.CreatedAt = createdAt.Format(time.RFC3339)
	r.UpdatedAt = updatedAt.Format(time.RFC3339)
	r.CompletedAt = formatNullTime(completedAt)
	return r, nil
}

// Create persists a new case.
func (r *CaseRepository) Create(ctx context.Context, c *secondary.CaseRecord) error {
	status := c.Status
	if status == "" {
		status = "open"
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO cases (id, user_id, client_id, category, subcategory, description, status) VALUES (?, ?, ?, ?, ?, ?, ?)",
		c.ID, c.UserID, c.ClientID, c.Category, nullString(c.Subcategory), nullString(c.Description), status,
	)
	if err != nil {
		return createErr("case", c.ID, err)
	}
	return nil
}

// GetByID retrieves a case by its ID.
func (r *CaseRepository) GetByID(ctx context.Context, userID, id string) (*secondary.CaseRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+caseSelectCols+" FROM cases WHERE id = ? AND user_id = ?",
		id, userID,
	)

	record, err := scanCase(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("case %s %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get case: %w", err)
	}
	return record, nil
}

// List retrieves cases matching the given filters, newest first.
func (r *CaseRepository) List(ctx context.Context, filters secondary.CaseFilters) ([]*secondary.CaseRecord, error) {
	query := "SELECT " + caseSelectCols + " FROM cases WHERE user_id = ?"
	args := []any{filters.UserID}

	if filters.ClientID != "" {
		query += " AND client_id = ?"
		args = append(args, filters.ClientID)
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.Category != "" {
		query += " AND category = ?"
		args = append(args, filters.Category)
	}

	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	defer rows.Close()

	var cases []*secondary.CaseRecord
	for rows.Next() {
		record, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan case: %w", err)
		}
		cases = append(cases, record)
	}
	return cases, rows.Err()
}

// Update overwrites category, subcategory and description.
func (r *CaseRepository) Update(ctx context.Context, c *secondary.CaseRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE cases SET category = ?, subcategory = ?, description = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?",
		c.Category, nullString(c.Subcategory), nullString(c.Description), c.ID, c.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update case: %w", err)
	}
	return requireRow(result, "case", c.ID)
}

// UpdateStatus changes the status, setting or clearing completed_at.
func (r *CaseRepository) UpdateStatus(ctx context.Context, userID, id, status string) error {
	query := "UPDATE cases SET status = ?, updated_at = CURRENT_TIMESTAMP"
	if status == "completed" {
		query += ", completed_at = CURRENT_TIMESTAMP"
	} else {
		query += ", completed_at = NULL"
	}
	query += " WHERE id = ? AND user_id = ?"

	result, err := r.db.ExecContext(ctx, query, status, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update case status: %w", err)
	}
	return requireRow(result, "case", id)
}

// Delete removes a case from persistence.
func (r *CaseRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM cases WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete case: %w", err)
	}
	return requireRow(result, "case", id)
}

// GetNextID returns the next available case ID.
func (r *CaseRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM cases",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next case ID: %w", err)
	}
	return fmt.Sprintf("CASE-%03d", maxID+1), nil
}

// CountByStatus returns case counts keyed by status.
func (r *CaseRepository) CountByStatus(ctx context.Context, userID string) (map[string]int, error) {
	return countByStatus(ctx, r.db, "cases", userID)
}

// ClientExists checks if a client exists (for validation).
func (r *CaseRepository) ClientExists(ctx context.Context, userID, clientID string) (bool, error) {
	ok, err := exists(ctx, r.db, "SELECT COUNT(*) FROM clients WHERE id = ? AND user_id = ?", clientID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check client existence: %w", err)
	}
	return ok, nil
}

// countByStatus groups a user-owned table by status. table is never user input.
func countByStatus(ctx context.Context, db *sql.DB, table, userID string) (map[string]int, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM "+table+" WHERE user_id = ? GROUP BY status",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", table, err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan %s count: %w", table, err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
