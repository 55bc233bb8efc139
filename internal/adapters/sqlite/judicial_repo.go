package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/ports/secondary"
)

// JudicialProcessRepository implements secondary.JudicialProcessRepository with SQLite.
type JudicialProcessRepository struct {
	db *sql.DB
}

// NewJudicialProcessRepository creates a new SQLite judicial process repository.
func NewJudicialProcessRepository(db *sql.DB) *JudicialProcessRepository {
	return &JudicialProcessRepository{db: db}
}

var _ secondary.JudicialProcessRepository = (*JudicialProcessRepository)(nil)

const processSelectCols = "id, user_id, client_id, process_number, tribunal, description, registration_date, created_at, updated_at"

func scanProcess(s scanner) (*secondary.JudicialProcessRecord, error) {
	var (
		tribunal, desc, regDate sql.NullString
		createdAt, updatedAt    time.Time
	)

	r := &secondary.JudicialProcessRecord{}
	err := s.Scan(&r.ID, &r.UserID, &r.ClientID, &r.ProcessNumber, &tribunal, &desc, &regDate, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	r.Tribunal = tribunal.String
	r.Description = desc.String
	r.RegistrationDate = regDate.String
	r.CreatedAt = createdAt.Format(time.RFC3339)
	r.UpdatedAt = updatedAt.Format(time.RFC3339)
	return r, nil
}

// Create persists a new judicial process. A duplicate number for the same
// user returns apperr.ErrConflict.
func (r *JudicialProcessRepository) Create(ctx context.Context, p *secondary.JudicialProcessRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO judicial_processes (id, user_id, client_id, process_number, tribunal, description, registration_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.ClientID, p.ProcessNumber, nullString(p.Tribunal), nullString(p.Description), nullString(p.RegistrationDate),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("process %s: %w", p.ProcessNumber, apperr.ErrConflict)
		}
		return createErr("judicial process", p.ID, err)
	}
	return nil
}

// GetByID retrieves a process by its ID.
func (r *JudicialProcessRepository) GetByID(ctx context.Context, userID, id string) (*secondary.JudicialProcessRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+processSelectCols+" FROM judicial_processes WHERE id = ? AND user_id = ?",
		id, userID,
	)

	record, err := scanProcess(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("process %s %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get judicial process: %w", err)
	}
	return record, nil
}

// List retrieves processes matching the filters, most recently updated first.
func (r *JudicialProcessRepository) List(ctx context.Context, filters secondary.JudicialProcessFilters) ([]*secondary.JudicialProcessRecord, error) {
	query := "SELECT " + processSelectCols + " FROM judicial_processes WHERE user_id = ?"
	args := []any{filters.UserID}

	if filters.ClientID != "" {
		query += " AND client_id = ?"
		args = append(args, filters.ClientID)
	}
	if filters.Tribunal != "" {
		query += " AND tribunal = ?"
		args = append(args, filters.Tribunal)
	}

	query += " ORDER BY updated_at DESC, id DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list judicial processes: %w", err)
	}
	defer rows.Close()

	var processes []*secondary.JudicialProcessRecord
	for rows.Next() {
		record, err := scanProcess(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan judicial process: %w", err)
		}
		processes = append(processes, record)
	}
	return processes, rows.Err()
}

// Delete removes a process from persistence.
func (r *JudicialProcessRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM judicial_processes WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete judicial process: %w", err)
	}
	return requireRow(result, "process", id)
}

// GetNextID returns the next available process ID.
func (r *JudicialProcessRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM judicial_processes",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next process ID: %w", err)
	}
	return fmt.Sprintf("PROC-%03d", maxID+1), nil
}

// Tribunals returns the distinct non-empty tribunals, sorted.
func (r *JudicialProcessRepository) Tribunals(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT tribunal FROM judicial_processes WHERE user_id = ? AND tribunal IS NOT NULL AND tribunal != '' ORDER BY tribunal",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tribunals: %w", err)
	}
	defer rows.Close()

	var tribunals []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan tribunal: %w", err)
		}
		tribunals = append(tribunals, t)
	}
	return tribunals, rows.Err()
}

// Count returns the number of processes owned by the user.
func (r *JudicialProcessRepository) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM judicial_processes WHERE user_id = ?", userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count judicial processes: %w", err)
	}
	return n, nil
}

// NumberExists checks whether the user already registered a process number.
func (r *JudicialProcessRepository) NumberExists(ctx context.Context, userID, number string) (bool, error) {
	ok, err := exists(ctx, r.db, "SELECT COUNT(*) FROM judicial_processes WHERE user_id = ? AND process_number = ?", userID, number)
	if err != nil {
		return false, fmt.Errorf("failed to check process number: %w", err)
	}
	return ok, nil
}

// ClientExists checks if a client exists (for validation).
func (r *JudicialProcessRepository) ClientExists(ctx context.Context, userID, clientID string) (bool, error) {
	ok, err := exists(ctx, r.db, "SELECT COUNT(*) FROM clients WHERE id = ? AND user_id = ?", clientID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check client existence: %w", err)
	}
	return ok, nil
}
