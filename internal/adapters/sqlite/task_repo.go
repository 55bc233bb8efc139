package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/ports/secondary"
)

// TaskRepository implements secondary.TaskRepository with SQLite.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite task repository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

var _ secondary.TaskRepository = (*TaskRepository)(nil)

// scanTask scans a task row into a TaskRecord.
func scanTask(s scanner) (*secondary.TaskRecord, error) {
	var (
		caseID, clientID, desc sql.NullString
		dueDate                sql.NullTime
		createdAt, updatedAt   time.Time
		completedAt            sql.NullTime
	)

	record := &secondary.TaskRecord{}
	err := s.Scan(
		&record.ID, &record.UserID, &caseID, &clientID, &record.Title, &desc,
		&dueDate, &record.Status, &createdAt, &updatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	record.CaseID = caseID.String
	record.ClientID = clientID.String
	record.Description = desc.String
	record.DueDate = formatNullTime(dueDate)
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	record.CompletedAt = formatNullTime(completedAt)
	return record, nil
}

const taskSelectCols = "id, user_id, case_id, client_id, title, description, due_date, status, created_at, updated_at, completed_at"

// Create persists a new task.
func (r *TaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) error {
	status := task.Status
	if status == "" {
		status = "in-progress"
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tasks (id, user_id, case_id, client_id, title, description, due_date, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		task.ID, task.UserID, nullString(task.CaseID), nullString(task.ClientID), task.Title,
		nullString(task.Description), nullTime(task.DueDate), status,
	)
	if err != nil {
		return createErr("task", task.ID, err)
	}
	return nil
}

// GetByID retrieves a task by its ID.
func (r *TaskRepository) GetByID(ctx context.Context, userID, id string) (*secondary.TaskRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskSelectCols+" FROM tasks WHERE id = ? AND user_id = ?",
		id, userID,
	)

	record, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %s %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return record, nil
}

// List retrieves tasks matching the given filters. Tasks without a due date sort last.
func (r *TaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	query := "SELECT " + taskSelectCols + " FROM tasks WHERE user_id = ?"
	args := []any{filters.UserID}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.CaseID != "" {
		query += " AND case_id = ?"
		args = append(args, filters.CaseID)
	}
	if filters.ClientID != "" {
		query += " AND client_id = ?"
		args = append(args, filters.ClientID)
	}

	query += " ORDER BY due_date IS NULL, due_date ASC, created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*secondary.TaskRecord
	for rows.Next() {
		record, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, record)
	}
	return tasks, rows.Err()
}

// Update overwrites the editable fields of a task.
func (r *TaskRepository) Update(ctx context.Context, task *secondary.TaskRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, due_date = ?, case_id = ?, client_id = ?,
			updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		task.Title, nullString(task.Description), nullTime(task.DueDate),
		nullString(task.CaseID), nullString(task.ClientID), task.ID, task.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireRow(result, "task", task.ID)
}

// UpdateStatus changes the status, setting or clearing completed_at.
func (r *TaskRepository) UpdateStatus(ctx context.Context, userID, id, status string) error {
	query := "UPDATE tasks SET status = ?, updated_at = CURRENT_TIMESTAMP"
	if status == "completed" {
		query += ", completed_at = CURRENT_TIMESTAMP"
	} else {
		query += ", completed_at = NULL"
	}
	query += " WHERE id = ? AND user_id = ?"

	result, err := r.db.ExecContext(ctx, query, status, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	return requireRow(result, "task", id)
}

// Delete removes a task from persistence.
func (r *TaskRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireRow(result, "task", id)
}

// GetNextID returns the next available task ID.
func (r *TaskRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM tasks",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next task ID: %w", err)
	}
	return fmt.Sprintf("TASK-%03d", maxID+1), nil
}

// CountByStatus returns task counts keyed by status.
func (r *TaskRepository) CountByStatus(ctx context.Context, userID string) (map[string]int, error) {
	return countByStatus(ctx, r.db, "tasks", userID)
}

// CaseExists checks if a case exists (for validation).
func (r *TaskRepository) CaseExists(ctx context.Context, userID, caseID string) (bool, error) {
	ok, err := exists(ctx, r.db, "SELECT COUNT(*) FROM cases WHERE id = ? AND user_id = ?", caseID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check case existence: %w", err)
	}
	return ok, nil
}

// ClientExists checks if a client exists (for validation).
func (r *TaskRepository) ClientExists(ctx context.Context, userID, clientID string) (bool, error) {
	ok, err := exists(ctx, r.db, "SELECT COUNT(*) FROM clients WHERE id = ? AND user_id = ?", clientID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check client existence: %w", err)
	}
	return ok, nil
}
