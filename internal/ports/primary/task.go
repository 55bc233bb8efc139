package primary

import "context"

// TaskService defines the primary port for task operations.
type TaskService interface {
	// CreateTask creates a new task.
	CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error)

	// GetTask retrieves a task by ID.
	GetTask(ctx context.Context, taskID string) (*Task, error)

	// ListTasks lists tasks with optional filters.
	ListTasks(ctx context.Context, filters TaskFilters) ([]*Task, error)

	// UpdateTask updates a task's title, description and/or due date.
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*Task, error)

	// CompleteTask marks a task as completed.
	CompleteTask(ctx context.Context, taskID string) error

	// MarkOverdue moves past-due in-progress tasks to delayed and returns
	// how many changed.
	MarkOverdue(ctx context.Context) (int, error)

	// ResumeTask moves a delayed task back to in-progress.
	ResumeTask(ctx context.Context, taskID string) error

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, taskID string) error
}

// CreateTaskRequest contains parameters for creating a task.
type CreateTaskRequest struct {
	CaseID      string `json:"caseId,omitempty"`   // Optional
	ClientID    string `json:"clientId,omitempty"` // Optional
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty"` // YYYY-MM-DD or RFC3339
}

// UpdateTaskRequest contains parameters for updating a task.
// Nil fields are left unchanged; an empty Description or DueDate clears it.
type UpdateTaskRequest struct {
	TaskID      string  `json:"-"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
}

// Task represents a task entity at the port boundary.
type Task struct {
	ID          string `json:"id"`
	CaseID      string `json:"caseId,omitempty"`
	ClientID    string `json:"clientId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
	CompletedAt string `json:"completedAt,omitempty"`
}

// TaskFilters contains filter options for listing tasks.
type TaskFilters struct {
	Status   string
	CaseID   string
	ClientID string
}
