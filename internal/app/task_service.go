package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/core/task"
	"github.com/example/praxis/internal/logger"
	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/ports/secondary"
)

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskRepo secondary.TaskRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService with injected dependencies.
func NewTaskService(taskRepo secondary.TaskRepository) *TaskServiceImpl {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

var _ primary.TaskService = (*TaskServiceImpl)(nil)

// CreateTask creates a new task.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, req primary.CreateTaskRequest) (*primary.Task, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	guardCtx := task.CreateTaskContext{Title: req.Title, CaseID: req.CaseID, ClientID: req.ClientID}
	if req.CaseID != "" {
		if guardCtx.CaseExists, err = s.taskRepo.CaseExists(ctx, userID, req.CaseID); err != nil {
			return nil, fmt.Errorf("failed to validate case: %w", err)
		}
	}
	if req.ClientID != "" {
		if guardCtx.ClientExists, err = s.taskRepo.ClientExists(ctx, userID, req.ClientID); err != nil {
			return nil, fmt.Errorf("failed to validate client: %w", err)
		}
	}
	if r := task.CanCreateTask(guardCtx); !r.Allowed {
		return nil, apperr.Guard(r.Reason)
	}

	record := &secondary.TaskRecord{
		UserID:      userID,
		CaseID:      req.CaseID,
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Status:      string(task.StatusInProgress),
	}
	nextID, err := insertWithNextID(ctx, s.taskRepo.GetNextID, func(id string) error {
		record.ID = id
		return s.taskRepo.Create(ctx, record)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	created, err := s.taskRepo.GetByID(ctx, userID, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created task: %w", err)
	}
	return recordToTask(created), nil
}

// GetTask retrieves a task by ID.
func (s *TaskServiceImpl) GetTask(ctx context.Context, taskID string) (*primary.Task, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	record, err := s.taskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	return recordToTask(record), nil
}

// ListTasks lists tasks with optional filters.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, filters primary.TaskFilters) ([]*primary.Task, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.taskRepo.List(ctx, secondary.TaskFilters{
		UserID:   userID,
		Status:   filters.Status,
		CaseID:   filters.CaseID,
		ClientID: filters.ClientID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*primary.Task, len(records))
	for i, r := range records {
		tasks[i] = recordToTask(r)
	}
	return tasks, nil
}

// UpdateTask updates a task's title, description and/or due date. The title
// cannot be cleared.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, req primary.UpdateTaskRequest) (*primary.Task, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	record, err := s.taskRepo.GetByID(ctx, userID, req.TaskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperr.Field("title", "task title is required")
		}
		record.Title = *req.Title
	}
	if req.Description != nil {
		record.Description = *req.Description
	}
	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		record.DueDate = due
	}

	if err := s.taskRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	updated, err := s.taskRepo.GetByID(ctx, userID, req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated task: %w", err)
	}
	return recordToTask(updated), nil
}

// CompleteTask marks a task as completed.
func (s *TaskServiceImpl) CompleteTask(ctx context.Context, taskID string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	record, err := s.taskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if r := task.CanCompleteTask(task.StatusTransitionContext{TaskID: taskID, Status: task.Status(record.Status)}); !r.Allowed {
		return apperr.Guard(r.Reason)
	}
	return s.taskRepo.UpdateStatus(ctx, userID, taskID, string(task.StatusCompleted))
}

// MarkOverdue moves past-due in-progress tasks to delayed and returns how
// many changed. Completed tasks never change.
func (s *TaskServiceImpl) MarkOverdue(ctx context.Context) (int, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return 0, err
	}
	records, err := s.taskRepo.List(ctx, secondary.TaskFilters{UserID: userID, Status: string(task.StatusInProgress)})
	if err != nil {
		return 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	now := s.now()
	changed := 0
	for _, r := range records {
		if r.DueDate == "" {
			continue
		}
		due, err := time.Parse(time.RFC3339, r.DueDate)
		if err != nil {
			logger.From(ctx).Warn("skipping task with unparsable due date", logger.Entity(r.ID), zap.String("due_date", r.DueDate))
			continue
		}
		if !task.IsOverdue(task.Status(r.Status), due, now) {
			continue
		}
		if err := s.taskRepo.UpdateStatus(ctx, userID, r.ID, string(task.StatusDelayed)); err != nil {
			return changed, fmt.Errorf("failed to mark task %s delayed: %w", r.ID, err)
		}
		changed++
	}

	if changed > 0 {
		logger.From(ctx).Info("marked overdue tasks", logger.UserID(userID), zap.Int("count", changed))
	}
	return changed, nil
}

// ResumeTask moves a delayed task back to in-progress.
func (s *TaskServiceImpl) ResumeTask(ctx context.Context, taskID string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	record, err := s.taskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if r := task.CanResumeTask(task.StatusTransitionContext{TaskID: taskID, Status: task.Status(record.Status)}); !r.Allowed {
		return apperr.Guard(r.Reason)
	}
	return s.taskRepo.UpdateStatus(ctx, userID, taskID, string(task.StatusInProgress))
}

// DeleteTask deletes a task.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, taskID string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, userID, taskID)
}

// parseDueDate accepts YYYY-MM-DD (end of that day, UTC) or RFC3339 and
// returns RFC3339. Empty input stays empty.
func parseDueDate(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}
	d, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return "", apperr.Field("dueDate", "Data inválida (use AAAA-MM-DD)")
	}
	return d.Add(24*time.Hour - time.Second).Format(time.RFC3339), nil
}

func recordToTask(r *secondary.TaskRecord) *primary.Task {
	return &primary.Task{
		ID:          r.ID,
		CaseID:      r.CaseID,
		ClientID:    r.ClientID,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Status:      r.Status,
		StatusLabel: task.StatusLabel(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		CompletedAt: r.CompletedAt,
	}
}
