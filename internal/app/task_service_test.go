package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockTaskRepository implements secondary.TaskRepository for testing.
type mockTaskRepository struct {
	tasks         map[string]*secondary.TaskRecord
	caseExists    bool
	clientExists  bool
	statusUpdates map[string]string
}

var _ secondary.TaskRepository = (*mockTaskRepository)(nil)

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{
		tasks:         make(map[string]*secondary.TaskRecord),
		caseExists:    true,
		clientExists:  true,
		statusUpdates: make(map[string]string),
	}
}

func (m *mockTaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) error {
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepository) GetByID(ctx context.Context, userID, id string) (*secondary.TaskRecord, error) {
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return nil, notFound("task", id)
	}
	return t, nil
}

func (m *mockTaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	var out []*secondary.TaskRecord
	for _, t := range m.tasks {
		if t.UserID != filters.UserID {
			continue
		}
		if filters.Status != "" && t.Status != filters.Status {
			continue
		}
		if filters.CaseID != "" && t.CaseID != filters.CaseID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *mockTaskRepository) Update(ctx context.Context, task *secondary.TaskRecord) error {
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepository) UpdateStatus(ctx context.Context, userID, id, status string) error {
	t, err := m.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	t.Status = status
	m.statusUpdates[id] = status
	return nil
}

func (m *mockTaskRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := m.GetByID(ctx, userID, id); err != nil {
		return err
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID("TASK", len(m.tasks)), nil
}

func (m *mockTaskRepository) CountByStatus(ctx context.Context, userID string) (map[string]int, error) {
	counts := map[string]int{}
	for _, t := range m.tasks {
		if t.UserID == userID {
			counts[t.Status]++
		}
	}
	return counts, nil
}

func (m *mockTaskRepository) CaseExists(ctx context.Context, userID, caseID string) (bool, error) {
	return m.caseExists, nil
}

func (m *mockTaskRepository) ClientExists(ctx context.Context, userID, clientID string) (bool, error) {
	return m.clientExists, nil
}

func newTestTaskService(now time.Time) (*TaskServiceImpl, *mockTaskRepository) {
	repo := newMockTaskRepository()
	service := NewTaskService(repo)
	service.now = func() time.Time { return now }
	return service, repo
}

// ============================================================================
// CreateTask Tests
// ============================================================================

func TestCreateTask_Success(t *testing.T) {
	service, repo := newTestTaskService(time.Now())

	task, err := service.CreateTask(userCtx(), primary.CreateTaskRequest{
		CaseID:  "CASE-001",
		Title:   "Protocolar petição",
		DueDate: "2026-03-10",
	})

	require.NoError(t, err)
	assert.Equal(t, "TASK-001", task.ID)
	assert.Equal(t, "in-progress", task.Status)
	assert.Equal(t, "Em Andamento", task.StatusLabel)
	assert.Equal(t, "2026-03-10T23:59:59Z", task.DueDate)
	assert.Equal(t, "CASE-001", repo.tasks["TASK-001"].CaseID)
}

func TestCreateTask_RFC3339DueDateIsNormalized(t *testing.T) {
	service, _ := newTestTaskService(time.Now())

	task, err := service.CreateTask(userCtx(), primary.CreateTaskRequest{
		Title:   "Audiência",
		DueDate: "2026-03-10T14:00:00-03:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-03-10T17:00:00Z", task.DueDate)
}

func TestCreateTask_InvalidDueDate(t *testing.T) {
	service, repo := newTestTaskService(time.Now())

	_, err := service.CreateTask(userCtx(), primary.CreateTaskRequest{Title: "x", DueDate: "10/03/2026"})

	v, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, v.Fields, "dueDate")
	assert.Empty(t, repo.tasks)
}

func TestCreateTask_Guards(t *testing.T) {
	tests := []struct {
		name         string
		req          primary.CreateTaskRequest
		caseExists   bool
		clientExists bool
	}{
		{"blank title", primary.CreateTaskRequest{Title: "  "}, true, true},
		{"missing case", primary.CreateTaskRequest{Title: "x", CaseID: "CASE-404"}, false, true},
		{"missing client", primary.CreateTaskRequest{Title: "x", ClientID: "CLIENT-404"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestTaskService(time.Now())
			repo.caseExists = tt.caseExists
			repo.clientExists = tt.clientExists

			_, err := service.CreateTask(userCtx(), tt.req)

			assert.True(t, apperr.IsGuard(err), "got %v", err)
			assert.Empty(t, repo.tasks)
		})
	}
}

// ============================================================================
// Status Tests
// ============================================================================

func TestMarkOverdue(t *testing.T) {
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	service, repo := newTestTaskService(now)
	add := func(id, status, due string) {
		repo.tasks[id] = &secondary.TaskRecord{ID: id, UserID: testUserID, Title: id, Status: status, DueDate: due}
	}
	add("TASK-001", "in-progress", "2026-03-10T23:59:59Z")
	add("TASK-002", "in-progress", "2026-03-11T23:59:59Z")
	add("TASK-003", "completed", "2026-03-01T23:59:59Z")
	add("TASK-004", "in-progress", "")
	add("TASK-005", "in-progress", "not a date")

	n, err := service.MarkOverdue(userCtx())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, map[string]string{"TASK-001": "delayed"}, repo.statusUpdates)
	assert.Equal(t, "completed", repo.tasks["TASK-003"].Status)
}

func TestCompleteAndResumeTask(t *testing.T) {
	service, repo := newTestTaskService(time.Now())
	repo.tasks["TASK-001"] = &secondary.TaskRecord{ID: "TASK-001", UserID: testUserID, Status: "delayed"}
	ctx := userCtx()

	require.NoError(t, service.ResumeTask(ctx, "TASK-001"))
	assert.Equal(t, "in-progress", repo.tasks["TASK-001"].Status)

	assert.True(t, apperr.IsGuard(service.ResumeTask(ctx, "TASK-001")))

	require.NoError(t, service.CompleteTask(ctx, "TASK-001"))
	assert.Equal(t, "completed", repo.tasks["TASK-001"].Status)

	assert.True(t, apperr.IsGuard(service.CompleteTask(ctx, "TASK-001")))
}

func strPtr(s string) *string { return &s }

func TestUpdateTask(t *testing.T) {
	tests := []struct {
		name     string
		req      primary.UpdateTaskRequest
		wantErr  bool
		wantTask primary.Task
	}{
		{
			name:     "nil fields are kept",
			req:      primary.UpdateTaskRequest{Title: strPtr("New")},
			wantTask: primary.Task{Title: "New", Description: "keep", DueDate: "2026-03-10T23:59:59Z"},
		},
		{
			name:     "empty description clears it",
			req:      primary.UpdateTaskRequest{Description: strPtr("")},
			wantTask: primary.Task{Title: "Old", Description: "", DueDate: "2026-03-10T23:59:59Z"},
		},
		{
			name:     "empty due date clears it",
			req:      primary.UpdateTaskRequest{DueDate: strPtr("")},
			wantTask: primary.Task{Title: "Old", Description: "keep"},
		},
		{
			name:    "blank title is rejected",
			req:     primary.UpdateTaskRequest{Title: strPtr("  ")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestTaskService(time.Now())
			repo.tasks["TASK-001"] = &secondary.TaskRecord{
				ID: "TASK-001", UserID: testUserID, Title: "Old", Description: "keep",
				DueDate: "2026-03-10T23:59:59Z", Status: "in-progress",
			}
			tt.req.TaskID = "TASK-001"

			got, err := service.UpdateTask(userCtx(), tt.req)

			if tt.wantErr {
				_, ok := apperr.AsValidation(err)
				assert.True(t, ok)
				assert.Equal(t, "Old", repo.tasks["TASK-001"].Title)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTask.Title, got.Title)
			assert.Equal(t, tt.wantTask.Description, got.Description)
			assert.Equal(t, tt.wantTask.DueDate, got.DueDate)
		})
	}
}

func TestDeleteTask_NotFound(t *testing.T) {
	service, _ := newTestTaskService(time.Now())

	err := service.DeleteTask(userCtx(), "TASK-999")

	assert.True(t, apperr.IsNotFound(err))
}
