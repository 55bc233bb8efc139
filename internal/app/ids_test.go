package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/ports/secondary"
)

func TestInsertWithNextID(t *testing.T) {
	errDisk := errors.New("disk full")
	taken := fmt.Errorf("task TASK-001: %w", apperr.ErrIDTaken)

	tests := []struct {
		name      string
		results   []error
		nextErr   error
		wantID    string
		wantErr   error
		wantCalls int
	}{
		{name: "first ID free", results: []error{nil}, wantID: "ID-1", wantCalls: 1},
		{name: "taken once", results: []error{taken, nil}, wantID: "ID-2", wantCalls: 2},
		{name: "other insert error is not retried", results: []error{errDisk}, wantErr: errDisk, wantCalls: 1},
		{name: "gives up", results: []error{taken, taken, taken, taken, taken, nil}, wantErr: apperr.ErrIDTaken, wantCalls: maxIDAttempts},
		{name: "allocation fails", nextErr: errDisk, wantErr: errDisk, wantCalls: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allocated, calls := 0, 0
			next := func(ctx context.Context) (string, error) {
				if tt.nextErr != nil {
					return "", tt.nextErr
				}
				allocated++
				return fmt.Sprintf("ID-%d", allocated), nil
			}
			insert := func(id string) error {
				err := tt.results[calls]
				calls++
				return err
			}

			id, err := insertWithNextID(context.Background(), next, insert)

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

// racingTaskRepository lets another writer claim the first ID it hands out.
type racingTaskRepository struct {
	*mockTaskRepository
	raced bool
}

func (r *racingTaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) error {
	if !r.raced {
		r.raced = true
		r.tasks[task.ID] = &secondary.TaskRecord{ID: task.ID, UserID: "user-9", Title: "other"}
		return fmt.Errorf("task %s: %w", task.ID, apperr.ErrIDTaken)
	}
	return r.mockTaskRepository.Create(ctx, task)
}

func TestCreateTask_RetriesWhenIDIsTaken(t *testing.T) {
	repo := &racingTaskRepository{mockTaskRepository: newMockTaskRepository()}
	service := NewTaskService(repo)

	created, err := service.CreateTask(userCtx(), primary.CreateTaskRequest{Title: "Protocolar petição"})

	require.NoError(t, err)
	assert.Equal(t, "TASK-002", created.ID)
	assert.Equal(t, "other", repo.tasks["TASK-001"].Title)
	assert.Equal(t, "Protocolar petição", repo.tasks["TASK-002"].Title)
}
