package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/praxis/internal/ports/secondary"
)

type failingCaseRepository struct {
	*mockCaseRepository
}

func (f failingCaseRepository) CountByStatus(ctx context.Context, userID string) (map[string]int, error) {
	return nil, errors.New("database is locked")
}

type stubCountRepository map[string]int

func (s stubCountRepository) CountAll(ctx context.Context, userID string) (map[string]int, error) {
	return s, nil
}

func TestGetDashboard(t *testing.T) {
	clients := newMockClientRepository()
	cases := newMockCaseRepository()
	tasks := newMockTaskRepository()
	processes := newMockJudicialProcessRepository()

	clients.clients["CLIENT-001"] = &secondary.ClientRecord{ID: "CLIENT-001", UserID: testUserID}
	clients.clients["CLIENT-002"] = &secondary.ClientRecord{ID: "CLIENT-002", UserID: "user-2"}
	cases.cases["CASE-001"] = &secondary.CaseRecord{ID: "CASE-001", UserID: testUserID, Status: "open"}
	cases.cases["CASE-002"] = &secondary.CaseRecord{ID: "CASE-002", UserID: testUserID, Status: "completed"}
	cases.cases["CASE-003"] = &secondary.CaseRecord{ID: "CASE-003", UserID: testUserID, Status: "open"}
	tasks.tasks["TASK-001"] = &secondary.TaskRecord{ID: "TASK-001", UserID: testUserID, Status: "delayed"}
	for i := 1; i <= 7; i++ {
		processes.processes = append(processes.processes, &secondary.JudicialProcessRecord{
			ID:            fmt.Sprintf("PROC-%03d", i),
			UserID:        testUserID,
			ProcessNumber: "12345674720238260100",
		})
	}

	service := NewDashboardService(clients, cases, tasks, processes)
	d, err := service.GetDashboard(userCtx())

	require.NoError(t, err)
	assert.Equal(t, 1, d.TotalClients)
	assert.Equal(t, 3, d.TotalCases)
	assert.Equal(t, 1, d.TotalTasks)
	assert.Equal(t, 7, d.TotalProcesses)
	assert.Equal(t, map[string]int{"open": 2, "completed": 1}, d.CasesByStatus)
	assert.Equal(t, map[string]int{"delayed": 1}, d.TasksByStatus)
	assert.Len(t, d.RecentProcesses, recentProcessLimit)
	assert.Equal(t, "1234567-47.2023.8.26.0100", d.RecentProcesses[0].FormattedNumber)
}

func TestGetDashboard_PropagatesFailure(t *testing.T) {
	service := NewDashboardService(
		newMockClientRepository(),
		failingCaseRepository{newMockCaseRepository()},
		newMockTaskRepository(),
		newMockJudicialProcessRepository(),
	)

	_, err := service.GetDashboard(userCtx())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "count cases")
}

func TestDebugCounts(t *testing.T) {
	service := NewAccountService(stubCountRepository{"clients": 3, "templates": 1})

	counts, err := service.DebugCounts(userCtx())

	require.NoError(t, err)
	assert.Equal(t, testUserID, counts.UserID)
	assert.Equal(t, 3, counts.Counts["clients"])
}
