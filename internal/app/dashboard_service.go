package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/ports/secondary"
)

// recentProcessLimit is how many processes the dashboard lists.
const recentProcessLimit = 5

// DashboardServiceImpl implements the DashboardService interface.
type DashboardServiceImpl struct {
	clientRepo  secondary.ClientRepository
	caseRepo    secondary.CaseRepository
	taskRepo    secondary.TaskRepository
	processRepo secondary.JudicialProcessRepository
}

// NewDashboardService creates a new DashboardService with injected dependencies.
func NewDashboardService(
	clientRepo secondary.ClientRepository,
	caseRepo secondary.CaseRepository,
	taskRepo secondary.TaskRepository,
	processRepo secondary.JudicialProcessRepository,
) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		clientRepo:  clientRepo,
		caseRepo:    caseRepo,
		taskRepo:    taskRepo,
		processRepo: processRepo,
	}
}

var _ primary.DashboardService = (*DashboardServiceImpl)(nil)

// GetDashboard collects totals, status breakdowns and recent processes. The
// queries run concurrently; the first failure cancels the rest.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*primary.Dashboard, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var (
		clients, processes int
		cases, tasks       map[string]int
		recent             []*secondary.JudicialProcessRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		clients, err = s.clientRepo.Count(gctx, userID)
		return wrap(err, "count clients")
	})
	g.Go(func() (err error) {
		cases, err = s.caseRepo.CountByStatus(gctx, userID)
		return wrap(err, "count cases")
	})
	g.Go(func() (err error) {
		tasks, err = s.taskRepo.CountByStatus(gctx, userID)
		return wrap(err, "count tasks")
	})
	g.Go(func() (err error) {
		processes, err = s.processRepo.Count(gctx, userID)
		return wrap(err, "count processes")
	})
	g.Go(func() (err error) {
		recent, err = s.processRepo.List(gctx, secondary.JudicialProcessFilters{UserID: userID, Limit: recentProcessLimit})
		return wrap(err, "list recent processes")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &primary.Dashboard{
		TotalClients:    clients,
		TotalCases:      sum(cases),
		TotalTasks:      sum(tasks),
		TotalProcesses:  processes,
		CasesByStatus:   cases,
		TasksByStatus:   tasks,
		RecentProcesses: make([]*primary.JudicialProcess, len(recent)),
	}
	for i, r := range recent {
		d.RecentProcesses[i] = recordToProcess(r)
	}
	return d, nil
}

func wrap(err error, op string) error {
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	return nil
}

func sum(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

// AccountServiceImpl implements the AccountService interface.
type AccountServiceImpl struct {
	countRepo secondary.CountRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(countRepo secondary.CountRepository) *AccountServiceImpl {
	return &AccountServiceImpl{countRepo: countRepo}
}

var _ primary.AccountService = (*AccountServiceImpl)(nil)

// DebugCounts returns the number of rows the user owns per table.
func (s *AccountServiceImpl) DebugCounts(ctx context.Context) (*primary.AccountCounts, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.countRepo.CountAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}
	return &primary.AccountCounts{UserID: userID, Counts: counts}, nil
}
