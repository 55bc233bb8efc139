package primary

import "context"

// DashboardService defines the primary port for the dashboard summary.
type DashboardService interface {
	// GetDashboard collects totals, status breakdowns and recent processes.
	GetDashboard(ctx context.Context) (*Dashboard, error)
}

// AccountService defines the primary port for account diagnostics.
type AccountService interface {
	// DebugCounts returns the number of rows the user owns per table.
	DebugCounts(ctx context.Context) (*AccountCounts, error)
}

// Dashboard is the dashboard summary.
type Dashboard struct {
	TotalClients    int                `json:"totalClients"`
	TotalCases      int                `json:"totalCases"`
	TotalTasks      int                `json:"totalTasks"`
	TotalProcesses  int                `json:"totalProcesses"`
	CasesByStatus   map[string]int     `json:"casesByStatus"`
	TasksByStatus   map[string]int     `json:"tasksByStatus"`
	RecentProcesses []*JudicialProcess `json:"recentProcesses"`
}

// AccountCounts are per-table row counts of one user.
type AccountCounts struct {
	UserID string         `json:"userId"`
	Counts map[string]int `json:"counts"`
}
