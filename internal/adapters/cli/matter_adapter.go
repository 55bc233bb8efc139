package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/praxis/internal/ports/primary"
)

// MatterAdapter prints cases, tasks and judicial processes.
type MatterAdapter struct {
	cases     primary.CaseService
	tasks     primary.TaskService
	processes primary.JudicialProcessService
	out       io.Writer
}

// NewMatterAdapter creates a new MatterAdapter.
func NewMatterAdapter(cases primary.CaseService, tasks primary.TaskService, processes primary.JudicialProcessService, out io.Writer) *MatterAdapter {
	return &MatterAdapter{cases: cases, tasks: tasks, processes: processes, out: out}
}

// ListCases prints cases as a table.
func (a *MatterAdapter) ListCases(ctx context.Context, filters primary.CaseFilters) ([]*primary.Case, error) {
	cases, err := a.cases.ListCases(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	if len(cases) == 0 {
		fmt.Fprintln(a.out, "No cases found.")
		return cases, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tCLIENT\tCATEGORY\tSUBCATEGORY\tSTATUS\tOPENED")
	fmt.Fprintln(w, "--\t------\t--------\t-----------\t------\t------")
	for _, c := range cases {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.ClientID, c.CategoryLabel, orDash(c.SubcategoryLabel),
			statusBadge(c.Status, c.StatusLabel), shortDate(c.CreatedAt))
	}
	w.Flush()
	return cases, nil
}

// ShowCase prints one case.
func (a *MatterAdapter) ShowCase(ctx context.Context, caseID string) (*primary.Case, error) {
	c, err := a.cases.GetCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get case: %w", err)
	}
	fmt.Fprintf(a.out, "\nCase: %s\n", c.ID)
	fmt.Fprintf(a.out, "Client:      %s\n", c.ClientID)
	fmt.Fprintf(a.out, "Category:    %s\n", c.CategoryLabel)
	fmt.Fprintf(a.out, "Subcategory: %s\n", orDash(c.SubcategoryLabel))
	fmt.Fprintf(a.out, "Status:      %s\n", statusBadge(c.Status, c.StatusLabel))
	if c.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", c.Description)
	}
	fmt.Fprintf(a.out, "Opened:      %s\n", shortDate(c.CreatedAt))
	if c.CompletedAt != "" {
		fmt.Fprintf(a.out, "Completed:   %s\n", shortDate(c.CompletedAt))
	}
	fmt.Fprintln(a.out)
	return c, nil
}

// ListTasks prints tasks as a table.
func (a *MatterAdapter) ListTasks(ctx context.Context, filters primary.TaskFilters) ([]*primary.Task, error) {
	tasks, err := a.tasks.ListTasks(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks found.")
		return tasks, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCASE\tDUE\tSTATUS")
	fmt.Fprintln(w, "--\t-----\t----\t---\t------")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Title, orDash(t.CaseID), orDash(shortDate(t.DueDate)), statusBadge(t.Status, t.StatusLabel))
	}
	w.Flush()
	return tasks, nil
}

// MarkOverdue delays past-due tasks and reports how many changed.
func (a *MatterAdapter) MarkOverdue(ctx context.Context) (int, error) {
	n, err := a.tasks.MarkOverdue(ctx)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		fmt.Fprintln(a.out, "No overdue tasks.")
		return 0, nil
	}
	fmt.Fprintf(a.out, "✓ %s task(s) marked as %s\n", yellow.Sprint(n), statusBadge("delayed", "delayed"))
	return n, nil
}

// ListProcesses prints judicial processes with formatted CNJ numbers.
func (a *MatterAdapter) ListProcesses(ctx context.Context, filters primary.JudicialProcessFilters) ([]*primary.JudicialProcess, error) {
	processes, err := a.processes.ListProcesses(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	if len(processes) == 0 {
		fmt.Fprintln(a.out, "No judicial processes found.")
		return processes, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tCLIENT\tTRIBUNAL\tUPDATED")
	fmt.Fprintln(w, "--\t------\t------\t--------\t-------")
	for _, p := range processes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.FormattedNumber, p.ClientID, orDash(p.Tribunal), shortDate(p.UpdatedAt))
	}
	w.Flush()
	return processes, nil
}
