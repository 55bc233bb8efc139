package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/example/praxis/internal/ports/primary"
)

// AccountAdapter prints invoices, receipts, the dashboard and account counts.
type AccountAdapter struct {
	billing   primary.BillingService
	dashboard primary.DashboardService
	account   primary.AccountService
	out       io.Writer
}

// NewAccountAdapter creates a new AccountAdapter.
func NewAccountAdapter(billing primary.BillingService, dashboard primary.DashboardService, account primary.AccountService, out io.Writer) *AccountAdapter {
	return &AccountAdapter{billing: billing, dashboard: dashboard, account: account, out: out}
}

// Invoices prints paid invoices, newest first.
func (a *AccountAdapter) Invoices(ctx context.Context) ([]*primary.Invoice, error) {
	invoices, err := a.billing.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if len(invoices) == 0 {
		fmt.Fprintln(a.out, "Nenhuma fatura encontrada.")
		return invoices, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tAMOUNT\tSTATUS\tMETHOD")
	fmt.Fprintln(w, "--\t----\t------\t------\t------")
	for _, inv := range invoices {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			inv.ID, shortDate(inv.CreatedAt), inv.Amount, statusBadge(inv.Status, inv.StatusLabel), orDash(inv.Method))
	}
	w.Flush()
	return invoices, nil
}

// Receipt prints the receipt of a paid invoice.
func (a *AccountAdapter) Receipt(ctx context.Context, paymentID string) error {
	receipt, err := a.billing.GetReceipt(ctx, paymentID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\n%s\n\n", receipt.Title)
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, line := range receipt.Lines {
		fmt.Fprintf(w, "%s\t%s\n", line.Label, line.Value)
	}
	w.Flush()
	fmt.Fprintln(a.out)
	return nil
}

// Dashboard prints totals, status breakdowns and recent processes.
func (a *AccountAdapter) Dashboard(ctx context.Context) (*primary.Dashboard, error) {
	d, err := a.dashboard.GetDashboard(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Clients:   %s\n", humanize.Comma(int64(d.TotalClients)))
	fmt.Fprintf(a.out, "Cases:     %s  %s\n", humanize.Comma(int64(d.TotalCases)), breakdown(d.CasesByStatus))
	fmt.Fprintf(a.out, "Tasks:     %s  %s\n", humanize.Comma(int64(d.TotalTasks)), breakdown(d.TasksByStatus))
	fmt.Fprintf(a.out, "Processes: %s\n", humanize.Comma(int64(d.TotalProcesses)))

	if len(d.RecentProcesses) > 0 {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Recent processes:")
		for _, p := range d.RecentProcesses {
			fmt.Fprintf(a.out, "  %s  %s  %s\n", p.ID, p.FormattedNumber, orDash(p.Tribunal))
		}
	}
	fmt.Fprintln(a.out)
	return d, nil
}

// Counts prints the per-table row counts of the acting user.
func (a *AccountAdapter) Counts(ctx context.Context) (*primary.AccountCounts, error) {
	counts, err := a.account.DebugCounts(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "User: %s\n", counts.UserID)
	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	for _, table := range sortedKeys(counts.Counts) {
		fmt.Fprintf(w, "  %s\t%d\n", table, counts.Counts[table])
	}
	w.Flush()
	return counts, nil
}

// breakdown renders "(open 2, completed 1)" with colored statuses.
func breakdown(m map[string]int) string {
	if len(m) == 0 {
		return ""
	}
	s := "("
	for i, k := range sortedKeys(m) {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s %d", statusBadge(k, k), m[k])
	}
	return s + ")"
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
