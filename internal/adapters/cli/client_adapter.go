package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/praxis/internal/ports/primary"
)

// ClientAdapter translates CLI operations to ClientService calls.
type ClientAdapter struct {
	service primary.ClientService
	out     io.Writer
}

// NewClientAdapter creates a new ClientAdapter with the given service.
func NewClientAdapter(service primary.ClientService, out io.Writer) *ClientAdapter {
	return &ClientAdapter{service: service, out: out}
}

// Create registers a client and prints its id.
func (a *ClientAdapter) Create(ctx context.Context, in primary.ClientInput) (*primary.Client, error) {
	c, err := a.service.CreateClient(ctx, primary.CreateClientRequest{ClientInput: in})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Created client %s: %s\n", c.ID, c.Name)
	return c, nil
}

// List prints clients as a table.
func (a *ClientAdapter) List(ctx context.Context, filters primary.ClientFilters) ([]*primary.Client, error) {
	clients, err := a.service.ListClients(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	if len(clients) == 0 {
		fmt.Fprintln(a.out, "No clients found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Register your first client:")
		fmt.Fprintln(a.out, `  praxis client create "Maria Souza" --category social-security --cpf 529.982.247-25`)
		return clients, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tCPF\tPHONE\tSTATUS")
	fmt.Fprintln(w, "--\t----\t--------\t---\t-----\t------")
	for _, c := range clients {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, c.CategoryLabel, orDash(c.CPF), orDash(c.Phone), statusBadge(c.Status, c.StatusLabel))
	}
	w.Flush()
	return clients, nil
}

// Show prints one client.
func (a *ClientAdapter) Show(ctx context.Context, clientID string) (*primary.Client, error) {
	c, err := a.service.GetClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	fmt.Fprintf(a.out, "\nClient: %s\n", c.ID)
	fmt.Fprintf(a.out, "Name:      %s\n", c.Name)
	fmt.Fprintf(a.out, "Category:  %s\n", c.CategoryLabel)
	fmt.Fprintf(a.out, "Status:    %s\n", statusBadge(c.Status, c.StatusLabel))
	fmt.Fprintf(a.out, "CPF:       %s\n", orDash(c.CPF))
	fmt.Fprintf(a.out, "Phone:     %s\n", orDash(c.Phone))
	fmt.Fprintf(a.out, "E-mail:    %s\n", orDash(c.Email))
	if c.Address.City != "" {
		fmt.Fprintf(a.out, "Address:   %s, %s - %s/%s\n", c.Address.Street, c.Address.Number, c.Address.City, c.Address.State)
	}
	if c.Respondent.Name != "" {
		fmt.Fprintf(a.out, "Respondent: %s\n", c.Respondent.Name)
	}
	fmt.Fprintf(a.out, "Created:   %s\n", shortDate(c.CreatedAt))
	fmt.Fprintln(a.out)
	return c, nil
}

// SetStatus changes a client's status.
func (a *ClientAdapter) SetStatus(ctx context.Context, clientID, status string) error {
	if err := a.service.SetClientStatus(ctx, clientID, status); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Client %s is now %s\n", clientID, status)
	return nil
}

// Delete deletes a client.
func (a *ClientAdapter) Delete(ctx context.Context, clientID string, force bool) error {
	c, err := a.service.GetClient(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}
	if err := a.service.DeleteClient(ctx, clientID, force); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Client %s deleted\n", clientID)
	fmt.Fprintf(a.out, "  Name: %s\n", c.Name)
	return nil
}
