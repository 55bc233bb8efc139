package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/wire"
)

// ClientCmd returns the client command
func ClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
		Long:  "Register, list, update and delete the clients of the practice.",
	}
	cmd.AddCommand(clientCreateCmd())
	cmd.AddCommand(clientListCmd())
	cmd.AddCommand(clientShowCmd())
	cmd.AddCommand(clientUpdateCmd())
	cmd.AddCommand(clientStatusCmd())
	cmd.AddCommand(clientDeleteCmd())
	return cmd
}

// clientFlags binds every editable client field to a flag.
func clientFlags(fs *pflag.FlagSet, in *primary.ClientInput) {
	fs.StringVar(&in.CPF, "cpf", "", "CPF (with or without punctuation)")
	fs.StringVar(&in.Category, "category", "", "social-security, criminal, civil, labor or administrative")
	fs.StringVar(&in.Phone, "phone", "", "phone with area code")
	fs.StringVar(&in.Email, "email", "", "e-mail")
	fs.StringVar(&in.BirthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	fs.StringVar(&in.Gender, "gender", "", "male, female, non-binary or other")
	fs.StringVar(&in.MaritalStatus, "marital-status", "", "single, married, divorced, widowed, stable-union or legally-separated")
	fs.StringVar(&in.Nationality, "nationality", "", "nationality")
	fs.StringVar(&in.Profession, "profession", "", "profession")
	fs.StringVar(&in.RGNumber, "rg", "", "RG number")
	fs.StringVar(&in.RGIssuer, "rg-issuer", "", "RG issuing body")
	fs.StringVar(&in.Address.Street, "street", "", "street")
	fs.StringVar(&in.Address.Number, "number", "", "street number")
	fs.StringVar(&in.Address.Neighborhood, "neighborhood", "", "neighborhood")
	fs.StringVar(&in.Address.City, "city", "", "city")
	fs.StringVar(&in.Address.State, "state", "", "state (UF)")
	fs.StringVar(&in.Address.ZipCode, "zip", "", "CEP")
	fs.StringVar(&in.Respondent.Name, "respondent-name", "", "opposing party name")
	fs.StringVar(&in.Respondent.CPF, "respondent-cpf", "", "opposing party CPF")
	fs.StringVar(&in.Respondent.Address, "respondent-address", "", "opposing party address")
}

func clientCreateCmd() *cobra.Command {
	var in primary.ClientInput
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Register a new client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			in.Name = args[0]
			_, err = wire.ClientAdapter(cmd.OutOrStdout()).Create(ctx, in)
			return err
		},
	}
	clientFlags(cmd.Flags(), &in)
	return cmd
}

func clientListCmd() *cobra.Command {
	var filters primary.ClientFilters
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			_, err = wire.ClientAdapter(cmd.OutOrStdout()).List(ctx, filters)
			return err
		},
	}
	cmd.Flags().StringVar(&filters.Status, "status", "", "filter by status (active, inactive, pending)")
	cmd.Flags().StringVar(&filters.Category, "category", "", "filter by category")
	cmd.Flags().StringVarP(&filters.Search, "search", "s", "", "search by name")
	cmd.Flags().IntVar(&filters.Limit, "limit", 0, "maximum number of clients")
	return cmd
}

func clientShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [client-id]",
		Short: "Show client details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			_, err = wire.ClientAdapter(cmd.OutOrStdout()).Show(ctx, args[0])
			return err
		},
	}
}

func clientUpdateCmd() *cobra.Command {
	var in primary.ClientInput
	var name string
	cmd := &cobra.Command{
		Use:   "update [client-id]",
		Short: "Update a client",
		Long: `Update a client. Only the flags given are changed; every other field
keeps its current value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			current, err := wire.ClientService().GetClient(ctx, args[0])
			if err != nil {
				return err
			}

			merged := clientToInput(current)
			if cmd.Flags().Changed("name") {
				merged.Name = name
			}
			overlayChanged(cmd.Flags(), &merged, &in)

			updated, err := wire.ClientService().UpdateClient(ctx, primary.UpdateClientRequest{
				ClientID:    args[0],
				ClientInput: merged,
			})
			if err != nil {
				return err
			}
			cmd.Printf("✓ Client %s updated\n", updated.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	clientFlags(cmd.Flags(), &in)
	return cmd
}

func clientStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [client-id] [active|inactive|pending]",
		Short: "Change a client's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			return wire.ClientAdapter(cmd.OutOrStdout()).SetStatus(ctx, args[0], args[1])
		},
	}
}

func clientDeleteCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete [client-id]",
		Short: "Delete a client",
		Long: `Delete a client together with its cases and processes.

Clients with open cases are refused unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			return wire.ClientAdapter(cmd.OutOrStdout()).Delete(ctx, args[0], force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete even with open cases")
	return cmd
}

func clientToInput(c *primary.Client) primary.ClientInput {
	return primary.ClientInput{
		Name:          c.Name,
		CPF:           c.CPF,
		Category:      c.Category,
		Phone:         c.Phone,
		Email:         c.Email,
		BirthDate:     c.BirthDate,
		Gender:        c.Gender,
		MaritalStatus: c.MaritalStatus,
		Nationality:   c.Nationality,
		Profession:    c.Profession,
		RGNumber:      c.RGNumber,
		RGIssuer:      c.RGIssuer,
		Address:       c.Address,
		Respondent:    c.Respondent,
	}
}

// overlayChanged copies the fields whose flags were set from src into dst.
func overlayChanged(fs *pflag.FlagSet, dst, src *primary.ClientInput) {
	fields := map[string]struct{ to, from *string }{
		"cpf":                {&dst.CPF, &src.CPF},
		"category":           {&dst.Category, &src.Category},
		"phone":              {&dst.Phone, &src.Phone},
		"email":              {&dst.Email, &src.Email},
		"birth-date":         {&dst.BirthDate, &src.BirthDate},
		"gender":             {&dst.Gender, &src.Gender},
		"marital-status":     {&dst.MaritalStatus, &src.MaritalStatus},
		"nationality":        {&dst.Nationality, &src.Nationality},
		"profession":         {&dst.Profession, &src.Profession},
		"rg":                 {&dst.RGNumber, &src.RGNumber},
		"rg-issuer":          {&dst.RGIssuer, &src.RGIssuer},
		"street":             {&dst.Address.Street, &src.Address.Street},
		"number":             {&dst.Address.Number, &src.Address.Number},
		"neighborhood":       {&dst.Address.Neighborhood, &src.Address.Neighborhood},
		"city":               {&dst.Address.City, &src.Address.City},
		"state":              {&dst.Address.State, &src.Address.State},
		"zip":                {&dst.Address.ZipCode, &src.Address.ZipCode},
		"respondent-name":    {&dst.Respondent.Name, &src.Respondent.Name},
		"respondent-cpf":     {&dst.Respondent.CPF, &src.Respondent.CPF},
		"respondent-address": {&dst.Respondent.Address, &src.Respondent.Address},
	}
	for flag, f := range fields {
		if fs.Changed(flag) {
			*f.to = *f.from
		}
	}
}
