package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/wire"
)

// CaseCmd returns the case command
func CaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "case",
		Short: "Manage client cases",
		Long: `Manage the cases opened for clients.

A case is either open or completed. Completing stamps the completion date;
reopening clears it.`,
	}
	cmd.AddCommand(caseCreateCmd())
	cmd.AddCommand(caseListCmd())
	cmd.AddCommand(caseShowCmd())
	cmd.AddCommand(caseUpdateCmd())
	cmd.AddCommand(caseToggleCmd())
	cmd.AddCommand(caseCompleteCmd())
	cmd.AddCommand(caseReopenCmd())
	cmd.AddCommand(caseDeleteCmd())
	cmd.AddCommand(caseCategoriesCmd())
	return cmd
}

func caseCreateCmd() *cobra.Command {
	var req primary.CreateCaseRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a case for a client",
		Example: `  praxis case create --client CLI-001 --category civil --subcategory consumer
  praxis case create --client CLI-001 --category labor -d "Horas extras"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			c, err := wire.CaseService().CreateCase(ctx, req)
			if err != nil {
				return err
			}
			cmd.Printf("✓ Case %s opened (%s)\n", c.ID, c.CategoryLabel)
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.ClientID, "client", "c", "", "client ID (required)")
	cmd.Flags().StringVar(&req.Category, "category", "", "case category (required)")
	cmd.Flags().StringVar(&req.Subcategory, "subcategory", "", "subcategory of the category")
	cmd.Flags().StringVarP(&req.Description, "description", "d", "", "description")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func caseListCmd() *cobra.Command {
	var filters primary.CaseFilters
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cases",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			_, err = wire.MatterAdapter(cmd.OutOrStdout()).ListCases(ctx, filters)
			return err
		},
	}
	cmd.Flags().StringVarP(&filters.ClientID, "client", "c", "", "filter by client")
	cmd.Flags().StringVar(&filters.Status, "status", "", "filter by status (open, completed)")
	cmd.Flags().StringVar(&filters.Category, "category", "", "filter by category")
	return cmd
}

func caseShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [case-id]",
		Short: "Show case details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			_, err = wire.MatterAdapter(cmd.OutOrStdout()).ShowCase(ctx, args[0])
			return err
		},
	}
}

func caseUpdateCmd() *cobra.Command {
	var req primary.UpdateCaseRequest
	cmd := &cobra.Command{
		Use:   "update [case-id]",
		Short: "Update a case",
		Long: `Update category, subcategory or description of a case.

Changing the category clears a subcategory that does not belong to it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			req.CaseID = args[0]
			c, err := wire.CaseService().UpdateCase(ctx, req)
			if err != nil {
				return err
			}
			cmd.Printf("✓ Case %s updated\n", c.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Category, "category", "", "new category")
	cmd.Flags().StringVar(&req.Subcategory, "subcategory", "", "new subcategory")
	cmd.Flags().StringVarP(&req.Description, "description", "d", "", "new description")
	return cmd
}

func caseToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [case-id]",
		Short: "Flip a case between open and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			c, err := wire.CaseService().ToggleCaseStatus(ctx, args[0])
			if err != nil {
				return err
			}
			cmd.Printf("✓ Case %s is now %s\n", c.ID, bold(c.StatusLabel))
			return nil
		},
	}
}

func caseCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete [case-id]",
		Short: "Mark a case as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			if err := wire.CaseService().CompleteCase(ctx, args[0]); err != nil {
				return err
			}
			cmd.Printf("✓ Case %s completed\n", args[0])
			return nil
		},
	}
}

func caseReopenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reopen [case-id]",
		Short: "Reopen a completed case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			if err := wire.CaseService().ReopenCase(ctx, args[0]); err != nil {
				return err
			}
			cmd.Printf("✓ Case %s reopened\n", args[0])
			return nil
		},
	}
}

func caseDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [case-id]",
		Short: "Delete a case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			if err := wire.CaseService().DeleteCase(ctx, args[0]); err != nil {
				return err
			}
			cmd.Printf("✓ Case %s deleted\n", args[0])
			return nil
		},
	}
}

func caseCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List case categories and subcategories",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, cat := range wire.CaseService().Categories() {
				cmd.Printf("%s %s\n", bold(cat.Value), dim("("+cat.Label+")"))
				for _, sub := range cat.Subcategories {
					cmd.Printf("  %-28s %s\n", sub.Value, sub.Label)
				}
			}
			return nil
		},
	}
}
