package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/wire"
)

// ProcessCmd returns the process command
func ProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Track judicial processes",
		Long: `Track judicial processes by their CNJ number.

Numbers are accepted with or without punctuation and are checked against
the CNJ check digits before they are stored.`,
	}
	cmd.AddCommand(processRegisterCmd())
	cmd.AddCommand(processListCmd())
	cmd.AddCommand(processShowCmd())
	cmd.AddCommand(processTribunalsCmd())
	cmd.AddCommand(processDeleteCmd())
	return cmd
}

func processRegisterCmd() *cobra.Command {
	var req primary.RegisterProcessRequest
	cmd := &cobra.Command{
		Use:     "register [process-number]",
		Short:   "Register a process for a client",
		Args:    cobra.ExactArgs(1),
		Example: `  praxis process register 1234567-47.2023.8.26.0100 --client CLI-001 --tribunal TJSP`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			req.ProcessNumber = args[0]
			p, err := wire.JudicialProcessService().RegisterProcess(ctx, req)
			if err != nil {
				return err
			}
			cmd.Printf("✓ Process %s registered: %s\n", p.ID, p.FormattedNumber)
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.ClientID, "client", "c", "", "client ID (required)")
	cmd.Flags().StringVar(&req.Tribunal, "tribunal", "", "tribunal (e.g. TJSP)")
	cmd.Flags().StringVarP(&req.Description, "description", "d", "", "description")
	cmd.Flags().StringVar(&req.RegistrationDate, "date", "", "registration date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("client")
	return cmd
}

func processListCmd() *cobra.Command {
	var filters primary.JudicialProcessFilters
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List processes, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			_, err = wire.MatterAdapter(cmd.OutOrStdout()).ListProcesses(ctx, filters)
			return err
		},
	}
	cmd.Flags().StringVarP(&filters.ClientID, "client", "c", "", "filter by client")
	cmd.Flags().StringVar(&filters.Tribunal, "tribunal", "", `filter by tribunal ("all" for every tribunal)`)
	cmd.Flags().IntVar(&filters.Limit, "limit", 0, "maximum number of processes")
	return cmd
}

func processShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [process-id]",
		Short: "Show process details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			p, err := wire.JudicialProcessService().GetProcess(ctx, args[0])
			if err != nil {
				return err
			}
			cmd.Printf("%s: %s\n", bold(p.ID), p.FormattedNumber)
			cmd.Printf("  Client:     %s\n", p.ClientID)
			if p.Tribunal != "" {
				cmd.Printf("  Tribunal:   %s\n", p.Tribunal)
			}
			if p.Description != "" {
				cmd.Printf("  Notes:      %s\n", p.Description)
			}
			if p.RegistrationDate != "" {
				cmd.Printf("  Registered: %s\n", p.RegistrationDate)
			}
			cmd.Printf("  Updated:    %s\n", dim(p.UpdatedAt))
			return nil
		},
	}
}

func processTribunalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tribunals",
		Short: "List the tribunals in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			tribunals, err := wire.JudicialProcessService().ListTribunals(ctx)
			if err != nil {
				return err
			}
			if len(tribunals) == 0 {
				cmd.Println(dim("No tribunals yet."))
				return nil
			}
			for _, t := range tribunals {
				cmd.Println(t)
			}
			return nil
		},
	}
}

func processDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [process-id]",
		Short: "Delete a process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			if err := wire.JudicialProcessService().DeleteProcess(ctx, args[0]); err != nil {
				return err
			}
			cmd.Printf("✓ Process %s deleted\n", args[0])
			return nil
		},
	}
}
