package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/praxis/internal/cli"
	"github.com/example/praxis/internal/logger"
	"github.com/example/praxis/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "praxis",
		Short:   "Praxis - practice management for law offices",
		Version: version.String(),
		Long: `Praxis keeps the clients, cases, tasks and judicial processes of a law
practice, together with its petition templates, profile and subscription.

Run "praxis serve" for the HTTP API or use the commands below directly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.InitLogging()
		},
	}
	rootCmd.SetOut(os.Stdout)
	cli.AddGlobalFlags(rootCmd)

	// Setup
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.TokenCmd())

	// Records
	rootCmd.AddCommand(cli.ClientCmd())
	rootCmd.AddCommand(cli.CaseCmd())
	rootCmd.AddCommand(cli.TaskCmd())
	rootCmd.AddCommand(cli.ProcessCmd())
	rootCmd.AddCommand(cli.DashboardCmd())

	// Documents and account
	rootCmd.AddCommand(cli.TemplateCmd())
	rootCmd.AddCommand(cli.ProfileCmd())
	rootCmd.AddCommand(cli.ThemeCmd())
	rootCmd.AddCommand(cli.InvoiceCmd())

	// Tools
	rootCmd.AddCommand(cli.ValidateCmd())
	rootCmd.AddCommand(cli.DebugCmd())

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
