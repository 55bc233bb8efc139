package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/wire"
)

// InvoiceCmd returns the invoice command
func InvoiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invoice",
		Aliases: []string{"billing"},
		Short:   "Subscription payments and receipts",
	}
	cmd.AddCommand(invoiceListCmd())
	cmd.AddCommand(invoiceReceiptCmd())
	cmd.AddCommand(invoicePayCmd())
	cmd.AddCommand(invoiceConfirmCmd())
	return cmd
}

func invoiceListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List paid invoices, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			_, err = wire.AccountAdapter(cmd.OutOrStdout()).Invoices(ctx)
			return err
		},
	}
}

func invoiceReceiptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "receipt [payment-id]",
		Short: "Print the receipt of a paid invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			return wire.AccountAdapter(cmd.OutOrStdout()).Receipt(ctx, args[0])
		},
	}
}

func invoicePayCmd() *cobra.Command {
	var req primary.CreatePaymentRequest
	var amount string
	cmd := &cobra.Command{
		Use:     "pay",
		Short:   "Record a pending subscription payment",
		Example: `  praxis invoice pay --amount 99,90 --method pix`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cents, err := parseCents(amount)
			if err != nil {
				return err
			}
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			req.AmountCents = cents
			inv, err := wire.BillingService().CreatePayment(ctx, req)
			if err != nil {
				return err
			}
			cmd.Printf("✓ Payment %s recorded: %s (%s)\n", inv.ID, inv.Amount, inv.StatusLabel)
			return nil
		},
	}
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount in reais (e.g. 99,90)")
	cmd.Flags().StringVar(&req.Method, "method", "", "payment method (pix, card, boleto)")
	cmd.Flags().StringVar(&req.SubscriptionID, "subscription", "", "subscription ID")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func invoiceConfirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm [user-id]",
		Short: "Confirm a user's latest pending payment",
		Long: `Confirm the newest pending payment of a user and activate their
subscription. Run by the practice administrator on the server host.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			inv, err := wire.BillingService().ConfirmLatestPending(ctx, args[0])
			if err != nil {
				return err
			}
			cmd.Printf("✓ Payment %s confirmed for %s\n", inv.ID, args[0])
			return nil
		},
	}
}

// parseCents reads an amount in reais written with a comma or a dot.
func parseCents(amount string) (int64, error) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(amount), "R$"))
	if i := strings.LastIndexAny(s, ",."); i >= 0 && len(s)-i-1 <= 2 {
		whole := strings.NewReplacer(".", "", ",", "").Replace(s[:i])
		frac := (s[i+1:] + "00")[:2]
		s = whole + frac
	} else {
		s = strings.NewReplacer(".", "", ",", "").Replace(s) + "00"
	}
	cents, err := strconv.ParseInt(s, 10, 64)
	if err != nil || cents <= 0 {
		return 0, fmt.Errorf("invalid amount %q", amount)
	}
	return cents, nil
}

// DashboardCmd returns the dashboard command
func DashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show practice totals and recent processes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			_, err = wire.AccountAdapter(cmd.OutOrStdout()).Dashboard(ctx)
			return err
		},
	}
}

// DebugCmd returns the debug command
func DebugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Debug and diagnostic commands",
	}
	cmd.AddCommand(debugCountsCmd())
	cmd.AddCommand(debugConfigCmd())
	return cmd
}

func debugCountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Count the rows owned by the acting user in every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			_, err = wire.AccountAdapter(cmd.OutOrStdout()).Counts(ctx)
			return err
		},
	}
}

func debugConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := wire.Config()
			secret := dim("(unset)")
			if c.Auth.JWTSecret != "" {
				secret = dim("(set)")
			}
			user := currentUser()
			if user == "" {
				user = dim("(unset)")
			}
			cmd.Printf("user:         %s\n", user)
			cmd.Printf("addr:         %s\n", c.Server.Addr)
			cmd.Printf("metrics:      %t\n", c.Server.Metrics)
			cmd.Printf("database:     %s\n", c.Storage.DatabasePath)
			cmd.Printf("files:        %s\n", c.Storage.FilesDir)
			cmd.Printf("local store:  %s\n", c.Storage.LocalStore)
			cmd.Printf("max upload:   %d MB\n", c.Storage.MaxUploadMB)
			cmd.Printf("jwt secret:   %s\n", secret)
			cmd.Printf("token ttl:    %s\n", c.Auth.TokenTTL)
			cmd.Printf("log:          %s/%s\n", c.Log.Env, c.Log.Level)
			cmd.Printf("theme cache:  %s\n", c.Theme.CacheTTL)
			return nil
		},
	}
}
