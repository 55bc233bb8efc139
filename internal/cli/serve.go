package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/praxis/internal/logger"
	"github.com/example/praxis/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until interrupted.

Requests authenticate with a bearer token signed by auth.jwt_secret; see
"praxis token" to mint one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				wire.Config().Server.Addr = addr
			}
			srv, err := wire.Server()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.L().Info("starting praxis", zap.String("addr", wire.Config().Server.Addr))
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
