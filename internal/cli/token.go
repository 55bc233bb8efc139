package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/example/praxis/internal/wire"
)

// TokenCmd returns the token command
func TokenCmd() *cobra.Command {
	var email string
	var admin bool
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API bearer token",
		Long: `Mint a bearer token for the HTTP API, signed with auth.jwt_secret.

The token is issued for the acting user (--user or user_id in config).`,
		Example: `  praxis token --user 9c1f... --email advogada@example.com
  curl -H "Authorization: Bearer $(praxis token)" localhost:8080/api/clients`,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := currentUser()
			if userID == "" {
				return errors.New("no user configured\nHint: pass --user or set user_id in .praxis/config.yaml")
			}
			issuer, err := wire.Tokens()
			if err != nil {
				return err
			}
			token, err := issuer.Issue(userID, email, admin)
			if err != nil {
				return err
			}
			cmd.Println(token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "e-mail claim")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant administrative access")
	return cmd
}
