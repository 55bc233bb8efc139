package cli

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/praxis/internal/config"
	"github.com/example/praxis/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize praxis in the current directory",
		Long: `Write .praxis/config.yaml with a fresh user id and signing secret, then
create the database schema.

An existing config is kept; only the database step runs again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}

			cfg, err := config.LoadConfig(dir)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, ".praxis", "config.yaml")
			if _, err := os.Stat(path); os.IsNotExist(err) {
				if actingUser != "" {
					cfg.UserID = actingUser
				}
				if cfg.UserID == "" {
					cfg.UserID = uuid.NewString()
				}
				if cfg.Auth.JWTSecret == "" {
					secret, err := newSecret()
					if err != nil {
						return err
					}
					cfg.Auth.JWTSecret = secret
				}
				if err := config.SaveConfig(dir, cfg); err != nil {
					return err
				}
				cmd.Printf("✓ Config written to %s\n", path)
			} else {
				cmd.Printf("✓ Using existing config %s\n", path)
			}

			cmd.Printf("Initializing database at %s\n", cfg.Storage.DatabasePath)
			conn, err := db.Open(cfg.Storage.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}
			defer conn.Close()
			cmd.Println("✓ Database initialized successfully")

			if seed {
				if err := db.SeedFixtures(conn, cfg.UserID); err != nil {
					return err
				}
				cmd.Printf("✓ Demo data added for %s\n", cfg.UserID)
			}

			cmd.Println()
			cmd.Println("Next steps:")
			cmd.Println(`  praxis client create "Maria Souza" --cpf 529.982.247-25 --category civil`)
			cmd.Println("  praxis serve")
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "add demo clients, cases and tasks")
	return cmd
}

func newSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
