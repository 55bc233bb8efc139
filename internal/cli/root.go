package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/example/praxis/internal/ctxutil"
	"github.com/example/praxis/internal/logger"
	"github.com/example/praxis/internal/version"
	"github.com/example/praxis/internal/wire"
)

var actingUser string

// AddGlobalFlags registers the flags every command accepts.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&actingUser, "user", "", "act as this user id (overrides user_id in config)")
}

// InitLogging configures the process logger from the loaded config.
func InitLogging() {
	c := wire.Config()
	logger.Init(logger.Config{
		Env:         c.Log.Env,
		Level:       c.Log.Level,
		ServiceName: "praxis",
		Version:     version.String(),
	})
}

func currentUser() string {
	if actingUser != "" {
		return actingUser
	}
	return wire.Config().UserID
}

// actorContext returns a context carrying the acting user.
func actorContext() (context.Context, error) {
	userID := currentUser()
	if userID == "" {
		return nil, errors.New("no user configured\nHint: set user_id in .praxis/config.yaml, export PRAXIS_USER_ID, or pass --user")
	}
	return ctxutil.WithActorID(context.Background(), userID), nil
}
