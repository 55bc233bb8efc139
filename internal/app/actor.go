package app

import (
	"context"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/ctxutil"
)

// requireUser returns the acting user or apperr.ErrUnauthenticated.
func requireUser(ctx context.Context) (string, error) {
	userID := ctxutil.ActorFromContext(ctx)
	if userID == "" {
		return "", apperr.ErrUnauthenticated
	}
	return userID, nil
}
