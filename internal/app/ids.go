package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/logger"
)

// maxIDAttempts bounds how often an insert is retried with a fresh ID.
const maxIDAttempts = 5

// insertWithNextID allocates an ID with next and hands it to insert. When a
// concurrent writer took the ID first, a new one is allocated and the insert
// runs again. It returns the ID that was stored.
func insertWithNextID(ctx context.Context, next func(context.Context) (string, error), insert func(id string) error) (string, error) {
	var err error
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		var id string
		id, err = next(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to generate ID: %w", err)
		}
		err = insert(id)
		if !errors.Is(err, apperr.ErrIDTaken) {
			return id, err
		}
		logger.From(ctx).Debug("generated ID already taken, retrying",
			zap.String("id", id),
			zap.Int("attempt", attempt))
	}
	return "", err
}
