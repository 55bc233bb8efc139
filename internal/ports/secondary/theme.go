package secondary

import (
	"context"

	"github.com/example/praxis/internal/core/theme"
)

// ProfileStore is the remote home of a user's theme settings.
type ProfileStore interface {
	// LoadTheme returns the stored settings. A profile without settings
	// returns nil settings; a missing profile returns apperr.ErrProfileNotFound.
	LoadTheme(ctx context.Context, userID string) (*theme.Settings, error)

	// SaveTheme overwrites the stored settings.
	SaveTheme(ctx context.Context, userID string, s theme.Settings) error
}

// LocalStore is a per-machine string key/value store for cached settings.
type LocalStore interface {
	// Get returns the value of key and whether it was present.
	Get(key string) (string, bool, error)

	// Set stores value under key.
	Set(key, value string) error

	// Remove deletes the keys. Missing keys are ignored.
	Remove(keys ...string) error
}
