package sqlite

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/example/praxis/internal/apperr"
)

// createErr wraps an INSERT failure. A primary key collision means another
// writer allocated the same ID first and maps to apperr.ErrIDTaken.
func createErr(entity, id string, err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
		return fmt.Errorf("%s %s: %w", entity, id, apperr.ErrIDTaken)
	}
	return fmt.Errorf("failed to create %s: %w", entity, err)
}
