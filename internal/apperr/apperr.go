// Package apperr holds the error values shared by persistence, services and
// the HTTP layer.
package apperr

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound reports a missing record, or one owned by another user.
	ErrNotFound = errors.New("not found")

	// ErrConflict reports a uniqueness violation.
	ErrConflict = errors.New("conflict")

	// ErrUnauthenticated reports an operation attempted without a user.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrProfileNotFound reports a user without a profile row.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrIDTaken reports an insert whose generated ID another writer used first.
	ErrIDTaken = errors.New("id already taken")
)

// IsNotFound reports whether err is, or wraps, a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrProfileNotFound)
}

// ValidationError carries per-field validation messages.
type ValidationError struct {
	Fields map[string]string
}

// NewValidation builds a ValidationError from field messages.
func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Field builds a ValidationError for one field.
func Field(name, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{name: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// GuardError reports a business rule that refused an operation.
type GuardError struct {
	Reason string
}

// Guard builds a GuardError.
func Guard(reason string) *GuardError {
	return &GuardError{Reason: reason}
}

func (e *GuardError) Error() string { return e.Reason }

// AsValidation extracts a ValidationError from err's chain.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	ok := errors.As(err, &v)
	return v, ok
}

// IsGuard reports whether err's chain holds a GuardError.
func IsGuard(err error) bool {
	var g *GuardError
	return errors.As(err, &g)
}
