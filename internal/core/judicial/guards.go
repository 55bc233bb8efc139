// Package judicial contains the pure business logic for judicial process
// tracking.
package judicial

import (
	"fmt"
	"strings"

	"github.com/example/praxis/internal/validation"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// RegisterProcessContext provides context for process registration guards.
type RegisterProcessContext struct {
	ClientID      string
	ClientExists  bool
	ProcessNumber string
	AlreadyExists bool
}

// CanRegisterProcess evaluates whether a judicial process can be registered.
// Rules:
// - Client must exist
// - Process number must be a valid CNJ number
// - The same number must not be registered twice for the user
func CanRegisterProcess(ctx RegisterProcessContext) GuardResult {
	if !ctx.ClientExists {
		return GuardResult{Reason: fmt.Sprintf("client %s not found", ctx.ClientID)}
	}

	if r := validation.ValidateProcessNumber(ctx.ProcessNumber); !r.IsValid {
		return GuardResult{Reason: r.Error}
	}

	if ctx.AlreadyExists {
		return GuardResult{
			Reason: fmt.Sprintf("process %s is already registered", validation.FormatProcessNumber(validation.Digits(ctx.ProcessNumber))),
		}
	}

	return GuardResult{Allowed: true}
}

// NormalizeNumber returns the digits of a process number, the stored form.
func NormalizeNumber(number string) string {
	return validation.Digits(number)
}

// Tribunal extracts the J.TR segment (justice branch and court) of a
// 20-digit process number, e.g. "8.26". Returns "" for other lengths.
func Tribunal(number string) string {
	d := validation.Digits(number)
	if len(d) != 20 {
		return ""
	}
	return d[13:14] + "." + d[14:16]
}

// MatchesTribunal reports whether tribunal passes filter. Empty and "all"
// match everything.
func MatchesTribunal(tribunal, filter string) bool {
	if filter == "" || strings.EqualFold(filter, "all") {
		return true
	}
	return tribunal == filter
}

// GenerateProcessID generates a process ID from the current max number.
func GenerateProcessID(currentMax int) string {
	return fmt.Sprintf("PROC-%03d", currentMax+1)
}
