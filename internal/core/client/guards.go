// Package client contains the pure business logic for client records.
package client

import (
	"fmt"

	"github.com/example/praxis/internal/core/legalcase"
)

// Status is the relationship state of a client.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

var statusLabels = map[Status]string{
	StatusActive:   "Ativo",
	StatusInactive: "Inativo",
	StatusPending:  "Pendente",
}

// StatusLabel returns the pt-BR label of s.
func StatusLabel(s string) string {
	if l, ok := statusLabels[Status(s)]; ok {
		return l
	}
	return s
}

// ValidStatus reports whether s is a known client status.
func ValidStatus(s string) bool {
	_, ok := statusLabels[Status(s)]
	return ok
}

// InitialStatus is the status of a newly registered client.
func InitialStatus() Status {
	return StatusActive
}

var genders = []legalcase.Option{
	{Value: "male", Label: "Masculino"},
	{Value: "female", Label: "Feminino"},
	{Value: "non-binary", Label: "Não binário"},
	{Value: "other", Label: "Outro"},
}

var maritalStatuses = []legalcase.Option{
	{Value: "single", Label: "Solteiro(a)"},
	{Value: "married", Label: "Casado(a)"},
	{Value: "divorced", Label: "Divorciado(a)"},
	{Value: "widowed", Label: "Viúvo(a)"},
	{Value: "stable-union", Label: "União estável"},
	{Value: "legally-separated", Label: "Separado(a) judicialmente"},
}

// GenderOptions lists the accepted gender values.
func GenderOptions() []legalcase.Option { return append([]legalcase.Option(nil), genders...) }

// MaritalStatusOptions lists the accepted marital status values.
func MaritalStatusOptions() []legalcase.Option {
	return append([]legalcase.Option(nil), maritalStatuses...)
}

func inOptions(opts []legalcase.Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

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

// ProfileFieldsContext carries the enumerated client fields.
type ProfileFieldsContext struct {
	Category      string
	Gender        string
	MaritalStatus string
	Status        string
}

// CanSaveClient checks the enumerated fields of a client.
// Rules:
// - Category must be known
// - Gender, marital status and status must be known when set
func CanSaveClient(ctx ProfileFieldsContext) GuardResult {
	if !legalcase.ValidCategory(ctx.Category) {
		return GuardResult{Reason: fmt.Sprintf("unknown category %q", ctx.Category)}
	}
	if ctx.Gender != "" && !inOptions(genders, ctx.Gender) {
		return GuardResult{Reason: fmt.Sprintf("unknown gender %q", ctx.Gender)}
	}
	if ctx.MaritalStatus != "" && !inOptions(maritalStatuses, ctx.MaritalStatus) {
		return GuardResult{Reason: fmt.Sprintf("unknown marital status %q", ctx.MaritalStatus)}
	}
	if ctx.Status != "" && !ValidStatus(ctx.Status) {
		return GuardResult{Reason: fmt.Sprintf("unknown client status %q", ctx.Status)}
	}
	return GuardResult{Allowed: true}
}

// DeleteClientContext provides context for client deletion guards.
type DeleteClientContext struct {
	ClientID      string
	OpenCaseCount int
	Force         bool
}

// CanDeleteClient evaluates whether a client can be deleted.
// Rules:
// - Client must have no open cases unless forced
func CanDeleteClient(ctx DeleteClientContext) GuardResult {
	if ctx.OpenCaseCount > 0 && !ctx.Force {
		return GuardResult{
			Reason: fmt.Sprintf("client %s has %d open case(s). Complete them first or use --force", ctx.ClientID, ctx.OpenCaseCount),
		}
	}
	return GuardResult{Allowed: true}
}

// GenerateClientID generates a client ID from the current max number.
func GenerateClientID(currentMax int) string {
	return fmt.Sprintf("CLIENT-%03d", currentMax+1)
}
