package legalcase

import "fmt"

// Status is the lifecycle state of a case.
type Status string

const (
	StatusOpen      Status = "open"
	StatusCompleted Status = "completed"
)

var statusLabels = map[Status]string{
	StatusOpen:      "Em Aberto",
	StatusCompleted: "Finalizado",
}

// StatusLabel returns the pt-BR label of s.
func StatusLabel(s string) string {
	if l, ok := statusLabels[Status(s)]; ok {
		return l
	}
	return s
}

// ValidStatus reports whether s is a known case status.
func ValidStatus(s string) bool {
	_, ok := statusLabels[Status(s)]
	return ok
}

// Toggle returns the opposite status.
func Toggle(s Status) Status {
	if s == StatusOpen {
		return StatusCompleted
	}
	return StatusOpen
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

// CreateCaseContext provides context for case creation guards.
type CreateCaseContext struct {
	ClientID     string
	ClientExists bool
	Category     string
	Subcategory  string
}

// CanCreateCase evaluates whether a case can be created.
// Rules:
// - Client must exist
// - Category must be known
// - Subcategory must belong to the category when the category has any
func CanCreateCase(ctx CreateCaseContext) GuardResult {
	if !ctx.ClientExists {
		return GuardResult{Reason: fmt.Sprintf("client %s not found", ctx.ClientID)}
	}
	return checkCategory(ctx.Category, ctx.Subcategory)
}

// CanChangeCategory evaluates a category/subcategory edit.
func CanChangeCategory(category, subcategory string) GuardResult {
	return checkCategory(category, subcategory)
}

func checkCategory(category, subcategory string) GuardResult {
	if !ValidCategory(category) {
		return GuardResult{Reason: fmt.Sprintf("unknown category %q", category)}
	}

	subs := subcategories[Category(category)]
	if len(subs) == 0 || subcategory == "" {
		return GuardResult{Allowed: true}
	}
	for _, o := range subs {
		if o.Value == subcategory {
			return GuardResult{Allowed: true}
		}
	}
	return GuardResult{Reason: fmt.Sprintf("subcategory %q does not belong to %s", subcategory, CategoryLabel(category))}
}

// StatusTransitionContext provides context for complete/reopen guards.
type StatusTransitionContext struct {
	CaseID string
	Status Status
}

// CanCompleteCase evaluates whether a case can be completed.
// Rules:
// - Status must be "open"
func CanCompleteCase(ctx StatusTransitionContext) GuardResult {
	if ctx.Status != StatusOpen {
		return GuardResult{Reason: fmt.Sprintf("case %s is already completed", ctx.CaseID)}
	}
	return GuardResult{Allowed: true}
}

// CanReopenCase evaluates whether a case can be reopened.
// Rules:
// - Status must be "completed"
func CanReopenCase(ctx StatusTransitionContext) GuardResult {
	if ctx.Status != StatusCompleted {
		return GuardResult{Reason: fmt.Sprintf("can only reopen completed cases (current status: %s)", ctx.Status)}
	}
	return GuardResult{Allowed: true}
}

// GenerateCaseID generates a case ID from the current max number.
func GenerateCaseID(currentMax int) string {
	return fmt.Sprintf("CASE-%03d", currentMax+1)
}
