// Package task contains the pure business logic for task operations.
// Guards are pure functions that evaluate preconditions without side effects.
package task

import (
	"fmt"
	"strings"
	"time"
)

// Status is the progress state of a task.
type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusDelayed    Status = "delayed"
	StatusCompleted  Status = "completed"
)

var statusLabels = map[Status]string{
	StatusInProgress: "Em Andamento",
	StatusDelayed:    "Atrasado",
	StatusCompleted:  "Concluído",
}

// StatusLabel returns the pt-BR label of s.
func StatusLabel(s string) string {
	if l, ok := statusLabels[Status(s)]; ok {
		return l
	}
	return s
}

// ValidStatus reports whether s is a known task status.
func ValidStatus(s string) bool {
	_, ok := statusLabels[Status(s)]
	return ok
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

// CreateTaskContext provides context for task creation guards.
type CreateTaskContext struct {
	Title        string
	CaseID       string // optional
	CaseExists   bool   // only checked if CaseID != ""
	ClientID     string // optional
	ClientExists bool   // only checked if ClientID != ""
}

// StatusTransitionContext provides context for complete/resume guards.
type StatusTransitionContext struct {
	TaskID string
	Status Status
}

// CanCreateTask evaluates whether a task can be created.
// Rules:
// - Title must not be blank
// - Case must exist (if case_id provided)
// - Client must exist (if client_id provided)
func CanCreateTask(ctx CreateTaskContext) GuardResult {
	if strings.TrimSpace(ctx.Title) == "" {
		return GuardResult{Reason: "task title is required"}
	}

	if ctx.CaseID != "" && !ctx.CaseExists {
		return GuardResult{Reason: fmt.Sprintf("case %s not found", ctx.CaseID)}
	}

	if ctx.ClientID != "" && !ctx.ClientExists {
		return GuardResult{Reason: fmt.Sprintf("client %s not found", ctx.ClientID)}
	}

	return GuardResult{Allowed: true}
}

// CanCompleteTask evaluates whether a task can be completed.
// Rules:
// - Task must not already be completed
func CanCompleteTask(ctx StatusTransitionContext) GuardResult {
	if ctx.Status == StatusCompleted {
		return GuardResult{Reason: fmt.Sprintf("task %s is already completed", ctx.TaskID)}
	}
	return GuardResult{Allowed: true}
}

// CanResumeTask evaluates whether a task can be resumed.
// Rules:
// - Status must be "delayed"
func CanResumeTask(ctx StatusTransitionContext) GuardResult {
	if ctx.Status != StatusDelayed {
		return GuardResult{
			Reason: fmt.Sprintf("can only resume delayed tasks (current status: %s)", ctx.Status),
		}
	}
	return GuardResult{Allowed: true}
}

// IsOverdue reports whether a task should be marked delayed at now.
// Only in-progress tasks with a due date strictly before now qualify.
func IsOverdue(status Status, due time.Time, now time.Time) bool {
	if status != StatusInProgress || due.IsZero() {
		return false
	}
	return due.Before(now)
}

// GenerateTaskID generates a task ID from the current max number.
func GenerateTaskID(currentMax int) string {
	return fmt.Sprintf("TASK-%03d", currentMax+1)
}
