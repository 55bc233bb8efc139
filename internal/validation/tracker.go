package validation

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const maxTrackedEntries = 100

// FailureRecord is one recorded validation failure. Value is sanitized.
type FailureRecord struct {
	Field     string    `json:"field"`
	Value     string    `json:"value"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"userId,omitempty"`
	Context   string    `json:"context,omitempty"`
}

// ActionRecord is one recorded user action.
type ActionRecord struct {
	Action       string         `json:"action"`
	Details      map[string]any `json:"details,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
	UserID       string         `json:"userId,omitempty"`
	Success      bool           `json:"success"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
}

// FailureStats summarizes recorded validation failures.
type FailureStats struct {
	TotalErrors   int             `json:"totalErrors"`
	ErrorsByField map[string]int  `json:"errorsByField"`
	ErrorsByType  map[string]int  `json:"errorsByType"`
	RecentErrors  []FailureRecord `json:"recentErrors"`
}

// ActionCounts tallies outcomes for one action name.
type ActionCounts struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failure int `json:"failure"`
}

// ActionStats summarizes recorded user actions.
type ActionStats struct {
	TotalActions  int                     `json:"totalActions"`
	SuccessRate   float64                 `json:"successRate"`
	ActionsByType map[string]ActionCounts `json:"actionsByType"`
	RecentActions []ActionRecord          `json:"recentActions"`
}

// Tracker keeps the most recent validation failures and user actions in
// memory. It is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	failures []FailureRecord
	actions  []ActionRecord
	log      *zap.Logger
	now      func() time.Time
}

// NewTracker creates a tracker that also emits debug entries to log.
// A nil logger disables logging.
func NewTracker(log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{log: log, now: time.Now}
}

// RecordFailure stores a failed validation.
func (t *Tracker) RecordFailure(field, value, errMsg, userID, context string) {
	rec := FailureRecord{
		Field:     field,
		Value:     SanitizeValue(value),
		Error:     errMsg,
		Timestamp: t.now(),
		UserID:    userID,
		Context:   context,
	}

	t.mu.Lock()
	t.failures = trim(append(t.failures, rec))
	t.mu.Unlock()

	t.log.Debug("validation failed",
		zap.String("field", rec.Field),
		zap.String("value", rec.Value),
		zap.String("error", rec.Error),
		zap.String("context", rec.Context),
	)
}

// Check runs result through the tracker, recording it when invalid, and
// returns it unchanged.
func (t *Tracker) Check(field, value string, r Result, userID, context string) Result {
	if !r.IsValid {
		t.RecordFailure(field, value, r.Error, userID, context)
	}
	return r
}

// RecordAction stores a user action outcome. String details are sanitized.
func (t *Tracker) RecordAction(action string, details map[string]any, success bool, userID, errMsg string) {
	rec := ActionRecord{
		Action:       action,
		Details:      sanitizeDetails(details),
		Timestamp:    t.now(),
		UserID:       userID,
		Success:      success,
		ErrorMessage: errMsg,
	}

	t.mu.Lock()
	t.actions = trim(append(t.actions, rec))
	t.mu.Unlock()

	t.log.Debug("user action",
		zap.String("action", action),
		zap.Bool("success", success),
		zap.String("error", errMsg),
	)
}

// FailureStats returns counts over the retained failures.
func (t *Tracker) FailureStats() FailureStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return failureStats(t.failures)
}

func failureStats(failures []FailureRecord) FailureStats {
	s := FailureStats{
		TotalErrors:   len(failures),
		ErrorsByField: map[string]int{},
		ErrorsByType:  map[string]int{},
		RecentErrors:  lastN(failures, 10),
	}
	for _, f := range failures {
		s.ErrorsByField[f.Field]++
		s.ErrorsByType[f.Error]++
	}
	return s
}

// ActionStats returns counts over the retained actions. SuccessRate is a
// percentage.
func (t *Tracker) ActionStats() ActionStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return actionStats(t.actions)
}

func actionStats(actions []ActionRecord) ActionStats {
	s := ActionStats{
		TotalActions:  len(actions),
		ActionsByType: map[string]ActionCounts{},
		RecentActions: lastN(actions, 10),
	}
	succeeded := 0
	for _, a := range actions {
		c := s.ActionsByType[a.Action]
		c.Total++
		if a.Success {
			succeeded++
			c.Success++
		} else {
			c.Failure++
		}
		s.ActionsByType[a.Action] = c
	}
	if len(actions) > 0 {
		s.SuccessRate = float64(succeeded) / float64(len(actions)) * 100
	}
	return s
}

// Export renders all retained records and their statistics as indented JSON.
func (t *Tracker) Export() ([]byte, error) {
	t.mu.Lock()
	failures := append([]FailureRecord(nil), t.failures...)
	actions := append([]ActionRecord(nil), t.actions...)
	t.mu.Unlock()
	return t.export(failures, actions)
}

// ExportFor is Export restricted to the records of one user. The statistics
// cover only that user's records.
func (t *Tracker) ExportFor(userID string) ([]byte, error) {
	var failures []FailureRecord
	var actions []ActionRecord

	t.mu.Lock()
	for _, f := range t.failures {
		if f.UserID == userID {
			failures = append(failures, f)
		}
	}
	for _, a := range t.actions {
		if a.UserID == userID {
			actions = append(actions, a)
		}
	}
	t.mu.Unlock()
	return t.export(failures, actions)
}

func (t *Tracker) export(failures []FailureRecord, actions []ActionRecord) ([]byte, error) {
	out := struct {
		ValidationErrors []FailureRecord `json:"validationErrors"`
		UserActionLogs   []ActionRecord  `json:"userActionLogs"`
		ExportedAt       time.Time       `json:"exportedAt"`
		Stats            struct {
			Validation  FailureStats `json:"validation"`
			UserActions ActionStats  `json:"userActions"`
		} `json:"stats"`
	}{
		ValidationErrors: failures,
		UserActionLogs:   actions,
		ExportedAt:       t.now(),
	}
	if out.ValidationErrors == nil {
		out.ValidationErrors = []FailureRecord{}
	}
	if out.UserActionLogs == nil {
		out.UserActionLogs = []ActionRecord{}
	}
	out.Stats.Validation = failureStats(failures)
	out.Stats.UserActions = actionStats(actions)

	return json.MarshalIndent(out, "", "  ")
}

// Clear drops every retained record.
func (t *Tracker) Clear() {
	t.mu.Lock()
	t.failures = nil
	t.actions = nil
	t.mu.Unlock()
}

// SanitizeValue masks values that look like a CPF, e-mail or phone, and
// truncates anything longer than 50 characters.
func SanitizeValue(value string) string {
	if len(value) == 11 && Digits(value) == value {
		return "***.***.***-" + value[9:]
	}

	if local, domain, found := strings.Cut(value, "@"); found {
		if len(local) > 2 {
			local = local[:2]
		}
		return local + "***@" + domain
	}

	if d := Digits(value); len(d) >= 10 && onlyPhoneChars(value) {
		return "(" + d[:2] + ") ****-" + d[len(d)-4:]
	}

	if r := []rune(value); len(r) > 50 {
		return string(r[:50]) + "..."
	}
	return value
}

// onlyPhoneChars reports whether value has nothing but digits and the usual
// phone punctuation.
func onlyPhoneChars(value string) bool {
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
		case r == ' ', r == '(', r == ')', r == '-', r == '+', r == '.':
		default:
			return false
		}
	}
	return true
}

func sanitizeDetails(details map[string]any) map[string]any {
	if details == nil {
		return nil
	}
	out := make(map[string]any, len(details))
	for k, v := range details {
		switch val := v.(type) {
		case string:
			out[k] = SanitizeValue(val)
		case map[string]any:
			out[k] = sanitizeDetails(val)
		default:
			out[k] = v
		}
	}
	return out
}

func trim[T any](s []T) []T {
	if len(s) > maxTrackedEntries {
		return append(s[:0:0], s[len(s)-maxTrackedEntries:]...)
	}
	return s
}

func lastN[T any](s []T, n int) []T {
	if len(s) > n {
		s = s[len(s)-n:]
	}
	return append([]T(nil), s...)
}
