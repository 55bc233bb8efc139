package primary

import "context"

// CaseService defines the primary port for case operations.
type CaseService interface {
	// CreateCase opens a new case for a client.
	CreateCase(ctx context.Context, req CreateCaseRequest) (*Case, error)

	// GetCase retrieves a case by ID.
	GetCase(ctx context.Context, caseID string) (*Case, error)

	// ListCases lists cases with optional filters.
	ListCases(ctx context.Context, filters CaseFilters) ([]*Case, error)

	// UpdateCase updates category, subcategory and/or description.
	UpdateCase(ctx context.Context, req UpdateCaseRequest) (*Case, error)

	// ToggleCaseStatus flips a case between open and completed.
	ToggleCaseStatus(ctx context.Context, caseID string) (*Case, error)

	// CompleteCase marks an open case as completed.
	CompleteCase(ctx context.Context, caseID string) error

	// ReopenCase reopens a completed case.
	ReopenCase(ctx context.Context, caseID string) error

	// DeleteCase deletes a case.
	DeleteCase(ctx context.Context, caseID string) error

	// Categories returns the category catalog with subcategories.
	Categories() []CategoryOption
}

// CategoryOption is a category with its subcategories.
type CategoryOption struct {
	Value         string   `json:"value"`
	Label         string   `json:"label"`
	Subcategories []Option `json:"subcategories"`
}

// Option is a value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CreateCaseRequest contains parameters for creating a case.
type CreateCaseRequest struct {
	ClientID    string `json:"clientId"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateCaseRequest contains parameters for updating a case.
// Empty fields are left unchanged.
type UpdateCaseRequest struct {
	CaseID      string `json:"-"`
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
	Description string `json:"description,omitempty"`
}

// Case represents a case entity at the port boundary.
type Case struct {
	ID               string `json:"id"`
	ClientID         string `json:"clientId"`
	Category         string `json:"category"`
	CategoryLabel    string `json:"categoryLabel"`
	Subcategory      string `json:"subcategory,omitempty"`
	SubcategoryLabel string `json:"subcategoryLabel,omitempty"`
	Description      string `json:"description,omitempty"`
	Status           string `json:"status"`
	StatusLabel      string `json:"statusLabel"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
	CompletedAt      string `json:"completedAt,omitempty"`
}

// CaseFilters contains filter options for listing cases.
type CaseFilters struct {
	ClientID string
	Status   string
	Category string
}
