package primary

import "context"

// JudicialProcessService defines the primary port for judicial process tracking.
type JudicialProcessService interface {
	// RegisterProcess validates and stores a process number for a client.
	RegisterProcess(ctx context.Context, req RegisterProcessRequest) (*JudicialProcess, error)

	// GetProcess retrieves a process by ID.
	GetProcess(ctx context.Context, processID string) (*JudicialProcess, error)

	// ListProcesses lists processes, most recently updated first.
	ListProcesses(ctx context.Context, filters JudicialProcessFilters) ([]*JudicialProcess, error)

	// ListTribunals returns the distinct tribunals in use.
	ListTribunals(ctx context.Context) ([]string, error)

	// DeleteProcess deletes a process.
	DeleteProcess(ctx context.Context, processID string) error
}

// RegisterProcessRequest contains parameters for registering a process.
type RegisterProcessRequest struct {
	ClientID         string `json:"clientId"`
	ProcessNumber    string `json:"processNumber"`
	Tribunal         string `json:"tribunal,omitempty"`
	Description      string `json:"description,omitempty"`
	RegistrationDate string `json:"registrationDate,omitempty"`
}

// JudicialProcess represents a judicial process at the port boundary.
type JudicialProcess struct {
	ID               string `json:"id"`
	ClientID         string `json:"clientId"`
	ProcessNumber    string `json:"processNumber"`
	FormattedNumber  string `json:"formattedNumber"`
	Tribunal         string `json:"tribunal,omitempty"`
	Description      string `json:"description,omitempty"`
	RegistrationDate string `json:"registrationDate,omitempty"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

// JudicialProcessFilters contains filter options for listing processes.
// Tribunal "" or "all" matches every tribunal.
type JudicialProcessFilters struct {
	ClientID string
	Tribunal string
	Limit    int
}
