package primary

import "context"

// ClientService defines the primary port for client operations.
type ClientService interface {
	// CreateClient validates and registers a new client.
	CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error)

	// GetClient retrieves a client by ID.
	GetClient(ctx context.Context, clientID string) (*Client, error)

	// ListClients lists clients with optional filters.
	ListClients(ctx context.Context, filters ClientFilters) ([]*Client, error)

	// UpdateClient replaces a client's editable fields.
	UpdateClient(ctx context.Context, req UpdateClientRequest) (*Client, error)

	// SetClientStatus changes a client's status.
	SetClientStatus(ctx context.Context, clientID, status string) error

	// DeleteClient deletes a client. Clients with open cases need force.
	DeleteClient(ctx context.Context, clientID string, force bool) error
}

// Address is a postal address.
type Address struct {
	Street       string `json:"street,omitempty"`
	Number       string `json:"number,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zipCode,omitempty"`
}

// Respondent is the opposing party of a client's claim.
type Respondent struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	CPF     string `json:"cpf,omitempty"`
}

// ClientInput holds the editable client fields.
type ClientInput struct {
	Name          string     `json:"name"`
	CPF           string     `json:"cpf"`
	Category      string     `json:"category"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	BirthDate     string     `json:"birthDate,omitempty"`
	Gender        string     `json:"gender,omitempty"`
	MaritalStatus string     `json:"maritalStatus,omitempty"`
	Nationality   string     `json:"nationality,omitempty"`
	Profession    string     `json:"profession,omitempty"`
	RGNumber      string     `json:"rgNumber,omitempty"`
	RGIssuer      string     `json:"rgIssuer,omitempty"`
	Address       Address    `json:"address"`
	Respondent    Respondent `json:"respondent"`
}

// CreateClientRequest contains parameters for creating a client.
type CreateClientRequest struct {
	ClientInput
}

// UpdateClientRequest contains parameters for updating a client.
type UpdateClientRequest struct {
	ClientID string `json:"-"`
	ClientInput
}

// Client represents a client entity at the port boundary.
type Client struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	CPF           string     `json:"cpf,omitempty"`
	Category      string     `json:"category"`
	CategoryLabel string     `json:"categoryLabel"`
	Phone         string     `json:"phone,omitempty"`
	Email         string     `json:"email,omitempty"`
	BirthDate     string     `json:"birthDate,omitempty"`
	Gender        string     `json:"gender,omitempty"`
	MaritalStatus string     `json:"maritalStatus,omitempty"`
	Nationality   string     `json:"nationality,omitempty"`
	Profession    string     `json:"profession,omitempty"`
	RGNumber      string     `json:"rgNumber,omitempty"`
	RGIssuer      string     `json:"rgIssuer,omitempty"`
	Address       Address    `json:"address"`
	Respondent    Respondent `json:"respondent"`
	Status        string     `json:"status"`
	StatusLabel   string     `json:"statusLabel"`
	CreatedAt     string     `json:"createdAt"`
	UpdatedAt     string     `json:"updatedAt"`
}

// ClientFilters contains filter options for listing clients.
type ClientFilters struct {
	Status   string
	Category string
	Search   string
	Limit    int
}
