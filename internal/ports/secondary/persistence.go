// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
//
// Every record is owned by a user. Repository reads and writes are scoped by
// user ID, and a record owned by someone else reads as apperr.ErrNotFound.
package secondary

import "context"

// ClientRepository defines the secondary port for client persistence.
type ClientRepository interface {
	// Create persists a new client.
	Create(ctx context.Context, client *ClientRecord) error

	// GetByID retrieves a client by its ID.
	GetByID(ctx context.Context, userID, id string) (*ClientRecord, error)

	// List retrieves clients matching the given filters, ordered by name.
	List(ctx context.Context, filters ClientFilters) ([]*ClientRecord, error)

	// Update updates an existing client.
	Update(ctx context.Context, client *ClientRecord) error

	// UpdateStatus changes a client's status.
	UpdateStatus(ctx context.Context, userID, id, status string) error

	// Delete removes a client from persistence.
	Delete(ctx context.Context, userID, id string) error

	// GetNextID returns the next available client ID.
	GetNextID(ctx context.Context) (string, error)

	// Count returns the number of clients owned by the user.
	Count(ctx context.Context, userID string) (int, error)

	// CountOpenCases returns the number of open cases of a client.
	CountOpenCases(ctx context.Context, userID, clientID string) (int, error)
}

// ClientRecord represents a client as stored in persistence.
type ClientRecord struct {
	ID                string
	UserID            string
	Name              string
	CPF               string // Empty string means null
	Category          string
	Phone             string // Empty string means null
	Email             string // Empty string means null
	BirthDate         string // YYYY-MM-DD, empty string means null
	Gender            string // Empty string means null
	MaritalStatus     string // Empty string means null
	Nationality       string
	Profession        string
	RGNumber          string
	RGIssuer          string
	AddressStreet     string
	AddressNumber     string
	Neighborhood      string
	City              string
	State             string
	ZipCode           string
	RespondentName    string
	RespondentAddress string
	RespondentCPF     string
	Status            string
	CreatedAt         string
	UpdatedAt         string
}

// ClientFilters contains filter options for querying clients.
type ClientFilters struct {
	UserID   string
	Status   string
	Category string
	Search   string // substring of name
	Limit    int
}

// CaseRepository defines the secondary port for case persistence.
type CaseRepository interface {
	// Create persists a new case.
	Create(ctx context.Context, c *CaseRecord) error

	// GetByID retrieves a case by its ID.
	GetByID(ctx context.Context, userID, id string) (*CaseRecord, error)

	// List retrieves cases matching the given filters, newest first.
	List(ctx context.Context, filters CaseFilters) ([]*CaseRecord, error)

	// Update updates an existing case.
	Update(ctx context.Context, c *CaseRecord) error

	// UpdateStatus changes the status, setting or clearing completed_at.
	UpdateStatus(ctx context.Context, userID, id, status string) error

	// Delete removes a case from persistence.
	Delete(ctx context.Context, userID, id string) error

	// GetNextID returns the next available case ID.
	GetNextID(ctx context.Context) (string, error)

	// CountByStatus returns case counts keyed by status.
	CountByStatus(ctx context.Context, userID string) (map[string]int, error)

	// ClientExists checks if a client exists (for validation).
	ClientExists(ctx context.Context, userID, clientID string) (bool, error)
}

// CaseRecord represents a case as stored in persistence.
type CaseRecord struct {
	ID          string
	UserID      string
	ClientID    string
	Category    string
	Subcategory string // Empty string means null
	Description string // Empty string means null
	Status      string
	CreatedAt   string
	UpdatedAt   string
	CompletedAt string // Empty string means null
}

// CaseFilters contains filter options for querying cases.
type CaseFilters struct {
	UserID   string
	ClientID string
	Status   string
	Category string
}

// TaskRepository defines the secondary port for task persistence.
type TaskRepository interface {
	// Create persists a new task.
	Create(ctx context.Context, task *TaskRecord) error

	// GetByID retrieves a task by its ID.
	GetByID(ctx context.Context, userID, id string) (*TaskRecord, error)

	// List retrieves tasks matching the given filters, by due date.
	List(ctx context.Context, filters TaskFilters) ([]*TaskRecord, error)

	// Update updates an existing task.
	Update(ctx context.Context, task *TaskRecord) error

	// UpdateStatus changes the status, setting or clearing completed_at.
	UpdateStatus(ctx context.Context, userID, id, status string) error

	// Delete removes a task from persistence.
	Delete(ctx context.Context, userID, id string) error

	// GetNextID returns the next available task ID.
	GetNextID(ctx context.Context) (string, error)

	// CountByStatus returns task counts keyed by status.
	CountByStatus(ctx context.Context, userID string) (map[string]int, error)

	// CaseExists checks if a case exists (for validation).
	CaseExists(ctx context.Context, userID, caseID string) (bool, error)

	// ClientExists checks if a client exists (for validation).
	ClientExists(ctx context.Context, userID, clientID string) (bool, error)
}

// TaskRecord represents a task as stored in persistence.
type TaskRecord struct {
	ID          string
	UserID      string
	CaseID      string // Empty string means null
	ClientID    string // Empty string means null
	Title       string
	Description string // Empty string means null
	DueDate     string // RFC3339, empty string means null
	Status      string
	CreatedAt   string
	UpdatedAt   string
	CompletedAt string // Empty string means null
}

// TaskFilters contains filter options for querying tasks.
type TaskFilters struct {
	UserID   string
	Status   string
	CaseID   string
	ClientID string
}

// JudicialProcessRepository defines the secondary port for judicial process persistence.
type JudicialProcessRepository interface {
	// Create persists a new judicial process.
	Create(ctx context.Context, p *JudicialProcessRecord) error

	// GetByID retrieves a process by its ID.
	GetByID(ctx context.Context, userID, id string) (*JudicialProcessRecord, error)

	// List retrieves processes matching the filters, most recently updated first.
	List(ctx context.Context, filters JudicialProcessFilters) ([]*JudicialProcessRecord, error)

	// Delete removes a process from persistence.
	Delete(ctx context.Context, userID, id string) error

	// GetNextID returns the next available process ID.
	GetNextID(ctx context.Context) (string, error)

	// Tribunals returns the distinct non-empty tribunals, sorted.
	Tribunals(ctx context.Context, userID string) ([]string, error)

	// Count returns the number of processes owned by the user.
	Count(ctx context.Context, userID string) (int, error)

	// NumberExists checks whether the user already registered a process number.
	NumberExists(ctx context.Context, userID, number string) (bool, error)

	// ClientExists checks if a client exists (for validation).
	ClientExists(ctx context.Context, userID, clientID string) (bool, error)
}

// JudicialProcessRecord represents a judicial process as stored in persistence.
type JudicialProcessRecord struct {
	ID               string
	UserID           string
	ClientID         string
	ProcessNumber    string // 20 digits
	Tribunal         string // Empty string means null
	Description      string // Empty string means null
	RegistrationDate string // YYYY-MM-DD, empty string means null
	CreatedAt        string
	UpdatedAt        string
}

// JudicialProcessFilters contains filter options for querying processes.
type JudicialProcessFilters struct {
	UserID   string
	ClientID string
	Tribunal string
	Limit    int
}

// TemplateRepository defines the secondary port for petition template persistence.
type TemplateRepository interface {
	// Create persists a new template.
	Create(ctx context.Context, t *TemplateRecord) error

	// GetByID retrieves a template by its ID.
	GetByID(ctx context.Context, userID, id string) (*TemplateRecord, error)

	// GetByOrdem retrieves the template with the given catalog order.
	GetByOrdem(ctx context.Context, userID, ordem string) (*TemplateRecord, error)

	// List retrieves all templates of the user, ordered by ordem.
	List(ctx context.Context, userID string) ([]*TemplateRecord, error)

	// Delete removes a template and its file rows.
	Delete(ctx context.Context, userID, id string) error

	// DeleteAll removes every template of the user and returns how many.
	DeleteAll(ctx context.Context, userID string) (int, error)

	// GetNextID returns the next available template ID.
	GetNextID(ctx context.Context) (string, error)

	// Count returns the number of templates owned by the user.
	Count(ctx context.Context, userID string) (int, error)

	// AddFile persists a file row attached to a template.
	AddFile(ctx context.Context, f *TemplateFileRecord) error

	// GetFile retrieves a file row by ID.
	GetFile(ctx context.Context, userID, id string) (*TemplateFileRecord, error)

	// ListFiles retrieves file rows; an empty templateID lists every file of the user.
	ListFiles(ctx context.Context, userID, templateID string) ([]*TemplateFileRecord, error)

	// DeleteFile removes a file row.
	DeleteFile(ctx context.Context, userID, id string) error

	// GetNextFileID returns the next available template file ID.
	GetNextFileID(ctx context.Context) (string, error)
}

// TemplateRecord represents a petition template as stored in persistence.
type TemplateRecord struct {
	ID        string
	UserID    string
	Tema      string
	Subtema   string
	Titulo    string
	Ordem     string
	Descricao string // Empty string means null
	CreatedAt string
	UpdatedAt string
}

// TemplateFileRecord represents a template attachment as stored in persistence.
type TemplateFileRecord struct {
	ID          string
	TemplateID  string
	UserID      string
	FileName    string
	StoragePath string
	MimeType    string
	Size        int64
	CreatedAt   string
}

// ProfileRepository defines the secondary port for user profile persistence.
type ProfileRepository interface {
	// Create persists a new profile.
	Create(ctx context.Context, p *ProfileRecord) error

	// GetByUserID retrieves a profile; missing rows return apperr.ErrProfileNotFound.
	GetByUserID(ctx context.Context, userID string) (*ProfileRecord, error)

	// Update updates the editable profile fields.
	Update(ctx context.Context, p *ProfileRecord) error

	// UpdateAvatar replaces the avatar type and JSON payload.
	UpdateAvatar(ctx context.Context, userID, avatarType, avatarData string) error
}

// ProfileRecord represents a user profile as stored in persistence.
type ProfileRecord struct {
	UserID             string
	FullName           string
	Email              string
	CPF                string // Empty string means null
	Phone              string // Empty string means null
	OABNumber          string // Empty string means null
	State              string
	City               string
	AvatarType         string
	AvatarData         string // JSON
	ThemeSettings      string // JSON, empty string means null
	SubscriptionActive bool
	ApprovedByAdmin    bool
	ApprovalDate       string // Empty string means null
	NextPayment        string // Empty string means null
	CreatedAt          string
	UpdatedAt          string
}

// IconRepository defines the secondary port for uploaded avatar icons.
type IconRepository interface {
	// Create persists a new icon.
	Create(ctx context.Context, icon *IconRecord) error

	// GetByID retrieves an icon by its ID.
	GetByID(ctx context.Context, userID, id string) (*IconRecord, error)

	// List retrieves the user's icons, newest first.
	List(ctx context.Context, userID string) ([]*IconRecord, error)

	// Delete removes an icon.
	Delete(ctx context.Context, userID, id string) error

	// GetNextID returns the next available icon ID.
	GetNextID(ctx context.Context) (string, error)
}

// IconRecord represents an uploaded icon as stored in persistence.
type IconRecord struct {
	ID          string
	UserID      string
	Name        string
	StoragePath string
	URL         string
	Size        int64
	MimeType    string
	CreatedAt   string
}

// PaymentRepository defines the secondary port for subscription payments.
type PaymentRepository interface {
	// Create persists a new payment.
	Create(ctx context.Context, p *PaymentRecord) error

	// GetByID retrieves a payment by its ID.
	GetByID(ctx context.Context, userID, id string) (*PaymentRecord, error)

	// ListByStatus retrieves the user's payments in any of the statuses, newest first.
	ListByStatus(ctx context.Context, userID string, statuses []string) ([]*PaymentRecord, error)

	// LatestPending retrieves the newest pending payment; none returns apperr.ErrNotFound.
	LatestPending(ctx context.Context, userID string) (*PaymentRecord, error)

	// UpdateStatus changes a payment's status.
	UpdateStatus(ctx context.Context, userID, id, status string) error

	// ConfirmPending confirms a pending payment and activates the owner's
	// subscription atomically, creating the profile row when it is missing.
	// A payment that is not pending returns apperr.ErrNotFound.
	ConfirmPending(ctx context.Context, c PaymentConfirmation) error

	// GetNextID returns the next available payment ID.
	GetNextID(ctx context.Context) (string, error)
}

// PaymentConfirmation carries what ConfirmPending writes.
type PaymentConfirmation struct {
	UserID      string
	PaymentID   string
	ApprovedAt  string // RFC3339
	NextPayment string // RFC3339
}

// PaymentRecord represents a payment as stored in persistence.
type PaymentRecord struct {
	ID             string
	UserID         string
	AmountCents    int64
	Status         string
	Method         string // Empty string means null
	SubscriptionID string // Empty string means null
	CreatedAt      string
	UpdatedAt      string
}

// CountRepository reports per-user row counts across tables.
type CountRepository interface {
	// CountAll returns row counts keyed by table name.
	CountAll(ctx context.Context, userID string) (map[string]int, error)
}
