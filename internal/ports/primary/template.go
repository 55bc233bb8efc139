package primary

import (
	"context"
	"io"

	"github.com/example/praxis/internal/core/petition"
)

// TemplateService defines the primary port for petition templates.
type TemplateService interface {
	// CreateTemplate creates a template.
	CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*Template, error)

	// GetTemplate retrieves a template with its files.
	GetTemplate(ctx context.Context, templateID string) (*Template, error)

	// ListTemplates lists templates matching the search and theme filter.
	ListTemplates(ctx context.Context, filters TemplateFilters) ([]*Template, error)

	// DeleteTemplate deletes a template and its stored files.
	DeleteTemplate(ctx context.Context, templateID string) error

	// ClearTemplates deletes every template of the user and returns how many.
	ClearTemplates(ctx context.Context) (int, error)

	// AttachFile stores a PDF or DOCX file on a template.
	AttachFile(ctx context.Context, req AttachFileRequest) (*TemplateFile, error)

	// UploadToCatalogItem attaches a file to the template of a catalog item,
	// creating the template on first upload.
	UploadToCatalogItem(ctx context.Context, itemID, fileName string, content io.Reader) (*TemplateFile, error)

	// OpenFile returns a file row and a reader for its content.
	OpenFile(ctx context.Context, fileID string) (*TemplateFile, io.ReadCloser, error)

	// DeleteFile deletes a stored file.
	DeleteFile(ctx context.Context, fileID string) error

	// Temas returns the predefined theme list.
	Temas() []string

	// Catalog returns the numbered petition catalog.
	Catalog() []petition.CatalogCategory
}

// CreateTemplateRequest contains parameters for creating a template.
type CreateTemplateRequest struct {
	Tema      string `json:"tema"`
	Subtema   string `json:"subtema"`
	Titulo    string `json:"titulo"`
	Ordem     string `json:"ordem"`
	Descricao string `json:"descricao,omitempty"`
}

// AttachFileRequest contains parameters for attaching a file.
type AttachFileRequest struct {
	TemplateID string
	FileName   string
	Content    io.Reader
}

// Template represents a petition template at the port boundary.
type Template struct {
	ID        string          `json:"id"`
	Tema      string          `json:"tema"`
	Subtema   string          `json:"subtema"`
	Titulo    string          `json:"titulo"`
	Ordem     string          `json:"ordem"`
	Descricao string          `json:"descricao,omitempty"`
	Files     []*TemplateFile `json:"files"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

// TemplateFile represents a template attachment at the port boundary.
type TemplateFile struct {
	ID         string `json:"id"`
	TemplateID string `json:"templateId"`
	FileName   string `json:"fileName"`
	MimeType   string `json:"mimeType"`
	Size       int64  `json:"size"`
	URL        string `json:"url"`
	CreatedAt  string `json:"createdAt"`
}

// TemplateFilters contains filter options for listing templates.
type TemplateFilters struct {
	Search string
	Tema   string // "" or "Todos" for every theme
}
