package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/core/petition"
	"github.com/example/praxis/internal/logger"
	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/ports/secondary"
)

const templateBucket = "templates"

// TemplateServiceImpl implements the TemplateService interface.
type TemplateServiceImpl struct {
	templateRepo secondary.TemplateRepository
	storage      secondary.FileStorage
}

// NewTemplateService creates a new TemplateService with injected dependencies.
func NewTemplateService(templateRepo secondary.TemplateRepository, storage secondary.FileStorage) *TemplateServiceImpl {
	return &TemplateServiceImpl{
		templateRepo: templateRepo,
		storage:      storage,
	}
}

var _ primary.TemplateService = (*TemplateServiceImpl)(nil)

// CreateTemplate creates a template.
func (s *TemplateServiceImpl) CreateTemplate(ctx context.Context, req primary.CreateTemplateRequest) (*primary.Template, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	record, err := s.create(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	return s.withFiles(recordToTemplate(record), nil), nil
}

func (s *TemplateServiceImpl) create(ctx context.Context, userID string, req primary.CreateTemplateRequest) (*secondary.TemplateRecord, error) {
	if r := petition.CanCreateTemplate(petition.CreateTemplateContext{
		Tema:    req.Tema,
		Subtema: req.Subtema,
		Titulo:  req.Titulo,
		Ordem:   req.Ordem,
	}); !r.Allowed {
		return nil, apperr.Guard(r.Reason)
	}

	record := &secondary.TemplateRecord{
		UserID:    userID,
		Tema:      strings.TrimSpace(req.Tema),
		Subtema:   strings.TrimSpace(req.Subtema),
		Titulo:    strings.TrimSpace(req.Titulo),
		Ordem:     strings.TrimSpace(req.Ordem),
		Descricao: req.Descricao,
	}
	nextID, err := insertWithNextID(ctx, s.templateRepo.GetNextID, func(id string) error {
		record.ID = id
		return s.templateRepo.Create(ctx, record)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return s.templateRepo.GetByID(ctx, userID, nextID)
}

// GetTemplate retrieves a template with its files.
func (s *TemplateServiceImpl) GetTemplate(ctx context.Context, templateID string) (*primary.Template, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	record, err := s.templateRepo.GetByID(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}
	files, err := s.templateRepo.ListFiles(ctx, userID, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list template files: %w", err)
	}
	return s.withFiles(recordToTemplate(record), files), nil
}

// ListTemplates lists templates whose titulo, tema or subtema match the
// search term, ignoring case and accents.
func (s *TemplateServiceImpl) ListTemplates(ctx context.Context, filters primary.TemplateFilters) ([]*primary.Template, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.templateRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	files, err := s.templateRepo.ListFiles(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list template files: %w", err)
	}
	byTemplate := make(map[string][]*secondary.TemplateFileRecord)
	for _, f := range files {
		byTemplate[f.TemplateID] = append(byTemplate[f.TemplateID], f)
	}

	term := strings.TrimSpace(filters.Search)
	out := make([]*primary.Template, 0, len(records))
	for _, r := range records {
		if !petition.Matches(r.Titulo, r.Tema, r.Subtema, term, filters.Tema) {
			continue
		}
		out = append(out, s.withFiles(recordToTemplate(r), byTemplate[r.ID]))
	}
	return out, nil
}

// DeleteTemplate deletes a template and its stored files.
func (s *TemplateServiceImpl) DeleteTemplate(ctx context.Context, templateID string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	if _, err := s.templateRepo.GetByID(ctx, userID, templateID); err != nil {
		return err
	}
	files, err := s.templateRepo.ListFiles(ctx, userID, templateID)
	if err != nil {
		return fmt.Errorf("failed to list template files: %w", err)
	}
	if err := s.templateRepo.Delete(ctx, userID, templateID); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	s.removeStored(ctx, files)
	return nil
}

// ClearTemplates deletes every template of the user and returns how many.
func (s *TemplateServiceImpl) ClearTemplates(ctx context.Context) (int, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return 0, err
	}
	files, err := s.templateRepo.ListFiles(ctx, userID, "")
	if err != nil {
		return 0, fmt.Errorf("failed to list template files: %w", err)
	}
	n, err := s.templateRepo.DeleteAll(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear templates: %w", err)
	}
	s.removeStored(ctx, files)

	logger.From(ctx).Info("templates cleared",
		logger.UserID(userID),
		zap.Int("templates", n),
		zap.Int("files", len(files)))
	return n, nil
}

// AttachFile stores a PDF or DOCX file on a template. The content type is
// sniffed and must agree with the file extension.
func (s *TemplateServiceImpl) AttachFile(ctx context.Context, req primary.AttachFileRequest) (*primary.TemplateFile, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.templateRepo.GetByID(ctx, userID, req.TemplateID); err != nil {
		return nil, err
	}
	return s.attach(ctx, userID, req.TemplateID, req.FileName, req.Content)
}

func (s *TemplateServiceImpl) attach(ctx context.Context, userID, templateID, fileName string, content io.Reader) (*primary.TemplateFile, error) {
	detected, body, err := sniff(content)
	if err != nil {
		return nil, apperr.Field("file", err.Error())
	}
	if r := petition.CanAttachFile(petition.AttachFileContext{
		FileName:     fileName,
		DetectedMIME: detected,
	}); !r.Allowed {
		return nil, apperr.Guard(r.Reason)
	}

	storagePath, size, err := s.storage.Save(ctx, templateBucket, fileName, body)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	nextID, err := s.templateRepo.GetNextFileID(ctx)
	if err != nil {
		s.removeStored(ctx, []*secondary.TemplateFileRecord{{StoragePath: storagePath}})
		return nil, fmt.Errorf("failed to generate file ID: %w", err)
	}
	record := &secondary.TemplateFileRecord{
		ID:          nextID,
		TemplateID:  templateID,
		UserID:      userID,
		FileName:    fileName,
		StoragePath: storagePath,
		MimeType:    detected,
		Size:        size,
	}
	if err := s.templateRepo.AddFile(ctx, record); err != nil {
		s.removeStored(ctx, []*secondary.TemplateFileRecord{record})
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	logger.From(ctx).Info("template file attached",
		logger.UserID(userID),
		logger.Entity(templateID),
		zap.String("file_id", nextID),
		zap.Int64("size", size))

	created, err := s.templateRepo.GetFile(ctx, userID, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attached file: %w", err)
	}
	return s.recordToFile(created), nil
}

// UploadToCatalogItem attaches a file to the template of a catalog item.
// The template is looked up by ordem and created on first upload.
func (s *TemplateServiceImpl) UploadToCatalogItem(ctx context.Context, itemID, fileName string, content io.Reader) (*primary.TemplateFile, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	category, item, ok := petition.LookupCatalogItem(itemID)
	if !ok {
		return nil, apperr.Field("itemId", fmt.Sprintf("Item de catálogo %q não encontrado", itemID))
	}

	record, err := s.templateRepo.GetByOrdem(ctx, userID, item.ID)
	switch {
	case err == nil:
	case apperr.IsNotFound(err):
		record, err = s.create(ctx, userID, primary.CreateTemplateRequest{
			Tema:    category,
			Subtema: petition.DefaultSubtema,
			Titulo:  item.Title,
			Ordem:   item.ID,
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to look up catalog template: %w", err)
	}

	return s.attach(ctx, userID, record.ID, fileName, content)
}

// OpenFile returns a file row and a reader for its content. The caller
// closes the reader.
func (s *TemplateServiceImpl) OpenFile(ctx context.Context, fileID string) (*primary.TemplateFile, io.ReadCloser, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, nil, err
	}
	record, err := s.templateRepo.GetFile(ctx, userID, fileID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.storage.Open(ctx, record.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file %s: %w", fileID, err)
	}
	return s.recordToFile(record), rc, nil
}

// DeleteFile deletes a stored file.
func (s *TemplateServiceImpl) DeleteFile(ctx context.Context, fileID string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	record, err := s.templateRepo.GetFile(ctx, userID, fileID)
	if err != nil {
		return err
	}
	if err := s.templateRepo.DeleteFile(ctx, userID, fileID); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	s.removeStored(ctx, []*secondary.TemplateFileRecord{record})
	return nil
}

// Temas returns the predefined theme list.
func (s *TemplateServiceImpl) Temas() []string {
	return petition.Temas
}

// Catalog returns the numbered petition catalog.
func (s *TemplateServiceImpl) Catalog() []petition.CatalogCategory {
	return petition.Catalog
}

// removeStored deletes blobs after their rows are gone. Failures leave an
// orphaned blob and are only logged.
func (s *TemplateServiceImpl) removeStored(ctx context.Context, files []*secondary.TemplateFileRecord) {
	for _, f := range files {
		if err := s.storage.Delete(ctx, f.StoragePath); err != nil {
			logger.From(ctx).Warn("failed to delete stored file",
				zap.String("path", f.StoragePath),
				zap.Error(err))
		}
	}
}

func (s *TemplateServiceImpl) withFiles(t *primary.Template, files []*secondary.TemplateFileRecord) *primary.Template {
	t.Files = make([]*primary.TemplateFile, len(files))
	for i, f := range files {
		t.Files[i] = s.recordToFile(f)
	}
	return t
}

func (s *TemplateServiceImpl) recordToFile(f *secondary.TemplateFileRecord) *primary.TemplateFile {
	return &primary.TemplateFile{
		ID:         f.ID,
		TemplateID: f.TemplateID,
		FileName:   f.FileName,
		MimeType:   f.MimeType,
		Size:       f.Size,
		URL:        s.storage.URL(f.StoragePath),
		CreatedAt:  f.CreatedAt,
	}
}

func recordToTemplate(r *secondary.TemplateRecord) *primary.Template {
	return &primary.Template{
		ID:        r.ID,
		Tema:      r.Tema,
		Subtema:   r.Subtema,
		Titulo:    r.Titulo,
		Ordem:     r.Ordem,
		Descricao: r.Descricao,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
