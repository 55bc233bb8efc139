package app

import (
	"context"
	"fmt"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/core/legalcase"
	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/ports/secondary"
)

// CaseServiceImpl implements the CaseService interface.
type CaseServiceImpl struct {
	caseRepo secondary.CaseRepository
}

// NewCaseService creates a new CaseService with injected dependencies.
func NewCaseService(caseRepo secondary.CaseRepository) *CaseServiceImpl {
	return &CaseServiceImpl{caseRepo: caseRepo}
}

var _ primary.CaseService = (*CaseServiceImpl)(nil)

// CreateCase opens a new case for a client.
func (s *CaseServiceImpl) CreateCase(ctx context.Context, req primary.CreateCaseRequest) (*primary.Case, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Category == "" {
		return nil, apperr.Field("category", "Categoria é obrigatório")
	}

	exists, err := s.caseRepo.ClientExists(ctx, userID, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate client: %w", err)
	}
	if r := legalcase.CanCreateCase(legalcase.CreateCaseContext{
		ClientID:     req.ClientID,
		ClientExists: exists,
		Category:     req.Category,
		Subcategory:  req.Subcategory,
	}); !r.Allowed {
		return nil, apperr.Guard(r.Reason)
	}

	record := &secondary.CaseRecord{
		UserID:      userID,
		ClientID:    req.ClientID,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Description: req.Description,
		Status:      string(legalcase.StatusOpen),
	}
	nextID, err := insertWithNextID(ctx, s.caseRepo.GetNextID, func(id string) error {
		record.ID = id
		return s.caseRepo.Create(ctx, record)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}

	created, err := s.caseRepo.GetByID(ctx, userID, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created case: %w", err)
	}
	return recordToCase(created), nil
}

// GetCase retrieves a case by ID.
func (s *CaseServiceImpl) GetCase(ctx context.Context, caseID string) (*primary.Case, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	record, err := s.caseRepo.GetByID(ctx, userID, caseID)
	if err != nil {
		return nil, err
	}
	return recordToCase(record), nil
}

// ListCases lists cases with optional filters.
func (s *CaseServiceImpl) ListCases(ctx context.Context, filters primary.CaseFilters) ([]*primary.Case, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.caseRepo.List(ctx, secondary.CaseFilters{
		UserID:   userID,
		ClientID: filters.ClientID,
		Status:   filters.Status,
		Category: filters.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}

	cases := make([]*primary.Case, len(records))
	for i, r := range records {
		cases[i] = recordToCase(r)
	}
	return cases, nil
}

// UpdateCase updates category, subcategory and/or description. Changing the
// category without a subcategory clears the old subcategory.
func (s *CaseServiceImpl) UpdateCase(ctx context.Context, req primary.UpdateCaseRequest) (*primary.Case, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	record, err := s.caseRepo.GetByID(ctx, userID, req.CaseID)
	if err != nil {
		return nil, err
	}

	if req.Category != "" && req.Category != record.Category {
		record.Category = req.Category
		record.Subcategory = ""
	}
	if req.Subcategory != "" {
		record.Subcategory = req.Subcategory
	}
	if req.Description != "" {
		record.Description = req.Description
	}

	if r := legalcase.CanChangeCategory(record.Category, record.Subcategory); !r.Allowed {
		return nil, apperr.Guard(r.Reason)
	}

	if err := s.caseRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update case: %w", err)
	}

	updated, err := s.caseRepo.GetByID(ctx, userID, req.CaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated case: %w", err)
	}
	return recordToCase(updated), nil
}

// ToggleCaseStatus flips a case between open and completed.
func (s *CaseServiceImpl) ToggleCaseStatus(ctx context.Context, caseID string) (*primary.Case, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	record, err := s.caseRepo.GetByID(ctx, userID, caseID)
	if err != nil {
		return nil, err
	}

	next := legalcase.Toggle(legalcase.Status(record.Status))
	if err := s.caseRepo.UpdateStatus(ctx, userID, caseID, string(next)); err != nil {
		return nil, fmt.Errorf("failed to toggle case status: %w", err)
	}

	updated, err := s.caseRepo.GetByID(ctx, userID, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch case: %w", err)
	}
	return recordToCase(updated), nil
}

// CompleteCase marks an open case as completed.
func (s *CaseServiceImpl) CompleteCase(ctx context.Context, caseID string) error {
	return s.transition(ctx, caseID, legalcase.StatusCompleted, legalcase.CanCompleteCase)
}

// ReopenCase reopens a completed case.
func (s *CaseServiceImpl) ReopenCase(ctx context.Context, caseID string) error {
	return s.transition(ctx, caseID, legalcase.StatusOpen, legalcase.CanReopenCase)
}

func (s *CaseServiceImpl) transition(
	ctx context.Context,
	caseID string,
	to legalcase.Status,
	check func(legalcase.StatusTransitionContext) legalcase.GuardResult,
) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	record, err := s.caseRepo.GetByID(ctx, userID, caseID)
	if err != nil {
		return err
	}
	if r := check(legalcase.StatusTransitionContext{CaseID: caseID, Status: legalcase.Status(record.Status)}); !r.Allowed {
		return apperr.Guard(r.Reason)
	}
	return s.caseRepo.UpdateStatus(ctx, userID, caseID, string(to))
}

// DeleteCase deletes a case.
func (s *CaseServiceImpl) DeleteCase(ctx context.Context, caseID string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	return s.caseRepo.Delete(ctx, userID, caseID)
}

// Categories returns the category catalog with subcategories.
func (s *CaseServiceImpl) Categories() []primary.CategoryOption {
	cats := legalcase.Categories()
	out := make([]primary.CategoryOption, len(cats))
	for i, c := range cats {
		subs := legalcase.Subcategories(c.Value)
		opts := make([]primary.Option, len(subs))
		for j, o := range subs {
			opts[j] = primary.Option{Value: o.Value, Label: o.Label}
		}
		out[i] = primary.CategoryOption{Value: c.Value, Label: c.Label, Subcategories: opts}
	}
	return out
}

func recordToCase(r *secondary.CaseRecord) *primary.Case {
	return &primary.Case{
		ID:               r.ID,
		ClientID:         r.ClientID,
		Category:         r.Category,
		CategoryLabel:    legalcase.CategoryLabel(r.Category),
		Subcategory:      r.Subcategory,
		SubcategoryLabel: subcategoryLabel(r.Category, r.Subcategory),
		Description:      r.Description,
		Status:           r.Status,
		StatusLabel:      legalcase.StatusLabel(r.Status),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		CompletedAt:      r.CompletedAt,
	}
}

func subcategoryLabel(category, sub string) string {
	if sub == "" {
		return ""
	}
	return legalcase.SubcategoryLabel(category, sub)
}
