package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/ports/secondary"
)

// mockCaseRepository implements secondary.CaseRepository for testing.
type mockCaseRepository struct {
	cases        map[string]*secondary.CaseRecord
	clientExists bool
}

var _ secondary.CaseRepository = (*mockCaseRepository)(nil)

func newMockCaseRepository() *mockCaseRepository {
	return &mockCaseRepository{
		cases:        make(map[string]*secondary.CaseRecord),
		clientExists: true,
	}
}

func (m *mockCaseRepository) Create(ctx context.Context, c *secondary.CaseRecord) error {
	m.cases[c.ID] = c
	return nil
}

func (m *mockCaseRepository) GetByID(ctx context.Context, userID, id string) (*secondary.CaseRecord, error) {
	c, ok := m.cases[id]
	if !ok || c.UserID != userID {
		return nil, notFound("case", id)
	}
	cp := *c
	return &cp, nil
}

func (m *mockCaseRepository) List(ctx context.Context, filters secondary.CaseFilters) ([]*secondary.CaseRecord, error) {
	var out []*secondary.CaseRecord
	for _, c := range m.cases {
		if c.UserID == filters.UserID && (filters.Status == "" || c.Status == filters.Status) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCaseRepository) Update(ctx context.Context, c *secondary.CaseRecord) error {
	m.cases[c.ID] = c
	return nil
}

func (m *mockCaseRepository) UpdateStatus(ctx context.Context, userID, id, status string) error {
	c, ok := m.cases[id]
	if !ok || c.UserID != userID {
		return notFound("case", id)
	}
	c.Status = status
	return nil
}

func (m *mockCaseRepository) Delete(ctx context.Context, userID, id string) error {
	delete(m.cases, id)
	return nil
}

func (m *mockCaseRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID("CASE", len(m.cases)), nil
}

func (m *mockCaseRepository) CountByStatus(ctx context.Context, userID string) (map[string]int, error) {
	counts := map[string]int{}
	for _, c := range m.cases {
		if c.UserID == userID {
			counts[c.Status]++
		}
	}
	return counts, nil
}

func (m *mockCaseRepository) ClientExists(ctx context.Context, userID, clientID string) (bool, error) {
	return m.clientExists, nil
}

func TestCreateCase(t *testing.T) {
	repo := newMockCaseRepository()
	service := NewCaseService(repo)

	c, err := service.CreateCase(userCtx(), primary.CreateCaseRequest{
		ClientID:    "CLIENT-001",
		Category:    "social-security",
		Subcategory: "retirement",
	})

	require.NoError(t, err)
	assert.Equal(t, "CASE-001", c.ID)
	assert.Equal(t, "open", c.Status)
	assert.Equal(t, "Em Aberto", c.StatusLabel)
	assert.Equal(t, "Aposentadoria", c.SubcategoryLabel)
}

func TestCreateCase_Rejections(t *testing.T) {
	tests := []struct {
		name         string
		req          primary.CreateCaseRequest
		clientExists bool
		validation   bool
	}{
		{"missing category", primary.CreateCaseRequest{ClientID: "CLIENT-001"}, true, true},
		{"unknown client", primary.CreateCaseRequest{ClientID: "CLIENT-404", Category: "civil"}, false, false},
		{"subcategory of another category", primary.CreateCaseRequest{ClientID: "CLIENT-001", Category: "criminal", Subcategory: "retirement"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockCaseRepository()
			repo.clientExists = tt.clientExists
			service := NewCaseService(repo)

			_, err := service.CreateCase(userCtx(), tt.req)

			require.Error(t, err)
			_, isValidation := apperr.AsValidation(err)
			assert.Equal(t, tt.validation, isValidation)
			assert.Equal(t, !tt.validation, apperr.IsGuard(err))
			assert.Empty(t, repo.cases)
		})
	}
}

func TestUpdateCase_CategoryChangeClearsSubcategory(t *testing.T) {
	repo := newMockCaseRepository()
	repo.cases["CASE-001"] = &secondary.CaseRecord{
		ID: "CASE-001", UserID: testUserID, Category: "social-security", Subcategory: "retirement", Status: "open",
	}
	service := NewCaseService(repo)

	c, err := service.UpdateCase(userCtx(), primary.UpdateCaseRequest{CaseID: "CASE-001", Category: "criminal"})

	require.NoError(t, err)
	assert.Equal(t, "criminal", c.Category)
	assert.Empty(t, c.Subcategory)
}

func TestCaseStatusTransitions(t *testing.T) {
	repo := newMockCaseRepository()
	repo.cases["CASE-001"] = &secondary.CaseRecord{ID: "CASE-001", UserID: testUserID, Category: "civil", Status: "open"}
	service := NewCaseService(repo)
	ctx := userCtx()

	assert.True(t, apperr.IsGuard(service.ReopenCase(ctx, "CASE-001")))
	require.NoError(t, service.CompleteCase(ctx, "CASE-001"))
	assert.Equal(t, "completed", repo.cases["CASE-001"].Status)
	assert.True(t, apperr.IsGuard(service.CompleteCase(ctx, "CASE-001")))

	c, err := service.ToggleCaseStatus(ctx, "CASE-001")
	require.NoError(t, err)
	assert.Equal(t, "open", c.Status)
}

func TestCategories(t *testing.T) {
	service := NewCaseService(newMockCaseRepository())

	cats := service.Categories()

	require.NotEmpty(t, cats)
	assert.Equal(t, "social-security", cats[0].Value)
	assert.NotEmpty(t, cats[0].Subcategories)
}
