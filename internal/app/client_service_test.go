package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/ports/secondary"
	"github.com/example/praxis/internal/validation"
)

// mockClientRepository implements secondary.ClientRepository for testing.
type mockClientRepository struct {
	clients   map[string]*secondary.ClientRecord
	openCases map[string]int
	createErr error
	deleted   []string
}

var _ secondary.ClientRepository = (*mockClientRepository)(nil)

func newMockClientRepository() *mockClientRepository {
	return &mockClientRepository{
		clients:   make(map[string]*secondary.ClientRecord),
		openCases: make(map[string]int),
	}
}

func (m *mockClientRepository) Create(ctx context.Context, c *secondary.ClientRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.clients[c.ID] = c
	return nil
}

func (m *mockClientRepository) GetByID(ctx context.Context, userID, id string) (*secondary.ClientRecord, error) {
	c, ok := m.clients[id]
	if !ok || c.UserID != userID {
		return nil, notFound("client", id)
	}
	return c, nil
}

func (m *mockClientRepository) List(ctx context.Context, filters secondary.ClientFilters) ([]*secondary.ClientRecord, error) {
	var out []*secondary.ClientRecord
	for _, c := range m.clients {
		if c.UserID != filters.UserID {
			continue
		}
		if filters.Status != "" && c.Status != filters.Status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *mockClientRepository) Update(ctx context.Context, c *secondary.ClientRecord) error {
	m.clients[c.ID] = c
	return nil
}

func (m *mockClientRepository) UpdateStatus(ctx context.Context, userID, id, status string) error {
	c, err := m.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	c.Status = status
	return nil
}

func (m *mockClientRepository) Delete(ctx context.Context, userID, id string) error {
	delete(m.clients, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockClientRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID("CLIENT", len(m.clients)), nil
}

func (m *mockClientRepository) Count(ctx context.Context, userID string) (int, error) {
	n := 0
	for _, c := range m.clients {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *mockClientRepository) CountOpenCases(ctx context.Context, userID, clientID string) (int, error) {
	return m.openCases[clientID], nil
}

func newTestClientService() (*ClientServiceImpl, *mockClientRepository, *validation.Tracker) {
	repo := newMockClientRepository()
	tracker := validation.NewTracker(nil)
	return NewClientService(repo, tracker), repo, tracker
}

func validClientInput() primary.ClientInput {
	return primary.ClientInput{
		Name:     "Maria da Silva",
		CPF:      "52998224725",
		Category: "social-security",
		Phone:    "11987654321",
		Email:    "maria@example.com",
	}
}

func TestCreateClient_FormatsDocuments(t *testing.T) {
	service, repo, tracker := newTestClientService()

	c, err := service.CreateClient(userCtx(), primary.CreateClientRequest{ClientInput: validClientInput()})
	require.NoError(t, err)

	assert.Equal(t, "CLIENT-001", c.ID)
	assert.Equal(t, "529.982.247-25", c.CPF)
	assert.Equal(t, "(11) 98765-4321", c.Phone)
	assert.Equal(t, "active", c.Status)
	assert.Equal(t, "Ativo", c.StatusLabel)
	assert.Equal(t, "Previdenciário", c.CategoryLabel)
	assert.Equal(t, testUserID, repo.clients["CLIENT-001"].UserID)
	assert.Equal(t, 1, tracker.ActionStats().ActionsByType["create_client"].Success)
}

func TestCreateClient_ValidationErrors(t *testing.T) {
	service, repo, tracker := newTestClientService()

	in := validClientInput()
	in.Name = "  "
	in.CPF = "111.111.111-11"
	_, err := service.CreateClient(userCtx(), primary.CreateClientRequest{ClientInput: in})

	v, ok := apperr.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, "Nome é obrigatório", v.Fields["name"])
	assert.Equal(t, validation.MsgCPFRepeated, v.Fields["cpf"])
	assert.Empty(t, repo.clients)
	assert.Equal(t, 2, tracker.FailureStats().TotalErrors)
}

func TestCreateClient_UnknownCategory(t *testing.T) {
	service, _, _ := newTestClientService()

	in := validClientInput()
	in.Category = "maritime"
	_, err := service.CreateClient(userCtx(), primary.CreateClientRequest{ClientInput: in})

	assert.True(t, apperr.IsGuard(err))
}

func TestCreateClient_RequiresUser(t *testing.T) {
	service, _, _ := newTestClientService()

	_, err := service.CreateClient(context.Background(), primary.CreateClientRequest{ClientInput: validClientInput()})

	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestCreateClient_RepositoryFailureIsTracked(t *testing.T) {
	service, repo, tracker := newTestClientService()
	repo.createErr = errors.New("disk full")

	_, err := service.CreateClient(userCtx(), primary.CreateClientRequest{ClientInput: validClientInput()})

	require.Error(t, err)
	assert.Equal(t, 1, tracker.ActionStats().ActionsByType["create_client"].Failure)
}

func TestUpdateClient_RequiresCPFOnlyWhenGiven(t *testing.T) {
	service, repo, _ := newTestClientService()
	ctx := userCtx()
	created, err := service.CreateClient(ctx, primary.CreateClientRequest{ClientInput: validClientInput()})
	require.NoError(t, err)

	in := validClientInput()
	in.CPF = ""
	in.Name = "Maria Souza"
	updated, err := service.UpdateClient(ctx, primary.UpdateClientRequest{ClientID: created.ID, ClientInput: in})
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", updated.Name)
	assert.Equal(t, "active", repo.clients[created.ID].Status)

	in.CPF = "12345678900"
	_, err = service.UpdateClient(ctx, primary.UpdateClientRequest{ClientID: created.ID, ClientInput: in})
	v, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, validation.MsgCPFCheckDigit, v.Fields["cpf"])
}

func TestGetClient_OtherUserIsNotFound(t *testing.T) {
	service, repo, _ := newTestClientService()
	repo.clients["CLIENT-001"] = &secondary.ClientRecord{ID: "CLIENT-001", UserID: "someone-else"}

	_, err := service.GetClient(userCtx(), "CLIENT-001")

	assert.True(t, apperr.IsNotFound(err))
}

func TestSetClientStatus(t *testing.T) {
	service, repo, _ := newTestClientService()
	repo.clients["CLIENT-001"] = &secondary.ClientRecord{ID: "CLIENT-001", UserID: testUserID, Status: "active"}

	require.NoError(t, service.SetClientStatus(userCtx(), "CLIENT-001", "inactive"))
	assert.Equal(t, "inactive", repo.clients["CLIENT-001"].Status)

	err := service.SetClientStatus(userCtx(), "CLIENT-001", "archived")
	_, ok := apperr.AsValidation(err)
	assert.True(t, ok)
}

func TestDeleteClient(t *testing.T) {
	tests := []struct {
		name      string
		openCases int
		force     bool
		wantErr   bool
	}{
		{"no open cases", 0, false, false},
		{"open cases refused", 2, false, true},
		{"open cases forced", 2, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _ := newTestClientService()
			repo.clients["CLIENT-001"] = &secondary.ClientRecord{ID: "CLIENT-001", UserID: testUserID}
			repo.openCases["CLIENT-001"] = tt.openCases

			err := service.DeleteClient(userCtx(), "CLIENT-001", tt.force)

			if tt.wantErr {
				assert.True(t, apperr.IsGuard(err))
				assert.Contains(t, repo.clients, "CLIENT-001")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"CLIENT-001"}, repo.deleted)
		})
	}
}
