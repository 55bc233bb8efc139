package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/ports/secondary"
	"github.com/example/praxis/internal/validation"
)

const validProcessNumber = "1234567-47.2023.8.26.0100"

// mockJudicialProcessRepository implements secondary.JudicialProcessRepository for testing.
type mockJudicialProcessRepository struct {
	processes    []*secondary.JudicialProcessRecord
	clientExists bool
	lastFilters  secondary.JudicialProcessFilters
}

var _ secondary.JudicialProcessRepository = (*mockJudicialProcessRepository)(nil)

func newMockJudicialProcessRepository() *mockJudicialProcessRepository {
	return &mockJudicialProcessRepository{clientExists: true}
}

func (m *mockJudicialProcessRepository) Create(ctx context.Context, p *secondary.JudicialProcessRecord) error {
	m.processes = append(m.processes, p)
	return nil
}

func (m *mockJudicialProcessRepository) GetByID(ctx context.Context, userID, id string) (*secondary.JudicialProcessRecord, error) {
	for _, p := range m.processes {
		if p.ID == id && p.UserID == userID {
			return p, nil
		}
	}
	return nil, notFound("process", id)
}

func (m *mockJudicialProcessRepository) List(ctx context.Context, filters secondary.JudicialProcessFilters) ([]*secondary.JudicialProcessRecord, error) {
	m.lastFilters = filters
	var out []*secondary.JudicialProcessRecord
	for _, p := range m.processes {
		if p.UserID != filters.UserID {
			continue
		}
		if filters.Tribunal != "" && p.Tribunal != filters.Tribunal {
			continue
		}
		out = append(out, p)
		if filters.Limit > 0 && len(out) == filters.Limit {
			break
		}
	}
	return out, nil
}

func (m *mockJudicialProcessRepository) Delete(ctx context.Context, userID, id string) error {
	for i, p := range m.processes {
		if p.ID == id && p.UserID == userID {
			m.processes = append(m.processes[:i], m.processes[i+1:]...)
			return nil
		}
	}
	return notFound("process", id)
}

func (m *mockJudicialProcessRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID("PROC", len(m.processes)), nil
}

func (m *mockJudicialProcessRepository) Tribunals(ctx context.Context, userID string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, p := range m.processes {
		if p.UserID == userID && p.Tribunal != "" && !seen[p.Tribunal] {
			seen[p.Tribunal] = true
			out = append(out, p.Tribunal)
		}
	}
	return out, nil
}

func (m *mockJudicialProcessRepository) Count(ctx context.Context, userID string) (int, error) {
	n := 0
	for _, p := range m.processes {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *mockJudicialProcessRepository) NumberExists(ctx context.Context, userID, number string) (bool, error) {
	for _, p := range m.processes {
		if p.UserID == userID && p.ProcessNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockJudicialProcessRepository) ClientExists(ctx context.Context, userID, clientID string) (bool, error) {
	return m.clientExists, nil
}

func TestRegisterProcess_DerivesTribunal(t *testing.T) {
	repo := newMockJudicialProcessRepository()
	service := NewJudicialProcessService(repo, nil)

	p, err := service.RegisterProcess(userCtx(), primary.RegisterProcessRequest{
		ClientID:      "CLIENT-001",
		ProcessNumber: validProcessNumber,
	})

	require.NoError(t, err)
	assert.Equal(t, "PROC-001", p.ID)
	assert.Equal(t, "12345674720238260100", p.ProcessNumber)
	assert.Equal(t, validProcessNumber, p.FormattedNumber)
	assert.Equal(t, "8.26", p.Tribunal)
}

func TestRegisterProcess_InvalidNumberIsTracked(t *testing.T) {
	repo := newMockJudicialProcessRepository()
	tracker := validation.NewTracker(nil)
	service := NewJudicialProcessService(repo, tracker)

	_, err := service.RegisterProcess(userCtx(), primary.RegisterProcessRequest{
		ClientID:      "CLIENT-001",
		ProcessNumber: "1234567-48.2023.8.26.0100",
	})

	v, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, validation.MsgProcessCheckDigit, v.Fields["processNumber"])
	assert.Equal(t, 1, tracker.FailureStats().ErrorsByField["processNumber"])
	assert.Empty(t, repo.processes)
}

func TestRegisterProcess_Duplicate(t *testing.T) {
	repo := newMockJudicialProcessRepository()
	service := NewJudicialProcessService(repo, nil)
	ctx := userCtx()
	req := primary.RegisterProcessRequest{ClientID: "CLIENT-001", ProcessNumber: validProcessNumber}

	_, err := service.RegisterProcess(ctx, req)
	require.NoError(t, err)

	req.ProcessNumber = "12345674720238260100"
	_, err = service.RegisterProcess(ctx, req)
	assert.True(t, apperr.IsGuard(err))
	assert.Len(t, repo.processes, 1)
}

func TestListProcesses_AllTribunalsMeansNoFilter(t *testing.T) {
	repo := newMockJudicialProcessRepository()
	service := NewJudicialProcessService(repo, nil)

	_, err := service.ListProcesses(userCtx(), primary.JudicialProcessFilters{Tribunal: "all"})
	require.NoError(t, err)
	assert.Empty(t, repo.lastFilters.Tribunal)

	_, err = service.ListProcesses(userCtx(), primary.JudicialProcessFilters{Tribunal: "8.26"})
	require.NoError(t, err)
	assert.Equal(t, "8.26", repo.lastFilters.Tribunal)
}
