package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/core/judicial"
	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/ports/secondary"
	"github.com/example/praxis/internal/validation"
)

// JudicialProcessServiceImpl implements the JudicialProcessService interface.
type JudicialProcessServiceImpl struct {
	processRepo secondary.JudicialProcessRepository
	tracker     *validation.Tracker
}

// NewJudicialProcessService creates a new JudicialProcessService. tracker may be nil.
func NewJudicialProcessService(processRepo secondary.JudicialProcessRepository, tracker *validation.Tracker) *JudicialProcessServiceImpl {
	return &JudicialProcessServiceImpl{processRepo: processRepo, tracker: tracker}
}

var _ primary.JudicialProcessService = (*JudicialProcessServiceImpl)(nil)

// RegisterProcess validates and stores a process number for a client. The
// tribunal defaults to the J.TR segment of the number.
func (s *JudicialProcessServiceImpl) RegisterProcess(ctx context.Context, req primary.RegisterProcessRequest) (*primary.JudicialProcess, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if r := validation.ValidateProcessNumber(req.ProcessNumber); !r.IsValid {
		if s.tracker != nil {
			s.tracker.RecordFailure("processNumber", req.ProcessNumber, r.Error, userID, "process.register")
		}
		return nil, apperr.Field("processNumber", r.Error)
	}
	number := judicial.NormalizeNumber(req.ProcessNumber)

	clientExists, err := s.processRepo.ClientExists(ctx, userID, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate client: %w", err)
	}
	dup, err := s.processRepo.NumberExists(ctx, userID, number)
	if err != nil {
		return nil, fmt.Errorf("failed to check process number: %w", err)
	}
	if r := judicial.CanRegisterProcess(judicial.RegisterProcessContext{
		ClientID:      req.ClientID,
		ClientExists:  clientExists,
		ProcessNumber: number,
		AlreadyExists: dup,
	}); !r.Allowed {
		return nil, apperr.Guard(r.Reason)
	}

	tribunal := strings.TrimSpace(req.Tribunal)
	if tribunal == "" {
		tribunal = judicial.Tribunal(number)
	}

	record := &secondary.JudicialProcessRecord{
		UserID:           userID,
		ClientID:         req.ClientID,
		ProcessNumber:    number,
		Tribunal:         tribunal,
		Description:      req.Description,
		RegistrationDate: req.RegistrationDate,
	}
	nextID, err := insertWithNextID(ctx, s.processRepo.GetNextID, func(id string) error {
		record.ID = id
		return s.processRepo.Create(ctx, record)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register process: %w", err)
	}

	created, err := s.processRepo.GetByID(ctx, userID, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registered process: %w", err)
	}
	return recordToProcess(created), nil
}

// GetProcess retrieves a process by ID.
func (s *JudicialProcessServiceImpl) GetProcess(ctx context.Context, processID string) (*primary.JudicialProcess, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	record, err := s.processRepo.GetByID(ctx, userID, processID)
	if err != nil {
		return nil, err
	}
	return recordToProcess(record), nil
}

// ListProcesses lists processes, most recently updated first.
func (s *JudicialProcessServiceImpl) ListProcesses(ctx context.Context, filters primary.JudicialProcessFilters) ([]*primary.JudicialProcess, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	tribunal := filters.Tribunal
	if judicial.MatchesTribunal("", tribunal) {
		tribunal = ""
	}
	records, err := s.processRepo.List(ctx, secondary.JudicialProcessFilters{
		UserID:   userID,
		ClientID: filters.ClientID,
		Tribunal: tribunal,
		Limit:    filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	out := make([]*primary.JudicialProcess, len(records))
	for i, r := range records {
		out[i] = recordToProcess(r)
	}
	return out, nil
}

// ListTribunals returns the distinct tribunals in use.
func (s *JudicialProcessServiceImpl) ListTribunals(ctx context.Context) ([]string, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.processRepo.Tribunals(ctx, userID)
}

// DeleteProcess deletes a process.
func (s *JudicialProcessServiceImpl) DeleteProcess(ctx context.Context, processID string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	return s.processRepo.Delete(ctx, userID, processID)
}

func recordToProcess(r *secondary.JudicialProcessRecord) *primary.JudicialProcess {
	return &primary.JudicialProcess{
		ID:               r.ID,
		ClientID:         r.ClientID,
		ProcessNumber:    r.ProcessNumber,
		FormattedNumber:  validation.FormatProcessNumber(r.ProcessNumber),
		Tribunal:         r.Tribunal,
		Description:      r.Description,
		RegistrationDate: r.RegistrationDate,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
