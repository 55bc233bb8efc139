package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/core/client"
	"github.com/example/praxis/internal/core/legalcase"
	"github.com/example/praxis/internal/logger"
	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/ports/secondary"
	"github.com/example/praxis/internal/validation"
)

// ClientServiceImpl implements the ClientService interface.
type ClientServiceImpl struct {
	clientRepo secondary.ClientRepository
	tracker    *validation.Tracker
}

// NewClientService creates a new ClientService with injected dependencies.
// tracker may be nil.
func NewClientService(clientRepo secondary.ClientRepository, tracker *validation.Tracker) *ClientServiceImpl {
	return &ClientServiceImpl{
		clientRepo: clientRepo,
		tracker:    tracker,
	}
}

var _ primary.ClientService = (*ClientServiceImpl)(nil)

// CreateClient validates and registers a new client.
func (s *ClientServiceImpl) CreateClient(ctx context.Context, req primary.CreateClientRequest) (*primary.Client, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validate(ctx, validation.ClientCreateSchema, req.ClientInput, userID, "client.create"); err != nil {
		return nil, err
	}
	status := string(client.InitialStatus())
	if r := client.CanSaveClient(client.ProfileFieldsContext{
		Category:      req.Category,
		Gender:        req.Gender,
		MaritalStatus: req.MaritalStatus,
		Status:        status,
	}); !r.Allowed {
		return nil, apperr.Guard(r.Reason)
	}

	record := inputToRecord(req.ClientInput)
	record.UserID = userID
	record.Status = status

	nextID, err := insertWithNextID(ctx, s.clientRepo.GetNextID, func(id string) error {
		record.ID = id
		return s.clientRepo.Create(ctx, record)
	})
	if err != nil {
		s.recordAction("create_client", record.ID, false, userID, err)
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	s.recordAction("create_client", record.ID, true, userID, nil)

	created, err := s.clientRepo.GetByID(ctx, userID, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created client: %w", err)
	}
	return recordToClient(created), nil
}

// GetClient retrieves a client by ID.
func (s *ClientServiceImpl) GetClient(ctx context.Context, clientID string) (*primary.Client, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	record, err := s.clientRepo.GetByID(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}
	return recordToClient(record), nil
}

// ListClients lists clients with optional filters.
func (s *ClientServiceImpl) ListClients(ctx context.Context, filters primary.ClientFilters) ([]*primary.Client, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.clientRepo.List(ctx, secondary.ClientFilters{
		UserID:   userID,
		Status:   filters.Status,
		Category: filters.Category,
		Search:   filters.Search,
		Limit:    filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]*primary.Client, len(records))
	for i, r := range records {
		clients[i] = recordToClient(r)
	}
	return clients, nil
}

// UpdateClient replaces a client's editable fields. A supplied CPF must be valid.
func (s *ClientServiceImpl) UpdateClient(ctx context.Context, req primary.UpdateClientRequest) (*primary.Client, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.clientRepo.GetByID(ctx, userID, req.ClientID)
	if err != nil {
		return nil, err
	}

	schema := validation.ClientCreateSchema
	if req.CPF != "" {
		schema = validation.ClientEditSchema
	}
	if err := s.validate(ctx, schema, req.ClientInput, userID, "client.update"); err != nil {
		return nil, err
	}
	if r := client.CanSaveClient(client.ProfileFieldsContext{
		Category:      req.Category,
		Gender:        req.Gender,
		MaritalStatus: req.MaritalStatus,
	}); !r.Allowed {
		return nil, apperr.Guard(r.Reason)
	}

	record := inputToRecord(req.ClientInput)
	record.ID = existing.ID
	record.UserID = userID
	record.Status = existing.Status

	if err := s.clientRepo.Update(ctx, record); err != nil {
		s.recordAction("update_client", record.ID, false, userID, err)
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	s.recordAction("update_client", record.ID, true, userID, nil)

	updated, err := s.clientRepo.GetByID(ctx, userID, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated client: %w", err)
	}
	return recordToClient(updated), nil
}

// SetClientStatus changes a client's status.
func (s *ClientServiceImpl) SetClientStatus(ctx context.Context, clientID, status string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	if !client.ValidStatus(status) {
		return apperr.Field("status", fmt.Sprintf("Status inválido: %s", status))
	}
	return s.clientRepo.UpdateStatus(ctx, userID, clientID, status)
}

// DeleteClient deletes a client. Clients with open cases need force.
func (s *ClientServiceImpl) DeleteClient(ctx context.Context, clientID string, force bool) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	if _, err := s.clientRepo.GetByID(ctx, userID, clientID); err != nil {
		return err
	}

	open, err := s.clientRepo.CountOpenCases(ctx, userID, clientID)
	if err != nil {
		return fmt.Errorf("failed to count open cases: %w", err)
	}
	if r := client.CanDeleteClient(client.DeleteClientContext{
		ClientID:      clientID,
		OpenCaseCount: open,
		Force:         force,
	}); !r.Allowed {
		return apperr.Guard(r.Reason)
	}

	if err := s.clientRepo.Delete(ctx, userID, clientID); err != nil {
		s.recordAction("delete_client", clientID, false, userID, err)
		return fmt.Errorf("failed to delete client: %w", err)
	}
	s.recordAction("delete_client", clientID, true, userID, nil)
	return nil
}

// validate runs schema against the input, tracking and logging every failure.
func (s *ClientServiceImpl) validate(ctx context.Context, schema validation.Schema, in primary.ClientInput, userID, op string) error {
	data := map[string]string{
		"name":     in.Name,
		"cpf":      in.CPF,
		"category": in.Category,
		"phone":    in.Phone,
		"email":    in.Email,
	}
	errs := schema.ValidateTracked(data, s.tracker, userID, op)
	if errs == nil {
		return nil
	}
	logger.From(ctx).Debug("client validation failed", logger.Op(op), zap.Int("fields", len(errs)))
	return apperr.NewValidation(errs)
}

func (s *ClientServiceImpl) recordAction(action, clientID string, success bool, userID string, err error) {
	if s.tracker == nil {
		return
	}
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	s.tracker.RecordAction(action, map[string]any{"clientId": clientID}, success, userID, msg)
}

// inputToRecord stores CPF and phone in display format.
func inputToRecord(in primary.ClientInput) *secondary.ClientRecord {
	return &secondary.ClientRecord{
		Name:              in.Name,
		CPF:               validation.FormatCPF(in.CPF),
		Category:          in.Category,
		Phone:             validation.FormatPhone(in.Phone),
		Email:             in.Email,
		BirthDate:         in.BirthDate,
		Gender:            in.Gender,
		MaritalStatus:     in.MaritalStatus,
		Nationality:       in.Nationality,
		Profession:        in.Profession,
		RGNumber:          in.RGNumber,
		RGIssuer:          in.RGIssuer,
		AddressStreet:     in.Address.Street,
		AddressNumber:     in.Address.Number,
		Neighborhood:      in.Address.Neighborhood,
		City:              in.Address.City,
		State:             in.Address.State,
		ZipCode:           in.Address.ZipCode,
		RespondentName:    in.Respondent.Name,
		RespondentAddress: in.Respondent.Address,
		RespondentCPF:     validation.FormatCPF(in.Respondent.CPF),
	}
}

func recordToClient(r *secondary.ClientRecord) *primary.Client {
	return &primary.Client{
		ID:            r.ID,
		Name:          r.Name,
		CPF:           r.CPF,
		Category:      r.Category,
		CategoryLabel: legalcase.CategoryLabel(r.Category),
		Phone:         r.Phone,
		Email:         r.Email,
		BirthDate:     r.BirthDate,
		Gender:        r.Gender,
		MaritalStatus: r.MaritalStatus,
		Nationality:   r.Nationality,
		Profession:    r.Profession,
		RGNumber:      r.RGNumber,
		RGIssuer:      r.RGIssuer,
		Address: primary.Address{
			Street:       r.AddressStreet,
			Number:       r.AddressNumber,
			Neighborhood: r.Neighborhood,
			City:         r.City,
			State:        r.State,
			ZipCode:      r.ZipCode,
		},
		Respondent: primary.Respondent{
			Name:    r.RespondentName,
			Address: r.RespondentAddress,
			CPF:     r.RespondentCPF,
		},
		Status:      r.Status,
		StatusLabel: client.StatusLabel(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
