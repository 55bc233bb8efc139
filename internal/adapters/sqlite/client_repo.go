// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/ports/secondary"
)

// ClientRepository implements secondary.ClientRepository with SQLite.
type ClientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new SQLite client repository.
func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

var _ secondary.ClientRepository = (*ClientRepository)(nil)

const clientSelectCols = `id, user_id, name, cpf, category, phone, email, birth_date, gender, marital_status,
	nationality, profession, rg_number, rg_issuer,
	address_street, address_number, address_neighborhood, address_city, address_state, address_zip,
	respondent_name, respondent_address, respondent_cpf, status, created_at, updated_at`

func scanClient(s scanner) (*secondary.ClientRecord, error) {
	var (
		cpf, phone, email, birthDate, gender, marital sql.NullString
		createdAt, updatedAt                          time.Time
	)

	r := &secondary.ClientRecord{}
	err := s.Scan(
		&r.ID, &r.UserID, &r.Name, &cpf, &r.Category, &phone, &email, &birthDate, &gender, &marital,
		&r.Nationality, &r.Profession, &r.RGNumber, &r.RGIssuer,
		&r.AddressStreet, &r.AddressNumber, &r.Neighborhood, &r.City, &r.State, &r.ZipCode,
		&r.RespondentName, &r.RespondentAddress, &r.RespondentCPF, &r.Status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.CPF = cpf.String
	r.Phone = phone.String
	r.Email = email.String
	r.BirthDate = birthDate.String
	r.Gender = gender.String
	r.MaritalStatus = marital.String
	r.CreatedAt = createdAt.Format(time.RFC3339)
	r.UpdatedAt = updatedAt.Format(time.RFC3339)
	return r, nil
}

// Create persists a new client.
func (r *ClientRepository) Create(ctx context.Context, c *secondary.ClientRecord) error {
	status := c.Status
	if status == "" {
		status = "active"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (id, user_id, name, cpf, category, phone, email, birth_date, gender, marital_status,
			nationality, profession, rg_number, rg_issuer,
			address_street, address_number, address_neighborhood, address_city, address_state, address_zip,
			respondent_name, respondent_address, respondent_cpf, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, nullString(c.CPF), c.Category, nullString(c.Phone), nullString(c.Email),
		nullString(c.BirthDate), nullString(c.Gender), nullString(c.MaritalStatus),
		c.Nationality, c.Profession, c.RGNumber, c.RGIssuer,
		c.AddressStreet, c.AddressNumber, c.Neighborhood, c.City, c.State, c.ZipCode,
		c.RespondentName, c.RespondentAddress, c.RespondentCPF, status,
	)
	if err != nil {
		return createErr("client", c.ID, err)
	}
	return nil
}

// GetByID retrieves a client by its ID.
func (r *ClientRepository) GetByID(ctx context.Context, userID, id string) (*secondary.ClientRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+clientSelectCols+" FROM clients WHERE id = ? AND user_id = ?",
		id, userID,
	)

	record, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client %s %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return record, nil
}

// List retrieves clients matching the given filters, ordered by name.
func (r *ClientRepository) List(ctx context.Context, filters secondary.ClientFilters) ([]*secondary.ClientRecord, error) {
	query := "SELECT " + clientSelectCols + " FROM clients WHERE user_id = ?"
	args := []any{filters.UserID}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.Category != "" {
		query += " AND category = ?"
		args = append(args, filters.Category)
	}
	if filters.Search != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+filters.Search+"%")
	}

	query += " ORDER BY name COLLATE NOCASE ASC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []*secondary.ClientRecord
	for rows.Next() {
		record, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, record)
	}
	return clients, rows.Err()
}

// Update overwrites the editable fields of a client.
func (r *ClientRepository) Update(ctx context.Context, c *secondary.ClientRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE clients SET name = ?, cpf = ?, category = ?, phone = ?, email = ?, birth_date = ?, gender = ?,
			marital_status = ?, nationality = ?, profession = ?, rg_number = ?, rg_issuer = ?,
			address_street = ?, address_number = ?, address_neighborhood = ?, address_city = ?,
			address_state = ?, address_zip = ?, respondent_name = ?, respondent_address = ?,
			respondent_cpf = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		c.Name, nullString(c.CPF), c.Category, nullString(c.Phone), nullString(c.Email), nullString(c.BirthDate),
		nullString(c.Gender), nullString(c.MaritalStatus), c.Nationality, c.Profession, c.RGNumber, c.RGIssuer,
		c.AddressStreet, c.AddressNumber, c.Neighborhood, c.City, c.State, c.ZipCode,
		c.RespondentName, c.RespondentAddress, c.RespondentCPF, c.Status,
		c.ID, c.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	return requireRow(result, "client", c.ID)
}

// UpdateStatus changes a client's status.
func (r *ClientRepository) UpdateStatus(ctx context.Context, userID, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE clients SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?",
		status, id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client status: %w", err)
	}
	return requireRow(result, "client", id)
}

// Delete removes a client; its cases and processes cascade.
func (r *ClientRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM clients WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return requireRow(result, "client", id)
}

// GetNextID returns the next available client ID.
func (r *ClientRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 8) AS INTEGER)), 0) FROM clients",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next client ID: %w", err)
	}
	return fmt.Sprintf("CLIENT-%03d", maxID+1), nil
}

// Count returns the number of clients owned by the user.
func (r *ClientRepository) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clients WHERE user_id = ?", userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return n, nil
}

// CountOpenCases returns the number of open cases of a client.
func (r *ClientRepository) CountOpenCases(ctx context.Context, userID, clientID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM cases WHERE user_id = ? AND client_id = ? AND status = 'open'",
		userID, clientID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count open cases: %w", err)
	}
	return n, nil
}

// requireRow maps a zero-row write to apperr.ErrNotFound.
func requireRow(result sql.Result, entity, id string) error {
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("%s %s %w", entity, id, apperr.ErrNotFound)
	}
	return nil
}

// exists runs a COUNT query and reports whether it found a row.
func exists(ctx context.Context, db *sql.DB, query string, args ...any) (bool, error) {
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
