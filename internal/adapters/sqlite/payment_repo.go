package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/ports/secondary"
)

// PaymentRepository implements secondary.PaymentRepository with SQLite.
type PaymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new SQLite payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

var _ secondary.PaymentRepository = (*PaymentRepository)(nil)

const paymentSelectCols = "id, user_id, amount_cents, status, method, subscription_id, created_at, updated_at"

func scanPayment(s scanner) (*secondary.PaymentRecord, error) {
	var (
		method, subscriptionID sql.NullString
		createdAt, updatedAt   time.Time
	)
	r := &secondary.PaymentRecord{}
	err := s.Scan(&r.ID, &r.UserID, &r.AmountCents, &r.Status, &method, &subscriptionID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	r.Method = method.String
	r.SubscriptionID = subscriptionID.String
	r.CreatedAt = createdAt.Format(time.RFC3339)
	r.UpdatedAt = updatedAt.Format(time.RFC3339)
	return r, nil
}

// Create persists a new payment.
func (r *PaymentRepository) Create(ctx context.Context, p *secondary.PaymentRecord) error {
	status := p.Status
	if status == "" {
		status = "pending"
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO payments (id, user_id, amount_cents, status, method, subscription_id) VALUES (?, ?, ?, ?, ?, ?)",
		p.ID, p.UserID, p.AmountCents, status, nullString(p.Method), nullString(p.SubscriptionID),
	)
	if err != nil {
		return createErr("payment", p.ID, err)
	}
	return nil
}

// GetByID retrieves a payment by its ID.
func (r *PaymentRepository) GetByID(ctx context.Context, userID, id string) (*secondary.PaymentRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+paymentSelectCols+" FROM payments WHERE id = ? AND user_id = ?", id, userID)
	record, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment %s %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return record, nil
}

// ListByStatus retrieves the user's payments in any of the statuses, newest first.
func (r *PaymentRepository) ListByStatus(ctx context.Context, userID string, statuses []string) ([]*secondary.PaymentRecord, error) {
	query := "SELECT " + paymentSelectCols + " FROM payments WHERE user_id = ?"
	args := []any{userID}
	if len(statuses) > 0 {
		query += " AND status IN (?" + strings.Repeat(", ?", len(statuses)-1) + ")"
		for _, s := range statuses {
			args = append(args, s)
		}
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*secondary.PaymentRecord
	for rows.Next() {
		record, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, record)
	}
	return payments, rows.Err()
}

// LatestPending retrieves the newest pending payment.
func (r *PaymentRepository) LatestPending(ctx context.Context, userID string) (*secondary.PaymentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+paymentSelectCols+" FROM payments WHERE user_id = ? AND status = 'pending' ORDER BY created_at DESC, id DESC LIMIT 1",
		userID,
	)
	record, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("pending payment %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending payment: %w", err)
	}
	return record, nil
}

// UpdateStatus changes a payment's status.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, userID, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE payments SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?",
		status, id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	return requireRow(result, "payment", id)
}

// ConfirmPending confirms a pending payment and activates the owner's
// subscription in one transaction. A missing profile row is created.
func (r *PaymentRepository) ConfirmPending(ctx context.Context, c secondary.PaymentConfirmation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE payments SET status = 'confirmed', updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ? AND status = 'pending'",
		c.PaymentID, c.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to confirm payment: %w", err)
	}
	if err := requireRow(result, "pending payment", c.PaymentID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_profiles (user_id, subscription_active, approved_by_admin, approval_date, next_payment)
		 VALUES (?, 1, 1, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET subscription_active = 1, approved_by_admin = 1,
			approval_date = excluded.approval_date, next_payment = excluded.next_payment,
			updated_at = CURRENT_TIMESTAMP`,
		c.UserID, nullTime(c.ApprovedAt), nullTime(c.NextPayment),
	)
	if err != nil {
		return fmt.Errorf("failed to activate subscription: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// GetNextID returns the next available payment ID.
func (r *PaymentRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM payments",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next payment ID: %w", err)
	}
	return fmt.Sprintf("PAY-%03d", maxID+1), nil
}
