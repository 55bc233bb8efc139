package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/core/billing"
	"github.com/example/praxis/internal/logger"
	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/ports/secondary"
)

// BillingServiceImpl implements the BillingService interface.
type BillingServiceImpl struct {
	paymentRepo secondary.PaymentRepository
	profileRepo secondary.ProfileRepository
	now         func() time.Time
}

// NewBillingService creates a new BillingService with injected dependencies.
func NewBillingService(paymentRepo secondary.PaymentRepository, profileRepo secondary.ProfileRepository) *BillingServiceImpl {
	return &BillingServiceImpl{
		paymentRepo: paymentRepo,
		profileRepo: profileRepo,
		now:         time.Now,
	}
}

var _ primary.BillingService = (*BillingServiceImpl)(nil)

// ListInvoices lists confirmed and paid payments, newest first.
func (s *BillingServiceImpl) ListInvoices(ctx context.Context) ([]*primary.Invoice, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	statuses := make([]string, len(billing.PaidStatuses))
	for i, st := range billing.PaidStatuses {
		statuses[i] = string(st)
	}
	records, err := s.paymentRepo.ListByStatus(ctx, userID, statuses)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	out := make([]*primary.Invoice, len(records))
	for i, r := range records {
		out[i] = recordToInvoice(r)
	}
	return out, nil
}

// GetReceipt builds the receipt of a paid invoice. Only active subscribers
// get receipts.
func (s *BillingServiceImpl) GetReceipt(ctx context.Context, paymentID string) (*billing.Receipt, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	payment, err := s.paymentRepo.GetByID(ctx, userID, paymentID)
	if err != nil {
		return nil, err
	}

	active := false
	customer := ""
	p, err := s.profileRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		active = p.SubscriptionActive
		customer = p.FullName
	case !apperr.IsNotFound(err):
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if r := billing.CanIssueReceipt(billing.ReceiptContext{
		SubscriptionActive: active,
		PaymentStatus:      billing.Status(payment.Status),
	}); !r.Allowed {
		return nil, apperr.Guard(r.Reason)
	}

	paidAt := parseStamp(payment.UpdatedAt)
	if paidAt.IsZero() {
		paidAt = parseStamp(payment.CreatedAt)
	}
	receipt := billing.BuildReceipt(billing.ReceiptInput{
		CustomerName:   customer,
		PaidAt:         paidAt,
		AmountCents:    payment.AmountCents,
		Method:         payment.Method,
		PaymentID:      payment.ID,
		SubscriptionID: payment.SubscriptionID,
	})
	return &receipt, nil
}

// CreatePayment records a pending payment.
func (s *BillingServiceImpl) CreatePayment(ctx context.Context, req primary.CreatePaymentRequest) (*primary.Invoice, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.AmountCents <= 0 {
		return nil, apperr.Field("amountCents", "Valor deve ser maior que zero")
	}

	record := &secondary.PaymentRecord{
		UserID:         userID,
		AmountCents:    req.AmountCents,
		Status:         string(billing.StatusPending),
		Method:         strings.TrimSpace(req.Method),
		SubscriptionID: strings.TrimSpace(req.SubscriptionID),
	}
	nextID, err := insertWithNextID(ctx, s.paymentRepo.GetNextID, func(id string) error {
		record.ID = id
		return s.paymentRepo.Create(ctx, record)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	created, err := s.paymentRepo.GetByID(ctx, userID, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created payment: %w", err)
	}
	return recordToInvoice(created), nil
}

// ConfirmLatestPending confirms a user's newest pending payment and
// activates their subscription until the next monthly payment. Both writes
// commit together, so a user without a profile row still ends up active.
func (s *BillingServiceImpl) ConfirmLatestPending(ctx context.Context, userID string) (*primary.Invoice, error) {
	adminID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	pendingID := ""
	pending, err := s.paymentRepo.LatestPending(ctx, userID)
	switch {
	case err == nil:
		pendingID = pending.ID
	case !apperr.IsNotFound(err):
		return nil, fmt.Errorf("failed to find pending payment: %w", err)
	}
	if r := billing.CanConfirmPayment(billing.ConfirmContext{PendingPaymentID: pendingID}); !r.Allowed {
		return nil, apperr.Guard(r.Reason)
	}

	now := s.now().UTC()
	if err := s.paymentRepo.ConfirmPending(ctx, secondary.PaymentConfirmation{
		UserID:      userID,
		PaymentID:   pendingID,
		ApprovedAt:  now.Format(time.RFC3339),
		NextPayment: billing.NextPaymentDate(now).Format(time.RFC3339),
	}); err != nil {
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}

	logger.From(ctx).Info("payment confirmed",
		logger.UserID(userID),
		logger.Entity(pendingID),
		logger.Op("confirm_payment"),
		logger.Component("billing"),
		zap.String("admin_id", adminID))

	confirmed, err := s.paymentRepo.GetByID(ctx, userID, pendingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch confirmed payment: %w", err)
	}
	return recordToInvoice(confirmed), nil
}

// parseStamp reads an RFC3339 timestamp, returning the zero time when it
// cannot be parsed.
func parseStamp(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func recordToInvoice(r *secondary.PaymentRecord) *primary.Invoice {
	return &primary.Invoice{
		ID:             r.ID,
		AmountCents:    r.AmountCents,
		Amount:         billing.FormatBRL(r.AmountCents),
		Status:         r.Status,
		StatusLabel:    billing.StatusLabel(r.Status),
		Method:         r.Method,
		SubscriptionID: r.SubscriptionID,
		CreatedAt:      r.CreatedAt,
	}
}
