package primary

import (
	"context"

	"github.com/example/praxis/internal/core/billing"
)

// BillingService defines the primary port for subscription payments.
type BillingService interface {
	// ListInvoices lists paid invoices, newest first.
	ListInvoices(ctx context.Context) ([]*Invoice, error)

	// GetReceipt builds the receipt of a paid invoice for an active subscriber.
	GetReceipt(ctx context.Context, paymentID string) (*billing.Receipt, error)

	// CreatePayment records a pending payment.
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Invoice, error)

	// ConfirmLatestPending confirms a user's newest pending payment and
	// activates their subscription. Administrative operation.
	ConfirmLatestPending(ctx context.Context, userID string) (*Invoice, error)
}

// CreatePaymentRequest contains parameters for recording a payment.
type CreatePaymentRequest struct {
	AmountCents    int64  `json:"amountCents"`
	Method         string `json:"method,omitempty"`
	SubscriptionID string `json:"subscriptionId,omitempty"`
}

// Invoice represents a payment at the port boundary.
type Invoice struct {
	ID             string `json:"id"`
	AmountCents    int64  `json:"amountCents"`
	Amount         string `json:"amount"`
	Status         string `json:"status"`
	StatusLabel    string `json:"statusLabel"`
	Method         string `json:"method,omitempty"`
	SubscriptionID string `json:"subscriptionId,omitempty"`
	CreatedAt      string `json:"createdAt"`
}
