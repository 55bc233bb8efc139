// Package billing contains the pure business logic for subscription
// payments: status rules, currency formatting and receipts.
package billing

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Status is the state of a payment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// PaidStatuses lists the statuses shown as invoices.
var PaidStatuses = []Status{StatusConfirmed, StatusPaid}

// IsPaid reports whether s counts as paid.
func IsPaid(s Status) bool {
	return s == StatusConfirmed || s == StatusPaid
}

// ValidStatus reports whether s is a known payment status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusPaid, StatusCancelled, StatusFailed:
		return true
	}
	return false
}

// StatusLabel returns the pt-BR badge label of s. Unknown statuses are
// returned as-is.
func StatusLabel(s string) string {
	switch Status(s) {
	case StatusConfirmed, StatusPaid:
		return "Pago"
	case StatusPending:
		return "Pendente"
	case StatusCancelled, StatusFailed:
		return "Cancelado"
	default:
		return s
	}
}

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount in cents as Brazilian reais, e.g. R$ 1.234,56.
func FormatBRL(cents int64) string {
	return brl.Sprintf("R$ %.2f", float64(cents)/100)
}

// FormatDateBR renders t as dd/mm/yyyy hh:mm.
func FormatDateBR(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

// NextPaymentDate is one calendar month after now.
func NextPaymentDate(now time.Time) time.Time {
	return now.AddDate(0, 1, 0)
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// ReceiptContext provides context for receipt generation guards.
type ReceiptContext struct {
	SubscriptionActive bool
	PaymentStatus      Status
}

// CanIssueReceipt evaluates whether a receipt can be generated.
// Rules:
// - Subscription must be active
// - Payment must be paid
func CanIssueReceipt(ctx ReceiptContext) GuardResult {
	if !ctx.SubscriptionActive {
		return GuardResult{Reason: "Comprovantes disponíveis apenas para assinantes ativos"}
	}
	if !IsPaid(ctx.PaymentStatus) {
		return GuardResult{Reason: fmt.Sprintf("payment is %s, only paid invoices have receipts", ctx.PaymentStatus)}
	}
	return GuardResult{Allowed: true}
}

// ConfirmContext provides context for payment confirmation guards.
type ConfirmContext struct {
	PendingPaymentID string // empty when the user has no pending payment
}

// CanConfirmPayment evaluates whether a pending payment can be confirmed.
func CanConfirmPayment(ctx ConfirmContext) GuardResult {
	if ctx.PendingPaymentID == "" {
		return GuardResult{Reason: "Nenhum pagamento pendente encontrado"}
	}
	return GuardResult{Allowed: true}
}

// ReceiptLine is one label/value row of a receipt.
type ReceiptLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Receipt is a payment receipt ready for rendering.
type Receipt struct {
	Title string        `json:"title"`
	Lines []ReceiptLine `json:"lines"`
}

// ReceiptInput holds the values printed on a receipt.
type ReceiptInput struct {
	CustomerName   string
	PaidAt         time.Time
	AmountCents    int64
	Method         string
	PaymentID      string
	SubscriptionID string
}

const notInformed = "Não informado"

func orNotInformed(s string) string {
	if s == "" {
		return notInformed
	}
	return s
}

// BuildReceipt lays out a payment receipt.
func BuildReceipt(in ReceiptInput) Receipt {
	return Receipt{
		Title: "COMPROVANTE DE PAGAMENTO",
		Lines: []ReceiptLine{
			{"Cliente:", orNotInformed(in.CustomerName)},
			{"Data do Pagamento:", FormatDateBR(in.PaidAt)},
			{"Valor Pago:", FormatBRL(in.AmountCents)},
			{"Status:", "PAGO"},
			{"Método de Pagamento:", orNotInformed(in.Method)},
			{"ID da Transação:", in.PaymentID},
			{"ID da Assinatura:", orNotInformed(in.SubscriptionID)},
		},
	}
}

// GeneratePaymentID generates a payment ID from the current max number.
func GeneratePaymentID(currentMax int) string {
	return fmt.Sprintf("PAY-%03d", currentMax+1)
}
