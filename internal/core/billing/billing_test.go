package billing

import (
	"testing"
	"time"
)

func TestFormatBRL(t *testing.T) {
	tests := map[int64]string{
		123456:    "R$ 1.234,56",
		0:         "R$ 0,00",
		4990:      "R$ 49,90",
		100000000: "R$ 1.000.000,00",
	}
	for cents, want := range tests {
		if got := FormatBRL(cents); got != want {
			t.Errorf("FormatBRL(%d) = %q, want %q", cents, got, want)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	tests := map[string]string{
		"confirmed": "Pago",
		"paid":      "Pago",
		"pending":   "Pendente",
		"cancelled": "Cancelado",
		"failed":    "Cancelado",
		"refunded":  "refunded",
	}
	for in, want := range tests {
		if got := StatusLabel(in); got != want {
			t.Errorf("StatusLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanIssueReceipt(t *testing.T) {
	tests := []struct {
		name        string
		ctx         ReceiptContext
		wantAllowed bool
	}{
		{"active and paid", ReceiptContext{SubscriptionActive: true, PaymentStatus: StatusConfirmed}, true},
		{"inactive subscriber", ReceiptContext{PaymentStatus: StatusPaid}, false},
		{"pending payment", ReceiptContext{SubscriptionActive: true, PaymentStatus: StatusPending}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanIssueReceipt(tt.ctx).Allowed; got != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", got, tt.wantAllowed)
			}
		})
	}
}

func TestCanConfirmPayment(t *testing.T) {
	if CanConfirmPayment(ConfirmContext{}).Allowed {
		t.Error("confirm without pending payment should be refused")
	}
	if !CanConfirmPayment(ConfirmContext{PendingPaymentID: "PAY-001"}).Allowed {
		t.Error("confirm with pending payment should be allowed")
	}
}

func TestNextPaymentDate(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	want := time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC)
	if got := NextPaymentDate(now); !got.Equal(want) {
		t.Errorf("NextPaymentDate = %v, want %v", got, want)
	}
}

func TestBuildReceipt(t *testing.T) {
	r := BuildReceipt(ReceiptInput{
		PaidAt:      time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
		AmountCents: 4990,
		PaymentID:   "PAY-007",
	})

	if r.Title != "COMPROVANTE DE PAGAMENTO" {
		t.Errorf("Title = %q", r.Title)
	}
	want := map[string]string{
		"Cliente:":             "Não informado",
		"Data do Pagamento:":   "05/03/2024 14:30",
		"Valor Pago:":          "R$ 49,90",
		"Status:":              "PAGO",
		"ID da Transação:":     "PAY-007",
		"ID da Assinatura:":    "Não informado",
		"Método de Pagamento:": "Não informado",
	}
	for _, l := range r.Lines {
		if want[l.Label] != l.Value {
			t.Errorf("%s = %q, want %q", l.Label, l.Value, want[l.Label])
		}
	}
}
