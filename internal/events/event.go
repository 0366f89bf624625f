package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	TypePaymentReceived = "payment.received"
	TypeInvoiceCreated  = "invoice.created"
	TypeInvoiceOverdue  = "invoice.overdue"
)

// BillingEvent is the payload published for payment and invoice changes.
type BillingEvent struct {
	Type          string          `json:"type"`
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNo     string          `json:"invoice_no,omitempty"`
	PaymentID     string          `json:"payment_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	RecipientID   string          `json:"recipient_id,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
