package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillingSummary aggregates one motel's invoices for a billing month
type BillingSummary struct {
	MotelID        uuid.UUID       `json:"motel_id"`
	BillingMonth   string          `json:"billing_month"`
	InvoiceCount   int64           `json:"invoice_count"`
	TotalBilled    decimal.Decimal `json:"total_billed"`
	TotalCollected decimal.Decimal `json:"total_collected"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	ByStatus       []StatusTotal   `json:"by_status"`
	ByMethod       []MethodTotal   `json:"by_method"`
}

// StatusTotal counts invoices in one status
type StatusTotal struct {
	Status string          `json:"status"`
	Count  int64           `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// MethodTotal sums payments received through one method
type MethodTotal struct {
	PaymentMethod string          `json:"payment_method"`
	Count         int64           `json:"count"`
	Total         decimal.Decimal `json:"total"`
}
