package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceStatus enum constants
const (
	InvoiceUnpaid  = "UNPAID"
	InvoicePartial = "PARTIAL"
	InvoicePaid    = "PAID"
	InvoiceOverdue = "OVERDUE"
)

// RentItemName is the service name of the rent line every invoice starts with
const RentItemName = "Room rent"

// Invoice is the monthly bill of one contract. A contract has at most one
// invoice per billing month, enforced by idx_invoice_contract_month.
type Invoice struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceNo    string          `gorm:"type:varchar(40);uniqueIndex;not null" json:"invoice_no"`
	ContractID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_invoice_contract_month" json:"contract_id"`
	Contract     *Contract       `gorm:"foreignKey:ContractID" json:"contract,omitempty"`
	BillingMonth time.Time       `gorm:"type:date;not null;uniqueIndex:idx_invoice_contract_month;index" json:"billing_month"` // first day of the month
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"`
	PaidAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"paid_amount"`
	Status       string          `gorm:"type:varchar(20);not null;default:'UNPAID';index" json:"status"`
	DueDate      time.Time       `gorm:"type:date;not null;index" json:"due_date"`
	PaidDate     *time.Time      `json:"paid_date"`
	Items        []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	Payments     []Payment       `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
	CreatedBy    *uuid.UUID      `gorm:"type:uuid" json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// InvoiceItem is one line of an invoice. Meter readings are only set on metered lines.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ServiceID   *uuid.UUID      `gorm:"type:uuid" json:"service_id"` // nil for the rent line
	ServiceName string          `gorm:"type:varchar(255);not null" json:"service_name"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_price"`
	OldIndex    *int64          `json:"old_index,omitempty"`
	NewIndex    *int64          `json:"new_index,omitempty"`
	SortOrder   int             `gorm:"not null;default:0" json:"sort_order"`
}

// Remaining is the outstanding balance of the invoice.
func (i *Invoice) Remaining() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}

// Month formats the billing month as YYYY-MM.
func (i *Invoice) Month() string {
	return i.BillingMonth.Format("2006-01")
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	assignID(&i.ID)
	return nil
}

func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	assignID(&it.ID)
	return nil
}
