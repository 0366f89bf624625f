package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentMethod enum constants
const (
	MethodCash     = "CASH"
	MethodTransfer = "BANK_TRANSFER"
	MethodMomo     = "MOMO"
	MethodVNPay    = "VNPAY"
	MethodZaloPay  = "ZALOPAY"
	MethodOther    = "OTHER"
)

// PendingStatus enum constants for online payment intents
const (
	PendingWaiting   = "PENDING"
	PendingCompleted = "COMPLETED"
	PendingFailed    = "FAILED"
	PendingExpired   = "EXPIRED"
)

// Gateway event processing states
const (
	EventReceived  = "received"
	EventProcessed = "processed"
	EventRejected  = "rejected"
	EventFailed    = "failed"
)

// IsOnlineMethod reports whether the method is settled through a gateway.
func IsOnlineMethod(method string) bool {
	switch method {
	case MethodMomo, MethodVNPay, MethodZaloPay:
		return true
	}
	return false
}

// IsKnownMethod reports whether the method can be stored on a payment.
func IsKnownMethod(method string) bool {
	switch method {
	case MethodCash, MethodTransfer, MethodOther:
		return true
	}
	return IsOnlineMethod(method)
}

// Payment is an append-only ledger entry against an invoice. TransactionID holds
// the gateway order reference and is unique, so a callback can settle at most once.
type Payment struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Amount               decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Method               string          `gorm:"type:varchar(20);not null" json:"method"`
	TransactionID        *string         `gorm:"type:varchar(100);uniqueIndex" json:"transaction_id"`
	GatewayTransactionID string          `gorm:"type:varchar(100)" json:"gateway_transaction_id,omitempty"`
	PaymentDate          time.Time       `gorm:"not null" json:"payment_date"`
	CreatedByID          *uuid.UUID      `gorm:"type:uuid" json:"created_by_id"` // nil for gateway callbacks
	Notes                string          `gorm:"type:text" json:"notes"`
	CreatedAt            time.Time       `json:"created_at"`
}

// PendingOnlinePayment maps a gateway order reference back to its invoice
// between payment creation and the provider callback.
type PendingOnlinePayment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID       string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"order_id"`
	InvoiceID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Provider      string          `gorm:"type:varchar(20);not null" json:"provider"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Status        string          `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	RequestedBy   *uuid.UUID      `gorm:"type:uuid" json:"requested_by"`
	ExpiresAt     time.Time       `gorm:"not null" json:"expires_at"`
	CompletedAt   *time.Time      `json:"completed_at"`
	FailureReason string          `gorm:"type:varchar(255)" json:"failure_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// PaymentGatewayEvent keeps the raw callback payload of every provider call for audit.
type PaymentGatewayEvent struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Provider    string         `gorm:"type:varchar(20);not null;index" json:"provider"`
	OrderID     string         `gorm:"type:varchar(100);index" json:"order_id"`
	Payload     datatypes.JSON `json:"payload"`
	Signature   string         `gorm:"type:varchar(255)" json:"signature"`
	Status      string         `gorm:"type:varchar(20);not null;index" json:"status"` // received, processed, rejected, failed
	Outcome     string         `gorm:"type:varchar(30)" json:"outcome"`
	Error       string         `gorm:"type:text" json:"error,omitempty"`
	ProcessedAt *time.Time     `json:"processed_at"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

func (p *PendingOnlinePayment) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

func (e *PaymentGatewayEvent) BeforeCreate(tx *gorm.DB) error {
	assignID(&e.ID)
	return nil
}
