package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActionGenerateInvoice   = "GENERATE_INVOICE"
	ActionRecordPayment     = "RECORD_PAYMENT"
	ActionCreateOnlineOrder = "CREATE_ONLINE_PAYMENT"
	ActionSettleOnline      = "SETTLE_ONLINE_PAYMENT"
	ActionMarkOverdue       = "MARK_INVOICE_OVERDUE"
	ActionActivateContract  = "ACTIVATE_CONTRACT"
)

// AuditLog tracks Who, What, and When for billing changes
type AuditLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"` // nil for gateway callbacks and scheduled jobs
	User       *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action     string         `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string         `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string         `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    datatypes.JSON `json:"details"` // serialized JSON payload
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}
