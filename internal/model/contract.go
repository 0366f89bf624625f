package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ContractStatus enum constants
const (
	ContractPending    = "PENDING"
	ContractActive     = "ACTIVE"
	ContractTerminated = "TERMINATED"
	ContractExpired    = "EXPIRED"
)

// DefaultPaymentDueDay is used when a contract has no payment day set
const DefaultPaymentDueDay = 5

// Contract is a lease binding a room to a primary tenant and optional co-tenants
type Contract struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"room_id"`
	Room          *Room            `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	TenantID      *uuid.UUID       `gorm:"type:uuid;index" json:"tenant_id"` // primary tenant, nullable
	Tenant        *User            `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	RentPrice     decimal.Decimal  `gorm:"type:decimal(18,2);not null" json:"rent_price"`
	DepositAmount decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0" json:"deposit_amount"`
	PaymentDueDay int              `gorm:"type:int;not null;default:0" json:"payment_due_day"` // 1-31, 0 = default
	Status        string           `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	StartDate     time.Time        `gorm:"type:date;not null" json:"start_date"`
	EndDate       *time.Time       `gorm:"type:date" json:"end_date"`
	Notes         string           `gorm:"type:text" json:"notes"`
	Tenants       []ContractTenant `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"tenants"` // co-tenants, primary excluded
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ContractTenant is a co-tenant living in the room under the contract
type ContractTenant struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ContractID uuid.UUID  `gorm:"type:uuid;not null;index" json:"contract_id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // nullable: occupants without an account
	FullName   string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone      string     `gorm:"type:varchar(20)" json:"phone"`
	CreatedAt  time.Time  `json:"created_at"`
}

// DueDay returns the effective payment day of the month.
func (c *Contract) DueDay() int {
	if c.PaymentDueDay <= 0 {
		return DefaultPaymentDueDay
	}
	return c.PaymentDueDay
}

// HasMember reports whether the user is the primary tenant or a co-tenant.
func (c *Contract) HasMember(userID uuid.UUID) bool {
	if c.TenantID != nil && *c.TenantID == userID {
		return true
	}
	for _, t := range c.Tenants {
		if t.UserID != nil && *t.UserID == userID {
			return true
		}
	}
	return false
}

func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}

func (ct *ContractTenant) BeforeCreate(tx *gorm.DB) error {
	assignID(&ct.ID)
	return nil
}
