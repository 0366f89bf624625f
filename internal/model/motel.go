package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RoomStatus enum constants
const (
	RoomAvailable   = "AVAILABLE"
	RoomOccupied    = "OCCUPIED"
	RoomMaintenance = "MAINTENANCE"
)

// ServiceType enum constants
const (
	ServiceTypeFixed  = "FIXED"  // flat monthly fee
	ServiceTypeUsage  = "USAGE"  // metered: electricity, water
	ServiceTypePeople = "PEOPLE" // charged per occupant
)

// Motel is a managed property owned by a landlord
type Motel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner     *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Address   string    `gorm:"type:text" json:"address"`
	Rooms     []Room    `gorm:"foreignKey:MotelID" json:"rooms,omitempty"`
	Services  []Service `gorm:"foreignKey:MotelID" json:"services,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Room is a rentable unit of a motel
type Room struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	MotelID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"motel_id"`
	Motel        *Motel        `gorm:"foreignKey:MotelID" json:"motel,omitempty"`
	Name         string        `gorm:"type:varchar(100);not null" json:"name"`
	Status       string        `gorm:"type:varchar(20);not null;default:'AVAILABLE'" json:"status"`
	RoomServices []RoomService `gorm:"foreignKey:RoomID" json:"room_services,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Service is a billable item of the motel's default catalog
type Service struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	MotelID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"motel_id"`
	Name      string          `gorm:"type:varchar(100);not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	Unit      string          `gorm:"type:varchar(30)" json:"unit"`          // kWh, m3, person, month
	Type      string          `gorm:"type:varchar(10);not null" json:"type"` // FIXED, USAGE, PEOPLE
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RoomService overrides the motel catalog for one room. When a room has any
// overrides, only those services are billed for it.
type RoomService struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID      uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_room_service" json:"room_id"`
	ServiceID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_room_service" json:"service_id"`
	Service     Service          `gorm:"foreignKey:ServiceID" json:"service"`
	CustomPrice *decimal.Decimal `gorm:"type:decimal(18,2)" json:"custom_price"` // nullable = catalog price
	CreatedAt   time.Time        `json:"created_at"`
}

func (m *Motel) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.ID)
	return nil
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	return nil
}

func (rs *RoomService) BeforeCreate(tx *gorm.DB) error {
	assignID(&rs.ID)
	return nil
}
