package repository

import (
	"context"
	"time"

	"motelhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContractRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Contract, error)
	ListActiveByMotel(ctx context.Context, motelID uuid.UUID) ([]model.Contract, error)
	Create(ctx context.Context, contract *model.Contract) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Contract, error)
	HasActiveForRoom(ctx context.Context, roomID, excludeID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type contractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	err := GetDB(ctx, r.db).
		Preload("Room.Motel").
		Preload("Tenants").
		First(&contract, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// ListActiveByMotel returns ACTIVE contracts of the motel with room and co-tenants loaded.
func (r *contractRepository) ListActiveByMotel(ctx context.Context, motelID uuid.UUID) ([]model.Contract, error) {
	var contracts []model.Contract
	err := GetDB(ctx, r.db).
		Joins("JOIN rooms ON rooms.id = contracts.room_id").
		Where("rooms.motel_id = ? AND contracts.status = ?", motelID, model.ContractActive).
		Preload("Room").
		Preload("Tenants").
		Order("contracts.created_at asc").
		Find(&contracts).Error
	return contracts, err
}

func (r *contractRepository) Create(ctx context.Context, contract *model.Contract) error {
	return GetDB(ctx, r.db).Create(contract).Error
}

func (r *contractRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&contract, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// HasActiveForRoom reports whether another contract on the room is ACTIVE.
func (r *contractRepository) HasActiveForRoom(ctx context.Context, roomID, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Contract{}).
		Where("room_id = ? AND status = ? AND id <> ?", roomID, model.ContractActive, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *contractRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return GetDB(ctx, r.db).Model(&model.Contract{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).Error
}
