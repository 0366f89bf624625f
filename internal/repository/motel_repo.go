package repository

import (
	"context"

	"motelhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MotelRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Motel, error)
	ListServices(ctx context.Context, motelID uuid.UUID) ([]model.Service, error)
	ListRoomServices(ctx context.Context, roomIDs []uuid.UUID) (map[uuid.UUID][]model.RoomService, error)
}

type motelRepository struct {
	db *gorm.DB
}

func NewMotelRepository(db *gorm.DB) MotelRepository {
	return &motelRepository{db: db}
}

func (r *motelRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Motel, error) {
	var motel model.Motel
	if err := GetDB(ctx, r.db).First(&motel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &motel, nil
}

// ListServices returns the motel's default service catalog in a stable order.
func (r *motelRepository) ListServices(ctx context.Context, motelID uuid.UUID) ([]model.Service, error) {
	var services []model.Service
	err := GetDB(ctx, r.db).
		Where("motel_id = ?", motelID).
		Order("created_at asc, name asc").
		Find(&services).Error
	return services, err
}

// ListRoomServices loads per-room overrides for all given rooms in one query, keyed by room.
func (r *motelRepository) ListRoomServices(ctx context.Context, roomIDs []uuid.UUID) (map[uuid.UUID][]model.RoomService, error) {
	out := make(map[uuid.UUID][]model.RoomService)
	if len(roomIDs) == 0 {
		return out, nil
	}

	var rows []model.RoomService
	err := GetDB(ctx, r.db).
		Preload("Service").
		Where("room_id IN ?", roomIDs).
		Order("created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, rs := range rows {
		out[rs.RoomID] = append(out[rs.RoomID], rs)
	}
	return out, nil
}
