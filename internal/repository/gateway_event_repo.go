package repository

import (
	"context"

	"motelhub/internal/model"

	"gorm.io/gorm"
)

type GatewayEventRepository interface {
	Log(ctx context.Context, event *model.PaymentGatewayEvent) error
	ListByOrder(ctx context.Context, orderID string) ([]model.PaymentGatewayEvent, error)
}

type gatewayEventRepository struct {
	db *gorm.DB
}

func NewGatewayEventRepository(db *gorm.DB) GatewayEventRepository {
	return &gatewayEventRepository{db: db}
}

func (r *gatewayEventRepository) Log(ctx context.Context, event *model.PaymentGatewayEvent) error {
	return GetDB(ctx, r.db).Create(event).Error
}

func (r *gatewayEventRepository) ListByOrder(ctx context.Context, orderID string) ([]model.PaymentGatewayEvent, error) {
	var events []model.PaymentGatewayEvent
	err := GetDB(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("created_at asc").
		Find(&events).Error
	return events, err
}
