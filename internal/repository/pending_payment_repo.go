package repository

import (
	"context"
	"time"

	"motelhub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PendingPaymentRepository interface {
	Create(ctx context.Context, pending *model.PendingOnlinePayment) error
	FindByOrderID(ctx context.Context, orderID string) (*model.PendingOnlinePayment, error)
	FindByOrderIDForUpdate(ctx context.Context, orderID string) (*model.PendingOnlinePayment, error)
	MarkCompleted(ctx context.Context, orderID string, at time.Time) error
	MarkFailed(ctx context.Context, orderID, reason string) error
	ExpireBefore(ctx context.Context, t time.Time) (int64, error)
}

type pendingPaymentRepository struct {
	db *gorm.DB
}

func NewPendingPaymentRepository(db *gorm.DB) PendingPaymentRepository {
	return &pendingPaymentRepository{db: db}
}

func (r *pendingPaymentRepository) Create(ctx context.Context, pending *model.PendingOnlinePayment) error {
	return GetDB(ctx, r.db).Create(pending).Error
}

func (r *pendingPaymentRepository) FindByOrderID(ctx context.Context, orderID string) (*model.PendingOnlinePayment, error) {
	var p model.PendingOnlinePayment
	if err := GetDB(ctx, r.db).First(&p, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pendingPaymentRepository) FindByOrderIDForUpdate(ctx context.Context, orderID string) (*model.PendingOnlinePayment, error) {
	var p model.PendingOnlinePayment
	err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, "order_id = ?", orderID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pendingPaymentRepository) MarkCompleted(ctx context.Context, orderID string, at time.Time) error {
	return GetDB(ctx, r.db).Model(&model.PendingOnlinePayment{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"status":       model.PendingCompleted,
			"completed_at": at,
			"updated_at":   time.Now(),
		}).Error
}

// MarkFailed moves a waiting intent to FAILED. Completed intents are left untouched.
func (r *pendingPaymentRepository) MarkFailed(ctx context.Context, orderID, reason string) error {
	return GetDB(ctx, r.db).Model(&model.PendingOnlinePayment{}).
		Where("order_id = ? AND status = ?", orderID, model.PendingWaiting).
		Updates(map[string]interface{}{
			"status":         model.PendingFailed,
			"failure_reason": reason,
			"updated_at":     time.Now(),
		}).Error
}

// ExpireBefore marks waiting intents whose expiry is before t as EXPIRED.
func (r *pendingPaymentRepository) ExpireBefore(ctx context.Context, t time.Time) (int64, error) {
	res := GetDB(ctx, r.db).Model(&model.PendingOnlinePayment{}).
		Where("status = ? AND expires_at < ?", model.PendingWaiting, t).
		Updates(map[string]interface{}{"status": model.PendingExpired, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}
