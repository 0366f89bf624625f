package repository

import (
	"context"
	"time"

	"motelhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatisticsRepository interface {
	InvoiceTotals(ctx context.Context, motelID uuid.UUID, month time.Time) ([]model.StatusTotal, error)
	PaymentTotals(ctx context.Context, motelID uuid.UUID, month time.Time) ([]model.MethodTotal, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) motelInvoices(ctx context.Context, motelID uuid.UUID, month time.Time) *gorm.DB {
	return GetDB(ctx, r.db).
		Joins("JOIN contracts ON contracts.id = invoices.contract_id").
		Joins("JOIN rooms ON rooms.id = contracts.room_id").
		Where("rooms.motel_id = ? AND invoices.billing_month = ?", motelID, month)
}

// InvoiceTotals groups the month's invoices by status
func (r *statisticsRepository) InvoiceTotals(ctx context.Context, motelID uuid.UUID, month time.Time) ([]model.StatusTotal, error) {
	var rows []model.StatusTotal
	err := r.motelInvoices(ctx, motelID, month).
		Table("invoices").
		Select("invoices.status AS status, COUNT(*) AS count, COALESCE(SUM(invoices.total_amount), 0) AS total").
		Group("invoices.status").
		Order("invoices.status").
		Scan(&rows).Error
	return rows, err
}

// PaymentTotals groups payments against the month's invoices by method
func (r *statisticsRepository) PaymentTotals(ctx context.Context, motelID uuid.UUID, month time.Time) ([]model.MethodTotal, error) {
	var rows []model.MethodTotal
	err := r.motelInvoices(ctx, motelID, month).
		Table("invoices").
		Joins("JOIN payments ON payments.invoice_id = invoices.id").
		Select("payments.method AS payment_method, COUNT(*) AS count, COALESCE(SUM(payments.amount), 0) AS total").
		Group("payments.method").
		Order("payments.method").
		Scan(&rows).Error
	return rows, err
}
