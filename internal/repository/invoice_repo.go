package repository

import (
	"context"
	"time"

	"motelhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvoiceFilter narrows invoice listings. Zero values are ignored.
type InvoiceFilter struct {
	MotelID      *uuid.UUID
	ContractID   *uuid.UUID
	TenantID     *uuid.UUID // primary tenant or co-tenant
	OwnerID      *uuid.UUID // motel owner
	BillingMonth *time.Time
	Status       string
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	FindWithDetails(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	FindByContractAndMonth(ctx context.Context, contractID uuid.UUID, month time.Time) (*model.Invoice, error)
	ExistsForContractMonth(ctx context.Context, contractID uuid.UUID, month time.Time) (bool, error)
	List(ctx context.Context, filter InvoiceFilter, offset, limit int) ([]model.Invoice, int64, error)
	UpdatePayment(ctx context.Context, invoice *model.Invoice) error
	ListOverdueCandidates(ctx context.Context, asOf time.Time) ([]model.Invoice, error)
	MarkOverdue(ctx context.Context, id uuid.UUID) (bool, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

// Create inserts the invoice together with its items.
func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// FindByIDForUpdate locks the invoice row until the surrounding transaction ends.
func (r *invoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// FindWithDetails loads the invoice with items and the contract chain up to the motel.
func (r *invoiceRepository) FindWithDetails(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	err := GetDB(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order asc") }).
		Preload("Contract.Room.Motel").
		Preload("Contract.Tenants").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payment_date asc") }).
		First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByContractAndMonth(ctx context.Context, contractID uuid.UUID, month time.Time) (*model.Invoice, error) {
	var invoice model.Invoice
	err := GetDB(ctx, r.db).
		Where("contract_id = ? AND billing_month = ?", contractID, month).
		First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) ExistsForContractMonth(ctx context.Context, contractID uuid.UUID, month time.Time) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Invoice{}).
		Where("contract_id = ? AND billing_month = ?", contractID, month).
		Count(&count).Error
	return count > 0, err
}

func (r *invoiceRepository) applyFilter(db *gorm.DB, f InvoiceFilter) *gorm.DB {
	q := db.Model(&model.Invoice{})
	if f.ContractID != nil {
		q = q.Where("invoices.contract_id = ?", *f.ContractID)
	}
	if f.BillingMonth != nil {
		q = q.Where("invoices.billing_month = ?", *f.BillingMonth)
	}
	if f.Status != "" {
		q = q.Where("invoices.status = ?", f.Status)
	}
	if f.MotelID != nil || f.OwnerID != nil {
		q = q.Joins("JOIN contracts ON contracts.id = invoices.contract_id").
			Joins("JOIN rooms ON rooms.id = contracts.room_id")
		if f.MotelID != nil {
			q = q.Where("rooms.motel_id = ?", *f.MotelID)
		}
		if f.OwnerID != nil {
			q = q.Joins("JOIN motels ON motels.id = rooms.motel_id").
				Where("motels.owner_id = ?", *f.OwnerID)
		}
	}
	if f.TenantID != nil {
		q = q.Where(
			"invoices.contract_id IN (?) OR invoices.contract_id IN (?)",
			db.Model(&model.Contract{}).Select("id").Where("tenant_id = ?", *f.TenantID),
			db.Model(&model.ContractTenant{}).Select("contract_id").Where("user_id = ?", *f.TenantID),
		)
	}
	return q
}

func (r *invoiceRepository) List(ctx context.Context, f InvoiceFilter, offset, limit int) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	db := GetDB(ctx, r.db)
	if err := r.applyFilter(db, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.applyFilter(db, f).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order asc") }).
		Order("invoices.created_at desc").
		Offset(offset).Limit(limit).
		Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

// UpdatePayment persists the paid amount, status and paid date only.
func (r *invoiceRepository) UpdatePayment(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Model(&model.Invoice{}).
		Where("id = ?", invoice.ID).
		Updates(map[string]interface{}{
			"paid_amount": invoice.PaidAmount,
			"status":      invoice.Status,
			"paid_date":   invoice.PaidDate,
			"updated_at":  time.Now(),
		}).Error
}

// ListOverdueCandidates returns open invoices whose due date is before asOf.
func (r *invoiceRepository) ListOverdueCandidates(ctx context.Context, asOf time.Time) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := GetDB(ctx, r.db).
		Preload("Contract").
		Where("status IN ? AND due_date < ?", []string{model.InvoiceUnpaid, model.InvoicePartial}, asOf).
		Order("due_date asc").
		Find(&invoices).Error
	return invoices, err
}

// MarkOverdue flips an open invoice to OVERDUE. It reports false when the
// invoice was settled or changed in the meantime.
func (r *invoiceRepository) MarkOverdue(ctx context.Context, id uuid.UUID) (bool, error) {
	res := GetDB(ctx, r.db).Model(&model.Invoice{}).
		Where("id = ? AND status IN ?", id, []string{model.InvoiceUnpaid, model.InvoicePartial}).
		Updates(map[string]interface{}{"status": model.InvoiceOverdue, "updated_at": time.Now()})
	return res.RowsAffected > 0, res.Error
}
