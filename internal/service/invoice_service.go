package service

import (
	"context"
	"fmt"
	"time"

	"motelhub/internal/events"
	"motelhub/internal/model"
	"motelhub/internal/repository"
	"motelhub/pkg/apperror"
	"motelhub/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// --- DTOs ---

type GenerateInvoicesRequest struct {
	MotelID       uuid.UUID            `json:"motel_id" binding:"required"`
	BillingMonth  string               `json:"billing_month" binding:"required,billing_month"`
	MeterReadings []model.MeterReading `json:"meter_readings" binding:"dive"`
}

type InvoiceListFilter struct {
	MotelID      *uuid.UUID
	ContractID   *uuid.UUID
	Status       string
	BillingMonth string // YYYY-MM or empty
	Page         int
	Limit        int
}

// --- Interface ---

type InvoiceService interface {
	// GenerateInvoices bills every active contract of the motel for the month.
	// Contracts already billed for the month are skipped. Each contract is
	// committed on its own: when one fails, the invoices created before it are
	// returned with the error and a rerun bills only the rest.
	GenerateInvoices(ctx context.Context, actor Actor, req GenerateInvoicesRequest) ([]model.Invoice, error)
	ListInvoices(ctx context.Context, actor Actor, filter InvoiceListFilter) ([]model.Invoice, int64, error)
	GetInvoice(ctx context.Context, actor Actor, id uuid.UUID) (*model.Invoice, error)
	// MarkOverdue flips open invoices past their due date and returns how many changed.
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
}

type invoiceService struct {
	invoices      repository.InvoiceRepository
	contracts     repository.ContractRepository
	motels        repository.MotelRepository
	txManager     repository.TransactionManager
	audit         auditWriter
	notifications NotificationService
	log           *zap.Logger
	now           func() time.Time
}

func NewInvoiceService(
	invoices repository.InvoiceRepository,
	contracts repository.ContractRepository,
	motels repository.MotelRepository,
	audits repository.AuditRepository,
	txManager repository.TransactionManager,
	notifications NotificationService,
	log *zap.Logger,
) InvoiceService {
	return &invoiceService{
		invoices:      invoices,
		contracts:     contracts,
		motels:        motels,
		txManager:     txManager,
		audit:         auditWriter{repo: audits},
		notifications: notifications,
		log:           log,
		now:           time.Now,
	}
}

// --- Implementation ---

func (s *invoiceService) GenerateInvoices(ctx context.Context, actor Actor, req GenerateInvoicesRequest) ([]model.Invoice, error) {
	if actor.Role == model.RoleTenant {
		return nil, apperror.Forbidden("tenants cannot generate invoices")
	}

	month, err := parseBillingMonth(req.BillingMonth)
	if err != nil {
		return nil, err
	}
	if err := validateReadings(req.MeterReadings); err != nil {
		return nil, err
	}

	motel, err := s.motels.FindByID(ctx, req.MotelID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("motel")
		}
		return nil, fmt.Errorf("failed to load motel: %w", err)
	}
	if err := authorizeManage(actor, motel); err != nil {
		return nil, err
	}

	contracts, err := s.contracts.ListActiveByMotel(ctx, motel.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active contracts: %w", err)
	}
	created := make([]model.Invoice, 0, len(contracts))
	if len(contracts) == 0 {
		return created, nil
	}

	catalog, err := s.motels.ListServices(ctx, motel.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service catalog: %w", err)
	}
	roomIDs := make([]uuid.UUID, 0, len(contracts))
	for _, c := range contracts {
		roomIDs = append(roomIDs, c.RoomID)
	}
	overrides, err := s.motels.ListRoomServices(ctx, roomIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load room services: %w", err)
	}

	readings := make(map[uuid.UUID]*model.MeterReading, len(req.MeterReadings))
	for i := range req.MeterReadings {
		readings[req.MeterReadings[i].RoomID] = &req.MeterReadings[i]
	}

	// prices are checked for every contract before the first invoice is written
	services := make([][]billableService, len(contracts))
	for i := range contracts {
		services[i] = resolveServices(catalog, overrides[contracts[i].RoomID])
		if err := validatePrices(&contracts[i], services[i]); err != nil {
			return nil, err
		}
	}

	var outs []Outbound
	for i := range contracts {
		c := &contracts[i]
		inv, out, err := s.generateOne(ctx, actor, c, month, services[i], readings[c.RoomID])
		if err != nil {
			// invoices committed so far stay, their tenants still get notified
			s.notifications.Publish(ctx, outs...)
			return created, err
		}
		if inv == nil {
			continue
		}
		created = append(created, *inv)
		if out != nil {
			outs = append(outs, *out)
		}
	}

	s.notifications.Publish(ctx, outs...)
	s.log.Info("invoices generated",
		zap.String("motel_id", motel.ID.String()),
		zap.String("billing_month", month.Format(billingMonthLayout)),
		zap.Int("contracts", len(contracts)),
		zap.Int("created", len(created)),
	)
	return created, nil
}

// generateOne creates the invoice of one contract in its own transaction.
// It returns a nil invoice when the contract is already billed for the month.
func (s *invoiceService) generateOne(
	ctx context.Context,
	actor Actor,
	c *model.Contract,
	month time.Time,
	services []billableService,
	reading *model.MeterReading,
) (*model.Invoice, *Outbound, error) {
	exists, err := s.invoices.ExistsForContractMonth(ctx, c.ID, month)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check existing invoice: %w", err)
	}
	if exists {
		return nil, nil, nil
	}

	for attempt := 0; attempt < 2; attempt++ {
		items, total := composeItems(c, services, reading)
		now := s.now()
		inv := &model.Invoice{
			InvoiceNo:    newInvoiceNumber(now),
			ContractID:   c.ID,
			BillingMonth: month,
			TotalAmount:  total,
			PaidAmount:   decimal.Zero,
			Status:       model.InvoiceUnpaid,
			DueDate:      computeDueDate(month, c.DueDay()),
			Items:        items,
			CreatedBy:    actor.ID(),
		}
		if !total.IsPositive() {
			// nothing to collect
			paidAt := now
			inv.Status = model.InvoicePaid
			inv.PaidDate = &paidAt
		}

		var out *Outbound
		err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
			if err := s.invoices.Create(txCtx, inv); err != nil {
				return err
			}
			err := s.audit.write(txCtx, actor.ID(), model.ActionGenerateInvoice, inv.ID.String(), inv.InvoiceNo, map[string]interface{}{
				"contract_id":   c.ID.String(),
				"billing_month": inv.Month(),
				"total_amount":  inv.TotalAmount.String(),
				"items":         len(inv.Items),
			})
			if err != nil {
				return err
			}
			if c.TenantID == nil {
				return nil
			}
			out = invoiceCreatedOutbound(*c.TenantID, inv, now)
			return s.notifications.Notify(txCtx, out)
		})
		if err == nil {
			return inv, out, nil
		}
		if !repository.IsUniqueViolation(err) {
			return nil, nil, fmt.Errorf("failed to create invoice for contract %s: %w", c.ID, err)
		}

		// Either a concurrent run billed the contract or the invoice number collided.
		if _, findErr := s.invoices.FindByContractAndMonth(ctx, c.ID, month); findErr == nil {
			s.log.Info("invoice already generated concurrently",
				zap.String("contract_id", c.ID.String()),
				zap.String("billing_month", month.Format(billingMonthLayout)),
			)
			return nil, nil, nil
		} else if !repository.IsNotFound(findErr) {
			return nil, nil, fmt.Errorf("failed to check existing invoice: %w", findErr)
		}
	}
	return nil, nil, fmt.Errorf("failed to create invoice for contract %s: %w", c.ID, err)
}

func invoiceCreatedOutbound(tenantID uuid.UUID, inv *model.Invoice, now time.Time) *Outbound {
	return &Outbound{
		Notification: model.Notification{
			UserID: tenantID,
			Type:   model.NotifyInvoiceCreated,
			Title:  "New invoice " + inv.InvoiceNo,
			Message: fmt.Sprintf("Invoice for %s: %s VND, due %s",
				inv.Month(), inv.TotalAmount.StringFixed(0), inv.DueDate.Format("2006-01-02")),
			Data: notificationData(map[string]interface{}{
				"invoice_id":   inv.ID.String(),
				"invoice_no":   inv.InvoiceNo,
				"total_amount": inv.TotalAmount.String(),
				"due_date":     inv.DueDate.Format("2006-01-02"),
			}),
		},
		Event: events.BillingEvent{
			Type:       events.TypeInvoiceCreated,
			InvoiceID:  inv.ID.String(),
			InvoiceNo:  inv.InvoiceNo,
			Amount:     inv.TotalAmount,
			PaidAmount: inv.PaidAmount,
			Status:     inv.Status,
			OccurredAt: now,
		},
	}
}

func (s *invoiceService) ListInvoices(ctx context.Context, actor Actor, f InvoiceListFilter) ([]model.Invoice, int64, error) {
	filter := repository.InvoiceFilter{
		MotelID:    f.MotelID,
		ContractID: f.ContractID,
		Status:     f.Status,
	}
	if f.BillingMonth != "" {
		month, err := parseBillingMonth(f.BillingMonth)
		if err != nil {
			return nil, 0, err
		}
		filter.BillingMonth = &month
	}

	switch {
	case actor.Unrestricted():
	case actor.Role == model.RoleLandlord:
		filter.OwnerID = actor.ID()
	case actor.Role == model.RoleTenant:
		filter.TenantID = actor.ID()
	default:
		return nil, 0, apperror.Forbidden("access to invoices is denied")
	}

	page := pagination.New(f.Page, f.Limit)
	invoices, total, err := s.invoices.List(ctx, filter, page.Offset, page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, total, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, actor Actor, id uuid.UUID) (*model.Invoice, error) {
	inv, err := s.invoices.FindWithDetails(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("invoice")
		}
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	if err := authorizeView(actor, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	candidates, err := s.invoices.ListOverdueCandidates(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to list overdue invoices: %w", err)
	}

	marked := 0
	var outs []Outbound
	for i := range candidates {
		inv := &candidates[i]
		var out *Outbound
		flipped := false
		err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
			ok, err := s.invoices.MarkOverdue(txCtx, inv.ID)
			if err != nil || !ok {
				return err
			}
			flipped = true
			inv.Status = model.InvoiceOverdue
			if err := s.audit.write(txCtx, nil, model.ActionMarkOverdue, inv.ID.String(), inv.InvoiceNo, map[string]interface{}{
				"due_date":  inv.DueDate.Format("2006-01-02"),
				"remaining": inv.Remaining().String(),
			}); err != nil {
				return err
			}
			if inv.Contract == nil || inv.Contract.TenantID == nil {
				return nil
			}
			out = invoiceOverdueOutbound(*inv.Contract.TenantID, inv, now)
			return s.notifications.Notify(txCtx, out)
		})
		if err != nil {
			s.notifications.Publish(ctx, outs...)
			return marked, fmt.Errorf("failed to mark invoice %s overdue: %w", inv.ID, err)
		}
		if flipped {
			marked++
		}
		if out != nil {
			outs = append(outs, *out)
		}
	}

	s.notifications.Publish(ctx, outs...)
	if marked > 0 {
		s.log.Info("invoices marked overdue", zap.Int("count", marked))
	}
	return marked, nil
}

func invoiceOverdueOutbound(tenantID uuid.UUID, inv *model.Invoice, now time.Time) *Outbound {
	return &Outbound{
		Notification: model.Notification{
			UserID: tenantID,
			Type:   model.NotifyInvoiceOverdue,
			Title:  "Invoice " + inv.InvoiceNo + " is overdue",
			Message: fmt.Sprintf("Invoice for %s was due %s, %s VND remaining",
				inv.Month(), inv.DueDate.Format("2006-01-02"), inv.Remaining().StringFixed(0)),
			Data: notificationData(map[string]interface{}{
				"invoice_id": inv.ID.String(),
				"invoice_no": inv.InvoiceNo,
				"remaining":  inv.Remaining().String(),
			}),
		},
		Event: events.BillingEvent{
			Type:       events.TypeInvoiceOverdue,
			InvoiceID:  inv.ID.String(),
			InvoiceNo:  inv.InvoiceNo,
			Amount:     inv.TotalAmount,
			PaidAmount: inv.PaidAmount,
			Status:     model.InvoiceOverdue,
			OccurredAt: now,
		},
	}
}
