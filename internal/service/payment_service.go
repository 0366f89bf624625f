package service

import (
	"context"
	"fmt"
	"time"

	"motelhub/internal/events"
	"motelhub/internal/model"
	"motelhub/internal/repository"
	"motelhub/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// --- DTOs ---

type RecordPaymentRequest struct {
	InvoiceID     uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"2000000"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Notes         string          `json:"notes"`
}

type PaymentResult struct {
	Payment *model.Payment `json:"payment"`
	Invoice *model.Invoice `json:"invoice"`
}

// --- Ledger ---

// ledger applies payments to invoices. Both the manual and the gateway path go through it.
type ledger struct {
	invoices repository.InvoiceRepository
	payments repository.PaymentRepository
}

// apply stores p against inv and moves the invoice balance and status.
// inv must be locked by the transaction in ctx. Unique violations on the
// transaction reference are returned unwrapped.
func (l ledger) apply(ctx context.Context, inv *model.Invoice, p *model.Payment, now time.Time) error {
	remaining := inv.Remaining()
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	if p.Amount.GreaterThan(remaining) {
		return apperror.New(apperror.CodeInvalidAmount,
			fmt.Sprintf("amount exceeds the remaining balance of %s", remaining.StringFixed(0))).
			WithDetail("remaining", remaining.String()).
			WithDetail("amount", p.Amount.String())
	}

	p.InvoiceID = inv.ID
	if p.PaymentDate.IsZero() {
		p.PaymentDate = now
	}
	if err := l.payments.Create(ctx, p); err != nil {
		return err
	}

	inv.PaidAmount = inv.PaidAmount.Add(p.Amount)
	if inv.PaidAmount.GreaterThanOrEqual(inv.TotalAmount) {
		inv.Status = model.InvoicePaid
		paidAt := now
		inv.PaidDate = &paidAt
	} else {
		inv.Status = model.InvoicePartial
	}
	if err := l.invoices.UpdatePayment(ctx, inv); err != nil {
		return fmt.Errorf("failed to update invoice balance: %w", err)
	}
	return nil
}

func paymentReceivedOutbound(ownerID uuid.UUID, inv *model.Invoice, p *model.Payment, now time.Time) *Outbound {
	return &Outbound{
		Notification: model.Notification{
			UserID: ownerID,
			Type:   model.NotifyPaymentReceived,
			Title:  "Payment received for " + inv.InvoiceNo,
			Message: fmt.Sprintf("%s VND received by %s, invoice is %s",
				p.Amount.StringFixed(0), p.Method, inv.Status),
			Data: notificationData(map[string]interface{}{
				"invoice_id":  inv.ID.String(),
				"invoice_no":  inv.InvoiceNo,
				"payment_id":  p.ID.String(),
				"amount":      p.Amount.String(),
				"paid_amount": inv.PaidAmount.String(),
				"status":      inv.Status,
			}),
		},
		Event: events.BillingEvent{
			Type:          events.TypePaymentReceived,
			InvoiceID:     inv.ID.String(),
			InvoiceNo:     inv.InvoiceNo,
			PaymentID:     p.ID.String(),
			Amount:        p.Amount,
			PaidAmount:    inv.PaidAmount,
			Status:        inv.Status,
			PaymentMethod: p.Method,
			OccurredAt:    now,
		},
	}
}

// --- Interface ---

type PaymentService interface {
	RecordPayment(ctx context.Context, actor Actor, req RecordPaymentRequest) (*PaymentResult, error)
	ListPayments(ctx context.Context, actor Actor, invoiceID uuid.UUID) ([]model.Payment, error)
}

type paymentService struct {
	ledger        ledger
	contracts     repository.ContractRepository
	txManager     repository.TransactionManager
	audit         auditWriter
	notifications NotificationService
	log           *zap.Logger
	now           func() time.Time
}

func NewPaymentService(
	invoices repository.InvoiceRepository,
	payments repository.PaymentRepository,
	contracts repository.ContractRepository,
	audits repository.AuditRepository,
	txManager repository.TransactionManager,
	notifications NotificationService,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		ledger:        ledger{invoices: invoices, payments: payments},
		contracts:     contracts,
		txManager:     txManager,
		audit:         auditWriter{repo: audits},
		notifications: notifications,
		log:           log,
		now:           time.Now,
	}
}

// --- Implementation ---

func (s *paymentService) RecordPayment(ctx context.Context, actor Actor, req RecordPaymentRequest) (*PaymentResult, error) {
	if actor.Role == model.RoleTenant {
		return nil, apperror.Forbidden("tenants cannot record payments")
	}
	if !req.Amount.IsPositive() {
		return nil, apperror.Validation("amount", "amount must be greater than 0")
	}
	if !req.Amount.Equal(req.Amount.Round(2)) {
		return nil, apperror.Validation("amount", "amount must have at most 2 decimal places")
	}
	if !model.IsKnownMethod(req.PaymentMethod) {
		return nil, apperror.Validation("payment_method", "unsupported payment method: "+req.PaymentMethod)
	}

	var result PaymentResult
	var out *Outbound
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		inv, err := s.ledger.invoices.FindByIDForUpdate(txCtx, req.InvoiceID)
		if err != nil {
			if repository.IsNotFound(err) {
				return apperror.NotFound("invoice")
			}
			return fmt.Errorf("failed to load invoice: %w", err)
		}
		contract, err := s.contracts.FindByID(txCtx, inv.ContractID)
		if err != nil {
			return fmt.Errorf("failed to load contract: %w", err)
		}
		var motel *model.Motel
		if contract.Room != nil {
			motel = contract.Room.Motel
		}
		if err := authorizeManage(actor, motel); err != nil {
			return err
		}

		now := s.now()
		payment := &model.Payment{
			Amount:      req.Amount,
			Method:      req.PaymentMethod,
			PaymentDate: now,
			CreatedByID: actor.ID(),
			Notes:       req.Notes,
		}
		if err := s.ledger.apply(txCtx, inv, payment, now); err != nil {
			return err
		}

		if err := s.audit.write(txCtx, actor.ID(), model.ActionRecordPayment, inv.ID.String(), inv.InvoiceNo, map[string]interface{}{
			"payment_id":  payment.ID.String(),
			"amount":      payment.Amount.String(),
			"method":      payment.Method,
			"paid_amount": inv.PaidAmount.String(),
			"status":      inv.Status,
		}); err != nil {
			return err
		}

		if motel != nil {
			out = paymentReceivedOutbound(motel.OwnerID, inv, payment, now)
			if err := s.notifications.Notify(txCtx, out); err != nil {
				return err
			}
		}
		result = PaymentResult{Payment: payment, Invoice: inv}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out != nil {
		s.notifications.Publish(ctx, *out)
	}
	s.log.Info("payment recorded",
		zap.String("invoice_id", result.Invoice.ID.String()),
		zap.String("payment_id", result.Payment.ID.String()),
		zap.String("amount", result.Payment.Amount.String()),
		zap.String("status", result.Invoice.Status),
	)
	return &result, nil
}

func (s *paymentService) ListPayments(ctx context.Context, actor Actor, invoiceID uuid.UUID) ([]model.Payment, error) {
	inv, err := s.ledger.invoices.FindWithDetails(ctx, invoiceID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("invoice")
		}
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	if err := authorizeView(actor, inv); err != nil {
		return nil, err
	}
	payments, err := s.ledger.payments.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
