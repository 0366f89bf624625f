package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"motelhub/internal/gateway"
	"motelhub/internal/model"
	"motelhub/internal/repository"
	"motelhub/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// DefaultOrderTTL is how long a gateway order stays payable.
const DefaultOrderTTL = 15 * time.Minute

var ictZone = time.FixedZone("ICT", 7*60*60)

var errAlreadySettled = errors.New("order already settled")

// --- DTOs ---

type CreateOnlinePaymentRequest struct {
	InvoiceID     uuid.UUID `json:"invoice_id" binding:"required"`
	PaymentMethod string    `json:"payment_method" binding:"required"`
	ReturnURL     string    `json:"return_url" binding:"omitempty,url"`
}

type OnlinePaymentConfig struct {
	OrderTTL    time.Duration
	FrontendURL string
}

// --- Interface ---

type OnlinePaymentService interface {
	// CreateOnlinePayment signs a gateway order for the invoice's remaining balance.
	CreateOnlinePayment(ctx context.Context, actor Actor, req CreateOnlinePaymentRequest, clientIP string) (*gateway.PaymentRequest, error)
	// HandleCallback reconciles a provider notification. An empty tag detects the
	// provider from the payload. The returned status and body are the provider's ack;
	// an error is returned only when no provider matches.
	HandleCallback(ctx context.Context, tag string, raw gateway.RawCallback) (int, interface{}, error)
	// HandleReturn maps a provider redirect to the frontend result page URL.
	HandleReturn(ctx context.Context, tag string, query url.Values) (string, error)
	// ExpireStale marks unpaid orders past their expiry.
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type onlinePaymentService struct {
	registry      *gateway.Registry
	ledger        ledger
	pendings      repository.PendingPaymentRepository
	events        repository.GatewayEventRepository
	contracts     repository.ContractRepository
	txManager     repository.TransactionManager
	audit         auditWriter
	notifications NotificationService
	cfg           OnlinePaymentConfig
	log           *zap.Logger
	now           func() time.Time
}

func NewOnlinePaymentService(
	registry *gateway.Registry,
	invoices repository.InvoiceRepository,
	payments repository.PaymentRepository,
	pendings repository.PendingPaymentRepository,
	gatewayEvents repository.GatewayEventRepository,
	contracts repository.ContractRepository,
	audits repository.AuditRepository,
	txManager repository.TransactionManager,
	notifications NotificationService,
	cfg OnlinePaymentConfig,
	log *zap.Logger,
) OnlinePaymentService {
	if cfg.OrderTTL <= 0 {
		cfg.OrderTTL = DefaultOrderTTL
	}
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	return &onlinePaymentService{
		registry:      registry,
		ledger:        ledger{invoices: invoices, payments: payments},
		pendings:      pendings,
		events:        gatewayEvents,
		contracts:     contracts,
		txManager:     txManager,
		audit:         auditWriter{repo: audits},
		notifications: notifications,
		cfg:           cfg,
		log:           log,
		now:           time.Now,
	}
}

// newOrderReference renders yymmdd_<unix millis><4 random digits>. The date
// prefix is in Vietnam time, as ZaloPay requires for app_trans_id.
func newOrderReference(now time.Time) string {
	return fmt.Sprintf("%s_%d%04d", now.In(ictZone).Format("060102"), now.UnixMilli(), rand.Intn(10000))
}

// --- Implementation ---

func (s *onlinePaymentService) CreateOnlinePayment(ctx context.Context, actor Actor, req CreateOnlinePaymentRequest, clientIP string) (*gateway.PaymentRequest, error) {
	provider, ok := s.registry.Get(req.PaymentMethod)
	if !ok {
		return nil, apperror.InvalidMethod(req.PaymentMethod)
	}

	inv, err := s.ledger.invoices.FindWithDetails(ctx, req.InvoiceID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("invoice")
		}
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	if err := authorizeView(actor, inv); err != nil {
		return nil, err
	}

	amount := inv.Remaining()
	if !amount.IsPositive() {
		return nil, apperror.New(apperror.CodeAlreadyPaid, "invoice is already fully paid").
			WithDetail("invoice_id", inv.ID.String())
	}

	now := s.now()
	params := gateway.PaymentParams{
		OrderID:   newOrderReference(now),
		Amount:    amount,
		OrderInfo: "Payment for invoice " + inv.InvoiceNo,
		ReturnURL: req.ReturnURL,
		ClientIP:  clientIP,
		UserRef:   actor.UserID.String(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.OrderTTL),
	}
	order, err := provider.BuildPayment(params)
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrUnsupportedAmount):
			return nil, apperror.New(apperror.CodeInvalidAmount, "amount cannot be paid online").
				WithDetail("remaining", amount.String())
		case errors.Is(err, gateway.ErrInvalidConfig):
			return nil, apperror.New(apperror.CodeInvalidMethod, "payment method is not available").
				WithDetail("payment_method", provider.Method())
		}
		return nil, fmt.Errorf("failed to build %s payment: %w", provider.Method(), err)
	}

	pending := &model.PendingOnlinePayment{
		OrderID:     order.OrderID,
		InvoiceID:   inv.ID,
		Provider:    provider.Method(),
		Amount:      amount,
		Status:      model.PendingWaiting,
		RequestedBy: actor.ID(),
		ExpiresAt:   params.ExpiresAt,
	}
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.pendings.Create(txCtx, pending); err != nil {
			return fmt.Errorf("failed to save pending payment: %w", err)
		}
		return s.audit.write(txCtx, actor.ID(), model.ActionCreateOnlineOrder, inv.ID.String(), inv.InvoiceNo, map[string]interface{}{
			"order_id": order.OrderID,
			"provider": provider.Method(),
			"amount":   amount.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("online payment created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("order_id", order.OrderID),
		zap.String("provider", provider.Method()),
		zap.String("amount", amount.String()),
	)
	return order, nil
}

func (s *onlinePaymentService) resolve(tag string, raw gateway.RawCallback) (gateway.Provider, error) {
	if tag != "" {
		if p, ok := s.registry.Get(tag); ok {
			return p, nil
		}
		return nil, apperror.Validation("provider", "unrecognized payment provider").WithDetail("provider", tag)
	}
	if p, ok := s.registry.Detect(gateway.Fields(raw)); ok {
		return p, nil
	}
	return nil, apperror.Validation("provider", "unrecognized payment provider")
}

func (s *onlinePaymentService) HandleCallback(ctx context.Context, tag string, raw gateway.RawCallback) (int, interface{}, error) {
	provider, err := s.resolve(tag, raw)
	if err != nil {
		return 0, nil, err
	}

	data, parseErr := provider.ParseCallback(raw)
	var outcome gateway.Outcome
	var procErr error
	if parseErr != nil {
		outcome, procErr = gateway.OutcomeInvalidSignature, parseErr
	} else {
		outcome, procErr = s.reconcile(ctx, provider, data)
	}

	s.logEvent(ctx, provider, raw, data, outcome, procErr)
	if outcome == gateway.OutcomeError {
		s.log.Error("gateway callback failed",
			zap.String("provider", provider.Method()),
			zap.String("order_id", orderIDOf(data)),
			zap.Error(procErr),
		)
	} else {
		s.log.Info("gateway callback handled",
			zap.String("provider", provider.Method()),
			zap.String("order_id", orderIDOf(data)),
			zap.String("outcome", outcome.String()),
		)
	}

	status, body := provider.Acknowledge(data, outcome)
	return status, body, nil
}

// reconcile settles a verified notification against its pending order.
func (s *onlinePaymentService) reconcile(ctx context.Context, provider gateway.Provider, data *gateway.CallbackData) (gateway.Outcome, error) {
	pending, err := s.pendings.FindByOrderID(ctx, data.OrderID)
	if err != nil {
		if repository.IsNotFound(err) {
			return gateway.OutcomeNotFound, fmt.Errorf("order %s not found", data.OrderID)
		}
		return gateway.OutcomeError, fmt.Errorf("failed to load pending payment: %w", err)
	}
	if pending.Provider != provider.Method() {
		return gateway.OutcomeNotFound, fmt.Errorf("order %s belongs to %s", data.OrderID, pending.Provider)
	}
	if pending.Status == model.PendingCompleted {
		return gateway.OutcomeAlreadyProcessed, nil
	}

	if !data.Success {
		reason := data.Message
		if reason == "" {
			reason = "payment failed at gateway"
		}
		if err := s.pendings.MarkFailed(ctx, pending.OrderID, reason); err != nil {
			return gateway.OutcomeError, fmt.Errorf("failed to mark pending payment failed: %w", err)
		}
		return gateway.OutcomeGatewayFailed, nil
	}
	if !data.Amount.Equal(pending.Amount) {
		if err := s.pendings.MarkFailed(ctx, pending.OrderID, "amount mismatch"); err != nil {
			return gateway.OutcomeError, fmt.Errorf("failed to mark pending payment failed: %w", err)
		}
		return gateway.OutcomeInvalidAmount, fmt.Errorf("amount %s does not match order amount %s", data.Amount, pending.Amount)
	}

	var out *Outbound
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		locked, err := s.pendings.FindByOrderIDForUpdate(txCtx, pending.OrderID)
		if err != nil {
			return fmt.Errorf("failed to lock pending payment: %w", err)
		}
		if locked.Status == model.PendingCompleted {
			return errAlreadySettled
		}
		if _, err := s.ledger.payments.FindByTransactionID(txCtx, locked.OrderID); err == nil {
			return errAlreadySettled
		} else if !repository.IsNotFound(err) {
			return fmt.Errorf("failed to check existing payment: %w", err)
		}

		inv, err := s.ledger.invoices.FindByIDForUpdate(txCtx, locked.InvoiceID)
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}

		now := s.now()
		orderID := locked.OrderID
		payment := &model.Payment{
			Amount:               data.Amount,
			Method:               provider.Method(),
			TransactionID:        &orderID,
			GatewayTransactionID: data.GatewayTransactionID,
			PaymentDate:          now,
			Notes:                "Online payment via " + provider.Method(),
		}
		if err := s.ledger.apply(txCtx, inv, payment, now); err != nil {
			return err
		}
		if err := s.pendings.MarkCompleted(txCtx, orderID, now); err != nil {
			return fmt.Errorf("failed to complete pending payment: %w", err)
		}
		if err := s.audit.write(txCtx, nil, model.ActionSettleOnline, inv.ID.String(), inv.InvoiceNo, map[string]interface{}{
			"order_id":               orderID,
			"provider":               provider.Method(),
			"gateway_transaction_id": data.GatewayTransactionID,
			"payment_id":             payment.ID.String(),
			"amount":                 payment.Amount.String(),
			"status":                 inv.Status,
		}); err != nil {
			return err
		}

		contract, err := s.contracts.FindByID(txCtx, inv.ContractID)
		if err != nil {
			return fmt.Errorf("failed to load contract: %w", err)
		}
		if contract.Room != nil && contract.Room.Motel != nil {
			out = paymentReceivedOutbound(contract.Room.Motel.OwnerID, inv, payment, now)
			return s.notifications.Notify(txCtx, out)
		}
		return nil
	})

	switch {
	case err == nil:
		if out != nil {
			s.notifications.Publish(ctx, *out)
		}
		return gateway.OutcomeSuccess, nil
	case errors.Is(err, errAlreadySettled), repository.IsUniqueViolation(err):
		return gateway.OutcomeAlreadyProcessed, nil
	case apperror.Is(err, apperror.CodeAlreadyPaid), apperror.Is(err, apperror.CodeInvalidAmount):
		// the invoice was settled another way while the order was open
		if markErr := s.pendings.MarkFailed(ctx, pending.OrderID, err.Error()); markErr != nil {
			return gateway.OutcomeError, fmt.Errorf("failed to mark pending payment failed: %w", markErr)
		}
		return gateway.OutcomeInvalidAmount, err
	default:
		return gateway.OutcomeError, err
	}
}

func orderIDOf(data *gateway.CallbackData) string {
	if data == nil {
		return ""
	}
	return data.OrderID
}

func eventStatus(o gateway.Outcome) string {
	switch o {
	case gateway.OutcomeSuccess, gateway.OutcomeAlreadyProcessed, gateway.OutcomeGatewayFailed:
		return model.EventProcessed
	case gateway.OutcomeError:
		return model.EventFailed
	default:
		return model.EventRejected
	}
}

// logEvent keeps the callback for audit. Failures here never change the ack.
func (s *onlinePaymentService) logEvent(ctx context.Context, provider gateway.Provider, raw gateway.RawCallback, data *gateway.CallbackData, o gateway.Outcome, procErr error) {
	var payload []byte
	if data != nil && json.Valid(data.Payload) {
		payload = data.Payload
	} else if encoded, err := json.Marshal(gateway.Fields(raw)); err == nil {
		payload = encoded
	}

	now := s.now()
	event := &model.PaymentGatewayEvent{
		Provider:    provider.Method(),
		OrderID:     orderIDOf(data),
		Payload:     datatypes.JSON(payload),
		Status:      eventStatus(o),
		Outcome:     o.String(),
		ProcessedAt: &now,
	}
	if data != nil {
		event.Signature = data.Signature
	}
	if procErr != nil {
		event.Error = procErr.Error()
	}
	if err := s.events.Log(ctx, event); err != nil {
		s.log.Warn("failed to log gateway event",
			zap.String("provider", provider.Method()),
			zap.String("order_id", event.OrderID),
			zap.Error(err),
		)
	}
}

func (s *onlinePaymentService) HandleReturn(ctx context.Context, tag string, query url.Values) (string, error) {
	provider, ok := s.registry.Get(tag)
	if !ok {
		return "", apperror.Validation("provider", "unrecognized payment provider").WithDetail("provider", tag)
	}
	res := provider.ParseReturn(query)
	status := "failed"
	if res.Success {
		status = "success"
	}
	q := url.Values{}
	q.Set("orderId", res.OrderID)
	q.Set("status", status)
	q.Set("amount", res.Amount.StringFixed(0))
	return s.cfg.FrontendURL + "/payment/result?" + q.Encode(), nil
}

func (s *onlinePaymentService) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.pendings.ExpireBefore(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire pending payments: %w", err)
	}
	if n > 0 {
		s.log.Info("pending payments expired", zap.Int64("count", n))
	}
	return n, nil
}
