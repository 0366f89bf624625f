package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"motelhub/internal/events"
	"motelhub/internal/gateway"
	"motelhub/internal/model"
	"motelhub/internal/repository"
	"motelhub/internal/testutil"
	"motelhub/pkg/apperror"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	testZaloKey1    = "zalo-key1"
	testZaloKey2    = "zalo-key2"
	testMomoAccess  = "momo-access"
	testMomoSecret  = "momo-secret"
	testMomoPartner = "MOMOTEST"
	testFrontendURL = "https://app.example.com"
	testOrderTTL    = 15 * time.Minute
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent map[string][][]byte
}

func (f *fakeNotifier) SendToUser(userID string, payload []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sent == nil {
		f.sent = make(map[string][][]byte)
	}
	f.sent[userID] = append(f.sent[userID], payload)
}

func (f *fakeNotifier) count(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent[userID])
}

type fakePublisher struct {
	mu     sync.Mutex
	keys   []string
	events []events.BillingEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, key string, value interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	if e, ok := value.(events.BillingEvent); ok {
		f.events = append(f.events, e)
	}
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

// stack wires every billing service over one sqlite database.
type stack struct {
	db            *gorm.DB
	f             testutil.Fixture
	notifier      *fakeNotifier
	publisher     *fakePublisher
	notifications NotificationService
	invoices      InvoiceService
	payments      PaymentService
	online        OnlinePaymentService
	contracts     ContractService
}

func newStack(t *testing.T, rent string) *stack {
	t.Helper()
	db := testutil.NewDB(t)
	log := zap.NewNop()

	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	contractRepo := repository.NewContractRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	s := &stack{
		db:        db,
		f:         testutil.SeedMotel(t, db, rent),
		notifier:  &fakeNotifier{},
		publisher: &fakePublisher{},
	}
	s.notifications = NewNotificationService(repository.NewNotificationRepository(db), s.notifier, s.publisher, log)
	s.invoices = NewInvoiceService(invoiceRepo, contractRepo, repository.NewMotelRepository(db), auditRepo, txManager, s.notifications, log)
	s.payments = NewPaymentService(invoiceRepo, paymentRepo, contractRepo, auditRepo, txManager, s.notifications, log)
	s.contracts = NewContractService(contractRepo, auditRepo, txManager)

	registry := gateway.NewRegistry(
		gateway.NewMomo(gateway.MomoConfig{
			PartnerCode: testMomoPartner,
			AccessKey:   testMomoAccess,
			SecretKey:   testMomoSecret,
			Endpoint:    "https://test-payment.momo.vn/v2/gateway/pay",
			IPNURL:      "https://api.example.com/api/payments/callback/momo",
			RedirectURL: "https://api.example.com/api/payments/return/momo",
		}),
		gateway.NewVNPay(gateway.VNPayConfig{
			TmnCode:    "TMN01",
			HashSecret: "vnp-secret",
			PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
			ReturnURL:  "https://api.example.com/api/payments/return/vnpay",
		}),
		gateway.NewZaloPay(gateway.ZaloPayConfig{
			AppID:       "2553",
			Key1:        testZaloKey1,
			Key2:        testZaloKey2,
			Endpoint:    "https://sb-openapi.zalopay.vn/v2/pay",
			CallbackURL: "https://api.example.com/api/payments/callback/zalopay",
			RedirectURL: "https://api.example.com/api/payments/return/zalopay",
		}),
	)
	s.online = NewOnlinePaymentService(
		registry,
		invoiceRepo,
		paymentRepo,
		repository.NewPendingPaymentRepository(db),
		repository.NewGatewayEventRepository(db),
		contractRepo,
		auditRepo,
		txManager,
		s.notifications,
		OnlinePaymentConfig{OrderTTL: testOrderTTL, FrontendURL: testFrontendURL + "/"},
		log,
	)
	return s
}

func (s *stack) landlord() Actor {
	return Actor{UserID: s.f.Landlord.ID, Role: model.RoleLandlord}
}

func (s *stack) tenant() Actor {
	return Actor{UserID: s.f.Tenant.ID, Role: model.RoleTenant}
}

func (s *stack) reloadInvoice(t *testing.T, id interface{}) model.Invoice {
	t.Helper()
	var inv model.Invoice
	require.NoError(t, s.db.First(&inv, "id = ?", id).Error)
	return inv
}

func (s *stack) countPayments(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(&model.Payment{}).Count(&n).Error)
	return n
}

func requireAppError(t *testing.T, err error, code apperror.Code) *apperror.Error {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected *apperror.Error, got %v", err)
	require.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}

func hmacHex(key, data string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// zaloCallback builds a signed ZaloPay order callback.
func zaloCallback(t *testing.T, orderID string, amount int64, key2 string) gateway.RawCallback {
	t.Helper()
	data, err := json.Marshal(map[string]interface{}{
		"app_id":       2553,
		"app_trans_id": orderID,
		"app_time":     time.Now().UnixMilli(),
		"app_user":     "tenant",
		"amount":       amount,
		"embed_data":   "{}",
		"item":         "[]",
		"zp_trans_id":  240301000000123,
		"server_time":  time.Now().UnixMilli(),
		"channel":      38,
	})
	require.NoError(t, err)
	body, err := json.Marshal(map[string]interface{}{
		"data": string(data),
		"mac":  hmacHex(key2, string(data)),
		"type": 1,
	})
	require.NoError(t, err)
	return gateway.RawCallback{Body: body}
}

// momoCallback builds a signed MoMo IPN with the given result code.
func momoCallback(t *testing.T, orderID string, amount int64, resultCode int) gateway.RawCallback {
	t.Helper()
	n := map[string]interface{}{
		"partnerCode":  testMomoPartner,
		"orderId":      orderID,
		"requestId":    orderID,
		"amount":       amount,
		"orderInfo":    "invoice",
		"orderType":    "momo_wallet",
		"transId":      int64(4088878653),
		"resultCode":   resultCode,
		"message":      "Transaction denied by user.",
		"payType":      "qr",
		"responseTime": int64(1709251200000),
		"extraData":    "",
	}
	raw := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%d&resultCode=%d&transId=%d",
		testMomoAccess, amount, "", n["message"], orderID, n["orderInfo"], n["orderType"],
		testMomoPartner, n["payType"], orderID, n["responseTime"], resultCode, n["transId"],
	)
	n["signature"] = hmacHex(testMomoSecret, raw)
	body, err := json.Marshal(n)
	require.NoError(t, err)
	return gateway.RawCallback{Body: body}
}
