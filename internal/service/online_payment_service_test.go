package service

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"motelhub/internal/gateway"
	"motelhub/internal/model"
	"motelhub/internal/testutil"
	"motelhub/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *stack) createOrder(t *testing.T, invoiceID interface{}, method string) *gateway.PaymentRequest {
	t.Helper()
	inv := s.reloadInvoice(t, invoiceID)
	order, err := s.online.CreateOnlinePayment(context.Background(), s.tenant(), CreateOnlinePaymentRequest{
		InvoiceID:     inv.ID,
		PaymentMethod: method,
	}, "10.0.0.1")
	require.NoError(t, err)
	return order
}

func (s *stack) pending(t *testing.T, orderID string) model.PendingOnlinePayment {
	t.Helper()
	var p model.PendingOnlinePayment
	require.NoError(t, s.db.First(&p, "order_id = ?", orderID).Error)
	return p
}

func (s *stack) gatewayEvents(t *testing.T, orderID string) []model.PaymentGatewayEvent {
	t.Helper()
	var out []model.PaymentGatewayEvent
	require.NoError(t, s.db.Where("order_id = ?", orderID).Order("created_at asc").Find(&out).Error)
	return out
}

func ackCode(t *testing.T, body interface{}, key string) interface{} {
	t.Helper()
	m, ok := body.(map[string]interface{})
	require.True(t, ok, "ack body is %T", body)
	return m[key]
}

func TestCreateOnlinePaymentPersistsPendingOrder(t *testing.T) {
	s := newStack(t, "2000000")
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "2000000")
	require.NoError(t, s.db.Model(&inv).Update("paid_amount", "500000").Error)

	now := time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC)
	s.online.(*onlinePaymentService).now = func() time.Time { return now }

	order, err := s.online.CreateOnlinePayment(context.Background(), s.tenant(), CreateOnlinePaymentRequest{
		InvoiceID:     inv.ID,
		PaymentMethod: "zalopay",
	}, "10.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, model.MethodZaloPay, order.Provider)
	assert.True(t, testutil.Dec("1500000").Equal(order.Amount), order.Amount.String())
	assert.True(t, strings.HasPrefix(order.OrderID, "240310_"), order.OrderID)
	assert.True(t, strings.HasPrefix(order.PaymentURL, "https://sb-openapi.zalopay.vn/v2/pay?"))

	p := s.pending(t, order.OrderID)
	assert.Equal(t, inv.ID, p.InvoiceID)
	assert.Equal(t, model.PendingWaiting, p.Status)
	assert.Equal(t, model.MethodZaloPay, p.Provider)
	assert.True(t, testutil.Dec("1500000").Equal(p.Amount))
	assert.WithinDuration(t, now.Add(testOrderTTL), p.ExpiresAt, time.Second)
	require.NotNil(t, p.RequestedBy)
	assert.Equal(t, s.f.Tenant.ID, *p.RequestedBy)
}

func TestCreateOnlinePaymentErrors(t *testing.T) {
	s := newStack(t, "1000000")
	ctx := context.Background()
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "1000000")

	_, err := s.online.CreateOnlinePayment(ctx, s.tenant(), CreateOnlinePaymentRequest{InvoiceID: inv.ID, PaymentMethod: "PAYPAL"}, "")
	requireAppError(t, err, apperror.CodeInvalidMethod)

	_, err = s.online.CreateOnlinePayment(ctx, s.tenant(), CreateOnlinePaymentRequest{InvoiceID: inv.ID, PaymentMethod: model.MethodCash}, "")
	requireAppError(t, err, apperror.CodeInvalidMethod)

	stranger := testutil.SeedUser(t, s.db, "stranger_tenant", model.RoleTenant)
	_, err = s.online.CreateOnlinePayment(ctx, Actor{UserID: stranger.ID, Role: model.RoleTenant}, CreateOnlinePaymentRequest{InvoiceID: inv.ID, PaymentMethod: model.MethodMomo}, "")
	requireAppError(t, err, apperror.CodeForbidden)

	require.NoError(t, s.db.Model(&inv).Updates(map[string]interface{}{"paid_amount": "1000000", "status": model.InvoicePaid}).Error)
	_, err = s.online.CreateOnlinePayment(ctx, s.tenant(), CreateOnlinePaymentRequest{InvoiceID: inv.ID, PaymentMethod: model.MethodVNPay}, "")
	requireAppError(t, err, apperror.CodeAlreadyPaid)

	var n int64
	require.NoError(t, s.db.Model(&model.PendingOnlinePayment{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCallbackSettlesInvoice(t *testing.T) {
	s := newStack(t, "2000000")
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "2000000")
	order := s.createOrder(t, inv.ID, model.MethodZaloPay)

	status, body, err := s.online.HandleCallback(context.Background(), "zalopay", zaloCallback(t, order.OrderID, 2000000, testZaloKey2))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, ackCode(t, body, "return_code"))

	stored := s.reloadInvoice(t, inv.ID)
	assert.Equal(t, model.InvoicePaid, stored.Status)
	assert.NotNil(t, stored.PaidDate)

	var payment model.Payment
	require.NoError(t, s.db.First(&payment, "invoice_id = ?", inv.ID).Error)
	require.NotNil(t, payment.TransactionID)
	assert.Equal(t, order.OrderID, *payment.TransactionID)
	assert.Equal(t, model.MethodZaloPay, payment.Method)
	assert.Equal(t, "240301000000123", payment.GatewayTransactionID)
	assert.Nil(t, payment.CreatedByID)

	p := s.pending(t, order.OrderID)
	assert.Equal(t, model.PendingCompleted, p.Status)
	assert.NotNil(t, p.CompletedAt)

	evts := s.gatewayEvents(t, order.OrderID)
	require.Len(t, evts, 1)
	assert.Equal(t, model.EventProcessed, evts[0].Status)
	assert.Equal(t, "success", evts[0].Outcome)

	assert.Equal(t, []string{"payment.received"}, s.publisher.types())
	assert.Equal(t, 1, s.notifier.count(s.f.Landlord.ID.String()))
}

func TestReplayedCallbackIsAlreadyProcessed(t *testing.T) {
	s := newStack(t, "2000000")
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "2000000")
	order := s.createOrder(t, inv.ID, model.MethodZaloPay)
	cb := zaloCallback(t, order.OrderID, 2000000, testZaloKey2)

	_, _, err := s.online.HandleCallback(context.Background(), "zalopay", cb)
	require.NoError(t, err)
	status, body, err := s.online.HandleCallback(context.Background(), "zalopay", cb)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, ackCode(t, body, "return_code"))

	assert.Equal(t, int64(1), s.countPayments(t))
	assert.True(t, testutil.Dec("2000000").Equal(s.reloadInvoice(t, inv.ID).PaidAmount))
	assert.Len(t, s.gatewayEvents(t, order.OrderID), 2)
}

func TestDuplicatePaymentReferenceIsAlreadyProcessed(t *testing.T) {
	s := newStack(t, "2000000")
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "2000000")
	order := s.createOrder(t, inv.ID, model.MethodZaloPay)

	// a payment already carries the reference while the order still looks pending
	ref := order.OrderID
	require.NoError(t, s.db.Create(&model.Payment{
		InvoiceID: inv.ID, Amount: testutil.Dec("1"), Method: model.MethodZaloPay, TransactionID: &ref, PaymentDate: time.Now(),
	}).Error)

	_, body, err := s.online.HandleCallback(context.Background(), "zalopay", zaloCallback(t, order.OrderID, 2000000, testZaloKey2))
	require.NoError(t, err)
	assert.Equal(t, 2, ackCode(t, body, "return_code"))
	assert.Equal(t, int64(1), s.countPayments(t))
}

func TestCallbackWithBadSignatureIsRejected(t *testing.T) {
	s := newStack(t, "2000000")
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "2000000")
	order := s.createOrder(t, inv.ID, model.MethodZaloPay)

	_, body, err := s.online.HandleCallback(context.Background(), "zalopay", zaloCallback(t, order.OrderID, 2000000, "wrong-key"))
	require.NoError(t, err)
	assert.Equal(t, -1, ackCode(t, body, "return_code"))

	assert.Zero(t, s.countPayments(t))
	assert.Equal(t, model.PendingWaiting, s.pending(t, order.OrderID).Status)
	evts := s.gatewayEvents(t, order.OrderID)
	require.Len(t, evts, 1)
	assert.Equal(t, model.EventRejected, evts[0].Status)
	assert.Equal(t, "invalid_signature", evts[0].Outcome)
}

func TestMalformedCallbackIsRejected(t *testing.T) {
	s := newStack(t, "2000000")

	status, body, err := s.online.HandleCallback(context.Background(), "momo", gateway.RawCallback{Body: []byte("not json")})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 97, ackCode(t, body, "resultCode"))
}

func TestCallbackAmountMismatch(t *testing.T) {
	s := newStack(t, "2000000")
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "2000000")
	order := s.createOrder(t, inv.ID, model.MethodZaloPay)

	_, body, err := s.online.HandleCallback(context.Background(), "zalopay", zaloCallback(t, order.OrderID, 1000, testZaloKey2))
	require.NoError(t, err)
	assert.Equal(t, -1, ackCode(t, body, "return_code"))

	assert.Zero(t, s.countPayments(t))
	p := s.pending(t, order.OrderID)
	assert.Equal(t, model.PendingFailed, p.Status)
	assert.Equal(t, "amount mismatch", p.FailureReason)
}

func TestCallbackForUnknownOrder(t *testing.T) {
	s := newStack(t, "2000000")

	_, body, err := s.online.HandleCallback(context.Background(), "zalopay", zaloCallback(t, "240301_unknown", 1000, testZaloKey2))
	require.NoError(t, err)
	assert.Equal(t, -1, ackCode(t, body, "return_code"))
	assert.Equal(t, "order not found", ackCode(t, body, "return_message"))
}

func TestGatewayFailureMarksOrderFailed(t *testing.T) {
	s := newStack(t, "2000000")
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "2000000")
	order := s.createOrder(t, inv.ID, model.MethodMomo)

	status, body, err := s.online.HandleCallback(context.Background(), "momo", momoCallback(t, order.OrderID, 2000000, 1006))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, ackCode(t, body, "resultCode"))
	assert.Equal(t, order.OrderID, ackCode(t, body, "orderId"))

	assert.Zero(t, s.countPayments(t))
	assert.Equal(t, model.InvoiceUnpaid, s.reloadInvoice(t, inv.ID).Status)
	p := s.pending(t, order.OrderID)
	assert.Equal(t, model.PendingFailed, p.Status)
	assert.Equal(t, "Transaction denied by user.", p.FailureReason)
}

func TestCallbackFromWrongProviderIsNotFound(t *testing.T) {
	s := newStack(t, "2000000")
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "2000000")
	order := s.createOrder(t, inv.ID, model.MethodZaloPay)

	_, body, err := s.online.HandleCallback(context.Background(), "momo", momoCallback(t, order.OrderID, 2000000, 0))
	require.NoError(t, err)
	assert.Equal(t, 42, ackCode(t, body, "resultCode"))
	assert.Zero(t, s.countPayments(t))
}

func TestCallbackAfterManualSettlementIsRejected(t *testing.T) {
	s := newStack(t, "2000000")
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "2000000")
	order := s.createOrder(t, inv.ID, model.MethodZaloPay)

	_, err := s.payments.RecordPayment(context.Background(), s.landlord(), RecordPaymentRequest{
		InvoiceID: inv.ID, Amount: testutil.Dec("500000"), PaymentMethod: model.MethodCash,
	})
	require.NoError(t, err)

	_, body, err := s.online.HandleCallback(context.Background(), "zalopay", zaloCallback(t, order.OrderID, 2000000, testZaloKey2))
	require.NoError(t, err)
	assert.Equal(t, -1, ackCode(t, body, "return_code"))

	stored := s.reloadInvoice(t, inv.ID)
	assert.True(t, testutil.Dec("500000").Equal(stored.PaidAmount))
	assert.Equal(t, int64(1), s.countPayments(t))
	assert.Equal(t, model.PendingFailed, s.pending(t, order.OrderID).Status)
}

func TestUntaggedCallbackIsDetected(t *testing.T) {
	s := newStack(t, "2000000")
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "2000000")
	order := s.createOrder(t, inv.ID, model.MethodZaloPay)

	_, body, err := s.online.HandleCallback(context.Background(), "", zaloCallback(t, order.OrderID, 2000000, testZaloKey2))
	require.NoError(t, err)
	assert.Equal(t, 1, ackCode(t, body, "return_code"))
	assert.Equal(t, model.InvoicePaid, s.reloadInvoice(t, inv.ID).Status)
}

func TestUnrecognizedProvider(t *testing.T) {
	s := newStack(t, "2000000")
	ctx := context.Background()

	_, _, err := s.online.HandleCallback(ctx, "paypal", gateway.RawCallback{Body: []byte(`{}`)})
	requireAppError(t, err, apperror.CodeValidation)

	_, _, err = s.online.HandleCallback(ctx, "", gateway.RawCallback{Body: []byte(`{"foo":"bar"}`)})
	requireAppError(t, err, apperror.CodeValidation)

	_, err = s.online.HandleReturn(ctx, "paypal", url.Values{})
	requireAppError(t, err, apperror.CodeValidation)
}

func TestHandleReturnRedirectsToResultPage(t *testing.T) {
	s := newStack(t, "2000000")
	q := url.Values{}
	for k, v := range map[string]string{
		"appid": "2553", "apptransid": "240301_1", "pmcid": "38", "bankcode": "",
		"amount": "2000000", "discountamount": "0", "status": "1",
	} {
		q.Set(k, v)
	}
	q.Set("checksum", hmacHex(testZaloKey2, strings.Join([]string{"2553", "240301_1", "38", "", "2000000", "0", "1"}, "|")))

	target, err := s.online.HandleReturn(context.Background(), "zalopay", q)
	require.NoError(t, err)

	u, err := url.Parse(target)
	require.NoError(t, err)
	assert.Equal(t, "app.example.com", u.Host)
	assert.Equal(t, "/payment/result", u.Path)
	assert.Equal(t, "240301_1", u.Query().Get("orderId"))
	assert.Equal(t, "success", u.Query().Get("status"))
	assert.Equal(t, "2000000", u.Query().Get("amount"))

	q.Set("checksum", "bogus")
	target, err = s.online.HandleReturn(context.Background(), "zalopay", q)
	require.NoError(t, err)
	assert.Contains(t, target, "status=failed")
}

func TestExpireStale(t *testing.T) {
	s := newStack(t, "2000000")
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "2000000")
	order := s.createOrder(t, inv.ID, model.MethodVNPay)

	n, err := s.online.ExpireStale(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.online.ExpireStale(context.Background(), time.Now().Add(testOrderTTL+time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, model.PendingExpired, s.pending(t, order.OrderID).Status)
}
