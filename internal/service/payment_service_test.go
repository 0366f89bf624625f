package service

import (
	"context"
	"testing"
	"time"

	"motelhub/internal/model"
	"motelhub/internal/testutil"
	"motelhub/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPaymentPartialThenPaid(t *testing.T) {
	s := newStack(t, "5000000")
	ctx := context.Background()
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "5000000")

	res, err := s.payments.RecordPayment(ctx, s.landlord(), RecordPaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        testutil.Dec("2000000"),
		PaymentMethod: model.MethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, model.InvoicePartial, res.Invoice.Status)
	assert.True(t, testutil.Dec("2000000").Equal(res.Invoice.PaidAmount))
	assert.Nil(t, res.Invoice.PaidDate)
	require.NotNil(t, res.Payment.CreatedByID)
	assert.Equal(t, s.f.Landlord.ID, *res.Payment.CreatedByID)
	assert.Nil(t, res.Payment.TransactionID)

	stored := s.reloadInvoice(t, inv.ID)
	assert.Equal(t, model.InvoicePartial, stored.Status)
	assert.True(t, testutil.Dec("2000000").Equal(stored.PaidAmount))

	res, err = s.payments.RecordPayment(ctx, s.landlord(), RecordPaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        testutil.Dec("3000000"),
		PaymentMethod: model.MethodTransfer,
		Notes:         "Vietcombank",
	})
	require.NoError(t, err)
	assert.Equal(t, model.InvoicePaid, res.Invoice.Status)
	assert.NotNil(t, res.Invoice.PaidDate)

	stored = s.reloadInvoice(t, inv.ID)
	assert.Equal(t, model.InvoicePaid, stored.Status)
	assert.True(t, stored.PaidAmount.Equal(stored.TotalAmount))
	assert.NotNil(t, stored.PaidDate)
	assert.Equal(t, int64(2), s.countPayments(t))

	payments, err := s.payments.ListPayments(ctx, s.tenant(), inv.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestRecordPaymentRejectsOverBalance(t *testing.T) {
	s := newStack(t, "5000000")
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "5000000")

	_, err := s.payments.RecordPayment(context.Background(), s.landlord(), RecordPaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        testutil.Dec("5000001"),
		PaymentMethod: model.MethodCash,
	})
	appErr := requireAppError(t, err, apperror.CodeInvalidAmount)
	assert.Equal(t, "5000000", appErr.Details["remaining"])
	assert.Contains(t, appErr.Message, "5000000")

	stored := s.reloadInvoice(t, inv.ID)
	assert.True(t, stored.PaidAmount.IsZero())
	assert.Equal(t, model.InvoiceUnpaid, stored.Status)
	assert.Zero(t, s.countPayments(t))
	assert.Empty(t, s.publisher.types())
}

func TestRecordPaymentOnPaidInvoice(t *testing.T) {
	s := newStack(t, "1000000")
	ctx := context.Background()
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "1000000")

	_, err := s.payments.RecordPayment(ctx, s.landlord(), RecordPaymentRequest{
		InvoiceID: inv.ID, Amount: testutil.Dec("1000000"), PaymentMethod: model.MethodCash,
	})
	require.NoError(t, err)

	_, err = s.payments.RecordPayment(ctx, s.landlord(), RecordPaymentRequest{
		InvoiceID: inv.ID, Amount: testutil.Dec("1"), PaymentMethod: model.MethodCash,
	})
	appErr := requireAppError(t, err, apperror.CodeInvalidAmount)
	assert.Equal(t, "0", appErr.Details["remaining"])
	assert.Equal(t, int64(1), s.countPayments(t))
}

func TestRecordPaymentValidation(t *testing.T) {
	s := newStack(t, "1000000")
	ctx := context.Background()
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "1000000")

	for _, amount := range []string{"0", "-500", "999.999"} {
		_, err := s.payments.RecordPayment(ctx, s.landlord(), RecordPaymentRequest{
			InvoiceID: inv.ID, Amount: testutil.Dec(amount), PaymentMethod: model.MethodCash,
		})
		appErr := requireAppError(t, err, apperror.CodeValidation)
		assert.Equal(t, "amount", appErr.Details["field"])
	}

	assert.Zero(t, s.countPayments(t))

	_, err := s.payments.RecordPayment(ctx, s.landlord(), RecordPaymentRequest{
		InvoiceID: inv.ID, Amount: testutil.Dec("999.990"), PaymentMethod: model.MethodCash,
	})
	require.NoError(t, err)

	_, err = s.payments.RecordPayment(ctx, s.landlord(), RecordPaymentRequest{
		InvoiceID: inv.ID, Amount: testutil.Dec("10"), PaymentMethod: "BITCOIN",
	})
	appErr := requireAppError(t, err, apperror.CodeValidation)
	assert.Equal(t, "payment_method", appErr.Details["field"])

	_, err = s.payments.RecordPayment(ctx, s.landlord(), RecordPaymentRequest{
		InvoiceID: uuid.New(), Amount: testutil.Dec("10"), PaymentMethod: model.MethodCash,
	})
	requireAppError(t, err, apperror.CodeNotFound)
}

func TestRecordPaymentAuthorization(t *testing.T) {
	s := newStack(t, "1000000")
	ctx := context.Background()
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "1000000")
	req := RecordPaymentRequest{InvoiceID: inv.ID, Amount: testutil.Dec("100"), PaymentMethod: model.MethodCash}

	_, err := s.payments.RecordPayment(ctx, s.tenant(), req)
	requireAppError(t, err, apperror.CodeForbidden)

	other := testutil.SeedUser(t, s.db, "stranger", model.RoleLandlord)
	_, err = s.payments.RecordPayment(ctx, Actor{UserID: other.ID, Role: model.RoleLandlord}, req)
	requireAppError(t, err, apperror.CodeForbidden)
	assert.Zero(t, s.countPayments(t))
}

func TestRecordPaymentNotifiesOwner(t *testing.T) {
	s := newStack(t, "1000000")
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "1000000")

	res, err := s.payments.RecordPayment(context.Background(), Actor{UserID: uuid.New(), Role: model.RoleStaff}, RecordPaymentRequest{
		InvoiceID: inv.ID, Amount: testutil.Dec("400000"), PaymentMethod: model.MethodOther,
	})
	require.NoError(t, err)

	var notes []model.Notification
	require.NoError(t, s.db.Where("user_id = ?", s.f.Landlord.ID).Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, model.NotifyPaymentReceived, notes[0].Type)
	assert.Equal(t, 1, s.notifier.count(s.f.Landlord.ID.String()))

	require.Len(t, s.publisher.events, 1)
	evt := s.publisher.events[0]
	assert.Equal(t, "payment.received", evt.Type)
	assert.Equal(t, res.Payment.ID.String(), evt.PaymentID)
	assert.Equal(t, s.f.Landlord.ID.String(), evt.RecipientID)
	assert.Equal(t, model.InvoicePartial, evt.Status)

	var audits []model.AuditLog
	require.NoError(t, s.db.Where("entity_id = ?", inv.ID.String()).Find(&audits).Error)
	require.Len(t, audits, 1)
	assert.Equal(t, model.ActionRecordPayment, audits[0].Action)
}

func TestPaymentOnOverdueInvoiceMovesToPartial(t *testing.T) {
	s := newStack(t, "1000000")
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.January), "1000000")
	require.NoError(t, s.db.Model(&inv).Update("status", model.InvoiceOverdue).Error)

	res, err := s.payments.RecordPayment(context.Background(), s.landlord(), RecordPaymentRequest{
		InvoiceID: inv.ID, Amount: testutil.Dec("100000"), PaymentMethod: model.MethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, model.InvoicePartial, res.Invoice.Status)
}

func TestPublishFailureDoesNotFailPayment(t *testing.T) {
	s := newStack(t, "1000000")
	s.publisher.err = assert.AnError
	inv := testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.March), "1000000")

	_, err := s.payments.RecordPayment(context.Background(), s.landlord(), RecordPaymentRequest{
		InvoiceID: inv.ID, Amount: testutil.Dec("1000000"), PaymentMethod: model.MethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, model.InvoicePaid, s.reloadInvoice(t, inv.ID).Status)
}
