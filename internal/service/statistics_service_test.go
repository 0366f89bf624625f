package service

import (
	"context"
	"testing"
	"time"

	"motelhub/internal/model"
	"motelhub/internal/repository"
	"motelhub/internal/testutil"
	"motelhub/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingSummary(t *testing.T) {
	s := newStack(t, "1000000")
	month := testutil.Month(2024, time.March)
	paid := testutil.AddInvoice(t, s.db, s.f.Contract.ID, month, "1000000")

	second := testutil.AddContract(t, s.db, s.f.Room.ID, nil, "2000000")
	partial := testutil.AddInvoice(t, s.db, second.ID, month, "2000000")
	// other months stay out of the summary
	testutil.AddInvoice(t, s.db, s.f.Contract.ID, testutil.Month(2024, time.February), "1000000")

	ctx := context.Background()
	_, err := s.payments.RecordPayment(ctx, s.landlord(), RecordPaymentRequest{InvoiceID: paid.ID, Amount: testutil.Dec("1000000"), PaymentMethod: model.MethodCash})
	require.NoError(t, err)
	_, err = s.payments.RecordPayment(ctx, s.landlord(), RecordPaymentRequest{InvoiceID: partial.ID, Amount: testutil.Dec("500000"), PaymentMethod: model.MethodTransfer})
	require.NoError(t, err)

	stats := NewStatisticsService(repository.NewStatisticsRepository(s.db), repository.NewMotelRepository(s.db))
	sum, err := stats.GetBillingSummary(ctx, s.landlord(), s.f.Motel.ID, "2024-03")
	require.NoError(t, err)

	assert.Equal(t, "2024-03", sum.BillingMonth)
	assert.Equal(t, int64(2), sum.InvoiceCount)
	assert.True(t, sum.TotalBilled.Equal(testutil.Dec("3000000")), sum.TotalBilled.String())
	assert.True(t, sum.TotalCollected.Equal(testutil.Dec("1500000")), sum.TotalCollected.String())
	assert.True(t, sum.Outstanding.Equal(testutil.Dec("1500000")), sum.Outstanding.String())
	require.Len(t, sum.ByStatus, 2)
	assert.Equal(t, model.InvoicePaid, sum.ByStatus[0].Status)
	assert.Equal(t, model.InvoicePartial, sum.ByStatus[1].Status)
	require.Len(t, sum.ByMethod, 2)
	assert.Equal(t, model.MethodTransfer, sum.ByMethod[0].PaymentMethod)
	assert.Equal(t, model.MethodCash, sum.ByMethod[1].PaymentMethod)
}

func TestBillingSummaryAccess(t *testing.T) {
	s := newStack(t, "1000000")
	stats := NewStatisticsService(repository.NewStatisticsRepository(s.db), repository.NewMotelRepository(s.db))
	ctx := context.Background()

	_, err := stats.GetBillingSummary(ctx, Actor{UserID: uuid.New(), Role: model.RoleLandlord}, s.f.Motel.ID, "2024-03")
	requireAppError(t, err, apperror.CodeForbidden)

	_, err = stats.GetBillingSummary(ctx, s.landlord(), uuid.New(), "2024-03")
	requireAppError(t, err, apperror.CodeNotFound)

	_, err = stats.GetBillingSummary(ctx, s.landlord(), s.f.Motel.ID, "March")
	requireAppError(t, err, apperror.CodeValidation)

	empty, err := stats.GetBillingSummary(ctx, s.landlord(), s.f.Motel.ID, "2030-01")
	require.NoError(t, err)
	assert.Zero(t, empty.InvoiceCount)
	assert.True(t, empty.Outstanding.IsZero())
}
