package service

import (
	"testing"
	"time"

	"motelhub/internal/model"
	"motelhub/internal/testutil"
	"motelhub/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBillingMonth(t *testing.T) {
	m, err := parseBillingMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), m)

	for _, bad := range []string{"", "2024-3", "2024-13", "03-2024", "2024/03", "2024-03-01"} {
		_, err := parseBillingMonth(bad)
		assert.Error(t, err, bad)
	}
}

func TestComputeDueDate(t *testing.T) {
	cases := []struct {
		month  time.Month
		year   int
		dueDay int
		want   time.Time
	}{
		{time.March, 2024, 5, time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)},
		{time.March, 2024, 0, time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)},
		{time.March, 2024, 31, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)},
		{time.January, 2024, 30, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{time.January, 2023, 30, time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)},
		{time.December, 2024, 10, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got := computeDueDate(testutil.Month(tc.year, tc.month), tc.dueDay)
		assert.Equal(t, tc.want, got, "%d-%02d day %d", tc.year, tc.month, tc.dueDay)
	}
}

func TestValidateReadings(t *testing.T) {
	assert.NoError(t, validateReadings(nil))
	assert.NoError(t, validateReadings([]model.MeterReading{{Electricity: meter(5, 5)}}))

	err := validateReadings([]model.MeterReading{{Water: meter(-1, 3)}})
	appErr := requireAppError(t, err, apperror.CodeValidation)
	assert.Equal(t, "meter_readings[0].water", appErr.Details["field"])

	err = validateReadings([]model.MeterReading{{Electricity: meter(1, 2)}, {Water: meter(9, 4)}})
	appErr = requireAppError(t, err, apperror.CodeValidation)
	assert.Equal(t, "meter_readings[1].water", appErr.Details["field"])
	assert.Equal(t, int64(9), appErr.Details["old_index"])
}

func TestMeterFor(t *testing.T) {
	r := &model.MeterReading{Electricity: meter(1, 2), Water: meter(3, 4)}
	assert.Same(t, r.Electricity, meterFor("Electricity", r))
	assert.Same(t, r.Electricity, meterFor("Tiền ĐIỆN", r))
	assert.Same(t, r.Water, meterFor("nước sinh hoạt", r))
	assert.Same(t, r.Water, meterFor("Hot water", r))
	assert.Nil(t, meterFor("Parking", r))
	assert.Nil(t, meterFor("Electricity", nil))
}

func TestComposeItemsTotalsAndOrder(t *testing.T) {
	c := &model.Contract{RentPrice: testutil.Dec("2500000"), Tenants: make([]model.ContractTenant, 3)}
	services := []billableService{
		{ID: uuid.New(), Name: "Electricity", Type: model.ServiceTypeUsage, Price: testutil.Dec("3500")},
		{ID: uuid.New(), Name: "Trash", Type: model.ServiceTypePeople, Price: testutil.Dec("10000")},
		{ID: uuid.New(), Name: "Parking", Type: model.ServiceTypeFixed, Price: testutil.Dec("50000")},
	}
	items, total := composeItems(c, services, &model.MeterReading{Electricity: meter(100, 150)})

	require.Len(t, items, 4)
	for i, it := range items {
		assert.Equal(t, i, it.SortOrder)
		assert.True(t, it.Quantity.Mul(it.UnitPrice).Equal(it.TotalPrice), it.ServiceName)
	}
	assert.Nil(t, items[0].ServiceID)
	assert.True(t, testutil.Dec("3").Equal(items[2].Quantity))
	assert.True(t, testutil.Dec("2755000").Equal(total), total.String())
}

func TestResolveServices(t *testing.T) {
	elec := model.Service{ID: uuid.New(), Name: "Electricity", Type: model.ServiceTypeUsage, Price: testutil.Dec("3500")}
	wifi := model.Service{ID: uuid.New(), Name: "Wifi", Type: model.ServiceTypeFixed, Price: testutil.Dec("100000")}

	got := resolveServices([]model.Service{elec, wifi}, nil)
	require.Len(t, got, 2)
	assert.True(t, elec.Price.Equal(got[0].Price))

	custom := testutil.Dec("4000")
	got = resolveServices([]model.Service{elec, wifi}, []model.RoomService{
		{ServiceID: elec.ID, Service: elec, CustomPrice: &custom},
		{ServiceID: wifi.ID, Service: wifi},
	})
	require.Len(t, got, 2)
	assert.True(t, custom.Equal(got[0].Price))
	assert.True(t, wifi.Price.Equal(got[1].Price))
}

func TestNewInvoiceNumber(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 30, 15, 0, time.UTC)
	a, b := newInvoiceNumber(now), newInvoiceNumber(now)
	assert.Regexp(t, `^INV-20240301083015-[0-9A-F]{6}$`, a)
	assert.NotEqual(t, a, b)
}

func TestNewOrderReference(t *testing.T) {
	// 20:00 UTC is already the next day in Vietnam
	now := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	ref := newOrderReference(now)
	assert.Regexp(t, `^240302_\d{17}$`, ref)
}
