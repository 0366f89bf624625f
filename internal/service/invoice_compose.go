package service

import (
	"fmt"
	"strings"
	"time"

	"motelhub/internal/model"
	"motelhub/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const billingMonthLayout = "2006-01"

var (
	electricityKeywords = []string{"electricity", "điện"}
	waterKeywords       = []string{"water", "nước"}
)

// parseBillingMonth turns "YYYY-MM" into the first day of that month in UTC.
func parseBillingMonth(s string) (time.Time, error) {
	t, err := time.Parse(billingMonthLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, apperror.Validation("billing_month", "billing_month must be in YYYY-MM format")
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

// computeDueDate places the due day in the month after the billing month,
// clamped to that month's last day.
func computeDueDate(month time.Time, dueDay int) time.Time {
	if dueDay <= 0 {
		dueDay = model.DefaultPaymentDueDay
	}
	next := time.Date(month.Year(), month.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	lastDay := next.AddDate(0, 1, -1).Day()
	if dueDay > lastDay {
		dueDay = lastDay
	}
	return time.Date(next.Year(), next.Month(), dueDay, 0, 0, 0, 0, time.UTC)
}

// validateReadings rejects negative indices and meters that run backwards.
func validateReadings(readings []model.MeterReading) error {
	check := func(i int, meter string, m *model.MeterIndex) error {
		if m == nil {
			return nil
		}
		field := fmt.Sprintf("meter_readings[%d].%s", i, meter)
		if m.OldIndex < 0 || m.NewIndex < 0 {
			return apperror.Validation(field, "meter indices must not be negative")
		}
		if m.NewIndex < m.OldIndex {
			return apperror.Validation(field, "new_index must be greater than or equal to old_index").
				WithDetail("old_index", m.OldIndex).
				WithDetail("new_index", m.NewIndex)
		}
		return nil
	}
	for i, r := range readings {
		if err := check(i, "electricity", r.Electricity); err != nil {
			return err
		}
		if err := check(i, "water", r.Water); err != nil {
			return err
		}
	}
	return nil
}

// billableService is a catalog entry with the room's effective price
type billableService struct {
	ID    uuid.UUID
	Name  string
	Type  string
	Price decimal.Decimal
}

// resolveServices uses the room's overrides when it has any, else the motel catalog.
func resolveServices(catalog []model.Service, overrides []model.RoomService) []billableService {
	if len(overrides) > 0 {
		out := make([]billableService, 0, len(overrides))
		for _, o := range overrides {
			price := o.Service.Price
			if o.CustomPrice != nil {
				price = *o.CustomPrice
			}
			out = append(out, billableService{ID: o.ServiceID, Name: o.Service.Name, Type: o.Service.Type, Price: price})
		}
		return out
	}
	out := make([]billableService, 0, len(catalog))
	for _, s := range catalog {
		out = append(out, billableService{ID: s.ID, Name: s.Name, Type: s.Type, Price: s.Price})
	}
	return out
}

// validatePrices rejects a negative rent or service price on the contract.
func validatePrices(contract *model.Contract, services []billableService) error {
	if contract.RentPrice.IsNegative() {
		return apperror.Validation("rent_price", "rent price must not be negative").
			WithDetail("contract_id", contract.ID.String())
	}
	for _, svc := range services {
		if svc.Price.IsNegative() {
			return apperror.Validation("price", "service price must not be negative").
				WithDetail("contract_id", contract.ID.String()).
				WithDetail("service", svc.Name)
		}
	}
	return nil
}

func matchesAny(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// meterFor picks the reading of a metered service by its name.
func meterFor(name string, reading *model.MeterReading) *model.MeterIndex {
	if reading == nil {
		return nil
	}
	switch {
	case matchesAny(name, electricityKeywords):
		return reading.Electricity
	case matchesAny(name, waterKeywords):
		return reading.Water
	}
	return nil
}

// composeItems builds the rent line followed by one line per service and returns the total.
func composeItems(contract *model.Contract, services []billableService, reading *model.MeterReading) ([]model.InvoiceItem, decimal.Decimal) {
	one := decimal.NewFromInt(1)
	items := make([]model.InvoiceItem, 0, len(services)+1)
	items = append(items, model.InvoiceItem{
		ServiceName: model.RentItemName,
		Quantity:    one,
		UnitPrice:   contract.RentPrice,
		TotalPrice:  contract.RentPrice,
	})

	for _, svc := range services {
		svc := svc
		item := model.InvoiceItem{
			ServiceID:   &svc.ID,
			ServiceName: svc.Name,
			Quantity:    one,
			UnitPrice:   svc.Price,
		}
		switch svc.Type {
		case model.ServiceTypeUsage:
			// without a reading a metered service is billed as one unit
			if m := meterFor(svc.Name, reading); m != nil {
				oldIdx, newIdx := m.OldIndex, m.NewIndex
				item.Quantity = decimal.NewFromInt(m.Usage())
				item.OldIndex = &oldIdx
				item.NewIndex = &newIdx
			}
		case model.ServiceTypePeople:
			// co-tenants only; the primary tenant is not counted
			if n := len(contract.Tenants); n > 0 {
				item.Quantity = decimal.NewFromInt(int64(n))
			}
		}
		item.TotalPrice = item.Quantity.Mul(item.UnitPrice)
		items = append(items, item)
	}

	total := decimal.Zero
	for i := range items {
		items[i].SortOrder = i
		total = total.Add(items[i].TotalPrice)
	}
	return items, total
}

// newInvoiceNumber renders INV-YYYYMMDDhhmmss-XXXXXX.
func newInvoiceNumber(now time.Time) string {
	return "INV-" + now.Format("20060102150405") + "-" + strings.ToUpper(uuid.NewString()[:6])
}
