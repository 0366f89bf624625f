// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"motelhub/internal/database"
	"motelhub/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory sqlite database with all tables migrated.
// A single connection keeps the memory database alive for the whole test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=0", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

// Dec parses a decimal literal and panics on bad input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Fixture is a motel with one occupied room under an active contract.
type Fixture struct {
	Landlord model.User
	Tenant   model.User
	Motel    model.Motel
	Room     model.Room
	Contract model.Contract
}

// SeedUser inserts a user of the given role.
func SeedUser(t *testing.T, db *gorm.DB, username, role string) model.User {
	t.Helper()
	u := model.User{
		Username: username,
		FullName: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// SeedMotel creates a landlord, a tenant, a motel, one room and an active
// contract with the given rent. The catalog is left empty.
func SeedMotel(t *testing.T, db *gorm.DB, rent string) Fixture {
	t.Helper()
	suffix := uuid.NewString()[:8]

	f := Fixture{
		Landlord: SeedUser(t, db, "landlord_"+suffix, model.RoleLandlord),
		Tenant:   SeedUser(t, db, "tenant_"+suffix, model.RoleTenant),
	}

	f.Motel = model.Motel{OwnerID: f.Landlord.ID, Name: "Motel " + suffix, Address: "1 Test St"}
	require.NoError(t, db.Create(&f.Motel).Error)

	f.Room = model.Room{MotelID: f.Motel.ID, Name: "101", Status: model.RoomOccupied}
	require.NoError(t, db.Create(&f.Room).Error)

	f.Contract = AddContract(t, db, f.Room.ID, &f.Tenant.ID, rent)
	return f
}

// AddContract inserts an ACTIVE contract on the room.
func AddContract(t *testing.T, db *gorm.DB, roomID uuid.UUID, tenantID *uuid.UUID, rent string) model.Contract {
	t.Helper()
	c := model.Contract{
		RoomID:    roomID,
		TenantID:  tenantID,
		RentPrice: Dec(rent),
		Status:    model.ContractActive,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

// AddService inserts a catalog service on the motel.
func AddService(t *testing.T, db *gorm.DB, motelID uuid.UUID, name, serviceType, price string) model.Service {
	t.Helper()
	s := model.Service{MotelID: motelID, Name: name, Type: serviceType, Price: Dec(price)}
	require.NoError(t, db.Create(&s).Error)
	return s
}

// AddCoTenant inserts a co-tenant on the contract.
func AddCoTenant(t *testing.T, db *gorm.DB, contractID uuid.UUID, name string) model.ContractTenant {
	t.Helper()
	ct := model.ContractTenant{ContractID: contractID, FullName: name}
	require.NoError(t, db.Create(&ct).Error)
	return ct
}

// Month returns the first day of the given month in UTC.
func Month(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// AddInvoice inserts an UNPAID invoice with the given total.
func AddInvoice(t *testing.T, db *gorm.DB, contractID uuid.UUID, month time.Time, total string) model.Invoice {
	t.Helper()
	inv := model.Invoice{
		InvoiceNo:    "INV-" + uuid.NewString()[:12],
		ContractID:   contractID,
		BillingMonth: month,
		TotalAmount:  Dec(total),
		PaidAmount:   decimal.Zero,
		Status:       model.InvoiceUnpaid,
		DueDate:      month.AddDate(0, 1, 4),
	}
	require.NoError(t, db.Create(&inv).Error)
	return inv
}
