package database

import (
	"time"

	"motelhub/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table owned by the billing core, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Motel{},
		&model.Room{},
		&model.Service{},
		&model.RoomService{},
		&model.Contract{},
		&model.ContractTenant{},
		&model.Invoice{},
		&model.InvoiceItem{},
		&model.Payment{},
		&model.PendingOnlinePayment{},
		&model.PaymentGatewayEvent{},
		&model.Notification{},
		&model.AuditLog{},
	}
}

// Options tunes the connection pool
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Debug           bool
}

// NewConnection initializes a new connection pool using GORM.
// Duplicate-key errors are translated to gorm.ErrDuplicatedKey.
func NewConnection(dsn string, opts Options) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	if !opts.Debug {
		cfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	return db, nil
}

// Migrate creates or updates all billing tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	zap.L().Info("database migrated", zap.Int("tables", len(Models())))
	return nil
}
