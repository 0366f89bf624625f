package main

import (
	"fmt"
	"strings"

	"motelhub/internal/config"
	"motelhub/internal/database"
	"motelhub/internal/events"
	"motelhub/internal/gateway"
	"motelhub/internal/repository"
	"motelhub/internal/service"
	"motelhub/internal/websocket"
	"motelhub/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the wired dependency graph shared by every command.
type app struct {
	cfg       config.Config
	log       *zap.Logger
	db        *gorm.DB
	hub       *websocket.Hub
	publisher events.Publisher

	users         service.UserService
	invoices      service.InvoiceService
	payments      service.PaymentService
	online        service.OnlinePaymentService
	contracts     service.ContractService
	notifications service.NotificationService
	audits        service.AuditService
	statistics    service.StatisticsService
}

func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	db, err := database.NewConnection(cfg.DSN(), database.Options{
		MaxOpenConns: 25,
		MaxIdleConns: 5,
		Debug:        cfg.LogLevel == "debug",
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	log.Info("connected to PostgreSQL", zap.String("host", cfg.DBHost), zap.String("database", cfg.DBName))

	a := &app{cfg: cfg, log: log, db: db, hub: websocket.NewHub(log)}

	if brokers := cfg.Brokers(); len(brokers) > 0 {
		a.publisher = events.NewKafkaProducer(brokers, cfg.PaymentEventsTopic, cfg.EventPublishTimeout)
		log.Info("publishing billing events", zap.Strings("brokers", brokers), zap.String("topic", cfg.PaymentEventsTopic))
	} else {
		a.publisher = events.Nop{}
	}

	// Set up dependencies (Repository -> Service)
	userRepo := repository.NewUserRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	contractRepo := repository.NewContractRepository(db)
	motelRepo := repository.NewMotelRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	a.notifications = service.NewNotificationService(repository.NewNotificationRepository(db), a.hub, a.publisher, log)
	a.users = service.NewUserService(userRepo, cfg.Secret(), cfg.JWTTTL)
	a.invoices = service.NewInvoiceService(invoiceRepo, contractRepo, motelRepo, auditRepo, txManager, a.notifications, log)
	a.payments = service.NewPaymentService(invoiceRepo, paymentRepo, contractRepo, auditRepo, txManager, a.notifications, log)
	a.contracts = service.NewContractService(contractRepo, auditRepo, txManager)
	a.audits = service.NewAuditService(auditRepo)
	a.statistics = service.NewStatisticsService(repository.NewStatisticsRepository(db), motelRepo)
	a.online = service.NewOnlinePaymentService(
		newRegistry(cfg),
		invoiceRepo,
		paymentRepo,
		repository.NewPendingPaymentRepository(db),
		repository.NewGatewayEventRepository(db),
		contractRepo,
		auditRepo,
		txManager,
		a.notifications,
		service.OnlinePaymentConfig{OrderTTL: cfg.PaymentOrderTTL, FrontendURL: cfg.FrontendURL},
		log,
	)

	return a, nil
}

// newRegistry configures the three gateways with callback URLs under PUBLIC_BASE_URL.
func newRegistry(cfg config.Config) *gateway.Registry {
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	callback := func(tag string) string { return base + "/api/payments/callback/" + tag }
	ret := func(tag string) string { return base + "/api/payments/return/" + tag }

	return gateway.NewRegistry(
		gateway.NewMomo(gateway.MomoConfig{
			PartnerCode:   cfg.MomoPartnerCode,
			AccessKey:     cfg.MomoAccessKey,
			SecretKey:     cfg.MomoSecretKey,
			Endpoint:      cfg.MomoEndpoint,
			IPNURL:        callback("momo"),
			RedirectURL:   ret("momo"),
			SkipSignature: cfg.GatewaySkipSignature,
		}),
		gateway.NewVNPay(gateway.VNPayConfig{
			TmnCode:       cfg.VNPayTmnCode,
			HashSecret:    cfg.VNPayHashSecret,
			PayURL:        cfg.VNPayURL,
			ReturnURL:     ret("vnpay"),
			SkipSignature: cfg.GatewaySkipSignature,
		}),
		gateway.NewZaloPay(gateway.ZaloPayConfig{
			AppID:         cfg.ZaloPayAppID,
			Key1:          cfg.ZaloPayKey1,
			Key2:          cfg.ZaloPayKey2,
			Endpoint:      cfg.ZaloPayEndpoint,
			CallbackURL:   callback("zalopay"),
			RedirectURL:   ret("zalopay"),
			SkipSignature: cfg.GatewaySkipSignature,
		}),
	)
}

func (a *app) close() {
	if err := a.publisher.Close(); err != nil {
		a.log.Warn("close event publisher", zap.Error(err))
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.log.Sync()
}
