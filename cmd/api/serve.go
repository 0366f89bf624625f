package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "motelhub/api/swagger" // swagger docs
	"motelhub/internal/handler"
	"motelhub/internal/middleware"
	"motelhub/internal/websocket"
	"motelhub/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the websocket hub and the overdue sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := handler.RegisterValidators(); err != nil {
		return err
	}

	go a.hub.Run(ctx)

	scheduler, err := a.startSweeps()
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Recovery(a.log), middleware.RequestLogger(a.log))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = a.cfg.AllowedOrigins()
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// WebSocket endpoint
	secret := a.cfg.Secret()
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(a.hub, c, secret)
	})

	// API Routing
	root := router.Group("")
	handler.NewHealthHandler(a.db).RegisterRoutes(root)
	handler.NewUserHandler(a.users, secret, a.cfg.IsProduction()).RegisterRoutes(root)
	handler.NewInvoiceHandler(a.invoices, secret).RegisterRoutes(root)
	handler.NewPaymentHandler(a.payments, a.online, secret, a.cfg.ReturnRatePerMin).RegisterRoutes(root)
	handler.NewContractHandler(a.contracts, secret).RegisterRoutes(root)
	handler.NewNotificationHandler(a.notifications, secret).RegisterRoutes(root)
	handler.NewAuditHandler(a.audits, secret).RegisterRoutes(root)
	handler.NewStatisticsHandler(a.statistics, secret).RegisterRoutes(root)

	srv := &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      router,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("server is shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.log.Info("server stopped gracefully")
	return nil
}

// startSweeps schedules the overdue flip and the pending order expiry.
func (a *app) startSweeps() (*cron.Cron, error) {
	cronLog := logger.Cron(a.log)
	c := cron.New(cron.WithLogger(cronLog), cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)))

	_, err := c.AddFunc(a.cfg.OverdueCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		a.sweep(ctx, time.Now())
	})
	if err != nil {
		return nil, err
	}

	a.log.Info("sweeps scheduled", zap.String("schedule", a.cfg.OverdueCron))
	c.Start()
	return c, nil
}

func (a *app) sweep(ctx context.Context, now time.Time) {
	flipped, err := a.invoices.MarkOverdue(ctx, now)
	if err != nil {
		a.log.Error("overdue sweep failed", zap.Error(err))
	}
	expired, err := a.online.ExpireStale(ctx, now)
	if err != nil {
		a.log.Error("pending order expiry failed", zap.Error(err))
	}
	a.log.Info("sweep finished", zap.Int("overdue", flipped), zap.Int64("expired_orders", expired))
}
