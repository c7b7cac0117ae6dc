package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/config"
	"github.com/Eursukkul/ojasen-backoffice/internal/consumer"
	"github.com/Eursukkul/ojasen-backoffice/internal/handler"
	"github.com/Eursukkul/ojasen-backoffice/internal/middleware"
	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/Eursukkul/ojasen-backoffice/internal/notify"
	"github.com/Eursukkul/ojasen-backoffice/internal/repository"
	"github.com/Eursukkul/ojasen-backoffice/internal/service"
	"github.com/Eursukkul/ojasen-backoffice/pkg/cache"
	"github.com/Eursukkul/ojasen-backoffice/pkg/database"
	"github.com/Eursukkul/ojasen-backoffice/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	log.SetLevel(config.ParseLogLevel(cfg.LogLevel))
	log.SetHeader("${time_rfc3339} ${level}")

	db, err := database.NewPostgresDB(cfg.DSN())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	// Repositories
	tx := repository.NewTxManager(db)
	eventRepo := repository.NewEventRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	facilitatorRepo := repository.NewFacilitatorRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	rollupRepo := repository.NewRollupRepository(db)

	rollupSvc := service.NewRollupService(rollupRepo)
	reportSvc := service.NewReportService(bookingRepo, rollupRepo)

	// Start from the full-scan totals so events lost while down do not drift
	// the rollups.
	if _, err := reportSvc.RebuildRollups(context.Background()); err != nil {
		log.Warnf("[Rollup] startup rebuild failed: %v", err)
	}

	// Notification sinks: webhook when configured, then either the broker
	// (with the rollup consumer on the other end) or in-process rollups.
	var sinks []notify.Sink
	if cfg.WebhookURL != "" {
		sinks = append(sinks, notify.NewWebhookSink(cfg.WebhookURL, &http.Client{Timeout: 5 * time.Second}))
	}

	if cfg.RabbitURL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		sinks = append(sinks, notify.NewBrokerSink(publisher))

		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, string(notify.BookingStatusChanged))
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}
		consumer.NewRollupConsumer(rollupSvc).Start(msgs)
	} else {
		log.Info("[Notify] RABBITMQ_URL not set, applying rollups in-process")
		sinks = append(sinks, notify.NewLocalSink(rollupSvc))
	}
	dispatcher := notify.NewDispatcher(10*time.Second, sinks...)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warnf("[RateLimit] %v, limiting per instance", err)
		} else {
			defer rdb.Close()
		}
	}

	// Services
	bookingSvc := service.NewBookingService(tx, bookingRepo, sessionRepo, facilitatorRepo, dispatcher)
	eventSvc := service.NewEventService(tx, eventRepo, sessionRepo, bookingRepo)
	sessionSvc := service.NewSessionService(tx, sessionRepo, eventRepo, facilitatorRepo, bookingRepo)
	facilitatorSvc := service.NewFacilitatorService(facilitatorRepo, bookingRepo)
	campaignSvc := service.NewCampaignService(campaignRepo, bookingRepo)
	invoiceSvc := service.NewInvoiceService(tx, invoiceRepo, bookingRepo)
	permissionSvc := service.NewPermissionService(permissionRepo)

	if err := permissionSvc.EnsureAdmin(context.Background(), cfg.AdminEmail); err != nil {
		log.Fatalf("failed to seed admin permission: %v", err)
	}

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.Level())
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "ojasen-backoffice"})
	})

	admin := e.Group("/api/admin", middleware.AdminAuth(cfg.JWTSecret, permissionSvc))
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	bookingHandler.RegisterRoutes(admin)
	handler.NewCatalogHandler(eventSvc, sessionSvc, facilitatorSvc).RegisterRoutes(admin)
	handler.NewReportHandler(reportSvc).RegisterRoutes(admin)
	handler.NewCampaignHandler(campaignSvc).RegisterRoutes(admin)
	handler.NewInvoiceHandler(invoiceSvc).RegisterRoutes(admin)
	handler.NewPermissionHandler(permissionSvc).RegisterRoutes(admin, middleware.RequireRole(models.RoleAdmin))

	public := e.Group("/api", middleware.OptionalUser(cfg.JWTSecret))
	bookingHandler.RegisterPublicRoutes(public, middleware.RateLimit(cfg.RateLimitPerMinute, rdb))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("Ojasen back office starting on :%s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown: %v", err)
	}
	dispatcher.Wait()
}
