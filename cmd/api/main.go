package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ev-admin-gateway/internal/api/http"
	"github.com/spec-kit/ev-admin-gateway/internal/api/http/handlers"
	"github.com/spec-kit/ev-admin-gateway/internal/auth"
	"github.com/spec-kit/ev-admin-gateway/internal/cache"
	"github.com/spec-kit/ev-admin-gateway/internal/config"
	"github.com/spec-kit/ev-admin-gateway/internal/events"
	"github.com/spec-kit/ev-admin-gateway/internal/observability"
	"github.com/spec-kit/ev-admin-gateway/internal/persistence"
	"github.com/spec-kit/ev-admin-gateway/internal/platform"
	"github.com/spec-kit/ev-admin-gateway/internal/repository"
	"github.com/spec-kit/ev-admin-gateway/internal/service"
	"github.com/spec-kit/ev-admin-gateway/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(cfg.App.Name, registry)

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	store := cache.New(cfg.Redis, logger)
	defer store.Close()

	backend := platform.NewClient(cfg.Backend, logger, metrics)
	usersClient := platform.NewUsersClient(backend)
	vehiclesClient := platform.NewVehiclesClient(backend)
	analyticsClient := platform.NewAnalyticsClient(backend)
	rentalsClient := platform.NewRentalsClient(backend)
	maintenanceClient := platform.NewMaintenanceClient(backend)
	chatbotClient := platform.NewChatbotClient(backend)

	dispatcher := events.NewInMemoryDispatcher()

	var auditRepo repository.AuditRepository
	if pool := pg.PoolHandle(); pool != nil {
		auditRepo = repository.NewAuditRepository(pool)
	}

	staffService := service.NewStaffService(*cfg, service.StaffDependencies{
		Directory:  usersClient,
		Audit:      auditRepo,
		Dispatcher: dispatcher,
		Cache:      store,
		Metrics:    metrics,
	}, logger)
	accountService := service.NewAccountService(usersClient, store, logger)
	riskService := service.NewRiskService(usersClient, dispatcher, logger)
	vehicleService := service.NewVehicleService(vehiclesClient, store, dispatcher, logger)
	analyticsService := service.NewAnalyticsService(analyticsClient, store, logger)
	rentalService := service.NewRentalService(rentalsClient, logger)
	maintenanceService := service.NewMaintenanceService(maintenanceClient, store, logger)
	chatbotService := service.NewChatbotService(chatbotClient)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notificationService.RegisterHandlers()

	warmer := worker.NewAnalyticsWarmer(analyticsService, logger, cfg.Worker.AnalyticsWarmInterval())
	warmer.Start()
	defer warmer.Stop()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokens)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, store),
		Staff:          handlers.NewStaffHandler(staffService),
		Users:          handlers.NewUsersHandler(staffService, accountService),
		Risk:           handlers.NewRiskHandler(riskService),
		Vehicles:       handlers.NewVehiclesHandler(vehicleService),
		Analytics:      handlers.NewAnalyticsHandler(analyticsService),
		Operations:     handlers.NewOperationsHandler(rentalService, maintenanceService, chatbotService),
		AuthMiddleware: authMiddleware,
		Registry:       registry,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
