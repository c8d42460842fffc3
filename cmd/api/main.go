package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/fieldops-service/internal/api/http"
	"github.com/spec-kit/fieldops-service/internal/api/http/handlers"
	"github.com/spec-kit/fieldops-service/internal/auth"
	"github.com/spec-kit/fieldops-service/internal/config"
	"github.com/spec-kit/fieldops-service/internal/events"
	"github.com/spec-kit/fieldops-service/internal/identity"
	"github.com/spec-kit/fieldops-service/internal/observability"
	"github.com/spec-kit/fieldops-service/internal/persistence"
	"github.com/spec-kit/fieldops-service/internal/repository"
	"github.com/spec-kit/fieldops-service/internal/service"
	"github.com/spec-kit/fieldops-service/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	siteRepo := repository.NewSiteRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	gateway := identity.NewPostgresGateway(pool, cfg.Auth.BcryptCost)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, gateway, staffRepo)
	staffService := service.NewStaffService(gateway, staffRepo, dispatcher, logger)
	siteService := service.NewSiteService(siteRepo, redis, cfg.Cache.SiteListTTL(), dispatcher, logger)
	taskService := service.NewTaskService(taskRepo, dispatcher)
	reportService := service.NewReportService(reportRepo, staffRepo, dispatcher, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartProjectionWorkers(reportService, notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), staffRepo, cfg.Auth.AdminEmail)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Staff:          handlers.NewStaffHandler(staffService),
		Sites:          handlers.NewSitesHandler(siteService),
		Tasks:          handlers.NewTasksHandler(taskService),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: authMiddleware,
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
