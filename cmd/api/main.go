package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/listing-portal/internal/api/http"
	"github.com/spec-kit/listing-portal/internal/api/http/handlers"
	"github.com/spec-kit/listing-portal/internal/auth"
	"github.com/spec-kit/listing-portal/internal/config"
	"github.com/spec-kit/listing-portal/internal/events"
	"github.com/spec-kit/listing-portal/internal/mail"
	"github.com/spec-kit/listing-portal/internal/observability"
	"github.com/spec-kit/listing-portal/internal/persistence"
	"github.com/spec-kit/listing-portal/internal/repository"
	"github.com/spec-kit/listing-portal/internal/service"
	"github.com/spec-kit/listing-portal/internal/worker"
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
	listingRepo := repository.NewListingRepository(pool)
	blacklistRepo := repository.NewBlacklistRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	screening := service.NewScreeningService(blacklistRepo, redis.ClientHandle(), cfg.Screening.CacheTTL(), logger)
	listingService := service.NewListingService(service.ListingDependencies{
		ListingRepo:   listingRepo,
		BlacklistRepo: blacklistRepo,
		Screening:     screening,
		Dispatcher:    dispatcher,
		Logger:        logger,
	})
	moderationService := service.NewModerationService(service.ModerationDependencies{
		ListingRepo: listingRepo,
		Screening:   screening,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
	})
	authService := service.NewAuthService(*cfg, adminRepo)

	sender := mail.NewSESSender(cfg.Notification, logger)
	notificationService := service.NewNotificationService(dispatcher, sender, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), adminRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Listings:       handlers.NewListingsHandler(listingService),
		Moderation:     handlers.NewModerationHandler(moderationService, listingService),
		Admin:          handlers.NewAdminHandler(authService),
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
