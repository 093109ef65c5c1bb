package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/facility-ticketing/internal/api/http"
	"github.com/spec-kit/facility-ticketing/internal/api/http/handlers"
	"github.com/spec-kit/facility-ticketing/internal/auth"
	"github.com/spec-kit/facility-ticketing/internal/config"
	"github.com/spec-kit/facility-ticketing/internal/events"
	"github.com/spec-kit/facility-ticketing/internal/observability"
	"github.com/spec-kit/facility-ticketing/internal/persistence"
	"github.com/spec-kit/facility-ticketing/internal/registry"
	"github.com/spec-kit/facility-ticketing/internal/repository"
	"github.com/spec-kit/facility-ticketing/internal/service"
	"github.com/spec-kit/facility-ticketing/internal/worker"
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

	pool := pg.PoolHandle()
	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}
	if cfg.Postgres.RunSeed {
		if err := persistence.Seed(ctx, pool, cfg.Auth.BcryptCost, logger); err != nil {
			logger.Fatal("failed to seed reference data", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	userRepo := repository.NewUserRepository(pool)
	typeRepo := repository.NewTicketTypeRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	typeRegistry, err := registry.Load(ctx, typeRepo)
	if err != nil {
		logger.Fatal("failed to load ticket type registry", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, userRepo)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   ticketRepo,
		TypeRegistry: typeRegistry,
		Dispatcher:   dispatcher,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		TicketTypes:    handlers.NewTicketTypesHandler(typeRegistry),
		Tickets:        handlers.NewTicketsHandler(ticketService),
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
