package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/competition-service/internal/api/http"
	"github.com/spec-kit/competition-service/internal/api/http/handlers"
	"github.com/spec-kit/competition-service/internal/auth"
	"github.com/spec-kit/competition-service/internal/cache"
	"github.com/spec-kit/competition-service/internal/config"
	"github.com/spec-kit/competition-service/internal/events"
	"github.com/spec-kit/competition-service/internal/observability"
	"github.com/spec-kit/competition-service/internal/persistence"
	"github.com/spec-kit/competition-service/internal/repository"
	"github.com/spec-kit/competition-service/internal/service"
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

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	competitionRepo := repository.NewCompetitionRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)
	teamRepo := repository.NewTeamRepository(pool)
	registrationRepo := repository.NewRegistrationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	service.NewNotificationService(dispatcher, logger, cfg.Notification).RegisterHandlers()

	authService := service.NewAuthService(cfg.Auth, userRepo)
	competitionService := service.NewCompetitionService(service.CompetitionDependencies{
		CompetitionRepo:  competitionRepo,
		AnnouncementRepo: announcementRepo,
		Dispatcher:       dispatcher,
		Logger:           logger,
	})
	registrationService := service.NewRegistrationService(service.RegistrationDependencies{
		CompetitionRepo:  competitionRepo,
		TeamRepo:         teamRepo,
		RegistrationRepo: registrationRepo,
		UserRepo:         userRepo,
		RosterCache:      cache.NewRedisRosterCache(redis.Client, cfg.Redis.RosterCacheTTL()),
		Dispatcher:       dispatcher,
		Logger:           logger,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		Immutable: true,
	})
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	validate := handlers.NewValidator()
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Users:        handlers.NewUsersHandler(authService, validate),
		Competitions: handlers.NewCompetitionsHandler(competitionService, registrationService, validate),
		Authenticate: authMiddleware.Handle,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
