package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httptransport "github.com/spec-kit/reference-data-service/internal/api/http"
	"github.com/spec-kit/reference-data-service/internal/api/http/handlers"
	"github.com/spec-kit/reference-data-service/internal/config"
	"github.com/spec-kit/reference-data-service/internal/events"
	"github.com/spec-kit/reference-data-service/internal/observability"
	"github.com/spec-kit/reference-data-service/internal/persistence"
	"github.com/spec-kit/reference-data-service/internal/repository"
	"github.com/spec-kit/reference-data-service/internal/service"
)

const shutdownTimeout = 10 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	var departments repository.DepartmentRepository
	if pg.Configured() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		departments = repository.NewDepartmentRepository(pg.PoolHandle())
	} else {
		logger.Warn("using in-memory department store; data is lost on restart")
		departments = repository.NewMemoryDepartmentRepository()
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	var publisher service.EventPublisher
	if redis.Configured() {
		publisher = redis
	}
	service.NewNotificationService(dispatcher, publisher, logger, cfg.Notification).RegisterHandlers()

	departmentService := service.NewDepartmentService(departments, dispatcher, logger)
	metrics := observability.NewMetrics()

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version).
		WithDependency("postgres", pg, "memory").
		WithDependency("redis", redis, "disabled")

	app := httptransport.NewApp(httptransport.AppConfig{
		Name:           cfg.App.Name,
		RequestTimeout: cfg.App.RequestTimeout,
		Logger:         logger,
		Metrics:        metrics,
		Routes: httptransport.RouteConfig{
			Health:      healthHandler,
			Departments: handlers.NewDepartmentHandler(departmentService, cfg.Pagination, logger),
			Metrics:     metrics,
			Info: httptransport.APIInfo{
				Title:       cfg.App.Name,
				Description: "Reference data: departments",
				Version:     cfg.App.Version,
				Tag:         "RDS Service",
				TagDetail:   "Apis relating to rds",
			},
		},
	})

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		return app.Listen(cfg.App.Addr())
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped", zap.Error(err))
	}
}
