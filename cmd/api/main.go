package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/staffing-tracker/internal/api/http"
	"github.com/spec-kit/staffing-tracker/internal/api/http/handlers"
	"github.com/spec-kit/staffing-tracker/internal/auth"
	"github.com/spec-kit/staffing-tracker/internal/config"
	"github.com/spec-kit/staffing-tracker/internal/events"
	"github.com/spec-kit/staffing-tracker/internal/observability"
	"github.com/spec-kit/staffing-tracker/internal/persistence"
	"github.com/spec-kit/staffing-tracker/internal/repository"
	"github.com/spec-kit/staffing-tracker/internal/service"
	"github.com/spec-kit/staffing-tracker/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	heatmapRepo := repository.NewHeatmapRepository(pool)
	billingRepo := repository.NewBillingRepository(pool)
	activityRepo := repository.NewActivityLogRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics, registry := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
	})
	userService := service.NewUserService(*cfg, userRepo)
	projectService := service.NewProjectService(projectRepo, dispatcher)
	staffService := service.NewStaffService(staffRepo, dispatcher)
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		AssignmentRepo: assignmentRepo,
		ProjectRepo:    projectRepo,
		StaffRepo:      staffRepo,
		Dispatcher:     dispatcher,
	})
	billingService := service.NewBillingService(billingRepo, projectRepo, dispatcher)
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		HeatmapRepo:    heatmapRepo,
		ProjectRepo:    projectRepo,
		StaffRepo:      staffRepo,
		AssignmentRepo: assignmentRepo,
		Cache:          redis.Client,
		Metrics:        metrics,
		Logger:         logger,
	}, cfg.Heatmap.Location(), cfg.Dashboard.SummaryCacheTTL())
	reportService := service.NewReportService(service.ReportDependencies{
		ProjectRepo:    projectRepo,
		StaffRepo:      staffRepo,
		AssignmentRepo: assignmentRepo,
		BillingRepo:    billingRepo,
	})
	activityService := service.NewActivityService(dispatcher, activityRepo, logger)

	worker.StartActivityWorker(activityService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Projects:       handlers.NewProjectsHandler(projectService),
		Staff:          handlers.NewStaffHandler(staffService),
		Assignments:    handlers.NewAssignmentsHandler(assignmentService),
		Users:          handlers.NewUsersHandler(userService),
		Billing:        handlers.NewBillingHandler(billingService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Reports:        handlers.NewReportsHandler(reportService),
		Activity:       handlers.NewActivityHandler(activityService),
		AuthMiddleware: authMiddleware,
		MetricsHandler: observability.Handler(registry),
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
