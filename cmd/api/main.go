package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/megaschedule/megaschedule/internal/app"
	"github.com/megaschedule/megaschedule/internal/auth"
	"github.com/megaschedule/megaschedule/internal/config"
	"github.com/megaschedule/megaschedule/internal/controller/httpapi"
	"github.com/megaschedule/megaschedule/internal/repository"
	"github.com/megaschedule/megaschedule/internal/repository/inmem"
	"github.com/megaschedule/megaschedule/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		users       service.UserStore
		slots       service.SlotStore
		assignments service.AssignmentStore
	)

	if cfg.InMemory() {
		logger.Warn("DB_DSN not set, running against the in-memory store")
		db := inmem.NewDB()
		users, slots, assignments = db.Users(), db.Slots(), db.Assignments()
	} else {
		pool, err := pgxpool.New(ctx, cfg.DBDSN)
		if err != nil {
			logger.Fatal("failed to create connection pool", zap.Error(err))
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("failed to ping database", zap.Error(err))
		}

		migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
		if err != nil {
			logger.Fatal("failed to create migrator", zap.Error(err))
		}
		if err := migrator.Run(ctx); err != nil {
			logger.Fatal("failed to apply migrations", zap.Error(err))
		}
		migrator.Close()

		users = repository.NewUserRepository(pool)
		slots = repository.NewSlotRepository(pool)
		assignments = repository.NewAssignmentRepository(pool)
	}

	userService := service.NewUserService(users, logger)
	scheduleService := service.NewScheduleService(slots, assignments, users, logger)
	assignmentService := service.NewAssignmentService(slots, assignments, logger)
	worktimeService := service.NewWorkTimeService(assignments, users, logger)

	verifier := auth.NewGoogleVerifier(cfg.GoogleClientID)

	server := httpapi.New(
		verifier,
		userService,
		scheduleService,
		assignmentService,
		worktimeService,
		cfg.FrontendURLs,
		logger,
	)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := server.Shutdown(); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.String("addr", cfg.ListenAddr),
		zap.String("environment", cfg.Environment),
	)

	if err := server.Listen(cfg.ListenAddr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
