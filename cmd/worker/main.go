// cmd/worker/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/seller-sync/internal/bootstrap"
	"github.com/ammerola/seller-sync/internal/pkg/config"
	"github.com/ammerola/seller-sync/internal/pkg/logger"
	"github.com/ammerola/seller-sync/internal/workers"
)

const cleanupSchedule = "@hourly"

func main() {
	// Setup logger
	slogger := logger.SetupLogger("info", "json").Logger

	// Load configuration
	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat).Logger
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	ctx := context.Background()
	deps, err := bootstrap.Initialize(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.Close()

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}

	// Create Asynq server
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency:     cfg.Asynq.Concurrency,
		Queues:          cfg.Asynq.Queues,
		ErrorHandler:    asynq.ErrorHandlerFunc(handleError),
		ShutdownTimeout: cfg.Asynq.ShutdownTimeout,
		HealthCheckFunc: healthCheck,
		Logger:          newAsynqLogger(slogger),
	})

	// Create task handlers
	mux := asynq.NewServeMux()
	mux.Use(workers.Recovery(slogger), workers.TaskLogger(slogger))

	syncProcessor := workers.NewSyncProcessor(deps.Service, slogger)
	mux.HandleFunc(workers.TypeSyncRun, syncProcessor.ProcessRun)
	mux.HandleFunc(workers.TypeUploadStocks, syncProcessor.ProcessUploadStocks)
	mux.HandleFunc(workers.TypeUploadPrices, syncProcessor.ProcessUploadPrices)

	cleanupProcessor := workers.NewCleanupProcessor(cfg.Vendor.WorkDir, cfg.Vendor.StaleFileAge, slogger)
	mux.HandleFunc(workers.TypeCleanupWorkDir, cleanupProcessor.CleanupWorkDir)

	scheduler, err := newScheduler(redisOpt, cfg, slogger)
	if err != nil {
		slogger.Error("failed to register scheduled tasks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Handle shutdown gracefully
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(mux); err != nil {
			slogger.Error("failed to run worker server", slog.String("error", err.Error()))
			shutdown <- syscall.SIGTERM
		}
	}()

	if scheduler != nil {
		if err := scheduler.Start(); err != nil {
			slogger.Error("failed to start scheduler", slog.String("error", err.Error()))
			srv.Shutdown()
			os.Exit(1)
		}
	}

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues),
		slog.String("sync_schedule", cfg.Asynq.SyncSchedule))

	// Wait for shutdown signal
	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Gracefully shutdown
	if scheduler != nil {
		scheduler.Shutdown()
	}
	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

// newScheduler registers the periodic run and cleanup tasks. It returns nil
// when no sync schedule is configured.
func newScheduler(redisOpt asynq.RedisClientOpt, cfg *config.Config, logger *slog.Logger) (*asynq.Scheduler, error) {
	if cfg.Asynq.SyncSchedule == "" {
		return nil, nil
	}

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: time.UTC,
		Logger:   newAsynqLogger(logger),
	})

	runTask, err := workers.NewScheduledSyncRunTask()
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register(cfg.Asynq.SyncSchedule, runTask, asynq.Timeout(cfg.Asynq.TaskTimeout)); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", workers.TypeSyncRun, err)
	}

	if _, err := scheduler.Register(cleanupSchedule, workers.NewCleanupWorkDirTask()); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", workers.TypeCleanupWorkDir, err)
	}

	return scheduler, nil
}

func handleError(ctx context.Context, task *asynq.Task, err error) {
	attrs := []any{
		slog.String("type", task.Type()),
		slog.String("error", err.Error()),
	}
	if errors.Is(err, asynq.SkipRetry) {
		attrs = append(attrs, slog.Bool("skip_retry", true))
	}
	slog.ErrorContext(ctx, "task processing failed", attrs...)
}

func healthCheck(err error) {
	if err != nil {
		slog.Error("worker health check failed", slog.String("error", err.Error()))
	}
}

// asynqLogger adapts slog for Asynq
type asynqLogger struct {
	logger *slog.Logger
}

func newAsynqLogger(logger *slog.Logger) *asynqLogger {
	return &asynqLogger{
		logger: logger.With(slog.String("component", "asynq")),
	}
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
