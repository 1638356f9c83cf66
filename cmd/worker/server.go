package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"legalblog-backend/internal/config"
	"legalblog-backend/internal/infrastructure/database"
	"legalblog-backend/internal/infrastructure/queue"
	"legalblog-backend/internal/shared"
	"legalblog-backend/pkg/logger"
)

// Run starts the asynq server and the cron scheduler, and blocks until a
// shutdown signal arrives.
func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", err)
		os.Exit(1)
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		logger.Error("failed to load database config", err)
		os.Exit(1)
	}

	db := database.NewPostgresDB(dbConfig)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		logger.Error("failed to connect to database", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.Redis.Host, Password: cfg.Redis.Password, DB: cfg.Redis.DB},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				shared.QueueDefault: 6,
				shared.QueueLow:     3,
			},
		},
	)

	mux := buildMux(cfg, db)

	scheduler := queue.NewScheduler(cfg.Redis.Host)
	if err := scheduler.RegisterCleanupJobs(); err != nil {
		logger.Error("failed to register scheduled jobs", err)
		os.Exit(1)
	}

	go func() {
		if err := scheduler.Start(); err != nil {
			logger.Error("scheduler stopped", err)
		}
	}()

	go func() {
		logger.Info("worker starting", map[string]interface{}{
			"queues": []string{shared.QueueDefault, shared.QueueLow},
		})
		if err := srv.Run(mux); err != nil {
			logger.Error("worker failed", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down worker", nil)
	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info("worker exited", nil)
}
