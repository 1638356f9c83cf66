package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"legalblog-backend/internal/shared"
	"legalblog-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterCleanupJobs registers all periodic jobs.
func (s *Scheduler) RegisterCleanupJobs() error {
	return s.registerCleanupExpiredTokensJob()
}

// ================================================
// JOB: Cleanup expired verification/reset tokens (daily at 2 AM UTC)
// ================================================
func (s *Scheduler) registerCleanupExpiredTokensJob() error {
	payload, err := json.Marshal(struct{}{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCleanupExpiredTokens, payload)

	_, err = s.scheduler.Register(
		"0 2 * * *",
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register CleanupExpiredTokens job", err)
		return err
	}

	logger.Info("Registered CleanupExpiredTokens: daily at 2 AM UTC", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
