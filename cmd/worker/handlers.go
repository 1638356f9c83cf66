package main

import (
	"github.com/hibiken/asynq"

	"legalblog-backend/internal/config"
	userJob "legalblog-backend/internal/domains/user/job"
	userRepo "legalblog-backend/internal/domains/user/repository"
	"legalblog-backend/internal/infrastructure/database"
	"legalblog-backend/internal/infrastructure/email"
	"legalblog-backend/internal/notification/job"
	"legalblog-backend/internal/shared"
	"legalblog-backend/pkg/cache"
)

// buildMux wires every task type to its handler. The worker's user
// repository runs without a cache: background jobs touch cold rows and
// should not populate the API's cache with them.
func buildMux(cfg *config.Config, db *database.PostgresDB) *asynq.ServeMux {
	users := userRepo.NewPostgresRepository(db.Pool, cache.Noop())
	emails := email.NewSMTPEmailService(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.From)

	cleanupHandler := userJob.NewCleanupExpiredTokenHandler(users)
	emailHandler := job.NewEmailHandler(emails)

	mux := asynq.NewServeMux()
	mux.HandleFunc(shared.TypeCleanupExpiredTokens, cleanupHandler.ProcessTask)
	mux.HandleFunc(shared.TypeSendVerificationEmail, emailHandler.ProcessVerificationEmail)
	mux.HandleFunc(shared.TypeSendResetEmail, emailHandler.ProcessResetEmail)
	mux.HandleFunc(shared.TypeNotifyStatusChanged, emailHandler.ProcessStatusChanged)

	return mux
}
