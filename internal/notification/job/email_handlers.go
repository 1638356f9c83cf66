package job

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"legalblog-backend/internal/infrastructure/email"
	"legalblog-backend/pkg/logger"
)

// EmailHandler turns queued email tasks into SMTP deliveries. Returning an
// error lets asynq retry with backoff up to the task's MaxRetry.
type EmailHandler struct {
	emails email.EmailService
}

func NewEmailHandler(emails email.EmailService) *EmailHandler {
	return &EmailHandler{emails: emails}
}

func (h *EmailHandler) ProcessVerificationEmail(ctx context.Context, task *asynq.Task) error {
	var data email.VerificationEmailData
	if err := json.Unmarshal(task.Payload(), &data); err != nil {
		logger.Error("failed to unmarshal verification email payload", err)
		return err
	}

	if err := h.emails.SendVerificationEmail(ctx, data); err != nil {
		return err
	}

	log.Info().Str("email", data.Email).Msg("verification email sent")
	return nil
}

func (h *EmailHandler) ProcessResetEmail(ctx context.Context, task *asynq.Task) error {
	var data email.ResetPasswordData
	if err := json.Unmarshal(task.Payload(), &data); err != nil {
		logger.Error("failed to unmarshal reset email payload", err)
		return err
	}

	if err := h.emails.SendResetPasswordEmail(ctx, data); err != nil {
		return err
	}

	log.Info().Str("email", data.Email).Msg("password reset email sent")
	return nil
}

func (h *EmailHandler) ProcessStatusChanged(ctx context.Context, task *asynq.Task) error {
	var data email.StatusChangedData
	if err := json.Unmarshal(task.Payload(), &data); err != nil {
		logger.Error("failed to unmarshal status change payload", err)
		return err
	}

	if err := h.emails.SendStatusChangedEmail(ctx, data); err != nil {
		return err
	}

	log.Info().
		Str("email", data.Email).
		Str("status", data.NewStatus).
		Msg("moderation notification sent")
	return nil
}
