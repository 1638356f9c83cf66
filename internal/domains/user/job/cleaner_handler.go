package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"legalblog-backend/internal/domains/user"
	"legalblog-backend/pkg/logger"
)

type CleanupExpiredTokensPayload struct {
	Date time.Time `json:"date,omitempty"`
}

// CleanupExpiredTokenHandler clears verification and reset tokens that
// outlived their windows. Scheduled daily by the worker.
type CleanupExpiredTokenHandler struct {
	userRepo user.Repository
}

func NewCleanupExpiredTokenHandler(userRepo user.Repository) *CleanupExpiredTokenHandler {
	return &CleanupExpiredTokenHandler{userRepo: userRepo}
}

func (h *CleanupExpiredTokenHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload CleanupExpiredTokensPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("failed to unmarshal cleanup payload", err)
		return err
	}

	cleanupDate := time.Now()
	if !payload.Date.IsZero() {
		cleanupDate = payload.Date
	}

	log.Info().
		Time("cleanup_date", cleanupDate).
		Msg("starting expired token cleanup")

	verificationCutoff := cleanupDate.Add(-user.VerificationTokenTTL)
	clearedVerification, err := h.userRepo.DeleteExpiredVerificationTokens(ctx, verificationCutoff)
	if err != nil {
		logger.Error("failed to clear expired verification tokens", err)
		return err
	}

	resetCutoff := cleanupDate.Add(-user.ResetTokenTTL)
	clearedReset, err := h.userRepo.DeleteExpiredResetTokens(ctx, resetCutoff)
	if err != nil {
		logger.Error("failed to clear expired reset tokens", err)
		return err
	}

	log.Info().
		Int("verification_tokens_cleared", clearedVerification).
		Int("reset_tokens_cleared", clearedReset).
		Msg("expired token cleanup finished")

	return nil
}
