package notification

import (
	"context"
	"fmt"

	"legalblog-backend/internal/domains/user"
	"legalblog-backend/internal/infrastructure/email"
)

// QueueMailer implements user.Mailer by enqueueing the account emails for
// the worker to deliver.
type QueueMailer struct {
	queue   Enqueuer
	baseURL string
}

func NewQueueMailer(queue Enqueuer, baseURL string) *QueueMailer {
	return &QueueMailer{
		queue:   queue,
		baseURL: baseURL,
	}
}

func (m *QueueMailer) SendVerificationEmail(_ context.Context, address, _, token string) error {
	return m.queue.EnqueueVerificationEmail(email.VerificationEmailData{
		Email:      address,
		VerifyLink: fmt.Sprintf("%s/api/v1/auth/verify?token=%s", m.baseURL, token),
		ExpiresIn:  user.VerificationTokenTTL.String(),
	})
}

func (m *QueueMailer) SendResetPasswordEmail(_ context.Context, address, _, token string) error {
	return m.queue.EnqueueResetEmail(email.ResetPasswordData{
		Email:     address,
		Token:     token,
		ExpiresIn: user.ResetTokenTTL.String(),
	})
}
