// Package notification bridges domain events to the background email queue.
// Services depend on narrow interfaces (blog.Notifier, user.Mailer); this
// package implements them by enqueueing asynq tasks that the worker turns
// into SMTP deliveries.
package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"legalblog-backend/internal/domains/blog"
	"legalblog-backend/internal/infrastructure/email"
)

// Enqueuer is the slice of the queue client the notifier needs.
type Enqueuer interface {
	EnqueueVerificationEmail(payload interface{}) error
	EnqueueResetEmail(payload interface{}) error
	EnqueueStatusChanged(payload interface{}) error
}

// EmailDirectory resolves an account ID to a deliverable address.
type EmailDirectory interface {
	EmailOf(ctx context.Context, id uuid.UUID) (string, error)
}

// QueueNotifier implements blog.Notifier. Moderation outcomes go to the
// post's author; submissions for review go to the admin address.
type QueueNotifier struct {
	queue      Enqueuer
	directory  EmailDirectory
	adminEmail string
}

func NewQueueNotifier(queue Enqueuer, directory EmailDirectory, adminEmail string) *QueueNotifier {
	return &QueueNotifier{
		queue:      queue,
		directory:  directory,
		adminEmail: adminEmail,
	}
}

func (n *QueueNotifier) NotifyStatusChanged(ctx context.Context, post *blog.Post, newStatus blog.Status, reason string) error {
	var recipient string

	switch newStatus {
	case blog.StatusPending:
		recipient = n.adminEmail
	case blog.StatusPublished, blog.StatusRejected:
		addr, err := n.directory.EmailOf(ctx, post.AuthorID)
		if err != nil {
			return fmt.Errorf("failed to resolve author email: %w", err)
		}
		recipient = addr
	default:
		// Drafts are private; nobody is told about them.
		return nil
	}

	return n.queue.EnqueueStatusChanged(email.StatusChangedData{
		Email:     recipient,
		PostTitle: post.Title,
		NewStatus: string(newStatus),
		Reason:    reason,
	})
}
