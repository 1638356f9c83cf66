package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legalblog-backend/internal/domains/blog"
	"legalblog-backend/internal/infrastructure/email"
)

type recordingEnqueuer struct {
	verification  []interface{}
	reset         []interface{}
	statusChanged []interface{}
}

func (e *recordingEnqueuer) EnqueueVerificationEmail(payload interface{}) error {
	e.verification = append(e.verification, payload)
	return nil
}

func (e *recordingEnqueuer) EnqueueResetEmail(payload interface{}) error {
	e.reset = append(e.reset, payload)
	return nil
}

func (e *recordingEnqueuer) EnqueueStatusChanged(payload interface{}) error {
	e.statusChanged = append(e.statusChanged, payload)
	return nil
}

type stubEmailDirectory struct {
	emails map[uuid.UUID]string
}

func (d *stubEmailDirectory) EmailOf(_ context.Context, id uuid.UUID) (string, error) {
	return d.emails[id], nil
}

func TestSubmissionGoesToAdmin(t *testing.T) {
	authorID := uuid.New()
	queue := &recordingEnqueuer{}
	notifier := NewQueueNotifier(queue, &stubEmailDirectory{emails: map[uuid.UUID]string{authorID: "author@firm.example"}}, "moderators@firm.example")

	post := &blog.Post{ID: uuid.New(), AuthorID: authorID, Title: "New Filing Rules"}
	require.NoError(t, notifier.NotifyStatusChanged(context.Background(), post, blog.StatusPending, ""))

	require.Len(t, queue.statusChanged, 1)
	data := queue.statusChanged[0].(email.StatusChangedData)
	assert.Equal(t, "moderators@firm.example", data.Email)
	assert.Equal(t, "pending", data.NewStatus)
}

func TestRejectionGoesToAuthorWithReason(t *testing.T) {
	authorID := uuid.New()
	queue := &recordingEnqueuer{}
	notifier := NewQueueNotifier(queue, &stubEmailDirectory{emails: map[uuid.UUID]string{authorID: "author@firm.example"}}, "moderators@firm.example")

	post := &blog.Post{ID: uuid.New(), AuthorID: authorID, Title: "New Filing Rules"}
	require.NoError(t, notifier.NotifyStatusChanged(context.Background(), post, blog.StatusRejected, "needs citations"))

	require.Len(t, queue.statusChanged, 1)
	data := queue.statusChanged[0].(email.StatusChangedData)
	assert.Equal(t, "author@firm.example", data.Email)
	assert.Equal(t, "needs citations", data.Reason)
}

func TestDraftProducesNoNotification(t *testing.T) {
	queue := &recordingEnqueuer{}
	notifier := NewQueueNotifier(queue, &stubEmailDirectory{emails: map[uuid.UUID]string{}}, "moderators@firm.example")

	post := &blog.Post{ID: uuid.New(), AuthorID: uuid.New(), Title: "Notes"}
	require.NoError(t, notifier.NotifyStatusChanged(context.Background(), post, blog.StatusDraft, ""))

	assert.Empty(t, queue.statusChanged)
}

func TestMailerBuildsVerifyLink(t *testing.T) {
	queue := &recordingEnqueuer{}
	mailer := NewQueueMailer(queue, "https://blog.firm.example")

	require.NoError(t, mailer.SendVerificationEmail(context.Background(), "new@firm.example", "New User", "tok123"))

	require.Len(t, queue.verification, 1)
	data := queue.verification[0].(email.VerificationEmailData)
	assert.Equal(t, "new@firm.example", data.Email)
	assert.Equal(t, "https://blog.firm.example/api/v1/auth/verify?token=tok123", data.VerifyLink)
}
