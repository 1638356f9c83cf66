package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"legalblog-backend/internal/shared"
)

// Client enqueues background tasks. All enqueue helpers are fire-and-forget
// from the caller's point of view: the caller decides whether a failure is
// fatal (it is not for notifications).
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr string) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) enqueue(taskType string, payload interface{}, opts ...asynq.Option) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}

	task := asynq.NewTask(taskType, data)
	if _, err := c.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}

	return nil
}

// EnqueueVerificationEmail queues an account verification email.
func (c *Client) EnqueueVerificationEmail(payload interface{}) error {
	return c.enqueue(shared.TypeSendVerificationEmail, payload,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
}

// EnqueueResetEmail queues a password reset email.
func (c *Client) EnqueueResetEmail(payload interface{}) error {
	return c.enqueue(shared.TypeSendResetEmail, payload,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
}

// EnqueueStatusChanged queues a moderation notification email.
func (c *Client) EnqueueStatusChanged(payload interface{}) error {
	return c.enqueue(shared.TypeNotifyStatusChanged, payload,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
}
