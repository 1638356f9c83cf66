package shared

// Asynq task types. Namespaced by the domain that owns the handler.
const (
	TypeCleanupExpiredTokens  = "auth:cleanup_expired_tokens"
	TypeSendVerificationEmail = "email:verification"
	TypeSendResetEmail        = "email:reset_password"
	TypeNotifyStatusChanged   = "blog:notify_status_changed"
)

// Asynq queue names and their relative priorities (configured on the
// worker server).
const (
	QueueDefault = "default"
	QueueLow     = "low"
)
