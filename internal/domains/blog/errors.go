package blog

import "errors"

// Sentinel errors for the blog domain. Handlers map these to the HTTP
// taxonomy: NotFound -> 404, Forbidden -> 403, InvalidArgument -> 400,
// everything else -> 500 (logged, generic message, never retried: a
// replayed transition could re-clear a legitimately set rejection reason).
var (
	ErrPostNotFound   = errors.New("post not found")
	ErrForbidden      = errors.New("operation not allowed for this account")
	ErrAccountBlocked = errors.New("account is blocked")
	ErrInvalidStatus  = errors.New("invalid status value")
	ErrReasonRequired = errors.New("rejecting a post requires a reason")
	ErrDuplicateSlug  = errors.New("post slug already exists")
)
