package blog

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for posts.
//
// List applies the visibility predicate derived from the viewer BEFORE the
// caller-supplied filter, and returns the total count over the full
// filtered set so pagination metadata stays consistent with the rows
// returned.
type Repository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)

	// Update overwrites the mutable content fields and the moderation
	// columns in a single conditional UPDATE keyed by id. Concurrent
	// writers race at the storage layer; last write wins.
	Update(ctx context.Context, post *Post) error

	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, viewer Viewer, filter Filter, page, limit int) ([]*Post, int, error)

	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}

// AccountDirectory resolves an account id to the identity and role used by
// the moderation guard. Backed by the user domain; kept narrow so the blog
// domain does not depend on it.
type AccountDirectory interface {
	ResolveAccount(ctx context.Context, id uuid.UUID) (*Actor, error)
}

// Notifier delivers status-change notifications. Fire-and-forget: failures
// are logged by the caller, never propagated.
type Notifier interface {
	NotifyStatusChanged(ctx context.Context, post *Post, newStatus Status, reason string) error
}
