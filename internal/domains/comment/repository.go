package comment

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for comments.
type Repository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)

	// ListByPost returns comments oldest first with author names joined,
	// plus the total count before pagination.
	ListByPost(ctx context.Context, postID uuid.UUID, page, limit int) ([]*Comment, int, error)

	Update(ctx context.Context, c *Comment) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByPost removes all comments of a post (post deletion cascade).
	DeleteByPost(ctx context.Context, postID uuid.UUID) error
}

// PostDirectory answers whether a post accepts comments. Backed by the
// blog domain; only published posts are commentable.
type PostDirectory interface {
	IsPublished(ctx context.Context, postID uuid.UUID) (bool, error)
}

// Actor is the resolved identity performing a comment operation.
type Actor struct {
	ID        uuid.UUID
	IsAdmin   bool
	IsBlocked bool
}

// AccountDirectory resolves the acting account. Backed by the user domain.
type AccountDirectory interface {
	ResolveAccount(ctx context.Context, id uuid.UUID) (*Actor, error)
}
