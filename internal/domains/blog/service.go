package blog

import (
	"context"

	"github.com/google/uuid"
)

// Service is the application boundary for posts and their moderation
// workflow.
type Service interface {
	// Create stores a new post. Initial status is forced to draft unless
	// the actor is an admin, in which case a caller-specified status is
	// honored (same reason rule as transitions).
	Create(ctx context.Context, actorID uuid.UUID, req CreatePostRequest) (*Post, error)

	// RequestTransition applies the moderation state machine for the acting
	// account and notifies interested parties on success.
	RequestTransition(ctx context.Context, postID, actorID uuid.UUID, req TransitionRequest) (*Post, error)

	// UpdateContent edits title/content/category/tags; owner or admin only,
	// blocked accounts rejected.
	UpdateContent(ctx context.Context, postID, actorID uuid.UUID, req UpdatePostRequest) (*Post, error)

	// Delete hard-deletes a post; owner or admin only.
	Delete(ctx context.Context, postID, actorID uuid.UUID) error

	// GetByID returns a post when the viewer may see it (published, or
	// owner/admin for other statuses).
	GetByID(ctx context.Context, viewer Viewer, id uuid.UUID) (*Post, error)

	// GetBySlug is the public read path; it increments the view counter for
	// published posts.
	GetBySlug(ctx context.Context, viewer Viewer, slug string) (*Post, error)

	// List returns a page of posts plus the total count over the full
	// visibility+filter predicate, independent of page/limit.
	List(ctx context.Context, viewer Viewer, filter Filter, page, limit int) ([]*Post, int, error)
}
