package comment

import (
	"context"

	"github.com/google/uuid"
)

// Service is the comment business logic layer.
type Service interface {
	Create(ctx context.Context, postID, actorID uuid.UUID, req CreateCommentRequest) (*Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID, page, limit int) ([]*Comment, int, error)
	Update(ctx context.Context, commentID, actorID uuid.UUID, req UpdateCommentRequest) (*Comment, error)
	Delete(ctx context.Context, commentID, actorID uuid.UUID) error
}
