package media

import (
	"context"

	"github.com/google/uuid"
)

// UploadInput carries one multipart file already read into memory.
type UploadInput struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Service is the media business logic layer.
type Service interface {
	Upload(ctx context.Context, postID, actorID uuid.UUID, in UploadInput) (*Asset, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*Asset, error)
	Delete(ctx context.Context, assetID, actorID uuid.UUID) error
}
