package media

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists asset metadata. The bytes themselves live in object
// storage.
type Repository interface {
	Create(ctx context.Context, a *Asset) error
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*Asset, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPost(ctx context.Context, postID uuid.UUID) error
}

// ObjectStore is the slice of the storage backend media needs.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// PostDirectory answers who owns a post, without importing the blog domain.
type PostDirectory interface {
	// OwnerOf returns the post author's ID, or ErrPostNotFound.
	OwnerOf(ctx context.Context, postID uuid.UUID) (uuid.UUID, error)
}

// Actor is the minimal account view needed for permission checks.
type Actor struct {
	ID        uuid.UUID
	IsAdmin   bool
	IsBlocked bool
}

// AccountDirectory resolves an account into an Actor.
type AccountDirectory interface {
	ResolveAccount(ctx context.Context, id uuid.UUID) (*Actor, error)
}
