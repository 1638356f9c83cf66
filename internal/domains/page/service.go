package page

import (
	"context"

	"github.com/google/uuid"
)

// Service is the static page business logic layer.
type Service interface {
	// GetBySlug serves a page to the public site. Unpublished pages are
	// only visible when isAdmin is true.
	GetBySlug(ctx context.Context, slug string, isAdmin bool) (*Page, error)

	List(ctx context.Context, includeUnpublished bool) ([]*Page, error)
	Create(ctx context.Context, req CreatePageRequest) (*Page, error)
	Update(ctx context.Context, id uuid.UUID, req UpdatePageRequest) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
